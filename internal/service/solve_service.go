package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/roster-solver/internal/api/dto"
	"github.com/spec-kit/roster-solver/internal/config"
	"github.com/spec-kit/roster-solver/internal/domain"
	"github.com/spec-kit/roster-solver/internal/events"
	"github.com/spec-kit/roster-solver/internal/observability"
	"github.com/spec-kit/roster-solver/internal/persistence"
	"github.com/spec-kit/roster-solver/internal/repository"
	"github.com/spec-kit/roster-solver/internal/solver"
	apperrors "github.com/spec-kit/roster-solver/pkg/util"
)

// SolveService runs solve requests through the engine and takes care of the
// service-side concerns around it: time budget, persistence of the run,
// result caching, metrics, and events. Each request is an isolated
// computation; nothing is shared between concurrent solves.
type SolveService struct {
	selector   *solver.Selector
	runs       repository.SolveRunRepository
	cache      *persistence.Redis
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.SolverConfig
}

// SolveDependencies bundles collaborators.
type SolveDependencies struct {
	Selector   *solver.Selector
	RunRepo    repository.SolveRunRepository
	Cache      *persistence.Redis
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewSolveService creates the service.
func NewSolveService(cfg config.SolverConfig, deps SolveDependencies) *SolveService {
	return &SolveService{
		selector:   deps.Selector,
		runs:       deps.RunRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		cfg:        cfg,
	}
}

// Solve validates the request, executes the strategy, and assembles the
// response. Shortfalls come back inside a success response; validation
// errors and internal faults abort with no partial roster.
func (s *SolveService) Solve(ctx context.Context, strategy solver.Strategy, req *dto.SolveRequest) (*dto.SolveResponse, error) {
	solverName := strings.ToUpper(string(strategy))

	input, err := req.BuildInput()
	if err != nil {
		s.recordFailure(ctx, solverName, req.RosterID, err)
		return nil, err
	}

	rosterID := req.RosterID
	if rosterID == "" {
		rosterID = uuid.NewString()
	}

	if budget := s.cfg.TimeBudget(); budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}

	result, err := s.selector.Solve(ctx, strategy, input)
	if err != nil {
		s.recordFailure(ctx, solverName, rosterID, err)
		return nil, apperrors.MapError(err)
	}

	recordSolveMetrics(strategy, result)
	resp := dto.NewSolveResponse(rosterID, solverName, result)

	s.persistRun(ctx, &resp)
	s.cacheResult(ctx, &resp)
	s.publishCompleted(ctx, &resp, result)

	return &resp, nil
}

// GetRoster returns the most recent solve result for a roster id, consulting
// the cache before the database.
func (s *SolveService) GetRoster(ctx context.Context, rosterID string) (*dto.SolveResponse, error) {
	if rosterID == "" {
		return nil, apperrors.NewValidationError("roster id required", nil)
	}

	if s.cache != nil {
		if data, err := s.cache.CacheGet(ctx, cacheKey(rosterID)); err == nil {
			var resp dto.SolveResponse
			if err := json.Unmarshal(data, &resp); err == nil {
				return &resp, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("result cache read failed", zap.String("roster_id", rosterID), zap.Error(err))
		}
	}

	if s.runs == nil {
		return nil, apperrors.NewUnavailable("solve history requires postgres")
	}
	run, err := s.runs.GetLatestByRosterID(ctx, rosterID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("roster", map[string]any{"roster_id": rosterID})
		}
		return nil, apperrors.MapError(err)
	}

	var resp dto.SolveResponse
	if err := json.Unmarshal(run.Result, &resp); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &resp, nil
}

// ListRecent returns metadata for the most recent persisted solve runs.
func (s *SolveService) ListRecent(ctx context.Context, limit int) ([]dto.SolveRunSummary, error) {
	if s.runs == nil {
		return nil, apperrors.NewUnavailable("solve history requires postgres")
	}
	runs, err := s.runs.ListRecent(ctx, limit)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	summaries := make([]dto.SolveRunSummary, 0, len(runs))
	for _, run := range runs {
		summaries = append(summaries, dto.SolveRunSummary{
			ID:              run.ID,
			RosterID:        run.RosterID,
			Solver:          run.Solver,
			Status:          run.Status,
			Coverage:        run.Coverage,
			TotalRequired:   run.TotalRequired,
			Filled:          run.Filled,
			BottleneckCount: run.BottleneckCount,
			CreatedAt:       run.CreatedAt,
		})
	}
	return summaries, nil
}

func (s *SolveService) persistRun(ctx context.Context, resp *dto.SolveResponse) {
	if s.runs == nil {
		return
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("marshal solve result", zap.Error(err))
		return
	}
	run := &domain.SolveRun{
		ID:              uuid.NewString(),
		RosterID:        resp.RosterID,
		Solver:          resp.Solver,
		Status:          resp.Status,
		Coverage:        resp.Coverage,
		TotalRequired:   resp.Stats.TotalRequired,
		Filled:          resp.Stats.Filled,
		BottleneckCount: len(resp.Bottlenecks),
		Result:          payload,
	}
	roster := make([]domain.Assignment, 0, len(resp.Roster))
	for _, a := range resp.Roster {
		roster = append(roster, domain.Assignment{
			ID:         a.AssignmentID,
			Slot:       domain.SlotKey{Date: a.Date, PartOfDay: domain.PartOfDay(a.PartOfDay), Service: a.Service},
			EmployeeID: a.EmployeeID,
			Source:     domain.AssignmentSource(a.Source),
			Locked:     a.Locked,
		})
	}
	if err := s.runs.Create(ctx, run, roster); err != nil {
		s.logger.Error("persist solve run", zap.String("roster_id", resp.RosterID), zap.Error(err))
	}
}

func (s *SolveService) cacheResult(ctx context.Context, resp *dto.SolveResponse) {
	if s.cache == nil {
		return
	}
	ttl := s.cfg.ResultCacheTTL()
	if ttl <= 0 {
		return
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.cache.CacheSet(ctx, cacheKey(resp.RosterID), payload, ttl); err != nil {
		s.logger.Warn("result cache write failed", zap.String("roster_id", resp.RosterID), zap.Error(err))
	}
}

func (s *SolveService) publishCompleted(ctx context.Context, resp *dto.SolveResponse, result *domain.SolveResult) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventSolveCompleted,
		RosterID:  resp.RosterID,
		Timestamp: time.Now(),
		Payload: events.SolveCompletedPayload{
			Solver:      resp.Solver,
			Coverage:    resp.Coverage,
			Assignments: len(resp.Roster),
			Bottlenecks: len(resp.Bottlenecks),
			DurationMS:  result.Stats.Duration.Milliseconds(),
			TotalSlots:  result.Stats.TotalSlots,
			FilledCount: result.Stats.Filled,
			RequiredSum: result.Stats.TotalRequired,
		},
	})

	if len(result.Bottlenecks) == 0 {
		return
	}
	reasons := make(map[domain.BottleneckReason]int)
	worst := domain.SeverityHigh
	for _, bottleneck := range result.Bottlenecks {
		reasons[bottleneck.Reason]++
		if bottleneck.Severity == domain.SeverityCritical {
			worst = domain.SeverityCritical
		}
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventBottlenecksDetected,
		RosterID:  resp.RosterID,
		Timestamp: time.Now(),
		Payload: events.BottlenecksDetectedPayload{
			Count:   len(result.Bottlenecks),
			Reasons: reasons,
			Worst:   worst,
		},
	})
}

func (s *SolveService) recordFailure(ctx context.Context, solverName, rosterID string, err error) {
	domainErr := apperrors.ToDomainError(err)
	observability.SolveRequestsTotal.WithLabelValues(strings.ToLower(solverName), "error").Inc()
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventSolveFailed,
		RosterID:  rosterID,
		Timestamp: time.Now(),
		Payload: events.SolveFailedPayload{
			Solver: solverName,
			Code:   domainErr.Code,
			Reason: domainErr.Message,
		},
	})
}

func recordSolveMetrics(strategy solver.Strategy, result *domain.SolveResult) {
	observability.SolveRequestsTotal.WithLabelValues(string(strategy), "success").Inc()
	observability.SolveDurationSeconds.Observe(result.Stats.Duration.Seconds())
	observability.ResetSolveGauges()
	observability.SolveCoverage.Set(result.Coverage)
	observability.HeadcountRequired.Set(float64(result.Stats.TotalRequired))
	observability.HeadcountFilled.Set(float64(result.Stats.Filled))
	for _, bottleneck := range result.Bottlenecks {
		observability.BottlenecksByReason.WithLabelValues(string(bottleneck.Reason)).Inc()
	}
}

func cacheKey(rosterID string) string {
	return "roster:result:" + rosterID
}
