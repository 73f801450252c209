package solver

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/roster-solver/internal/domain"
	apperrors "github.com/spec-kit/roster-solver/pkg/util"
)

// Engine is the greedy rostering engine. It is stateless between solves:
// every Solve builds its own model and allocation state and discards them
// with the result. Instances are safe for concurrent use.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates the engine.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Solve runs the full pipeline: lock stage, greedy allocation, bottleneck
// analysis, result assembly. Validation errors abort before allocation and
// return no partial roster; shortfalls never abort and are reported as
// bottlenecks on a best-effort roster.
func (e *Engine) Solve(ctx context.Context, input *domain.SolveInput) (*domain.SolveResult, error) {
	start := time.Now()
	m := buildModel(input)

	st, err := lockStage(m, input.Locked)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("lock stage complete",
		zap.Int("locked", len(st.roster)),
		zap.Int("slots", len(m.slots)),
		zap.Int("employees", len(m.employees)))

	shortfalls, err := allocate(ctx, m, st)
	if err != nil {
		return nil, err
	}

	bottlenecks := analyze(m, st, shortfalls)

	result, err := assemble(m, st, bottlenecks, time.Since(start))
	if err != nil {
		return nil, err
	}

	e.logger.Info("solve complete",
		zap.Float64("coverage", result.Coverage),
		zap.Int("assignments", len(result.Roster)),
		zap.Int("bottlenecks", len(result.Bottlenecks)),
		zap.Duration("duration", result.Stats.Duration))
	return result, nil
}

// assemble packages the roster, bottleneck report, and coverage statistics.
// It also re-checks the core invariants; a violation here is a defect in the
// allocator, surfaced as an internal fault rather than a shortfall.
func assemble(m *model, st *allocState, bottlenecks []domain.Bottleneck, elapsed time.Duration) (*domain.SolveResult, error) {
	roster := make([]domain.Assignment, len(st.roster))
	copy(roster, st.roster)
	sort.Slice(roster, func(i, j int) bool {
		a, b := roster[i], roster[j]
		if a.Slot != b.Slot {
			return a.Slot.Less(b.Slot)
		}
		if a.Locked != b.Locked {
			return a.Locked
		}
		return a.EmployeeID < b.EmployeeID
	})

	seen := make(map[string]bool, len(roster))
	perSlot := make(map[domain.SlotKey]int, len(m.slots))
	for _, assignment := range roster {
		if seen[assignment.ID] {
			return nil, apperrors.NewInternalFault("duplicate assignment detected", map[string]any{
				"slot":        assignment.Slot.String(),
				"employee_id": assignment.EmployeeID,
			})
		}
		seen[assignment.ID] = true
		perSlot[assignment.Slot]++
	}

	totalRequired := 0
	filled := 0
	for i := range m.slots {
		slot := &m.slots[i]
		totalRequired += slot.Required
		if perSlot[slot.Key] > slot.Required {
			return nil, apperrors.NewInternalFault("slot filled beyond required headcount", map[string]any{
				"slot":     slot.Key.String(),
				"required": slot.Required,
				"filled":   perSlot[slot.Key],
			})
		}
		filled += perSlot[slot.Key]
	}

	coverage := 0.0
	if totalRequired > 0 {
		coverage = float64(filled) / float64(totalRequired)
	}

	return &domain.SolveResult{
		Roster:      roster,
		Bottlenecks: bottlenecks,
		Coverage:    coverage,
		Stats: domain.SolveStats{
			TotalSlots:    len(m.slots),
			TotalRequired: totalRequired,
			Filled:        filled,
			UnfilledSlots: len(bottlenecks),
			Duration:      elapsed,
		},
	}, nil
}
