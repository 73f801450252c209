package dto

import (
	"fmt"
	"time"

	"github.com/spec-kit/roster-solver/internal/domain"
	apperrors "github.com/spec-kit/roster-solver/pkg/util"
)

// WindowPayload is one (date, part-of-day) combination on the wire.
type WindowPayload struct {
	Date      string `json:"date"`
	PartOfDay string `json:"part_of_day"`
}

// EmployeePayload describes one employee in a solve request.
type EmployeePayload struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Team         string          `json:"team,omitempty"`
	Capabilities []string        `json:"capabilities"`
	Availability []WindowPayload `json:"availability"`
}

// SlotPayload describes one staffing requirement.
type SlotPayload struct {
	Date              string `json:"date"`
	PartOfDay         string `json:"part_of_day"`
	Service           string `json:"service"`
	RequiredHeadcount int    `json:"required_headcount"`
	Team              string `json:"team,omitempty"`
}

// LockedAssignmentPayload pins an employee to a slot before solving.
type LockedAssignmentPayload struct {
	Date       string `json:"date"`
	PartOfDay  string `json:"part_of_day"`
	Service    string `json:"service"`
	EmployeeID string `json:"employee_id"`
}

// BlockedWindowPayload marks an employee absence.
type BlockedWindowPayload struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	PartOfDay  string `json:"part_of_day"`
	Reason     string `json:"reason,omitempty"`
}

// SolveRequest is the full payload for POST /solve/*.
type SolveRequest struct {
	RosterID          string                    `json:"roster_id,omitempty"`
	Employees         []EmployeePayload         `json:"employees"`
	Slots             []SlotPayload             `json:"slots"`
	LockedAssignments []LockedAssignmentPayload `json:"locked_assignments"`
	BlockedWindows    []BlockedWindowPayload    `json:"blocked_windows"`
}

// BuildInput validates the request and converts it into the constraint model.
// Malformed slot or employee data is rejected here, before any allocation.
func (r *SolveRequest) BuildInput() (*domain.SolveInput, error) {
	if len(r.Slots) == 0 {
		return nil, apperrors.NewValidationError("at least one slot required", nil)
	}

	input := &domain.SolveInput{
		Employees: make([]domain.Employee, 0, len(r.Employees)),
		Slots:     make([]domain.Slot, 0, len(r.Slots)),
		Locked:    make([]domain.LockRequest, 0, len(r.LockedAssignments)),
		Blocked:   make([]domain.BlockedWindow, 0, len(r.BlockedWindows)),
	}

	seenEmployees := make(map[string]bool, len(r.Employees))
	for i := range r.Employees {
		payload := &r.Employees[i]
		if payload.ID == "" {
			return nil, apperrors.NewValidationError("employee id required", map[string]any{"index": i})
		}
		if seenEmployees[payload.ID] {
			return nil, apperrors.NewValidationError("duplicate employee id", map[string]any{"employee_id": payload.ID})
		}
		seenEmployees[payload.ID] = true

		emp := domain.Employee{
			ID:           payload.ID,
			Name:         payload.Name,
			Team:         payload.Team,
			Capabilities: make(map[string]bool, len(payload.Capabilities)),
			Availability: make(map[domain.Window]bool, len(payload.Availability)),
		}
		for _, service := range payload.Capabilities {
			if service == "" {
				return nil, apperrors.NewValidationError("empty capability", map[string]any{"employee_id": payload.ID})
			}
			emp.Capabilities[service] = true
		}
		for _, window := range payload.Availability {
			parsed, err := parseWindow(window.Date, window.PartOfDay)
			if err != nil {
				return nil, apperrors.NewValidationError(err.Error(), map[string]any{"employee_id": payload.ID})
			}
			emp.Availability[parsed] = true
		}
		input.Employees = append(input.Employees, emp)
	}

	seenSlots := make(map[domain.SlotKey]bool, len(r.Slots))
	for i := range r.Slots {
		payload := &r.Slots[i]
		key, err := parseSlotKey(payload.Date, payload.PartOfDay, payload.Service)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error(), map[string]any{"index": i})
		}
		if payload.RequiredHeadcount < 1 {
			return nil, apperrors.NewValidationError("required_headcount must be at least 1", map[string]any{"slot": key.String()})
		}
		if seenSlots[key] {
			return nil, apperrors.NewValidationError("duplicate slot", map[string]any{"slot": key.String()})
		}
		seenSlots[key] = true

		input.Slots = append(input.Slots, domain.Slot{
			Key:      key,
			Required: payload.RequiredHeadcount,
			Team:     payload.Team,
		})
	}

	for i := range r.LockedAssignments {
		payload := &r.LockedAssignments[i]
		key, err := parseSlotKey(payload.Date, payload.PartOfDay, payload.Service)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error(), map[string]any{"index": i})
		}
		if payload.EmployeeID == "" {
			return nil, apperrors.NewValidationError("locked assignment employee_id required", map[string]any{"slot": key.String()})
		}
		input.Locked = append(input.Locked, domain.LockRequest{Slot: key, EmployeeID: payload.EmployeeID})
	}

	for i := range r.BlockedWindows {
		payload := &r.BlockedWindows[i]
		window, err := parseWindow(payload.Date, payload.PartOfDay)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error(), map[string]any{"index": i})
		}
		if payload.EmployeeID == "" {
			return nil, apperrors.NewValidationError("blocked window employee_id required", map[string]any{"index": i})
		}
		input.Blocked = append(input.Blocked, domain.BlockedWindow{
			EmployeeID: payload.EmployeeID,
			Window:     window,
			Reason:     payload.Reason,
		})
	}

	return input, nil
}

func parseWindow(date, partOfDay string) (domain.Window, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return domain.Window{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	pod, err := domain.ParsePartOfDay(partOfDay)
	if err != nil {
		return domain.Window{}, err
	}
	return domain.Window{Date: date, PartOfDay: pod}, nil
}

func parseSlotKey(date, partOfDay, service string) (domain.SlotKey, error) {
	window, err := parseWindow(date, partOfDay)
	if err != nil {
		return domain.SlotKey{}, err
	}
	if service == "" {
		return domain.SlotKey{}, fmt.Errorf("service required")
	}
	return domain.SlotKey{Date: window.Date, PartOfDay: window.PartOfDay, Service: service}, nil
}

// AssignmentResponse is one roster entry on the wire.
type AssignmentResponse struct {
	AssignmentID string `json:"assignment_id"`
	Date         string `json:"date"`
	PartOfDay    string `json:"part_of_day"`
	Service      string `json:"service"`
	EmployeeID   string `json:"employee_id"`
	Source       string `json:"source"`
	Locked       bool   `json:"locked"`
}

// BottleneckResponse is one unfilled slot with its diagnosis.
type BottleneckResponse struct {
	Date       string `json:"date"`
	PartOfDay  string `json:"part_of_day"`
	Service    string `json:"service"`
	Required   int    `json:"required"`
	Filled     int    `json:"filled"`
	Shortfall  int    `json:"shortfall"`
	Severity   string `json:"severity"`
	ReasonCode string `json:"reason_code"`
	Suggestion string `json:"suggestion"`
}

// SolveStatsResponse summarizes the solve.
type SolveStatsResponse struct {
	TotalSlots    int     `json:"total_slots"`
	TotalRequired int     `json:"total_required"`
	Filled        int     `json:"filled"`
	UnfilledSlots int     `json:"unfilled_slots"`
	SolveTimeMS   float64 `json:"solve_time_ms"`
}

// SolveResponse is the complete solve result on the wire.
type SolveResponse struct {
	RosterID    string               `json:"roster_id"`
	Solver      string               `json:"solver"`
	Status      string               `json:"status"`
	Roster      []AssignmentResponse `json:"roster"`
	Coverage    float64              `json:"coverage"`
	Stats       SolveStatsResponse   `json:"stats"`
	Bottlenecks []BottleneckResponse `json:"bottlenecks"`
}

// NewSolveResponse maps a solver result onto the response contract.
func NewSolveResponse(rosterID, solver string, result *domain.SolveResult) SolveResponse {
	resp := SolveResponse{
		RosterID: rosterID,
		Solver:   solver,
		Status:   "success",
		Roster:   make([]AssignmentResponse, 0, len(result.Roster)),
		Coverage: result.Coverage,
		Stats: SolveStatsResponse{
			TotalSlots:    result.Stats.TotalSlots,
			TotalRequired: result.Stats.TotalRequired,
			Filled:        result.Stats.Filled,
			UnfilledSlots: result.Stats.UnfilledSlots,
			SolveTimeMS:   float64(result.Stats.Duration.Microseconds()) / 1000.0,
		},
		Bottlenecks: make([]BottleneckResponse, 0, len(result.Bottlenecks)),
	}

	for _, assignment := range result.Roster {
		resp.Roster = append(resp.Roster, AssignmentResponse{
			AssignmentID: assignment.ID,
			Date:         assignment.Slot.Date,
			PartOfDay:    string(assignment.Slot.PartOfDay),
			Service:      assignment.Slot.Service,
			EmployeeID:   assignment.EmployeeID,
			Source:       string(assignment.Source),
			Locked:       assignment.Locked,
		})
	}
	for _, bottleneck := range result.Bottlenecks {
		resp.Bottlenecks = append(resp.Bottlenecks, BottleneckResponse{
			Date:       bottleneck.Slot.Date,
			PartOfDay:  string(bottleneck.Slot.PartOfDay),
			Service:    bottleneck.Slot.Service,
			Required:   bottleneck.Required,
			Filled:     bottleneck.Filled,
			Shortfall:  bottleneck.Shortfall,
			Severity:   string(bottleneck.Severity),
			ReasonCode: string(bottleneck.Reason),
			Suggestion: bottleneck.Suggestion,
		})
	}
	return resp
}

// SolveRunSummary is the persisted-run listing entry.
type SolveRunSummary struct {
	ID              string    `json:"id"`
	RosterID        string    `json:"roster_id"`
	Solver          string    `json:"solver"`
	Status          string    `json:"status"`
	Coverage        float64   `json:"coverage"`
	TotalRequired   int       `json:"total_required"`
	Filled          int       `json:"filled"`
	BottleneckCount int       `json:"bottleneck_count"`
	CreatedAt       time.Time `json:"created_at"`
}
