package events

import (
	"time"

	"github.com/spec-kit/roster-solver/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSolveCompleted      EventType = "solve_completed"
	EventSolveFailed         EventType = "solve_failed"
	EventBottlenecksDetected EventType = "bottlenecks_detected"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RosterID  string      `json:"roster_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SolveCompletedPayload payload.
type SolveCompletedPayload struct {
	Solver      string  `json:"solver"`
	Coverage    float64 `json:"coverage"`
	Assignments int     `json:"assignments"`
	Bottlenecks int     `json:"bottlenecks"`
	DurationMS  int64   `json:"duration_ms"`
	TotalSlots  int     `json:"total_slots"`
	FilledCount int     `json:"filled_count"`
	RequiredSum int     `json:"required_sum"`
}

// SolveFailedPayload payload.
type SolveFailedPayload struct {
	Solver string `json:"solver"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// BottlenecksDetectedPayload payload.
type BottlenecksDetectedPayload struct {
	Count   int                             `json:"count"`
	Reasons map[domain.BottleneckReason]int `json:"reasons"`
	Worst   domain.BottleneckSeverity       `json:"worst_severity"`
}
