package domain

import "time"

// LockRequest pins one employee to one slot before allocation starts.
type LockRequest struct {
	Slot       SlotKey
	EmployeeID string
}

// BlockedWindow marks an employee absence (sick, vacation) that overrides the
// availability calendar for that window.
type BlockedWindow struct {
	EmployeeID string
	Window     Window
	Reason     string
}

// SolveInput is the fully-parsed constraint model for one solve request.
// It is created fresh per request and discarded with the response.
type SolveInput struct {
	Employees []Employee
	Slots     []Slot
	Locked    []LockRequest
	Blocked   []BlockedWindow
}

// SolveStats summarizes one solver pass.
type SolveStats struct {
	TotalSlots    int
	TotalRequired int
	Filled        int
	UnfilledSlots int
	Duration      time.Duration
}

// SolveResult is the complete outcome of one solve: the best-effort roster,
// the bottleneck report, and coverage as a ratio in [0, 1].
type SolveResult struct {
	Roster      []Assignment
	Bottlenecks []Bottleneck
	Coverage    float64
	Stats       SolveStats
}

// SolveRun is the persisted record of one completed solve.
type SolveRun struct {
	ID              string
	RosterID        string
	Solver          string
	Status          string
	Coverage        float64
	TotalRequired   int
	Filled          int
	BottleneckCount int
	Result          []byte
	CreatedAt       time.Time
}
