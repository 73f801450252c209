package solver

import "github.com/spec-kit/roster-solver/internal/domain"

// occupancy marks one employee as busy during one window.
type occupancy struct {
	employeeID string
	window     domain.Window
}

// allocState carries the mutable allocation state through one solve pass.
// Workload counters only ever increase; the analyzer reads them but never
// mutates them.
type allocState struct {
	workload map[string]int
	occupied map[occupancy]bool
	filled   map[domain.SlotKey]int
	roster   []domain.Assignment
}

func newAllocState(m *model) *allocState {
	st := &allocState{
		workload: make(map[string]int, len(m.employees)),
		occupied: make(map[occupancy]bool),
		filled:   make(map[domain.SlotKey]int, len(m.slots)),
		roster:   make([]domain.Assignment, 0),
	}
	for _, emp := range m.employees {
		st.workload[emp.ID] = 0
	}
	return st
}

// place records one assignment and updates workload, occupancy, and fill
// counts so every subsequent decision sees the new state.
func (st *allocState) place(slot domain.SlotKey, employeeID string, locked bool) {
	source := domain.SourceGreedy
	if locked {
		source = domain.SourcePrePlanned
	}
	st.roster = append(st.roster, domain.Assignment{
		ID:         domain.AssignmentID(slot, employeeID),
		Slot:       slot,
		EmployeeID: employeeID,
		Source:     source,
		Locked:     locked,
	})
	st.workload[employeeID]++
	st.occupied[occupancy{employeeID: employeeID, window: slot.Window()}] = true
	st.filled[slot]++
}

// isOccupied reports whether the employee already works some slot in the window.
func (st *allocState) isOccupied(employeeID string, window domain.Window) bool {
	return st.occupied[occupancy{employeeID: employeeID, window: window}]
}
