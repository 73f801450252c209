// Package solver implements the greedy rostering engine: a single-pass,
// deterministic allocation of employees to slots, followed by root-cause
// analysis of every slot that could not be filled.
package solver

import (
	"sort"

	"github.com/spec-kit/roster-solver/internal/domain"
)

// model is the indexed, read-only view of one solve request. It is built
// fresh per solve and never shared between requests.
type model struct {
	slots     []domain.Slot // deterministic allocation order
	slotByKey map[domain.SlotKey]*domain.Slot
	employees []*domain.Employee // ascending employee id
	empByID   map[string]*domain.Employee
}

// buildModel copies the input into indexed structures, applies blocked
// windows to the availability calendars, and fixes the slot and employee
// orderings used by every later stage.
func buildModel(input *domain.SolveInput) *model {
	m := &model{
		slots:     make([]domain.Slot, len(input.Slots)),
		slotByKey: make(map[domain.SlotKey]*domain.Slot, len(input.Slots)),
		employees: make([]*domain.Employee, 0, len(input.Employees)),
		empByID:   make(map[string]*domain.Employee, len(input.Employees)),
	}

	copy(m.slots, input.Slots)
	sort.Slice(m.slots, func(i, j int) bool {
		return m.slots[i].Key.Less(m.slots[j].Key)
	})
	for i := range m.slots {
		m.slotByKey[m.slots[i].Key] = &m.slots[i]
	}

	for i := range input.Employees {
		src := &input.Employees[i]
		emp := &domain.Employee{
			ID:           src.ID,
			Name:         src.Name,
			Team:         src.Team,
			Capabilities: make(map[string]bool, len(src.Capabilities)),
			Availability: make(map[domain.Window]bool, len(src.Availability)),
		}
		for service, capable := range src.Capabilities {
			emp.Capabilities[service] = capable
		}
		for window, ok := range src.Availability {
			emp.Availability[window] = ok
		}
		m.employees = append(m.employees, emp)
		m.empByID[emp.ID] = emp
	}
	sort.Slice(m.employees, func(i, j int) bool {
		return m.employees[i].ID < m.employees[j].ID
	})

	// Absences override the calendar regardless of declared availability.
	for _, blocked := range input.Blocked {
		if emp, ok := m.empByID[blocked.EmployeeID]; ok {
			delete(emp.Availability, blocked.Window)
		}
	}

	return m
}

// capableForSlot reports whether the employee can in principle serve the
// slot: capability held and, when the slot is reserved to a team, team match.
func capableForSlot(emp *domain.Employee, slot *domain.Slot) bool {
	if !emp.CanPerform(slot.Key.Service) {
		return false
	}
	if slot.Team != "" && emp.Team != slot.Team {
		return false
	}
	return true
}
