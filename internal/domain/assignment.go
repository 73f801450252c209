package domain

import "fmt"

// AssignmentSource marks how an assignment was produced.
type AssignmentSource string

const (
	SourcePrePlanned AssignmentSource = "pre-planned"
	SourceGreedy     AssignmentSource = "greedy"
)

// Assignment places one employee on one slot. Locked assignments originate
// from pre-planning and are never altered by the allocator.
type Assignment struct {
	ID         string
	Slot       SlotKey
	EmployeeID string
	Source     AssignmentSource
	Locked     bool
}

// AssignmentID derives the deterministic identifier for a slot/employee pair.
// Identifiers must be stable across repeated solves of the same input.
func AssignmentID(slot SlotKey, employeeID string) string {
	return fmt.Sprintf("%s_%s_%s_%s", employeeID, slot.Date, slot.PartOfDay, slot.Service)
}
