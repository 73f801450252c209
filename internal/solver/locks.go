package solver

import (
	"github.com/spec-kit/roster-solver/internal/domain"
	apperrors "github.com/spec-kit/roster-solver/pkg/util"
)

// lockStage validates every pre-planned assignment and freezes it into the
// allocation state. Any invalid lock aborts the solve before allocation
// begins; no partial roster is produced from this stage.
func lockStage(m *model, locked []domain.LockRequest) (*allocState, error) {
	st := newAllocState(m)

	for _, lock := range locked {
		details := map[string]any{
			"slot":        lock.Slot.String(),
			"employee_id": lock.EmployeeID,
		}

		slot, ok := m.slotByKey[lock.Slot]
		if !ok {
			return nil, apperrors.NewValidationError("locked assignment references unknown slot", details)
		}
		emp, ok := m.empByID[lock.EmployeeID]
		if !ok {
			return nil, apperrors.NewValidationError("locked assignment references unknown employee", details)
		}
		if !emp.CanPerform(slot.Key.Service) {
			return nil, apperrors.NewValidationError("locked employee lacks required capability", details)
		}
		if !emp.IsAvailable(slot.Key.Window()) {
			return nil, apperrors.NewValidationError("locked employee not available for slot window", details)
		}
		if st.isOccupied(emp.ID, slot.Key.Window()) {
			return nil, apperrors.NewValidationError("locked employee double-booked in window", details)
		}
		if st.filled[slot.Key] >= slot.Required {
			return nil, apperrors.NewValidationError("locked assignments exceed required headcount", details)
		}

		st.place(slot.Key, emp.ID, true)
	}

	return st, nil
}
