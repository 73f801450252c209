package solver

import (
	"context"
	"sort"

	"github.com/spec-kit/roster-solver/internal/domain"
)

// allocate runs the greedy pass: slots in deterministic order, each filled
// from the least-loaded eligible employees. Decisions are final; there is no
// backtracking, swapping, or unassigning. Slots left with unmet residual
// headcount are returned for the bottleneck analyzer.
//
// The pass is checkpointed at slot granularity: ctx is checked between slot
// iterations so a timed-out request aborts without corrupting anything that
// outlives the request.
func allocate(ctx context.Context, m *model, st *allocState) ([]domain.SlotKey, error) {
	var shortfalls []domain.SlotKey

	for i := range m.slots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		slot := &m.slots[i]
		residual := slot.Required - st.filled[slot.Key]
		if residual <= 0 {
			continue
		}

		for _, emp := range eligibleEmployees(m, st, slot) {
			if residual == 0 {
				break
			}
			st.place(slot.Key, emp.ID, false)
			residual--
		}

		if residual > 0 {
			shortfalls = append(shortfalls, slot.Key)
		}
	}

	return shortfalls, nil
}

// eligibleEmployees computes the employees that may take the slot right now:
// capability and team match, calendar availability, and no other assignment
// in the same window. The result is ordered by ascending workload, ties
// broken by ascending employee id, which is the load-balancing policy.
func eligibleEmployees(m *model, st *allocState, slot *domain.Slot) []*domain.Employee {
	window := slot.Key.Window()

	eligible := make([]*domain.Employee, 0, len(m.employees))
	for _, emp := range m.employees {
		if !capableForSlot(emp, slot) {
			continue
		}
		if !emp.IsAvailable(window) {
			continue
		}
		if st.isOccupied(emp.ID, window) {
			continue
		}
		eligible = append(eligible, emp)
	}

	// m.employees is id-ascending, so the stable sort leaves equal workloads
	// in id order.
	sort.SliceStable(eligible, func(i, j int) bool {
		return st.workload[eligible[i].ID] < st.workload[eligible[j].ID]
	})

	return eligible
}
