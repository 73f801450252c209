package solver

import (
	"fmt"

	"github.com/spec-kit/roster-solver/internal/domain"
)

// analyze classifies every unfilled slot against the final allocation state.
// The checks run from the most fundamental cause down: missing capability,
// then no calendar availability, then supply consumed by earlier slots.
// Classification is re-evaluated over the same eligibility computation the
// allocator used, so it is deterministic for a given input.
func analyze(m *model, st *allocState, shortfalls []domain.SlotKey) []domain.Bottleneck {
	bottlenecks := make([]domain.Bottleneck, 0, len(shortfalls))

	for _, key := range shortfalls {
		slot := m.slotByKey[key]
		filled := st.filled[key]
		shortfall := slot.Required - filled

		reason := classify(m, slot)
		bottlenecks = append(bottlenecks, domain.Bottleneck{
			Slot:       key,
			Required:   slot.Required,
			Filled:     filled,
			Shortfall:  shortfall,
			Severity:   domain.SeverityForShortfall(shortfall),
			Reason:     reason,
			Suggestion: suggestion(reason, key, shortfall),
		})
	}

	return bottlenecks
}

func classify(m *model, slot *domain.Slot) domain.BottleneckReason {
	capable := 0
	available := 0
	window := slot.Key.Window()

	for _, emp := range m.employees {
		if !capableForSlot(emp, slot) {
			continue
		}
		capable++
		if emp.IsAvailable(window) {
			available++
		}
	}

	switch {
	case capable == 0:
		return domain.ReasonNoCapability
	case available == 0:
		return domain.ReasonAllBlocked
	default:
		return domain.ReasonWorkloadExhausted
	}
}

func suggestion(reason domain.BottleneckReason, key domain.SlotKey, shortfall int) string {
	switch reason {
	case domain.ReasonNoCapability:
		if shortfall == 1 {
			return fmt.Sprintf("Train 1 more employee in service %s", key.Service)
		}
		return fmt.Sprintf("Train %d more employees in service %s", shortfall, key.Service)
	case domain.ReasonAllBlocked:
		return fmt.Sprintf("Adjust availability or reduce concurrent demand on %s %s", key.Date, key.PartOfDay)
	default:
		return fmt.Sprintf("Hire additional capacity or reduce the requirement for %s by %d", key, shortfall)
	}
}
