package solver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/roster-solver/internal/domain"
	"github.com/spec-kit/roster-solver/internal/solver"
	apperrors "github.com/spec-kit/roster-solver/pkg/util"
)

const (
	monday  = "2026-01-05"
	tuesday = "2026-01-06"
)

func window(date string, pod domain.PartOfDay) domain.Window {
	return domain.Window{Date: date, PartOfDay: pod}
}

func slotKey(date string, pod domain.PartOfDay, service string) domain.SlotKey {
	return domain.SlotKey{Date: date, PartOfDay: pod, Service: service}
}

func employee(id string, capabilities []string, windows ...domain.Window) domain.Employee {
	emp := domain.Employee{
		ID:           id,
		Name:         id,
		Capabilities: make(map[string]bool, len(capabilities)),
		Availability: make(map[domain.Window]bool, len(windows)),
	}
	for _, service := range capabilities {
		emp.Capabilities[service] = true
	}
	for _, w := range windows {
		emp.Availability[w] = true
	}
	return emp
}

func solve(t *testing.T, input *domain.SolveInput) *domain.SolveResult {
	t.Helper()
	result, err := solver.NewEngine(nil).Solve(context.Background(), input)
	require.NoError(t, err)
	return result
}

func TestSolveTwoEmployeesTwoSlots(t *testing.T) {
	// A can only work the morning; B can work morning and afternoon. The
	// morning tie at workload zero goes to A by id order, which leaves B free
	// for the afternoon.
	input := &domain.SolveInput{
		Employees: []domain.Employee{
			employee("A", []string{"X"}, window(monday, domain.PartOfDayMorning)),
			employee("B", []string{"X"}, window(monday, domain.PartOfDayMorning), window(monday, domain.PartOfDayAfternoon)),
		},
		Slots: []domain.Slot{
			{Key: slotKey(monday, domain.PartOfDayMorning, "X"), Required: 1},
			{Key: slotKey(monday, domain.PartOfDayAfternoon, "X"), Required: 1},
		},
	}

	result := solve(t, input)

	require.Len(t, result.Roster, 2)
	assert.Equal(t, "A", result.Roster[0].EmployeeID)
	assert.Equal(t, slotKey(monday, domain.PartOfDayMorning, "X"), result.Roster[0].Slot)
	assert.Equal(t, "B", result.Roster[1].EmployeeID)
	assert.Equal(t, slotKey(monday, domain.PartOfDayAfternoon, "X"), result.Roster[1].Slot)
	assert.Equal(t, 1.0, result.Coverage)
	assert.Empty(t, result.Bottlenecks)
}

func TestSolveNoCapability(t *testing.T) {
	input := &domain.SolveInput{
		Employees: []domain.Employee{
			employee("A", []string{"Y"}, window(monday, domain.PartOfDayMorning)),
		},
		Slots: []domain.Slot{
			{Key: slotKey(monday, domain.PartOfDayMorning, "Z"), Required: 1},
		},
	}

	result := solve(t, input)

	assert.Empty(t, result.Roster)
	assert.Equal(t, 0.0, result.Coverage)
	require.Len(t, result.Bottlenecks, 1)
	bottleneck := result.Bottlenecks[0]
	assert.Equal(t, domain.ReasonNoCapability, bottleneck.Reason)
	assert.Equal(t, 1, bottleneck.Shortfall)
	assert.Equal(t, domain.SeverityHigh, bottleneck.Severity)
	assert.Contains(t, bottleneck.Suggestion, "Train")
}

func TestSolveBottleneckClassification(t *testing.T) {
	morningX := slotKey(monday, domain.PartOfDayMorning, "X")

	tests := map[string]struct {
		input    *domain.SolveInput
		expected domain.BottleneckReason
	}{
		"no capability wins over everything": {
			input: &domain.SolveInput{
				Employees: []domain.Employee{employee("A", []string{"Y"})},
				Slots:     []domain.Slot{{Key: morningX, Required: 1}},
			},
			expected: domain.ReasonNoCapability,
		},
		"capable but calendar never covers window": {
			input: &domain.SolveInput{
				Employees: []domain.Employee{
					employee("A", []string{"X"}, window(tuesday, domain.PartOfDayMorning)),
				},
				Slots: []domain.Slot{{Key: morningX, Required: 1}},
			},
			expected: domain.ReasonAllBlocked,
		},
		"capable but absence blocks the window": {
			input: &domain.SolveInput{
				Employees: []domain.Employee{
					employee("A", []string{"X"}, window(monday, domain.PartOfDayMorning)),
				},
				Slots: []domain.Slot{{Key: morningX, Required: 1}},
				Blocked: []domain.BlockedWindow{
					{EmployeeID: "A", Window: window(monday, domain.PartOfDayMorning), Reason: "sick"},
				},
			},
			expected: domain.ReasonAllBlocked,
		},
		"available but consumed by earlier slot in same window": {
			input: &domain.SolveInput{
				Employees: []domain.Employee{
					employee("A", []string{"W", "X"}, window(monday, domain.PartOfDayMorning)),
				},
				Slots: []domain.Slot{
					{Key: slotKey(monday, domain.PartOfDayMorning, "W"), Required: 1},
					{Key: morningX, Required: 1},
				},
			},
			expected: domain.ReasonWorkloadExhausted,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			result := solve(t, tc.input)
			require.NotEmpty(t, result.Bottlenecks)
			last := result.Bottlenecks[len(result.Bottlenecks)-1]
			assert.Equal(t, tc.expected, last.Reason)
		})
	}
}

func TestSolveLockValidation(t *testing.T) {
	morningX := slotKey(monday, domain.PartOfDayMorning, "X")

	tests := map[string]struct {
		input *domain.SolveInput
	}{
		"lock references unknown slot": {
			input: &domain.SolveInput{
				Employees: []domain.Employee{employee("A", []string{"X"}, window(monday, domain.PartOfDayMorning))},
				Slots:     []domain.Slot{{Key: morningX, Required: 1}},
				Locked: []domain.LockRequest{
					{Slot: slotKey(tuesday, domain.PartOfDayMorning, "X"), EmployeeID: "A"},
				},
			},
		},
		"lock references unknown employee": {
			input: &domain.SolveInput{
				Employees: []domain.Employee{employee("A", []string{"X"}, window(monday, domain.PartOfDayMorning))},
				Slots:     []domain.Slot{{Key: morningX, Required: 1}},
				Locked:    []domain.LockRequest{{Slot: morningX, EmployeeID: "ghost"}},
			},
		},
		"lock pins unqualified employee": {
			input: &domain.SolveInput{
				Employees: []domain.Employee{employee("A", []string{"Y"}, window(monday, domain.PartOfDayMorning))},
				Slots:     []domain.Slot{{Key: morningX, Required: 1}},
				Locked:    []domain.LockRequest{{Slot: morningX, EmployeeID: "A"}},
			},
		},
		"lock pins unavailable employee": {
			input: &domain.SolveInput{
				Employees: []domain.Employee{employee("A", []string{"X"}, window(tuesday, domain.PartOfDayMorning))},
				Slots:     []domain.Slot{{Key: morningX, Required: 1}},
				Locked:    []domain.LockRequest{{Slot: morningX, EmployeeID: "A"}},
			},
		},
		"locks exceed required headcount": {
			input: &domain.SolveInput{
				Employees: []domain.Employee{
					employee("A", []string{"X"}, window(monday, domain.PartOfDayMorning)),
					employee("B", []string{"X"}, window(monday, domain.PartOfDayMorning)),
				},
				Slots: []domain.Slot{{Key: morningX, Required: 1}},
				Locked: []domain.LockRequest{
					{Slot: morningX, EmployeeID: "A"},
					{Slot: morningX, EmployeeID: "B"},
				},
			},
		},
		"locks double-book one employee in a window": {
			input: &domain.SolveInput{
				Employees: []domain.Employee{
					employee("A", []string{"X", "Y"}, window(monday, domain.PartOfDayMorning)),
				},
				Slots: []domain.Slot{
					{Key: morningX, Required: 1},
					{Key: slotKey(monday, domain.PartOfDayMorning, "Y"), Required: 1},
				},
				Locked: []domain.LockRequest{
					{Slot: morningX, EmployeeID: "A"},
					{Slot: slotKey(monday, domain.PartOfDayMorning, "Y"), EmployeeID: "A"},
				},
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			result, err := solver.NewEngine(nil).Solve(context.Background(), tc.input)
			require.Error(t, err)
			assert.Nil(t, result, "validation errors must not return a partial roster")
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}

func TestSolveLockPreservation(t *testing.T) {
	morningX := slotKey(monday, domain.PartOfDayMorning, "X")
	input := &domain.SolveInput{
		Employees: []domain.Employee{
			employee("A", []string{"X"}, window(monday, domain.PartOfDayMorning)),
			employee("B", []string{"X"}, window(monday, domain.PartOfDayMorning)),
		},
		Slots:  []domain.Slot{{Key: morningX, Required: 2}},
		Locked: []domain.LockRequest{{Slot: morningX, EmployeeID: "B"}},
	}

	result := solve(t, input)

	require.Len(t, result.Roster, 2)
	locked := 0
	for _, assignment := range result.Roster {
		if assignment.Locked {
			locked++
			assert.Equal(t, "B", assignment.EmployeeID)
			assert.Equal(t, morningX, assignment.Slot)
			assert.Equal(t, domain.SourcePrePlanned, assignment.Source)
		} else {
			assert.Equal(t, domain.SourceGreedy, assignment.Source)
		}
	}
	assert.Equal(t, 1, locked)
	assert.Equal(t, 1.0, result.Coverage)
}

func TestSolveWorkloadBalancing(t *testing.T) {
	// Both employees can take both windows. The first slot goes to A by id;
	// the second must go to B because A already carries one assignment.
	input := &domain.SolveInput{
		Employees: []domain.Employee{
			employee("A", []string{"X"}, window(monday, domain.PartOfDayMorning), window(monday, domain.PartOfDayAfternoon)),
			employee("B", []string{"X"}, window(monday, domain.PartOfDayMorning), window(monday, domain.PartOfDayAfternoon)),
		},
		Slots: []domain.Slot{
			{Key: slotKey(monday, domain.PartOfDayMorning, "X"), Required: 1},
			{Key: slotKey(monday, domain.PartOfDayAfternoon, "X"), Required: 1},
		},
	}

	result := solve(t, input)

	require.Len(t, result.Roster, 2)
	assert.Equal(t, "A", result.Roster[0].EmployeeID)
	assert.Equal(t, "B", result.Roster[1].EmployeeID)
}

func TestSolveDeterminism(t *testing.T) {
	build := func() *domain.SolveInput {
		return &domain.SolveInput{
			Employees: []domain.Employee{
				employee("C", []string{"X", "Y"}, window(monday, domain.PartOfDayMorning), window(monday, domain.PartOfDayEvening), window(tuesday, domain.PartOfDayMorning)),
				employee("A", []string{"X"}, window(monday, domain.PartOfDayMorning), window(tuesday, domain.PartOfDayMorning)),
				employee("B", []string{"Y"}, window(monday, domain.PartOfDayEvening)),
			},
			// Deliberately out of order; the engine must not depend on input order.
			Slots: []domain.Slot{
				{Key: slotKey(tuesday, domain.PartOfDayMorning, "X"), Required: 2},
				{Key: slotKey(monday, domain.PartOfDayEvening, "Y"), Required: 2},
				{Key: slotKey(monday, domain.PartOfDayMorning, "X"), Required: 1},
			},
		}
	}

	first := solve(t, build())
	second := solve(t, build())

	assert.Equal(t, first.Roster, second.Roster)
	assert.Equal(t, first.Bottlenecks, second.Bottlenecks)
	assert.Equal(t, first.Coverage, second.Coverage)

	// Roster must come out in slot order.
	for i := 1; i < len(first.Roster); i++ {
		prev, cur := first.Roster[i-1].Slot, first.Roster[i].Slot
		assert.False(t, cur.Less(prev), "roster not in slot order at %d", i)
	}
}

func TestSolveInvariants(t *testing.T) {
	input := &domain.SolveInput{
		Employees: []domain.Employee{
			employee("A", []string{"X", "Y"}, window(monday, domain.PartOfDayMorning), window(monday, domain.PartOfDayAfternoon)),
			employee("B", []string{"X"}, window(monday, domain.PartOfDayMorning)),
			employee("C", []string{"Y"}, window(monday, domain.PartOfDayMorning), window(monday, domain.PartOfDayAfternoon)),
		},
		Slots: []domain.Slot{
			{Key: slotKey(monday, domain.PartOfDayMorning, "X"), Required: 2},
			{Key: slotKey(monday, domain.PartOfDayMorning, "Y"), Required: 2},
			{Key: slotKey(monday, domain.PartOfDayAfternoon, "Y"), Required: 2},
		},
	}

	result := solve(t, input)

	// No employee twice in the same window.
	type occupancy struct {
		employee string
		window   domain.Window
	}
	seen := make(map[occupancy]bool)
	perSlot := make(map[domain.SlotKey]int)
	for _, assignment := range result.Roster {
		key := occupancy{employee: assignment.EmployeeID, window: assignment.Slot.Window()}
		assert.False(t, seen[key], "double booking for %s in %v", assignment.EmployeeID, key.window)
		seen[key] = true
		perSlot[assignment.Slot]++
	}

	// Headcount bound and bottleneck completeness.
	totalRequired, filled := 0, 0
	unfilled := make(map[domain.SlotKey]bool)
	for _, slot := range input.Slots {
		assert.LessOrEqual(t, perSlot[slot.Key], slot.Required)
		totalRequired += slot.Required
		filled += perSlot[slot.Key]
		if perSlot[slot.Key] < slot.Required {
			unfilled[slot.Key] = true
		}
	}
	require.Len(t, result.Bottlenecks, len(unfilled))
	for _, bottleneck := range result.Bottlenecks {
		assert.True(t, unfilled[bottleneck.Slot], "bottleneck for filled slot %v", bottleneck.Slot)
		assert.Equal(t, bottleneck.Required-bottleneck.Filled, bottleneck.Shortfall)
	}

	// Coverage correctness.
	assert.InDelta(t, float64(filled)/float64(totalRequired), result.Coverage, 1e-9)
	assert.Equal(t, totalRequired, result.Stats.TotalRequired)
	assert.Equal(t, filled, result.Stats.Filled)
}

func TestSolveTeamFilter(t *testing.T) {
	input := &domain.SolveInput{
		Employees: []domain.Employee{
			{
				ID:           "A",
				Team:         "south",
				Capabilities: map[string]bool{"X": true},
				Availability: map[domain.Window]bool{window(monday, domain.PartOfDayMorning): true},
			},
		},
		Slots: []domain.Slot{
			{Key: slotKey(monday, domain.PartOfDayMorning, "X"), Required: 1, Team: "north"},
		},
	}

	result := solve(t, input)

	assert.Empty(t, result.Roster)
	require.Len(t, result.Bottlenecks, 1)
	assert.Equal(t, domain.ReasonNoCapability, result.Bottlenecks[0].Reason)
}

func TestSolveSeverity(t *testing.T) {
	input := &domain.SolveInput{
		Employees: []domain.Employee{},
		Slots: []domain.Slot{
			{Key: slotKey(monday, domain.PartOfDayMorning, "X"), Required: 2},
		},
	}

	result := solve(t, input)

	require.Len(t, result.Bottlenecks, 1)
	assert.Equal(t, 2, result.Bottlenecks[0].Shortfall)
	assert.Equal(t, domain.SeverityCritical, result.Bottlenecks[0].Severity)
}

func TestSolveCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := &domain.SolveInput{
		Employees: []domain.Employee{employee("A", []string{"X"}, window(monday, domain.PartOfDayMorning))},
		Slots:     []domain.Slot{{Key: slotKey(monday, domain.PartOfDayMorning, "X"), Required: 1}},
	}

	result, err := solver.NewEngine(nil).Solve(ctx, input)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}
