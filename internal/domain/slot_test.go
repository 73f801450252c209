package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/roster-solver/internal/domain"
)

func TestSlotKeyOrdering(t *testing.T) {
	tests := map[string]struct {
		a, b domain.SlotKey
	}{
		"earlier date wins": {
			a: domain.SlotKey{Date: "2026-01-05", PartOfDay: domain.PartOfDayNight, Service: "z"},
			b: domain.SlotKey{Date: "2026-01-06", PartOfDay: domain.PartOfDayMorning, Service: "a"},
		},
		"part of day orders chronologically, not lexically": {
			// "afternoon" < "morning" as strings; chronological order must win.
			a: domain.SlotKey{Date: "2026-01-05", PartOfDay: domain.PartOfDayMorning, Service: "z"},
			b: domain.SlotKey{Date: "2026-01-05", PartOfDay: domain.PartOfDayAfternoon, Service: "a"},
		},
		"evening before night": {
			a: domain.SlotKey{Date: "2026-01-05", PartOfDay: domain.PartOfDayEvening, Service: "x"},
			b: domain.SlotKey{Date: "2026-01-05", PartOfDay: domain.PartOfDayNight, Service: "x"},
		},
		"service breaks final tie": {
			a: domain.SlotKey{Date: "2026-01-05", PartOfDay: domain.PartOfDayMorning, Service: "a"},
			b: domain.SlotKey{Date: "2026-01-05", PartOfDay: domain.PartOfDayMorning, Service: "b"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.True(t, tc.a.Less(tc.b))
			assert.False(t, tc.b.Less(tc.a))
		})
	}
}

func TestSlotKeyLessIsIrreflexive(t *testing.T) {
	key := domain.SlotKey{Date: "2026-01-05", PartOfDay: domain.PartOfDayMorning, Service: "x"}
	assert.False(t, key.Less(key))
}

func TestParsePartOfDay(t *testing.T) {
	for _, valid := range []string{"morning", "afternoon", "evening", "night"} {
		pod, err := domain.ParsePartOfDay(valid)
		require.NoError(t, err)
		assert.Equal(t, domain.PartOfDay(valid), pod)
	}

	_, err := domain.ParsePartOfDay("ochtend")
	assert.Error(t, err)
	_, err = domain.ParsePartOfDay("")
	assert.Error(t, err)
}

func TestSeverityForShortfall(t *testing.T) {
	assert.Equal(t, domain.SeverityHigh, domain.SeverityForShortfall(1))
	assert.Equal(t, domain.SeverityCritical, domain.SeverityForShortfall(2))
	assert.Equal(t, domain.SeverityCritical, domain.SeverityForShortfall(5))
}

func TestAssignmentID(t *testing.T) {
	key := domain.SlotKey{Date: "2026-01-05", PartOfDay: domain.PartOfDayMorning, Service: "X"}
	assert.Equal(t, "A_2026-01-05_morning_X", domain.AssignmentID(key, "A"))
}
