package solver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/roster-solver/internal/domain"
	"github.com/spec-kit/roster-solver/internal/solver"
	apperrors "github.com/spec-kit/roster-solver/pkg/util"
)

func TestParseStrategy(t *testing.T) {
	tests := map[string]solver.Strategy{
		"greedy":     solver.StrategyGreedy,
		"GREEDY":     solver.StrategyGreedy,
		"sequential": solver.StrategySequential,
		"cpsat":      solver.StrategyCPSAT,
		"CPSAT":      solver.StrategyCPSAT,
		"":           solver.StrategyGreedy,
		"simplex":    solver.StrategyGreedy,
	}
	for raw, expected := range tests {
		assert.Equal(t, expected, solver.ParseStrategy(raw), "raw %q", raw)
	}
}

func TestSelectorPlaceholderStrategies(t *testing.T) {
	selector := solver.NewSelector(solver.NewEngine(nil), nil)
	input := &domain.SolveInput{
		Slots: []domain.Slot{
			{Key: domain.SlotKey{Date: monday, PartOfDay: domain.PartOfDayMorning, Service: "X"}, Required: 1},
		},
	}

	for _, strategy := range []solver.Strategy{solver.StrategySequential, solver.StrategyCPSAT} {
		result, err := selector.Solve(context.Background(), strategy, input)
		require.Error(t, err)
		assert.Nil(t, result)

		var domainErr *apperrors.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "NOT_IMPLEMENTED", domainErr.Code)
	}
}

func TestSelectorGreedy(t *testing.T) {
	selector := solver.NewSelector(solver.NewEngine(nil), nil)
	input := &domain.SolveInput{
		Employees: []domain.Employee{
			employee("A", []string{"X"}, window(monday, domain.PartOfDayMorning)),
		},
		Slots: []domain.Slot{
			{Key: slotKey(monday, domain.PartOfDayMorning, "X"), Required: 1},
		},
	}

	result, err := selector.Solve(context.Background(), solver.StrategyGreedy, input)
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.Coverage)
}
