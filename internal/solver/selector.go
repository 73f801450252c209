package solver

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/roster-solver/internal/domain"
	apperrors "github.com/spec-kit/roster-solver/pkg/util"
)

// Strategy enumerates the available solver strategies.
type Strategy string

const (
	StrategyGreedy     Strategy = "greedy"
	StrategySequential Strategy = "sequential"
	StrategyCPSAT      Strategy = "cpsat"
)

// ParseStrategy maps a raw configuration value to a strategy, defaulting to
// greedy for unknown values.
func ParseStrategy(raw string) Strategy {
	switch Strategy(strings.ToLower(raw)) {
	case StrategySequential:
		return StrategySequential
	case StrategyCPSAT:
		return StrategyCPSAT
	default:
		return StrategyGreedy
	}
}

// Selector routes a solve request to the implementation for its strategy.
// Greedy is the primary strategy; sequential and CP-SAT are placeholders.
type Selector struct {
	engine *Engine
	logger *zap.Logger
}

// NewSelector creates the selector.
func NewSelector(engine *Engine, logger *zap.Logger) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Selector{engine: engine, logger: logger}
}

// Solve executes the requested strategy.
func (s *Selector) Solve(ctx context.Context, strategy Strategy, input *domain.SolveInput) (*domain.SolveResult, error) {
	switch strategy {
	case StrategyGreedy:
		return s.engine.Solve(ctx, input)
	case StrategySequential:
		return nil, apperrors.NewNotImplemented("sequential solver not yet implemented")
	case StrategyCPSAT:
		return nil, apperrors.NewNotImplemented("CP-SAT solver not yet implemented")
	default:
		s.logger.Warn("unknown solver strategy, defaulting to greedy", zap.String("strategy", string(strategy)))
		return s.engine.Solve(ctx, input)
	}
}
