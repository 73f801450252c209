package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/roster-solver/internal/api/dto"
	"github.com/spec-kit/roster-solver/internal/service"
	"github.com/spec-kit/roster-solver/internal/solver"
	apperrors "github.com/spec-kit/roster-solver/pkg/util"
)

// SolveHandler manages the solver endpoints.
type SolveHandler struct {
	service *service.SolveService
}

// NewSolveHandler constructs handler.
func NewSolveHandler(solveService *service.SolveService) *SolveHandler {
	return &SolveHandler{service: solveService}
}

// SolveGreedy POST /solve/greedy.
func (h *SolveHandler) SolveGreedy(c *fiber.Ctx) error {
	return h.solve(c, solver.StrategyGreedy)
}

// SolveSequential POST /solve/sequential.
func (h *SolveHandler) SolveSequential(c *fiber.Ctx) error {
	return h.solve(c, solver.StrategySequential)
}

// SolveCPSAT POST /solve/cpsat.
func (h *SolveHandler) SolveCPSAT(c *fiber.Ctx) error {
	return h.solve(c, solver.StrategyCPSAT)
}

func (h *SolveHandler) solve(c *fiber.Ctx, strategy solver.Strategy) error {
	var req dto.SolveRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	resp, err := h.service.Solve(c.UserContext(), strategy, &req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": resp})
}
