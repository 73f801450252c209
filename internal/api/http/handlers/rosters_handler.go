package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/roster-solver/internal/service"
)

// RostersHandler serves persisted solve results.
type RostersHandler struct {
	service *service.SolveService
}

// NewRostersHandler constructs handler.
func NewRostersHandler(solveService *service.SolveService) *RostersHandler {
	return &RostersHandler{service: solveService}
}

// GetRoster GET /rosters/:id.
func (h *RostersHandler) GetRoster(c *fiber.Ctx) error {
	resp, err := h.service.GetRoster(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": resp})
}

// ListRecent GET /rosters.
func (h *RostersHandler) ListRecent(c *fiber.Ctx) error {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	runs, err := h.service.ListRecent(c.UserContext(), limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": runs})
}
