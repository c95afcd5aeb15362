// Package handlers wires HTTP requests onto the wave planning pipeline.
package handlers

import (
	"errors"

	"github.com/Yeong-ho/jeju-onul-api/internal/models"
	"github.com/Yeong-ho/jeju-onul-api/internal/planner"
	"github.com/Yeong-ho/jeju-onul-api/pkg/logger"
	"github.com/Yeong-ho/jeju-onul-api/pkg/routing"
	"github.com/Yeong-ho/jeju-onul-api/pkg/solver"
	"github.com/gofiber/fiber/v2"
)

// Handler holds the collaborators every route needs.
type Handler struct {
	solver  *solver.Client
	routing *routing.Client
	deps    planner.Deps
	log     *logger.Logger
	version string
}

// New builds a Handler.
func New(solverClient *solver.Client, routingClient *routing.Client, deps planner.Deps, log *logger.Logger, version string) *Handler {
	return &Handler{
		solver:  solverClient,
		routing: routingClient,
		deps:    deps,
		log:     log,
		version: version,
	}
}

// Version handles GET /version. It returns the bare version string, not a
// JSON object, matching the collaborator contract other fleet tooling
// already depends on.
func (h *Handler) Version(c *fiber.Ctx) error {
	return c.JSON(h.version)
}

// Health handles GET /health.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// errorStatus maps a planner sentinel error to an HTTP status code.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, planner.ErrMissingStopoverTime):
		return fiber.StatusBadRequest
	case errors.Is(err, planner.ErrUnsupportedStatus):
		return fiber.StatusBadRequest
	case errors.Is(err, planner.ErrSwapReconciliation):
		return fiber.StatusInternalServerError
	case errors.Is(err, planner.ErrSolverUpstream):
		return fiber.StatusInternalServerError
	case errors.Is(err, solver.ErrUpstreamStatus):
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}

// plan runs the full wave planning pipeline for a decoded request, shared
// by the v1 and v2 entry points.
func (h *Handler) plan(c *fiber.Ctx, req *models.Request) error {
	deps := h.deps
	deps.Solver = h.solver
	deps.Routing = h.routing
	deps.Version = h.version

	handler := planner.NewHandler(req, deps)

	resp, err := handler.Plan(c.Context(), req)
	if err != nil {
		h.log.PlanFailed(err)
		return c.Status(errorStatus(err)).JSON(fiber.Map{"detail": err.Error()})
	}

	return c.JSON(resp)
}

// JejuOnul handles POST /v1/jeju_onul: decode, run the pipeline, respond.
func (h *Handler) JejuOnul(c *fiber.Ctx) error {
	var req models.Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body: " + err.Error()})
	}

	return h.plan(c, &req)
}

// JejuOnulBefore handles POST /v2/jeju_onul_before. It runs a zone
// pre-pass that fills in each work item's pickup/delivery group from the
// request's own boundary polygons before the caller has to know the group
// itself, then runs the same pipeline as v1.
func (h *Handler) JejuOnulBefore(c *fiber.Ctx) error {
	var req models.Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body: " + err.Error()})
	}

	zones := planner.ZonesFromBoundaries(req.Boundaries)
	planner.AssignWorkGroups(zones, req.Works)

	return h.plan(c, &req)
}

// JejuOnulAfter handles POST /v2/jeju_onul_after. Post-pass reassignment
// of an already-running plan is not implemented yet.
func (h *Handler) JejuOnulAfter(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{"detail": "jeju_onul_after is not implemented yet"})
}

// AutoPilot handles POST /v2/auto_pilot. Fully autonomous re-optimization
// without an inbound request payload is not implemented yet.
func (h *Handler) AutoPilot(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{"detail": "auto_pilot is not implemented yet"})
}
