package fiber

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"dashboard-analytics-service/internal/dashboard/core/analytics"
	"dashboard-analytics-service/internal/dashboard/core/domain"
	"dashboard-analytics-service/internal/dashboard/core/usecase"
)

type GetDashboardUseCase interface {
	Execute(ctx context.Context, in usecase.GetDashboardInput) (*domain.DashboardSnapshot, error)
}

type ComputeSnapshotUseCase interface {
	Execute(ctx context.Context, feeds domain.Feeds) (*domain.DashboardSnapshot, error)
}

type DashboardHandler struct {
	getUC     GetDashboardUseCase
	computeUC ComputeSnapshotUseCase
}

func NewDashboardHandler(getUC GetDashboardUseCase, computeUC ComputeSnapshotUseCase) *DashboardHandler {
	return &DashboardHandler{getUC: getUC, computeUC: computeUC}
}

// GetDashboard godoc
// @Summary Build the analytics dashboard
// @Description Reads workflows, execution logs, sessions, stats and users from the store and aggregates them into one snapshot
// @Tags Dashboard
// @Produce json
// @Param lookback query string false "Log and session window, e.g. 72h"
// @Param workflow_ids query string false "Comma separated workflow ids to restrict execution logs to"
// @Success 200 {object} domain.DashboardSnapshot
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	var in usecase.GetDashboardInput

	if raw := c.Query("lookback", ""); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_query",
				Message: "invalid 'lookback' parameter",
			})
		}
		in.Lookback = d
	}

	if raw := c.Query("workflow_ids", ""); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				in.WorkflowIDs = append(in.WorkflowIDs, id)
			}
		}
	}

	snap, err := h.getUC.Execute(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(snap)
}

// ComputeSnapshot godoc
// @Summary Aggregate supplied feeds
// @Description Aggregates feeds sent in the request body without touching the store
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param request body domain.Feeds true "Input feeds"
// @Success 200 {object} domain.DashboardSnapshot
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /dashboard/snapshot [post]
func (h *DashboardHandler) ComputeSnapshot(c *fiber.Ctx) error {
	var feeds domain.Feeds
	if err := c.BodyParser(&feeds); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_json",
		})
	}

	snap, err := h.computeUC.Execute(c.UserContext(), feeds)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(snap)
}

func writeError(c *fiber.Ctx, err error) error {
	var inc *analytics.InconsistencyError
	switch {
	case errors.As(err, &inc):
		return c.Status(http.StatusConflict).JSON(ErrorResponse{
			Error:   "data_inconsistency",
			Message: err.Error(),
			Details: &InconsistencyDetails{
				TotalUsers:           inc.TotalUsers,
				TotalCategorized:     inc.TotalCategorized,
				Delta:                inc.Delta,
				UncategorizedUserIDs: inc.UncategorizedUserIDs,
			},
		})
	case errors.Is(err, usecase.ErrNoData):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error:   "no_data",
			Message: err.Error(),
		})
	case errors.Is(err, usecase.ErrInvalidLookback):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_query",
			Message: err.Error(),
		})
	case errors.Is(err, usecase.ErrInvalidFeeds):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_feeds",
			Message: err.Error(),
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}
