package fiber

import (
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"dashboard-analytics-service/internal/executionlogs/core/usecase"
)

type StoreLogUseCase interface {
	Execute(ctx context.Context, in usecase.StoreLogInput) (bool, error)
	BulkStoreLogs(ctx context.Context, in usecase.BulkStoreLogsInput) (usecase.BulkStoreLogsResult, error)
}

type LogHandler struct {
	storeUC StoreLogUseCase
}

func NewLogHandler(storeUC StoreLogUseCase) *LogHandler {
	return &LogHandler{storeUC: storeUC}
}

func toInput(req CreateLogRequest) usecase.StoreLogInput {
	return usecase.StoreLogInput{
		ID:          req.ID,
		WorkflowID:  req.WorkflowID,
		ExecutionID: req.ExecutionID,
		Level:       req.Level,
		Message:     req.Message,
		Duration:    req.Duration,
		CreatedAt:   req.CreatedAt,
	}
}

// CreateLog godoc
// @Summary Ingest an execution log entry
// @Description Stores a single execution log entry; resending the same entry is a no-op
// @Tags Logs
// @Accept json
// @Produce json
// @Param request body CreateLogRequest true "Log entry"
// @Success 201 {object} CreateLogResponse
// @Success 200 {object} CreateLogResponse "Duplicate entry"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /logs [post]
func (h *LogHandler) CreateLog(c *fiber.Ctx) error {
	var req CreateLogRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_json",
		})
	}

	created, err := h.storeUC.Execute(c.UserContext(), toInput(req))
	if err != nil {
		return writeError(c, err)
	}

	if !created {
		return c.Status(http.StatusOK).JSON(CreateLogResponse{Status: "duplicate"})
	}
	return c.Status(http.StatusCreated).JSON(CreateLogResponse{Status: "created"})
}

// BulkCreateLogs godoc
// @Summary Bulk ingest execution log entries
// @Description Validates every entry first, then stores them individually
// @Tags Logs
// @Accept json
// @Produce json
// @Param request body BulkCreateLogsRequest true "Log entries"
// @Success 201 {object} BulkCreateLogsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /logs/bulk [post]
func (h *LogHandler) BulkCreateLogs(c *fiber.Ctx) error {
	var req BulkCreateLogsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_json",
		})
	}

	if len(req.Logs) == 0 {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "logs_list_required",
		})
	}

	inputs := make([]usecase.StoreLogInput, len(req.Logs))
	for i, l := range req.Logs {
		inputs[i] = toInput(l)
	}

	result, err := h.storeUC.BulkStoreLogs(c.UserContext(), usecase.BulkStoreLogsInput{Logs: inputs})
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(BulkCreateLogsResponse{
		Created:    result.Created,
		Duplicates: result.Duplicates,
	})
}

func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidLog),
		errors.Is(err, usecase.ErrFutureTime):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_log",
			Message: err.Error(),
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}
