package fiber

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"dashboard-analytics-service/internal/executionlogs/core/usecase"
)

type fakeStoreLogUseCase struct {
	ExecuteFunc   func(ctx context.Context, in usecase.StoreLogInput) (bool, error)
	BulkFunc      func(ctx context.Context, in usecase.BulkStoreLogsInput) (usecase.BulkStoreLogsResult, error)
	LastInput     usecase.StoreLogInput
	LastBulkInput usecase.BulkStoreLogsInput
}

func (f *fakeStoreLogUseCase) Execute(ctx context.Context, in usecase.StoreLogInput) (bool, error) {
	f.LastInput = in
	if f.ExecuteFunc != nil {
		return f.ExecuteFunc(ctx, in)
	}
	return false, nil
}

func (f *fakeStoreLogUseCase) BulkStoreLogs(ctx context.Context, in usecase.BulkStoreLogsInput) (usecase.BulkStoreLogsResult, error) {
	f.LastBulkInput = in
	if f.BulkFunc != nil {
		return f.BulkFunc(ctx, in)
	}
	return usecase.BulkStoreLogsResult{}, nil
}

// helper: create fiber app and routes
func setupTestApp(uc StoreLogUseCase) *fiber.App {
	app := fiber.New()
	h := NewLogHandler(uc)

	app.Post("/logs", h.CreateLog)
	app.Post("/logs/bulk", h.BulkCreateLogs)

	return app
}

// helper: send request
func doRequest(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		buf = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		buf = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	_ = resp.Body.Close()

	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("invalid json response: %v (body: %s)", err, string(raw))
	}
	return resp, out
}

func sampleRequest() CreateLogRequest {
	d := "120ms"
	return CreateLogRequest{
		WorkflowID:  "wf_1",
		ExecutionID: "exec_1",
		Level:       "info",
		Message:     "Block Agent 1 (agent): done",
		Duration:    &d,
		CreatedAt:   time.Now().Add(-time.Minute).UTC(),
	}
}

func TestCreateLog_Success_Created(t *testing.T) {
	fakeUC := &fakeStoreLogUseCase{
		ExecuteFunc: func(ctx context.Context, in usecase.StoreLogInput) (bool, error) {
			return true, nil
		},
	}
	app := setupTestApp(fakeUC)

	resp, body := doRequest(t, app, http.MethodPost, "/logs", sampleRequest())

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d (body: %v)", http.StatusCreated, resp.StatusCode, body)
	}
	if body["status"] != "created" {
		t.Errorf("expected status=created, got %v", body["status"])
	}
	if fakeUC.LastInput.WorkflowID != "wf_1" || fakeUC.LastInput.Duration == nil || *fakeUC.LastInput.Duration != "120ms" {
		t.Errorf("unexpected input: %+v", fakeUC.LastInput)
	}
	if fakeUC.LastInput.CreatedAt.IsZero() {
		t.Errorf("expected created_at to be decoded")
	}
}

func TestCreateLog_Success_Duplicate(t *testing.T) {
	fakeUC := &fakeStoreLogUseCase{
		ExecuteFunc: func(ctx context.Context, in usecase.StoreLogInput) (bool, error) {
			return false, nil
		},
	}
	app := setupTestApp(fakeUC)

	resp, body := doRequest(t, app, http.MethodPost, "/logs", sampleRequest())

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if body["status"] != "duplicate" {
		t.Errorf("expected status=duplicate, got %v", body["status"])
	}
}

func TestCreateLog_InvalidJSON(t *testing.T) {
	app := setupTestApp(&fakeStoreLogUseCase{})

	resp, body := doRequest(t, app, http.MethodPost, "/logs", `{"workflow_id":`)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
	if body["error"] != "invalid_json" {
		t.Errorf("expected error=invalid_json, got %v", body["error"])
	}
}

func TestCreateLog_ValidationErrors(t *testing.T) {
	for _, ucErr := range []error{usecase.ErrInvalidLog, usecase.ErrFutureTime} {
		fakeUC := &fakeStoreLogUseCase{
			ExecuteFunc: func(ctx context.Context, in usecase.StoreLogInput) (bool, error) {
				return false, ucErr
			},
		}
		app := setupTestApp(fakeUC)

		resp, body := doRequest(t, app, http.MethodPost, "/logs", sampleRequest())

		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%v: expected status %d, got %d", ucErr, http.StatusBadRequest, resp.StatusCode)
		}
		if body["error"] != "invalid_log" {
			t.Errorf("%v: expected error=invalid_log, got %v", ucErr, body["error"])
		}
	}
}

func TestCreateLog_InternalError(t *testing.T) {
	fakeUC := &fakeStoreLogUseCase{
		ExecuteFunc: func(ctx context.Context, in usecase.StoreLogInput) (bool, error) {
			return false, errors.New("db error")
		},
	}
	app := setupTestApp(fakeUC)

	resp, body := doRequest(t, app, http.MethodPost, "/logs", sampleRequest())

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, resp.StatusCode)
	}
	if body["error"] != "internal_server_error" {
		t.Errorf("expected error=internal_server_error, got %v", body["error"])
	}
}

// ---- Bulk tests ----

func TestBulkCreateLogs_Success(t *testing.T) {
	fakeUC := &fakeStoreLogUseCase{
		BulkFunc: func(ctx context.Context, in usecase.BulkStoreLogsInput) (usecase.BulkStoreLogsResult, error) {
			return usecase.BulkStoreLogsResult{Created: 1, Duplicates: 1}, nil
		},
	}
	app := setupTestApp(fakeUC)

	reqBody := BulkCreateLogsRequest{Logs: []CreateLogRequest{sampleRequest(), sampleRequest()}}
	resp, body := doRequest(t, app, http.MethodPost, "/logs/bulk", reqBody)

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d (body: %v)", http.StatusCreated, resp.StatusCode, body)
	}
	if int(body["created"].(float64)) != 1 || int(body["duplicates"].(float64)) != 1 {
		t.Errorf("unexpected counts: %v", body)
	}
	if len(fakeUC.LastBulkInput.Logs) != 2 {
		t.Errorf("expected 2 inputs, got %d", len(fakeUC.LastBulkInput.Logs))
	}
}

func TestBulkCreateLogs_EmptyList(t *testing.T) {
	app := setupTestApp(&fakeStoreLogUseCase{})

	resp, body := doRequest(t, app, http.MethodPost, "/logs/bulk", BulkCreateLogsRequest{})

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
	if body["error"] != "logs_list_required" {
		t.Errorf("expected error=logs_list_required, got %v", body["error"])
	}
}

func TestBulkCreateLogs_InvalidJSON(t *testing.T) {
	app := setupTestApp(&fakeStoreLogUseCase{})

	resp, _ := doRequest(t, app, http.MethodPost, "/logs/bulk", `{"logs":[`)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestBulkCreateLogs_ValidationError(t *testing.T) {
	fakeUC := &fakeStoreLogUseCase{
		BulkFunc: func(ctx context.Context, in usecase.BulkStoreLogsInput) (usecase.BulkStoreLogsResult, error) {
			return usecase.BulkStoreLogsResult{}, usecase.ErrInvalidLog
		},
	}
	app := setupTestApp(fakeUC)

	reqBody := BulkCreateLogsRequest{Logs: []CreateLogRequest{sampleRequest()}}
	resp, body := doRequest(t, app, http.MethodPost, "/logs/bulk", reqBody)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
	if body["error"] != "invalid_log" {
		t.Errorf("expected error=invalid_log, got %v", body["error"])
	}
}
