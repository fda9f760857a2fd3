package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"dashboard-analytics-service/internal/dashboard/core/domain"
	"dashboard-analytics-service/internal/executionlogs/core/ports"
	"dashboard-analytics-service/internal/log"
	"dashboard-analytics-service/internal/metrics"
)

var (
	ErrInvalidLog = errors.New("invalid execution log")
	ErrFutureTime = errors.New("timestamp cannot be in the future")
)

// logNamespace seeds the deterministic ids of entries sent without one.
var logNamespace = uuid.MustParse("6f1c2a52-3d0e-4b8e-9a57-0c4d1b7e2f10")

type StoreLogUseCase struct {
	repo ports.LogRepositoryPort
	now  func() time.Time
}

func NewStoreLogUseCase(repo ports.LogRepositoryPort) *StoreLogUseCase {
	return &StoreLogUseCase{repo: repo, now: time.Now}
}

type StoreLogInput struct {
	ID          string
	WorkflowID  string
	ExecutionID string
	Level       string
	Message     string
	Duration    *string
	CreatedAt   time.Time
}

func (uc *StoreLogUseCase) Execute(ctx context.Context, in StoreLogInput) (bool, error) {
	if err := uc.validateInput(in); err != nil {
		return false, err
	}

	e := &domain.ExecutionLogEntry{
		ID:          in.ID,
		WorkflowID:  in.WorkflowID,
		ExecutionID: in.ExecutionID,
		Level:       domain.LogLevel(strings.ToLower(in.Level)),
		Message:     in.Message,
		Duration:    in.Duration,
		CreatedAt:   in.CreatedAt.UTC(),
	}
	if e.ID == "" {
		e.ID = buildLogID(e)
	}

	created, err := uc.repo.InsertLog(ctx, e)
	if err != nil {
		logger := log.WithComponent("ingest")
		logger.Error().Err(err).Str("workflow_id", e.WorkflowID).Msg("insert execution log failed")
		return false, err
	}

	if created {
		metrics.LogsIngested.WithLabelValues(metrics.IngestCreated).Inc()
	} else {
		metrics.LogsIngested.WithLabelValues(metrics.IngestDuplicate).Inc()
	}
	return created, nil
}

// buildLogID derives a stable id so that a resent entry is a duplicate.
func buildLogID(e *domain.ExecutionLogEntry) string {
	// workflow_id + execution_id + level + message + unix_nano
	key := fmt.Sprintf("%s|%s|%s|%s|%d",
		e.WorkflowID,
		e.ExecutionID,
		e.Level,
		e.Message,
		e.CreatedAt.UnixNano(),
	)
	return uuid.NewSHA1(logNamespace, []byte(key)).String()
}

type BulkStoreLogsInput struct {
	Logs []StoreLogInput
}

type BulkStoreLogsResult struct {
	Created    int
	Duplicates int
}

// BulkStoreLogs validates every entry before inserting any of them.
func (uc *StoreLogUseCase) BulkStoreLogs(ctx context.Context, in BulkStoreLogsInput) (BulkStoreLogsResult, error) {
	var res BulkStoreLogsResult

	for i, l := range in.Logs {
		if err := uc.validateInput(l); err != nil {
			return res, fmt.Errorf("log %d: %w", i, err)
		}
	}

	for _, l := range in.Logs {
		ok, err := uc.Execute(ctx, l)
		if err != nil {
			return res, err
		}

		if ok {
			res.Created++
		} else {
			res.Duplicates++
		}
	}

	return res, nil
}

func (uc *StoreLogUseCase) validateInput(in StoreLogInput) error {
	if in.WorkflowID == "" || in.Message == "" || in.CreatedAt.IsZero() {
		return ErrInvalidLog
	}

	switch domain.LogLevel(strings.ToLower(in.Level)) {
	case domain.LevelInfo, domain.LevelError:
	default:
		return fmt.Errorf("%w: unknown level %q", ErrInvalidLog, in.Level)
	}

	if in.Duration != nil && !validDuration(*in.Duration) {
		return fmt.Errorf("%w: malformed duration %q", ErrInvalidLog, *in.Duration)
	}

	if in.CreatedAt.After(uc.now()) {
		return ErrFutureTime
	}

	return nil
}

// validDuration accepts "<number>ms" with a finite, non-negative number.
func validDuration(d string) bool {
	raw, ok := strings.CutSuffix(strings.TrimSpace(d), "ms")
	if !ok {
		return false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	return err == nil && v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
