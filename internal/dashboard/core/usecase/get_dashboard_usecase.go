package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dashboard-analytics-service/internal/dashboard/core/domain"
	"dashboard-analytics-service/internal/dashboard/core/ports"
	"dashboard-analytics-service/internal/log"
)

var (
	ErrInvalidLookback = errors.New("invalid lookback window")
	ErrNoData          = errors.New("no data for dashboard")
)

type GetDashboardInput struct {
	Lookback    time.Duration // 0 means the configured default
	WorkflowIDs []string
}

type GetDashboardUseCase struct {
	reader          ports.FeedReaderPort
	builder         SnapshotBuilder
	defaultLookback time.Duration
	now             func() time.Time
}

func NewGetDashboardUseCase(reader ports.FeedReaderPort, builder SnapshotBuilder, defaultLookback time.Duration) *GetDashboardUseCase {
	return &GetDashboardUseCase{
		reader:          reader,
		builder:         builder,
		defaultLookback: defaultLookback,
		now:             time.Now,
	}
}

// Execute reads the feeds for the requested window and aggregates them.
func (uc *GetDashboardUseCase) Execute(ctx context.Context, in GetDashboardInput) (*domain.DashboardSnapshot, error) {
	if in.Lookback < 0 {
		return nil, ErrInvalidLookback
	}
	lookback := in.Lookback
	if lookback == 0 {
		lookback = uc.defaultLookback
	}

	now := uc.now()
	filter := ports.FeedFilter{WorkflowIDs: in.WorkflowIDs}
	if lookback > 0 {
		filter.Since = now.Add(-lookback)
	}

	logger := log.WithComponent("dashboard")

	feeds, err := uc.reader.ReadFeeds(ctx, filter)
	if err != nil {
		logger.Error().Err(err).Msg("failed to read feeds")
		return nil, fmt.Errorf("read feeds: %w", err)
	}
	if feeds == nil || feeds.Empty() {
		return nil, ErrNoData
	}

	return buildSnapshot(uc.builder, *feeds, "store", now, logger)
}
