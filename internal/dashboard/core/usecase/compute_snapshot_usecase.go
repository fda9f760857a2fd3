package usecase

import (
	"context"
	"errors"
	"time"

	"dashboard-analytics-service/internal/dashboard/core/domain"
	"dashboard-analytics-service/internal/log"
)

var ErrInvalidFeeds = errors.New("invalid feeds")

// ComputeSnapshotUseCase aggregates feeds handed in by the caller instead of
// reading them from the store.
type ComputeSnapshotUseCase struct {
	builder SnapshotBuilder
	now     func() time.Time
}

func NewComputeSnapshotUseCase(builder SnapshotBuilder) *ComputeSnapshotUseCase {
	return &ComputeSnapshotUseCase{builder: builder, now: time.Now}
}

func (uc *ComputeSnapshotUseCase) Execute(ctx context.Context, feeds domain.Feeds) (*domain.DashboardSnapshot, error) {
	if err := uc.validateInput(feeds); err != nil {
		return nil, err
	}
	return buildSnapshot(uc.builder, feeds, "request", uc.now(), log.WithComponent("dashboard"))
}

func (uc *ComputeSnapshotUseCase) validateInput(feeds domain.Feeds) error {
	if feeds.Empty() {
		return ErrInvalidFeeds
	}
	for _, u := range feeds.Users {
		if u.ID == "" {
			return ErrInvalidFeeds
		}
	}
	return nil
}
