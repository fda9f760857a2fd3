package usecase

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"dashboard-analytics-service/internal/dashboard/core/analytics"
	"dashboard-analytics-service/internal/dashboard/core/domain"
	"dashboard-analytics-service/internal/metrics"
)

// SnapshotBuilder is satisfied by *analytics.Engine.
type SnapshotBuilder interface {
	Build(feeds domain.Feeds) (*domain.DashboardSnapshot, error)
}

// buildSnapshot runs the engine, stamps the result and records metrics.
// source labels the run ("store" or "request").
func buildSnapshot(builder SnapshotBuilder, feeds domain.Feeds, source string, now time.Time, logger zerolog.Logger) (*domain.DashboardSnapshot, error) {
	timer := metrics.NewTimer()
	snap, err := builder.Build(feeds)
	timer.ObserveDuration(metrics.AggregationDuration.WithLabelValues(source))

	if err != nil {
		var inc *analytics.InconsistencyError
		if errors.As(err, &inc) {
			metrics.AggregationsTotal.WithLabelValues(source, metrics.ResultInconsistent).Inc()
			metrics.UncategorizedUsers.Set(float64(len(inc.UncategorizedUserIDs)))
			logger.Warn().
				Int("users_with_workflows", inc.TotalUsers).
				Int("categorized", inc.TotalCategorized).
				Strs("uncategorized", inc.UncategorizedUserIDs).
				Msg("engagement partition inconsistent")
		} else {
			metrics.AggregationsTotal.WithLabelValues(source, metrics.ResultError).Inc()
			logger.Error().Err(err).Msg("aggregation failed")
		}
		return nil, err
	}

	snap.ID = uuid.NewString()
	snap.GeneratedAt = now.UTC()

	metrics.AggregationsTotal.WithLabelValues(source, metrics.ResultOK).Inc()
	metrics.UncategorizedUsers.Set(0)
	metrics.SnapshotWorkflows.Set(float64(snap.Overview.TotalWorkflows))
	samples := make(map[string]int, len(snap.BlockLatencies))
	for _, l := range snap.BlockLatencies {
		samples[l.BlockType] = l.Samples
	}
	metrics.RecordLatencySamples(samples)

	logger.Debug().
		Str("snapshot_id", snap.ID).
		Int("workflows", snap.Overview.TotalWorkflows).
		Int("users", snap.Overview.TotalUsers).
		Int("block_types", len(snap.BlockLatencies)).
		Dur("took", timer.Duration()).
		Msg("snapshot built")

	return snap, nil
}
