package ports

import (
	"context"
	"time"

	"dashboard-analytics-service/internal/dashboard/core/domain"
)

type FeedFilter struct {
	Since       time.Time // execution logs and sessions created at or after Since
	WorkflowIDs []string  // optional, restricts execution logs
}

// FeedReaderPort fetches the five aggregation inputs in one consistent read.
type FeedReaderPort interface {
	ReadFeeds(ctx context.Context, f FeedFilter) (*domain.Feeds, error)
}
