package ports

import (
	"context"

	"dashboard-analytics-service/internal/dashboard/core/domain"
)

type LogRepositoryPort interface {
	// InsertLog:
	//   created = true,  err = nil  -> new record
	//   created = false, err = nil  -> duplicate id (idempotent)
	//   created = false, err != nil -> DB error
	InsertLog(ctx context.Context, e *domain.ExecutionLogEntry) (created bool, err error)
}
