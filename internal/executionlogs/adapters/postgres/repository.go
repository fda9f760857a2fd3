package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"dashboard-analytics-service/internal/dashboard/core/domain"
	"dashboard-analytics-service/internal/executionlogs/core/ports"
)

// DB is the write side the repository needs; *sql.DB satisfies it directly.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type LogRepository struct {
	db DB
}

func NewLogRepository(db DB) *LogRepository {
	return &LogRepository{db: db}
}

var _ ports.LogRepositoryPort = (*LogRepository)(nil)

const insertLogSQL = `
INSERT INTO workflow_execution_logs (
    id,
    workflow_id,
    execution_id,
    level,
    message,
    duration,
    created_at
) VALUES (
    $1, $2, $3, $4,
    $5, $6, $7
)
ON CONFLICT (id) DO NOTHING;
`

func (r *LogRepository) InsertLog(ctx context.Context, e *domain.ExecutionLogEntry) (bool, error) {
	res, err := r.db.ExecContext(ctx, insertLogSQL,
		e.ID,
		e.WorkflowID,
		nullable(e.ExecutionID),
		string(e.Level),
		e.Message,
		nullablePtr(e.Duration),
		e.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert execution log: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	// rows == 0 -> duplicate id
	return rows > 0, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullablePtr(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
