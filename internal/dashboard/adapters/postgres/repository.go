package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"dashboard-analytics-service/internal/dashboard/core/domain"
	"dashboard-analytics-service/internal/dashboard/core/ports"
)

type RowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
}

type DB interface {
	Querier
	ReadSnapshot(ctx context.Context, fn func(q Querier) error) error
}

type FeedRepository struct {
	db DB
}

func NewFeedRepository(db DB) *FeedRepository {
	return &FeedRepository{db: db}
}

var _ ports.FeedReaderPort = (*FeedRepository)(nil)

const (
	selectWorkflowsSQL = `
SELECT
    w.id,
    w.name,
    w.user_id,
    u.name,
    u.email,
    w.state,
    w.is_deployed,
    w.run_count
FROM workflow w
LEFT JOIN "user" u ON u.id = w.user_id
ORDER BY w.created_at, w.id`

	selectLogsSQL = `
SELECT
    id,
    workflow_id,
    execution_id,
    level,
    message,
    duration,
    created_at
FROM workflow_execution_logs
WHERE created_at >= $1`

	selectSessionsSQL = `
SELECT
    s.user_id,
    u.name,
    u.email,
    s.created_at
FROM session s
JOIN "user" u ON u.id = s.user_id
WHERE s.created_at >= $1
ORDER BY s.created_at`

	selectStatsSQL = `
SELECT
    user_id,
    total_manual_executions,
    total_webhook_triggers,
    total_scheduled_executions,
    total_api_calls,
    total_cost,
    last_active
FROM user_stats`

	selectUsersSQL = `
SELECT
    id,
    name,
    email
FROM "user"
ORDER BY created_at, id`
)

// ReadFeeds loads all five feeds inside one read snapshot.
func (r *FeedRepository) ReadFeeds(ctx context.Context, f ports.FeedFilter) (*domain.Feeds, error) {
	feeds := &domain.Feeds{}

	err := r.db.ReadSnapshot(ctx, func(q Querier) error {
		var err error
		if feeds.Workflows, err = r.queryWorkflows(ctx, q); err != nil {
			return fmt.Errorf("query workflows: %w", err)
		}
		if feeds.Logs, err = r.queryLogs(ctx, q, f); err != nil {
			return fmt.Errorf("query execution logs: %w", err)
		}
		if feeds.Sessions, err = r.querySessions(ctx, q, f.Since); err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if feeds.Stats, err = r.queryStats(ctx, q); err != nil {
			return fmt.Errorf("query user stats: %w", err)
		}
		if feeds.Users, err = r.queryUsers(ctx, q); err != nil {
			return fmt.Errorf("query users: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return feeds, nil
}

func (r *FeedRepository) queryWorkflows(ctx context.Context, q Querier) ([]domain.Workflow, error) {
	rows, err := q.QueryContext(ctx, selectWorkflowsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Workflow
	for rows.Next() {
		var (
			w                     domain.Workflow
			ownerName, ownerEmail sql.NullString
			state                 []byte
		)
		if err := rows.Scan(&w.ID, &w.Name, &w.UserID, &ownerName, &ownerEmail, &state, &w.IsDeployed, &w.RunCount); err != nil {
			return nil, err
		}
		w.Owner = domain.Owner{Name: ownerName.String, Email: ownerEmail.String}
		w.State = decodeState(state)
		out = append(out, w)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// decodeState tolerates NULL and malformed state columns; both come back as
// a workflow without blocks.
func decodeState(raw []byte) *domain.WorkflowState {
	if len(raw) == 0 {
		return nil
	}
	var s domain.WorkflowState
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}

func (r *FeedRepository) queryLogs(ctx context.Context, q Querier, f ports.FeedFilter) ([]domain.ExecutionLogEntry, error) {
	query := selectLogsSQL
	args := []any{f.Since}
	if len(f.WorkflowIDs) > 0 {
		query += " AND workflow_id = ANY($2)"
		args = append(args, pq.Array(f.WorkflowIDs))
	}
	query += "\nORDER BY created_at, id"

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ExecutionLogEntry
	for rows.Next() {
		var (
			e                     domain.ExecutionLogEntry
			executionID, duration sql.NullString
			level                 string
		)
		if err := rows.Scan(&e.ID, &e.WorkflowID, &executionID, &level, &e.Message, &duration, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.ExecutionID = executionID.String
		e.Level = domain.LogLevel(level)
		if duration.Valid {
			d := duration.String
			e.Duration = &d
		}
		out = append(out, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *FeedRepository) querySessions(ctx context.Context, q Querier, since time.Time) ([]domain.Session, error) {
	rows, err := q.QueryContext(ctx, selectSessionsSQL, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Session
	for rows.Next() {
		var s domain.Session
		if err := rows.Scan(&s.UserID, &s.User.Name, &s.User.Email, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *FeedRepository) queryStats(ctx context.Context, q Querier) ([]domain.UserStats, error) {
	rows, err := q.QueryContext(ctx, selectStatsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.UserStats
	for rows.Next() {
		var (
			s          domain.UserStats
			lastActive pq.NullTime
		)
		if err := rows.Scan(
			&s.UserID,
			&s.TotalManualExecutions,
			&s.TotalWebhookTriggers,
			&s.TotalScheduledExecutions,
			&s.TotalAPICalls,
			&s.TotalCost,
			&lastActive,
		); err != nil {
			return nil, err
		}
		if lastActive.Valid {
			t := lastActive.Time
			s.LastActive = &t
		}
		out = append(out, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *FeedRepository) queryUsers(ctx context.Context, q Querier) ([]domain.User, error) {
	rows, err := q.QueryContext(ctx, selectUsersSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, err
		}
		out = append(out, u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
