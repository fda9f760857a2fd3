package analytics

import (
	"sort"

	"dashboard-analytics-service/internal/dashboard/core/domain"
)

// ClassifyExecutions resolves each execution to the outcome of its latest
// log entry. Entries without an execution id are ignored; on equal
// timestamps the entry seen first is kept.
func ClassifyExecutions(logs []domain.ExecutionLogEntry, m MessageMatcher) map[string]domain.ExecutionOutcome {
	latest := make(map[string]domain.ExecutionLogEntry)
	for _, entry := range logs {
		if entry.ExecutionID == "" {
			continue
		}
		cur, ok := latest[entry.ExecutionID]
		if !ok || entry.CreatedAt.After(cur.CreatedAt) {
			latest[entry.ExecutionID] = entry
		}
	}

	out := make(map[string]domain.ExecutionOutcome, len(latest))
	for id, entry := range latest {
		out[id] = domain.ExecutionOutcome{
			ExecutionID: id,
			Status:      OutcomeStatus(entry, m),
			CreatedAt:   entry.CreatedAt,
			WorkflowID:  entry.WorkflowID,
		}
	}
	return out
}

// OutcomeStatus is success only for info entries with a success phrase.
func OutcomeStatus(entry domain.ExecutionLogEntry, m MessageMatcher) domain.ExecutionStatus {
	if entry.Level == domain.LevelInfo && m.IsSuccess(entry.Message) {
		return domain.StatusSuccess
	}
	return domain.StatusError
}

// recentActivity lists the newest outcomes first, ties broken by execution id.
func recentActivity(outcomes map[string]domain.ExecutionOutcome, workflows []domain.Workflow, limit int) []domain.ActivityEntry {
	names := make(map[string]string, len(workflows))
	for _, w := range workflows {
		names[w.ID] = w.Name
	}

	out := make([]domain.ActivityEntry, 0, len(outcomes))
	for _, o := range outcomes {
		out = append(out, domain.ActivityEntry{
			ExecutionID:  o.ExecutionID,
			WorkflowID:   o.WorkflowID,
			WorkflowName: names[o.WorkflowID],
			Status:       o.Status,
			CreatedAt:    o.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ExecutionID < out[j].ExecutionID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
