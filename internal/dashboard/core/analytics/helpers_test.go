package analytics_test

import (
	"time"

	"dashboard-analytics-service/internal/dashboard/core/domain"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func blocksOf(types ...string) *domain.WorkflowState {
	blocks := make([]domain.Block, 0, len(types))
	for i, typ := range types {
		blocks = append(blocks, domain.Block{ID: typ + "-" + string(rune('a'+i)), Type: typ})
	}
	return &domain.WorkflowState{Blocks: domain.Sequence(blocks...)}
}

func workflow(id, userID string, runCount int, types ...string) domain.Workflow {
	return domain.Workflow{
		ID:       id,
		Name:     "wf " + id,
		UserID:   userID,
		Owner:    domain.Owner{Name: "name " + userID, Email: userID + "@example.com"},
		State:    blocksOf(types...),
		RunCount: runCount,
	}
}

func users(ids ...string) []domain.User {
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.User{ID: id, Name: "name " + id, Email: id + "@example.com"})
	}
	return out
}

func blockLog(executionID, blockName, blockType, duration string, at time.Time) domain.ExecutionLogEntry {
	return domain.ExecutionLogEntry{
		ExecutionID: executionID,
		WorkflowID:  "wf-1",
		Level:       domain.LevelInfo,
		Message:     "Block " + blockName + " (" + blockType + "): done",
		Duration:    strPtr(duration),
		CreatedAt:   at,
	}
}
