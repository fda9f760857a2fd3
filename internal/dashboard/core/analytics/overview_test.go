package analytics_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard-analytics-service/internal/dashboard/core/analytics"
	"dashboard-analytics-service/internal/dashboard/core/domain"
)

func TestSummarize(t *testing.T) {
	deployed := workflow("B", "U2", 7, "starter", "agent", "api")
	deployed.IsDeployed = true

	feeds := domain.Feeds{
		Workflows: []domain.Workflow{workflow("A", "U1", 100, "starter"), deployed},
		Stats: []domain.UserStats{
			{UserID: "U1", TotalManualExecutions: 1, TotalWebhookTriggers: 2, TotalScheduledExecutions: 3, TotalAPICalls: 4, TotalCost: 1.5},
			{UserID: "U2", TotalManualExecutions: 10, TotalCost: 0.25},
		},
		Users: users("U1", "U2"),
	}
	outcomes := map[string]domain.ExecutionOutcome{
		"e1": {Status: domain.StatusSuccess},
		"e2": {Status: domain.StatusError},
		"e3": {Status: domain.StatusSuccess},
	}

	got := analytics.Summarize(feeds, outcomes)

	assert.Equal(t, 2, got.TotalWorkflows)
	assert.Equal(t, 1, got.ActiveWorkflows)
	assert.Equal(t, int64(20), got.TotalExecutions)
	assert.Equal(t, 2.0, got.AvgBlocksPerWorkflow)
	assert.Equal(t, 2, got.TotalUsers)
	assert.Equal(t, 1.75, got.TotalCost)
	assert.Equal(t, 2, got.SuccessfulExecutions)
	assert.Equal(t, 1, got.FailedExecutions)
}

func TestSummarize_NoWorkflows(t *testing.T) {
	got := analytics.Summarize(domain.Feeds{}, nil)
	assert.Equal(t, 0.0, got.AvgBlocksPerWorkflow)
	assert.Equal(t, 0, got.TotalWorkflows)
}

func TestRankTopUsers(t *testing.T) {
	var workflows []domain.Workflow
	for u := 0; u < 7; u++ {
		for n := 0; n <= u; n++ {
			workflows = append(workflows, workflow(fmt.Sprintf("w%d-%d", u, n), fmt.Sprintf("U%d", u), 0, "starter", "agent"))
		}
	}
	workflows = append(workflows, domain.Workflow{ID: "orphan"})

	got := analytics.RankTopUsers(workflows, analytics.DefaultTopUsers)

	require.Len(t, got, 5)
	assert.Equal(t, "U6", got[0].UserID)
	assert.Equal(t, 7, got[0].WorkflowCount)
	assert.Equal(t, 14, got[0].BlockCount)
	assert.Equal(t, map[string]int{"starter": 7, "agent": 7}, got[0].BlockUsage)
	require.Len(t, got[0].Workflows, 7)
	assert.Len(t, got[0].Workflows[0].Blocks, 2)
	assert.Equal(t, "name U6", got[0].Name)
	assert.Equal(t, "U2", got[4].UserID)
}

func TestRankTopBlocks(t *testing.T) {
	untyped := workflow("C", "U2", 0, "starter")
	untyped.State.Blocks = domain.Sequence(domain.Block{ID: "x"}, domain.Block{ID: "y", Type: "api"})

	workflows := []domain.Workflow{
		workflow("A", "U1", 0, "starter", "agent", "agent"),
		workflow("B", "U1", 0, "starter", "api"),
		untyped,
	}

	got := analytics.RankTopBlocks(workflows)

	assert.Equal(t, []domain.BlockUsage{
		{Type: "agent", Count: 2},
		{Type: "api", Count: 2},
		{Type: "starter", Count: 2},
	}, got)
}
