package domain

import "time"

type ExecutionStatus string

const (
	StatusSuccess ExecutionStatus = "success"
	StatusError   ExecutionStatus = "error"
)

// ExecutionOutcome is the final state of one execution, taken from its
// most recent log entry.
type ExecutionOutcome struct {
	ExecutionID string          `json:"executionId"`
	Status      ExecutionStatus `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	WorkflowID  string          `json:"workflowId"`
}

type LatencyStats struct {
	AvgLatency float64 `json:"avgLatency"`
	P50        float64 `json:"p50"`
	P75        float64 `json:"p75"`
	P99        float64 `json:"p99"`
	P100       float64 `json:"p100"`
	Samples    int     `json:"samples"`
}

type BlockLatency struct {
	BlockType string `json:"blockType"`
	LatencyStats
}

type EngagementCategory string

const (
	CategoryCreatedMultiple EngagementCategory = "created_multiple"
	CategoryModifiedAndRan  EngagementCategory = "modified_and_ran"
	CategoryModifiedNoRun   EngagementCategory = "modified_no_run"
	CategoryBaseState       EngagementCategory = "base_state"
)

type UserDemographics struct {
	TotalUsers           int     `json:"totalUsers"`
	UsersWithWorkflows   int     `json:"usersWithWorkflows"`
	UsersWithNoWorkflows int     `json:"usersWithNoWorkflows"`
	UsersWithNoRuns      int     `json:"usersWithNoRuns"`
	InactiveUsers        int     `json:"inactiveUsers"`
	UsersWithExecutions  int     `json:"usersWithExecutions"`
	AvgWorkflowsPerUser  float64 `json:"avgWorkflowsPerUser"`

	ModifiedAndRan  int `json:"modifiedAndRan"`
	ModifiedNoRun   int `json:"modifiedNoRun"`
	CreatedMultiple int `json:"createdMultiple"`
	BaseStateOnly   int `json:"baseStateOnly"`

	// percentages of TotalUsers
	ModifiedAndRanPercentage  float64 `json:"modifiedAndRanPercentage"`
	ModifiedNoRunPercentage   float64 `json:"modifiedNoRunPercentage"`
	CreatedMultiplePercentage float64 `json:"createdMultiplePercentage"`
	BaseStateOnlyPercentage   float64 `json:"baseStateOnlyPercentage"`
	NoWorkflowsPercentage     float64 `json:"noWorkflowsPercentage"`
	InactivePercentage        float64 `json:"inactivePercentage"`
}

type ReturningUser struct {
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	SessionCount int       `json:"sessionCount"`
	LastSeen     time.Time `json:"lastSeen"`
}

type SessionMetrics struct {
	TotalSessions            int             `json:"totalSessions"`
	AverageSessionsPerUser   float64         `json:"averageSessionsPerUser"`
	ReturningUsers           int             `json:"returningUsers"`
	ReturningUsersPercentage float64         `json:"returningUsersPercentage"`
	TopReturningUsers        []ReturningUser `json:"topReturningUsers"`
}

type Overview struct {
	TotalWorkflows       int     `json:"totalWorkflows"`
	ActiveWorkflows      int     `json:"activeWorkflows"`
	TotalExecutions      int64   `json:"totalExecutions"`
	AvgBlocksPerWorkflow float64 `json:"avgBlocksPerWorkflow"`
	TotalUsers           int     `json:"totalUsers"`
	TotalCost            float64 `json:"totalCost"`
	SuccessfulExecutions int     `json:"successfulExecutions"`
	FailedExecutions     int     `json:"failedExecutions"`
}

type BlockUsage struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type WorkflowBlocks struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Blocks []Block `json:"blocks"`
}

type TopUser struct {
	UserID        string           `json:"userId"`
	Name          string           `json:"name"`
	Email         string           `json:"email"`
	WorkflowCount int              `json:"workflowCount"`
	BlockCount    int              `json:"blockCount"`
	BlockUsage    map[string]int   `json:"blockUsage"`
	Workflows     []WorkflowBlocks `json:"workflows"`
}

type ActivityEntry struct {
	ExecutionID  string          `json:"executionId"`
	WorkflowID   string          `json:"workflowId"`
	WorkflowName string          `json:"workflowName"`
	Status       ExecutionStatus `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type WorkflowSummary struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	UserID               string `json:"userId"`
	OwnerName            string `json:"ownerName"`
	IsDeployed           bool   `json:"isDeployed"`
	RunCount             int    `json:"runCount"`
	BlockCount           int    `json:"blockCount"`
	BaseState            bool   `json:"baseState"`
	SuccessfulExecutions int    `json:"successfulExecutions"`
	FailedExecutions     int    `json:"failedExecutions"`
}

// DashboardSnapshot is built fresh on every aggregation run.
type DashboardSnapshot struct {
	ID               string            `json:"id"`
	GeneratedAt      time.Time         `json:"generatedAt"`
	Overview         Overview          `json:"overview"`
	UserDemographics UserDemographics  `json:"userDemographics"`
	Sessions         SessionMetrics    `json:"sessions"`
	TopUsers         []TopUser         `json:"topUsers"`
	TopBlocks        []BlockUsage      `json:"topBlocks"`
	RecentActivity   []ActivityEntry   `json:"recentActivity"`
	Workflows        []WorkflowSummary `json:"workflows"`
	BlockLatencies   []BlockLatency    `json:"blockLatencies"`
}
