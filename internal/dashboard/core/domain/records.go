package domain

import "time"

type Owner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Workflow struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	UserID     string         `json:"userId"`
	Owner      Owner          `json:"owner"`
	State      *WorkflowState `json:"state"`
	IsDeployed bool           `json:"isDeployed"`
	RunCount   int            `json:"runCount"`
}

type LogLevel string

const (
	LevelInfo  LogLevel = "info"
	LevelError LogLevel = "error"
)

type ExecutionLogEntry struct {
	ID          string    `json:"id"`
	WorkflowID  string    `json:"workflowId"`
	ExecutionID string    `json:"executionId,omitempty"`
	Level       LogLevel  `json:"level"`
	Message     string    `json:"message"`
	Duration    *string   `json:"duration"` // "<number>ms" or null
	CreatedAt   time.Time `json:"createdAt"`
}

type Session struct {
	UserID    string    `json:"userId"`
	User      Owner     `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserStats struct {
	UserID                   string     `json:"userId"`
	TotalManualExecutions    int64      `json:"totalManualExecutions"`
	TotalWebhookTriggers     int64      `json:"totalWebhookTriggers"`
	TotalScheduledExecutions int64      `json:"totalScheduledExecutions"`
	TotalAPICalls            int64      `json:"totalApiCalls"`
	TotalCost                float64    `json:"totalCost"`
	LastActive               *time.Time `json:"last_active,omitempty"`
}

// TotalExecutions sums the four execution counters.
func (s UserStats) TotalExecutions() int64 {
	return s.TotalManualExecutions + s.TotalWebhookTriggers + s.TotalScheduledExecutions + s.TotalAPICalls
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Feeds is everything one aggregation run reads. Callers are expected to
// fetch all five collections at a consistent point in time.
type Feeds struct {
	Workflows []Workflow          `json:"workflows"`
	Logs      []ExecutionLogEntry `json:"logs"`
	Sessions  []Session           `json:"sessions"`
	Stats     []UserStats         `json:"stats"`
	Users     []User              `json:"users"`
}

func (f Feeds) Empty() bool {
	return len(f.Workflows) == 0 && len(f.Logs) == 0 && len(f.Sessions) == 0 &&
		len(f.Stats) == 0 && len(f.Users) == 0
}
