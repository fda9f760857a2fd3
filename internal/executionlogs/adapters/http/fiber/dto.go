package fiber

import "time"

// CreateLogRequest represents one execution log entry
// @Description Execution log ingest DTO
type CreateLogRequest struct {
	ID          string    `json:"id,omitempty"`
	WorkflowID  string    `json:"workflow_id"`
	ExecutionID string    `json:"execution_id,omitempty"`
	Level       string    `json:"level" example:"info"`
	Message     string    `json:"message"`
	Duration    *string   `json:"duration,omitempty" example:"120ms"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateLogResponse struct {
	Status string `json:"status"`
}

type BulkCreateLogsRequest struct {
	Logs []CreateLogRequest `json:"logs"`
}

type BulkCreateLogsResponse struct {
	Created    int `json:"created"`
	Duplicates int `json:"duplicates"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_log"`
	Message string `json:"message,omitempty" example:"invalid execution log"`
}
