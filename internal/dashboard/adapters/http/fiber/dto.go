package fiber

type InconsistencyDetails struct {
	TotalUsers           int      `json:"total_users" example:"12"`
	TotalCategorized     int      `json:"total_categorized" example:"11"`
	Delta                int      `json:"delta" example:"1"`
	UncategorizedUserIDs []string `json:"uncategorized_user_ids"`
}

type ErrorResponse struct {
	Error   string                `json:"error" example:"data_inconsistency"`
	Message string                `json:"message,omitempty" example:"engagement categories do not cover every user"`
	Details *InconsistencyDetails `json:"details,omitempty"`
}
