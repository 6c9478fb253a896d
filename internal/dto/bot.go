package dto

// CreateBotRequest represents a bot creation request
type CreateBotRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=100"`
	Description  string `json:"description" binding:"max=500"`
	Platform     string `json:"platform" binding:"required"`
	Style        string `json:"style"`
	SystemPrompt string `json:"system_prompt"`
}

// BotResponse represents bot data in responses
type BotResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Platform     string `json:"platform"`
	Style        string `json:"style"`
	Status       string `json:"status"`
	SystemPrompt string `json:"system_prompt"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
	DeletedAt    string `json:"deleted_at,omitempty"`
}

// BotListResponse is one page of the bot management listing
type BotListResponse struct {
	Bots       []BotResponse `json:"bots"`
	Total      int           `json:"total"`
	HasMore    bool          `json:"has_more"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// HomeResponse is the dashboard summary
type HomeResponse struct {
	TotalBots  int           `json:"total_bots"`
	ActiveBots int           `json:"active_bots"`
	RecentBots []BotResponse `json:"recent_bots"`
}
