package dto

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type HistoryEntryResponse struct {
	ID          string `json:"id"`
	SessionID   string `json:"session_id"`
	UserMessage string `json:"user_message"`
	BotReply    string `json:"bot_reply"`
	CreatedAt   string `json:"created_at"`
}
