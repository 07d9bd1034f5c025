package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one resolved exchange. Append-only: history rows are never
// mutated or deleted by the pipeline.
type ChatMessage struct {
	ID          uuid.UUID `db:"id"`
	SessionID   string    `db:"session_id"`
	UserMessage string    `db:"user_message"`
	BotReply    string    `db:"bot_reply"`
	CreatedAt   time.Time `db:"created_at"`
}
