package repository

import (
	"context"
	"time"

	"github.com/ShiKuZena/ChatBot-APP/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type HistoryRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewHistoryRepository(db *pgxpool.Pool, logger *zap.Logger) *HistoryRepository {
	return &HistoryRepository{
		db:     db,
		logger: logger,
	}
}

// Append writes one resolved exchange. Session ids are opaque strings and are
// not validated here.
func (r *HistoryRepository) Append(ctx context.Context, sessionID, userMessage, botReply string) error {
	query := squirrel.Insert("chat_history").
		Columns("id", "session_id", "user_message", "bot_reply", "created_at").
		Values(uuid.New(), sessionID, userMessage, botReply, time.Now()).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// ListRecent returns the newest exchanges, for the admin listing.
func (r *HistoryRepository) ListRecent(ctx context.Context, limit int) ([]models.ChatMessage, error) {
	query := squirrel.Select("id", "session_id", "user_message", "bot_reply", "created_at").
		From("chat_history").
		OrderBy("created_at DESC, id DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.ChatMessage{}
	for rows.Next() {
		var msg models.ChatMessage
		if err := rows.Scan(&msg.ID, &msg.SessionID, &msg.UserMessage, &msg.BotReply, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}
