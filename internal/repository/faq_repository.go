package repository

import (
	"context"

	"github.com/ShiKuZena/ChatBot-APP/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type FaqRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewFaqRepository(db *pgxpool.Pool, logger *zap.Logger) *FaqRepository {
	return &FaqRepository{
		db:     db,
		logger: logger,
	}
}

// ListAll returns every record in insertion order. The matcher relies on this
// ordering as its tie-break, so it must stay stable.
func (r *FaqRepository) ListAll(ctx context.Context) ([]models.Faq, error) {
	return r.list(ctx, "created_at ASC, id ASC")
}

// ListRecentFirst returns every record newest first, for the admin listing.
func (r *FaqRepository) ListRecentFirst(ctx context.Context) ([]models.Faq, error) {
	return r.list(ctx, "created_at DESC, id DESC")
}

func (r *FaqRepository) list(ctx context.Context, order string) ([]models.Faq, error) {
	query := squirrel.Select("id", "question", "answer", "created_at", "updated_at").
		From("faq").
		OrderBy(order).
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

	faqs := []models.Faq{}
	for rows.Next() {
		var faq models.Faq
		if err := rows.Scan(&faq.ID, &faq.Question, &faq.Answer, &faq.CreatedAt, &faq.UpdatedAt); err != nil {
			return nil, err
		}
		faqs = append(faqs, faq)
	}

	return faqs, rows.Err()
}

func (r *FaqRepository) Create(ctx context.Context, faq *models.Faq) error {
	query := squirrel.Insert("faq").
		Columns("id", "question", "answer", "created_at", "updated_at").
		Values(faq.ID, faq.Question, faq.Answer, faq.CreatedAt, faq.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// Update rewrites question and answer of an existing record. Returns
// ErrNotFound when the id is unknown.
func (r *FaqRepository) Update(ctx context.Context, id uuid.UUID, question, answer string) error {
	query := squirrel.Update("faq").
		Set("question", question).
		Set("answer", answer).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FaqRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Delete("faq").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
