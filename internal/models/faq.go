package models

import (
	"time"

	"github.com/google/uuid"
)

// Faq is a single durable knowledge base record. The question text is the
// canonical lookup key; the matcher guards against semantic duplicates at
// insertion time.
type Faq struct {
	ID        uuid.UUID `db:"id"`
	Question  string    `db:"question"`
	Answer    string    `db:"answer"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func NewFaq(question, answer string) *Faq {
	now := time.Now()
	return &Faq{
		ID:        uuid.New(),
		Question:  question,
		Answer:    answer,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
