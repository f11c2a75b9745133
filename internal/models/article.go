package models

import (
	"time"

	"github.com/google/uuid"
)

// Article is a knowledge-base article scoped to an organization.
type Article struct {
	ID        uuid.UUID  `json:"id"`
	OrgID     uuid.UUID  `json:"org_id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	CreatedBy *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewArticle creates a new Article.
func NewArticle(orgID uuid.UUID, title, body string, createdBy uuid.UUID) *Article {
	now := time.Now()
	return &Article{
		ID:        uuid.New(),
		OrgID:     orgID,
		Title:     title,
		Body:      body,
		CreatedBy: &createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
