package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/helpdeskpro/helpdesk/internal/models"
)

// ListArticlesByOrgID returns all knowledge-base articles of an
// organization, newest first.
func (db *DB) ListArticlesByOrgID(ctx context.Context, orgID uuid.UUID) ([]*models.Article, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, org_id, title, body, created_by, created_at, updated_at
		FROM articles
		WHERE org_id = $1
		ORDER BY created_at DESC
	`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var articles []*models.Article
	for rows.Next() {
		var a models.Article
		if err := rows.Scan(&a.ID, &a.OrgID, &a.Title, &a.Body, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, &a)
	}
	return articles, rows.Err()
}

// CreateArticle inserts an article row.
func (db *DB) CreateArticle(ctx context.Context, a *models.Article) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO articles (id, org_id, title, body, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, a.ID, a.OrgID, a.Title, a.Body, a.CreatedBy, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create article: %w", err)
	}
	return nil
}
