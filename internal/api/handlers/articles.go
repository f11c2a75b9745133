package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/helpdeskpro/helpdesk/internal/api/middleware"
	"github.com/helpdeskpro/helpdesk/internal/models"
)

// ArticleStore defines the persistence operations for knowledge base endpoints.
type ArticleStore interface {
	ListArticlesByOrgID(ctx context.Context, orgID uuid.UUID) ([]*models.Article, error)
	CreateArticle(ctx context.Context, a *models.Article) error
}

// ArticlesHandler handles knowledge base article endpoints.
type ArticlesHandler struct {
	store  ArticleStore
	logger zerolog.Logger
}

// NewArticlesHandler creates a new ArticlesHandler.
func NewArticlesHandler(store ArticleStore, logger zerolog.Logger) *ArticlesHandler {
	return &ArticlesHandler{
		store:  store,
		logger: logger.With().Str("component", "articles_handler").Logger(),
	}
}

// RegisterRoutes registers knowledge base routes. All of them are tenant-scoped.
func (h *ArticlesHandler) RegisterRoutes(r *gin.RouterGroup) {
	articles := r.Group("/articles")
	{
		articles.GET("", h.List)
		articles.POST("", h.Create)
	}
}

// CreateArticleRequest is the request body for creating an article.
type CreateArticleRequest struct {
	Title string `json:"title" binding:"required,min=1,max=500"`
	Body  string `json:"body" binding:"required"`
}

// GET /api/v1/articles
func (h *ArticlesHandler) List(c *gin.Context) {
	membership := middleware.GetMembership(c)
	if membership == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "organization required", "code": "org_required"})
		return
	}

	articles, err := h.store.ListArticlesByOrgID(c.Request.Context(), membership.OrgID)
	if err != nil {
		h.logger.Error().Err(err).Str("org_id", membership.OrgID.String()).Msg("failed to list articles")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list articles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// POST /api/v1/articles
func (h *ArticlesHandler) Create(c *gin.Context) {
	user := middleware.RequireUser(c)
	if user == nil {
		return
	}
	membership := middleware.GetMembership(c)
	if membership == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "organization required", "code": "org_required"})
		return
	}

	if !membership.CanWrite() {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
		return
	}

	var req CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	article := models.NewArticle(membership.OrgID, strings.TrimSpace(req.Title), req.Body, user.ID)
	if err := h.store.CreateArticle(c.Request.Context(), article); err != nil {
		h.logger.Error().Err(err).Str("org_id", membership.OrgID.String()).Msg("failed to create article")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create article"})
		return
	}

	h.logger.Info().
		Str("article_id", article.ID.String()).
		Str("org_id", membership.OrgID.String()).
		Msg("article created")

	c.JSON(http.StatusCreated, gin.H{"article": article})
}
