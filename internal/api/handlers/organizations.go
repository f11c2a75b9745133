package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/helpdeskpro/helpdesk/internal/api/middleware"
	"github.com/helpdeskpro/helpdesk/internal/models"
	"github.com/helpdeskpro/helpdesk/internal/tenancy"
)

// OrganizationStore defines the persistence operations for organization endpoints.
type OrganizationStore interface {
	GetOrganizationByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
	ListMembersByOrgID(ctx context.Context, orgID uuid.UUID) ([]*models.Membership, error)
}

// OrganizationsHandler handles organization-related HTTP endpoints.
type OrganizationsHandler struct {
	store        OrganizationStore
	bootstrapper *tenancy.Bootstrapper
	logger       zerolog.Logger
}

// NewOrganizationsHandler creates a new OrganizationsHandler.
func NewOrganizationsHandler(store OrganizationStore, bootstrapper *tenancy.Bootstrapper, logger zerolog.Logger) *OrganizationsHandler {
	return &OrganizationsHandler{
		store:        store,
		bootstrapper: bootstrapper,
		logger:       logger.With().Str("component", "organizations_handler").Logger(),
	}
}

// RegisterRoutes registers organization routes. Create intentionally
// skips the org gate: it is the way users without an organization get
// one. The rest requires membership.
func (h *OrganizationsHandler) RegisterRoutes(r *gin.RouterGroup, requireOrg gin.HandlerFunc) {
	orgs := r.Group("/organizations")
	{
		orgs.POST("", h.Create)
		orgs.GET("/current", requireOrg, h.GetCurrent)
		orgs.GET("/current/members", requireOrg, h.ListMembers)
	}
}

// CreateOrgRequest is the request body for creating an organization.
type CreateOrgRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

// POST /api/v1/organizations
func (h *OrganizationsHandler) Create(c *gin.Context) {
	user := middleware.RequireUser(c)
	if user == nil {
		return
	}

	var req CreateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	org, owner, err := h.bootstrapper.Bootstrap(c.Request.Context(), req.Name, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, tenancy.ErrEmptyName):
			c.JSON(http.StatusBadRequest, gin.H{"error": "organization name must not be empty"})
		case errors.Is(err, tenancy.ErrAlreadyMember):
			c.JSON(http.StatusConflict, gin.H{"error": "you already belong to an organization"})
		default:
			h.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to create organization")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create organization"})
		}
		return
	}

	h.logger.Info().
		Str("org_id", org.ID.String()).
		Str("user_id", user.ID.String()).
		Msg("organization created")

	c.JSON(http.StatusCreated, gin.H{
		"organization": org,
		"role":         owner.Role,
	})
}

// GET /api/v1/organizations/current
func (h *OrganizationsHandler) GetCurrent(c *gin.Context) {
	membership := middleware.GetMembership(c)
	if membership == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "organization required", "code": "org_required"})
		return
	}

	org, err := h.store.GetOrganizationByID(c.Request.Context(), membership.OrgID)
	if err != nil {
		h.logger.Error().Err(err).Str("org_id", membership.OrgID.String()).Msg("failed to load organization")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load organization"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"organization": org,
		"role":         membership.Role,
	})
}

// GET /api/v1/organizations/current/members
func (h *OrganizationsHandler) ListMembers(c *gin.Context) {
	membership := middleware.GetMembership(c)
	if membership == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "organization required", "code": "org_required"})
		return
	}

	members, err := h.store.ListMembersByOrgID(c.Request.Context(), membership.OrgID)
	if err != nil {
		h.logger.Error().Err(err).Str("org_id", membership.OrgID.String()).Msg("failed to list members")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list members"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": members})
}
