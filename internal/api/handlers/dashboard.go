package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/helpdeskpro/helpdesk/internal/api/middleware"
	"github.com/helpdeskpro/helpdesk/internal/tickets"
)

// DashboardStore defines the persistence operations for dashboard endpoints.
type DashboardStore interface {
	GetTicketRollup(ctx context.Context, orgID uuid.UUID) ([]tickets.StatusPriority, error)
}

// DashboardHandler serves the dashboard summary endpoints.
type DashboardHandler struct {
	store  DashboardStore
	logger zerolog.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(store DashboardStore, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		store:  store,
		logger: logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// RegisterRoutes registers dashboard routes. All of them are tenant-scoped.
func (h *DashboardHandler) RegisterRoutes(r *gin.RouterGroup) {
	dashboard := r.Group("/dashboard")
	{
		dashboard.GET("/stats", h.Stats)
	}
}

// GET /api/v1/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	membership := middleware.GetMembership(c)
	if membership == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "organization required", "code": "org_required"})
		return
	}

	rollup, err := h.store.GetTicketRollup(c.Request.Context(), membership.OrgID)
	if err != nil {
		h.logger.Error().Err(err).Str("org_id", membership.OrgID.String()).Msg("failed to load ticket rollup")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": tickets.ComputeStats(rollup)})
}
