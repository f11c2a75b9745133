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

// TicketStore defines the persistence operations for ticket endpoints.
type TicketStore interface {
	ListTicketsByOrgID(ctx context.Context, orgID uuid.UUID) ([]*models.TicketWithRequester, error)
	CreateTicket(ctx context.Context, t *models.Ticket) error
}

// TicketsHandler handles ticket-related HTTP endpoints.
type TicketsHandler struct {
	store  TicketStore
	logger zerolog.Logger
}

// NewTicketsHandler creates a new TicketsHandler.
func NewTicketsHandler(store TicketStore, logger zerolog.Logger) *TicketsHandler {
	return &TicketsHandler{
		store:  store,
		logger: logger.With().Str("component", "tickets_handler").Logger(),
	}
}

// RegisterRoutes registers ticket routes. All of them are tenant-scoped.
func (h *TicketsHandler) RegisterRoutes(r *gin.RouterGroup) {
	tickets := r.Group("/tickets")
	{
		tickets.GET("", h.List)
		tickets.POST("", h.Create)
	}
}

// CreateTicketRequest is the request body for creating a ticket.
type CreateTicketRequest struct {
	Subject  string `json:"subject" binding:"required,min=1,max=500"`
	Priority string `json:"priority,omitempty"`
}

// GET /api/v1/tickets
func (h *TicketsHandler) List(c *gin.Context) {
	membership := middleware.GetMembership(c)
	if membership == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "organization required", "code": "org_required"})
		return
	}

	tickets, err := h.store.ListTicketsByOrgID(c.Request.Context(), membership.OrgID)
	if err != nil {
		h.logger.Error().Err(err).Str("org_id", membership.OrgID.String()).Msg("failed to list tickets")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tickets"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

// POST /api/v1/tickets
func (h *TicketsHandler) Create(c *gin.Context) {
	user := middleware.RequireUser(c)
	if user == nil {
		return
	}
	membership := middleware.GetMembership(c)
	if membership == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "organization required", "code": "org_required"})
		return
	}

	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	priority := models.TicketPriorityNormal
	if req.Priority != "" {
		normalized := strings.ToLower(req.Priority)
		if !models.IsValidTicketPriority(normalized) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority: " + req.Priority})
			return
		}
		priority = models.TicketPriority(normalized)
	}

	ticket := models.NewTicket(membership.OrgID, strings.TrimSpace(req.Subject), priority, user.ID)
	if err := h.store.CreateTicket(c.Request.Context(), ticket); err != nil {
		h.logger.Error().Err(err).Str("org_id", membership.OrgID.String()).Msg("failed to create ticket")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create ticket"})
		return
	}

	h.logger.Info().
		Str("ticket_id", ticket.ID.String()).
		Str("org_id", membership.OrgID.String()).
		Str("priority", string(ticket.Priority)).
		Msg("ticket created")

	c.JSON(http.StatusCreated, gin.H{"ticket": ticket})
}
