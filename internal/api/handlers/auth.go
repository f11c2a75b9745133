// Package handlers implements the HTTP endpoints of the Helpdesk Pro API.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/helpdeskpro/helpdesk/internal/api/middleware"
	"github.com/helpdeskpro/helpdesk/internal/auth"
	"github.com/helpdeskpro/helpdesk/internal/db"
	"github.com/helpdeskpro/helpdesk/internal/models"
	"github.com/helpdeskpro/helpdesk/internal/tenancy"
)

// AuthStore defines the persistence operations the auth endpoints need.
type AuthStore interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	CreateUserSession(ctx context.Context, s *models.UserSession) error
	RevokeUserSession(ctx context.Context, id uuid.UUID) error
}

// AuthHandler handles registration, login, logout, and identity lookup.
type AuthHandler struct {
	store        AuthStore
	sessions     *auth.SessionStore
	bootstrapper *tenancy.Bootstrapper
	resolver     *tenancy.Resolver
	sessionTTL   time.Duration
	logger       zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(store AuthStore, sessions *auth.SessionStore, bootstrapper *tenancy.Bootstrapper, resolver *tenancy.Resolver, sessionTTL time.Duration, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		store:        store,
		sessions:     sessions,
		bootstrapper: bootstrapper,
		resolver:     resolver,
		sessionTTL:   sessionTTL,
		logger:       logger.With().Str("component", "auth_handler").Logger(),
	}
}

// RegisterPublicRoutes registers the unauthenticated auth endpoints.
func (h *AuthHandler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
}

// RegisterProtectedRoutes registers the auth endpoints that require a session.
func (h *AuthHandler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.POST("/logout", h.Logout)
	r.GET("/me", h.Me)
}

// RegisterRequest is the request body for account registration.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required,min=1,max=255"`
	OrgName  string `json:"org_name" binding:"required,min=1,max=255"`
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// IdentityResponse is the response for auth endpoints that return the
// caller's identity and tenancy state.
type IdentityResponse struct {
	User         *models.User   `json:"user"`
	State        tenancy.State  `json:"state"`
	Organization *OrgSummary    `json:"organization,omitempty"`
	Role         models.OrgRole `json:"role,omitempty"`
}

// OrgSummary is the compact organization view embedded in identity responses.
type OrgSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.OrgName) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "organization name must not be empty"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	user := models.NewUser(strings.ToLower(strings.TrimSpace(req.Email)), strings.TrimSpace(req.FullName), hash)
	if err := h.store.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		h.logger.Error().Err(err).Msg("failed to create user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	resp := IdentityResponse{User: user, State: tenancy.StateNoOrg}

	// The account is usable even if organization setup fails here; the
	// settings page offers the same workflow again.
	org, owner, err := h.bootstrapper.Bootstrap(c.Request.Context(), req.OrgName, user.ID)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("organization bootstrap failed during registration")
	} else {
		resp.State = tenancy.StateWithOrg
		resp.Organization = &OrgSummary{ID: org.ID, Name: org.Name}
		resp.Role = owner.Role
	}

	if err := h.establishSession(c, user); err != nil {
		h.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to establish session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration succeeded but login failed, please log in"})
		return
	}

	h.logger.Info().
		Str("user_id", user.ID.String()).
		Str("email", user.Email).
		Msg("user registered")

	c.JSON(http.StatusCreated, resp)
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	user, err := h.store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		h.logger.Error().Err(err).Msg("failed to look up user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	// Resolve tenancy before establishing the session so a failed
	// lookup never reads as "confirmed no membership".
	res := h.resolver.Resolve(c.Request.Context(), user.ID)
	if res.Decision == tenancy.DecisionRetry {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "temporarily unavailable, please retry"})
		return
	}

	if err := h.establishSession(c, user); err != nil {
		h.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to establish session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	resp := IdentityResponse{User: user, State: res.State}
	if res.Membership != nil {
		resp.Organization = &OrgSummary{ID: res.Membership.OrgID, Name: res.Membership.OrgName}
		resp.Role = res.Membership.Role
	}

	h.logger.Info().
		Str("user_id", user.ID.String()).
		Str("email", user.Email).
		Msg("user logged in")

	c.JSON(http.StatusOK, resp)
}

// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	user := middleware.GetUser(c)
	if user != nil && user.SessionRecordID != uuid.Nil {
		if err := h.store.RevokeUserSession(c.Request.Context(), user.SessionRecordID); err != nil {
			h.logger.Warn().Err(err).Msg("failed to revoke session record")
		}
	}

	if err := h.sessions.ClearUser(c.Request, c.Writer); err != nil {
		h.logger.Warn().Err(err).Msg("failed to clear session")
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	sessionUser := middleware.RequireUser(c)
	if sessionUser == nil {
		return
	}

	res := h.resolver.Resolve(c.Request.Context(), sessionUser.ID)
	if res.Decision == tenancy.DecisionRetry {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "temporarily unavailable, please retry"})
		return
	}

	resp := gin.H{
		"user": gin.H{
			"id":    sessionUser.ID,
			"email": sessionUser.Email,
			"name":  sessionUser.Name,
		},
		"state": res.State,
	}
	if res.Membership != nil {
		resp["organization"] = OrgSummary{ID: res.Membership.OrgID, Name: res.Membership.OrgName}
		resp["role"] = res.Membership.Role
	}

	c.JSON(http.StatusOK, resp)
}

// establishSession creates a server-side session record and writes the
// session cookie for user.
func (h *AuthHandler) establishSession(c *gin.Context, user *models.User) error {
	_, tokenHash, err := auth.GenerateSessionToken()
	if err != nil {
		return err
	}

	record := models.NewUserSession(user.ID, tokenHash, c.ClientIP(), c.Request.UserAgent(), time.Now().Add(h.sessionTTL))
	if err := h.store.CreateUserSession(c.Request.Context(), record); err != nil {
		return err
	}

	return h.sessions.SetUser(c.Request, c.Writer, &auth.SessionUser{
		ID:              user.ID,
		Email:           user.Email,
		Name:            user.DisplayName(),
		SessionRecordID: record.ID,
		AuthenticatedAt: time.Now(),
	})
}
