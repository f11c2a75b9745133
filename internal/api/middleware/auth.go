// Package middleware provides HTTP middleware for the Helpdesk Pro API.
package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/helpdeskpro/helpdesk/internal/auth"
	"github.com/helpdeskpro/helpdesk/internal/db"
	"github.com/helpdeskpro/helpdesk/internal/models"
)

// ContextKey is the type for context keys used by this package.
type ContextKey string

const (
	// UserContextKey is the context key for the authenticated user.
	UserContextKey ContextKey = "user"
	// MembershipContextKey is the context key for the resolved membership.
	MembershipContextKey ContextKey = "membership"
)

// UserStore is the interface for verifying users exist in the database.
type UserStore interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// SessionRecordStore checks and refreshes the server-side session
// record that backs the cookie. Revoking the record invalidates the
// session everywhere, whatever the cookie's own lifetime says.
type SessionRecordStore interface {
	GetUserSessionByID(ctx context.Context, id uuid.UUID) (*models.UserSession, error)
	TouchUserSession(ctx context.Context, id uuid.UUID) error
}

// RequireAuth returns a Gin middleware that requires authentication.
// The cookie alone is not enough: the server-side session record must
// still exist, be unrevoked, and be unexpired.
func RequireAuth(sessions *auth.SessionStore, records SessionRecordStore, logger zerolog.Logger) gin.HandlerFunc {
	log := logger.With().Str("component", "auth_middleware").Logger()

	return func(c *gin.Context) {
		sessionUser, err := sessions.GetUser(c.Request)
		if err != nil {
			log.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("unauthenticated request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		if records != nil && sessionUser.SessionRecordID != uuid.Nil {
			record, err := records.GetUserSessionByID(c.Request.Context(), sessionUser.SessionRecordID)
			if err != nil {
				if errors.Is(err, db.ErrNotFound) {
					if clearErr := sessions.ClearUser(c.Request, c.Writer); clearErr != nil {
						log.Warn().Err(clearErr).Msg("failed to clear session without a record")
					}
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired, please log in again"})
					return
				}
				// A failed record lookup is transient; don't destroy
				// the session over it.
				log.Error().Err(err).Str("session_record_id", sessionUser.SessionRecordID.String()).Msg("session record lookup failed")
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "temporarily unavailable, please retry"})
				return
			}

			if !record.IsActive() {
				log.Info().
					Str("user_id", sessionUser.ID.String()).
					Str("session_record_id", record.ID.String()).
					Bool("revoked", record.Revoked).
					Msg("rejecting revoked or expired session")
				if clearErr := sessions.ClearUser(c.Request, c.Writer); clearErr != nil {
					log.Warn().Err(clearErr).Msg("failed to clear inactive session")
				}
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired, please log in again"})
				return
			}

			if err := records.TouchUserSession(c.Request.Context(), record.ID); err != nil {
				log.Warn().Err(err).Msg("failed to touch session record")
			}
		}

		c.Set(string(UserContextKey), sessionUser)
		c.Next()
	}
}

// OptionalAuth returns a Gin middleware that loads the user if a
// session is present but doesn't require one.
func OptionalAuth(sessions *auth.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessionUser, err := sessions.GetUser(c.Request); err == nil {
			c.Set(string(UserContextKey), sessionUser)
		}
		c.Next()
	}
}

// VerifyUser returns a Gin middleware that verifies the session user
// still exists in the database. This catches stale sessions after a
// database reset. Must run after RequireAuth.
func VerifyUser(store UserStore, sessions *auth.SessionStore, logger zerolog.Logger) gin.HandlerFunc {
	log := logger.With().Str("component", "user_verify_middleware").Logger()

	return func(c *gin.Context) {
		user := GetUser(c)
		if user == nil {
			c.Next()
			return
		}

		_, err := store.GetUserByID(c.Request.Context(), user.ID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				log.Warn().
					Str("user_id", user.ID.String()).
					Msg("session user not found in database, clearing stale session")
				if clearErr := sessions.ClearUser(c.Request, c.Writer); clearErr != nil {
					log.Warn().Err(clearErr).Msg("failed to clear stale session")
				}
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired, please log in again"})
				return
			}
			// A failed lookup is not proof the user is gone; deny
			// with a retryable status instead of killing the session.
			log.Error().Err(err).Str("user_id", user.ID.String()).Msg("user verification failed")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "temporarily unavailable, please retry"})
			return
		}

		c.Next()
	}
}

// GetUser retrieves the authenticated user from the Gin context.
// Returns nil if no user is authenticated.
func GetUser(c *gin.Context) *auth.SessionUser {
	user, exists := c.Get(string(UserContextKey))
	if !exists {
		return nil
	}
	sessionUser, ok := user.(*auth.SessionUser)
	if !ok {
		return nil
	}
	return sessionUser
}

// RequireUser is a helper that gets the authenticated user or aborts with 401.
// Use this in handlers that expect RequireAuth to have already run.
func RequireUser(c *gin.Context) *auth.SessionUser {
	user := GetUser(c)
	if user == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return nil
	}
	return user
}
