package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/helpdeskpro/helpdesk/internal/models"
	"github.com/helpdeskpro/helpdesk/internal/tenancy"
)

// RequireOrg returns a Gin middleware that resolves the authenticated
// user's organization membership and rejects requests from users who
// don't belong to one yet. Must run after RequireAuth.
//
// Users without an organization get 403 with code "org_required" so
// clients can route them to organization setup. A failed lookup is
// never treated as absence: it yields 503 and the client retries.
func RequireOrg(resolver *tenancy.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		res := resolver.Resolve(c.Request.Context(), user.ID)
		switch res.Decision {
		case tenancy.DecisionAllow:
			c.Set(string(MembershipContextKey), res.Membership)
			c.Next()
		case tenancy.DecisionSetup:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "organization required",
				"code":  "org_required",
			})
		case tenancy.DecisionRetry:
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "temporarily unavailable, please retry"})
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		}
	}
}

// GetMembership retrieves the resolved membership from the Gin context.
// Returns nil outside a RequireOrg-protected route.
func GetMembership(c *gin.Context) *models.MembershipWithOrg {
	v, exists := c.Get(string(MembershipContextKey))
	if !exists {
		return nil
	}
	membership, ok := v.(*models.MembershipWithOrg)
	if !ok {
		return nil
	}
	return membership
}
