package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/helpdeskpro/helpdesk/internal/auth"
	"github.com/helpdeskpro/helpdesk/internal/db"
	"github.com/helpdeskpro/helpdesk/internal/models"
	"github.com/helpdeskpro/helpdesk/internal/tenancy"
)

type mockMembershipStore struct {
	memberships map[uuid.UUID]*models.MembershipWithOrg
	err         error
}

func (m *mockMembershipStore) GetMembershipForUser(_ context.Context, userID uuid.UUID) (*models.MembershipWithOrg, error) {
	if m.err != nil {
		return nil, m.err
	}
	membership, ok := m.memberships[userID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return membership, nil
}

func orgRouter(t *testing.T, sessions *auth.SessionStore, store *mockMembershipStore) *gin.Engine {
	t.Helper()
	resolver := tenancy.NewResolver(store, zerolog.Nop())

	r := gin.New()
	r.Use(RequireAuth(sessions, nil, zerolog.Nop()))
	r.Use(RequireOrg(resolver))
	r.GET("/tickets", func(c *gin.Context) {
		membership := GetMembership(c)
		if membership == nil {
			t.Fatal("expected membership in context")
		}
		c.JSON(http.StatusOK, gin.H{"org_id": membership.OrgID})
	})
	return r
}

func TestRequireOrg_Member(t *testing.T) {
	sessions := newTestSessions(t)
	userID := uuid.New()
	orgID := uuid.New()
	store := &mockMembershipStore{memberships: map[uuid.UUID]*models.MembershipWithOrg{
		userID: {
			Membership: models.Membership{ID: uuid.New(), OrgID: orgID, UserID: userID, Role: models.OrgRoleOwner},
			OrgName:    "Acme Inc",
		},
	}}

	r := orgRouter(t, sessions, store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/tickets", nil)
	for _, cookie := range loginCookie(t, sessions, &auth.SessionUser{ID: userID, Email: "owner@acme.test"}) {
		req.AddCookie(cookie)
	}
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequireOrg_NoMembership(t *testing.T) {
	sessions := newTestSessions(t)
	userID := uuid.New()
	store := &mockMembershipStore{memberships: map[uuid.UUID]*models.MembershipWithOrg{}}

	r := orgRouter(t, sessions, store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/tickets", nil)
	for _, cookie := range loginCookie(t, sessions, &auth.SessionUser{ID: userID, Email: "new@example.com"}) {
		req.AddCookie(cookie)
	}
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body["code"] != "org_required" {
		t.Fatalf("expected code org_required, got %q", body["code"])
	}
}

func TestRequireOrg_LookupFailure(t *testing.T) {
	sessions := newTestSessions(t)
	userID := uuid.New()
	store := &mockMembershipStore{err: errors.New("connection refused")}

	r := orgRouter(t, sessions, store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/tickets", nil)
	for _, cookie := range loginCookie(t, sessions, &auth.SessionUser{ID: userID, Email: "member@acme.test"}) {
		req.AddCookie(cookie)
	}
	r.ServeHTTP(w, req)

	// Lookup failure must never look like "no membership"
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", w.Code)
	}
}

func TestRequireOrg_Unauthenticated(t *testing.T) {
	sessions := newTestSessions(t)
	store := &mockMembershipStore{}

	r := orgRouter(t, sessions, store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/tickets", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}
