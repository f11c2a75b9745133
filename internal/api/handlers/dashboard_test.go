package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/helpdeskpro/helpdesk/internal/auth"
	"github.com/helpdeskpro/helpdesk/internal/tickets"
)

type mockDashboardStore struct {
	rollup map[uuid.UUID][]tickets.StatusPriority
	err    error
}

func (m *mockDashboardStore) GetTicketRollup(_ context.Context, orgID uuid.UUID) ([]tickets.StatusPriority, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.rollup[orgID], nil
}

func dashboardTestRouter(store *mockDashboardStore, user *auth.SessionUser, orgID uuid.UUID) *gin.Engine {
	handler := NewDashboardHandler(store, zerolog.Nop())

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(injectUser(user), injectMembership(testMembership(orgID, user.ID, "Acme Inc")))
	handler.RegisterRoutes(api)
	return r
}

func TestDashboardStats(t *testing.T) {
	user := &auth.SessionUser{ID: uuid.New(), Email: "agent@acme.test"}
	orgID := uuid.New()
	store := &mockDashboardStore{rollup: map[uuid.UUID][]tickets.StatusPriority{
		orgID: {
			{Status: "open", Priority: "urgent"},
			{Status: "open", Priority: "normal"},
			{Status: "in_progress", Priority: "high"},
			{Status: "resolved", Priority: "urgent"},
		},
	}}

	r := dashboardTestRouter(store, user, orgID)

	w := doJSON(t, r, "GET", "/api/v1/dashboard/stats", nil)

	assertStatus(t, w, http.StatusOK)
	body := decodeBody(t, w)
	stats, ok := body["stats"].(map[string]any)
	if !ok {
		t.Fatalf("expected stats object, got %v", body["stats"])
	}
	if stats["open"] != float64(2) {
		t.Fatalf("expected 2 open tickets, got %v", stats["open"])
	}
	if stats["in_progress"] != float64(1) {
		t.Fatalf("expected 1 in-progress ticket, got %v", stats["in_progress"])
	}
	if stats["urgent"] != float64(2) {
		t.Fatalf("expected 2 urgent tickets across statuses, got %v", stats["urgent"])
	}
}

func TestDashboardStats_EmptyOrg(t *testing.T) {
	user := &auth.SessionUser{ID: uuid.New(), Email: "agent@acme.test"}
	orgID := uuid.New()
	store := &mockDashboardStore{rollup: map[uuid.UUID][]tickets.StatusPriority{}}

	r := dashboardTestRouter(store, user, orgID)

	w := doJSON(t, r, "GET", "/api/v1/dashboard/stats", nil)

	assertStatus(t, w, http.StatusOK)
	body := decodeBody(t, w)
	stats := body["stats"].(map[string]any)
	for _, key := range []string{"open", "in_progress", "resolved", "urgent"} {
		if stats[key] != float64(0) {
			t.Fatalf("expected %s to be 0 for empty org, got %v", key, stats[key])
		}
	}
}

func TestDashboardStats_StoreError(t *testing.T) {
	user := &auth.SessionUser{ID: uuid.New(), Email: "agent@acme.test"}
	store := &mockDashboardStore{err: errors.New("connection reset")}

	r := dashboardTestRouter(store, user, uuid.New())

	w := doJSON(t, r, "GET", "/api/v1/dashboard/stats", nil)
	assertStatus(t, w, http.StatusInternalServerError)
}
