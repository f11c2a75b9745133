package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type mockHealthDB struct {
	pingErr error
}

func (m *mockHealthDB) Ping(_ context.Context) error {
	return m.pingErr
}

func (m *mockHealthDB) Health() map[string]any {
	return map[string]any{"total_conns": 5}
}

func healthTestRouter(db DatabaseHealthChecker) *gin.Engine {
	handler := NewHealthHandler(db, zerolog.Nop())
	r := gin.New()
	handler.RegisterPublicRoutes(r)
	return r
}

func TestLiveness_AlwaysHealthy(t *testing.T) {
	r := healthTestRouter(&mockHealthDB{pingErr: errors.New("down")})

	w := doJSON(t, r, "GET", "/healthz", nil)
	assertStatus(t, w, http.StatusOK)
}

func TestReadiness_Healthy(t *testing.T) {
	r := healthTestRouter(&mockHealthDB{})

	w := doJSON(t, r, "GET", "/readyz", nil)
	assertStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	if body["status"] != string(HealthStatusHealthy) {
		t.Fatalf("expected healthy status, got %v", body["status"])
	}
}

func TestReadiness_DatabaseDown(t *testing.T) {
	r := healthTestRouter(&mockHealthDB{pingErr: errors.New("connection refused")})

	w := doJSON(t, r, "GET", "/readyz", nil)
	assertStatus(t, w, http.StatusServiceUnavailable)

	body := decodeBody(t, w)
	if body["status"] != string(HealthStatusUnhealthy) {
		t.Fatalf("expected unhealthy status, got %v", body["status"])
	}
}

func TestReadiness_NoDatabase(t *testing.T) {
	r := healthTestRouter(nil)

	w := doJSON(t, r, "GET", "/readyz", nil)
	assertStatus(t, w, http.StatusServiceUnavailable)
}
