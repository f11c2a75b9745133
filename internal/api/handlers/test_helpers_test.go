package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/helpdeskpro/helpdesk/internal/api/middleware"
	"github.com/helpdeskpro/helpdesk/internal/auth"
	"github.com/helpdeskpro/helpdesk/internal/db"
	"github.com/helpdeskpro/helpdesk/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testSessionSecret = []byte("0123456789abcdef0123456789abcdef")

// newTestSessions creates a cookie session store for tests.
func newTestSessions(t *testing.T) *auth.SessionStore {
	t.Helper()
	sessions, err := auth.NewSessionStore(auth.DefaultSessionConfig(testSessionSecret, false), zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create session store: %v", err)
	}
	return sessions
}

// injectUser returns a middleware that places user directly into the
// request context, bypassing cookie decoding.
func injectUser(user *auth.SessionUser) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(middleware.UserContextKey), user)
		c.Next()
	}
}

// injectMembership returns a middleware that places membership directly
// into the request context, standing in for the org gate.
func injectMembership(m *models.MembershipWithOrg) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(middleware.MembershipContextKey), m)
		c.Next()
	}
}

// doJSON performs a request with an optional JSON body and returns the recorder.
func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals the recorder body into a map for assertions.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response %q: %v", w.Body.String(), err)
	}
	return body
}

// testMembership builds an owner membership with org name for orgID/userID.
func testMembership(orgID, userID uuid.UUID, name string) *models.MembershipWithOrg {
	return &models.MembershipWithOrg{
		Membership: models.Membership{ID: uuid.New(), OrgID: orgID, UserID: userID, Role: models.OrgRoleOwner},
		OrgName:    name,
	}
}

// fakeMembershipStore backs a tenancy.Resolver in tests.
type fakeMembershipStore struct {
	memberships map[uuid.UUID]*models.MembershipWithOrg
	err         error
}

func (f *fakeMembershipStore) GetMembershipForUser(_ context.Context, userID uuid.UUID) (*models.MembershipWithOrg, error) {
	if f.err != nil {
		return nil, f.err
	}
	m, ok := f.memberships[userID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return m, nil
}

// fakeBootstrapStore backs a tenancy.Bootstrapper in tests. It records
// the created pair and honors the both-or-neither contract.
type fakeBootstrapStore struct {
	orgs        []*models.Organization
	memberships []*models.Membership
	memberOf    map[uuid.UUID]bool
	failWith    error
}

func (f *fakeBootstrapStore) CreateOrganizationWithOwner(_ context.Context, org *models.Organization, owner *models.Membership) error {
	if f.failWith != nil {
		return f.failWith
	}
	if f.memberOf[owner.UserID] {
		return db.ErrDuplicate
	}
	f.orgs = append(f.orgs, org)
	f.memberships = append(f.memberships, owner)
	if f.memberOf == nil {
		f.memberOf = make(map[uuid.UUID]bool)
	}
	f.memberOf[owner.UserID] = true
	return nil
}

// assertStatus fails the test when the recorder status differs from want.
func assertStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, w.Code, w.Body.String())
	}
}
