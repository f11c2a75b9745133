package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func testSessionStore(t *testing.T) *SessionStore {
	t.Helper()
	secret := []byte("0123456789abcdef0123456789abcdef")
	store, err := NewSessionStore(DefaultSessionConfig(secret, false), zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create session store: %v", err)
	}
	return store
}

func TestNewSessionStoreRejectsShortSecret(t *testing.T) {
	_, err := NewSessionStore(DefaultSessionConfig([]byte("short"), false), zerolog.Nop())
	if err == nil {
		t.Fatal("expected error for short secret")
	}
}

func TestSessionRoundTrip(t *testing.T) {
	store := testSessionStore(t)

	user := &SessionUser{
		ID:              uuid.New(),
		Email:           "john@example.com",
		Name:            "John Doe",
		SessionRecordID: uuid.New(),
		AuthenticatedAt: time.Now().Truncate(time.Second),
	}

	// Write the session
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	if err := store.SetUser(r, w, user); err != nil {
		t.Fatalf("SetUser: %v", err)
	}

	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie to be set")
	}

	// Read it back on a fresh request
	r2 := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	for _, c := range cookies {
		r2.AddCookie(c)
	}

	got, err := store.GetUser(r2)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.ID != user.ID || got.Email != user.Email || got.Name != user.Name {
		t.Errorf("got %+v, want %+v", got, user)
	}
	if got.SessionRecordID != user.SessionRecordID {
		t.Error("session record ID not round-tripped")
	}
}

func TestGetUserWithoutSession(t *testing.T) {
	store := testSessionStore(t)
	r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	if _, err := store.GetUser(r); err == nil {
		t.Fatal("expected error for anonymous request")
	}
}

func TestClearUser(t *testing.T) {
	store := testSessionStore(t)

	user := &SessionUser{ID: uuid.New(), Email: "john@example.com"}
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	if err := store.SetUser(r, w, user); err != nil {
		t.Fatalf("SetUser: %v", err)
	}

	r2 := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	for _, c := range w.Result().Cookies() {
		r2.AddCookie(c)
	}
	w2 := httptest.NewRecorder()
	if err := store.ClearUser(r2, w2); err != nil {
		t.Fatalf("ClearUser: %v", err)
	}

	var deleted bool
	for _, c := range w2.Result().Cookies() {
		if c.Name == SessionName && c.MaxAge < 0 {
			deleted = true
		}
	}
	if !deleted {
		t.Error("expected session cookie to be deleted")
	}
}

func TestGenerateSessionToken(t *testing.T) {
	token, hash, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" || hash == "" {
		t.Fatal("expected non-empty token and hash")
	}
	if token == hash {
		t.Error("token must not equal its hash")
	}
	if HashSessionToken(token) != hash {
		t.Error("hash mismatch")
	}

	token2, _, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == token2 {
		t.Error("expected unique tokens")
	}
}
