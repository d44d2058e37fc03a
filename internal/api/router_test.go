package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vkoshev/gamehall/internal/auth"
	"github.com/vkoshev/gamehall/internal/snapshot"
)

// TestComposedRouter builds the full top-level router the way serve does:
// public and admin routes registered on one chi router. Registration must
// not panic, and both route groups must answer.
func TestComposedRouter(t *testing.T) {
	store := openTestStore(t)
	runner := &stubRunner{outcome: snapshot.Outcome{Status: snapshot.StatusSucceeded, Count: 12}}

	r := chi.NewRouter()
	RegisterPublicRoutes(r, PublicDeps{
		Store:  store,
		Reader: &stubReader{},
	})
	RegisterAdminRoutes(r, AdminDeps{
		Store:    store,
		Tokens:   auth.NewTokenStore(time.Hour),
		Password: "hunter2",
		Runner:   runner,
	})

	// Public route answers.
	rec := doRequest(t, r, httptest.NewRequest("GET", "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("/health status = %d, want 200", rec.Code)
	}
	rec = doRequest(t, r, httptest.NewRequest("GET", "/api/games", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("/api/games status = %d, want 200", rec.Code)
	}

	// Admin routes are reachable on the same router: guarded ones reject
	// without a token, and the full login flow works end to end.
	rec = doRequest(t, r, httptest.NewRequest("GET", "/api/admin/games", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated /api/admin/games status = %d, want 401", rec.Code)
	}

	token := login(t, r)
	rec = doRequest(t, r, authed("GET", "/api/admin/games", "", token))
	if rec.Code != http.StatusOK {
		t.Errorf("authenticated /api/admin/games status = %d, want 200", rec.Code)
	}
	rec = doRequest(t, r, authed("POST", "/api/admin/snapshot", "", token))
	if rec.Code != http.StatusOK {
		t.Errorf("/api/admin/snapshot status = %d, want 200", rec.Code)
	}
	if runner.calls != 1 {
		t.Errorf("generate calls = %d, want 1", runner.calls)
	}
}
