package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vkoshev/gamehall/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

type stubReader struct {
	batch []storage.Snapshot
}

func (s *stubReader) Current() []storage.Snapshot {
	return s.batch
}

func doRequest(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h := NewPublicHandler(PublicDeps{Store: openTestStore(t), Reader: &stubReader{}})

	rec := doRequest(t, h, httptest.NewRequest("GET", "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCurrentGames(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	reader := &stubReader{batch: []storage.Snapshot{{
		Provider:   "pragmatic",
		Title:      "Gates of Test",
		Image:      "/images/abc",
		Label:      "TOP",
		Pattern1:   "x10",
		Pattern2:   "manual",
		Pattern3:   "turbo",
		TimeWindow: "18:00-23:00",
		Percent:    91,
		Hot:        true,
		New:        false,
		CreatedAt:  now,
	}}}
	h := NewPublicHandler(PublicDeps{Store: openTestStore(t), Reader: reader})

	rec := doRequest(t, h, httptest.NewRequest("GET", "/api/games", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var got []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("records = %d, want 1", len(got))
	}
	r := got[0]
	if r["title"] != "Gates of Test" || r["provider"] != "pragmatic" {
		t.Errorf("record = %v", r)
	}
	if r["percent"] != float64(91) || r["is_hot"] != true || r["is_new"] != false {
		t.Errorf("flags/percent = %v", r)
	}
	if r["time_window"] != "18:00-23:00" || r["pattern1"] != "x10" {
		t.Errorf("patterns = %v", r)
	}
}

// An empty batch serializes as [] with HTTP 200, never an error.
func TestCurrentGamesEmpty(t *testing.T) {
	h := NewPublicHandler(PublicDeps{Store: openTestStore(t), Reader: &stubReader{}})

	rec := doRequest(t, h, httptest.NewRequest("GET", "/api/games", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("body = %q, want empty array", body)
	}
}

func TestPublicSettings(t *testing.T) {
	store := openTestStore(t)
	if err := store.SetSetting("bg_color", "#111"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	h := NewPublicHandler(PublicDeps{Store: store, Reader: &stubReader{}})

	rec := doRequest(t, h, httptest.NewRequest("GET", "/api/settings", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var got map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got["bg_color"] != "#111" {
		t.Errorf("settings = %v", got)
	}
}

func TestPublicProvidersOnlyEnabled(t *testing.T) {
	store := openTestStore(t)
	for _, p := range []storage.Provider{
		{Key: "on", Name: "On", Enabled: true, SortOrder: 1},
		{Key: "off", Name: "Off", Enabled: false, SortOrder: 2},
	} {
		if err := store.SaveProvider(p); err != nil {
			t.Fatalf("SaveProvider: %v", err)
		}
	}
	h := NewPublicHandler(PublicDeps{Store: store, Reader: &stubReader{}})

	rec := doRequest(t, h, httptest.NewRequest("GET", "/api/providers", nil))
	var got []providerRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(got) != 1 || got[0].Key != "on" {
		t.Errorf("providers = %v", got)
	}
}

func TestGetImage(t *testing.T) {
	store := openTestStore(t)
	img := storage.Image{
		ID:          "img-1",
		ContentType: "image/png",
		Data:        []byte("fake png"),
		CreatedAt:   time.Now().UTC(),
	}
	if err := store.SaveImage(img); err != nil {
		t.Fatalf("SaveImage: %v", err)
	}
	h := NewPublicHandler(PublicDeps{Store: store, Reader: &stubReader{}})

	rec := doRequest(t, h, httptest.NewRequest("GET", "/images/img-1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
	if rec.Body.String() != "fake png" {
		t.Errorf("body = %q", rec.Body.String())
	}

	rec = doRequest(t, h, httptest.NewRequest("GET", "/images/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing image status = %d, want 404", rec.Code)
	}
}
