// Package api exposes the HTTP surface: the public landing-page endpoints
// and the token-guarded admin panel API.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vkoshev/gamehall/internal/storage"
)

// BatchReader serves the current showcase batch; satisfied by
// *snapshot.Reader.
type BatchReader interface {
	Current() []storage.Snapshot
}

type PublicDeps struct {
	Store  *storage.Store
	Reader BatchReader
}

// RegisterPublicRoutes adds the unauthenticated landing-page routes to r.
// Public and admin routes share one router; chi refuses a second Mount on
// the same path, so composition happens by registration instead.
func RegisterPublicRoutes(r chi.Router, deps PublicDeps) {
	r.Get("/health", handleHealth)
	r.Get("/api/games", handleCurrentGames(deps))
	r.Get("/api/settings", handlePublicSettings(deps))
	r.Get("/api/providers", handlePublicProviders(deps))
	r.Get("/images/{id}", handleGetImage(deps))
}

// NewPublicHandler returns the unauthenticated landing-page API on its own
// router.
func NewPublicHandler(deps PublicDeps) http.Handler {
	r := chi.NewRouter()
	RegisterPublicRoutes(r, deps)
	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// gameRecord is the public wire shape of one showcase entry.
type gameRecord struct {
	Provider   string    `json:"provider"`
	Title      string    `json:"title"`
	Image      string    `json:"image"`
	Label      string    `json:"label"`
	Pattern1   string    `json:"pattern1"`
	Pattern2   string    `json:"pattern2"`
	Pattern3   string    `json:"pattern3"`
	TimeWindow string    `json:"time_window"`
	Percent    int       `json:"percent"`
	Hot        bool      `json:"is_hot"`
	New        bool      `json:"is_new"`
	CreatedAt  time.Time `json:"created_at"`
}

func toGameRecord(s storage.Snapshot) gameRecord {
	return gameRecord{
		Provider:   s.Provider,
		Title:      s.Title,
		Image:      s.Image,
		Label:      s.Label,
		Pattern1:   s.Pattern1,
		Pattern2:   s.Pattern2,
		Pattern3:   s.Pattern3,
		TimeWindow: s.TimeWindow,
		Percent:    s.Percent,
		Hot:        s.Hot,
		New:        s.New,
		CreatedAt:  s.CreatedAt,
	}
}

// handleCurrentGames returns the freshest batch. An empty array is a valid
// response (empty pool); a cache-miss read may block on regeneration.
func handleCurrentGames(deps PublicDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		batch := deps.Reader.Current()

		records := make([]gameRecord, 0, len(batch))
		for _, s := range batch {
			records = append(records, toGameRecord(s))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(records)
	}
}

func handlePublicSettings(deps PublicDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := deps.Store.AllSettings()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to load settings: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(settings)
	}
}

type providerRecord struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	SortOrder int    `json:"sort_order"`
}

func handlePublicProviders(deps PublicDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		providers, err := deps.Store.ListProviders(true)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list providers: %v", err)
			return
		}

		records := make([]providerRecord, 0, len(providers))
		for _, p := range providers {
			records = append(records, providerRecord{
				Key:       p.Key,
				Name:      p.Name,
				Image:     p.Image,
				SortOrder: p.SortOrder,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(records)
	}
}

func handleGetImage(deps PublicDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		img, err := deps.Store.GetImage(id)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "image not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to load image: %v", err)
			return
		}

		w.Header().Set("Content-Type", img.ContentType)
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.Write(img.Data)
	}
}
