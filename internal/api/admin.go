package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vkoshev/gamehall/internal/auth"
	"github.com/vkoshev/gamehall/internal/snapshot"
	"github.com/vkoshev/gamehall/internal/storage"
)

const maxAdminBodySize = 1 << 20  // 1MB
const maxImageBodySize = 10 << 20 // 10MB

// SnapshotRunner triggers an on-demand generation; satisfied by
// *snapshot.Generator.
type SnapshotRunner interface {
	Generate() snapshot.Outcome
}

type AdminDeps struct {
	Store    *storage.Store
	Tokens   *auth.TokenStore
	Password string
	Runner   SnapshotRunner
}

// RegisterAdminRoutes adds the admin panel routes to r. Everything except
// login requires a bearer token from a prior login.
func RegisterAdminRoutes(r chi.Router, deps AdminDeps) {
	r.Post("/api/admin/login", handleLogin(deps))

	r.Group(func(r chi.Router) {
		r.Use(TokenAuth(deps.Tokens))

		r.Post("/api/admin/logout", handleLogout(deps))

		r.Get("/api/admin/games", handleListGames(deps))
		r.Post("/api/admin/games", handleCreateGame(deps))
		r.Put("/api/admin/games/{id}", handleUpdateGame(deps))
		r.Delete("/api/admin/games/{id}", handleDeleteGame(deps))

		r.Get("/api/admin/providers", handleListProviders(deps))
		r.Post("/api/admin/providers", handleSaveProvider(deps))
		r.Delete("/api/admin/providers/{key}", handleDeleteProvider(deps))

		r.Get("/api/admin/settings", handleGetSettings(deps))
		r.Put("/api/admin/settings", handlePutSettings(deps))

		r.Post("/api/admin/images", handleUploadImage(deps))

		r.Post("/api/admin/snapshot", handleTriggerSnapshot(deps))
	})
}

// NewAdminHandler returns the admin panel API on its own router.
func NewAdminHandler(deps AdminDeps) http.Handler {
	r := chi.NewRouter()
	RegisterAdminRoutes(r, deps)
	return r
}

func handleLogin(deps AdminDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxAdminBodySize)

		var req struct {
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		if !auth.CheckPassword(req.Password, deps.Password) {
			httpError(w, http.StatusUnauthorized, "authentication_error", "wrong password")
			return
		}

		token, expires := deps.Tokens.Issue()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"token":      token,
			"expires_at": expires.UTC().Format(time.RFC3339),
		})
	}
}

func handleLogout(deps AdminDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if len(header) > len(prefix) {
			deps.Tokens.Revoke(header[len(prefix):])
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "logged_out"})
	}
}

// gameRequest is the admin wire shape of a pool entry.
type gameRequest struct {
	Provider   string `json:"provider"`
	Title      string `json:"title"`
	Image      string `json:"image"`
	Label      string `json:"label"`
	Pattern1   string `json:"pattern1"`
	Pattern2   string `json:"pattern2"`
	Pattern3   string `json:"pattern3"`
	TimeWindow string `json:"time_window"`
	Percent    int    `json:"percent"`
	Hot        bool   `json:"is_hot"`
	New        bool   `json:"is_new"`
	Enabled    bool   `json:"enabled"`
}

type gameResponse struct {
	ID string `json:"id"`
	gameRequest
	UpdatedAt time.Time `json:"updated_at"`
}

func toGameResponse(g storage.Game) gameResponse {
	return gameResponse{
		ID: g.ID,
		gameRequest: gameRequest{
			Provider:   g.Provider,
			Title:      g.Title,
			Image:      g.Image,
			Label:      g.Label,
			Pattern1:   g.Pattern1,
			Pattern2:   g.Pattern2,
			Pattern3:   g.Pattern3,
			TimeWindow: g.TimeWindow,
			Percent:    g.Percent,
			Hot:        g.Hot,
			New:        g.New,
			Enabled:    g.Enabled,
		},
		UpdatedAt: g.UpdatedAt,
	}
}

// clampPercent keeps the win-rate badge in the displayable 0-100 range.
func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func (req gameRequest) toGame(id string) storage.Game {
	return storage.Game{
		ID:         id,
		Provider:   req.Provider,
		Title:      req.Title,
		Image:      req.Image,
		Label:      req.Label,
		Pattern1:   req.Pattern1,
		Pattern2:   req.Pattern2,
		Pattern3:   req.Pattern3,
		TimeWindow: req.TimeWindow,
		Percent:    clampPercent(req.Percent),
		Hot:        req.Hot,
		New:        req.New,
		Enabled:    req.Enabled,
		UpdatedAt:  time.Now().UTC(),
	}
}

func handleListGames(deps AdminDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		games, err := deps.Store.ListGames()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list games: %v", err)
			return
		}

		records := make([]gameResponse, 0, len(games))
		for _, g := range games {
			records = append(records, toGameResponse(g))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(records)
	}
}

func handleCreateGame(deps AdminDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxAdminBodySize)

		var req gameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.Title == "" || req.Provider == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "title and provider are required")
			return
		}

		game := req.toGame(uuid.New().String())
		if err := deps.Store.SaveGame(game); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save game: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(toGameResponse(game))
	}
}

func handleUpdateGame(deps AdminDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxAdminBodySize)
		id := chi.URLParam(r, "id")

		var req gameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		game := req.toGame(id)
		err := deps.Store.UpdateGame(game)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "game not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to update game: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(toGameResponse(game))
	}
}

func handleDeleteGame(deps AdminDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		err := deps.Store.DeleteGame(id)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "game not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to delete game: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "deleted"})
	}
}

type providerRequest struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Enabled   bool   `json:"enabled"`
	SortOrder int    `json:"sort_order"`
}

func handleListProviders(deps AdminDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		providers, err := deps.Store.ListProviders(false)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list providers: %v", err)
			return
		}

		records := make([]providerRequest, 0, len(providers))
		for _, p := range providers {
			records = append(records, providerRequest{
				Key:       p.Key,
				Name:      p.Name,
				Image:     p.Image,
				Enabled:   p.Enabled,
				SortOrder: p.SortOrder,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(records)
	}
}

func handleSaveProvider(deps AdminDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxAdminBodySize)

		var req providerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.Key == "" || req.Name == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "key and name are required")
			return
		}

		err := deps.Store.SaveProvider(storage.Provider{
			Key:       req.Key,
			Name:      req.Name,
			Image:     req.Image,
			Enabled:   req.Enabled,
			SortOrder: req.SortOrder,
		})
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save provider: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(req)
	}
}

func handleDeleteProvider(deps AdminDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")

		err := deps.Store.DeleteProvider(key)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "provider not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to delete provider: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "deleted"})
	}
}

func handleGetSettings(deps AdminDeps) http.HandlerFunc {
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

// handlePutSettings bulk-upserts key/value pairs. Values are plain strings;
// keys are free-form.
func handlePutSettings(deps AdminDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxAdminBodySize)

		var values map[string]string
		if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		for key, value := range values {
			if err := deps.Store.SetSetting(key, value); err != nil {
				httpError(w, http.StatusInternalServerError, "api_error", "failed to set %q: %v", key, err)
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "updated"})
	}
}

type imageUploadRequest struct {
	ContentType string `json:"content_type"`
	Data        string `json:"data"` // base64
}

func handleUploadImage(deps AdminDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxImageBodySize)

		var req imageUploadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		data, err := base64.StdEncoding.DecodeString(req.Data)
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid base64 data")
			return
		}
		if len(data) == 0 {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "data is required")
			return
		}
		if req.ContentType == "" {
			req.ContentType = http.DetectContentType(data)
		}

		img := storage.Image{
			ID:          uuid.New().String(),
			ContentType: req.ContentType,
			Data:        data,
			CreatedAt:   time.Now().UTC(),
		}
		if err := deps.Store.SaveImage(img); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save image: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"id": img.ID})
	}
}

// handleTriggerSnapshot runs a generation on demand and returns the outcome
// verbatim so operators can see failure detail.
func handleTriggerSnapshot(deps AdminDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outcome := deps.Runner.Generate()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(outcome)
	}
}
