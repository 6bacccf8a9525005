// internal/httpserver/server.go
//
// HTTP server wiring for the puzzle backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/levels".
//   - Puzzle endpoints (optional auth): /puzzle/new, /puzzle/{id}/..., /puzzle/{id}/ws.
//   - Results endpoints: /leaderboard, /stats/me.
//   - Auth endpoints: /auth/signup, /auth/login, /auth/logout, /auth/me.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - The websocket route sits outside the request timeout; the hub keeps it alive.
//   - Guests are identified by an anonymous cookie so their results still count.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/marchesss/puzzle/internal/config"
	"github.com/marchesss/puzzle/internal/live"
	"github.com/marchesss/puzzle/internal/results"
	"github.com/marchesss/puzzle/internal/store"
)

// Server bundles router, in-memory game store, results DB and the live hub.
type Server struct {
	r       *chi.Mux
	cfg     config.Config
	store   store.Store
	results *results.Store
	hub     *live.Hub
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, st store.Store, res *results.Store, hub *live.Hub) *Server {
	s := &Server{r: chi.NewRouter(), cfg: cfg, store: st, results: res, hub: hub}

	timeout := cfg.Server.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(accessLog)
	s.r.Use(chimw.Recoverer)
	s.r.Use(s.cors)

	// websocket: no timeout, no forced JSON content type
	s.r.With(s.withOptionalAuth()).Get("/puzzle/{id}/ws", s.handleLive)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(timeout))
		r.Use(jsonContentType)

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"service":"puzzle-go","endpoints":["/health","/levels","POST /puzzle/new","/puzzle/{id}/*","/leaderboard","/auth/*"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/levels", s.handleLevels)

		// Puzzle endpoints: optional auth, guests can play
		s.mountPuzzle(r.With(s.withOptionalAuth()))

		// Leaderboard / stats
		s.mountResults(r.With(s.withOptionalAuth()))

		// Auth
		s.mountAuth(r)

		// JSON 404 for easier debugging
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "not_found", r.URL.Path)
		})
	})

	return s
}

// HTTPServer returns an *http.Server for addr, for callers that want graceful shutdown.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	g := s.cfg.Game
	_ = json.NewEncoder(w).Encode(map[string]any{
		"levels":    g.Levels,
		"default":   g.DefaultPieces,
		"maxPieces": g.MaxPieces,
	})
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.Server.ClientOrigin
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
