package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/claude/liftwise/internal/catalog"
	"github.com/claude/liftwise/internal/engine"
	"github.com/claude/liftwise/internal/session"
	"github.com/go-chi/chi/v5"
	"tailscale.com/client/tailscale"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    Store
	sessions *session.Manager
	catalog  *catalog.Catalog
	log      *slog.Logger
	apiKey   string
	router   chi.Router
	lc       *tailscale.LocalClient

	// now is swapped out in tests for deterministic dates.
	now func() time.Time
}

// New creates a new Server with all routes configured.
func New(store Store, cat *catalog.Catalog, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		store:    store,
		sessions: session.NewManager(engine.DefaultAutoRegConfig(), log),
		catalog:  cat,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
		now:      time.Now,
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SetTailscale enables identity resolution through the tsnet local
// client. Without it every request maps to the local dev user.
func (s *Server) SetTailscale(lc *tailscale.LocalClient) {
	s.lc = lc
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(s.Identity)

	// Bulk import (API key required)
	s.router.Route("/api/v1/import", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/workouts", s.handleImportWorkouts)
	})

	// App API endpoints (no auth beyond identity — tsnet handles access)
	s.router.Get("/api/v1/me", s.handleMe)

	s.router.Get("/api/v1/recovery", s.handleRecovery)

	s.router.Get("/api/v1/week", s.handleGetWeek)
	s.router.Post("/api/v1/week/regenerate", s.handleRegenerateWeek)

	s.router.Get("/api/v1/plan", s.handleGetPlan)
	s.router.Post("/api/v1/plan/generate", s.handleGeneratePlan)

	s.router.Post("/api/v1/sessions", s.handleStartSession)
	s.router.Post("/api/v1/sessions/{id}/sets/complete", s.handleCompleteSet)
	s.router.Post("/api/v1/sessions/{id}/sets/edit", s.handleEditSet)
	s.router.Post("/api/v1/sessions/{id}/sets/uncomplete", s.handleUncompleteSet)
	s.router.Post("/api/v1/sessions/{id}/suggestion/apply", s.handleApplySuggestion)
	s.router.Post("/api/v1/sessions/{id}/finish", s.handleFinishSession)
	s.router.Post("/api/v1/sessions/{id}/cancel", s.handleCancelSession)

	s.router.Get("/api/v1/progression", s.handleProgression)

	s.router.Get("/api/v1/workouts", s.handleQueryWorkouts)
	s.router.Get("/api/v1/workouts/{id}", s.handleGetWorkout)

	s.router.Get("/api/v1/exercises", s.handleExercises)

	s.router.Get("/api/v1/preferences", s.handleGetPreferences)
	s.router.Put("/api/v1/preferences", s.handlePutPreferences)
}
