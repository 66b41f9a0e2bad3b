// Package handler implements the HTTP handlers for the TravelVista API.
// All handlers are methods on Server. Methods are split into files by
// resource (health.go, destination.go, session.go, hero.go, export.go) but
// share the same Server struct so they can reach its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/travelvista/internal/animator"
	"github.com/pkordes/travelvista/internal/clock"
	"github.com/pkordes/travelvista/internal/domain"
	"github.com/pkordes/travelvista/internal/planner"
	"github.com/pkordes/travelvista/spec"
)

// CatalogServicer is the read side of the destination catalog.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without a catalog source.
type CatalogServicer interface {
	Status() planner.CatalogStatus
	Search(query string) planner.SearchResult
}

// PlannerServicer defines the per-visitor planner operations.
type PlannerServicer interface {
	Create(ctx context.Context) (uuid.UUID, planner.View, error)
	View(ctx context.Context, id uuid.UUID) (planner.View, error)
	SetQuery(ctx context.Context, id uuid.UUID, query string) (planner.View, error)
	Select(ctx context.Context, id, destinationID uuid.UUID) (planner.View, error)
	SelectFromSearch(ctx context.Context, id, destinationID uuid.UUID) (planner.View, error)
	Deselect(ctx context.Context, id, destinationID uuid.UUID) (planner.View, error)
	ClearSelection(ctx context.Context, id uuid.UUID) (planner.View, error)
	EditDraft(ctx context.Context, id uuid.UUID, draft domain.TripDraft) (planner.View, error)
	ToggleFavorite(ctx context.Context, id, destinationID uuid.UUID) (planner.View, error)
	Save(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	Export(ctx context.Context, id uuid.UUID) ([]domain.ExportRow, error)
}

// FrameRecorder counts hero frames sent to clients.
type FrameRecorder interface {
	FrameRendered()
}

// Server holds the dependencies shared by every handler.
type Server struct {
	catalog  CatalogServicer
	planner  PlannerServicer
	log      *slog.Logger
	frames   FrameRecorder
	renderer *animator.Renderer
	clock    clock.Clock
	interval time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for unexpected errors.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// WithFrameRecorder sets the hero frame counter.
func WithFrameRecorder(r FrameRecorder) Option {
	return func(s *Server) { s.frames = r }
}

// WithRenderer sets the hero renderer. Tests pass one with a fixed jitter.
func WithRenderer(r *animator.Renderer) Option {
	return func(s *Server) { s.renderer = r }
}

// WithClock sets the tick source for hero streams.
func WithClock(c clock.Clock) Option {
	return func(s *Server) { s.clock = c }
}

// WithFrameInterval sets the time between streamed hero frames.
func WithFrameInterval(d time.Duration) Option {
	return func(s *Server) { s.interval = d }
}

// NewServer constructs the Server with all its dependencies.
func NewServer(catalog CatalogServicer, planner PlannerServicer, opts ...Option) *Server {
	s := &Server{
		catalog:  catalog,
		planner:  planner,
		log:      slog.Default(),
		frames:   noopFrames{},
		renderer: animator.NewRenderer(),
		clock:    clock.Real(),
		interval: animator.DefaultInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil)
}

// Register mounts every API route on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Get("/destinations", s.ListDestinations)
	r.Get("/destinations/search", s.SearchDestinations)

	r.Post("/sessions", s.CreateSession)
	r.Route("/sessions/{sessionId}", func(r chi.Router) {
		r.Get("/", s.GetSession)
		r.Delete("/", s.DeleteSession)
		r.Put("/query", s.SetQuery)
		r.Post("/selection", s.AddSelection)
		r.Post("/selection/from-search", s.AddSelectionFromSearch)
		r.Delete("/selection", s.ClearSelection)
		r.Delete("/selection/{destinationId}", s.RemoveSelection)
		r.Put("/draft", s.UpdateDraft)
		r.Post("/favorites/{destinationId}", s.ToggleFavorite)
		r.Post("/save", s.SaveTrip)
		r.Get("/export", s.ExportTrip)
	})

	r.Get("/hero.png", s.GetHeroFrame)
	r.Get("/hero/stream", s.StreamHero)
}

// Handler returns a chi router with every API route registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Register(r)
	return r
}

// GetOpenAPI handles GET /openapi.yaml.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}

type noopFrames struct{}

func (noopFrames) FrameRendered() {}
