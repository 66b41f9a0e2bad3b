package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/pkordes/travelvista/internal/domain"
	"github.com/pkordes/travelvista/internal/observability"
	"github.com/pkordes/travelvista/internal/planner"
)

// CatalogReader is the part of CatalogService the planner needs.
type CatalogReader interface {
	Status() planner.CatalogStatus
	Get(id uuid.UUID) (domain.Destination, error)
}

// SessionRecorder receives the live session count.
// *observability.Collector satisfies it.
type SessionRecorder interface {
	SetSessions(n int)
}

// PlannerService owns one planner.State per visitor. Sessions live in
// memory only and are lost on restart. Mutations on a session are
// serialised so each one sees the result of the last.
type PlannerService struct {
	catalog CatalogReader
	log     *slog.Logger
	metrics SessionRecorder
	newID   func() uuid.UUID

	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
}

type session struct {
	mu    sync.Mutex
	state planner.State
}

// NewPlannerService constructs a PlannerService reading destinations from
// catalog. log and metrics may be nil.
func NewPlannerService(catalog CatalogReader, log *slog.Logger, metrics SessionRecorder) *PlannerService {
	if log == nil {
		log = slog.Default()
	}
	if metrics == nil {
		metrics = (*observability.Collector)(nil)
	}
	return &PlannerService{
		catalog:  catalog,
		log:      log,
		metrics:  metrics,
		newID:    uuid.New,
		sessions: map[uuid.UUID]*session{},
	}
}

// Create opens a session with an empty selection and a default draft.
func (s *PlannerService) Create(ctx context.Context) (uuid.UUID, planner.View, error) {
	id := s.newID()
	sess := &session{state: planner.NewState()}

	s.mu.Lock()
	s.sessions[id] = sess
	n := len(s.sessions)
	s.mu.Unlock()

	s.metrics.SetSessions(n)
	s.log.DebugContext(ctx, "planner session created", "session_id", id)
	return id, planner.Compose(s.catalog.Status(), sess.state), nil
}

// View composes the current page for a session.
func (s *PlannerService) View(ctx context.Context, id uuid.UUID) (planner.View, error) {
	return s.update(ctx, id, "View", func(st planner.State) planner.State { return st })
}

// SetQuery replaces the search query.
func (s *PlannerService) SetQuery(ctx context.Context, id uuid.UUID, query string) (planner.View, error) {
	return s.dispatch(ctx, id, "SetQuery", planner.SetQuery{Query: query})
}

// Select adds a catalog destination to the trip. Selecting one already in
// the trip changes nothing.
func (s *PlannerService) Select(ctx context.Context, id, destinationID uuid.UUID) (planner.View, error) {
	d, err := s.catalog.Get(destinationID)
	if err != nil {
		return planner.View{}, fmt.Errorf("service.PlannerService.Select: %w", err)
	}
	return s.dispatch(ctx, id, "Select", planner.Select{Destination: d})
}

// SelectFromSearch adds a destination picked from the search results and
// clears the query.
func (s *PlannerService) SelectFromSearch(ctx context.Context, id, destinationID uuid.UUID) (planner.View, error) {
	d, err := s.catalog.Get(destinationID)
	if err != nil {
		return planner.View{}, fmt.Errorf("service.PlannerService.SelectFromSearch: %w", err)
	}
	return s.dispatch(ctx, id, "SelectFromSearch", planner.SelectFromSearch{Destination: d})
}

// Deselect removes a destination from the trip. Removing one that is not
// selected changes nothing.
func (s *PlannerService) Deselect(ctx context.Context, id, destinationID uuid.UUID) (planner.View, error) {
	return s.dispatch(ctx, id, "Deselect", planner.Deselect{ID: destinationID})
}

// ClearSelection empties the trip.
func (s *PlannerService) ClearSelection(ctx context.Context, id uuid.UUID) (planner.View, error) {
	return s.dispatch(ctx, id, "ClearSelection", planner.ClearSelection{})
}

// EditDraft replaces the trip title, dates and budget. The budget must be
// a positive whole number; the dates are not checked against each other.
func (s *PlannerService) EditDraft(ctx context.Context, id uuid.UUID, draft domain.TripDraft) (planner.View, error) {
	if _, err := planner.ParseBudget(draft.Budget); err != nil {
		return planner.View{}, fmt.Errorf("service.PlannerService.EditDraft: %w", err)
	}
	draft.Budget = strings.TrimSpace(draft.Budget)
	return s.dispatch(ctx, id, "EditDraft", planner.EditDraft{Draft: draft})
}

// ToggleFavorite flips the favourite mark on a catalog card.
func (s *PlannerService) ToggleFavorite(ctx context.Context, id, destinationID uuid.UUID) (planner.View, error) {
	if _, err := s.catalog.Get(destinationID); err != nil {
		return planner.View{}, fmt.Errorf("service.PlannerService.ToggleFavorite: %w", err)
	}
	return s.dispatch(ctx, id, "ToggleFavorite", planner.ToggleFavorite{ID: destinationID})
}

// Save accepts a save request and does nothing with it. Trip plans are
// never persisted.
func (s *PlannerService) Save(ctx context.Context, id uuid.UUID) error {
	if _, err := s.get(id); err != nil {
		return fmt.Errorf("service.PlannerService.Save: %w", err)
	}
	s.log.InfoContext(ctx, "trip plan save requested; plans are not persisted", "session_id", id)
	return nil
}

// Delete discards a session.
func (s *PlannerService) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	n := len(s.sessions)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("service.PlannerService.Delete: session %s: %w", id, domain.ErrNotFound)
	}
	s.metrics.SetSessions(n)
	s.log.DebugContext(ctx, "planner session deleted", "session_id", id)
	return nil
}

// Len returns the number of live sessions.
func (s *PlannerService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *PlannerService) dispatch(ctx context.Context, id uuid.UUID, op string, a planner.Action) (planner.View, error) {
	return s.update(ctx, id, op, func(st planner.State) planner.State {
		return planner.Reduce(st, a)
	})
}

// update runs fn against a session's state under the session lock and
// composes the resulting page.
func (s *PlannerService) update(_ context.Context, id uuid.UUID, op string, fn func(planner.State) planner.State) (planner.View, error) {
	sess, err := s.get(id)
	if err != nil {
		return planner.View{}, fmt.Errorf("service.PlannerService.%s: %w", op, err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.state = fn(sess.state)
	return planner.Compose(s.catalog.Status(), sess.state), nil
}

func (s *PlannerService) get(id uuid.UUID) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	return sess, nil
}
