// Package service contains the application logic behind the HTTP API and the
// terminal planner. Services own runtime state (the loaded catalog, planner
// sessions) and depend on repo interfaces, never on a concrete source.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/pkordes/travelvista/internal/domain"
	"github.com/pkordes/travelvista/internal/observability"
	"github.com/pkordes/travelvista/internal/planner"
	"github.com/pkordes/travelvista/internal/repo"
)

// CatalogRecorder receives catalog load outcomes.
// *observability.Collector satisfies it.
type CatalogRecorder interface {
	CatalogLoaded(n int)
	CatalogLoadFailed()
}

// CatalogService holds the destination catalog for the lifetime of the
// process. The catalog is fetched at most once; a failed fetch leaves it
// empty for good.
type CatalogService struct {
	repo    repo.DestinationRepo
	log     *slog.Logger
	metrics CatalogRecorder

	once sync.Once
	done chan struct{}

	mu           sync.RWMutex
	destinations []domain.Destination
	byID         map[uuid.UUID]domain.Destination
	err          error
}

// NewCatalogService constructs a CatalogService over r. log and metrics may
// be nil.
func NewCatalogService(r repo.DestinationRepo, log *slog.Logger, metrics CatalogRecorder) *CatalogService {
	if log == nil {
		log = slog.Default()
	}
	if metrics == nil {
		metrics = (*observability.Collector)(nil)
	}
	return &CatalogService{
		repo:         r,
		log:          log,
		metrics:      metrics,
		done:         make(chan struct{}),
		destinations: []domain.Destination{},
		byID:         map[uuid.UUID]domain.Destination{},
	}
}

// Load fetches the catalog on the first call and returns the stored outcome
// on every later one. Concurrent callers wait for the first fetch to finish.
// On failure the error is logged and returned wrapped with domain.ErrFetch;
// the catalog stays empty and loading is still marked complete.
// No timeout is applied beyond whatever ctx carries.
func (s *CatalogService) Load(ctx context.Context) ([]domain.Destination, error) {
	s.once.Do(func() {
		defer close(s.done)
		s.fetch(ctx)
	})

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.destinations, s.err
}

func (s *CatalogService) fetch(ctx context.Context) {
	ctx, span := observability.Tracer().Start(ctx, "catalog.load")
	defer span.End()

	list, err := s.repo.ListByName(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.err = fmt.Errorf("service.CatalogService.Load: %w: %w", domain.ErrFetch, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalog fetch failed")
		s.metrics.CatalogLoadFailed()
		s.log.ErrorContext(ctx, "Error fetching destinations", "error", err)
		return
	}

	if list == nil {
		list = []domain.Destination{}
	}
	s.destinations = list
	for _, d := range list {
		s.byID[d.ID] = d
	}
	span.SetAttributes(attribute.Int("catalog.destinations", len(list)))
	s.metrics.CatalogLoaded(len(list))
	s.log.InfoContext(ctx, "catalog loaded", "destinations", len(list))
}

// Done is closed once the load has finished, successfully or not.
func (s *CatalogService) Done() <-chan struct{} {
	return s.done
}

// Status reports whether the load is still pending and, once it is not,
// the loaded destinations in name order.
func (s *CatalogService) Status() planner.CatalogStatus {
	select {
	case <-s.done:
	default:
		return planner.CatalogStatus{Loading: true, Destinations: []domain.Destination{}}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return planner.CatalogStatus{Destinations: s.destinations}
}

// Err returns the load failure, or nil while loading or after a success.
func (s *CatalogService) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Get returns one destination by id. Returns domain.ErrNotFound when the
// catalog has no such entry, including while it is still loading.
func (s *CatalogService) Get(id uuid.UUID) (domain.Destination, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.byID[id]
	if !ok {
		return domain.Destination{}, fmt.Errorf("service.CatalogService.Get: destination %s: %w", id, domain.ErrNotFound)
	}
	return d, nil
}

// Search filters the loaded catalog by query.
func (s *CatalogService) Search(query string) planner.SearchResult {
	return planner.Filter(s.Status().Destinations, query)
}
