package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travelvista/internal/animator"
	"github.com/pkordes/travelvista/internal/clock"
	"github.com/pkordes/travelvista/internal/domain"
	"github.com/pkordes/travelvista/internal/handler"
	"github.com/pkordes/travelvista/internal/planner"
)

// mockCatalogServicer is a test double for handler.CatalogServicer.
type mockCatalogServicer struct {
	status func() planner.CatalogStatus
	search func(query string) planner.SearchResult
}

func (m *mockCatalogServicer) Status() planner.CatalogStatus { return m.status() }
func (m *mockCatalogServicer) Search(q string) planner.SearchResult {
	return m.search(q)
}

// compile-time check: mockCatalogServicer must satisfy handler.CatalogServicer.
var _ handler.CatalogServicer = (*mockCatalogServicer)(nil)

// mockPlannerServicer is a test double for handler.PlannerServicer.
// Set only the method fields your test needs.
type mockPlannerServicer struct {
	create           func(ctx context.Context) (uuid.UUID, planner.View, error)
	view             func(ctx context.Context, id uuid.UUID) (planner.View, error)
	setQuery         func(ctx context.Context, id uuid.UUID, query string) (planner.View, error)
	selectDest       func(ctx context.Context, id, destID uuid.UUID) (planner.View, error)
	selectFromSearch func(ctx context.Context, id, destID uuid.UUID) (planner.View, error)
	deselect         func(ctx context.Context, id, destID uuid.UUID) (planner.View, error)
	clearSelection   func(ctx context.Context, id uuid.UUID) (planner.View, error)
	editDraft        func(ctx context.Context, id uuid.UUID, d domain.TripDraft) (planner.View, error)
	toggleFavorite   func(ctx context.Context, id, destID uuid.UUID) (planner.View, error)
	save             func(ctx context.Context, id uuid.UUID) error
	delete           func(ctx context.Context, id uuid.UUID) error
	export           func(ctx context.Context, id uuid.UUID) ([]domain.ExportRow, error)
}

func (m *mockPlannerServicer) Create(ctx context.Context) (uuid.UUID, planner.View, error) {
	return m.create(ctx)
}
func (m *mockPlannerServicer) View(ctx context.Context, id uuid.UUID) (planner.View, error) {
	return m.view(ctx, id)
}
func (m *mockPlannerServicer) SetQuery(ctx context.Context, id uuid.UUID, q string) (planner.View, error) {
	return m.setQuery(ctx, id, q)
}
func (m *mockPlannerServicer) Select(ctx context.Context, id, destID uuid.UUID) (planner.View, error) {
	return m.selectDest(ctx, id, destID)
}
func (m *mockPlannerServicer) SelectFromSearch(ctx context.Context, id, destID uuid.UUID) (planner.View, error) {
	return m.selectFromSearch(ctx, id, destID)
}
func (m *mockPlannerServicer) Deselect(ctx context.Context, id, destID uuid.UUID) (planner.View, error) {
	return m.deselect(ctx, id, destID)
}
func (m *mockPlannerServicer) ClearSelection(ctx context.Context, id uuid.UUID) (planner.View, error) {
	return m.clearSelection(ctx, id)
}
func (m *mockPlannerServicer) EditDraft(ctx context.Context, id uuid.UUID, d domain.TripDraft) (planner.View, error) {
	return m.editDraft(ctx, id, d)
}
func (m *mockPlannerServicer) ToggleFavorite(ctx context.Context, id, destID uuid.UUID) (planner.View, error) {
	return m.toggleFavorite(ctx, id, destID)
}
func (m *mockPlannerServicer) Save(ctx context.Context, id uuid.UUID) error {
	return m.save(ctx, id)
}
func (m *mockPlannerServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockPlannerServicer) Export(ctx context.Context, id uuid.UUID) ([]domain.ExportRow, error) {
	return m.export(ctx, id)
}

// compile-time check: mockPlannerServicer must satisfy handler.PlannerServicer.
var _ handler.PlannerServicer = (*mockPlannerServicer)(nil)

// countingFrames is a handler.FrameRecorder that counts calls.
type countingFrames struct{ n int }

func (c *countingFrames) FrameRendered() { c.n++ }

// ---- helpers ---------------------------------------------------------------

const frameInterval = 10 * time.Millisecond

func steady() float64 { return 0.5 }

// newHTTPHandler wires a Server with the given mocks into a chi router,
// the way main.go does in production.
func newHTTPHandler(catalog handler.CatalogServicer, svc handler.PlannerServicer, opts ...handler.Option) http.Handler {
	opts = append([]handler.Option{
		handler.WithLogger(slog.New(slog.DiscardHandler)),
		handler.WithRenderer(animator.NewRenderer(animator.WithJitter(steady))),
		handler.WithClock(clock.Fake(time.Unix(0, 0))),
		handler.WithFrameInterval(frameInterval),
	}, opts...)
	return handler.NewServer(catalog, svc, opts...).Handler()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func destinationFixture(name, country string, cost float64) domain.Destination {
	return domain.Destination{
		ID:                uuid.New(),
		Name:              name,
		Country:           country,
		AverageCostPerDay: cost,
		PopularActivities: []string{"Hiking"},
	}
}

// viewFixture is a composed page with one selected destination.
func viewFixture() planner.View {
	d := destinationFixture("Bali", "Indonesia", 80)
	st := planner.Reduce(planner.NewState(), planner.Select{Destination: d})
	return planner.Compose(planner.CatalogStatus{Destinations: []domain.Destination{d}}, st)
}

func decodeError(t *testing.T, body *bytes.Buffer) handler.ErrorResponse {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}
