package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travelvista/internal/domain"
	"github.com/pkordes/travelvista/internal/handler"
	"github.com/pkordes/travelvista/internal/planner"
)

func sessionPath(id uuid.UUID, suffix string) string {
	return "/sessions/" + id.String() + suffix
}

// ---- POST /sessions --------------------------------------------------------

func TestCreateSession_201(t *testing.T) {
	id := uuid.New()
	svc := &mockPlannerServicer{
		create: func(_ context.Context) (uuid.UUID, planner.View, error) {
			return id, planner.View{Cards: []planner.Card{}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/sessions/"+id.String(), rec.Header().Get("Location"))

	var resp handler.SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, id, resp.ID)
	assert.Nil(t, resp.View.Trip)
}

func TestCreateSession_500_UnexpectedError(t *testing.T) {
	svc := &mockPlannerServicer{
		create: func(_ context.Context) (uuid.UUID, planner.View, error) {
			return uuid.Nil, planner.View{}, fmt.Errorf("boom")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal_error", decodeError(t, rec.Body).Error.Code)
}

// ---- GET /sessions/{id} ----------------------------------------------------

func TestGetSession_200(t *testing.T) {
	id := uuid.New()
	view := viewFixture()
	svc := &mockPlannerServicer{
		view: func(_ context.Context, got uuid.UUID) (planner.View, error) {
			assert.Equal(t, id, got)
			return view, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, sessionPath(id, ""), nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.View.Trip)
	assert.Equal(t, "$240", resp.View.Trip.EstimatedTotal)
	assert.Equal(t, "You're 95% under budget", resp.View.Trip.BudgetMessage)
}

func TestGetSession_404(t *testing.T) {
	svc := &mockPlannerServicer{
		view: func(_ context.Context, _ uuid.UUID) (planner.View, error) {
			return planner.View{}, fmt.Errorf("service.PlannerService.View: %w", domain.ErrNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodGet, sessionPath(uuid.New(), ""), nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeError(t, rec.Body)
	assert.Equal(t, "not_found", resp.Error.Code)
	assert.Equal(t, "session not found", resp.Error.Message)
}

func TestGetSession_422_InvalidID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/sessions/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, &mockPlannerServicer{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeError(t, rec.Body).Error.Message, "sessionId")
}

// ---- DELETE /sessions/{id} -------------------------------------------------

func TestDeleteSession_204(t *testing.T) {
	id := uuid.New()
	var deleted uuid.UUID
	svc := &mockPlannerServicer{
		delete: func(_ context.Context, got uuid.UUID) error {
			deleted = got
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, sessionPath(id, ""), nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, id, deleted)
}

func TestDeleteSession_404(t *testing.T) {
	svc := &mockPlannerServicer{
		delete: func(_ context.Context, _ uuid.UUID) error { return domain.ErrNotFound },
	}

	req := httptest.NewRequest(http.MethodDelete, sessionPath(uuid.New(), ""), nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- PUT /sessions/{id}/query ----------------------------------------------

func TestSetQuery_200(t *testing.T) {
	var got string
	svc := &mockPlannerServicer{
		setQuery: func(_ context.Context, _ uuid.UUID, q string) (planner.View, error) {
			got = q
			return planner.View{Search: planner.SearchView{Query: q, Open: true}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPut, sessionPath(uuid.New(), "/query"),
		jsonBody(t, map[string]string{"query": "jap"}))
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jap", got)
}

func TestSetQuery_422_UnknownField(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, sessionPath(uuid.New(), "/query"),
		strings.NewReader(`{"q":"jap"}`))
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, &mockPlannerServicer{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeError(t, rec.Body).Error.Message, "invalid request body")
}

// ---- POST /sessions/{id}/selection -----------------------------------------

func TestAddSelection_200(t *testing.T) {
	sessionID, destID := uuid.New(), uuid.New()
	svc := &mockPlannerServicer{
		selectDest: func(_ context.Context, id, got uuid.UUID) (planner.View, error) {
			assert.Equal(t, sessionID, id)
			assert.Equal(t, destID, got)
			return viewFixture(), nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, sessionPath(sessionID, "/selection"),
		jsonBody(t, map[string]string{"destination_id": destID.String()}))
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, sessionID, resp.ID)
	require.NotNil(t, resp.View.Trip)
	assert.Len(t, resp.View.Trip.Entries, 1)
}

func TestAddSelection_422_MissingDestination(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, sessionPath(uuid.New(), "/selection"),
		strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, &mockPlannerServicer{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "destination_id is required", decodeError(t, rec.Body).Error.Message)
}

func TestAddSelection_404_UnknownDestination(t *testing.T) {
	svc := &mockPlannerServicer{
		selectDest: func(_ context.Context, _, _ uuid.UUID) (planner.View, error) {
			return planner.View{}, fmt.Errorf("service.CatalogService.Get: %w", domain.ErrNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodPost, sessionPath(uuid.New(), "/selection"),
		jsonBody(t, map[string]string{"destination_id": uuid.NewString()}))
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "session or destination not found", decodeError(t, rec.Body).Error.Message)
}

func TestAddSelectionFromSearch_200(t *testing.T) {
	called := false
	svc := &mockPlannerServicer{
		selectFromSearch: func(_ context.Context, _, _ uuid.UUID) (planner.View, error) {
			called = true
			return viewFixture(), nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, sessionPath(uuid.New(), "/selection/from-search"),
		jsonBody(t, map[string]string{"destination_id": uuid.NewString()}))
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

// ---- DELETE /sessions/{id}/selection ---------------------------------------

func TestRemoveSelection_200(t *testing.T) {
	destID := uuid.New()
	svc := &mockPlannerServicer{
		deselect: func(_ context.Context, _, got uuid.UUID) (planner.View, error) {
			assert.Equal(t, destID, got)
			return planner.View{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, sessionPath(uuid.New(), "/selection/"+destID.String()), nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRemoveSelection_422_InvalidDestinationID(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, sessionPath(uuid.New(), "/selection/xyz"), nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, &mockPlannerServicer{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeError(t, rec.Body).Error.Message, "destinationId")
}

func TestClearSelection_200(t *testing.T) {
	svc := &mockPlannerServicer{
		clearSelection: func(_ context.Context, _ uuid.UUID) (planner.View, error) {
			return planner.View{Cards: []planner.Card{}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, sessionPath(uuid.New(), "/selection"), nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Nil(t, resp.View.Trip)
}

// ---- PUT /sessions/{id}/draft ----------------------------------------------

func TestUpdateDraft_200(t *testing.T) {
	var got domain.TripDraft
	svc := &mockPlannerServicer{
		editDraft: func(_ context.Context, _ uuid.UUID, d domain.TripDraft) (planner.View, error) {
			got = d
			return planner.View{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPut, sessionPath(uuid.New(), "/draft"), jsonBody(t, map[string]any{
		"title":      "Asia loop",
		"start_date": "2026-03-01",
		"end_date":   nil,
		"budget":     "2500",
	}))
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Asia loop", got.Title)
	assert.Equal(t, "2500", got.Budget)
	require.NotNil(t, got.StartDate)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), got.StartDate.UTC())
	assert.Nil(t, got.EndDate)
}

func TestUpdateDraft_422_BadDate(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, sessionPath(uuid.New(), "/draft"),
		strings.NewReader(`{"title":"x","start_date":"March 1st","budget":"10"}`))
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, &mockPlannerServicer{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUpdateDraft_422_InvalidBudget(t *testing.T) {
	svc := &mockPlannerServicer{
		editDraft: func(_ context.Context, _ uuid.UUID, _ domain.TripDraft) (planner.View, error) {
			return planner.View{}, fmt.Errorf("service.PlannerService.EditDraft: %w: budget must be a positive whole number",
				domain.ErrValidation)
		},
	}

	req := httptest.NewRequest(http.MethodPut, sessionPath(uuid.New(), "/draft"),
		jsonBody(t, map[string]string{"title": "x", "budget": "abc"}))
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeError(t, rec.Body)
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Equal(t, "budget must be a positive whole number", resp.Error.Message)
}

func TestUpdateDraft_413_BodyTooLarge(t *testing.T) {
	srv := newHTTPHandler(nil, &mockPlannerServicer{})
	limited := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, 8)
		srv.ServeHTTP(w, r)
	})

	req := httptest.NewRequest(http.MethodPut, sessionPath(uuid.New(), "/draft"),
		jsonBody(t, map[string]string{"title": strings.Repeat("x", 64), "budget": "10"}))
	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

// ---- POST /sessions/{id}/favorites/{destinationId} -------------------------

func TestToggleFavorite_200(t *testing.T) {
	destID := uuid.New()
	svc := &mockPlannerServicer{
		toggleFavorite: func(_ context.Context, _, got uuid.UUID) (planner.View, error) {
			return planner.View{Cards: []planner.Card{{ID: got, Favorite: true}}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, sessionPath(uuid.New(), "/favorites/"+destID.String()), nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.View.Cards, 1)
	assert.True(t, resp.View.Cards[0].Favorite)
}

// ---- POST /sessions/{id}/save ----------------------------------------------

func TestSaveTrip_204(t *testing.T) {
	svc := &mockPlannerServicer{
		save: func(_ context.Context, _ uuid.UUID) error { return nil },
	}

	req := httptest.NewRequest(http.MethodPost, sessionPath(uuid.New(), "/save"), nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestSaveTrip_404(t *testing.T) {
	svc := &mockPlannerServicer{
		save: func(_ context.Context, _ uuid.UUID) error { return domain.ErrNotFound },
	}

	req := httptest.NewRequest(http.MethodPost, sessionPath(uuid.New(), "/save"), nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
