package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travelvista/internal/domain"
	"github.com/pkordes/travelvista/internal/planner"
)

// SessionResponse is the body returned by every session route that changes
// or reads page state: the session id and the freshly composed page.
type SessionResponse struct {
	ID   uuid.UUID    `json:"id"`
	View planner.View `json:"view"`
}

// QueryRequest is the body of PUT /sessions/{sessionId}/query.
type QueryRequest struct {
	Query string `json:"query"`
}

// SelectionRequest is the body of the POST selection routes.
type SelectionRequest struct {
	DestinationID uuid.UUID `json:"destination_id"`
}

// DraftRequest is the body of PUT /sessions/{sessionId}/draft.
// Dates are calendar dates ("2006-01-02"); null or absent clears them.
type DraftRequest struct {
	Title     string              `json:"title"`
	StartDate *openapi_types.Date `json:"start_date"`
	EndDate   *openapi_types.Date `json:"end_date"`
	Budget    string              `json:"budget"`
}

const sessionNotFound = "session not found"

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, view, err := s.planner.Create(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, sessionNotFound)
		return
	}
	w.Header().Set("Location", "/sessions/"+id.String())
	writeJSON(w, http.StatusCreated, SessionResponse{ID: id, View: view})
}

// GetSession handles GET /sessions/{sessionId}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "sessionId")
	if !ok {
		return
	}
	view, err := s.planner.View(r.Context(), id)
	s.respondView(w, r, id, view, err, sessionNotFound)
}

// DeleteSession handles DELETE /sessions/{sessionId}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "sessionId")
	if !ok {
		return
	}
	if err := s.planner.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, sessionNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetQuery handles PUT /sessions/{sessionId}/query.
func (s *Server) SetQuery(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "sessionId")
	if !ok {
		return
	}
	var body QueryRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	view, err := s.planner.SetQuery(r.Context(), id, body.Query)
	s.respondView(w, r, id, view, err, sessionNotFound)
}

// AddSelection handles POST /sessions/{sessionId}/selection.
func (s *Server) AddSelection(w http.ResponseWriter, r *http.Request) {
	id, body, ok := s.selectionRequest(w, r)
	if !ok {
		return
	}
	view, err := s.planner.Select(r.Context(), id, body.DestinationID)
	s.respondView(w, r, id, view, err, "session or destination not found")
}

// AddSelectionFromSearch handles POST /sessions/{sessionId}/selection/from-search.
// It also clears the search query.
func (s *Server) AddSelectionFromSearch(w http.ResponseWriter, r *http.Request) {
	id, body, ok := s.selectionRequest(w, r)
	if !ok {
		return
	}
	view, err := s.planner.SelectFromSearch(r.Context(), id, body.DestinationID)
	s.respondView(w, r, id, view, err, "session or destination not found")
}

// RemoveSelection handles DELETE /sessions/{sessionId}/selection/{destinationId}.
func (s *Server) RemoveSelection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "sessionId")
	if !ok {
		return
	}
	destID, ok := pathUUID(w, r, "destinationId")
	if !ok {
		return
	}
	view, err := s.planner.Deselect(r.Context(), id, destID)
	s.respondView(w, r, id, view, err, sessionNotFound)
}

// ClearSelection handles DELETE /sessions/{sessionId}/selection.
func (s *Server) ClearSelection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "sessionId")
	if !ok {
		return
	}
	view, err := s.planner.ClearSelection(r.Context(), id)
	s.respondView(w, r, id, view, err, sessionNotFound)
}

// UpdateDraft handles PUT /sessions/{sessionId}/draft.
func (s *Server) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "sessionId")
	if !ok {
		return
	}
	var body DraftRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	view, err := s.planner.EditDraft(r.Context(), id, requestToDraft(body))
	s.respondView(w, r, id, view, err, sessionNotFound)
}

// ToggleFavorite handles POST /sessions/{sessionId}/favorites/{destinationId}.
func (s *Server) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "sessionId")
	if !ok {
		return
	}
	destID, ok := pathUUID(w, r, "destinationId")
	if !ok {
		return
	}
	view, err := s.planner.ToggleFavorite(r.Context(), id, destID)
	s.respondView(w, r, id, view, err, "session or destination not found")
}

// SaveTrip handles POST /sessions/{sessionId}/save.
// The request is acknowledged with 204; nothing is persisted.
func (s *Server) SaveTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "sessionId")
	if !ok {
		return
	}
	if err := s.planner.Save(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, sessionNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) selectionRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, SelectionRequest, bool) {
	var body SelectionRequest
	id, ok := pathUUID(w, r, "sessionId")
	if !ok {
		return id, body, false
	}
	if !decodeJSON(w, r, &body) {
		return id, body, false
	}
	if body.DestinationID == uuid.Nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("destination_id is required"))
		return id, body, false
	}
	return id, body, true
}

func (s *Server) respondView(w http.ResponseWriter, r *http.Request, id uuid.UUID, view planner.View, err error, notFound string) {
	if err != nil {
		s.writeServiceError(w, r, err, notFound)
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{ID: id, View: view})
}

// pathUUID binds a UUID path parameter, writing a 422 on failure.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid "+name+": "+err.Error()))
		return uuid.Nil, false
	}
	return id, true
}

// requestToDraft converts the request body into a domain.TripDraft.
func requestToDraft(body DraftRequest) domain.TripDraft {
	return domain.TripDraft{
		Title:     body.Title,
		StartDate: dateToTime(body.StartDate),
		EndDate:   dateToTime(body.EndDate),
		Budget:    body.Budget,
	}
}

func dateToTime(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
