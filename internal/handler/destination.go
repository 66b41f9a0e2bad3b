package handler

import (
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/travelvista/internal/domain"
)

// DestinationList is the body of GET /destinations.
type DestinationList struct {
	Loading      bool                 `json:"loading"`
	Destinations []domain.Destination `json:"destinations"`
}

// SearchResponse is the body of GET /destinations/search.
type SearchResponse struct {
	Query   string               `json:"query"`
	Open    bool                 `json:"open"`
	Results []domain.Destination `json:"results"`
}

// ListDestinations handles GET /destinations.
// While the catalog is still loading the list is empty and loading is true.
func (s *Server) ListDestinations(w http.ResponseWriter, _ *http.Request) {
	st := s.catalog.Status()
	list := st.Destinations
	if list == nil {
		list = []domain.Destination{}
	}
	writeJSON(w, http.StatusOK, DestinationList{Loading: st.Loading, Destinations: list})
}

// SearchDestinations handles GET /destinations/search?q=.
// A blank query returns open=false and no results.
func (s *Server) SearchDestinations(w http.ResponseWriter, r *http.Request) {
	var q *string
	if err := runtime.BindQueryParameter("form", true, false, "q", r.URL.Query(), &q); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	query := ""
	if q != nil {
		query = *q
	}

	res := s.catalog.Search(query)
	if res.Results == nil {
		res.Results = []domain.Destination{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Query: res.Query, Open: res.Open, Results: res.Results})
}
