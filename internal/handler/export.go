package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/travelvista/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_title", "trip_start_date", "trip_end_date", "trip_budget",
	"position", "destination_id", "destination_name", "country",
	"days", "daily_cost", "cost",
}

// ExportRow is one row of the JSON export.
type ExportRow struct {
	TripTitle       string  `json:"trip_title"`
	TripStartDate   *string `json:"trip_start_date,omitempty"`
	TripEndDate     *string `json:"trip_end_date,omitempty"`
	TripBudget      string  `json:"trip_budget"`
	Position        int     `json:"position"`
	DestinationID   string  `json:"destination_id"`
	DestinationName string  `json:"destination_name"`
	Country         string  `json:"country"`
	Days            int     `json:"days"`
	DailyCost       float64 `json:"daily_cost"`
	Cost            float64 `json:"cost"`
}

// ExportTrip handles GET /sessions/{sessionId}/export.
// It returns the session's trip plan as a flat table, one row per selected
// destination. Use ?format=csv to receive CSV; default is JSON.
func (s *Server) ExportTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "sessionId")
	if !ok {
		return
	}
	var format *string
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &format); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	if format != nil && *format != "csv" && *format != "json" {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("format must be csv or json"))
		return
	}

	rows, err := s.planner.Export(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, sessionNotFound)
		return
	}

	if format != nil && *format == "csv" {
		writeCSV(w, rows)
		return
	}
	out := make([]ExportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, domainRowToResponse(row))
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV encodes rows as CSV after the header row.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, row := range rows {
		//nolint:errcheck
		cw.Write(domainRowToCSVRecord(row))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trip.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// domainRowToResponse maps a domain.ExportRow to its JSON shape.
// Empty dates become nil pointers (omitted in JSON).
func domainRowToResponse(r domain.ExportRow) ExportRow {
	return ExportRow{
		TripTitle:       r.TripTitle,
		TripStartDate:   optional(r.TripStartDate),
		TripEndDate:     optional(r.TripEndDate),
		TripBudget:      r.TripBudget,
		Position:        r.Position,
		DestinationID:   r.DestinationID,
		DestinationName: r.DestinationName,
		Country:         r.Country,
		Days:            r.Days,
		DailyCost:       r.DailyCost,
		Cost:            r.Cost,
	}
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		r.TripTitle,
		r.TripStartDate,
		r.TripEndDate,
		r.TripBudget,
		strconv.Itoa(r.Position),
		r.DestinationID,
		r.DestinationName,
		r.Country,
		strconv.Itoa(r.Days),
		strconv.FormatFloat(r.DailyCost, 'f', -1, 64),
		strconv.FormatFloat(r.Cost, 'f', -1, 64),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
