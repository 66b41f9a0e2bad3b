package domain

// ExportRow is one line of a flattened trip plan: the draft fields repeated
// on every row, then one selected destination with its estimated stay cost.
// Dates are "2006-01-02" strings, or empty when not chosen.
type ExportRow struct {
	TripTitle       string
	TripStartDate   string
	TripEndDate     string
	TripBudget      string
	Position        int
	DestinationID   string
	DestinationName string
	Country         string
	Days            int
	DailyCost       float64
	Cost            float64
}
