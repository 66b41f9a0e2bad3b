package domain

import "time"

const (
	// DefaultTripTitle is the placeholder title of a fresh trip draft.
	DefaultTripTitle = "My Dream Trip"

	// DefaultBudget is the budget a fresh trip draft starts with.
	DefaultBudget = "5000"

	// DaysPerDestination is the fixed stay assumed for every selected
	// destination when estimating trip cost.
	DaysPerDestination = 3
)

// TripDraft is the unsaved planning metadata layered over a selection.
// It lives only in session state; nothing persists it.
type TripDraft struct {
	Title     string
	StartDate *time.Time // nil when not chosen yet
	EndDate   *time.Time // nil when not chosen yet; not checked against StartDate
	Budget    string     // numeric text as entered; see planner.ParseBudget
}

// NewTripDraft returns a draft populated with the default title and budget.
func NewTripDraft() TripDraft {
	return TripDraft{
		Title:  DefaultTripTitle,
		Budget: DefaultBudget,
	}
}
