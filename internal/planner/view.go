package planner

import (
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travelvista/internal/domain"
)

// cardRating is the fixed star rating every catalog card shows.
const cardRating = "4.8"

// cardActivityLimit caps how many activity tags a card shows.
const cardActivityLimit = 3

// CatalogStatus is what the page knows about the catalog load.
type CatalogStatus struct {
	Loading      bool
	Destinations []domain.Destination
}

// View is the composed page: loading indicator, catalog grid, search
// control, and the trip panel. Trip is nil while nothing is selected.
type View struct {
	Loading bool       `json:"loading"`
	Cards   []Card     `json:"cards"`
	Search  SearchView `json:"search"`
	Trip    *TripPanel `json:"trip,omitempty"`
}

// Card is one tile in the catalog grid.
type Card struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Country     string    `json:"country"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	DailyCost   string    `json:"daily_cost"`
	Rating      string    `json:"rating"`
	Activities  []string  `json:"activities"`
	Favorite    bool      `json:"favorite"`
}

// SearchView is the search control and its dropdown.
type SearchView struct {
	Query   string      `json:"query"`
	Open    bool        `json:"open"`
	Results []SearchHit `json:"results"`
}

// SearchHit is one row in the search dropdown.
type SearchHit struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	Region    string    `json:"region"`
	ImageURL  string    `json:"image_url"`
	DailyCost string    `json:"daily_cost"`
}

// TripPanel is the trip builder shown once at least one destination is
// selected.
type TripPanel struct {
	Title          string      `json:"title"`
	StartDate      *string     `json:"start_date,omitempty"`
	EndDate        *string     `json:"end_date,omitempty"`
	Budget         string      `json:"budget"`
	Entries        []TripEntry `json:"entries"`
	TotalCost      float64     `json:"total_cost"`
	EstimatedTotal string      `json:"estimated_total"`
	BudgetDisplay  string      `json:"budget_display"`
	BudgetMessage  string      `json:"budget_message,omitempty"`
	BudgetFill     float64     `json:"budget_fill"`
	OverBudget     bool        `json:"over_budget"`
}

// TripEntry is one numbered row in the trip panel.
type TripEntry struct {
	Position int       `json:"position"`
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Country  string    `json:"country"`
	ImageURL string    `json:"image_url"`
	Days     int       `json:"days"`
	Cost     float64   `json:"cost"`
	CostText string    `json:"cost_text"`
}

// Compose builds the page for one visitor from the catalog status and that
// visitor's state.
func Compose(catalog CatalogStatus, s State) View {
	v := View{
		Loading: catalog.Loading,
		Cards:   []Card{},
		Search:  composeSearch(catalog.Destinations, s.Query),
	}
	if !catalog.Loading {
		for _, d := range catalog.Destinations {
			v.Cards = append(v.Cards, composeCard(d, s.Favorites[d.ID]))
		}
	}
	if len(s.Selection) > 0 {
		v.Trip = composeTrip(s.Selection, s.Draft)
	}
	return v
}

func composeCard(d domain.Destination, favorite bool) Card {
	activities := d.PopularActivities
	if len(activities) > cardActivityLimit {
		activities = activities[:cardActivityLimit]
	}
	return Card{
		ID:          d.ID,
		Name:        d.Name,
		Country:     d.Country,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		DailyCost:   CardCurrency.Format(d.AverageCostPerDay) + "/day",
		Rating:      cardRating,
		Activities:  append([]string{}, activities...),
		Favorite:    favorite,
	}
}

func composeSearch(catalog []domain.Destination, query string) SearchView {
	res := Filter(catalog, query)
	sv := SearchView{Query: res.Query, Open: res.Open, Results: []SearchHit{}}
	for _, d := range res.Results {
		sv.Results = append(sv.Results, SearchHit{
			ID:        d.ID,
			Name:      d.Name,
			Country:   d.Country,
			Region:    d.Region,
			ImageURL:  d.ImageURL,
			DailyCost: ListCurrency.Format(d.AverageCostPerDay) + "/day",
		})
	}
	return sv
}

func composeTrip(sel Selection, draft domain.TripDraft) *TripPanel {
	est := Estimate(sel, domain.DaysPerDestination)
	panel := &TripPanel{
		Title:          draft.Title,
		StartDate:      formatDate(draft.StartDate),
		EndDate:        formatDate(draft.EndDate),
		Budget:         draft.Budget,
		Entries:        make([]TripEntry, 0, len(est.Items)),
		TotalCost:      est.Total,
		EstimatedTotal: ListCurrency.Format(est.Total),
		BudgetDisplay:  ListCurrency.Symbol + draft.Budget,
	}
	for _, item := range est.Items {
		panel.Entries = append(panel.Entries, TripEntry{
			Position: item.Position,
			ID:       item.Destination.ID,
			Name:     item.Destination.Name,
			Country:  item.Destination.Country,
			ImageURL: item.Destination.ImageURL,
			Days:     item.Days,
			Cost:     item.Cost,
			CostText: ListCurrency.Format(item.Cost),
		})
	}

	// A draft budget that does not parse leaves the comparison blank.
	if budget, err := ParseBudget(draft.Budget); err == nil {
		status := CompareBudget(est.Total, budget)
		panel.BudgetMessage = status.Message()
		panel.BudgetFill = status.Fill
		panel.OverBudget = !status.Under
	}
	return panel
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}
