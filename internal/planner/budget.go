package planner

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/travelvista/internal/domain"
)

// ItemCost is the estimated cost of one selected destination.
// Position is 1-based and follows selection order.
type ItemCost struct {
	Position    int
	Destination domain.Destination
	Days        int
	Cost        float64
}

// TripEstimate is the cost breakdown for a selection.
type TripEstimate struct {
	Items   []ItemCost
	PerItem map[uuid.UUID]float64
	Total   float64
}

// Estimate prices every selected destination at AverageCostPerDay × days
// and sums the result. An empty selection yields a zero total.
func Estimate(sel Selection, days int) TripEstimate {
	est := TripEstimate{
		Items:   make([]ItemCost, 0, len(sel)),
		PerItem: make(map[uuid.UUID]float64, len(sel)),
	}
	for i, d := range sel {
		cost := d.AverageCostPerDay * float64(days)
		est.Items = append(est.Items, ItemCost{
			Position:    i + 1,
			Destination: d,
			Days:        days,
			Cost:        cost,
		})
		est.PerItem[d.ID] = cost
		est.Total += cost
	}
	return est
}

// BudgetStatus compares an estimated total against the visitor's budget.
// Valid is false when there is no positive budget to compare against; the
// other fields are then zero.
type BudgetStatus struct {
	Valid   bool
	Budget  int
	Under   bool
	Percent int
	Fill    float64 // progress-bar fraction, clamped to [0, 1]
}

// CompareBudget reports how far total is under or over budget, as a whole
// percentage of budget.
func CompareBudget(total float64, budget int) BudgetStatus {
	if budget <= 0 {
		return BudgetStatus{}
	}
	ratio := total / float64(budget)
	status := BudgetStatus{
		Valid:  true,
		Budget: budget,
		Under:  total <= float64(budget),
		Fill:   math.Min(ratio, 1),
	}
	if status.Under {
		status.Percent = int(math.Round((1 - ratio) * 100))
	} else {
		status.Percent = int(math.Round((ratio - 1) * 100))
	}
	return status
}

// Message renders the status line shown under the progress bar.
func (b BudgetStatus) Message() string {
	if !b.Valid {
		return ""
	}
	if b.Under {
		return fmt.Sprintf("You're %d%% under budget", b.Percent)
	}
	return fmt.Sprintf("You're %d%% over budget", b.Percent)
}

// ParseBudget parses budget text as a base-10 whole number. Surrounding
// whitespace is ignored. Anything else, including zero and negative
// amounts, is rejected with domain.ErrValidation.
func ParseBudget(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: budget must be a whole number", domain.ErrValidation)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: budget must be greater than zero", domain.ErrValidation)
	}
	return n, nil
}
