package planner_test

import (
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travelvista/internal/domain"
)

// destinationFixture returns a destination with sensible defaults.
// Callers can override individual fields after calling this function.
func destinationFixture(name, country, region string, costPerDay float64) domain.Destination {
	return domain.Destination{
		ID:                uuid.New(),
		Name:              name,
		Country:           country,
		Region:            region,
		Description:       name + " description",
		ImageURL:          "https://images.example.com/" + name + ".jpg",
		AverageCostPerDay: costPerDay,
		BestSeason:        "Spring",
		PopularActivities: []string{"Hiking", "Food tours", "Museums", "Beaches"},
		CreatedAt:         time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// catalogFixture returns a small catalog ordered by name.
func catalogFixture() []domain.Destination {
	return []domain.Destination{
		destinationFixture("Bali", "Indonesia", "Southeast Asia", 80),
		destinationFixture("Kyoto", "Japan", "East Asia", 150),
		destinationFixture("Paris", "France", "Europe", 200),
		destinationFixture("Rome", "Italy", "Europe", 180),
	}
}
