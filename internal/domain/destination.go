// Package domain contains the core data types for the TravelVista planner.
// It is imported by every other internal package (repo, service, planner, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Destination is one catalog entry: a travel location with cost and activity
// metadata. Destinations are read-only once loaded; the catalog never writes
// them back to the data source.
type Destination struct {
	ID                uuid.UUID `json:"id" yaml:"id"`
	Name              string    `json:"name" yaml:"name"`
	Country           string    `json:"country" yaml:"country"`
	Region            string    `json:"region" yaml:"region"`
	Description       string    `json:"description" yaml:"description"`
	ImageURL          string    `json:"image_url" yaml:"image_url"`
	AverageCostPerDay float64   `json:"average_cost_per_day" yaml:"average_cost_per_day"`
	BestSeason        string    `json:"best_season" yaml:"best_season"`
	PopularActivities []string  `json:"popular_activities" yaml:"popular_activities"`
	CreatedAt         time.Time `json:"created_at" yaml:"created_at"`
}
