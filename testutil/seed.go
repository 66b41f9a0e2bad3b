package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// querier is satisfied by *pgxpool.Pool and pgx.Tx.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DestinationSeed holds the columns tests usually care about. Empty optional
// fields are stored as NULL.
type DestinationSeed struct {
	Name       string
	Country    string
	Region     string
	Cost       float64
	Activities []string
}

// SeedDestination inserts one destinations row and returns its generated id.
func SeedDestination(t *testing.T, db querier, d DestinationSeed) uuid.UUID {
	t.Helper()

	const q = `
		INSERT INTO destinations (name, country, region, average_cost_per_day, popular_activities)
		VALUES (@name, @country, NULLIF(@region, ''), @cost, @activities)
		RETURNING id`

	var id uuid.UUID
	err := db.QueryRow(context.Background(), q, pgx.NamedArgs{
		"name":       d.Name,
		"country":    d.Country,
		"region":     d.Region,
		"cost":       d.Cost,
		"activities": d.Activities,
	}).Scan(&id)
	if err != nil {
		t.Fatalf("testutil.SeedDestination: %v", err)
	}
	return id
}
