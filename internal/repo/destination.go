// Package repo contains the catalog sources for the TravelVista API.
// Each source implements DestinationRepo; the service layer never knows which
// one it is talking to. No business logic lives here, only fetching and type
// mapping.
package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travelvista/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DestinationRepo is a read-only source of the destination catalog.
type DestinationRepo interface {
	// ListByName returns every destination ordered by name ascending.
	// An empty catalog is not an error.
	ListByName(ctx context.Context) ([]domain.Destination, error)
}

// pgDestinationRepo reads the destinations table directly.
type pgDestinationRepo struct {
	db db
}

// NewDestinationRepo constructs a DestinationRepo backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx.
func NewDestinationRepo(db db) DestinationRepo {
	return &pgDestinationRepo{db: db}
}

// ListByName returns all destinations ordered by name.
func (r *pgDestinationRepo) ListByName(ctx context.Context) ([]domain.Destination, error) {
	const q = `
		SELECT id, name, country, region, description, image_url,
		       average_cost_per_day, best_season, popular_activities, created_at
		FROM destinations
		ORDER BY name ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.ListByName: %w", err)
	}
	defer rows.Close()

	out := []domain.Destination{}
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DestinationRepo.ListByName: scan: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.ListByName: rows: %w", err)
	}

	return out, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanDestination maps one row into a domain.Destination. Nullable text
// columns come back as empty strings and a NULL activity list as an empty
// slice.
func scanDestination(s scanner) (domain.Destination, error) {
	var (
		d           domain.Destination
		id          pgtype.UUID
		region      pgtype.Text
		description pgtype.Text
		imageURL    pgtype.Text
		bestSeason  pgtype.Text
		activities  []string
	)

	err := s.Scan(&id, &d.Name, &d.Country, &region, &description, &imageURL,
		&d.AverageCostPerDay, &bestSeason, &activities, &d.CreatedAt)
	if err != nil {
		return domain.Destination{}, err
	}

	d.ID = uuid.UUID(id.Bytes)
	d.Region = region.String
	d.Description = description.String
	d.ImageURL = imageURL.String
	d.BestSeason = bestSeason.String
	d.PopularActivities = activities
	if d.PopularActivities == nil {
		d.PopularActivities = []string{}
	}

	return d, nil
}
