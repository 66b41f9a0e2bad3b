package repo

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pkordes/travelvista/internal/config"
	"github.com/pkordes/travelvista/internal/domain"
)

// Open builds the DestinationRepo selected by cfg.CatalogSource. Only
// configuration problems fail here. Nothing is dialled, so an unreachable
// source surfaces from the first ListByName instead.
// The returned close func releases any connection pool and is never nil.
func Open(ctx context.Context, cfg config.Config) (DestinationRepo, func(), error) {
	noop := func() {}
	switch cfg.CatalogSource {
	case config.SourceSupabase:
		// No client timeout: the fetch is bounded only by the caller's ctx.
		r, err := NewSupabaseDestinationRepo(cfg.SupabaseURL, cfg.SupabaseAnonKey, &http.Client{})
		return r, noop, err
	case config.SourcePostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("repo.Open: DATABASE_URL: %w: %w", domain.ErrConfiguration, err)
		}
		return NewDestinationRepo(pool), pool.Close, nil
	case config.SourceFile:
		r, err := NewFileDestinationRepo(cfg.CatalogFile)
		return r, noop, err
	default:
		return nil, noop, fmt.Errorf("repo.Open: unknown catalog source %q: %w", cfg.CatalogSource, domain.ErrConfiguration)
	}
}
