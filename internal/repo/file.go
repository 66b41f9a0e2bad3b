package repo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pkordes/travelvista/internal/domain"
)

// fileDestinationRepo serves the catalog from a YAML document on disk.
// Used for local development and the terminal planner when no database is
// reachable.
type fileDestinationRepo struct {
	path string
}

// catalogFile is the top-level YAML layout:
//
//	destinations:
//	  - id: 6f1c...
//	    name: Kyoto
//	    ...
type catalogFile struct {
	Destinations []domain.Destination `yaml:"destinations"`
}

// NewFileDestinationRepo returns a DestinationRepo reading path on every call.
func NewFileDestinationRepo(path string) (DestinationRepo, error) {
	if path == "" {
		return nil, fmt.Errorf("repo.NewFileDestinationRepo: catalog file path is required: %w", domain.ErrConfiguration)
	}
	return &fileDestinationRepo{path: path}, nil
}

// ListByName decodes the file and sorts the entries by name.
func (r *fileDestinationRepo) ListByName(ctx context.Context) ([]domain.Destination, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("repo.FileDestinationRepo.ListByName: %w", err)
	}

	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("repo.FileDestinationRepo.ListByName: %w", err)
	}
	defer f.Close()

	var doc catalogFile
	if err := yaml.NewDecoder(f).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("repo.FileDestinationRepo.ListByName: decode %s: %w", r.path, err)
	}

	out := doc.Destinations
	if out == nil {
		out = []domain.Destination{}
	}
	for i := range out {
		if out[i].PopularActivities == nil {
			out[i].PopularActivities = []string{}
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Destination) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out, nil
}
