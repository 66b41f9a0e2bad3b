package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkordes/travelvista/internal/domain"
)

// supabaseDestinationRepo reads the destinations table through the hosted
// PostgREST endpoint using the project's anonymous key.
type supabaseDestinationRepo struct {
	endpoint string
	anonKey  string
	client   *http.Client
}

// NewSupabaseDestinationRepo returns a DestinationRepo for the Supabase
// project at baseURL. Returns domain.ErrConfiguration when either value is
// empty so no client is built for an unusable project. A nil client uses
// http.DefaultClient, which has no timeout.
func NewSupabaseDestinationRepo(baseURL, anonKey string, client *http.Client) (DestinationRepo, error) {
	if baseURL == "" || anonKey == "" {
		return nil, fmt.Errorf("repo.NewSupabaseDestinationRepo: supabase url and anon key are required: %w", domain.ErrConfiguration)
	}
	if client == nil {
		client = http.DefaultClient
	}

	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "name.asc")

	return &supabaseDestinationRepo{
		endpoint: strings.TrimRight(baseURL, "/") + "/rest/v1/destinations?" + q.Encode(),
		anonKey:  anonKey,
		client:   client,
	}, nil
}

// ListByName issues a single GET and decodes the JSON array.
func (r *supabaseDestinationRepo) ListByName(ctx context.Context) ([]domain.Destination, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("repo.SupabaseDestinationRepo.ListByName: %w", err)
	}
	req.Header.Set("apikey", r.anonKey)
	req.Header.Set("Authorization", "Bearer "+r.anonKey)
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("repo.SupabaseDestinationRepo.ListByName: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("repo.SupabaseDestinationRepo.ListByName: status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var rows []supabaseDestination
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("repo.SupabaseDestinationRepo.ListByName: decode: %w", err)
	}

	out := make([]domain.Destination, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// supabaseDestination mirrors the PostgREST row. Nullable columns are
// pointers so a JSON null does not fail the decode.
type supabaseDestination struct {
	domain.Destination
	Region            *string  `json:"region"`
	Description       *string  `json:"description"`
	ImageURL          *string  `json:"image_url"`
	BestSeason        *string  `json:"best_season"`
	PopularActivities []string `json:"popular_activities"`
}

func (s supabaseDestination) toDomain() domain.Destination {
	d := s.Destination
	d.Region = deref(s.Region)
	d.Description = deref(s.Description)
	d.ImageURL = deref(s.ImageURL)
	d.BestSeason = deref(s.BestSeason)
	d.PopularActivities = s.PopularActivities
	if d.PopularActivities == nil {
		d.PopularActivities = []string{}
	}
	return d
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
