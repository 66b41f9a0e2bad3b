package planner

import (
	"strings"

	"github.com/pkordes/travelvista/internal/domain"
)

// SearchResult is the state of the search control after a query change.
// Open is false for an empty or whitespace-only query; the result list is
// only surfaced while Open is true.
type SearchResult struct {
	Query   string
	Open    bool
	Results []domain.Destination
}

// Filter returns the destinations whose name, country, or region contains
// query, ignoring case. Results keep catalog order.
//
// The whitespace check uses the trimmed query but matching uses the query as
// typed, so "  rome" does not match "Rome".
func Filter(catalog []domain.Destination, query string) SearchResult {
	if strings.TrimSpace(query) == "" {
		return SearchResult{Query: query}
	}

	needle := strings.ToLower(query)
	results := []domain.Destination{}
	for _, d := range catalog {
		if matches(d, needle) {
			results = append(results, d)
		}
	}
	return SearchResult{Query: query, Open: true, Results: results}
}

func matches(d domain.Destination, needle string) bool {
	return strings.Contains(strings.ToLower(d.Name), needle) ||
		strings.Contains(strings.ToLower(d.Country), needle) ||
		strings.Contains(strings.ToLower(d.Region), needle)
}
