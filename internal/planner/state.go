package planner

import (
	"maps"

	"github.com/google/uuid"

	"github.com/pkordes/travelvista/internal/domain"
)

// State is everything one visitor's page holds: the live search query, the
// selection, the trip draft, and which cards are marked as favourites.
// Treat it as a value; Reduce never mutates its input.
type State struct {
	Query     string
	Selection Selection
	Draft     domain.TripDraft
	Favorites map[uuid.UUID]bool
}

// NewState returns the state of a freshly opened page.
func NewState() State {
	return State{
		Selection: Selection{},
		Draft:     domain.NewTripDraft(),
		Favorites: map[uuid.UUID]bool{},
	}
}

// Action is a user intent that moves State forward.
type Action interface {
	apply(State) State
}

// Reduce returns the state that results from applying a to s.
func Reduce(s State, a Action) State {
	if a == nil {
		return s
	}
	return a.apply(s)
}

// SetQuery replaces the search query (one keystroke, or the clear button
// when Query is empty).
type SetQuery struct{ Query string }

func (a SetQuery) apply(s State) State {
	s.Query = a.Query
	return s
}

// Select adds a destination picked from the catalog grid.
type Select struct{ Destination domain.Destination }

func (a Select) apply(s State) State {
	s.Selection = Add(s.Selection, a.Destination)
	return s
}

// SelectFromSearch adds a destination picked from the search results, then
// clears the query, which closes the result list.
type SelectFromSearch struct{ Destination domain.Destination }

func (a SelectFromSearch) apply(s State) State {
	s.Selection = Add(s.Selection, a.Destination)
	s.Query = ""
	return s
}

// Deselect removes one destination from the trip.
type Deselect struct{ ID uuid.UUID }

func (a Deselect) apply(s State) State {
	s.Selection = Remove(s.Selection, a.ID)
	return s
}

// ClearSelection empties the trip.
type ClearSelection struct{}

func (ClearSelection) apply(s State) State {
	s.Selection = Clear(s.Selection)
	return s
}

// EditDraft replaces the trip draft fields.
type EditDraft struct{ Draft domain.TripDraft }

func (a EditDraft) apply(s State) State {
	s.Draft = a.Draft
	return s
}

// ToggleFavorite flips the heart on a catalog card.
type ToggleFavorite struct{ ID uuid.UUID }

func (a ToggleFavorite) apply(s State) State {
	favs := make(map[uuid.UUID]bool, len(s.Favorites)+1)
	maps.Copy(favs, s.Favorites)
	if favs[a.ID] {
		delete(favs, a.ID)
	} else {
		favs[a.ID] = true
	}
	s.Favorites = favs
	return s
}
