package planner

import (
	"github.com/google/uuid"

	"github.com/pkordes/travelvista/internal/domain"
)

// Selection is the ordered, duplicate-free list of destinations a visitor
// picked. Order is insertion order and drives the 1-based numbering shown in
// the trip panel.
type Selection []domain.Destination

// Contains reports whether a destination with id is already selected.
func (s Selection) Contains(id uuid.UUID) bool {
	for _, d := range s {
		if d.ID == id {
			return true
		}
	}
	return false
}

// IDs returns the selected ids in display order.
func (s Selection) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(s))
	for i, d := range s {
		ids[i] = d.ID
	}
	return ids
}

// Add appends d unless a destination with the same id is present, in which
// case s is returned unchanged.
func Add(s Selection, d domain.Destination) Selection {
	if s.Contains(d.ID) {
		return s
	}
	out := make(Selection, len(s), len(s)+1)
	copy(out, s)
	return append(out, d)
}

// Remove drops the destination with id. Removing an id that is not selected
// is a no-op, not an error.
func Remove(s Selection, id uuid.UUID) Selection {
	if !s.Contains(id) {
		return s
	}
	out := make(Selection, 0, len(s)-1)
	for _, d := range s {
		if d.ID != id {
			out = append(out, d)
		}
	}
	return out
}

// Clear returns an empty selection.
func Clear(Selection) Selection {
	return Selection{}
}
