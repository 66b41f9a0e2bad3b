package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travelvista/internal/domain"
	"github.com/pkordes/travelvista/internal/planner"
)

// Export flattens a session's trip plan into one row per selected
// destination, in selection order. An empty selection yields no rows.
func (s *PlannerService) Export(ctx context.Context, id uuid.UUID) ([]domain.ExportRow, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, fmt.Errorf("service.PlannerService.Export: %w", err)
	}

	sess.mu.Lock()
	st := sess.state
	sess.mu.Unlock()

	return exportRows(st), nil
}

func exportRows(st planner.State) []domain.ExportRow {
	est := planner.Estimate(st.Selection, domain.DaysPerDestination)
	rows := make([]domain.ExportRow, 0, len(est.Items))
	for _, item := range est.Items {
		rows = append(rows, domain.ExportRow{
			TripTitle:       st.Draft.Title,
			TripStartDate:   formatDate(st.Draft.StartDate),
			TripEndDate:     formatDate(st.Draft.EndDate),
			TripBudget:      st.Draft.Budget,
			Position:        item.Position,
			DestinationID:   item.Destination.ID.String(),
			DestinationName: item.Destination.Name,
			Country:         item.Destination.Country,
			Days:            item.Days,
			DailyCost:       item.Destination.AverageCostPerDay,
			Cost:            item.Cost,
		})
	}
	return rows
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}
