package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travelvista/internal/domain"
)

func TestPlannerService_Export_RowsInSelectionOrder(t *testing.T) {
	bali, kyoto := destination("Bali", 80), destination("Kyoto", 150)
	svc, id := newPlanner(t, bali, kyoto)
	ctx := context.Background()

	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.EditDraft(ctx, id, domain.TripDraft{Title: "Asia", StartDate: &start, Budget: "1000"})
	require.NoError(t, err)
	_, _ = svc.Select(ctx, id, kyoto.ID)
	_, _ = svc.Select(ctx, id, bali.ID)

	rows, err := svc.Export(ctx, id)

	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, domain.ExportRow{
		TripTitle:       "Asia",
		TripStartDate:   "2025-09-01",
		TripEndDate:     "",
		TripBudget:      "1000",
		Position:        1,
		DestinationID:   kyoto.ID.String(),
		DestinationName: "Kyoto",
		Country:         "Kyotoland",
		Days:            3,
		DailyCost:       150,
		Cost:            450,
	}, rows[0])
	assert.Equal(t, 2, rows[1].Position)
	assert.Equal(t, "Bali", rows[1].DestinationName)
	assert.InDelta(t, 240, rows[1].Cost, 1e-9)
}

func TestPlannerService_Export_EmptySelection(t *testing.T) {
	svc, id := newPlanner(t, destination("Bali", 80))

	rows, err := svc.Export(context.Background(), id)

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestPlannerService_Export_UnknownSession(t *testing.T) {
	svc, _ := newPlanner(t)

	_, err := svc.Export(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
