package maintenance

import (
	"context"
	"errors"
	"testing"
	"time"

	domainInvoice "freight-backoffice/internal/domain/invoice"
	domainShipment "freight-backoffice/internal/domain/shipment"
	"freight-backoffice/internal/infrastructure/database/memory"
	appErrors "freight-backoffice/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day, hour int) *time.Time {
	t := time.Date(2025, 3, day, hour, 0, 0, 0, time.UTC)
	return &t
}

func seed(t *testing.T, store *memory.Store) (*domainShipment.Shipment, *domainShipment.Shipment, *domainInvoice.Invoice) {
	t.Helper()
	ctx := context.Background()

	dated := &domainShipment.Shipment{
		ShipmentNumber:      "SH-1",
		CustomerID:          uuid.New(),
		ScheduledPickupDate: *at(1, 8),
		ActualPickupDate:    at(1, 9),
		DeliveryDate:        at(3, 0),
		ActualDeliveryDate:  nil,
	}
	undated := &domainShipment.Shipment{ShipmentNumber: "SH-2", CustomerID: uuid.New(), ScheduledPickupDate: *at(2, 8)}
	inv := &domainInvoice.Invoice{InvoiceNumber: "INV-2025-0001", DueDate: at(31, 0)}

	require.NoError(t, store.Shipments().Create(ctx, dated))
	require.NoError(t, store.Shipments().Create(ctx, undated))
	require.NoError(t, store.Invoices().Create(ctx, inv))
	return dated, undated, inv
}

func TestCorrectThenUndoRestoresDates(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	dated, undated, inv := seed(t, store)

	shifter := NewDateShifter(store.Shipments(), store.Invoices())

	result, err := shifter.Correct(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Attempted)
	assert.Equal(t, 2, result.Succeeded)

	got, err := store.Shipments().GetByID(ctx, dated.ID)
	require.NoError(t, err)
	assert.Equal(t, *at(4, 0), *got.DeliveryDate)
	assert.Equal(t, *at(2, 9), *got.ActualPickupDate)
	assert.Nil(t, got.ActualDeliveryDate)
	// scheduled pickup is not a shifted field
	assert.Equal(t, *at(1, 8), got.ScheduledPickupDate)

	plain, err := store.Shipments().GetByID(ctx, undated.ID)
	require.NoError(t, err)
	assert.Nil(t, plain.DeliveryDate)

	_, err = shifter.Undo(ctx)
	require.NoError(t, err)

	got, err = store.Shipments().GetByID(ctx, dated.ID)
	require.NoError(t, err)
	assert.Equal(t, *dated.DeliveryDate, *got.DeliveryDate)
	assert.Equal(t, *dated.ActualPickupDate, *got.ActualPickupDate)

	gotInv, err := store.Invoices().GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, *inv.DueDate, *gotInv.DueDate)
}

// flakyShipments fails the update of one record.
type flakyShipments struct {
	ShipmentDates
	failID uuid.UUID
}

func (f flakyShipments) UpdateDates(ctx context.Context, id uuid.UUID, dates domainShipment.DateFields) error {
	if id == f.failID {
		return errors.New("write conflict")
	}
	return f.ShipmentDates.UpdateDates(ctx, id, dates)
}

func TestShiftReportsPartialFailure(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	dated, _, inv := seed(t, store)

	second := &domainShipment.Shipment{ShipmentNumber: "SH-3", CustomerID: uuid.New(), DeliveryDate: at(10, 0)}
	require.NoError(t, store.Shipments().Create(ctx, second))

	shifter := NewDateShifter(flakyShipments{ShipmentDates: store.Shipments(), failID: dated.ID}, store.Invoices())

	result, err := shifter.Correct(ctx)
	require.Error(t, err)

	var partial *appErrors.PartialFailure
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, 3, partial.Attempted)
	assert.Equal(t, 2, partial.Succeeded)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "shipments", result.Failed[0].Collection)
	assert.Equal(t, dated.ID.String(), result.Failed[0].ID)

	// the batch kept going past the failure
	got, err := store.Shipments().GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, *at(11, 0), *got.DeliveryDate)

	gotInv, err := store.Invoices().GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), *gotInv.DueDate)

	untouched, err := store.Shipments().GetByID(ctx, dated.ID)
	require.NoError(t, err)
	assert.Equal(t, *at(3, 0), *untouched.DeliveryDate)
}

func TestShiftStopsOnCancelledContext(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewDateShifter(store.Shipments(), store.Invoices()).Correct(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, result.Succeeded)
}
