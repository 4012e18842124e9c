package invoice

import (
	"context"
	"errors"
	"testing"
	"time"

	"freight-backoffice/internal/billing"
	domainCustomer "freight-backoffice/internal/domain/customer"
	domainInvoice "freight-backoffice/internal/domain/invoice"
	domainShipment "freight-backoffice/internal/domain/shipment"
	"freight-backoffice/internal/events"
	"freight-backoffice/internal/infrastructure/database/memory"
	appErrors "freight-backoffice/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store     *memory.Store
	service   *Service
	customer  *domainCustomer.Customer
	publisher *recordingPublisher
}

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() {}

// failingLinks makes the second saga step fail.
type failingLinks struct {
	domainShipment.Repository
}

func (failingLinks) LinkInvoice(context.Context, []uuid.UUID, uuid.UUID) (int64, error) {
	return 0, errors.New("connection reset")
}

// failingUnlinks makes the second delete step fail.
type failingUnlinks struct {
	domainShipment.Repository
}

func (failingUnlinks) UnlinkInvoice(context.Context, uuid.UUID) (int64, error) {
	return 0, errors.New("connection reset")
}

func clock() time.Time { return fixedNow }

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	store.SetClock(clock)

	cust := &domainCustomer.Customer{Name: "Acme Produce", Code: "ACME", DefaultFuelSurchargeRate: 0.05}
	require.NoError(t, store.Customers().Create(context.Background(), cust))

	pub := &recordingPublisher{}
	numbers := NewSequenceNumberGenerator(store.Invoices(), store.Sequences(), clock)
	svc := NewService(store.Invoices(), store.Shipments(), store.Customers(), numbers, pub, 30)
	svc.SetClock(clock)

	return &fixture{store: store, service: svc, customer: cust, publisher: pub}
}

func (f *fixture) addShipment(t *testing.T, number string, status domainShipment.ShipmentStatus, freight float64) *domainShipment.Shipment {
	t.Helper()
	s := &domainShipment.Shipment{
		ShipmentNumber:      number,
		Status:              status,
		Weight:              40000,
		Rate:                freight / 20,
		FreightCost:         freight,
		CustomerID:          f.customer.ID,
		ScheduledPickupDate: fixedNow.AddDate(0, 0, -5),
	}
	require.NoError(t, f.store.Shipments().Create(context.Background(), s))
	return s
}

func (f *fixture) invoiceCount(t *testing.T) int64 {
	t.Helper()
	_, total, err := f.store.Invoices().List(context.Background(), nil)
	require.NoError(t, err)
	return total
}

func TestCreateFromShipments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s1 := f.addShipment(t, "SH-100", domainShipment.StatusDelivered, 160)
	s2 := f.addShipment(t, "SH-101", domainShipment.StatusDelivered, 256)

	resp, err := f.service.CreateFromShipments(ctx, &CreateInvoiceRequest{
		CustomerID:  f.customer.ID,
		ShipmentIDs: []uuid.UUID{s2.ID, s1.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-2025-0001", resp.InvoiceNumber)
	assert.Equal(t, 416.0, resp.SubTotal)
	assert.Equal(t, 0.05, resp.FuelSurchargeRate)
	assert.Equal(t, 20.8, resp.FuelSurchargeAmount)
	assert.Equal(t, 436.8, resp.TotalAmount)
	assert.Equal(t, []uuid.UUID{s2.ID, s1.ID}, resp.ShipmentIDs)
	assert.Equal(t, "draft", resp.Status)
	require.NotNil(t, resp.DueDate)
	assert.Equal(t, fixedNow.AddDate(0, 0, 30), *resp.DueDate)

	for _, id := range []uuid.UUID{s1.ID, s2.ID} {
		s, err := f.store.Shipments().GetByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, s.InvoiceID)
		assert.Equal(t, resp.ID, *s.InvoiceID)
	}

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.TypeInvoiceCreated, f.publisher.events[0].Type)
}

func TestCreateFromShipments_RejectsIneligibleWithoutWrites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	delivered := f.addShipment(t, "SH-200", domainShipment.StatusDelivered, 100)
	inTransit := f.addShipment(t, "SH-201", domainShipment.StatusInTransit, 100)

	_, err := f.service.CreateFromShipments(ctx, &CreateInvoiceRequest{
		CustomerID:  f.customer.ID,
		ShipmentIDs: []uuid.UUID{delivered.ID, inTransit.ID},
	})
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))

	var appErr *appErrors.AppError
	require.True(t, errors.As(err, &appErr))
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, inTransit.ID.String(), appErr.Details[0].ID)

	assert.Zero(t, f.invoiceCount(t))
	for _, id := range []uuid.UUID{delivered.ID, inTransit.ID} {
		s, err := f.store.Shipments().GetByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, s.InvoiceID)
	}
}

func TestCreateFromShipments_ValidationCases(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ok := f.addShipment(t, "SH-300", domainShipment.StatusDelivered, 100)

	first, err := f.service.CreateFromShipments(ctx, &CreateInvoiceRequest{
		CustomerID:  f.customer.ID,
		ShipmentIDs: []uuid.UUID{ok.ID},
	})
	require.NoError(t, err)

	other := &domainCustomer.Customer{Name: "Other", Code: "OTH"}
	require.NoError(t, f.store.Customers().Create(ctx, other))
	foreign := f.addShipment(t, "SH-301", domainShipment.StatusDelivered, 50)
	free := f.addShipment(t, "SH-302", domainShipment.StatusDelivered, 50)

	tests := []struct {
		name     string
		req      *CreateInvoiceRequest
		wantKind appErrors.Kind
	}{
		{
			name:     "empty shipment list",
			req:      &CreateInvoiceRequest{CustomerID: f.customer.ID},
			wantKind: appErrors.KindValidation,
		},
		{
			name:     "missing shipment",
			req:      &CreateInvoiceRequest{CustomerID: f.customer.ID, ShipmentIDs: []uuid.UUID{uuid.New()}},
			wantKind: appErrors.KindValidation,
		},
		{
			name:     "already invoiced",
			req:      &CreateInvoiceRequest{CustomerID: f.customer.ID, ShipmentIDs: []uuid.UUID{ok.ID}},
			wantKind: appErrors.KindValidation,
		},
		{
			name:     "duplicate id",
			req:      &CreateInvoiceRequest{CustomerID: f.customer.ID, ShipmentIDs: []uuid.UUID{free.ID, free.ID}},
			wantKind: appErrors.KindValidation,
		},
		{
			name:     "other customer's shipment",
			req:      &CreateInvoiceRequest{CustomerID: other.ID, ShipmentIDs: []uuid.UUID{foreign.ID}},
			wantKind: appErrors.KindValidation,
		},
		{
			name:     "surcharge out of range",
			req:      &CreateInvoiceRequest{CustomerID: f.customer.ID, ShipmentIDs: []uuid.UUID{free.ID}, FuelSurchargeRate: ptr(1.5)},
			wantKind: appErrors.KindValidation,
		},
		{
			name:     "unknown customer",
			req:      &CreateInvoiceRequest{CustomerID: uuid.New(), ShipmentIDs: []uuid.UUID{free.ID}},
			wantKind: appErrors.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.CreateFromShipments(ctx, tt.req)
			require.Error(t, err)
			assert.True(t, appErrors.IsKind(err, tt.wantKind), "got %v", err)
		})
	}

	_, err = f.service.Get(ctx, first.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), f.invoiceCount(t))
}

func TestDelete_UnlinksShipmentsForReinvoicing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s1 := f.addShipment(t, "SH-400", domainShipment.StatusDelivered, 120)
	s2 := f.addShipment(t, "SH-401", domainShipment.StatusDelivered, 80)
	ids := []uuid.UUID{s1.ID, s2.ID}

	created, err := f.service.CreateFromShipments(ctx, &CreateInvoiceRequest{CustomerID: f.customer.ID, ShipmentIDs: ids})
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(ctx, created.ID))

	_, err = f.service.Get(ctx, created.ID)
	assert.True(t, appErrors.IsKind(err, appErrors.KindNotFound))
	for _, id := range ids {
		s, err := f.store.Shipments().GetByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, s.InvoiceID)
		assert.True(t, s.IsInvoiceable())
	}

	again, err := f.service.CreateFromShipments(ctx, &CreateInvoiceRequest{CustomerID: f.customer.ID, ShipmentIDs: ids})
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, again.ID)
	assert.Equal(t, "INV-2025-0002", again.InvoiceNumber)

	err = f.service.Delete(ctx, uuid.New())
	assert.True(t, appErrors.IsKind(err, appErrors.KindNotFound))
}

func TestCreateFromShipments_LinkFailureLeavesObservableInvoice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.addShipment(t, "SH-500", domainShipment.StatusDelivered, 100)

	svc := NewService(f.store.Invoices(), failingLinks{f.store.Shipments()}, f.store.Customers(),
		NewScanNumberGenerator(f.store.Invoices(), clock), nil, 0)

	_, err := svc.CreateFromShipments(ctx, &CreateInvoiceRequest{CustomerID: f.customer.ID, ShipmentIDs: []uuid.UUID{s.ID}})
	require.Error(t, err)

	var sagaErr *appErrors.SagaError
	require.True(t, errors.As(err, &sagaErr))
	assert.Equal(t, "link_shipments", sagaErr.Step)
	assert.Equal(t, []string{"create_invoice"}, sagaErr.Completed)

	invID, parseErr := uuid.Parse(sagaErr.EntityID)
	require.NoError(t, parseErr)
	inv, err := f.store.Invoices().GetByID(ctx, invID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{s.ID}, inv.ShipmentIDs)

	stored, err := f.store.Shipments().GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.InvoiceID)
}

func TestDelete_UnlinkFailureLeavesShipmentsLinked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s1 := f.addShipment(t, "SH-550", domainShipment.StatusDelivered, 100)
	s2 := f.addShipment(t, "SH-551", domainShipment.StatusDelivered, 120)

	created, err := f.service.CreateFromShipments(ctx, &CreateInvoiceRequest{
		CustomerID:  f.customer.ID,
		ShipmentIDs: []uuid.UUID{s1.ID, s2.ID},
	})
	require.NoError(t, err)

	pub := &recordingPublisher{}
	svc := NewService(f.store.Invoices(), failingUnlinks{f.store.Shipments()}, f.store.Customers(),
		NewScanNumberGenerator(f.store.Invoices(), clock), pub, 0)

	err = svc.Delete(ctx, created.ID)
	require.Error(t, err)

	var sagaErr *appErrors.SagaError
	require.True(t, errors.As(err, &sagaErr))
	assert.Equal(t, "unlink_shipments", sagaErr.Step)
	assert.Equal(t, []string{"delete_invoice"}, sagaErr.Completed)
	assert.Equal(t, created.ID.String(), sagaErr.EntityID)

	_, err = f.store.Invoices().GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domainInvoice.ErrInvoiceNotFound)

	for _, id := range []uuid.UUID{s1.ID, s2.ID} {
		stored, err := f.store.Shipments().GetByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, stored.InvoiceID)
		assert.Equal(t, created.ID, *stored.InvoiceID)
	}
	assert.Empty(t, pub.events)
}

func TestCreateFromShipments_NumberCollisionIsConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	existing := &domainInvoice.Invoice{InvoiceNumber: "INV-2025-0001", CustomerID: f.customer.ID, InvoiceDate: fixedNow}
	require.NoError(t, f.store.Invoices().Create(ctx, existing))
	s := f.addShipment(t, "SH-600", domainShipment.StatusDelivered, 100)

	svc := NewService(f.store.Invoices(), f.store.Shipments(), f.store.Customers(), staticNumber("INV-2025-0001"), nil, 0)
	_, err := svc.CreateFromShipments(ctx, &CreateInvoiceRequest{CustomerID: f.customer.ID, ShipmentIDs: []uuid.UUID{s.ID}})
	require.Error(t, err)

	var appErr *appErrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.KindConflict, appErr.Kind)
	assert.Equal(t, "INVOICE_NUMBER_CONFLICT", appErr.Code)
	assert.True(t, appErr.Retryable)

	stored, err := f.store.Shipments().GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.InvoiceID)

	// a retry with a fresh number succeeds
	svc.numbers = NewScanNumberGenerator(f.store.Invoices(), clock)
	resp, err := svc.CreateFromShipments(ctx, &CreateInvoiceRequest{CustomerID: f.customer.ID, ShipmentIDs: []uuid.UUID{s.ID}})
	require.NoError(t, err)
	assert.Equal(t, "INV-2025-0002", resp.InvoiceNumber)
}

func TestUpdate_RecomputesTotals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.addShipment(t, "SH-700", domainShipment.StatusDelivered, 416)

	created, err := f.service.CreateFromShipments(ctx, &CreateInvoiceRequest{CustomerID: f.customer.ID, ShipmentIDs: []uuid.UUID{s.ID}})
	require.NoError(t, err)

	updated, err := f.service.Update(ctx, created.ID, &UpdateInvoiceRequest{
		FuelSurchargeRate: ptr(0.1),
		DepositAmount:     ptr(50),
		Status:            strPtr("sent"),
	})
	require.NoError(t, err)

	want := billing.ComputeTotals(416, 0.1, 50)
	assert.Equal(t, want.FuelSurchargeAmount, updated.FuelSurchargeAmount)
	assert.Equal(t, want.TotalAmount, updated.TotalAmount)
	assert.Equal(t, 407.6, updated.TotalAmount)
	assert.Equal(t, "sent", updated.Status)

	stored, err := f.store.Invoices().GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 407.6, stored.TotalAmount)

	_, err = f.service.Update(ctx, created.ID, &UpdateInvoiceRequest{Status: strPtr("settled")})
	assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))
}

func TestSnapshot_ShipmentEditsDoNotChangeSubTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.addShipment(t, "SH-800", domainShipment.StatusDelivered, 200)

	created, err := f.service.CreateFromShipments(ctx, &CreateInvoiceRequest{CustomerID: f.customer.ID, ShipmentIDs: []uuid.UUID{s.ID}})
	require.NoError(t, err)

	stored, err := f.store.Shipments().GetByID(ctx, s.ID)
	require.NoError(t, err)
	stored.FreightCost = 999
	require.NoError(t, f.store.Shipments().Update(ctx, stored))

	got, err := f.service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 200.0, got.SubTotal)
}

func TestList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, n := range []string{"SH-900", "SH-901", "SH-902"} {
		s := f.addShipment(t, n, domainShipment.StatusDelivered, 10)
		_, err := f.service.CreateFromShipments(ctx, &CreateInvoiceRequest{CustomerID: f.customer.ID, ShipmentIDs: []uuid.UUID{s.ID}})
		require.NoError(t, err)
	}

	list, err := f.service.List(ctx, &InvoiceFilterRequest{PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), list.Total)
	assert.Equal(t, 2, list.TotalPages)
	require.Len(t, list.Invoices, 2)
	assert.Equal(t, "INV-2025-0003", list.Invoices[0].InvoiceNumber)
}

type staticNumber string

func (n staticNumber) Next(context.Context) (string, error) { return string(n), nil }

func ptr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }
