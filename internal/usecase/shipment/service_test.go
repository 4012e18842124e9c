package shipment

import (
	"context"
	"testing"
	"time"

	domainCustomer "freight-backoffice/internal/domain/customer"
	domainDriver "freight-backoffice/internal/domain/driver"
	domainShipment "freight-backoffice/internal/domain/shipment"
	"freight-backoffice/internal/infrastructure/database/memory"
	appErrors "freight-backoffice/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 4, 2, 15, 30, 0, 0, time.UTC)

type fixture struct {
	store    *memory.Store
	service  *Service
	customer *domainCustomer.Customer
	driver   *domainDriver.Driver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	store.SetClock(func() time.Time { return fixedNow })

	cust := &domainCustomer.Customer{Name: "Valley Farms", Code: "VF"}
	require.NoError(t, store.Customers().Create(ctx, cust))

	rate := 0.25
	drv := &domainDriver.Driver{FirstName: "Ana", LastName: "Reyes", EmployeeID: "E-1", TruckNumber: "T-9", CommissionRate: &rate}
	require.NoError(t, store.Drivers().Create(ctx, drv))

	svc := NewService(store.Shipments(), store.Drivers(), store.Customers())
	svc.SetClock(func() time.Time { return fixedNow })

	return &fixture{store: store, service: svc, customer: cust, driver: drv}
}

func (f *fixture) request(number string) *CreateShipmentRequest {
	return &CreateShipmentRequest{
		ShipmentNumber:      number,
		CustomerID:          f.customer.ID,
		Weight:              40000,
		Rate:                8,
		Origin:              LocationRequest{City: "Fresno", State: "CA"},
		Destination:         LocationRequest{City: "Reno", State: "NV"},
		ScheduledPickupDate: fixedNow,
	}
}

func TestCreateShipment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.service.Create(ctx, f.request("SH-1"))
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 160.0, resp.FreightCost)
	assert.Nil(t, resp.InvoiceID)
	assert.Equal(t, "Fresno", resp.Origin.City)

	req := f.request("SH-2")
	req.DriverID = &f.driver.ID
	resp, err = f.service.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "assigned", resp.Status)
}

func TestCreateShipmentRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.service.Create(ctx, f.request("SH-1"))
	require.NoError(t, err)

	inactiveRate := 0.2
	inactive := &domainDriver.Driver{FirstName: "Old", EmployeeID: "E-2", CommissionRate: &inactiveRate, Status: domainDriver.StatusInactive}
	require.NoError(t, f.store.Drivers().Create(ctx, inactive))

	unknown := uuid.New()
	mismatch := 99.0
	early := fixedNow.Add(-24 * time.Hour)

	tests := []struct {
		name   string
		mutate func(r *CreateShipmentRequest)
		kind   appErrors.Kind
		code   string
	}{
		{"duplicate number", func(r *CreateShipmentRequest) { r.ShipmentNumber = "SH-1" }, appErrors.KindConflict, "SHIPMENT_NUMBER_CONFLICT"},
		{"missing number", func(r *CreateShipmentRequest) { r.ShipmentNumber = "" }, appErrors.KindValidation, "VALIDATION_ERROR"},
		{"zero weight", func(r *CreateShipmentRequest) { r.Weight = 0 }, appErrors.KindValidation, "VALIDATION_ERROR"},
		{"unknown customer", func(r *CreateShipmentRequest) { r.CustomerID = unknown }, appErrors.KindNotFound, "CUSTOMER_NOT_FOUND"},
		{"unknown driver", func(r *CreateShipmentRequest) { r.DriverID = &unknown }, appErrors.KindNotFound, "DRIVER_NOT_FOUND"},
		{"inactive driver", func(r *CreateShipmentRequest) { r.DriverID = &inactive.ID }, appErrors.KindValidation, "DRIVER_INACTIVE"},
		{"freight mismatch", func(r *CreateShipmentRequest) { r.FreightCost = &mismatch }, appErrors.KindValidation, "FREIGHT_COST_MISMATCH"},
		{"delivery before pickup", func(r *CreateShipmentRequest) { r.DeliveryDate = &early }, appErrors.KindValidation, "INVALID_TIME"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.request("SH-NEW")
			tt.mutate(req)

			_, err := f.service.Create(ctx, req)
			require.Error(t, err)

			var appErr *appErrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.kind, appErr.Kind)
			assert.Equal(t, tt.code, appErr.Code)
		})
	}
}

func TestUpdateStatusToDelivered(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := f.request("SH-1")
	req.DriverID = &f.driver.ID
	created, err := f.service.Create(ctx, req)
	require.NoError(t, err)

	_, err = f.service.UpdateStatus(ctx, created.ID, &UpdateStatusRequest{Status: "delivered"})
	require.Error(t, err)

	resp, err := f.service.UpdateStatus(ctx, created.ID, &UpdateStatusRequest{Status: "in-transit"})
	require.NoError(t, err)
	require.NotNil(t, resp.ActualPickupDate)

	resp, err = f.service.UpdateStatus(ctx, created.ID, &UpdateStatusRequest{Status: "delivered"})
	require.NoError(t, err)
	assert.Equal(t, "delivered", resp.Status)
	require.NotNil(t, resp.ActualDeliveryDate)
	assert.Equal(t, fixedNow, *resp.ActualDeliveryDate)
	assert.Empty(t, resp.AllowedTransitions)
}

func TestAssignRequiresDriver(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, f.request("SH-1"))
	require.NoError(t, err)

	_, err = f.service.UpdateStatus(ctx, created.ID, &UpdateStatusRequest{Status: "assigned"})
	require.Error(t, err)

	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "DRIVER_REQUIRED", appErr.Code)
}

func TestUpdateRecomputesFreight(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, f.request("SH-1"))
	require.NoError(t, err)

	weight := 30000.0
	resp, err := f.service.Update(ctx, created.ID, &UpdateShipmentRequest{Weight: &weight})
	require.NoError(t, err)
	assert.Equal(t, 120.0, resp.FreightCost)

	notes := "dock 4"
	resp, err = f.service.Update(ctx, created.ID, &UpdateShipmentRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, 120.0, resp.FreightCost)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "dock 4", *resp.Notes)
}

func TestInvoicedShipmentIsFrozen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, f.request("SH-1"))
	require.NoError(t, err)

	linked, err := f.store.Shipments().LinkInvoice(ctx, []uuid.UUID{created.ID}, uuid.New())
	require.NoError(t, err)
	require.Equal(t, int64(1), linked)

	rate := 9.0
	_, err = f.service.Update(ctx, created.ID, &UpdateShipmentRequest{Rate: &rate})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainShipment.ErrShipmentInvoiced)

	err = f.service.Delete(ctx, created.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainShipment.ErrShipmentInvoiced)

	notes := "still editable"
	_, err = f.service.Update(ctx, created.ID, &UpdateShipmentRequest{Notes: &notes})
	assert.NoError(t, err)
}

func TestDeleteShipment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, f.request("SH-1"))
	require.NoError(t, err)
	require.NoError(t, f.service.Delete(ctx, created.ID))

	_, err = f.service.Get(ctx, created.ID)
	assert.True(t, appErrors.IsKind(err, appErrors.KindNotFound))
}

func TestListShipments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i, day := range []int{1, 5, 20} {
		req := f.request("SH-" + string(rune('A'+i)))
		delivered := time.Date(2025, 3, day, 18, 0, 0, 0, time.UTC)
		req.ScheduledPickupDate = delivered.Add(-48 * time.Hour)
		req.DeliveryDate = &delivered
		_, err := f.service.Create(ctx, req)
		require.NoError(t, err)
	}

	resp, err := f.service.List(ctx, &ShipmentFilterRequest{StartDate: "2025-03-01", EndDate: "2025-03-05"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.PageSize)
	assert.Equal(t, 1, resp.TotalPages)

	_, err = f.service.List(ctx, &ShipmentFilterRequest{StartDate: "03/01/2025"})
	assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))
}
