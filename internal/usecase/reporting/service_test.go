package reporting

import (
	"bytes"
	"context"
	"testing"
	"time"

	domainCustomer "freight-backoffice/internal/domain/customer"
	domainDriver "freight-backoffice/internal/domain/driver"
	domainInvoice "freight-backoffice/internal/domain/invoice"
	domainShipment "freight-backoffice/internal/domain/shipment"
	"freight-backoffice/internal/infrastructure/database/memory"
	"freight-backoffice/internal/report/render"
	appErrors "freight-backoffice/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store   *memory.Store
	service *Service
	acme    *domainCustomer.Customer
	valley  *domainCustomer.Customer
	driver  *domainDriver.Driver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	store.SetClock(func() time.Time { return fixedNow })

	acme := &domainCustomer.Customer{Name: "Acme Produce", Code: "ACME"}
	valley := &domainCustomer.Customer{Name: "Valley Farms", Code: "VF"}
	require.NoError(t, store.Customers().Create(ctx, acme))
	require.NoError(t, store.Customers().Create(ctx, valley))

	rate := 0.25
	drv := &domainDriver.Driver{FirstName: "Ana", LastName: "Reyes", EmployeeID: "E-1", TruckNumber: "T-9", CommissionRate: &rate}
	require.NoError(t, store.Drivers().Create(ctx, drv))

	svc := NewService(store.Shipments(), store.Drivers(), store.Customers(), store.Invoices(), "Freight Co")
	svc.SetClock(func() time.Time { return fixedNow })

	return &fixture{store: store, service: svc, acme: acme, valley: valley, driver: drv}
}

func (f *fixture) deliver(t *testing.T, number string, cust *domainCustomer.Customer, driverID *uuid.UUID, day int, weight, rate float64) *domainShipment.Shipment {
	t.Helper()
	delivered := time.Date(2025, 3, day, 14, 0, 0, 0, time.UTC)
	s := &domainShipment.Shipment{
		ShipmentNumber:      number,
		Status:              domainShipment.StatusDelivered,
		Weight:              weight,
		Rate:                rate,
		FreightCost:         weight * rate / 2000,
		CustomerID:          cust.ID,
		DriverID:            driverID,
		ScheduledPickupDate: delivered.Add(-24 * time.Hour),
		DeliveryDate:        &delivered,
		Origin:              domainShipment.Location{City: "Fresno"},
		Destination:         domainShipment.Location{City: "Reno"},
	}
	require.NoError(t, f.store.Shipments().Create(context.Background(), s))
	return s
}

func TestCommissionReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.deliver(t, "SH-1", f.valley, &f.driver.ID, 3, 25000, 8)
	f.deliver(t, "SH-2", f.acme, &f.driver.ID, 5, 40000, 9)
	f.deliver(t, "SH-3", f.acme, &f.driver.ID, 10, 45000, 10)
	f.deliver(t, "SH-4", f.acme, nil, 11, 40000, 8)
	f.deliver(t, "SH-5", f.acme, &f.driver.ID, 28, 40000, 8)

	r, err := f.service.CommissionReport(ctx, &CommissionReportRequest{
		DriverID:  f.driver.ID.String(),
		StartDate: "2025-03-01",
		EndDate:   "2025-03-15",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana Reyes", r.EntityName)
	assert.Equal(t, "Freight Co", r.Issuer)
	require.Len(t, r.GroupedData, 2)
	assert.Equal(t, "Valley Farms", r.GroupedData[0].Name)
	assert.Equal(t, "Acme Produce", r.GroupedData[1].Name)
	assert.Len(t, r.GroupedData[1].Items, 2)
	assert.Equal(t, 405.0, r.GroupedData[1].GroupTotalAmount)
	assert.Equal(t, 565.0, r.GrandTotals[0].Amount)
	assert.Equal(t, 141.25, r.GrandTotals[1].Amount)
}

func TestCommissionReportAllDriversExcludesUndriven(t *testing.T) {
	f := newFixture(t)
	f.deliver(t, "SH-1", f.acme, nil, 3, 40000, 8)

	r, err := f.service.CommissionReport(context.Background(), &CommissionReportRequest{})
	require.NoError(t, err)
	assert.Equal(t, "All Drivers", r.EntityName)
	assert.True(t, r.IsEmpty())
	assert.Equal(t, 0.0, r.GrandTotals[0].Amount)
}

func TestCommissionReportErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	unknown := uuid.New()

	_, err := f.service.CommissionReport(ctx, &CommissionReportRequest{DriverID: unknown.String()})
	assert.True(t, appErrors.IsKind(err, appErrors.KindNotFound))

	_, err = f.service.CommissionReport(ctx, &CommissionReportRequest{StartDate: "2025-03-10", EndDate: "2025-03-01"})
	assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))

	_, err = f.service.CommissionReport(ctx, &CommissionReportRequest{Format: "csv"})
	assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))
}

func TestInvoiceReportAndRender(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	s1 := f.deliver(t, "SH-1", f.acme, &f.driver.ID, 3, 40000, 8)
	s2 := f.deliver(t, "SH-2", f.acme, &f.driver.ID, 4, 40000, 12.8)

	inv := &domainInvoice.Invoice{
		InvoiceNumber:       "INV-2025-0001",
		CustomerID:          f.acme.ID,
		ShipmentIDs:         []uuid.UUID{s2.ID, s1.ID},
		InvoiceDate:         fixedNow,
		SubTotal:            416,
		FuelSurchargeRate:   0.05,
		FuelSurchargeAmount: 20.8,
		TotalAmount:         436.8,
	}
	require.NoError(t, f.store.Invoices().Create(ctx, inv))

	r, err := f.service.InvoiceReport(ctx, inv.ID)
	require.NoError(t, err)
	require.Len(t, r.GroupedData[0].Items, 2)
	assert.Equal(t, "SH-2", r.GroupedData[0].Items[0].Cells()[1])

	doc, err := f.service.Render(r, render.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "Invoice_INV20250001_AcmeProduce_20250401.pdf", doc.Filename)
	assert.True(t, bytes.HasPrefix(doc.Body, []byte("%PDF-")))

	_, err = f.service.InvoiceReport(ctx, uuid.New())
	assert.True(t, appErrors.IsKind(err, appErrors.KindNotFound))
}
