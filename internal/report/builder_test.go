package report

import (
	"encoding/json"
	"testing"
	"time"

	"freight-backoffice/internal/billing"
	"freight-backoffice/internal/domain/customer"
	"freight-backoffice/internal/domain/driver"
	"freight-backoffice/internal/domain/invoice"
	"freight-backoffice/internal/domain/shipment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generated = time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)

func day(d int) *time.Time {
	t := time.Date(2025, 3, d, 12, 0, 0, 0, time.UTC)
	return &t
}

func commissionSummary() *billing.CommissionSummary {
	rate := 0.25
	drv := &driver.Driver{FirstName: "Ana", LastName: "Reyes", TruckNumber: "T-9", CommissionRate: &rate}
	ship := func(number string, d int, weight, price float64) *shipment.Shipment {
		return &shipment.Shipment{
			ShipmentNumber: number,
			Status:         shipment.StatusDelivered,
			Weight:         weight,
			Rate:           price,
			DeliveryDate:   day(d),
			Origin:         shipment.Location{City: "Fresno"},
			Destination:    shipment.Location{City: "Reno"},
		}
	}
	return billing.CalculateCommissions([]billing.CommissionInput{
		{Shipment: ship("SH-3", 9, 45000, 10), Driver: drv, CustomerName: "Acme"},
		{Shipment: ship("SH-1", 2, 25000, 8), Driver: drv, CustomerName: "Zephyr"},
		{Shipment: ship("SH-2", 4, 40000, 9), Driver: drv, CustomerName: "Acme"},
	})
}

func TestCommissionReportJSON(t *testing.T) {
	period := billing.NormalizeRange(day(1), day(31))
	r := BuildCommissionReport(commissionSummary(), "Ana Reyes", period, generated)

	raw, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded struct {
		ReportTitle string `json:"reportTitle"`
		EntityName  string `json:"entityName"`
		Period      struct {
			Start string `json:"start"`
			End   string `json:"end"`
		} `json:"period"`
		GroupedData []struct {
			Name                        string                   `json:"name"`
			Items                       []map[string]interface{} `json:"items"`
			GroupTotalAmount            float64                  `json:"groupTotalAmount"`
			GroupTotalCommissionOrTotal float64                  `json:"groupTotalCommissionOrTotal"`
		} `json:"groupedData"`
		GrandTotals []TotalLine `json:"grandTotals"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "Driver Commission Report", decoded.ReportTitle)
	assert.Equal(t, "Ana Reyes", decoded.EntityName)
	assert.Equal(t, "2025-03-31T23:59:59.999Z", decoded.Period.End)

	require.Len(t, decoded.GroupedData, 2)
	// Zephyr delivered first so it leads
	assert.Equal(t, "Zephyr", decoded.GroupedData[0].Name)
	assert.Equal(t, "Acme", decoded.GroupedData[1].Name)
	require.Len(t, decoded.GroupedData[1].Items, 2)
	assert.Equal(t, "SH-2", decoded.GroupedData[1].Items[0]["shipmentNumber"])
	assert.Equal(t, 180.0, decoded.GroupedData[1].Items[0]["freightAmount"])

	assert.Equal(t, 160.0, decoded.GroupedData[0].GroupTotalAmount)
	assert.Equal(t, 405.0, decoded.GroupedData[1].GroupTotalAmount)
	assert.Equal(t, 101.25, decoded.GroupedData[1].GroupTotalCommissionOrTotal)

	require.Len(t, decoded.GrandTotals, 2)
	assert.Equal(t, "Total Freight", decoded.GrandTotals[0].Label)
	assert.Equal(t, 565.0, decoded.GrandTotals[0].Amount)
	assert.Equal(t, 141.25, decoded.GrandTotals[1].Amount)
}

func TestInvoiceReportKeepsShipmentOrder(t *testing.T) {
	s1 := &shipment.Shipment{ID: uuid.New(), ShipmentNumber: "SH-1", Weight: 40000, Rate: 8, FreightCost: 160, DeliveryDate: day(2)}
	s2 := &shipment.Shipment{ID: uuid.New(), ShipmentNumber: "SH-2", Weight: 40000, Rate: 12.8, FreightCost: 256, DeliveryDate: day(1)}
	due := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	inv := &invoice.Invoice{
		InvoiceNumber:       "INV-2025-0007",
		ShipmentIDs:         []uuid.UUID{s2.ID, s1.ID},
		InvoiceDate:         time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		DueDate:             &due,
		SubTotal:            416,
		FuelSurchargeRate:   0.05,
		FuelSurchargeAmount: 20.8,
		DepositAmount:       100,
		TotalAmount:         336.8,
	}

	r := BuildInvoiceReport(inv, &customer.Customer{Name: "Acme Produce"}, []*shipment.Shipment{s1, s2}, generated)

	require.Len(t, r.GroupedData, 1)
	items := r.GroupedData[0].Items
	require.Len(t, items, 2)
	assert.Equal(t, "SH-2", items[0].Cells()[1])
	assert.Equal(t, "SH-1", items[1].Cells()[1])
	assert.Equal(t, 416.0, r.GroupedData[0].GroupTotalAmount)
	assert.Equal(t, 336.8, r.GroupedData[0].GroupTotalCommissionOrTotal)

	labels := make([]string, len(r.GrandTotals))
	for i, tl := range r.GrandTotals {
		labels[i] = tl.Label
	}
	assert.Equal(t, []string{"Subtotal", "Fuel Surcharge (5.00%)", "Deposit", "Total"}, labels)
	assert.Equal(t, "Invoice_INV20250007_AcmeProduce_20250401.pdf", r.Filename("pdf"))
}
