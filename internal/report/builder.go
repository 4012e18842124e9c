package report

import (
	"fmt"
	"time"

	"freight-backoffice/internal/billing"
	"freight-backoffice/internal/domain/customer"
	"freight-backoffice/internal/domain/invoice"
	"freight-backoffice/internal/domain/shipment"
	"freight-backoffice/pkg/utils"

	"github.com/google/uuid"
)

const (
	CommissionFilePrefix = "CommissionReport"
	InvoiceFilePrefix    = "Invoice"
)

var commissionColumns = []Column{
	{Title: "Date", Width: 9, Align: AlignLeft},
	{Title: "Shipment #", Width: 10, Align: AlignLeft},
	{Title: "Origin / Destination", Width: 22, Align: AlignLeft},
	{Title: "Driver", Width: 13, Align: AlignLeft},
	{Title: "Truck", Width: 7, Align: AlignLeft},
	{Title: "Price", Width: 8, Align: AlignRight},
	{Title: "Weight", Width: 8, Align: AlignRight},
	{Title: "Freight", Width: 9, Align: AlignRight},
	{Title: "Rate", Width: 7, Align: AlignRight},
	{Title: "Commission", Width: 9, Align: AlignRight},
}

var invoiceColumns = []Column{
	{Title: "Date", Width: 10, Align: AlignLeft},
	{Title: "Shipment #", Width: 12, Align: AlignLeft},
	{Title: "Origin / Destination", Width: 34, Align: AlignLeft},
	{Title: "Weight", Width: 10, Align: AlignRight},
	{Title: "Rate", Width: 10, Align: AlignRight},
	{Title: "Freight Cost", Width: 12, Align: AlignRight},
}

// CommissionRow prints a commission line.
type CommissionRow struct {
	billing.CommissionLine
}

func (r CommissionRow) Cells() []string {
	return []string{
		FormatDate(r.Date),
		r.ShipmentNumber,
		r.OriginDestination,
		r.DriverName,
		r.TruckNumber,
		FormatPrice(r.Price),
		FormatWeight(r.Weight),
		FormatCurrency(r.FreightAmount),
		FormatPercent(r.CommissionRate),
		FormatCurrency(r.CommissionAmount),
	}
}

func (r CommissionRow) Values() []interface{} {
	return []interface{}{
		FormatDate(r.Date),
		r.ShipmentNumber,
		r.OriginDestination,
		r.DriverName,
		r.TruckNumber,
		r.Price,
		r.Weight,
		r.FreightAmount,
		r.CommissionRate,
		r.CommissionAmount,
	}
}

// InvoiceRow is one shipment on an invoice.
type InvoiceRow struct {
	Date           *time.Time `json:"date"`
	ShipmentNumber string     `json:"shipmentNumber"`
	Route          string     `json:"originDestination"`
	Weight         float64    `json:"weight"`
	Rate           float64    `json:"rate"`
	FreightCost    float64    `json:"freightCost"`
}

func (r InvoiceRow) Cells() []string {
	return []string{
		FormatDate(r.Date),
		r.ShipmentNumber,
		r.Route,
		FormatWeight(r.Weight),
		FormatPrice(r.Rate),
		FormatCurrency(r.FreightCost),
	}
}

func (r InvoiceRow) Values() []interface{} {
	return []interface{}{
		FormatDate(r.Date),
		r.ShipmentNumber,
		r.Route,
		r.Weight,
		r.Rate,
		r.FreightCost,
	}
}

// BuildCommissionReport wraps a calculated summary. Amounts are copied, never
// recomputed.
func BuildCommissionReport(summary *billing.CommissionSummary, entityName string, period billing.DateRange, generatedAt time.Time) *Report {
	r := &Report{
		Kind:            KindCommission,
		ReportTitle:     "Driver Commission Report",
		EntityName:      entityName,
		Period:          period,
		Columns:         commissionColumns,
		GroupedData:     []Group{},
		GeneratedAt:     generatedAt,
		AmountColumn:    7,
		SecondaryColumn: 9,
		FilePrefix:      CommissionFilePrefix,
	}

	var totalFreight, totalCommission float64
	if summary != nil {
		for _, g := range summary.Groups {
			items := make([]Row, len(g.Items))
			for i, line := range g.Items {
				items[i] = CommissionRow{CommissionLine: line}
			}
			r.GroupedData = append(r.GroupedData, Group{
				Name:                        g.CustomerName,
				Items:                       items,
				GroupTotalAmount:            g.TotalFreightAmount,
				GroupTotalCommissionOrTotal: g.TotalCommissionAmount,
			})
		}
		totalFreight = summary.TotalFreightAmount
		totalCommission = summary.TotalCommissionAmount
	}

	r.GrandTotals = []TotalLine{
		{Label: "Total Freight", Amount: totalFreight, Column: 7},
		{Label: "Total Commission", Amount: totalCommission, Column: 9},
	}
	return r
}

// BuildInvoiceReport lists the invoice's shipments in the order they were added.
// Shipments that no longer resolve are skipped.
func BuildInvoiceReport(inv *invoice.Invoice, cust *customer.Customer, shipments []*shipment.Shipment, generatedAt time.Time) *Report {
	byID := make(map[uuid.UUID]*shipment.Shipment, len(shipments))
	for _, s := range shipments {
		byID[s.ID] = s
	}

	items := make([]Row, 0, len(inv.ShipmentIDs))
	for _, id := range inv.ShipmentIDs {
		s, ok := byID[id]
		if !ok {
			continue
		}
		items = append(items, InvoiceRow{
			Date:           s.DeliveryDate,
			ShipmentNumber: s.ShipmentNumber,
			Route:          s.Route(),
			Weight:         s.Weight,
			Rate:           s.Rate,
			FreightCost:    s.FreightCost,
		})
	}

	customerName := "Unknown Customer"
	if cust != nil {
		customerName = cust.Name
	}

	invoiceDate := inv.InvoiceDate
	last := len(invoiceColumns) - 1

	return &Report{
		Kind:        KindInvoice,
		ReportTitle: fmt.Sprintf("Invoice %s", inv.InvoiceNumber),
		EntityName:  customerName,
		Period:      billing.DateRange{Start: &invoiceDate, End: inv.DueDate},
		Columns:     invoiceColumns,
		GroupedData: []Group{{
			Name:                        customerName,
			Items:                       items,
			GroupTotalAmount:            inv.SubTotal,
			GroupTotalCommissionOrTotal: inv.TotalAmount,
		}},
		GrandTotals: []TotalLine{
			{Label: "Subtotal", Amount: inv.SubTotal, Column: last},
			{Label: fmt.Sprintf("Fuel Surcharge (%s)", FormatPercent(inv.FuelSurchargeRate)), Amount: inv.FuelSurchargeAmount, Column: last},
			{Label: "Deposit", Amount: inv.DepositAmount, Column: last},
			{Label: "Total", Amount: inv.TotalAmount, Column: last},
		},
		GeneratedAt:     generatedAt,
		AmountColumn:    last,
		SecondaryColumn: -1,
		FilePrefix:      InvoiceFilePrefix + "_" + utils.SanitizeFilenamePart(inv.InvoiceNumber),
	}
}
