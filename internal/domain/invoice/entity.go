package invoice

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceStatus is a label only; there is no payment ledger behind it.
type InvoiceStatus string

const (
	StatusDraft         InvoiceStatus = "draft"
	StatusSent          InvoiceStatus = "sent"
	StatusPaid          InvoiceStatus = "paid"
	StatusPartiallyPaid InvoiceStatus = "partially-paid"
	StatusOverdue       InvoiceStatus = "overdue"
	StatusVoid          InvoiceStatus = "void"
)

var Statuses = []InvoiceStatus{
	StatusDraft, StatusSent, StatusPaid, StatusPartiallyPaid, StatusOverdue, StatusVoid,
}

func (s InvoiceStatus) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsOutstanding reports whether the invoice still counts toward the customer's balance.
func (s InvoiceStatus) IsOutstanding() bool {
	return s == StatusSent || s == StatusOverdue || s == StatusPartiallyPaid
}

// Invoice is a point-in-time snapshot of billed shipments. SubTotal is fixed at
// creation and does not follow later shipment edits.
type Invoice struct {
	ID            uuid.UUID
	InvoiceNumber string
	CustomerID    uuid.UUID
	// ShipmentIDs keeps insertion order
	ShipmentIDs []uuid.UUID

	InvoiceDate time.Time
	DueDate     *time.Time

	SubTotal            float64
	FuelSurchargeRate   float64
	FuelSurchargeAmount float64
	DepositAmount       float64
	TotalAmount         float64

	Status InvoiceStatus
	Notes  *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
