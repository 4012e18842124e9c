package shipment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for shipment repository operations
type Repository interface {
	Create(ctx context.Context, shipment *Shipment) error
	GetByID(ctx context.Context, shipmentID uuid.UUID) (*Shipment, error)
	GetByIDs(ctx context.Context, shipmentIDs []uuid.UUID) ([]*Shipment, error)
	Update(ctx context.Context, shipment *Shipment) error
	Delete(ctx context.Context, shipmentID uuid.UUID) error
	List(ctx context.Context, filter *Filter) ([]*Shipment, int64, error)

	// LinkInvoice sets invoice_id on the given shipments that are not yet invoiced
	// and returns the number of rows changed.
	LinkInvoice(ctx context.Context, shipmentIDs []uuid.UUID, invoiceID uuid.UUID) (int64, error)
	// UnlinkInvoice clears invoice_id on every shipment referencing invoiceID.
	UnlinkInvoice(ctx context.Context, invoiceID uuid.UUID) (int64, error)

	ListDated(ctx context.Context) ([]*Shipment, error)
	UpdateDates(ctx context.Context, shipmentID uuid.UUID, dates DateFields) error
}

// Filter represents filtering options for listing shipments
type Filter struct {
	Status     *ShipmentStatus
	DriverID   *uuid.UUID
	CustomerID *uuid.UUID
	InvoiceID  *uuid.UUID
	Invoiced   *bool

	// Inclusive range on DeliveryDate
	DeliveryFrom *time.Time
	DeliveryTo   *time.Time

	Search string

	// PageSize <= 0 returns every match
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
