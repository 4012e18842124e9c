package invoice

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for invoice repository operations
type Repository interface {
	// Create stores the invoice and its ordered shipment list together.
	Create(ctx context.Context, invoice *Invoice) error
	GetByID(ctx context.Context, invoiceID uuid.UUID) (*Invoice, error)
	GetByNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)
	// GetLatest returns the most recently created invoice, or ErrInvoiceNotFound.
	GetLatest(ctx context.Context) (*Invoice, error)
	Update(ctx context.Context, invoice *Invoice) error
	Delete(ctx context.Context, invoiceID uuid.UUID) error
	List(ctx context.Context, filter *Filter) ([]*Invoice, int64, error)

	ListDated(ctx context.Context) ([]*Invoice, error)
	UpdateDueDate(ctx context.Context, invoiceID uuid.UUID, dueDate *time.Time) error
}

// SequenceRepository hands out monotonically increasing values per name.
type SequenceRepository interface {
	// NextValue atomically increments the named counter. A counter that does not
	// exist yet starts at seed+1.
	NextValue(ctx context.Context, name string, seed int64) (int64, error)
}

type Filter struct {
	CustomerID *uuid.UUID
	Status     *InvoiceStatus

	InvoiceFrom *time.Time
	InvoiceTo   *time.Time

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
