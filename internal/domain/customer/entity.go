package customer

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a shipper billed through invoices
type Customer struct {
	ID                       uuid.UUID
	Name                     string
	Code                     string
	Email                    *string
	Phone                    *string
	Address                  *string
	DefaultFuelSurchargeRate float64
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// Stats are derived from invoices on demand and never stored.
type Stats struct {
	CustomerID         uuid.UUID `json:"customerId"`
	TotalInvoices      int       `json:"totalInvoices"`
	TotalRevenue       float64   `json:"totalRevenue"`
	OutstandingBalance float64   `json:"outstandingBalance"`
}
