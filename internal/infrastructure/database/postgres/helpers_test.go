package postgres

import (
	"time"

	"freight-backoffice/internal/domain/invoice"

	"github.com/google/uuid"
)

func sampleInvoice() *invoice.Invoice {
	return &invoice.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: "INV-2025-0001",
		CustomerID:    uuid.New(),
		ShipmentIDs:   []uuid.UUID{uuid.New(), uuid.New(), uuid.New()},
		InvoiceDate:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		SubTotal:      565,
		Status:        invoice.StatusDraft,
	}
}
