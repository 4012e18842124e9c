package models

import (
	"time"

	"github.com/google/uuid"
)

type InvoiceModel struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	InvoiceNumber       string     `gorm:"type:varchar(50);not null;uniqueIndex:invoices_invoice_number_key"`
	CustomerID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	InvoiceDate         time.Time  `gorm:"type:timestamptz;not null"`
	DueDate             *time.Time `gorm:"type:timestamptz"`
	SubTotal            float64    `gorm:"type:decimal(14,2);not null"`
	FuelSurchargeRate   float64    `gorm:"type:decimal(5,4);not null"`
	FuelSurchargeAmount float64    `gorm:"type:decimal(14,2);not null"`
	DepositAmount       float64    `gorm:"type:decimal(14,2);not null;default:0"`
	TotalAmount         float64    `gorm:"type:decimal(14,2);not null"`
	Status              string     `gorm:"type:varchar(20);not null;default:'draft';index"`
	Notes               *string    `gorm:"type:text"`
	CreatedAt           time.Time  `gorm:"not null;index"`
	UpdatedAt           time.Time  `gorm:"not null"`

	Shipments []InvoiceShipmentModel `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

func (InvoiceModel) TableName() string {
	return "invoices"
}

// InvoiceShipmentModel keeps the ordered shipment list of an invoice.
type InvoiceShipmentModel struct {
	InvoiceID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position   int       `gorm:"not null"`
}

func (InvoiceShipmentModel) TableName() string {
	return "invoice_shipments"
}

// SequenceModel is a named counter.
type SequenceModel struct {
	Name  string `gorm:"type:varchar(100);primaryKey"`
	Value int64  `gorm:"not null"`
}

func (SequenceModel) TableName() string {
	return "sequences"
}
