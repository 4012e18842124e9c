package models

import (
	"time"

	"github.com/google/uuid"
)

// ShipmentModel represents the database model for Shipments
type ShipmentModel struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ShipmentNumber      string     `gorm:"type:varchar(50);not null;uniqueIndex:shipments_shipment_number_key"`
	Status              string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	Weight              float64    `gorm:"type:decimal(12,2);not null"`
	Rate                float64    `gorm:"type:decimal(12,4);not null"`
	FreightCost         float64    `gorm:"type:decimal(12,2);not null"`
	OriginCity          string     `gorm:"type:varchar(100);not null"`
	OriginState         string     `gorm:"type:varchar(50)"`
	OriginAddress       string     `gorm:"type:varchar(255)"`
	DestinationCity     string     `gorm:"type:varchar(100);not null"`
	DestinationState    string     `gorm:"type:varchar(50)"`
	DestinationAddress  string     `gorm:"type:varchar(255)"`
	ScheduledPickupDate time.Time  `gorm:"type:timestamptz;not null"`
	ActualPickupDate    *time.Time `gorm:"type:timestamptz"`
	DeliveryDate        *time.Time `gorm:"type:timestamptz;index"`
	ActualDeliveryDate  *time.Time `gorm:"type:timestamptz"`
	DriverID            *uuid.UUID `gorm:"type:uuid;index"`
	CustomerID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	InvoiceID           *uuid.UUID `gorm:"type:uuid;index"`
	Notes               *string    `gorm:"type:text"`
	CreatedAt           time.Time  `gorm:"not null;index"`
	UpdatedAt           time.Time  `gorm:"not null"`
}

func (ShipmentModel) TableName() string {
	return "shipments"
}
