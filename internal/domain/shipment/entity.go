package shipment

import (
	"time"

	"github.com/google/uuid"
)

// ShipmentStatus represents the status of a shipment
type ShipmentStatus string

const (
	StatusPending   ShipmentStatus = "pending"
	StatusAssigned  ShipmentStatus = "assigned"
	StatusInTransit ShipmentStatus = "in-transit"
	StatusDelayed   ShipmentStatus = "delayed"
	StatusDelivered ShipmentStatus = "delivered"
	StatusCancelled ShipmentStatus = "cancelled"
	StatusOnHold    ShipmentStatus = "on-hold"
)

// Statuses lists every known shipment status.
var Statuses = []ShipmentStatus{
	StatusPending, StatusAssigned, StatusInTransit, StatusDelayed,
	StatusDelivered, StatusCancelled, StatusOnHold,
}

func (s ShipmentStatus) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Location is a pickup or drop-off point
type Location struct {
	City    string
	State   string
	Address string
}

// Shipment represents a single load moved for a customer
type Shipment struct {
	ID             uuid.UUID
	ShipmentNumber string
	Status         ShipmentStatus

	// Weight in pounds, Rate in dollars per ton
	Weight      float64
	Rate        float64
	FreightCost float64

	Origin      Location
	Destination Location

	ScheduledPickupDate time.Time
	ActualPickupDate    *time.Time
	DeliveryDate        *time.Time
	ActualDeliveryDate  *time.Time

	DriverID   *uuid.UUID
	CustomerID uuid.UUID
	InvoiceID  *uuid.UUID

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Route renders the origin/destination summary used on reports.
func (s *Shipment) Route() string {
	return s.Origin.City + " / " + s.Destination.City
}

// IsInvoiceable reports whether the shipment can be placed on a new invoice.
func (s *Shipment) IsInvoiceable() bool {
	return s.Status == StatusDelivered && s.InvoiceID == nil
}

// DateFields holds the persisted dates touched by maintenance shifts.
type DateFields struct {
	DeliveryDate       *time.Time
	ActualPickupDate   *time.Time
	ActualDeliveryDate *time.Time
}

func (s *Shipment) DateFields() DateFields {
	return DateFields{
		DeliveryDate:       s.DeliveryDate,
		ActualPickupDate:   s.ActualPickupDate,
		ActualDeliveryDate: s.ActualDeliveryDate,
	}
}

// HasDates reports whether any shiftable date is set.
func (d DateFields) HasDates() bool {
	return d.DeliveryDate != nil || d.ActualPickupDate != nil || d.ActualDeliveryDate != nil
}
