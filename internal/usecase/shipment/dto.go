package shipment

import (
	"time"

	domainShipment "freight-backoffice/internal/domain/shipment"

	"github.com/google/uuid"
)

type LocationRequest struct {
	City    string `json:"city" validate:"required,max=100"`
	State   string `json:"state" validate:"omitempty,max=50"`
	Address string `json:"address" validate:"omitempty,max=255"`
}

// Request DTOs
type CreateShipmentRequest struct {
	ShipmentNumber      string          `json:"shipmentNumber" validate:"required,max=50"`
	CustomerID          uuid.UUID       `json:"customerId" validate:"required"`
	DriverID            *uuid.UUID      `json:"driverId"`
	Weight              float64         `json:"weight" validate:"gt=0,lte=200000"`
	Rate                float64         `json:"rate" validate:"gte=0,lte=10000"`
	FreightCost         *float64        `json:"freightCost" validate:"omitempty,gte=0"`
	Origin              LocationRequest `json:"origin"`
	Destination         LocationRequest `json:"destination"`
	ScheduledPickupDate time.Time       `json:"scheduledPickupDate" validate:"required"`
	ActualPickupDate    *time.Time      `json:"actualPickupDate"`
	DeliveryDate        *time.Time      `json:"deliveryDate"`
	ActualDeliveryDate  *time.Time      `json:"actualDeliveryDate"`
	Notes               *string         `json:"notes" validate:"omitempty,max=1000"`
}

type UpdateShipmentRequest struct {
	DriverID            *uuid.UUID       `json:"driverId"`
	ClearDriver         bool             `json:"clearDriver"`
	Weight              *float64         `json:"weight" validate:"omitempty,gt=0,lte=200000"`
	Rate                *float64         `json:"rate" validate:"omitempty,gte=0,lte=10000"`
	FreightCost         *float64         `json:"freightCost" validate:"omitempty,gte=0"`
	Origin              *LocationRequest `json:"origin"`
	Destination         *LocationRequest `json:"destination"`
	ScheduledPickupDate *time.Time       `json:"scheduledPickupDate"`
	ActualPickupDate    *time.Time       `json:"actualPickupDate"`
	DeliveryDate        *time.Time       `json:"deliveryDate"`
	ActualDeliveryDate  *time.Time       `json:"actualDeliveryDate"`
	Notes               *string          `json:"notes" validate:"omitempty,max=1000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending assigned in-transit delayed delivered cancelled on-hold"`
	// ActualDeliveryDate defaults to now when moving to delivered
	ActualDeliveryDate *time.Time `json:"actualDeliveryDate"`
}

type ShipmentFilterRequest struct {
	Status     *string    `form:"status" validate:"omitempty,oneof=pending assigned in-transit delayed delivered cancelled on-hold"`
	DriverID   string     `form:"driverId" validate:"omitempty,uuid"`
	CustomerID string     `form:"customerId" validate:"omitempty,uuid"`
	InvoiceID  string     `form:"invoiceId" validate:"omitempty,uuid"`
	Invoiced   *bool      `form:"invoiced"`
	StartDate  string     `form:"startDate"`
	EndDate    string     `form:"endDate"`
	Search     string     `form:"search" validate:"omitempty,max=100"`
	Page       int        `form:"page" validate:"omitempty,min=1"`
	PageSize   int        `form:"pageSize" validate:"omitempty,min=1,max=100"`
	SortBy     string     `form:"sortBy" validate:"omitempty,oneof=created_at delivery_date shipment_number"`
	SortOrder  string     `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

// Response DTOs
type LocationResponse struct {
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	Address string `json:"address,omitempty"`
}

type ShipmentResponse struct {
	ID                  uuid.UUID        `json:"id"`
	ShipmentNumber      string           `json:"shipmentNumber"`
	Status              string           `json:"status"`
	Weight              float64          `json:"weight"`
	Rate                float64          `json:"rate"`
	FreightCost         float64          `json:"freightCost"`
	Origin              LocationResponse `json:"origin"`
	Destination         LocationResponse `json:"destination"`
	ScheduledPickupDate time.Time        `json:"scheduledPickupDate"`
	ActualPickupDate    *time.Time       `json:"actualPickupDate,omitempty"`
	DeliveryDate        *time.Time       `json:"deliveryDate,omitempty"`
	ActualDeliveryDate  *time.Time       `json:"actualDeliveryDate,omitempty"`
	DriverID            *uuid.UUID       `json:"driverId,omitempty"`
	CustomerID          uuid.UUID        `json:"customerId"`
	InvoiceID           *uuid.UUID       `json:"invoiceId"`
	Notes               *string          `json:"notes,omitempty"`
	AllowedTransitions  []string         `json:"allowedTransitions"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

type ShipmentListResponse struct {
	Shipments  []*ShipmentResponse `json:"shipments"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"pageSize"`
	TotalPages int                 `json:"totalPages"`
}

func toLocation(l LocationRequest) domainShipment.Location {
	return domainShipment.Location{City: l.City, State: l.State, Address: l.Address}
}

func ToShipmentResponse(s *domainShipment.Shipment) *ShipmentResponse {
	allowed := GetAllowedTransitions(s.Status)
	transitions := make([]string, len(allowed))
	for i, status := range allowed {
		transitions[i] = string(status)
	}

	return &ShipmentResponse{
		ID:                  s.ID,
		ShipmentNumber:      s.ShipmentNumber,
		Status:              string(s.Status),
		Weight:              s.Weight,
		Rate:                s.Rate,
		FreightCost:         s.FreightCost,
		Origin:              LocationResponse(s.Origin),
		Destination:         LocationResponse(s.Destination),
		ScheduledPickupDate: s.ScheduledPickupDate,
		ActualPickupDate:    s.ActualPickupDate,
		DeliveryDate:        s.DeliveryDate,
		ActualDeliveryDate:  s.ActualDeliveryDate,
		DriverID:            s.DriverID,
		CustomerID:          s.CustomerID,
		InvoiceID:           s.InvoiceID,
		Notes:               s.Notes,
		AllowedTransitions:  transitions,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}
