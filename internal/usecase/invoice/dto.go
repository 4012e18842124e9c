package invoice

import (
	"time"

	domainInvoice "freight-backoffice/internal/domain/invoice"

	"github.com/google/uuid"
)

// Request DTOs
type CreateInvoiceRequest struct {
	CustomerID        uuid.UUID   `json:"customerId" validate:"required"`
	ShipmentIDs       []uuid.UUID `json:"shipmentIds" validate:"required,min=1,dive,required"`
	FuelSurchargeRate *float64    `json:"fuelSurchargeRate" validate:"omitempty,fraction"`
	DepositAmount     float64     `json:"depositAmount" validate:"gte=0"`
	InvoiceDate       *time.Time  `json:"invoiceDate"`
	DueDate           *time.Time  `json:"dueDate"`
	Notes             *string     `json:"notes" validate:"omitempty,max=2000"`
}

type UpdateInvoiceRequest struct {
	SubTotal          *float64   `json:"subTotal" validate:"omitempty,gte=0"`
	FuelSurchargeRate *float64   `json:"fuelSurchargeRate" validate:"omitempty,fraction"`
	DepositAmount     *float64   `json:"depositAmount" validate:"omitempty,gte=0"`
	Status            *string    `json:"status" validate:"omitempty,oneof=draft sent paid partially-paid overdue void"`
	DueDate           *time.Time `json:"dueDate"`
	Notes             *string    `json:"notes" validate:"omitempty,max=2000"`
}

type InvoiceFilterRequest struct {
	CustomerID string     `form:"customerId" validate:"omitempty,uuid"`
	Status     *string    `form:"status" validate:"omitempty,oneof=draft sent paid partially-paid overdue void"`
	Page       int        `form:"page" validate:"omitempty,min=1"`
	PageSize   int        `form:"pageSize" validate:"omitempty,min=1,max=100"`
	SortOrder  string     `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

// Response DTOs
type InvoiceResponse struct {
	ID                  uuid.UUID   `json:"id"`
	InvoiceNumber       string      `json:"invoiceNumber"`
	CustomerID          uuid.UUID   `json:"customerId"`
	ShipmentIDs         []uuid.UUID `json:"shipmentIds"`
	InvoiceDate         time.Time   `json:"invoiceDate"`
	DueDate             *time.Time  `json:"dueDate,omitempty"`
	SubTotal            float64     `json:"subTotal"`
	FuelSurchargeRate   float64     `json:"fuelSurchargeRate"`
	FuelSurchargeAmount float64     `json:"fuelSurchargeAmount"`
	DepositAmount       float64     `json:"depositAmount"`
	TotalAmount         float64     `json:"totalAmount"`
	Status              string      `json:"status"`
	Notes               *string     `json:"notes,omitempty"`
	CreatedAt           time.Time   `json:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt"`
}

type InvoiceListResponse struct {
	Invoices   []*InvoiceResponse `json:"invoices"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	TotalPages int                `json:"totalPages"`
}

type NextNumberResponse struct {
	InvoiceNumber string `json:"invoiceNumber"`
}

func ToInvoiceResponse(inv *domainInvoice.Invoice) *InvoiceResponse {
	ids := inv.ShipmentIDs
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return &InvoiceResponse{
		ID:                  inv.ID,
		InvoiceNumber:       inv.InvoiceNumber,
		CustomerID:          inv.CustomerID,
		ShipmentIDs:         ids,
		InvoiceDate:         inv.InvoiceDate,
		DueDate:             inv.DueDate,
		SubTotal:            inv.SubTotal,
		FuelSurchargeRate:   inv.FuelSurchargeRate,
		FuelSurchargeAmount: inv.FuelSurchargeAmount,
		DepositAmount:       inv.DepositAmount,
		TotalAmount:         inv.TotalAmount,
		Status:              string(inv.Status),
		Notes:               inv.Notes,
		CreatedAt:           inv.CreatedAt,
		UpdatedAt:           inv.UpdatedAt,
	}
}
