package driver

import (
	"time"

	domainDriver "freight-backoffice/internal/domain/driver"

	"github.com/google/uuid"
)

type CreateDriverRequest struct {
	FirstName      string   `json:"firstName" validate:"required,max=100"`
	LastName       string   `json:"lastName" validate:"required,max=100"`
	EmployeeID     string   `json:"employeeId" validate:"required,max=50"`
	Email          *string  `json:"email" validate:"omitempty,email"`
	Phone          *string  `json:"phone" validate:"omitempty,phone"`
	TruckNumber    string   `json:"truckNumber" validate:"omitempty,max=50"`
	CommissionRate *float64 `json:"commissionRate" validate:"required,fraction"`
}

type UpdateDriverRequest struct {
	FirstName      *string  `json:"firstName" validate:"omitempty,max=100"`
	LastName       *string  `json:"lastName" validate:"omitempty,max=100"`
	EmployeeID     *string  `json:"employeeId" validate:"omitempty,max=50"`
	Email          *string  `json:"email" validate:"omitempty,email"`
	Phone          *string  `json:"phone" validate:"omitempty,phone"`
	TruckNumber    *string  `json:"truckNumber" validate:"omitempty,max=50"`
	CommissionRate *float64 `json:"commissionRate" validate:"omitempty,fraction"`
	Status         *string  `json:"status" validate:"omitempty,oneof=active inactive"`
}

type DriverFilterRequest struct {
	Status   *string `form:"status" validate:"omitempty,oneof=active inactive"`
	Search   string  `form:"search" validate:"omitempty,max=100"`
	Page     int     `form:"page" validate:"omitempty,min=1"`
	PageSize int     `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

type DriverResponse struct {
	ID             uuid.UUID `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	FullName       string    `json:"fullName"`
	EmployeeID     string    `json:"employeeId"`
	Email          *string   `json:"email,omitempty"`
	Phone          *string   `json:"phone,omitempty"`
	TruckNumber    string    `json:"truckNumber"`
	CommissionRate *float64  `json:"commissionRate"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type DriverListResponse struct {
	Drivers    []*DriverResponse `json:"drivers"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

func ToDriverResponse(d *domainDriver.Driver) *DriverResponse {
	return &DriverResponse{
		ID:             d.ID,
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		FullName:       d.FullName(),
		EmployeeID:     d.EmployeeID,
		Email:          d.Email,
		Phone:          d.Phone,
		TruckNumber:    d.TruckNumber,
		CommissionRate: d.CommissionRate,
		Status:         string(d.Status),
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
