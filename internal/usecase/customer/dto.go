package customer

import (
	"time"

	domainCustomer "freight-backoffice/internal/domain/customer"

	"github.com/google/uuid"
)

type CreateCustomerRequest struct {
	Name                     string  `json:"name" validate:"required,max=200"`
	Code                     string  `json:"code" validate:"required,max=20,alphanum"`
	Email                    *string `json:"email" validate:"omitempty,email"`
	Phone                    *string `json:"phone" validate:"omitempty,phone"`
	Address                  *string `json:"address" validate:"omitempty,max=500"`
	DefaultFuelSurchargeRate float64 `json:"defaultFuelSurchargeRate" validate:"fraction"`
}

type UpdateCustomerRequest struct {
	Name                     *string  `json:"name" validate:"omitempty,max=200"`
	Code                     *string  `json:"code" validate:"omitempty,max=20,alphanum"`
	Email                    *string  `json:"email" validate:"omitempty,email"`
	Phone                    *string  `json:"phone" validate:"omitempty,phone"`
	Address                  *string  `json:"address" validate:"omitempty,max=500"`
	DefaultFuelSurchargeRate *float64 `json:"defaultFuelSurchargeRate" validate:"omitempty,fraction"`
}

type CustomerFilterRequest struct {
	Search   string `form:"search" validate:"omitempty,max=100"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

type CustomerResponse struct {
	ID                       uuid.UUID `json:"id"`
	Name                     string    `json:"name"`
	Code                     string    `json:"code"`
	Email                    *string   `json:"email,omitempty"`
	Phone                    *string   `json:"phone,omitempty"`
	Address                  *string   `json:"address,omitempty"`
	DefaultFuelSurchargeRate float64   `json:"defaultFuelSurchargeRate"`
	CreatedAt                time.Time `json:"createdAt"`
	UpdatedAt                time.Time `json:"updatedAt"`
}

type CustomerListResponse struct {
	Customers  []*CustomerResponse `json:"customers"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"pageSize"`
	TotalPages int                 `json:"totalPages"`
}

func ToCustomerResponse(c *domainCustomer.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:                       c.ID,
		Name:                     c.Name,
		Code:                     c.Code,
		Email:                    c.Email,
		Phone:                    c.Phone,
		Address:                  c.Address,
		DefaultFuelSurchargeRate: c.DefaultFuelSurchargeRate,
		CreatedAt:                c.CreatedAt,
		UpdatedAt:                c.UpdatedAt,
	}
}
