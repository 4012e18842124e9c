package customer

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, customer *Customer) error
	GetByID(ctx context.Context, customerID uuid.UUID) (*Customer, error)
	GetByIDs(ctx context.Context, customerIDs []uuid.UUID) ([]*Customer, error)
	Update(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, customerID uuid.UUID) error
	List(ctx context.Context, filter *Filter) ([]*Customer, int64, error)
}

type Filter struct {
	Search string

	Page     int
	PageSize int
}
