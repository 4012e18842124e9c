package driver

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, driver *Driver) error
	GetByID(ctx context.Context, driverID uuid.UUID) (*Driver, error)
	GetByIDs(ctx context.Context, driverIDs []uuid.UUID) ([]*Driver, error)
	Update(ctx context.Context, driver *Driver) error
	Delete(ctx context.Context, driverID uuid.UUID) error
	List(ctx context.Context, filter *Filter) ([]*Driver, int64, error)
}

type Filter struct {
	Status *Status
	Search string

	Page     int
	PageSize int
}
