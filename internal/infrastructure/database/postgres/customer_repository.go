package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freight-backoffice/internal/domain/customer"
	"freight-backoffice/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository struct {
	db *DB
}

func NewCustomerRepository(db *DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	now := time.Now().UTC()
	c.ID = uuid.New()
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := r.db.DB.WithContext(ctx).Create(toCustomerModel(c)).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", translate(err))
	}
	return nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, customerID uuid.UUID) (*customer.Customer, error) {
	var dbModel models.CustomerModel
	err := r.db.DB.WithContext(ctx).Where("id = ?", customerID).First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, customer.ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return toCustomerEntity(&dbModel), nil
}

func (r *CustomerRepository) GetByIDs(ctx context.Context, customerIDs []uuid.UUID) ([]*customer.Customer, error) {
	if len(customerIDs) == 0 {
		return []*customer.Customer{}, nil
	}

	var dbModels []models.CustomerModel
	if err := r.db.DB.WithContext(ctx).Where("id IN ?", customerIDs).Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to get customers: %w", err)
	}

	customers := make([]*customer.Customer, len(dbModels))
	for i := range dbModels {
		customers[i] = toCustomerEntity(&dbModels[i])
	}
	return customers, nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	c.UpdatedAt = time.Now().UTC()

	result := r.db.DB.WithContext(ctx).
		Model(&models.CustomerModel{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"name":                        c.Name,
			"code":                        c.Code,
			"email":                       c.Email,
			"phone":                       c.Phone,
			"address":                     c.Address,
			"default_fuel_surcharge_rate": c.DefaultFuelSurchargeRate,
			"updated_at":                  c.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update customer: %w", translate(result.Error))
	}
	if result.RowsAffected == 0 {
		return customer.ErrCustomerNotFound
	}
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, customerID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Where("id = ?", customerID).Delete(&models.CustomerModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete customer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return customer.ErrCustomerNotFound
	}
	return nil
}

func (r *CustomerRepository) List(ctx context.Context, filter *customer.Filter) ([]*customer.Customer, int64, error) {
	if filter == nil {
		filter = &customer.Filter{}
	}

	var dbModels []models.CustomerModel
	var total int64

	db := r.db.DB.WithContext(ctx).Model(&models.CustomerModel{})
	if filter.Search != "" {
		search := likePattern(filter.Search)
		db = db.Where("name ILIKE ? OR code ILIKE ?", search, search)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	err := paginate(db.Order("name ASC, id ASC"), filter.Page, filter.PageSize).Find(&dbModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}

	customers := make([]*customer.Customer, len(dbModels))
	for i := range dbModels {
		customers[i] = toCustomerEntity(&dbModels[i])
	}
	return customers, total, nil
}

func toCustomerModel(c *customer.Customer) *models.CustomerModel {
	return &models.CustomerModel{
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

func toCustomerEntity(m *models.CustomerModel) *customer.Customer {
	return &customer.Customer{
		ID:                       m.ID,
		Name:                     m.Name,
		Code:                     m.Code,
		Email:                    m.Email,
		Phone:                    m.Phone,
		Address:                  m.Address,
		DefaultFuelSurchargeRate: m.DefaultFuelSurchargeRate,
		CreatedAt:                m.CreatedAt,
		UpdatedAt:                m.UpdatedAt,
	}
}
