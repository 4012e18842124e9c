package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freight-backoffice/internal/domain/driver"
	"freight-backoffice/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DriverRepository struct {
	db *DB
}

func NewDriverRepository(db *DB) *DriverRepository {
	return &DriverRepository{db: db}
}

func (r *DriverRepository) Create(ctx context.Context, d *driver.Driver) error {
	now := time.Now().UTC()
	d.ID = uuid.New()
	d.CreatedAt = now
	d.UpdatedAt = now
	if d.Status == "" {
		d.Status = driver.StatusActive
	}

	if err := r.db.DB.WithContext(ctx).Create(toDriverModel(d)).Error; err != nil {
		return fmt.Errorf("failed to create driver: %w", translate(err))
	}
	return nil
}

func (r *DriverRepository) GetByID(ctx context.Context, driverID uuid.UUID) (*driver.Driver, error) {
	var dbModel models.DriverModel
	err := r.db.DB.WithContext(ctx).Where("id = ?", driverID).First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, driver.ErrDriverNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}
	return toDriverEntity(&dbModel), nil
}

func (r *DriverRepository) GetByIDs(ctx context.Context, driverIDs []uuid.UUID) ([]*driver.Driver, error) {
	if len(driverIDs) == 0 {
		return []*driver.Driver{}, nil
	}

	var dbModels []models.DriverModel
	if err := r.db.DB.WithContext(ctx).Where("id IN ?", driverIDs).Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to get drivers: %w", err)
	}

	drivers := make([]*driver.Driver, len(dbModels))
	for i := range dbModels {
		drivers[i] = toDriverEntity(&dbModels[i])
	}
	return drivers, nil
}

func (r *DriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	d.UpdatedAt = time.Now().UTC()

	result := r.db.DB.WithContext(ctx).
		Model(&models.DriverModel{}).
		Where("id = ?", d.ID).
		Updates(map[string]interface{}{
			"first_name":      d.FirstName,
			"last_name":       d.LastName,
			"employee_id":     d.EmployeeID,
			"email":           d.Email,
			"phone":           d.Phone,
			"truck_number":    d.TruckNumber,
			"commission_rate": d.CommissionRate,
			"status":          string(d.Status),
			"updated_at":      d.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update driver: %w", translate(result.Error))
	}
	if result.RowsAffected == 0 {
		return driver.ErrDriverNotFound
	}
	return nil
}

func (r *DriverRepository) Delete(ctx context.Context, driverID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Where("id = ?", driverID).Delete(&models.DriverModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete driver: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return driver.ErrDriverNotFound
	}
	return nil
}

func (r *DriverRepository) List(ctx context.Context, filter *driver.Filter) ([]*driver.Driver, int64, error) {
	if filter == nil {
		filter = &driver.Filter{}
	}

	var dbModels []models.DriverModel
	var total int64

	db := r.db.DB.WithContext(ctx).Model(&models.DriverModel{})
	if filter.Status != nil {
		db = db.Where("status = ?", string(*filter.Status))
	}
	if filter.Search != "" {
		search := likePattern(filter.Search)
		db = db.Where("(first_name || ' ' || last_name) ILIKE ? OR employee_id ILIKE ? OR truck_number ILIKE ?",
			search, search, search)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count drivers: %w", err)
	}

	err := paginate(db.Order("last_name ASC, first_name ASC, id ASC"), filter.Page, filter.PageSize).
		Find(&dbModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list drivers: %w", err)
	}

	drivers := make([]*driver.Driver, len(dbModels))
	for i := range dbModels {
		drivers[i] = toDriverEntity(&dbModels[i])
	}
	return drivers, total, nil
}

func toDriverModel(d *driver.Driver) *models.DriverModel {
	return &models.DriverModel{
		ID:             d.ID,
		FirstName:      d.FirstName,
		LastName:       d.LastName,
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

func toDriverEntity(m *models.DriverModel) *driver.Driver {
	return &driver.Driver{
		ID:             m.ID,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		EmployeeID:     m.EmployeeID,
		Email:          m.Email,
		Phone:          m.Phone,
		TruckNumber:    m.TruckNumber,
		CommissionRate: m.CommissionRate,
		Status:         driver.Status(m.Status),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
