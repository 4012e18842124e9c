package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freight-backoffice/internal/domain/shipment"
	"freight-backoffice/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShipmentRepository struct {
	db *DB
}

func NewShipmentRepository(db *DB) *ShipmentRepository {
	return &ShipmentRepository{db: db}
}

var shipmentSortColumns = map[string]string{
	"created_at":      "created_at",
	"delivery_date":   "delivery_date",
	"shipment_number": "shipment_number",
}

func (r *ShipmentRepository) Create(ctx context.Context, s *shipment.Shipment) error {
	now := time.Now().UTC()
	s.ID = uuid.New()
	s.CreatedAt = now
	s.UpdatedAt = now
	if s.Status == "" {
		s.Status = shipment.StatusPending
	}

	dbModel := toShipmentModel(s)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create shipment: %w", translate(err))
	}
	return nil
}

func (r *ShipmentRepository) GetByID(ctx context.Context, shipmentID uuid.UUID) (*shipment.Shipment, error) {
	var dbModel models.ShipmentModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", shipmentID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shipment.ErrShipmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shipment: %w", err)
	}

	return toShipmentEntity(&dbModel), nil
}

func (r *ShipmentRepository) GetByIDs(ctx context.Context, shipmentIDs []uuid.UUID) ([]*shipment.Shipment, error) {
	if len(shipmentIDs) == 0 {
		return []*shipment.Shipment{}, nil
	}

	var dbModels []models.ShipmentModel
	if err := r.db.DB.WithContext(ctx).Where("id IN ?", shipmentIDs).Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to get shipments: %w", err)
	}

	shipments := make([]*shipment.Shipment, len(dbModels))
	for i := range dbModels {
		shipments[i] = toShipmentEntity(&dbModels[i])
	}
	return shipments, nil
}

func (r *ShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	s.UpdatedAt = time.Now().UTC()

	// invoice_id is owned by LinkInvoice/UnlinkInvoice
	result := r.db.DB.WithContext(ctx).
		Model(&models.ShipmentModel{}).
		Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"shipment_number":       s.ShipmentNumber,
			"status":                string(s.Status),
			"weight":                s.Weight,
			"rate":                  s.Rate,
			"freight_cost":          s.FreightCost,
			"origin_city":           s.Origin.City,
			"origin_state":          s.Origin.State,
			"origin_address":        s.Origin.Address,
			"destination_city":      s.Destination.City,
			"destination_state":     s.Destination.State,
			"destination_address":   s.Destination.Address,
			"scheduled_pickup_date": s.ScheduledPickupDate,
			"actual_pickup_date":    s.ActualPickupDate,
			"delivery_date":         s.DeliveryDate,
			"actual_delivery_date":  s.ActualDeliveryDate,
			"driver_id":             s.DriverID,
			"customer_id":           s.CustomerID,
			"notes":                 s.Notes,
			"updated_at":            s.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update shipment: %w", translate(result.Error))
	}
	if result.RowsAffected == 0 {
		return shipment.ErrShipmentNotFound
	}

	return nil
}

func (r *ShipmentRepository) Delete(ctx context.Context, shipmentID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", shipmentID).
		Delete(&models.ShipmentModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete shipment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shipment.ErrShipmentNotFound
	}

	return nil
}

func (r *ShipmentRepository) List(ctx context.Context, filter *shipment.Filter) ([]*shipment.Shipment, int64, error) {
	if filter == nil {
		filter = &shipment.Filter{}
	}

	var dbModels []models.ShipmentModel
	var total int64

	db := r.db.DB.WithContext(ctx).Model(&models.ShipmentModel{})

	if filter.Status != nil {
		db = db.Where("status = ?", string(*filter.Status))
	}
	if filter.DriverID != nil {
		db = db.Where("driver_id = ?", *filter.DriverID)
	}
	if filter.CustomerID != nil {
		db = db.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.InvoiceID != nil {
		db = db.Where("invoice_id = ?", *filter.InvoiceID)
	}
	if filter.Invoiced != nil {
		if *filter.Invoiced {
			db = db.Where("invoice_id IS NOT NULL")
		} else {
			db = db.Where("invoice_id IS NULL")
		}
	}
	if filter.DeliveryFrom != nil {
		db = db.Where("delivery_date >= ?", *filter.DeliveryFrom)
	}
	if filter.DeliveryTo != nil {
		db = db.Where("delivery_date <= ?", *filter.DeliveryTo)
	}
	if filter.Search != "" {
		search := likePattern(filter.Search)
		db = db.Where("shipment_number ILIKE ? OR origin_city ILIKE ? OR destination_city ILIKE ?",
			search, search, search)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count shipments: %w", err)
	}

	order := orderBy(filter.SortBy, filter.SortOrder, shipmentSortColumns, "created_at")
	err := paginate(db.Order(order), filter.Page, filter.PageSize).Find(&dbModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list shipments: %w", err)
	}

	shipments := make([]*shipment.Shipment, len(dbModels))
	for i := range dbModels {
		shipments[i] = toShipmentEntity(&dbModels[i])
	}

	return shipments, total, nil
}

func (r *ShipmentRepository) LinkInvoice(ctx context.Context, shipmentIDs []uuid.UUID, invoiceID uuid.UUID) (int64, error) {
	if len(shipmentIDs) == 0 {
		return 0, nil
	}

	result := r.db.DB.WithContext(ctx).
		Model(&models.ShipmentModel{}).
		Where("id IN ? AND invoice_id IS NULL", shipmentIDs).
		Updates(map[string]interface{}{
			"invoice_id": invoiceID,
			"updated_at": time.Now().UTC(),
		})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to link shipments to invoice: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *ShipmentRepository) UnlinkInvoice(ctx context.Context, invoiceID uuid.UUID) (int64, error) {
	result := r.db.DB.WithContext(ctx).
		Model(&models.ShipmentModel{}).
		Where("invoice_id = ?", invoiceID).
		Updates(map[string]interface{}{
			"invoice_id": nil,
			"updated_at": time.Now().UTC(),
		})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to unlink shipments from invoice: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *ShipmentRepository) ListDated(ctx context.Context) ([]*shipment.Shipment, error) {
	var dbModels []models.ShipmentModel
	err := r.db.DB.WithContext(ctx).
		Where("delivery_date IS NOT NULL OR actual_pickup_date IS NOT NULL OR actual_delivery_date IS NOT NULL").
		Order("created_at ASC, id ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list dated shipments: %w", err)
	}

	shipments := make([]*shipment.Shipment, len(dbModels))
	for i := range dbModels {
		shipments[i] = toShipmentEntity(&dbModels[i])
	}
	return shipments, nil
}

func (r *ShipmentRepository) UpdateDates(ctx context.Context, shipmentID uuid.UUID, dates shipment.DateFields) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.ShipmentModel{}).
		Where("id = ?", shipmentID).
		Updates(map[string]interface{}{
			"delivery_date":        dates.DeliveryDate,
			"actual_pickup_date":   dates.ActualPickupDate,
			"actual_delivery_date": dates.ActualDeliveryDate,
			"updated_at":           time.Now().UTC(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update shipment dates: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shipment.ErrShipmentNotFound
	}
	return nil
}

func toShipmentModel(s *shipment.Shipment) *models.ShipmentModel {
	return &models.ShipmentModel{
		ID:                  s.ID,
		ShipmentNumber:      s.ShipmentNumber,
		Status:              string(s.Status),
		Weight:              s.Weight,
		Rate:                s.Rate,
		FreightCost:         s.FreightCost,
		OriginCity:          s.Origin.City,
		OriginState:         s.Origin.State,
		OriginAddress:       s.Origin.Address,
		DestinationCity:     s.Destination.City,
		DestinationState:    s.Destination.State,
		DestinationAddress:  s.Destination.Address,
		ScheduledPickupDate: s.ScheduledPickupDate,
		ActualPickupDate:    s.ActualPickupDate,
		DeliveryDate:        s.DeliveryDate,
		ActualDeliveryDate:  s.ActualDeliveryDate,
		DriverID:            s.DriverID,
		CustomerID:          s.CustomerID,
		InvoiceID:           s.InvoiceID,
		Notes:               s.Notes,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

func toShipmentEntity(m *models.ShipmentModel) *shipment.Shipment {
	return &shipment.Shipment{
		ID:             m.ID,
		ShipmentNumber: m.ShipmentNumber,
		Status:         shipment.ShipmentStatus(m.Status),
		Weight:         m.Weight,
		Rate:           m.Rate,
		FreightCost:    m.FreightCost,
		Origin: shipment.Location{
			City:    m.OriginCity,
			State:   m.OriginState,
			Address: m.OriginAddress,
		},
		Destination: shipment.Location{
			City:    m.DestinationCity,
			State:   m.DestinationState,
			Address: m.DestinationAddress,
		},
		ScheduledPickupDate: m.ScheduledPickupDate,
		ActualPickupDate:    m.ActualPickupDate,
		DeliveryDate:        m.DeliveryDate,
		ActualDeliveryDate:  m.ActualDeliveryDate,
		DriverID:            m.DriverID,
		CustomerID:          m.CustomerID,
		InvoiceID:           m.InvoiceID,
		Notes:               m.Notes,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}
