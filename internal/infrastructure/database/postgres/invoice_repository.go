package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freight-backoffice/internal/domain/invoice"
	"freight-backoffice/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InvoiceRepository struct {
	db *DB
}

func NewInvoiceRepository(db *DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

var invoiceSortColumns = map[string]string{
	"created_at":     "created_at",
	"invoice_date":   "invoice_date",
	"invoice_number": "invoice_number",
}

// Create inserts the invoice row and its ordered shipment rows in one statement
// group; gorm writes the association after the parent.
func (r *InvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	now := time.Now().UTC()
	inv.ID = uuid.New()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	if inv.Status == "" {
		inv.Status = invoice.StatusDraft
	}

	if err := r.db.DB.WithContext(ctx).Create(toInvoiceModel(inv)).Error; err != nil {
		return fmt.Errorf("failed to create invoice: %w", translate(err))
	}
	return nil
}

func (r *InvoiceRepository) withShipments(db *gorm.DB) *gorm.DB {
	return db.Preload("Shipments", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	})
}

func (r *InvoiceRepository) first(query *gorm.DB) (*invoice.Invoice, error) {
	var dbModel models.InvoiceModel
	err := r.withShipments(query).First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, invoice.ErrInvoiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return toInvoiceEntity(&dbModel), nil
}

func (r *InvoiceRepository) GetByID(ctx context.Context, invoiceID uuid.UUID) (*invoice.Invoice, error) {
	return r.first(r.db.DB.WithContext(ctx).Where("id = ?", invoiceID))
}

func (r *InvoiceRepository) GetByNumber(ctx context.Context, invoiceNumber string) (*invoice.Invoice, error) {
	return r.first(r.db.DB.WithContext(ctx).Where("invoice_number = ?", invoiceNumber))
}

func (r *InvoiceRepository) GetLatest(ctx context.Context) (*invoice.Invoice, error) {
	return r.first(r.db.DB.WithContext(ctx).Order("created_at DESC, id DESC"))
}

// Update rewrites the invoice columns. The shipment list is fixed at creation.
func (r *InvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	inv.UpdatedAt = time.Now().UTC()

	result := r.db.DB.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("id = ?", inv.ID).
		Updates(map[string]interface{}{
			"invoice_number":        inv.InvoiceNumber,
			"customer_id":           inv.CustomerID,
			"invoice_date":          inv.InvoiceDate,
			"due_date":              inv.DueDate,
			"sub_total":             inv.SubTotal,
			"fuel_surcharge_rate":   inv.FuelSurchargeRate,
			"fuel_surcharge_amount": inv.FuelSurchargeAmount,
			"deposit_amount":        inv.DepositAmount,
			"total_amount":          inv.TotalAmount,
			"status":                string(inv.Status),
			"notes":                 inv.Notes,
			"updated_at":            inv.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update invoice: %w", translate(result.Error))
	}
	if result.RowsAffected == 0 {
		return invoice.ErrInvoiceNotFound
	}
	return nil
}

func (r *InvoiceRepository) Delete(ctx context.Context, invoiceID uuid.UUID) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", invoiceID).Delete(&models.InvoiceShipmentModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete invoice shipments: %w", err)
		}

		result := tx.Where("id = ?", invoiceID).Delete(&models.InvoiceModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete invoice: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return invoice.ErrInvoiceNotFound
		}
		return nil
	})
}

func (r *InvoiceRepository) List(ctx context.Context, filter *invoice.Filter) ([]*invoice.Invoice, int64, error) {
	if filter == nil {
		filter = &invoice.Filter{}
	}

	var dbModels []models.InvoiceModel
	var total int64

	db := r.db.DB.WithContext(ctx).Model(&models.InvoiceModel{})
	if filter.CustomerID != nil {
		db = db.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", string(*filter.Status))
	}
	if filter.InvoiceFrom != nil {
		db = db.Where("invoice_date >= ?", *filter.InvoiceFrom)
	}
	if filter.InvoiceTo != nil {
		db = db.Where("invoice_date <= ?", *filter.InvoiceTo)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	order := orderBy(filter.SortBy, filter.SortOrder, invoiceSortColumns, "created_at")
	err := paginate(r.withShipments(db.Order(order)), filter.Page, filter.PageSize).Find(&dbModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}

	invoices := make([]*invoice.Invoice, len(dbModels))
	for i := range dbModels {
		invoices[i] = toInvoiceEntity(&dbModels[i])
	}
	return invoices, total, nil
}

func (r *InvoiceRepository) ListDated(ctx context.Context) ([]*invoice.Invoice, error) {
	var dbModels []models.InvoiceModel
	err := r.withShipments(r.db.DB.WithContext(ctx)).
		Where("due_date IS NOT NULL").
		Order("created_at ASC, id ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list dated invoices: %w", err)
	}

	invoices := make([]*invoice.Invoice, len(dbModels))
	for i := range dbModels {
		invoices[i] = toInvoiceEntity(&dbModels[i])
	}
	return invoices, nil
}

func (r *InvoiceRepository) UpdateDueDate(ctx context.Context, invoiceID uuid.UUID, dueDate *time.Time) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("id = ?", invoiceID).
		Updates(map[string]interface{}{
			"due_date":   dueDate,
			"updated_at": time.Now().UTC(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update invoice due date: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return invoice.ErrInvoiceNotFound
	}
	return nil
}

type SequenceRepository struct {
	db *DB
}

func NewSequenceRepository(db *DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// NextValue upserts the counter row and returns the incremented value in a
// single statement, so concurrent callers never observe the same value.
func (r *SequenceRepository) NextValue(ctx context.Context, name string, seed int64) (int64, error) {
	row := models.SequenceModel{Name: name, Value: seed + 1}
	err := r.db.DB.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoUpdates: clause.Assignments(map[string]interface{}{"value": gorm.Expr("sequences.value + 1")}),
			},
			clause.Returning{Columns: []clause.Column{{Name: "value"}}},
		).
		Create(&row).Error
	if err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s: %w", name, err)
	}
	return row.Value, nil
}

func toInvoiceModel(inv *invoice.Invoice) *models.InvoiceModel {
	shipments := make([]models.InvoiceShipmentModel, len(inv.ShipmentIDs))
	for i, id := range inv.ShipmentIDs {
		shipments[i] = models.InvoiceShipmentModel{InvoiceID: inv.ID, ShipmentID: id, Position: i}
	}

	return &models.InvoiceModel{
		ID:                  inv.ID,
		InvoiceNumber:       inv.InvoiceNumber,
		CustomerID:          inv.CustomerID,
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
		Shipments:           shipments,
	}
}

func toInvoiceEntity(m *models.InvoiceModel) *invoice.Invoice {
	ids := make([]uuid.UUID, len(m.Shipments))
	for i, s := range m.Shipments {
		ids[i] = s.ShipmentID
	}

	return &invoice.Invoice{
		ID:                  m.ID,
		InvoiceNumber:       m.InvoiceNumber,
		CustomerID:          m.CustomerID,
		ShipmentIDs:         ids,
		InvoiceDate:         m.InvoiceDate,
		DueDate:             m.DueDate,
		SubTotal:            m.SubTotal,
		FuelSurchargeRate:   m.FuelSurchargeRate,
		FuelSurchargeAmount: m.FuelSurchargeAmount,
		DepositAmount:       m.DepositAmount,
		TotalAmount:         m.TotalAmount,
		Status:              invoice.InvoiceStatus(m.Status),
		Notes:               m.Notes,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}
