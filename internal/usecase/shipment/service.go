package shipment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freight-backoffice/internal/billing"
	domainCustomer "freight-backoffice/internal/domain/customer"
	domainDriver "freight-backoffice/internal/domain/driver"
	domainShipment "freight-backoffice/internal/domain/shipment"
	"freight-backoffice/internal/logger"
	appErrors "freight-backoffice/pkg/errors"
	"freight-backoffice/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements shipment use cases
type Service struct {
	shipmentRepo domainShipment.Repository
	driverRepo   domainDriver.Repository
	customerRepo domainCustomer.Repository
	now          func() time.Time
}

// NewService creates a new shipment service
func NewService(
	shipmentRepo domainShipment.Repository,
	driverRepo domainDriver.Repository,
	customerRepo domainCustomer.Repository,
) *Service {
	return &Service{
		shipmentRepo: shipmentRepo,
		driverRepo:   driverRepo,
		customerRepo: customerRepo,
		now:          time.Now,
	}
}

// SetClock replaces the time source used for status timestamps.
func (s *Service) SetClock(clock func() time.Time) {
	s.now = clock
}

func (s *Service) Create(ctx context.Context, req *CreateShipmentRequest) (*ShipmentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}

	if err := ValidateCustomer(ctx, s.customerRepo, req.CustomerID); err != nil {
		return nil, err
	}
	if err := ValidateDriver(ctx, s.driverRepo, req.DriverID); err != nil {
		return nil, err
	}
	if err := ValidateTimeRange(req.ScheduledPickupDate, req.DeliveryDate); err != nil {
		return nil, err
	}

	freightCost, err := ResolveFreightCost(req.FreightCost, req.Rate, req.Weight)
	if err != nil {
		return nil, err
	}

	status := domainShipment.StatusPending
	if req.DriverID != nil {
		status = domainShipment.StatusAssigned
	}

	shipment := &domainShipment.Shipment{
		ShipmentNumber:      utils.SanitizeString(req.ShipmentNumber),
		Status:              status,
		Weight:              req.Weight,
		Rate:                req.Rate,
		FreightCost:         freightCost,
		Origin:              toLocation(req.Origin),
		Destination:         toLocation(req.Destination),
		ScheduledPickupDate: req.ScheduledPickupDate.UTC(),
		ActualPickupDate:    utcPtr(req.ActualPickupDate),
		DeliveryDate:        utcPtr(req.DeliveryDate),
		ActualDeliveryDate:  utcPtr(req.ActualDeliveryDate),
		DriverID:            req.DriverID,
		CustomerID:          req.CustomerID,
		Notes:               req.Notes,
	}

	if err := s.shipmentRepo.Create(ctx, shipment); err != nil {
		if appErrors.IsDuplicateKey(err) {
			return nil, appErrors.NewConflictError(
				"SHIPMENT_NUMBER_CONFLICT",
				fmt.Sprintf("Shipment number %s already exists", shipment.ShipmentNumber),
				err,
			)
		}
		return nil, err
	}

	logger.Info("Shipment created",
		zap.String("shipment_id", shipment.ID.String()),
		zap.String("shipment_number", shipment.ShipmentNumber),
		zap.String("customer_id", shipment.CustomerID.String()),
		zap.String("event", "shipment_created"),
	)

	return ToShipmentResponse(shipment), nil
}

// Get shipment
func (s *Service) Get(ctx context.Context, shipmentID uuid.UUID) (*ShipmentResponse, error) {
	shipment, err := s.getShipment(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	return ToShipmentResponse(shipment), nil
}

// Update changes editable fields. Billing inputs are frozen once the shipment is
// on an invoice.
func (s *Service) Update(ctx context.Context, shipmentID uuid.UUID, req *UpdateShipmentRequest) (*ShipmentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}

	shipment, err := s.getShipment(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	billingChange := req.Weight != nil || req.Rate != nil || req.FreightCost != nil
	if billingChange && shipment.InvoiceID != nil {
		return nil, appErrors.NewValidationError(
			"SHIPMENT_INVOICED",
			"Weight, rate and freight cost cannot change while the shipment is invoiced",
			domainShipment.ErrShipmentInvoiced,
		)
	}

	if req.ClearDriver {
		shipment.DriverID = nil
	} else if req.DriverID != nil {
		if err := ValidateDriver(ctx, s.driverRepo, req.DriverID); err != nil {
			return nil, err
		}
		shipment.DriverID = req.DriverID
	}

	if billingChange {
		if req.Weight != nil {
			shipment.Weight = *req.Weight
		}
		if req.Rate != nil {
			shipment.Rate = *req.Rate
		}
		supplied := req.FreightCost
		if supplied == nil && req.Weight == nil && req.Rate == nil {
			supplied = &shipment.FreightCost
		}
		cost, err := ResolveFreightCost(supplied, shipment.Rate, shipment.Weight)
		if err != nil {
			return nil, err
		}
		shipment.FreightCost = cost
	}

	if req.Origin != nil {
		shipment.Origin = toLocation(*req.Origin)
	}
	if req.Destination != nil {
		shipment.Destination = toLocation(*req.Destination)
	}
	if req.ScheduledPickupDate != nil {
		shipment.ScheduledPickupDate = req.ScheduledPickupDate.UTC()
	}
	if req.ActualPickupDate != nil {
		shipment.ActualPickupDate = utcPtr(req.ActualPickupDate)
	}
	if req.DeliveryDate != nil {
		shipment.DeliveryDate = utcPtr(req.DeliveryDate)
	}
	if req.ActualDeliveryDate != nil {
		shipment.ActualDeliveryDate = utcPtr(req.ActualDeliveryDate)
	}
	if req.Notes != nil {
		shipment.Notes = req.Notes
	}

	if err := ValidateTimeRange(shipment.ScheduledPickupDate, shipment.DeliveryDate); err != nil {
		return nil, err
	}

	if err := s.shipmentRepo.Update(ctx, shipment); err != nil {
		return nil, s.mapWriteError(err, shipment)
	}

	logger.Info("Shipment updated",
		zap.String("shipment_id", shipment.ID.String()),
		zap.String("event", "shipment_updated"),
	)

	return ToShipmentResponse(shipment), nil
}

// UpdateStatus moves the shipment along its lifecycle
func (s *Service) UpdateStatus(ctx context.Context, shipmentID uuid.UUID, req *UpdateStatusRequest) (*ShipmentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}

	shipment, err := s.getShipment(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	next := domainShipment.ShipmentStatus(req.Status)
	if err := ValidateStatusTransition(shipment.Status, next); err != nil {
		return nil, err
	}
	if next == domainShipment.StatusAssigned && shipment.DriverID == nil {
		return nil, appErrors.NewValidationError("DRIVER_REQUIRED", "A driver is required to assign the shipment", nil)
	}

	previous := shipment.Status
	shipment.Status = next
	if next == domainShipment.StatusDelivered && shipment.ActualDeliveryDate == nil {
		delivered := req.ActualDeliveryDate
		if delivered == nil {
			now := s.now().UTC()
			delivered = &now
		}
		shipment.ActualDeliveryDate = utcPtr(delivered)
	}
	if next == domainShipment.StatusInTransit && shipment.ActualPickupDate == nil {
		pickup := s.now().UTC()
		shipment.ActualPickupDate = &pickup
	}

	if err := s.shipmentRepo.Update(ctx, shipment); err != nil {
		return nil, s.mapWriteError(err, shipment)
	}

	logger.Info("Shipment status changed",
		zap.String("shipment_id", shipment.ID.String()),
		zap.String("from", string(previous)),
		zap.String("to", string(next)),
		zap.String("event", "shipment_status_changed"),
	)

	return ToShipmentResponse(shipment), nil
}

// Delete removes a shipment that is not on an invoice
func (s *Service) Delete(ctx context.Context, shipmentID uuid.UUID) error {
	shipment, err := s.getShipment(ctx, shipmentID)
	if err != nil {
		return err
	}

	if shipment.InvoiceID != nil {
		return appErrors.NewValidationError(
			"SHIPMENT_INVOICED",
			"Delete the invoice before deleting its shipments",
			domainShipment.ErrShipmentInvoiced,
		)
	}

	if err := s.shipmentRepo.Delete(ctx, shipmentID); err != nil {
		if errors.Is(err, domainShipment.ErrShipmentNotFound) {
			return appErrors.NewNotFoundError("SHIPMENT_NOT_FOUND", "Shipment not found", err)
		}
		return err
	}

	logger.Info("Shipment deleted",
		zap.String("shipment_id", shipmentID.String()),
		zap.String("event", "shipment_deleted"),
	)

	return nil
}

// List shipments
func (s *Service) List(ctx context.Context, req *ShipmentFilterRequest) (*ShipmentListResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}

	start, err := billing.ParseDate(req.StartDate)
	if err != nil {
		return nil, appErrors.NewValidationError("INVALID_DATE", err.Error(), err)
	}
	end, err := billing.ParseDate(req.EndDate)
	if err != nil {
		return nil, appErrors.NewValidationError("INVALID_DATE", err.Error(), err)
	}
	period := billing.NormalizeRange(start, end)
	if err := period.Validate(); err != nil {
		return nil, appErrors.NewValidationError("INVALID_DATE_RANGE", err.Error(), err)
	}

	driverID, err := utils.ParseOptionalUUID(req.DriverID)
	if err != nil {
		return nil, appErrors.NewValidationError("INVALID_DRIVER_ID", "Invalid driver ID", err)
	}
	customerID, err := utils.ParseOptionalUUID(req.CustomerID)
	if err != nil {
		return nil, appErrors.NewValidationError("INVALID_CUSTOMER_ID", "Invalid customer ID", err)
	}
	invoiceID, err := utils.ParseOptionalUUID(req.InvoiceID)
	if err != nil {
		return nil, appErrors.NewValidationError("INVALID_INVOICE_ID", "Invalid invoice ID", err)
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	filter := &domainShipment.Filter{
		DriverID:     driverID,
		CustomerID:   customerID,
		InvoiceID:    invoiceID,
		Invoiced:     req.Invoiced,
		DeliveryFrom: period.Start,
		DeliveryTo:   period.End,
		Search:       req.Search,
		Page:         req.Page,
		PageSize:     req.PageSize,
		SortBy:       req.SortBy,
		SortOrder:    req.SortOrder,
	}
	if req.Status != nil {
		status := domainShipment.ShipmentStatus(*req.Status)
		filter.Status = &status
	}

	shipments, total, err := s.shipmentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*ShipmentResponse, len(shipments))
	for i, sh := range shipments {
		responses[i] = ToShipmentResponse(sh)
	}

	totalPages := int(total) / req.PageSize
	if int(total)%req.PageSize > 0 {
		totalPages++
	}

	return &ShipmentListResponse{
		Shipments:  responses,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *Service) getShipment(ctx context.Context, shipmentID uuid.UUID) (*domainShipment.Shipment, error) {
	shipment, err := s.shipmentRepo.GetByID(ctx, shipmentID)
	if errors.Is(err, domainShipment.ErrShipmentNotFound) {
		return nil, appErrors.NewNotFoundError("SHIPMENT_NOT_FOUND", "Shipment not found", err)
	}
	if err != nil {
		return nil, err
	}
	return shipment, nil
}

func (s *Service) mapWriteError(err error, shipment *domainShipment.Shipment) error {
	switch {
	case errors.Is(err, domainShipment.ErrShipmentNotFound):
		return appErrors.NewNotFoundError("SHIPMENT_NOT_FOUND", "Shipment not found", err)
	case appErrors.IsDuplicateKey(err):
		return appErrors.NewConflictError(
			"SHIPMENT_NUMBER_CONFLICT",
			fmt.Sprintf("Shipment number %s already exists", shipment.ShipmentNumber),
			err,
		)
	default:
		return err
	}
}

func validationError(err error) error {
	appErr := appErrors.NewValidationError("VALIDATION_ERROR", "Invalid input", err)
	for field, tag := range utils.ValidationDetails(err) {
		appErr.Details = append(appErr.Details, appErrors.Detail{Field: field, Reason: tag})
	}
	return appErr
}
