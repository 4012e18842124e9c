package invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freight-backoffice/internal/billing"
	domainCustomer "freight-backoffice/internal/domain/customer"
	domainInvoice "freight-backoffice/internal/domain/invoice"
	domainShipment "freight-backoffice/internal/domain/shipment"
	"freight-backoffice/internal/events"
	"freight-backoffice/internal/logger"
	appErrors "freight-backoffice/pkg/errors"
	"freight-backoffice/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	operationCreate = "create_invoice"
	operationDelete = "delete_invoice"

	stepCreateInvoice   = "create_invoice"
	stepLinkShipments   = "link_shipments"
	stepDeleteInvoice   = "delete_invoice"
	stepUnlinkShipments = "unlink_shipments"
)

// Service implements invoice use cases. Creation and deletion are two-step
// sagas over independent writes; see CreateFromShipments and Delete.
type Service struct {
	invoiceRepo  domainInvoice.Repository
	shipmentRepo domainShipment.Repository
	customerRepo domainCustomer.Repository
	numbers      NumberGenerator
	publisher    events.Publisher
	dueDays      int
	clock        func() time.Time
}

// NewService creates a new invoice service
func NewService(
	invoiceRepo domainInvoice.Repository,
	shipmentRepo domainShipment.Repository,
	customerRepo domainCustomer.Repository,
	numbers NumberGenerator,
	publisher events.Publisher,
	dueDays int,
) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		invoiceRepo:  invoiceRepo,
		shipmentRepo: shipmentRepo,
		customerRepo: customerRepo,
		numbers:      numbers,
		publisher:    publisher,
		dueDays:      dueDays,
		clock:        time.Now,
	}
}

// SetClock replaces the time source used for invoice and event dates.
func (s *Service) SetClock(clock func() time.Time) {
	s.clock = clock
}

// CreateFromShipments bills delivered shipments on a new invoice. Validation runs
// before any write. The invoice is stored first and the shipments are linked
// afterwards; if linking fails the invoice remains and a SagaError names it.
func (s *Service) CreateFromShipments(ctx context.Context, req *CreateInvoiceRequest) (*InvoiceResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}

	// Resolve customer
	cust, err := s.customerRepo.GetByID(ctx, req.CustomerID)
	if errors.Is(err, domainCustomer.ErrCustomerNotFound) {
		return nil, appErrors.NewNotFoundError("CUSTOMER_NOT_FOUND", "Customer not found", err)
	}
	if err != nil {
		return nil, err
	}

	// Check shipments
	found, err := s.shipmentRepo.GetByIDs(ctx, req.ShipmentIDs)
	if err != nil {
		return nil, err
	}
	shipments, err := CheckEligibility(req.ShipmentIDs, found, cust.ID)
	if err != nil {
		return nil, err
	}

	rate := cust.DefaultFuelSurchargeRate
	if req.FuelSurchargeRate != nil {
		rate = *req.FuelSurchargeRate
	}

	subTotal := billing.SubTotal(shipments)
	totals := billing.ComputeTotals(subTotal, rate, req.DepositAmount)

	number, err := s.numbers.Next(ctx)
	if err != nil {
		return nil, err
	}

	invoiceDate := s.clock().UTC()
	if req.InvoiceDate != nil {
		invoiceDate = req.InvoiceDate.UTC()
	}
	dueDate := req.DueDate
	if dueDate == nil && s.dueDays > 0 {
		d := invoiceDate.AddDate(0, 0, s.dueDays)
		dueDate = &d
	}

	ids := make([]uuid.UUID, len(shipments))
	for i, sh := range shipments {
		ids[i] = sh.ID
	}

	inv := &domainInvoice.Invoice{
		InvoiceNumber:       number,
		CustomerID:          cust.ID,
		ShipmentIDs:         ids,
		InvoiceDate:         invoiceDate,
		DueDate:             dueDate,
		SubTotal:            subTotal,
		FuelSurchargeRate:   rate,
		FuelSurchargeAmount: totals.FuelSurchargeAmount,
		DepositAmount:       req.DepositAmount,
		TotalAmount:         totals.TotalAmount,
		Status:              domainInvoice.StatusDraft,
		Notes:               req.Notes,
	}

	// Step 1: store the invoice
	if err := s.invoiceRepo.Create(ctx, inv); err != nil {
		if appErrors.IsDuplicateKey(err) {
			return nil, appErrors.NewConflictError(
				"INVOICE_NUMBER_CONFLICT",
				fmt.Sprintf("Invoice number %s is already in use, retry the request", number),
				err,
			)
		}
		return nil, err
	}

	// Step 2: link shipments to the stored invoice
	linked, err := s.shipmentRepo.LinkInvoice(ctx, ids, inv.ID)
	if err == nil && linked != int64(len(ids)) {
		err = fmt.Errorf("linked %d of %d shipments", linked, len(ids))
	}
	if err != nil {
		logger.Error("Invoice created but shipments not linked",
			zap.String("invoice_id", inv.ID.String()),
			zap.String("invoice_number", inv.InvoiceNumber),
			zap.Int64("linked", linked),
			zap.Int("expected", len(ids)),
			zap.Error(err),
			zap.String("event", "invoice_link_failed"),
		)
		return nil, &appErrors.SagaError{
			Operation: operationCreate,
			Step:      stepLinkShipments,
			Completed: []string{stepCreateInvoice},
			EntityID:  inv.ID.String(),
			Err:       err,
		}
	}

	logger.Info("Invoice created",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("customer_id", cust.ID.String()),
		zap.Int("shipments", len(ids)),
		zap.Float64("total_amount", inv.TotalAmount),
		zap.String("event", "invoice_created"),
	)

	resp := ToInvoiceResponse(inv)
	s.publish(ctx, events.TypeInvoiceCreated, resp)
	return resp, nil
}

// Delete removes the invoice, then releases its shipments for re-invoicing.
func (s *Service) Delete(ctx context.Context, invoiceID uuid.UUID) error {
	inv, err := s.getInvoice(ctx, invoiceID)
	if err != nil {
		return err
	}

	// Step 1: remove the invoice
	if err := s.invoiceRepo.Delete(ctx, inv.ID); err != nil {
		if errors.Is(err, domainInvoice.ErrInvoiceNotFound) {
			return appErrors.NewNotFoundError("INVOICE_NOT_FOUND", "Invoice not found", err)
		}
		return err
	}

	// Step 2: unlink shipments
	unlinked, err := s.shipmentRepo.UnlinkInvoice(ctx, inv.ID)
	if err != nil {
		logger.Error("Invoice deleted but shipments still linked",
			zap.String("invoice_id", inv.ID.String()),
			zap.Error(err),
			zap.String("event", "invoice_unlink_failed"),
		)
		return &appErrors.SagaError{
			Operation: operationDelete,
			Step:      stepUnlinkShipments,
			Completed: []string{stepDeleteInvoice},
			EntityID:  inv.ID.String(),
			Err:       err,
		}
	}

	logger.Info("Invoice deleted",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.Int64("shipments_unlinked", unlinked),
		zap.String("event", "invoice_deleted"),
	)

	s.publish(ctx, events.TypeInvoiceDeleted, ToInvoiceResponse(inv))
	return nil
}

// Update applies a partial change and re-derives totals before the single write.
func (s *Service) Update(ctx context.Context, invoiceID uuid.UUID, req *UpdateInvoiceRequest) (*InvoiceResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}

	inv, err := s.getInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if req.SubTotal != nil {
		inv.SubTotal = billing.Round2(*req.SubTotal)
	}
	if req.FuelSurchargeRate != nil {
		inv.FuelSurchargeRate = *req.FuelSurchargeRate
	}
	if req.DepositAmount != nil {
		inv.DepositAmount = *req.DepositAmount
	}
	if req.Status != nil {
		inv.Status = domainInvoice.InvoiceStatus(*req.Status)
	}
	if req.DueDate != nil {
		d := req.DueDate.UTC()
		inv.DueDate = &d
	}
	if req.Notes != nil {
		inv.Notes = req.Notes
	}

	totals := billing.ComputeTotals(inv.SubTotal, inv.FuelSurchargeRate, inv.DepositAmount)
	inv.FuelSurchargeAmount = totals.FuelSurchargeAmount
	inv.TotalAmount = totals.TotalAmount

	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		if errors.Is(err, domainInvoice.ErrInvoiceNotFound) {
			return nil, appErrors.NewNotFoundError("INVOICE_NOT_FOUND", "Invoice not found", err)
		}
		return nil, err
	}

	logger.Info("Invoice updated",
		zap.String("invoice_id", inv.ID.String()),
		zap.Float64("total_amount", inv.TotalAmount),
		zap.String("status", string(inv.Status)),
		zap.String("event", "invoice_updated"),
	)

	return ToInvoiceResponse(inv), nil
}

// Get invoice
func (s *Service) Get(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.getInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

func (s *Service) GetByNumber(ctx context.Context, invoiceNumber string) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.GetByNumber(ctx, invoiceNumber)
	if errors.Is(err, domainInvoice.ErrInvoiceNotFound) {
		return nil, appErrors.NewNotFoundError("INVOICE_NOT_FOUND", "Invoice not found", err)
	}
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

// List invoices
func (s *Service) List(ctx context.Context, req *InvoiceFilterRequest) (*InvoiceListResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}

	customerID, err := utils.ParseOptionalUUID(req.CustomerID)
	if err != nil {
		return nil, appErrors.NewValidationError("INVALID_CUSTOMER_ID", "Invalid customer ID", err)
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	filter := &domainInvoice.Filter{
		CustomerID: customerID,
		Page:       req.Page,
		PageSize:   req.PageSize,
		SortOrder:  req.SortOrder,
	}
	if req.Status != nil {
		status := domainInvoice.InvoiceStatus(*req.Status)
		filter.Status = &status
	}

	invoices, total, err := s.invoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		responses[i] = ToInvoiceResponse(inv)
	}

	totalPages := int(total) / req.PageSize
	if int(total)%req.PageSize > 0 {
		totalPages++
	}

	return &InvoiceListResponse{
		Invoices:   responses,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}

// PreviewNextNumber reports the number the scan rule would produce now. It does
// not reserve anything.
func (s *Service) PreviewNextNumber(ctx context.Context) (*NextNumberResponse, error) {
	number, err := NewScanNumberGenerator(s.invoiceRepo, s.clock).Next(ctx)
	if err != nil {
		return nil, err
	}
	return &NextNumberResponse{InvoiceNumber: number}, nil
}

func (s *Service) getInvoice(ctx context.Context, invoiceID uuid.UUID) (*domainInvoice.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if errors.Is(err, domainInvoice.ErrInvoiceNotFound) {
		return nil, appErrors.NewNotFoundError("INVOICE_NOT_FOUND", "Invoice not found", err)
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *Service) publish(ctx context.Context, eventType string, payload interface{}) {
	event := events.Event{Type: eventType, OccurredAt: s.clock().UTC(), Payload: payload}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish invoice event",
			zap.String("type", eventType),
			zap.Error(err),
		)
	}
}

func validationError(err error) error {
	appErr := appErrors.NewValidationError("VALIDATION_ERROR", "Invalid input", err)
	for field, tag := range utils.ValidationDetails(err) {
		appErr.Details = append(appErr.Details, appErrors.Detail{Field: field, Reason: tag})
	}
	return appErr
}
