package reporting

import (
	"context"
	"errors"
	"time"

	"freight-backoffice/internal/billing"
	domainCustomer "freight-backoffice/internal/domain/customer"
	domainDriver "freight-backoffice/internal/domain/driver"
	domainInvoice "freight-backoffice/internal/domain/invoice"
	domainShipment "freight-backoffice/internal/domain/shipment"
	"freight-backoffice/internal/logger"
	"freight-backoffice/internal/report"
	"freight-backoffice/internal/report/render"
	appErrors "freight-backoffice/pkg/errors"
	"freight-backoffice/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const unknownCustomer = "Unknown Customer"

// Service assembles reports. It only reads from the store.
type Service struct {
	shipmentRepo domainShipment.Repository
	driverRepo   domainDriver.Repository
	customerRepo domainCustomer.Repository
	invoiceRepo  domainInvoice.Repository
	issuer       string
	page         report.PageSpec
	now          func() time.Time
}

func NewService(
	shipmentRepo domainShipment.Repository,
	driverRepo domainDriver.Repository,
	customerRepo domainCustomer.Repository,
	invoiceRepo domainInvoice.Repository,
	issuer string,
) *Service {
	return &Service{
		shipmentRepo: shipmentRepo,
		driverRepo:   driverRepo,
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		issuer:       issuer,
		page:         report.LetterLandscape(),
		now:          time.Now,
	}
}

func (s *Service) SetClock(clock func() time.Time) {
	s.now = clock
}

// CommissionReport covers delivered shipments in the period, optionally for one
// driver. Shipments without a driver or a driver rate are left out.
func (s *Service) CommissionReport(ctx context.Context, req *CommissionReportRequest) (*report.Report, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError("VALIDATION_ERROR", "Invalid input", err)
	}

	period, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	driverID, err := utils.ParseOptionalUUID(req.DriverID)
	if err != nil {
		return nil, appErrors.NewValidationError("INVALID_DRIVER_ID", "Invalid driver ID", err)
	}

	entityName := "All Drivers"
	if driverID != nil {
		d, err := s.driverRepo.GetByID(ctx, *driverID)
		if errors.Is(err, domainDriver.ErrDriverNotFound) {
			return nil, appErrors.NewNotFoundError("DRIVER_NOT_FOUND", "Driver not found", err)
		}
		if err != nil {
			return nil, err
		}
		entityName = d.FullName()
	}

	delivered := domainShipment.StatusDelivered
	shipments, _, err := s.shipmentRepo.List(ctx, &domainShipment.Filter{
		Status:       &delivered,
		DriverID:     driverID,
		DeliveryFrom: period.Start,
		DeliveryTo:   period.End,
	})
	if err != nil {
		return nil, err
	}

	inputs, err := s.commissionInputs(ctx, shipments)
	if err != nil {
		return nil, err
	}

	summary := billing.CalculateCommissions(inputs)
	r := report.BuildCommissionReport(summary, entityName, period, s.now().UTC())
	r.Issuer = s.issuer

	logger.Info("Commission report generated",
		zap.String("entity", entityName),
		zap.Int("lines", summary.LineCount),
		zap.Int("excluded", summary.Excluded),
		zap.String("event", "commission_report_generated"),
	)

	return r, nil
}

// commissionInputs resolves drivers and customers with one lookup each.
func (s *Service) commissionInputs(ctx context.Context, shipments []*domainShipment.Shipment) ([]billing.CommissionInput, error) {
	driverIDs := make([]uuid.UUID, 0)
	customerIDs := make([]uuid.UUID, 0)
	seen := make(map[uuid.UUID]bool)
	for _, sh := range shipments {
		if sh.DriverID != nil && !seen[*sh.DriverID] {
			seen[*sh.DriverID] = true
			driverIDs = append(driverIDs, *sh.DriverID)
		}
		if !seen[sh.CustomerID] {
			seen[sh.CustomerID] = true
			customerIDs = append(customerIDs, sh.CustomerID)
		}
	}

	drivers, err := s.driverRepo.GetByIDs(ctx, driverIDs)
	if err != nil {
		return nil, err
	}
	customers, err := s.customerRepo.GetByIDs(ctx, customerIDs)
	if err != nil {
		return nil, err
	}

	driverByID := make(map[uuid.UUID]*domainDriver.Driver, len(drivers))
	for _, d := range drivers {
		driverByID[d.ID] = d
	}
	customerName := make(map[uuid.UUID]string, len(customers))
	for _, c := range customers {
		customerName[c.ID] = c.Name
	}

	inputs := make([]billing.CommissionInput, len(shipments))
	for i, sh := range shipments {
		in := billing.CommissionInput{Shipment: sh, CustomerName: unknownCustomer}
		if sh.DriverID != nil {
			in.Driver = driverByID[*sh.DriverID]
		}
		if name, ok := customerName[sh.CustomerID]; ok {
			in.CustomerName = name
		}
		inputs[i] = in
	}
	return inputs, nil
}

// InvoiceReport prints one invoice with its shipments in invoice order.
func (s *Service) InvoiceReport(ctx context.Context, invoiceID uuid.UUID) (*report.Report, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if errors.Is(err, domainInvoice.ErrInvoiceNotFound) {
		return nil, appErrors.NewNotFoundError("INVOICE_NOT_FOUND", "Invoice not found", err)
	}
	if err != nil {
		return nil, err
	}

	cust, err := s.customerRepo.GetByID(ctx, inv.CustomerID)
	if err != nil && !errors.Is(err, domainCustomer.ErrCustomerNotFound) {
		return nil, err
	}

	shipments, err := s.shipmentRepo.GetByIDs(ctx, inv.ShipmentIDs)
	if err != nil {
		return nil, err
	}

	r := report.BuildInvoiceReport(inv, cust, shipments, s.now().UTC())
	r.Issuer = s.issuer

	logger.Info("Invoice report generated",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("event", "invoice_report_generated"),
	)

	return r, nil
}

// Render turns a report into a PDF or XLSX document.
func (s *Service) Render(r *report.Report, format render.Format) (*render.Document, error) {
	doc, err := render.Render(r, format, s.page)
	if err != nil {
		return nil, appErrors.NewInternalError("RENDER_FAILED", "Failed to render report", err)
	}
	return doc, nil
}

func parsePeriod(startDate, endDate string) (billing.DateRange, error) {
	start, err := billing.ParseDate(startDate)
	if err != nil {
		return billing.DateRange{}, appErrors.NewValidationError("INVALID_DATE", err.Error(), err)
	}
	end, err := billing.ParseDate(endDate)
	if err != nil {
		return billing.DateRange{}, appErrors.NewValidationError("INVALID_DATE", err.Error(), err)
	}
	period := billing.NormalizeRange(start, end)
	if err := period.Validate(); err != nil {
		return billing.DateRange{}, appErrors.NewValidationError("INVALID_DATE_RANGE", err.Error(), err)
	}
	return period, nil
}
