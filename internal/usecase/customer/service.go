package customer

import (
	"context"
	"errors"
	"strings"

	"freight-backoffice/internal/billing"
	domainCustomer "freight-backoffice/internal/domain/customer"
	domainInvoice "freight-backoffice/internal/domain/invoice"
	"freight-backoffice/internal/logger"
	appErrors "freight-backoffice/pkg/errors"
	"freight-backoffice/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	customerRepo domainCustomer.Repository
	invoiceRepo  domainInvoice.Repository
}

func NewService(customerRepo domainCustomer.Repository, invoiceRepo domainInvoice.Repository) *Service {
	return &Service{customerRepo: customerRepo, invoiceRepo: invoiceRepo}
}

func (s *Service) Create(ctx context.Context, req *CreateCustomerRequest) (*CustomerResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}

	c := &domainCustomer.Customer{
		Name:                     utils.SanitizeString(req.Name),
		Code:                     strings.ToUpper(strings.TrimSpace(req.Code)),
		Email:                    sanitizeEmail(req.Email),
		Phone:                    sanitizePhone(req.Phone),
		Address:                  sanitizeText(req.Address),
		DefaultFuelSurchargeRate: req.DefaultFuelSurchargeRate,
	}

	if err := s.customerRepo.Create(ctx, c); err != nil {
		return nil, mapWriteError(err)
	}

	logger.Info("Customer created",
		zap.String("customer_id", c.ID.String()),
		zap.String("code", c.Code),
		zap.String("event", "customer_created"),
	)

	return ToCustomerResponse(c), nil
}

func (s *Service) Get(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	c, err := s.getCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponse(c), nil
}

func (s *Service) Update(ctx context.Context, customerID uuid.UUID, req *UpdateCustomerRequest) (*CustomerResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}

	c, err := s.getCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = utils.SanitizeString(*req.Name)
	}
	if req.Code != nil {
		c.Code = strings.ToUpper(strings.TrimSpace(*req.Code))
	}
	if req.Email != nil {
		c.Email = sanitizeEmail(req.Email)
	}
	if req.Phone != nil {
		c.Phone = sanitizePhone(req.Phone)
	}
	if req.Address != nil {
		c.Address = sanitizeText(req.Address)
	}
	// existing invoices keep the rate they were created with
	if req.DefaultFuelSurchargeRate != nil {
		c.DefaultFuelSurchargeRate = *req.DefaultFuelSurchargeRate
	}

	if err := s.customerRepo.Update(ctx, c); err != nil {
		return nil, mapWriteError(err)
	}

	logger.Info("Customer updated",
		zap.String("customer_id", c.ID.String()),
		zap.String("event", "customer_updated"),
	)

	return ToCustomerResponse(c), nil
}

func (s *Service) Delete(ctx context.Context, customerID uuid.UUID) error {
	if err := s.customerRepo.Delete(ctx, customerID); err != nil {
		if errors.Is(err, domainCustomer.ErrCustomerNotFound) {
			return appErrors.NewNotFoundError("CUSTOMER_NOT_FOUND", "Customer not found", err)
		}
		return err
	}

	logger.Info("Customer deleted",
		zap.String("customer_id", customerID.String()),
		zap.String("event", "customer_deleted"),
	)
	return nil
}

func (s *Service) List(ctx context.Context, req *CustomerFilterRequest) (*CustomerListResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	customers, total, err := s.customerRepo.List(ctx, &domainCustomer.Filter{
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]*CustomerResponse, len(customers))
	for i, c := range customers {
		responses[i] = ToCustomerResponse(c)
	}

	totalPages := int(total) / req.PageSize
	if int(total)%req.PageSize > 0 {
		totalPages++
	}

	return &CustomerListResponse{
		Customers:  responses,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}

// Stats derives invoice totals for a customer. Nothing is cached.
func (s *Service) Stats(ctx context.Context, customerID uuid.UUID) (*domainCustomer.Stats, error) {
	if _, err := s.getCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	invoices, _, err := s.invoiceRepo.List(ctx, &domainInvoice.Filter{CustomerID: &customerID})
	if err != nil {
		return nil, err
	}

	revenue := make([]float64, 0, len(invoices))
	outstanding := make([]float64, 0, len(invoices))
	for _, inv := range invoices {
		if inv.Status != domainInvoice.StatusVoid {
			revenue = append(revenue, inv.TotalAmount)
		}
		if inv.Status.IsOutstanding() {
			outstanding = append(outstanding, inv.TotalAmount)
		}
	}

	return &domainCustomer.Stats{
		CustomerID:         customerID,
		TotalInvoices:      len(invoices),
		TotalRevenue:       billing.Sum(revenue...),
		OutstandingBalance: billing.Sum(outstanding...),
	}, nil
}

func (s *Service) getCustomer(ctx context.Context, customerID uuid.UUID) (*domainCustomer.Customer, error) {
	c, err := s.customerRepo.GetByID(ctx, customerID)
	if errors.Is(err, domainCustomer.ErrCustomerNotFound) {
		return nil, appErrors.NewNotFoundError("CUSTOMER_NOT_FOUND", "Customer not found", err)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func mapWriteError(err error) error {
	switch {
	case errors.Is(err, domainCustomer.ErrCustomerNotFound):
		return appErrors.NewNotFoundError("CUSTOMER_NOT_FOUND", "Customer not found", err)
	case appErrors.IsDuplicateKey(err):
		return appErrors.NewConflictError("CUSTOMER_CONFLICT", "Customer name or code is already in use", err)
	default:
		return err
	}
}

func sanitizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	v := utils.SanitizeEmail(*email)
	return &v
}

func sanitizePhone(phone *string) *string {
	if phone == nil {
		return nil
	}
	v := utils.SanitizePhone(*phone)
	return &v
}

func sanitizeText(text *string) *string {
	if text == nil {
		return nil
	}
	v := utils.SanitizeText(*text)
	return &v
}

func validationError(err error) error {
	appErr := appErrors.NewValidationError("VALIDATION_ERROR", "Invalid input", err)
	for field, tag := range utils.ValidationDetails(err) {
		appErr.Details = append(appErr.Details, appErrors.Detail{Field: field, Reason: tag})
	}
	return appErr
}
