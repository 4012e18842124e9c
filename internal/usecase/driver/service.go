package driver

import (
	"context"
	"errors"
	"fmt"

	domainDriver "freight-backoffice/internal/domain/driver"
	"freight-backoffice/internal/logger"
	appErrors "freight-backoffice/pkg/errors"
	"freight-backoffice/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	driverRepo domainDriver.Repository
}

func NewService(driverRepo domainDriver.Repository) *Service {
	return &Service{driverRepo: driverRepo}
}

func (s *Service) Create(ctx context.Context, req *CreateDriverRequest) (*DriverResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}

	d := &domainDriver.Driver{
		FirstName:      utils.SanitizeString(req.FirstName),
		LastName:       utils.SanitizeString(req.LastName),
		EmployeeID:     utils.SanitizeString(req.EmployeeID),
		Email:          sanitizeEmail(req.Email),
		Phone:          sanitizePhone(req.Phone),
		TruckNumber:    utils.SanitizeString(req.TruckNumber),
		CommissionRate: req.CommissionRate,
		Status:         domainDriver.StatusActive,
	}

	if err := s.driverRepo.Create(ctx, d); err != nil {
		return nil, mapWriteError(err, d)
	}

	logger.Info("Driver created",
		zap.String("driver_id", d.ID.String()),
		zap.String("employee_id", d.EmployeeID),
		zap.String("event", "driver_created"),
	)

	return ToDriverResponse(d), nil
}

func (s *Service) Get(ctx context.Context, driverID uuid.UUID) (*DriverResponse, error) {
	d, err := s.getDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}
	return ToDriverResponse(d), nil
}

func (s *Service) Update(ctx context.Context, driverID uuid.UUID, req *UpdateDriverRequest) (*DriverResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}

	d, err := s.getDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		d.FirstName = utils.SanitizeString(*req.FirstName)
	}
	if req.LastName != nil {
		d.LastName = utils.SanitizeString(*req.LastName)
	}
	if req.EmployeeID != nil {
		d.EmployeeID = utils.SanitizeString(*req.EmployeeID)
	}
	if req.Email != nil {
		d.Email = sanitizeEmail(req.Email)
	}
	if req.Phone != nil {
		d.Phone = sanitizePhone(req.Phone)
	}
	if req.TruckNumber != nil {
		d.TruckNumber = utils.SanitizeString(*req.TruckNumber)
	}
	if req.CommissionRate != nil {
		d.CommissionRate = req.CommissionRate
	}
	if req.Status != nil {
		d.Status = domainDriver.Status(*req.Status)
	}

	// legacy rows without a rate must be given one before they can be saved
	if d.CommissionRate == nil {
		return nil, appErrors.NewValidationError(
			"COMMISSION_RATE_REQUIRED",
			"Commission rate is required",
			domainDriver.ErrCommissionRateRequired,
		)
	}

	if err := s.driverRepo.Update(ctx, d); err != nil {
		return nil, mapWriteError(err, d)
	}

	logger.Info("Driver updated",
		zap.String("driver_id", d.ID.String()),
		zap.String("event", "driver_updated"),
	)

	return ToDriverResponse(d), nil
}

func (s *Service) Delete(ctx context.Context, driverID uuid.UUID) error {
	if err := s.driverRepo.Delete(ctx, driverID); err != nil {
		if errors.Is(err, domainDriver.ErrDriverNotFound) {
			return appErrors.NewNotFoundError("DRIVER_NOT_FOUND", "Driver not found", err)
		}
		return err
	}

	logger.Info("Driver deleted",
		zap.String("driver_id", driverID.String()),
		zap.String("event", "driver_deleted"),
	)
	return nil
}

func (s *Service) List(ctx context.Context, req *DriverFilterRequest) (*DriverListResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	filter := &domainDriver.Filter{
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.Status != nil {
		status := domainDriver.Status(*req.Status)
		filter.Status = &status
	}

	drivers, total, err := s.driverRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*DriverResponse, len(drivers))
	for i, d := range drivers {
		responses[i] = ToDriverResponse(d)
	}

	totalPages := int(total) / req.PageSize
	if int(total)%req.PageSize > 0 {
		totalPages++
	}

	return &DriverListResponse{
		Drivers:    responses,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *Service) getDriver(ctx context.Context, driverID uuid.UUID) (*domainDriver.Driver, error) {
	d, err := s.driverRepo.GetByID(ctx, driverID)
	if errors.Is(err, domainDriver.ErrDriverNotFound) {
		return nil, appErrors.NewNotFoundError("DRIVER_NOT_FOUND", "Driver not found", err)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func mapWriteError(err error, d *domainDriver.Driver) error {
	switch {
	case errors.Is(err, domainDriver.ErrDriverNotFound):
		return appErrors.NewNotFoundError("DRIVER_NOT_FOUND", "Driver not found", err)
	case appErrors.IsDuplicateKey(err):
		return appErrors.NewConflictError(
			"EMPLOYEE_ID_CONFLICT",
			fmt.Sprintf("Employee ID %s is already in use", d.EmployeeID),
			err,
		)
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

func validationError(err error) error {
	appErr := appErrors.NewValidationError("VALIDATION_ERROR", "Invalid input", err)
	for field, tag := range utils.ValidationDetails(err) {
		appErr.Details = append(appErr.Details, appErrors.Detail{Field: field, Reason: tag})
	}
	return appErr
}
