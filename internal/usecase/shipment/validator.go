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
	appErrors "freight-backoffice/pkg/errors"

	"github.com/google/uuid"
)

var validTransitions = map[domainShipment.ShipmentStatus][]domainShipment.ShipmentStatus{
	domainShipment.StatusPending: {
		domainShipment.StatusAssigned,
		domainShipment.StatusCancelled,
		domainShipment.StatusOnHold,
	},
	domainShipment.StatusAssigned: {
		domainShipment.StatusInTransit,
		domainShipment.StatusPending,
		domainShipment.StatusCancelled,
		domainShipment.StatusOnHold,
	},
	domainShipment.StatusInTransit: {
		domainShipment.StatusDelivered,
		domainShipment.StatusDelayed,
		domainShipment.StatusOnHold,
	},
	domainShipment.StatusDelayed: {
		domainShipment.StatusInTransit,
		domainShipment.StatusDelivered,
		domainShipment.StatusCancelled,
		domainShipment.StatusOnHold,
	},
	domainShipment.StatusOnHold: {
		domainShipment.StatusPending,
		domainShipment.StatusAssigned,
		domainShipment.StatusInTransit,
		domainShipment.StatusCancelled,
	},
	domainShipment.StatusDelivered: {
		// Terminal state - no transitions
	},
	domainShipment.StatusCancelled: {
		// Terminal state - no transitions
	},
}

// ValidateStatusTransition checks if status transition is allowed
func ValidateStatusTransition(currentStatus, newStatus domainShipment.ShipmentStatus) error {
	allowedStatuses, exists := validTransitions[currentStatus]
	if !exists {
		return appErrors.NewValidationError(
			"INVALID_STATUS",
			fmt.Sprintf("Unknown current status: %s", currentStatus),
			domainShipment.ErrInvalidStatus,
		)
	}

	for _, allowed := range allowedStatuses {
		if newStatus == allowed {
			return nil
		}
	}

	return appErrors.NewValidationError(
		"INVALID_TRANSITION",
		fmt.Sprintf("Cannot transition from %s to %s", currentStatus, newStatus),
		domainShipment.ErrInvalidStatusTransition,
	)
}

// GetAllowedTransitions returns allowed next statuses
func GetAllowedTransitions(currentStatus domainShipment.ShipmentStatus) []domainShipment.ShipmentStatus {
	return validTransitions[currentStatus]
}

// ResolveFreightCost derives the freight cost when it is missing and validates it
// otherwise. A supplied value is never replaced.
func ResolveFreightCost(supplied *float64, rate, weight float64) (float64, error) {
	if supplied == nil {
		return billing.FreightCost(rate, weight), nil
	}
	if !billing.FreightCostMatches(*supplied, rate, weight) {
		return 0, appErrors.NewValidationError(
			"FREIGHT_COST_MISMATCH",
			fmt.Sprintf("Freight cost %.2f does not match rate x weight/2000 = %.2f",
				*supplied, billing.FreightCost(rate, weight)),
			domainShipment.ErrFreightCostMismatch,
		)
	}
	return billing.Round2(*supplied), nil
}

// ValidateDriver requires the referenced driver to exist and be active
func ValidateDriver(ctx context.Context, driverRepo domainDriver.Repository, driverID *uuid.UUID) error {
	if driverID == nil {
		return nil
	}

	d, err := driverRepo.GetByID(ctx, *driverID)
	if errors.Is(err, domainDriver.ErrDriverNotFound) {
		return appErrors.NewNotFoundError("DRIVER_NOT_FOUND", "Driver not found", err)
	}
	if err != nil {
		return err
	}
	if !d.IsActive() {
		return appErrors.NewValidationError("DRIVER_INACTIVE", "Driver is not active", domainDriver.ErrDriverInactive)
	}

	return nil
}

// ValidateCustomer requires the referenced customer to exist
func ValidateCustomer(ctx context.Context, customerRepo domainCustomer.Repository, customerID uuid.UUID) error {
	_, err := customerRepo.GetByID(ctx, customerID)
	if errors.Is(err, domainCustomer.ErrCustomerNotFound) {
		return appErrors.NewNotFoundError("CUSTOMER_NOT_FOUND", "Customer not found", err)
	}
	return err
}

// ValidateTimeRange validates pickup and delivery times
func ValidateTimeRange(pickupTime time.Time, deliveryTime *time.Time) error {
	if deliveryTime == nil || pickupTime.IsZero() {
		return nil
	}

	if deliveryTime.Before(pickupTime) {
		return appErrors.NewValidationError("INVALID_TIME", "Delivery date must be after pickup date", nil)
	}

	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
