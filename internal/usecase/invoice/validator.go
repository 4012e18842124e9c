package invoice

import (
	"fmt"

	domainShipment "freight-backoffice/internal/domain/shipment"
	appErrors "freight-backoffice/pkg/errors"

	"github.com/google/uuid"
)

// CheckEligibility returns the requested shipments in request order, or a
// ValidationError listing every shipment that cannot be invoiced.
func CheckEligibility(
	requested []uuid.UUID,
	found []*domainShipment.Shipment,
	customerID uuid.UUID,
) ([]*domainShipment.Shipment, error) {
	byID := make(map[uuid.UUID]*domainShipment.Shipment, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	var details []appErrors.Detail
	seen := make(map[uuid.UUID]bool, len(requested))
	ordered := make([]*domainShipment.Shipment, 0, len(requested))

	for _, id := range requested {
		if seen[id] {
			details = append(details, appErrors.Detail{ID: id.String(), Reason: "listed more than once"})
			continue
		}
		seen[id] = true

		s, ok := byID[id]
		switch {
		case !ok:
			details = append(details, appErrors.Detail{ID: id.String(), Reason: "shipment not found"})
		case s.Status != domainShipment.StatusDelivered:
			details = append(details, appErrors.Detail{
				ID:     id.String(),
				Reason: fmt.Sprintf("shipment %s is %s, not delivered", s.ShipmentNumber, s.Status),
			})
		case s.InvoiceID != nil:
			details = append(details, appErrors.Detail{
				ID:     id.String(),
				Reason: fmt.Sprintf("shipment %s is already invoiced", s.ShipmentNumber),
			})
		case s.CustomerID != customerID:
			details = append(details, appErrors.Detail{
				ID:     id.String(),
				Reason: fmt.Sprintf("shipment %s belongs to another customer", s.ShipmentNumber),
			})
		default:
			ordered = append(ordered, s)
		}
	}

	if len(details) > 0 {
		return nil, appErrors.NewValidationError(
			"SHIPMENTS_NOT_ELIGIBLE",
			"One or more shipments cannot be invoiced",
			nil,
		).WithDetails(details...)
	}

	return ordered, nil
}
