package shipment

import "errors"

var (
	ErrShipmentNotFound        = errors.New("shipment not found")
	ErrShipmentAlreadyExists   = errors.New("shipment already exists")
	ErrInvalidStatus           = errors.New("invalid shipment status")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrShipmentInvoiced        = errors.New("shipment is linked to an invoice")
	ErrFreightCostMismatch     = errors.New("freight cost does not match rate and weight")
)
