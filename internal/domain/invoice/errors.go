package invoice

import "errors"

var (
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrInvoiceNumberTaken   = errors.New("invoice number already exists")
	ErrInvalidStatus        = errors.New("invalid invoice status")
	ErrNoShipments          = errors.New("at least one shipment is required")
	ErrShipmentNotEligible  = errors.New("shipment is not eligible for invoicing")
	ErrInvalidSurchargeRate = errors.New("fuel surcharge rate must be between 0 and 1")
	ErrNegativeDeposit      = errors.New("deposit amount cannot be negative")
)
