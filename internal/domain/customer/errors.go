package customer

import "errors"

var (
	ErrCustomerNotFound      = errors.New("customer not found")
	ErrCustomerAlreadyExists = errors.New("customer already exists")
	ErrInvalidSurchargeRate  = errors.New("fuel surcharge rate must be between 0 and 1")
)
