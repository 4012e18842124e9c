package driver

import "errors"

var (
	ErrDriverNotFound         = errors.New("driver not found")
	ErrDriverAlreadyExists    = errors.New("driver already exists")
	ErrDriverInactive         = errors.New("driver is inactive")
	ErrInvalidCommissionRate  = errors.New("commission rate must be between 0 and 1")
	ErrCommissionRateRequired = errors.New("commission rate is required")
)
