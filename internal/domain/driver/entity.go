package driver

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Driver is a company driver paid a share of the commission base
type Driver struct {
	ID          uuid.UUID
	FirstName   string
	LastName    string
	EmployeeID  string
	Email       *string
	Phone       *string
	TruckNumber string
	// CommissionRate is a fraction in [0,1]; nil only on legacy records
	CommissionRate *float64
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (d *Driver) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

func (d *Driver) IsActive() bool {
	return d.Status == StatusActive
}
