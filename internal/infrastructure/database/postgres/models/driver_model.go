package models

import (
	"time"

	"github.com/google/uuid"
)

type DriverModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	FirstName      string    `gorm:"type:varchar(100);not null"`
	LastName       string    `gorm:"type:varchar(100);not null"`
	EmployeeID     string    `gorm:"type:varchar(50);not null;uniqueIndex:drivers_employee_id_key"`
	Email          *string   `gorm:"type:varchar(255)"`
	Phone          *string   `gorm:"type:varchar(30)"`
	TruckNumber    string    `gorm:"type:varchar(50)"`
	CommissionRate *float64  `gorm:"type:decimal(5,4);check:commission_rate >= 0 AND commission_rate <= 1"`
	Status         string    `gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (DriverModel) TableName() string {
	return "drivers"
}
