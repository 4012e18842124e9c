package models

import (
	"time"

	"github.com/google/uuid"
)

type CustomerModel struct {
	ID                       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name                     string    `gorm:"type:varchar(200);not null"`
	Code                     string    `gorm:"type:varchar(20);not null;uniqueIndex:customers_code_key"`
	Email                    *string   `gorm:"type:varchar(255)"`
	Phone                    *string   `gorm:"type:varchar(30)"`
	Address                  *string   `gorm:"type:text"`
	DefaultFuelSurchargeRate float64   `gorm:"type:decimal(5,4);not null;default:0"`
	CreatedAt                time.Time `gorm:"not null"`
	UpdatedAt                time.Time `gorm:"not null"`
}

func (CustomerModel) TableName() string {
	return "customers"
}
