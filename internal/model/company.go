package model

import (
	"time"

	"github.com/google/uuid"
)

// Company is the tenant: every user, product, sale and expense belongs to
// exactly one. Deleting a company cascades to everything it owns.
type Company struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string    `gorm:"index;not null"`
	LicenseKey *string
	Active     bool `gorm:"not null;default:true"`
	CreatedAt  time.Time

	Users    []User    `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	Products []Product `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	Expenses []Expense `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
}
