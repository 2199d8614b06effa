package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is tenant-scoped inventory. SKU is unique within a company but may
// repeat across companies. Stock starts at zero and changes only through
// restocks (up) and sales (down) — never below zero.
type Product struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_company_sku"`
	SKU            string    `gorm:"column:sku;not null;uniqueIndex:idx_company_sku"`
	Name           string    `gorm:"index;not null"`
	Category       string    `gorm:"not null;default:'Geral'"`
	PriceRetail    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PriceWholesale decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock          int             `gorm:"not null;default:0"`
	StockMin       int             `gorm:"not null;default:5"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Company *Company `gorm:"foreignKey:CompanyID"`
}
