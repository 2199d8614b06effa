package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryRestock marks expenses generated automatically by a restock
// (cost of goods sold). User-entered expenses carry free-text categories.
const CategoryRestock = "CMV"

// Expense is an outflow entry in the financial ledger. Date is caller-supplied
// so back-dated and future-dated entries are valid.
type Expense struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Description string    `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Category    string          `gorm:"not null"`
	Date        time.Time       `gorm:"index;not null"`

	Company *Company `gorm:"foreignKey:CompanyID"`
}
