package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleKind selects which stored price is charged.
type SaleKind string

const (
	KindRetail    SaleKind = "retail"
	KindWholesale SaleKind = "wholesale"
)

func (k SaleKind) Valid() bool { return k == KindRetail || k == KindWholesale }

// Sale is append-only: inserted once, never updated or deleted. Price is the
// unit price captured at sale time — later catalog price edits do not touch it.
// The RESTRICT constraint blocks deleting a product that has sales.
type Sale struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	Quantity  int       `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Kind      SaleKind        `gorm:"type:varchar(20);not null"`
	Date      time.Time       `gorm:"index;not null"`

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
}
