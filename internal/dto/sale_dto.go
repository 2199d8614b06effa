package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RecordSaleRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required"`
	Kind      string `json:"kind"       validate:"required,oneof=retail wholesale"`
}

type CheckoutItem struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required"`
}

type CheckoutRequest struct {
	Items         []CheckoutItem  `json:"items"          validate:"required,min=1,dive"`
	Kind          string          `json:"kind"           validate:"required,oneof=retail wholesale"`
	Discount      decimal.Decimal `json:"discount"`
	PaymentMethod string          `json:"payment_method" validate:"required"`
}

type SaleFilter struct {
	From  string `form:"from"`
	To    string `form:"to"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
	Kind        string          `json:"kind"`
	Date        time.Time       `json:"date"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// ReceiptLine is one printed row of a POS ticket.
type ReceiptLine struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Receipt is what the checkout returns and what the PDF renderer consumes:
// lines, discount, total, payment method label and timestamp.
type Receipt struct {
	ReceiptID     string          `json:"receipt_id"`
	Lines         []ReceiptLine   `json:"lines"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	Date          time.Time       `json:"date"`
}
