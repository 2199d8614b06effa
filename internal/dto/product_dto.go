package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegisterProductRequest struct {
	SKU            string          `json:"sku"             validate:"required,min=1,max=60"`
	Name           string          `json:"name"            validate:"required,min=1,max=120"`
	Category       string          `json:"category"`
	PriceRetail    decimal.Decimal `json:"price_retail"    validate:"required"`
	PriceWholesale decimal.Decimal `json:"price_wholesale"`
	StockMin       int             `json:"stock_min"       validate:"min=0"`
}

type UpdateProductRequest struct {
	SKU            *string          `json:"sku"             validate:"omitempty,min=1,max=60"`
	Name           *string          `json:"name"            validate:"omitempty,min=1,max=120"`
	Category       *string          `json:"category"`
	PriceRetail    *decimal.Decimal `json:"price_retail"`
	PriceWholesale *decimal.Decimal `json:"price_wholesale"`
	StockMin       *int             `json:"stock_min"       validate:"omitempty,min=0"`
}

type RestockRequest struct {
	Quantity int             `json:"quantity"  validate:"required"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	SKU      string `form:"sku"`
	Name     string `form:"name"`
	Category string `form:"category"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID             string          `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	PriceRetail    decimal.Decimal `json:"price_retail"`
	PriceWholesale decimal.Decimal `json:"price_wholesale"`
	Stock          int             `json:"stock"`
	StockMin       int             `json:"stock_min"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type RestockResponse struct {
	ProductID   string          `json:"product_id"`
	Stock       int             `json:"stock"`
	ExpenseID   string          `json:"expense_id"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	Description string          `json:"description"`
}
