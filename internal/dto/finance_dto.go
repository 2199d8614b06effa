package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialsResponse is the raw range report: both slices are always present,
// empty when nothing matched, so downstream sums never special-case "no data".
type FinancialsResponse struct {
	Sales    []SaleResponse    `json:"sales"`
	Expenses []ExpenseResponse `json:"expenses"`
}

type TopProduct struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type DailyPoint struct {
	Day     time.Time       `json:"day"`
	Revenue decimal.Decimal `json:"revenue"`
	Expense decimal.Decimal `json:"expense"`
}

// SummaryResponse feeds the dashboard: headline totals plus the two
// single-pass aggregations (top products, daily evolution).
type SummaryResponse struct {
	Revenue      decimal.Decimal `json:"revenue"`
	ExpenseTotal decimal.Decimal `json:"expense_total"`
	Net          decimal.Decimal `json:"net"`
	SaleCount    int64           `json:"sale_count"`
	TopProducts  []TopProduct    `json:"top_products"`
	Evolution    []DailyPoint    `json:"evolution"`
}
