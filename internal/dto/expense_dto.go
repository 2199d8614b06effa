package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type AddExpenseRequest struct {
	Description string          `json:"description" validate:"required,min=1,max=200"`
	Amount      decimal.Decimal `json:"amount"      validate:"required"`
	Category    string          `json:"category"    validate:"required,min=1,max=60"`
	// Date may be back-dated or future-dated for the fiscal calendar.
	Date time.Time `json:"date" validate:"required"`
}

type ExpenseFilter struct {
	From     string `form:"from"`
	To       string `form:"to"`
	Category string `form:"category"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ExpenseResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
}

type ExpenseListResponse struct {
	Data  []ExpenseResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
