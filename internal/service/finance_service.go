package service

import (
	"context"
	"time"

	"github.com/peegflow-code/PeegFlow-Piloto/internal/apierror"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/dto"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FinanceService is read-only: range reports and dashboard aggregations over
// the sale and expense ledgers.
type FinanceService interface {
	GetFinancials(ctx context.Context, companyID uuid.UUID, start, end time.Time) (*dto.FinancialsResponse, error)
	GetSummary(ctx context.Context, companyID uuid.UUID, start, end time.Time) (*dto.SummaryResponse, error)
}

type financeService struct {
	sales    repository.SaleRepository
	expenses repository.ExpenseRepository
}

func NewFinanceService(sales repository.SaleRepository, expenses repository.ExpenseRepository) FinanceService {
	return &financeService{sales: sales, expenses: expenses}
}

// GetFinancials returns sales and expenses in the inclusive range. Sale rows
// carry the product's *current* name (a live join, not a snapshot): renaming a
// product renames it in historical reports too. The captured price is
// immutable. Both slices are empty, never nil, when nothing matched.
func (s *financeService) GetFinancials(ctx context.Context, companyID uuid.UUID, start, end time.Time) (*dto.FinancialsResponse, error) {
	if start.After(end) {
		return nil, apierror.Validation("start_date", "data inicial posterior à final")
	}

	sales, err := s.sales.ListByRange(ctx, companyID, start, end)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.ListByRange(ctx, companyID, start, end)
	if err != nil {
		return nil, err
	}

	resp := &dto.FinancialsResponse{
		Sales:    make([]dto.SaleResponse, 0, len(sales)),
		Expenses: make([]dto.ExpenseResponse, 0, len(expenses)),
	}
	for i := range sales {
		resp.Sales = append(resp.Sales, *saleToResponse(&sales[i]))
	}
	for i := range expenses {
		resp.Expenses = append(resp.Expenses, *expenseToResponse(&expenses[i]))
	}
	return resp, nil
}

func (s *financeService) GetSummary(ctx context.Context, companyID uuid.UUID, start, end time.Time) (*dto.SummaryResponse, error) {
	if start.After(end) {
		return nil, apierror.Validation("start_date", "data inicial posterior à final")
	}

	revenue, saleCount, err := s.sales.Revenue(ctx, companyID, start, end)
	if err != nil {
		return nil, err
	}
	expenseTotal, err := s.expenses.Total(ctx, companyID, start, end)
	if err != nil {
		return nil, err
	}
	top, err := s.sales.TopProducts(ctx, companyID, start, end, 5)
	if err != nil {
		return nil, err
	}
	revByDay, err := s.sales.RevenueByDay(ctx, companyID, start, end)
	if err != nil {
		return nil, err
	}
	expByDay, err := s.expenses.TotalByDay(ctx, companyID, start, end)
	if err != nil {
		return nil, err
	}

	if top == nil {
		top = []dto.TopProduct{}
	}

	evolution := make([]dto.DailyPoint, 0)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		rev, hasRev := revByDay[key]
		exp, hasExp := expByDay[key]
		if !hasRev && !hasExp {
			continue
		}
		if !hasRev {
			rev = decimal.Zero
		}
		if !hasExp {
			exp = decimal.Zero
		}
		evolution = append(evolution, dto.DailyPoint{Day: day, Revenue: rev, Expense: exp})
	}

	return &dto.SummaryResponse{
		Revenue:      revenue,
		ExpenseTotal: expenseTotal,
		Net:          revenue.Sub(expenseTotal),
		SaleCount:    saleCount,
		TopProducts:  top,
		Evolution:    evolution,
	}, nil
}
