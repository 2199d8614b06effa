package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/peegflow-code/PeegFlow-Piloto/internal/apierror"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/dto"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/model"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExpenseService is the stock ledger's writer on the inflow side (restocks)
// and the keeper of the expense ledger. A restock is one transaction:
// stock increment plus the auto-generated cost-of-goods expense.
type ExpenseService interface {
	Restock(ctx context.Context, companyID, productID uuid.UUID, req dto.RestockRequest) (*dto.RestockResponse, error)
	Add(ctx context.Context, companyID uuid.UUID, req dto.AddExpenseRequest) (*dto.ExpenseResponse, error)
	List(ctx context.Context, companyID uuid.UUID, filter dto.ExpenseFilter) (*dto.ExpenseListResponse, error)
}

type expenseService struct {
	expenses repository.ExpenseRepository
	products repository.ProductRepository
}

func NewExpenseService(expenses repository.ExpenseRepository, products repository.ProductRepository) ExpenseService {
	return &expenseService{expenses: expenses, products: products}
}

func (s *expenseService) Restock(ctx context.Context, companyID, productID uuid.UUID, req dto.RestockRequest) (*dto.RestockResponse, error) {
	p, err := s.products.FindByID(ctx, companyID, productID)
	if err != nil {
		return nil, apierror.NotFound("produto")
	}
	if req.Quantity <= 0 {
		return nil, apierror.Validation("quantity", "quantidade deve ser positiva")
	}
	if req.UnitCost.IsNegative() {
		return nil, apierror.Validation("unit_cost", "custo não pode ser negativo")
	}

	totalCost := req.UnitCost.Mul(decimal.NewFromInt(int64(req.Quantity)))
	description := fmt.Sprintf("Reposição Estoque: %s (%dx R$ %s)",
		p.Name, req.Quantity, req.UnitCost.StringFixed(2))

	expense := model.Expense{
		CompanyID:   companyID,
		Description: description,
		Category:    model.CategoryRestock,
		Amount:      totalCost,
		Date:        time.Now().UTC(),
	}

	txErr := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		if err := s.products.IncrementStockTx(tx, companyID, productID, req.Quantity); err != nil {
			return err
		}
		return s.expenses.CreateTx(tx, &expense)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Re-read after commit: a sale may have moved stock since the first read.
	stock := p.Stock + req.Quantity
	if cur, err := s.products.FindByID(ctx, companyID, productID); err == nil {
		stock = cur.Stock
	}

	return &dto.RestockResponse{
		ProductID:   productID.String(),
		Stock:       stock,
		ExpenseID:   expense.ID.String(),
		TotalCost:   totalCost,
		Description: description,
	}, nil
}

func (s *expenseService) Add(ctx context.Context, companyID uuid.UUID, req dto.AddExpenseRequest) (*dto.ExpenseResponse, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, apierror.Validation("description", "descrição é obrigatória")
	}
	if !req.Amount.IsPositive() {
		return nil, apierror.Validation("amount", "valor deve ser positivo")
	}

	expense := model.Expense{
		CompanyID:   companyID,
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        req.Date,
	}
	if err := s.expenses.Create(ctx, &expense); err != nil {
		return nil, err
	}
	return expenseToResponse(&expense), nil
}

func (s *expenseService) List(ctx context.Context, companyID uuid.UUID, filter dto.ExpenseFilter) (*dto.ExpenseListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	expenses, total, err := s.expenses.List(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		data = append(data, *expenseToResponse(&expenses[i]))
	}
	return &dto.ExpenseListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func expenseToResponse(e *model.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:          e.ID.String(),
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
		Date:        e.Date,
	}
}
