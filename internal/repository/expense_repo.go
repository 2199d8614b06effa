package repository

import (
	"context"
	"time"

	"github.com/peegflow-code/PeegFlow-Piloto/internal/dto"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ExpenseRepository interface {
	Create(ctx context.Context, e *model.Expense) error
	// CreateTx runs inside a restock transaction alongside the stock increment.
	CreateTx(tx *gorm.DB, e *model.Expense) error
	ListByRange(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]model.Expense, error)
	List(ctx context.Context, companyID uuid.UUID, filter dto.ExpenseFilter) ([]model.Expense, int64, error)

	Total(ctx context.Context, companyID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
	TotalByDay(ctx context.Context, companyID uuid.UUID, from, to time.Time) (map[string]decimal.Decimal, error)
}

type expenseRepo struct{ db *gorm.DB }

func NewExpenseRepository(db *gorm.DB) ExpenseRepository { return &expenseRepo{db: db} }

func (r *expenseRepo) Create(ctx context.Context, e *model.Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *expenseRepo) CreateTx(tx *gorm.DB, e *model.Expense) error {
	return tx.Create(e).Error
}

func (r *expenseRepo) ListByRange(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]model.Expense, error) {
	var expenses []model.Expense
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND date >= ? AND date <= ?", companyID, from, to).
		Order("date ASC").
		Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepo) List(ctx context.Context, companyID uuid.UUID, filter dto.ExpenseFilter) ([]model.Expense, int64, error) {
	var expenses []model.Expense
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Expense{}).Where("company_id = ?", companyID)
	if filter.From != "" {
		q = q.Where("date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("date <= ?", filter.To)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("date DESC").Limit(filter.Limit).Offset(offset).Find(&expenses).Error
	return expenses, total, err
}

func (r *expenseRepo) Total(ctx context.Context, companyID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var agg struct{ Total decimal.Decimal }
	err := r.db.WithContext(ctx).Model(&model.Expense{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("company_id = ? AND date >= ? AND date <= ?", companyID, from, to).
		Scan(&agg).Error
	return agg.Total, err
}

func (r *expenseRepo) TotalByDay(ctx context.Context, companyID uuid.UUID, from, to time.Time) (map[string]decimal.Decimal, error) {
	var rows []struct {
		Day   string
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Expense{}).
		Select("DATE(date) AS day, SUM(amount) AS total").
		Where("company_id = ? AND date >= ? AND date <= ?", companyID, from, to).
		Group("DATE(date)").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		out[row.Day] = row.Total
	}
	return out, nil
}
