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

// SaleRepository persists the append-only sales table. There is deliberately
// no Update or Delete: a recorded sale is history.
type SaleRepository interface {
	CreateTx(tx *gorm.DB, s *model.Sale) error
	CountByProduct(ctx context.Context, companyID, productID uuid.UUID) (int64, error)
	ListByRange(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]model.Sale, error)
	List(ctx context.Context, companyID uuid.UUID, filter dto.SaleFilter) ([]model.Sale, int64, error)

	Revenue(ctx context.Context, companyID uuid.UUID, from, to time.Time) (decimal.Decimal, int64, error)
	TopProducts(ctx context.Context, companyID uuid.UUID, from, to time.Time, limit int) ([]dto.TopProduct, error)
	RevenueByDay(ctx context.Context, companyID uuid.UUID, from, to time.Time) (map[string]decimal.Decimal, error)

	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Create(s).Error
}

func (r *saleRepo) CountByProduct(ctx context.Context, companyID, productID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("company_id = ? AND product_id = ?", companyID, productID).
		Count(&n).Error
	return n, err
}

func (r *saleRepo) ListByRange(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("company_id = ? AND date >= ? AND date <= ?", companyID, from, to).
		Order("date ASC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) List(ctx context.Context, companyID uuid.UUID, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Sale{}).Where("company_id = ?", companyID)
	if filter.From != "" {
		q = q.Where("date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("date <= ?", filter.To)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Product").Order("date DESC").Limit(filter.Limit).Offset(offset).Find(&sales).Error
	return sales, total, err
}

// saleAgg scans SUM/COUNT aggregates; sums over decimal columns arrive as
// strings on postgres and floats on sqlite, both handled by decimal.Decimal.
type saleAgg struct {
	Revenue decimal.Decimal
	Count   int64
}

func (r *saleRepo) Revenue(ctx context.Context, companyID uuid.UUID, from, to time.Time) (decimal.Decimal, int64, error) {
	var agg saleAgg
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("COALESCE(SUM(quantity * price), 0) AS revenue, COUNT(*) AS count").
		Where("company_id = ? AND date >= ? AND date <= ?", companyID, from, to).
		Scan(&agg).Error
	return agg.Revenue, agg.Count, err
}

func (r *saleRepo) TopProducts(ctx context.Context, companyID uuid.UUID, from, to time.Time, limit int) ([]dto.TopProduct, error) {
	var rows []struct {
		ProductID string
		Name      string
		Quantity  int64
		Revenue   decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("sales.product_id AS product_id, products.name AS name, SUM(sales.quantity) AS quantity, SUM(sales.quantity * sales.price) AS revenue").
		Joins("JOIN products ON products.id = sales.product_id").
		Where("sales.company_id = ? AND sales.date >= ? AND sales.date <= ?", companyID, from, to).
		Group("sales.product_id, products.name").
		Order("revenue DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	top := make([]dto.TopProduct, 0, len(rows))
	for _, row := range rows {
		top = append(top, dto.TopProduct{
			ProductID: row.ProductID,
			Name:      row.Name,
			Quantity:  row.Quantity,
			Revenue:   row.Revenue,
		})
	}
	return top, nil
}

func (r *saleRepo) RevenueByDay(ctx context.Context, companyID uuid.UUID, from, to time.Time) (map[string]decimal.Decimal, error) {
	var rows []struct {
		Day     string
		Revenue decimal.Decimal
	}
	// DATE() is understood by both postgres and sqlite.
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("DATE(date) AS day, SUM(quantity * price) AS revenue").
		Where("company_id = ? AND date >= ? AND date <= ?", companyID, from, to).
		Group("DATE(date)").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		out[row.Day] = row.Revenue
	}
	return out, nil
}

func (r *saleRepo) DB() *gorm.DB { return r.db }
