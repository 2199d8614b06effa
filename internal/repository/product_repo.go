package repository

import (
	"context"

	"github.com/peegflow-code/PeegFlow-Piloto/internal/dto"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository is the data access contract for the catalog.
// Every method is tenant-scoped: a product in another company is as good as
// absent. Services depend on this interface, not on GORM, so unit tests run
// against in-memory stubs.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*model.Product, error)
	FindBySKU(ctx context.Context, companyID uuid.UUID, sku string) (*model.Product, error)
	List(ctx context.Context, companyID uuid.UUID, filter dto.ProductFilter) ([]model.Product, int64, error)
	ListLowStock(ctx context.Context, companyID uuid.UUID) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, companyID, id uuid.UUID) error

	// DecrementStockTx is the conditional write that makes overselling
	// impossible under concurrency: the decrement only happens when enough
	// stock remains, and the returned row count says whether it did.
	// Callers must pass the live transaction.
	DecrementStockTx(tx *gorm.DB, companyID, id uuid.UUID, qty int) (int64, error)
	IncrementStockTx(tx *gorm.DB, companyID, id uuid.UUID, qty int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, companyID, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&p).Error
	return &p, err
}

func (r *productRepo) FindBySKU(ctx context.Context, companyID uuid.UUID, sku string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND sku = ?", companyID, sku).
		First(&p).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context, companyID uuid.UUID, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Product{}).Where("company_id = ?", companyID)

	if filter.SKU != "" {
		q = q.Where("sku = ?", filter.SKU)
	}
	if filter.Name != "" {
		q = q.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&products).Error
	return products, total, err
}

func (r *productRepo) ListLowStock(ctx context.Context, companyID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND stock <= stock_min", companyID).
		Order("stock ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&model.Product{}).Error
}

func (r *productRepo) DecrementStockTx(tx *gorm.DB, companyID, id uuid.UUID, qty int) (int64, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND company_id = ? AND stock >= ?", id, companyID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	return res.RowsAffected, res.Error
}

func (r *productRepo) IncrementStockTx(tx *gorm.DB, companyID, id uuid.UUID, qty int) error {
	return tx.Model(&model.Product{}).
		Where("id = ? AND company_id = ?", id, companyID).
		Update("stock", gorm.Expr("stock + ?", qty)).Error
}

func (r *productRepo) DB() *gorm.DB { return r.db }
