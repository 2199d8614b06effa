package repository

import (
	"context"

	"github.com/peegflow-code/PeegFlow-Piloto/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompanyRepository interface {
	Create(ctx context.Context, c *model.Company) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Company, error)
	First(ctx context.Context) (*model.Company, error)
	// Delete removes the tenant; the CASCADE constraints take its users,
	// products and expenses with it.
	Delete(ctx context.Context, id uuid.UUID) error
}

type companyRepo struct{ db *gorm.DB }

func NewCompanyRepository(db *gorm.DB) CompanyRepository { return &companyRepo{db: db} }

func (r *companyRepo) Create(ctx context.Context, c *model.Company) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *companyRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	var c model.Company
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *companyRepo) First(ctx context.Context) (*model.Company, error) {
	var c model.Company
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&c).Error
	return &c, err
}

func (r *companyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Company{}, "id = ?", id).Error
}
