package repository

import (
	"context"

	"github.com/peegflow-code/PeegFlow-Piloto/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	// FindByUsername looks up across tenants: at login time the company is not
	// known yet — it comes from the matched user.
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByUsernameInCompany(ctx context.Context, companyID uuid.UUID, username string) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	List(ctx context.Context, companyID uuid.UUID) ([]model.User, error)
	Update(ctx context.Context, u *model.User) error
	SoftDelete(ctx context.Context, companyID, id uuid.UUID) error
}

type userRepo struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepo{db: db} }

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Where("username = ? AND active = ?", username, true).
		First(&u).Error
	return &u, err
}

func (r *userRepo) FindByUsernameInCompany(ctx context.Context, companyID uuid.UUID, username string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND username = ?", companyID, username).
		First(&u).Error
	return &u, err
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

func (r *userRepo) List(ctx context.Context, companyID uuid.UUID) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND active = ?", companyID, true).
		Order("username ASC").
		Find(&users).Error
	return users, err
}

func (r *userRepo) Update(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *userRepo) SoftDelete(ctx context.Context, companyID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND company_id = ?", id, companyID).
		Update("active", false).Error
}
