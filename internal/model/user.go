package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the access level of a user. Authorization happens at the HTTP
// boundary (middleware.RequireRole); services only enforce tenant scope.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool { return r == RoleAdmin || r == RoleUser }

// User belongs to exactly one company. Usernames are unique per company,
// not globally.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_company_username"`
	Username     string    `gorm:"not null;uniqueIndex:idx_company_username"`
	PasswordHash string    `gorm:"not null"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'user'"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Company *Company `gorm:"foreignKey:CompanyID"`
}
