package service

import (
	"context"
	"errors"
	"time"

	"github.com/peegflow-code/PeegFlow-Piloto/internal/apierror"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/config"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/dto"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/model"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	CreateUser(ctx context.Context, companyID uuid.UUID, req dto.CreateUserRequest) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, companyID uuid.UUID) ([]dto.UserResponse, error)
	DeleteUser(ctx context.Context, companyID, actorID, userID uuid.UUID) error
	ChangePassword(ctx context.Context, userID uuid.UUID, req dto.ChangePasswordRequest) error
}

type authService struct {
	users repository.UserRepository
	cfg   *config.Config
}

func NewAuthService(users repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{users: users, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		// Burn a bcrypt round anyway so a missing user costs the same as a
		// wrong password.
		_ = bcrypt.CompareHashAndPassword(
			[]byte("$2a$12$C6UzMDM.H6dfI/f/IKcEeO1xVf0d5PBl6pGworZ6PaJ3y52xCCY1W"), []byte(req.Password))
		return nil, &apierror.AuthenticationError{}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, &apierror.AuthenticationError{}
	}

	return s.tokenPair(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, &apierror.AuthenticationError{}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, &apierror.AuthenticationError{}
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, &apierror.AuthenticationError{}
	}
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, &apierror.AuthenticationError{}
	}

	user, err := s.users.FindByID(ctx, uid)
	if err != nil || !user.Active {
		return nil, &apierror.AuthenticationError{}
	}

	return s.tokenPair(user)
}

func (s *authService) CreateUser(ctx context.Context, companyID uuid.UUID, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	role := model.Role(req.Role)
	if !role.Valid() {
		return nil, apierror.Validation("role", "perfil inválido")
	}

	if _, err := s.users.FindByUsernameInCompany(ctx, companyID, req.Username); err == nil {
		return nil, apierror.Conflict("já existe um usuário com esse nome")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		CompanyID:    companyID,
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return userToResponse(user), nil
}

func (s *authService) ListUsers(ctx context.Context, companyID uuid.UUID) ([]dto.UserResponse, error) {
	users, err := s.users.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, *userToResponse(&users[i]))
	}
	return resp, nil
}

func (s *authService) DeleteUser(ctx context.Context, companyID, actorID, userID uuid.UUID) error {
	if actorID == userID {
		return apierror.Validation("id", "não é possível excluir o próprio usuário")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil || user.CompanyID != companyID {
		return apierror.NotFound("usuário")
	}
	return s.users.SoftDelete(ctx, companyID, userID)
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, req dto.ChangePasswordRequest) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return apierror.NotFound("usuário")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return s.users.Update(ctx, user)
}

func (s *authService) tokenPair(user *model.User) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         *userToResponse(user),
	}, nil
}

func (s *authService) generateToken(user *model.User, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    user.ID.String(),
		"company_id": user.CompanyID.String(),
		"username":   user.Username,
		"role":       string(user.Role),
		"exp":        time.Now().Add(duration).Unix(),
		"iat":        time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func userToResponse(u *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Role:     string(u.Role),
		Active:   u.Active,
	}
}
