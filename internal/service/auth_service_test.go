package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/peegflow-code/PeegFlow-Piloto/internal/apierror"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/config"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/dto"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/model"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/service"
)

func buildAuthSvc() (service.AuthService, *stubUserRepo) {
	users := newStubUserRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
	return service.NewAuthService(users, cfg), users
}

func seedUser(r *stubUserRepo, companyID uuid.UUID, username, password string, role model.Role) *model.User {
	// MinCost keeps the test fast; production uses 12.
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &model.User{
		ID:           uuid.New(),
		CompanyID:    companyID,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}
	r.users[u.ID] = u
	return u
}

func TestLogin_Success(t *testing.T) {
	svc, users := buildAuthSvc()
	seedUser(users, uuid.New(), "maria", "segredo123", model.RoleAdmin)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "maria",
		Password: "segredo123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, "maria", resp.User.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, users := buildAuthSvc()
	seedUser(users, uuid.New(), "maria", "segredo123", model.RoleAdmin)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "maria",
		Password: "errada",
	})
	var authErr *apierror.AuthenticationError
	assert.ErrorAs(t, err, &authErr)
}

func TestLogin_UnknownUserSameError(t *testing.T) {
	svc, users := buildAuthSvc()
	seedUser(users, uuid.New(), "maria", "segredo123", model.RoleAdmin)

	_, errUnknown := svc.Login(context.Background(), dto.LoginRequest{
		Username: "ninguem", Password: "x1234",
	})
	_, errWrongPass := svc.Login(context.Background(), dto.LoginRequest{
		Username: "maria", Password: "x1234",
	})

	// Unknown user and wrong password are indistinguishable.
	require.Error(t, errUnknown)
	require.Error(t, errWrongPass)
	assert.Equal(t, errWrongPass.Error(), errUnknown.Error())
}

func TestRefresh_IssuesNewPair(t *testing.T) {
	svc, users := buildAuthSvc()
	seedUser(users, uuid.New(), "maria", "segredo123", model.RoleUser)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "maria", Password: "segredo123",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "maria", refreshed.User.Username)
}

func TestRefresh_GarbageToken(t *testing.T) {
	svc, _ := buildAuthSvc()

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	var authErr *apierror.AuthenticationError
	assert.ErrorAs(t, err, &authErr)
}

func TestRefresh_DeactivatedUser(t *testing.T) {
	svc, users := buildAuthSvc()
	u := seedUser(users, uuid.New(), "maria", "segredo123", model.RoleUser)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "maria", Password: "segredo123",
	})
	require.NoError(t, err)

	users.users[u.ID].Active = false

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	var authErr *apierror.AuthenticationError
	assert.ErrorAs(t, err, &authErr)
}

func TestCreateUser_DuplicateUsernameSameCompany(t *testing.T) {
	svc, users := buildAuthSvc()
	tenant := uuid.New()
	seedUser(users, tenant, "joao", "segredo123", model.RoleUser)

	_, err := svc.CreateUser(context.Background(), tenant, dto.CreateUserRequest{
		Username: "joao", Password: "outra123", Role: "user",
	})
	var conflict *apierror.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestCreateUser_SameUsernameDifferentCompanies(t *testing.T) {
	svc, users := buildAuthSvc()
	seedUser(users, uuid.New(), "joao", "segredo123", model.RoleUser)

	_, err := svc.CreateUser(context.Background(), uuid.New(), dto.CreateUserRequest{
		Username: "joao", Password: "outra123", Role: "user",
	})
	assert.NoError(t, err)
}

func TestDeleteUser_SelfDeletionBlocked(t *testing.T) {
	svc, users := buildAuthSvc()
	tenant := uuid.New()
	u := seedUser(users, tenant, "admin", "segredo123", model.RoleAdmin)

	err := svc.DeleteUser(context.Background(), tenant, u.ID, u.ID)
	var validation *apierror.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestDeleteUser_OtherCompanyIsNotFound(t *testing.T) {
	svc, users := buildAuthSvc()
	victim := seedUser(users, uuid.New(), "vitima", "segredo123", model.RoleUser)

	err := svc.DeleteUser(context.Background(), uuid.New(), uuid.New(), victim.ID)
	var notFound *apierror.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.True(t, users.users[victim.ID].Active)
}

func TestDeleteUser_Deactivates(t *testing.T) {
	svc, users := buildAuthSvc()
	tenant := uuid.New()
	admin := seedUser(users, tenant, "admin", "segredo123", model.RoleAdmin)
	target := seedUser(users, tenant, "joao", "segredo123", model.RoleUser)

	require.NoError(t, svc.DeleteUser(context.Background(), tenant, admin.ID, target.ID))
	assert.False(t, users.users[target.ID].Active)
}

func TestChangePassword_OldPasswordStopsWorking(t *testing.T) {
	svc, users := buildAuthSvc()
	u := seedUser(users, uuid.New(), "maria", "antiga123", model.RoleUser)

	require.NoError(t, svc.ChangePassword(context.Background(), u.ID, dto.ChangePasswordRequest{
		NewPassword: "novíssima1",
	}))

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "antiga123"})
	var authErr *apierror.AuthenticationError
	assert.ErrorAs(t, err, &authErr)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "novíssima1"})
	assert.NoError(t, err)
}
