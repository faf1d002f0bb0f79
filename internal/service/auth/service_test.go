package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worktrack/worktrack-backend-go/internal/domain/auth"
	"github.com/worktrack/worktrack-backend-go/internal/domain/employee"
	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/jwt"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/validator"
	"github.com/worktrack/worktrack-backend-go/internal/repository"
	"github.com/worktrack/worktrack-backend-go/internal/repository/gormstore"
	auditService "github.com/worktrack/worktrack-backend-go/internal/service/audit"
)

const (
	testSecret   = "test-secret-key-for-jwt"
	testPassword = "password123"
)

var admin = user.Actor{Role: user.RoleAdmin}

type authFixture struct {
	repos   *repository.Repositories
	jwt     jwt.Service
	service auth.AuthService
}

func setupAuth(t *testing.T) authFixture {
	t.Helper()
	db, err := gormstore.OpenInMemory(t.Name())
	require.NoError(t, err)
	repos := repository.FromGorm(db)
	t.Cleanup(repos.Close)

	jwtService := jwt.NewJWTService(testSecret, time.Hour)
	return authFixture{
		repos:   repos,
		jwt:     jwtService,
		service: NewAuthService(repos.User, jwtService, repos.Employee, auditService.NewAuditService(repos.Audit)),
	}
}

func TestCreateUserAndLogin(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()

	emp, err := f.repos.Employee.Create(ctx, employee.Employee{
		EmployeeCode: "EMP-001",
		FirstName:    "Alan",
		LastName:     "Turing",
		Email:        "alan@example.com",
		Status:       employee.EmploymentStatusActive,
	})
	require.NoError(t, err)

	created, err := f.service.CreateUser(ctx, admin, auth.CreateUserRequest{
		Email:      " Alan@Example.com ",
		Password:   testPassword,
		Role:       user.RoleEmployee,
		EmployeeID: &emp.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "alan@example.com", created.Email)
	require.NotNil(t, created.EmployeeID)
	assert.Equal(t, emp.ID, *created.EmployeeID)

	resp, err := f.service.Login(ctx, auth.LoginRequest{Email: "ALAN@example.com", Password: testPassword})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, created.ID, resp.User.ID)
	assert.Greater(t, resp.ExpiresAt, time.Now().Unix())

	me, err := f.service.Me(ctx, user.Actor{UserID: created.ID, EmployeeID: &emp.ID, Role: user.RoleEmployee})
	require.NoError(t, err)
	assert.Equal(t, created.Email, me.Email)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()

	_, err := f.service.CreateUser(ctx, admin, auth.CreateUserRequest{
		Email: "boss@example.com", Password: testPassword, Role: user.RoleAdmin,
	})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  auth.LoginRequest
	}{
		{"wrong password", auth.LoginRequest{Email: "boss@example.com", Password: "wrong-password"}},
		{"unknown email", auth.LoginRequest{Email: "nobody@example.com", Password: testPassword}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Login(ctx, tt.req)
			assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		})
	}

	_, err = f.service.Login(ctx, auth.LoginRequest{Email: "not-an-email", Password: testPassword})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestCreateUser_Rules(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()

	req := auth.CreateUserRequest{Email: "lead@example.com", Password: testPassword, Role: user.RoleManager}
	_, err := f.service.CreateUser(ctx, admin, req)
	require.NoError(t, err)

	_, err = f.service.CreateUser(ctx, admin, req)
	assert.ErrorIs(t, err, user.ErrUserEmailExists)

	manager := user.Actor{UserID: "m1", Role: user.RoleManager}
	_, err = f.service.CreateUser(ctx, manager, auth.CreateUserRequest{Email: "x@example.com", Password: testPassword, Role: user.RoleEmployee})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	_, err = f.service.CreateUser(ctx, admin, auth.CreateUserRequest{Email: "short@example.com", Password: "short", Role: user.RoleEmployee})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	missing := uuid.Must(uuid.NewV7()).String()
	_, err = f.service.CreateUser(ctx, admin, auth.CreateUserRequest{
		Email: "ghost@example.com", Password: testPassword, Role: user.RoleEmployee, EmployeeID: &missing,
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	malformed := "EMP-001"
	_, err = f.service.CreateUser(ctx, admin, auth.CreateUserRequest{
		Email: "typo@example.com", Password: testPassword, Role: user.RoleEmployee, EmployeeID: &malformed,
	})
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "employee_id")
}

func TestLogout(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()

	_, err := f.service.CreateUser(ctx, admin, auth.CreateUserRequest{
		Email: "boss@example.com", Password: testPassword, Role: user.RoleAdmin,
	})
	require.NoError(t, err)
	resp, err := f.service.Login(ctx, auth.LoginRequest{Email: "boss@example.com", Password: testPassword})
	require.NoError(t, err)

	assert.False(t, f.jwt.IsTokenRevoked(resp.AccessToken))
	require.NoError(t, f.service.Logout(ctx, resp.AccessToken))
	assert.True(t, f.jwt.IsTokenRevoked(resp.AccessToken))

	assert.ErrorIs(t, f.service.Logout(ctx, ""), auth.ErrInvalidToken)
}

func TestListUsers(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()

	emp, err := f.repos.Employee.Create(ctx, employee.Employee{
		EmployeeCode: "EMP-001",
		FirstName:    "Alan",
		LastName:     "Turing",
		Email:        "alan@example.com",
		Status:       employee.EmploymentStatusActive,
	})
	require.NoError(t, err)

	_, err = f.service.CreateUser(ctx, admin, auth.CreateUserRequest{
		Email: "zed@example.com", Password: testPassword, Role: user.RoleAdmin,
	})
	require.NoError(t, err)
	_, err = f.service.CreateUser(ctx, admin, auth.CreateUserRequest{
		Email: "alan@example.com", Password: testPassword, Role: user.RoleEmployee, EmployeeID: &emp.ID,
	})
	require.NoError(t, err)

	users, err := f.service.ListUsers(ctx, admin)
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, "alan@example.com", users[0].Email)
	require.NotNil(t, users[0].EmployeeName)
	assert.Equal(t, "Alan Turing", *users[0].EmployeeName)
	assert.Equal(t, "zed@example.com", users[1].Email)
	assert.Nil(t, users[1].EmployeeName)

	_, err = f.service.ListUsers(ctx, user.Actor{UserID: "m1", Role: user.RoleManager})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}

func TestChangePassword(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()

	created, err := f.service.CreateUser(ctx, admin, auth.CreateUserRequest{
		Email: "boss@example.com", Password: testPassword, Role: user.RoleAdmin,
	})
	require.NoError(t, err)
	self := user.Actor{UserID: created.ID, Role: user.RoleAdmin}

	err = f.service.ChangePassword(ctx, self, auth.ChangePasswordRequest{
		CurrentPassword: "not-my-password", NewPassword: "brand-new-pass",
	})
	assert.ErrorIs(t, err, auth.ErrIncorrectPassword)

	tests := []struct {
		name string
		req  auth.ChangePasswordRequest
	}{
		{"missing current", auth.ChangePasswordRequest{NewPassword: "brand-new-pass"}},
		{"short new", auth.ChangePasswordRequest{CurrentPassword: testPassword, NewPassword: "short"}},
		{"unchanged", auth.ChangePasswordRequest{CurrentPassword: testPassword, NewPassword: testPassword}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var verrs validator.ValidationErrors
			assert.ErrorAs(t, f.service.ChangePassword(ctx, self, tt.req), &verrs)
		})
	}

	require.NoError(t, f.service.ChangePassword(ctx, self, auth.ChangePasswordRequest{
		CurrentPassword: testPassword, NewPassword: "brand-new-pass",
	}))

	_, err = f.service.Login(ctx, auth.LoginRequest{Email: "boss@example.com", Password: testPassword})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = f.service.Login(ctx, auth.LoginRequest{Email: "boss@example.com", Password: "brand-new-pass"})
	assert.NoError(t, err)
}
