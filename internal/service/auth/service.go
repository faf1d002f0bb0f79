package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/worktrack/worktrack-backend-go/internal/domain/audit"
	"github.com/worktrack/worktrack-backend-go/internal/domain/auth"
	"github.com/worktrack/worktrack-backend-go/internal/domain/employee"
	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	user.UserRepository
	jwt.Service
	employeeRepo employee.EmployeeRepository
	auditService audit.AuditService
}

func NewAuthService(userRepository user.UserRepository, jwtService jwt.Service, employeeRepo employee.EmployeeRepository, auditService audit.AuditService) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepository,
		Service:        jwtService,
		employeeRepo:   employeeRepo,
		auditService:   auditService,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func mapUserToInfo(u user.User) auth.UserInfo {
	return auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		Role:         u.Role,
		EmployeeID:   u.EmployeeID,
		EmployeeName: u.EmployeeName,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest) (auth.TokenResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(loginReq.Email)))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.EmployeeID, userData.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	slog.Info("user logged in", slog.String("user_id", userData.ID), slog.String("role", string(userData.Role)))

	return auth.TokenResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		TokenType:   "Bearer",
		User:        mapUserToInfo(userData),
	}, nil
}

// CreateUser implements auth.AuthService.
func (a *AuthServiceImpl) CreateUser(ctx context.Context, actor user.Actor, req auth.CreateUserRequest) (auth.UserInfo, error) {
	if err := actor.Require(user.PermissionUserManage); err != nil {
		return auth.UserInfo{}, err
	}
	if err := req.Validate(); err != nil {
		return auth.UserInfo{}, err
	}

	if req.EmployeeID != nil && *req.EmployeeID != "" {
		if _, err := a.employeeRepo.GetByID(ctx, *req.EmployeeID); err != nil {
			return auth.UserInfo{}, err
		}
	} else {
		req.EmployeeID = nil
	}

	hash, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.UserInfo{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := a.UserRepository.Create(ctx, user.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         req.Role,
		EmployeeID:   req.EmployeeID,
	})
	if err != nil {
		return auth.UserInfo{}, err
	}

	a.auditService.Record(ctx, actor, audit.ActionCreate, "users", created.ID,
		fmt.Sprintf("Created %s user %s", created.Role, created.Email))

	return mapUserToInfo(created), nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context, actor user.Actor) (auth.UserInfo, error) {
	u, err := a.UserRepository.GetByID(ctx, actor.UserID)
	if err != nil {
		return auth.UserInfo{}, err
	}
	return mapUserToInfo(u), nil
}

// ListUsers implements auth.AuthService.
func (a *AuthServiceImpl) ListUsers(ctx context.Context, actor user.Actor) ([]auth.UserInfo, error) {
	if err := actor.Require(user.PermissionUserManage); err != nil {
		return nil, err
	}

	users, err := a.UserRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	infos := make([]auth.UserInfo, 0, len(users))
	for _, u := range users {
		infos = append(infos, mapUserToInfo(u))
	}
	return infos, nil
}

// ChangePassword implements auth.AuthService.
func (a *AuthServiceImpl) ChangePassword(ctx context.Context, actor user.Actor, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := a.UserRepository.GetByID(ctx, actor.UserID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrIncorrectPassword
	}

	hash, err := a.hashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := a.UserRepository.UpdatePassword(ctx, u.ID, hash); err != nil {
		return err
	}

	a.auditService.Record(ctx, actor, audit.ActionUpdate, "users", u.ID, "Changed password")
	slog.Info("password changed", slog.String("user_id", u.ID))
	return nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return auth.ErrInvalidToken
	}
	a.Service.RevokeToken(token)
	return nil
}
