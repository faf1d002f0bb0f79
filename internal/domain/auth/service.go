package auth

import (
	"context"

	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	CreateUser(ctx context.Context, actor user.Actor, req CreateUserRequest) (UserInfo, error)
	Me(ctx context.Context, actor user.Actor) (UserInfo, error)
	ListUsers(ctx context.Context, actor user.Actor) ([]UserInfo, error)
	// ChangePassword replaces the actor's own password after checking the
	// current one.
	ChangePassword(ctx context.Context, actor user.Actor, req ChangePasswordRequest) error
	// Logout revokes the access token until it expires.
	Logout(ctx context.Context, token string) error
}
