package auth

import (
	"strings"

	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/validator"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = normalizeEmail(r.Email)
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateUserRequest struct {
	Email      string    `json:"email"`
	Password   string    `json:"password"`
	Role       user.Role `json:"role"`
	EmployeeID *string   `json:"employee_id,omitempty"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = normalizeEmail(r.Email)
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}
	if len(r.Password) > 72 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must not exceed 72 characters",
		})
	}
	if !r.Role.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: admin, manager, employee",
		})
	}
	if r.EmployeeID != nil && *r.EmployeeID != "" && !validator.IsValidUUID(*r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid id",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.CurrentPassword == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "current_password",
			Message: "current_password is required",
		})
	}
	if len(r.NewPassword) < 8 || len(r.NewPassword) > 72 {
		errs = append(errs, validator.ValidationError{
			Field:   "new_password",
			Message: "new_password must be between 8 and 72 characters",
		})
	} else if r.NewPassword == r.CurrentPassword {
		errs = append(errs, validator.ValidationError{
			Field:   "new_password",
			Message: "new_password must differ from current_password",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TokenResponse struct {
	AccessToken string   `json:"access_token"`
	ExpiresAt   int64    `json:"expires_at"`
	TokenType   string   `json:"token_type"`
	User        UserInfo `json:"user"`
}

type UserInfo struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Role         user.Role `json:"role"`
	EmployeeID   *string   `json:"employee_id,omitempty"`
	EmployeeName *string   `json:"employee_name,omitempty"`
}
