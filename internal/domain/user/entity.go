package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access
	RoleManager  Role = "manager"  // Can approve attendance, leave and expenses
	RoleEmployee Role = "employee" // Regular employee
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	EmployeeID   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Populated by List only.
	EmployeeName *string
}

// IsManager checks if user is manager or admin
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID     string
	EmployeeID *string
	Role       Role
}

func (a Actor) Can(p Permission) bool {
	return HasPermission(a.Role, p)
}

// Require returns ErrInsufficientPermissions unless the actor holds p.
func (a Actor) Require(p Permission) error {
	if !a.Can(p) {
		return ErrInsufficientPermissions
	}
	return nil
}

// Employee returns the linked employee id or ErrNoLinkedEmployee.
func (a Actor) Employee() (string, error) {
	if a.EmployeeID == nil || *a.EmployeeID == "" {
		return "", ErrNoLinkedEmployee
	}
	return *a.EmployeeID, nil
}
