package employee

import (
	"context"
)

type EmployeeRepository interface {
	Create(ctx context.Context, employee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByCode(ctx context.Context, code string) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	// ListActive returns active employees ordered by last name, first name.
	ListActive(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) error
	UpdateStatus(ctx context.Context, id string, status EmploymentStatus) error
	UpdatePIN(ctx context.Context, id string, pinHash string) error
	// UpdateShift sets the shift; nil clears it.
	UpdateShift(ctx context.Context, id string, shiftID *string) error
}
