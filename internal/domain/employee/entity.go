package employee

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "Active"
	EmploymentStatusInactive   EmploymentStatus = "Inactive"
	EmploymentStatusTerminated EmploymentStatus = "Terminated"
)

func (s EmploymentStatus) IsValid() bool {
	switch s {
	case EmploymentStatusActive, EmploymentStatusInactive, EmploymentStatusTerminated:
		return true
	}
	return false
}

type Employee struct {
	ID            string
	EmployeeCode  string
	FirstName     string
	LastName      string
	Email         string
	Phone         *string
	DepartmentID  *string
	Position      *string
	HireDate      *time.Time
	HourlyRate    *decimal.Decimal
	MonthlySalary *decimal.Decimal
	Status        EmploymentStatus
	ShiftID       *string
	PINHash       *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Join
	DepartmentName *string
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

func (e Employee) IsActive() bool {
	return e.Status == EmploymentStatusActive
}

// Rate returns the hourly rate, or zero when none is configured.
func (e Employee) Rate() decimal.Decimal {
	if e.HourlyRate == nil {
		return decimal.Zero
	}
	return *e.HourlyRate
}

func (e Employee) Department() string {
	if e.DepartmentName == nil {
		return ""
	}
	return *e.DepartmentName
}
