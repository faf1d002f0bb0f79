package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type Expense struct {
	ID          string
	EmployeeID  string
	ExpenseDate time.Time
	Amount      decimal.Decimal
	Category    string
	Description *string
	Status      Status
	ApprovedBy  *string
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	EmployeeName *string
}

func (e Expense) IsPending() bool {
	return e.Status == StatusPending
}
