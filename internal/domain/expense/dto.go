package expense

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/pagination"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/validator"
)

var validCategories = []string{"Travel", "Meals", "Supplies", "Training", "Other"}

type SubmitExpenseRequest struct {
	EmployeeID  string          `json:"-"` // From JWT
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description *string         `json:"description,omitempty"`

	// Internal use
	DateParsed time.Time `json:"-"`
}

func (r *SubmitExpenseRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if d, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	} else {
		r.DateParsed = d
	}
	if !r.Amount.IsPositive() || !validator.IsValidAmount(r.Amount) {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be positive with at most 2 decimal places",
		})
	}
	if !validator.IsInSlice(r.Category, validCategories) {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must be one of: Travel, Meals, Supplies, Training, Other",
		})
	}
	if r.Description != nil && len(*r.Description) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ExpenseResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName *string         `json:"employee_name,omitempty"`
	Date         string          `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category"`
	Description  *string         `json:"description,omitempty"`
	Status       Status          `json:"status"`
	ApprovedBy   *string         `json:"approved_by,omitempty"`
	ProcessedAt  *string         `json:"processed_at,omitempty"`
	CreatedAt    string          `json:"created_at"`
}

type ListExpenseResponse struct {
	pagination.Page
	Expenses []ExpenseResponse `json:"expenses"`
}

type ExpenseFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *Status `json:"status,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`
	pagination.Params

	// Internal use
	Start *time.Time `json:"-"`
	End   *time.Time `json:"-"`
}

func (f *ExpenseFilter) Validate() error {
	errs := f.Params.Normalize()

	if f.Status != nil && !f.Status.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: Pending, Approved, Rejected",
		})
	}
	if f.StartDate != nil && *f.StartDate != "" {
		if d, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		} else {
			f.Start = &d
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if d, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		} else {
			f.End = &d
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
