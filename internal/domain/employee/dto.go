package employee

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/pagination"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/validator"
)

type EmployeeResponse struct {
	ID             string           `json:"id"`
	EmployeeCode   string           `json:"employee_code"`
	FirstName      string           `json:"first_name"`
	LastName       string           `json:"last_name"`
	FullName       string           `json:"full_name"`
	Email          string           `json:"email"`
	Phone          *string          `json:"phone,omitempty"`
	DepartmentID   *string          `json:"department_id,omitempty"`
	DepartmentName *string          `json:"department_name,omitempty"`
	Position       *string          `json:"position,omitempty"`
	HireDate       *string          `json:"hire_date,omitempty"`
	HourlyRate     *decimal.Decimal `json:"hourly_rate,omitempty"`
	MonthlySalary  *decimal.Decimal `json:"monthly_salary,omitempty"`
	Status         EmploymentStatus `json:"status"`
	ShiftID        *string          `json:"shift_id,omitempty"`
	HasPIN         bool             `json:"has_pin"`
	CreatedAt      string           `json:"created_at"`
	UpdatedAt      string           `json:"updated_at"`
}

type ListEmployeeResponse struct {
	pagination.Page
	Employees []EmployeeResponse `json:"employees"`
}

type EmployeeFilter struct {
	DepartmentID *string           `json:"department_id,omitempty"`
	Status       *EmploymentStatus `json:"status,omitempty"`
	Search       *string           `json:"search,omitempty"`
	pagination.Params
}

func (f *EmployeeFilter) Validate() error {
	errs := f.Params.Normalize()

	if f.Status != nil && !f.Status.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: Active, Inactive, Terminated",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateEmployeeRequest struct {
	EmployeeCode  string           `json:"employee_code"`
	FirstName     string           `json:"first_name"`
	LastName      string           `json:"last_name"`
	Email         string           `json:"email"`
	Phone         *string          `json:"phone,omitempty"`
	DepartmentID  *string          `json:"department_id,omitempty"`
	Position      *string          `json:"position,omitempty"`
	HireDate      *string          `json:"hire_date,omitempty"`
	HourlyRate    *decimal.Decimal `json:"hourly_rate,omitempty"`
	MonthlySalary *decimal.Decimal `json:"monthly_salary,omitempty"`
	ShiftID       *string          `json:"shift_id,omitempty"`
	PIN           *string          `json:"pin,omitempty"`

	// Internal use
	HireDateParsed *time.Time `json:"-"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.EmployeeCode = strings.ToUpper(strings.TrimSpace(r.EmployeeCode))
	if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code must be 2-20 uppercase letters, digits or dashes",
		})
	}
	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name is required",
		})
	}
	if len(r.FirstName) > 100 || len(r.LastName) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "names must not exceed 100 characters",
		})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone may only contain digits, spaces, dashes, plus and parentheses",
		})
	}
	if r.HireDate != nil && *r.HireDate != "" {
		d, ok := validator.IsValidDate(*r.HireDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "hire_date",
				Message: "hire_date must be in YYYY-MM-DD format",
			})
		} else {
			r.HireDateParsed = &d
		}
	}
	if r.HourlyRate != nil && !validator.IsValidAmount(*r.HourlyRate) {
		errs = append(errs, validator.ValidationError{
			Field:   "hourly_rate",
			Message: "hourly_rate must be a non-negative amount with at most 2 decimal places",
		})
	}
	if r.MonthlySalary != nil && !validator.IsValidAmount(*r.MonthlySalary) {
		errs = append(errs, validator.ValidationError{
			Field:   "monthly_salary",
			Message: "monthly_salary must be a non-negative amount with at most 2 decimal places",
		})
	}
	if r.PIN != nil && !validator.IsValidPIN(*r.PIN) {
		errs = append(errs, validator.ValidationError{
			Field:   "pin",
			Message: "pin must be 4 to 8 digits",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateEmployeeRequest lists every field an update may touch. Nil means
// unchanged.
type UpdateEmployeeRequest struct {
	ID            string            `json:"-"`
	FirstName     *string           `json:"first_name,omitempty"`
	LastName      *string           `json:"last_name,omitempty"`
	Email         *string           `json:"email,omitempty"`
	Phone         *string           `json:"phone,omitempty"`
	DepartmentID  *string           `json:"department_id,omitempty"`
	Position      *string           `json:"position,omitempty"`
	HourlyRate    *decimal.Decimal  `json:"hourly_rate,omitempty"`
	MonthlySalary *decimal.Decimal  `json:"monthly_salary,omitempty"`
	Status        *EmploymentStatus `json:"status,omitempty"`
	ShiftID       *string           `json:"shift_id,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.FirstName != nil && validator.IsEmpty(*r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name must not be empty",
		})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone may only contain digits, spaces, dashes, plus and parentheses",
		})
	}
	if r.HourlyRate != nil && !validator.IsValidAmount(*r.HourlyRate) {
		errs = append(errs, validator.ValidationError{
			Field:   "hourly_rate",
			Message: "hourly_rate must be a non-negative amount with at most 2 decimal places",
		})
	}
	if r.MonthlySalary != nil && !validator.IsValidAmount(*r.MonthlySalary) {
		errs = append(errs, validator.ValidationError{
			Field:   "monthly_salary",
			Message: "monthly_salary must be a non-negative amount with at most 2 decimal places",
		})
	}
	if r.Status != nil && !r.Status.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: Active, Inactive, Terminated",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ChangedFields names the columns the update touches, for the audit log.
func (r *UpdateEmployeeRequest) ChangedFields() []string {
	var fields []string
	add := func(set bool, name string) {
		if set {
			fields = append(fields, name)
		}
	}
	add(r.FirstName != nil, "first_name")
	add(r.LastName != nil, "last_name")
	add(r.Email != nil, "email")
	add(r.Phone != nil, "phone")
	add(r.DepartmentID != nil, "department_id")
	add(r.Position != nil, "position")
	add(r.HourlyRate != nil, "hourly_rate")
	add(r.MonthlySalary != nil, "monthly_salary")
	add(r.Status != nil, "status")
	add(r.ShiftID != nil, "shift_id")
	return fields
}

type SetPINRequest struct {
	EmployeeID string `json:"-"`
	PIN        string `json:"pin"`
}

func (r *SetPINRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if !validator.IsValidPIN(r.PIN) {
		errs = append(errs, validator.ValidationError{
			Field:   "pin",
			Message: "pin must be 4 to 8 digits",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AssignShiftRequest sets or clears (nil ShiftID) the employee's shift.
type AssignShiftRequest struct {
	EmployeeID string  `json:"-"`
	ShiftID    *string `json:"shift_id"`
}

func (r *AssignShiftRequest) Validate() error {
	if validator.IsEmpty(r.EmployeeID) {
		return validator.ValidationErrors{{
			Field:   "employee_id",
			Message: "employee_id is required",
		}}
	}
	return nil
}
