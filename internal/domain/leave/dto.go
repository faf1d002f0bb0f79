package leave

import (
	"time"

	"github.com/worktrack/worktrack-backend-go/internal/pkg/pagination"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/validator"
)

type LeaveTypeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DaysAllowed int    `json:"days_allowed"`
	IsPaid      bool   `json:"is_paid"`
}

type CreateLeaveTypeRequest struct {
	Name        string `json:"name"`
	DaysAllowed int    `json:"days_allowed"`
	IsPaid      bool   `json:"is_paid"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if r.DaysAllowed < 0 || r.DaysAllowed > 366 {
		errs = append(errs, validator.ValidationError{
			Field:   "days_allowed",
			Message: "days_allowed must be between 0 and 366",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SubmitLeaveRequest struct {
	EmployeeID  string  `json:"-"` // From JWT
	LeaveTypeID string  `json:"leave_type_id"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Reason      *string `json:"reason,omitempty"`

	// Internal use
	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

// Validate checks formats only; the date order is checked by the service so
// a reversed range surfaces as ErrInvalidDateRange.
func (r *SubmitLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}
	if d, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	} else {
		r.Start = d
	}
	if d, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	} else {
		r.End = d
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveRequestResponse struct {
	ID            string             `json:"id"`
	EmployeeID    string             `json:"employee_id"`
	EmployeeName  *string            `json:"employee_name,omitempty"`
	LeaveTypeID   string             `json:"leave_type_id"`
	LeaveTypeName *string            `json:"leave_type_name,omitempty"`
	StartDate     string             `json:"start_date"`
	EndDate       string             `json:"end_date"`
	TotalDays     int                `json:"total_days"`
	Reason        *string            `json:"reason,omitempty"`
	Status        LeaveRequestStatus `json:"status"`
	ProcessedBy   *string            `json:"processed_by,omitempty"`
	ProcessedAt   *string            `json:"processed_at,omitempty"`
	CreatedAt     string             `json:"created_at"`
}

type ListLeaveRequestResponse struct {
	pagination.Page
	Requests []LeaveRequestResponse `json:"requests"`
}

type LeaveRequestFilter struct {
	EmployeeID  *string             `json:"employee_id,omitempty"`
	LeaveTypeID *string             `json:"leave_type_id,omitempty"`
	Status      *LeaveRequestStatus `json:"status,omitempty"`
	pagination.Params
}

func (f *LeaveRequestFilter) Validate() error {
	errs := f.Params.Normalize()

	if f.Status != nil && !f.Status.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: Pending, Approved, Rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BalanceRequest struct {
	EmployeeID *string `json:"employee_id,omitempty"` // defaults to the caller
	Year       int     `json:"year"`
}

type BalanceResponse struct {
	LeaveTypeID   string `json:"leave_type_id"`
	LeaveTypeName string `json:"leave_type_name"`
	Year          int    `json:"year"`
	Allowed       int    `json:"allowed"`
	Used          int    `json:"used"`
	Remaining     int    `json:"remaining"`
}
