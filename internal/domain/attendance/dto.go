package attendance

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/pagination"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/validator"
)

type ClockInRequest struct {
	EmployeeID string   `json:"-"` // From JWT or kiosk PIN
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	WorkType   WorkType `json:"work_type,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	// Latitude and longitude travel together
	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "latitude and longitude must be provided together",
		})
	}
	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.WorkType == "" {
		r.WorkType = WorkTypeRegular
	}
	if !r.WorkType.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "work_type",
			Message: "work_type must be one of: Regular, Remote, Field",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClockOutRequest struct {
	EmployeeID string  `json:"-"`
	Notes      *string `json:"notes,omitempty"`
}

func (r *ClockOutRequest) Validate() error {
	if validator.IsEmpty(r.EmployeeID) {
		return validator.ValidationErrors{{
			Field:   "employee_id",
			Message: "employee_id is required",
		}}
	}
	return nil
}

type KioskRequest struct {
	EmployeeCode string `json:"employee_code"`
	PIN          string `json:"pin"`
}

func (r *KioskRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code is required",
		})
	}
	if validator.IsEmpty(r.PIN) {
		errs = append(errs, validator.ValidationError{
			Field:   "pin",
			Message: "pin is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ClockResult carries the stored record and the message shown to the user.
type ClockResult struct {
	Attendance AttendanceResponse `json:"attendance"`
	Message    string             `json:"message"`
}

type AttendanceResponse struct {
	ID            string           `json:"id"`
	EmployeeID    string           `json:"employee_id"`
	EmployeeName  *string          `json:"employee_name,omitempty"`
	EmployeeCode  *string          `json:"employee_code,omitempty"`
	Date          string           `json:"date"`
	ClockIn       *string          `json:"clock_in,omitempty"`
	ClockOut      *string          `json:"clock_out,omitempty"`
	Status        Status           `json:"status"`
	WorkType      WorkType         `json:"work_type"`
	Latitude      *float64         `json:"latitude,omitempty"`
	Longitude     *float64         `json:"longitude,omitempty"`
	TotalHours    *decimal.Decimal `json:"total_hours,omitempty"`
	RegularHours  *decimal.Decimal `json:"regular_hours,omitempty"`
	OvertimeHours *decimal.Decimal `json:"overtime_hours,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	IsApproved    bool             `json:"is_approved"`
	ApprovedBy    *string          `json:"approved_by,omitempty"`
	ApprovedAt    *string          `json:"approved_at,omitempty"`
	CreatedAt     string           `json:"created_at"`
	UpdatedAt     string           `json:"updated_at"`
}

type ListAttendanceResponse struct {
	pagination.Page
	Attendances []AttendanceResponse `json:"attendances"`
}

type AttendanceFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *Status `json:"status,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`
	// PendingOnly lists records still waiting for approval
	PendingOnly bool `json:"pending_only,omitempty"`
	pagination.Params

	// Internal use
	Start *time.Time `json:"-"`
	End   *time.Time `json:"-"`
}

func (f *AttendanceFilter) Validate() error {
	errs := f.Params.Normalize()

	if f.Status != nil && !f.Status.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: Present, Late, Absent, HalfDay, OnLeave",
		})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if d, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		} else {
			f.Start = &d
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if d, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		} else {
			f.End = &d
		}
	}
	if f.Start != nil && f.End != nil && !validator.IsValidDateRange(*f.Start, *f.End) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be on or after start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateAttendanceRequest is a manual correction. Nil fields keep the stored
// value; hours are recomputed from the resulting pair.
type UpdateAttendanceRequest struct {
	ID       string  `json:"-"`
	ClockIn  *string `json:"clock_in,omitempty"`  // RFC3339
	ClockOut *string `json:"clock_out,omitempty"` // RFC3339
	Status   *Status `json:"status,omitempty"`
	Notes    *string `json:"notes,omitempty"`

	// Internal use
	ClockInParsed  *time.Time `json:"-"`
	ClockOutParsed *time.Time `json:"-"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.ClockIn != nil {
		if t, ok := validator.IsValidDateTime(*r.ClockIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_in",
				Message: "clock_in must be an RFC3339 timestamp",
			})
		} else {
			r.ClockInParsed = &t
		}
	}
	if r.ClockOut != nil {
		if t, ok := validator.IsValidDateTime(*r.ClockOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out",
				Message: "clock_out must be an RFC3339 timestamp",
			})
		} else {
			r.ClockOutParsed = &t
		}
	}
	if r.Status != nil && !r.Status.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: Present, Late, Absent, HalfDay, OnLeave",
		})
	}
	if r.ClockIn == nil && r.ClockOut == nil && r.Status == nil && r.Notes == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one field must be provided",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MarkAbsentRequest struct {
	Date string `json:"date"`

	// Internal use
	DateParsed time.Time `json:"-"`
}

func (r *MarkAbsentRequest) Validate() error {
	d, ok := validator.IsValidDate(r.Date)
	if !ok {
		return validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}
	r.DateParsed = d
	return nil
}

type MarkAbsentResponse struct {
	Date          string `json:"date"`
	MarkedAbsent  int    `json:"marked_absent"`
	MarkedOnLeave int    `json:"marked_on_leave"`
	Skipped       string `json:"skipped,omitempty"`
}
