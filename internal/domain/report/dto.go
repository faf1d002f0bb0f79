package report

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/validator"
)

// maxRangeDays bounds a report query.
const maxRangeDays = 366

type DateRangeRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	// Internal use
	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

func (r *DateRangeRequest) Validate() error {
	var errs validator.ValidationErrors

	start, ok := validator.IsValidDate(r.StartDate)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, ok := validator.IsValidDate(r.EndDate)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if len(errs) > 0 {
		return errs
	}

	if !validator.IsValidDateRange(start, end) {
		return validator.ValidationErrors{{
			Field:   "end_date",
			Message: "end_date must be on or after start_date",
		}}
	}
	if end.Sub(start) > maxRangeDays*24*time.Hour {
		return validator.ValidationErrors{{
			Field:   "end_date",
			Message: "range must not exceed 366 days",
		}}
	}

	r.Start, r.End = start, end
	return nil
}

type AttendanceSummaryLine struct {
	EmployeeID    string          `json:"employee_id"`
	Name          string          `json:"name"`
	Department    string          `json:"department"`
	DaysPresent   int             `json:"days_present"`
	DaysLate      int             `json:"days_late"`
	DaysAbsent    int             `json:"days_absent"`
	DaysHalfDay   int             `json:"days_half_day"`
	DaysOnLeave   int             `json:"days_on_leave"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	RegularHours  decimal.Decimal `json:"regular_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
}

type AttendanceSummaryReport struct {
	StartDate string                  `json:"start_date"`
	EndDate   string                  `json:"end_date"`
	Lines     []AttendanceSummaryLine `json:"lines"`
}

type DepartmentOvertimeLine struct {
	Department    string          `json:"department"`
	Employees     int             `json:"employees"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
}

type OvertimeReport struct {
	StartDate   string                   `json:"start_date"`
	EndDate     string                   `json:"end_date"`
	Departments []DepartmentOvertimeLine `json:"departments"`
}
