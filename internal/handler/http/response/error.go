package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/worktrack/worktrack-backend-go/internal/domain/announcement"
	"github.com/worktrack/worktrack-backend-go/internal/domain/attendance"
	"github.com/worktrack/worktrack-backend-go/internal/domain/auth"
	"github.com/worktrack/worktrack-backend-go/internal/domain/department"
	"github.com/worktrack/worktrack-backend-go/internal/domain/employee"
	"github.com/worktrack/worktrack-backend-go/internal/domain/expense"
	"github.com/worktrack/worktrack-backend-go/internal/domain/holiday"
	"github.com/worktrack/worktrack-backend-go/internal/domain/leave"
	"github.com/worktrack/worktrack-backend-go/internal/domain/payroll"
	"github.com/worktrack/worktrack-backend-go/internal/domain/shift"
	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/validator"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/worktime"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Configuration errors
	case errors.Is(err, worktime.ErrInvalidTimeOfDay),
		errors.Is(err, worktime.ErrNegativeGracePeriod),
		errors.Is(err, worktime.ErrInvalidHoursPolicy),
		errors.Is(err, payroll.ErrInvalidSettings):
		slog.Error("configuration error", "error", err)
		ConfigurationError(w, err.Error())

	// Auth and permission errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrIncorrectPassword):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrNoLinkedEmployee):
		Forbidden(w, "User is not linked to an employee")
	case errors.Is(err, attendance.ErrUnauthorized),
		errors.Is(err, expense.ErrUnauthorized),
		errors.Is(err, leave.ErrUnauthorized):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")

	// Attendance domain errors
	case errors.Is(err, worktime.ErrInvalidInterval):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in.")
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, "No clock-in record found for today")
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, "Already clocked out today")
	case errors.Is(err, attendance.ErrAttendanceExists):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrAttendanceAlreadyApproved):
		Conflict(w, "Attendance has already been approved")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrInvalidPIN):
		Unauthorized(w, err.Error())
	case errors.Is(err, employee.ErrPINNotSet):
		Forbidden(w, err.Error())
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is not active")
	case errors.Is(err, employee.ErrInvalidHourlyRate),
		errors.Is(err, employee.ErrInvalidEmployeeCode):
		BadRequest(w, err.Error(), nil)

	// Organization errors
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, department.ErrDepartmentNameExists),
		errors.Is(err, department.ErrDepartmentInUse):
		Conflict(w, err.Error())
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrShiftNameExists),
		errors.Is(err, shift.ErrShiftInUse):
		Conflict(w, err.Error())
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, err.Error())

	// Expense domain errors
	case errors.Is(err, expense.ErrExpenseNotFound):
		NotFound(w, "Expense not found")
	case errors.Is(err, expense.ErrExpenseAlreadyProcessed):
		Conflict(w, "Expense has already been approved or rejected")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrLeaveTypeNameExists),
		errors.Is(err, leave.ErrLeaveTypeInUse),
		errors.Is(err, leave.ErrOverlappingRequest):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")

	case errors.Is(err, announcement.ErrAnnouncementNotFound):
		NotFound(w, "Announcement not found")

	// Payroll domain errors
	case errors.Is(err, worktime.ErrInvalidPeriod),
		errors.Is(err, payroll.ErrUnsupportedExportFormat):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
