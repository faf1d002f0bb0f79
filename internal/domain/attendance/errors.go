package attendance

import "errors"

// Attendance domain errors
var (
	// Clock-in/out errors
	ErrAlreadyClockedIn  = errors.New("already clocked in")
	ErrNotClockedIn      = errors.New("no clock-in record found for today")
	ErrAlreadyClockedOut = errors.New("already clocked out today")

	// ErrAttendanceExists is returned by stores when (employee, date) is taken.
	ErrAttendanceExists = errors.New("attendance record already exists for this date")

	// General errors
	ErrAttendanceNotFound        = errors.New("attendance record not found")
	ErrUnauthorized              = errors.New("unauthorized to access this attendance record")
	ErrAttendanceAlreadyApproved = errors.New("attendance has already been approved")
)
