package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Create inserts a record. A second record for the same employee and
	// date yields ErrAttendanceExists.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)
	GetByID(ctx context.Context, id string) (Attendance, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)
	// ListInRange returns every record with start <= work_date <= end,
	// ordered by work date then employee.
	ListInRange(ctx context.Context, start, end time.Time) ([]Attendance, error)
	// RecordClockOut only updates a record that has no clock-out yet;
	// otherwise it returns ErrAlreadyClockedOut.
	RecordClockOut(ctx context.Context, update ClockOutUpdate) error
	Correct(ctx context.Context, correction Correction) error
	Approve(ctx context.Context, id string, approvedBy string, approvedAt time.Time) error
}
