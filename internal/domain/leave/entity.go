package leave

import (
	"time"
)

type LeaveType struct {
	ID          string
	Name        string
	DaysAllowed int // per calendar year
	IsPaid      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "Pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "Approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "Rejected"
)

func (s LeaveRequestStatus) IsValid() bool {
	switch s {
	case LeaveRequestStatusPending, LeaveRequestStatusApproved, LeaveRequestStatusRejected:
		return true
	}
	return false
}

type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	TotalDays   int
	Reason      *string
	Status      LeaveRequestStatus
	ProcessedBy *string
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	EmployeeName  *string
	LeaveTypeName *string
}

// Covers reports whether the calendar date falls inside the request.
func (r LeaveRequest) Covers(date time.Time) bool {
	return !date.Before(r.StartDate) && !date.After(r.EndDate)
}

// TotalDays counts calendar days from start to end inclusive.
func TotalDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// DaysInYear counts the days of start..end that fall in year. A request
// spanning New Year is charged to each year's balance separately.
func DaysInYear(start, end time.Time, year int) int {
	first := time.Date(year, time.January, 1, 0, 0, 0, 0, start.Location())
	last := time.Date(year, time.December, 31, 0, 0, 0, 0, start.Location())
	if start.Before(first) {
		start = first
	}
	if end.After(last) {
		end = last
	}
	if end.Before(start) {
		return 0
	}
	return TotalDays(start, end)
}
