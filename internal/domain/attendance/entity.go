package attendance

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/worktime"
)

type Status string

const (
	StatusPresent Status = "Present"
	StatusLate    Status = "Late"
	StatusAbsent  Status = "Absent"
	StatusHalfDay Status = "HalfDay"
	StatusOnLeave Status = "OnLeave"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusAbsent, StatusHalfDay, StatusOnLeave:
		return true
	}
	return false
}

// StatusFromClassification maps a clock-in classification to a status.
func StatusFromClassification(c worktime.Classification) Status {
	if c == worktime.Late {
		return StatusLate
	}
	return StatusPresent
}

type WorkType string

const (
	WorkTypeRegular WorkType = "Regular"
	WorkTypeRemote  WorkType = "Remote"
	WorkTypeField   WorkType = "Field"
)

func (w WorkType) IsValid() bool {
	switch w {
	case WorkTypeRegular, WorkTypeRemote, WorkTypeField:
		return true
	}
	return false
}

// Attendance is one record per employee per calendar date. The status is a
// snapshot taken at clock-in and the hours are computed at clock-out.
type Attendance struct {
	ID            string
	EmployeeID    string
	WorkDate      time.Time
	ClockIn       *time.Time
	ClockOut      *time.Time
	Status        Status
	WorkType      WorkType
	Latitude      *float64
	Longitude     *float64
	TotalHours    *decimal.Decimal
	RegularHours  *decimal.Decimal
	OvertimeHours *decimal.Decimal
	Notes         *string
	IsApproved    bool
	ApprovedBy    *string
	ApprovedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO
	EmployeeName *string
	EmployeeCode *string
}

func (a Attendance) IsOpen() bool {
	return a.ClockIn != nil && a.ClockOut == nil
}

// ClockOutUpdate persists a clock-out and the hours derived from it.
type ClockOutUpdate struct {
	ID       string
	ClockOut time.Time
	Hours    worktime.Hours
	Notes    *string
}

// Correction is a manual edit of a record. Hours are always recomputed from
// the resulting timestamp pair before the correction is stored.
type Correction struct {
	ID       string
	ClockIn  *time.Time
	ClockOut *time.Time
	Status   Status
	Notes    *string
	Hours    worktime.Hours
}
