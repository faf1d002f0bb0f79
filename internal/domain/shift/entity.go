package shift

import (
	"time"

	"github.com/worktrack/worktrack-backend-go/internal/pkg/worktime"
)

type Shift struct {
	ID                 string
	Name               string
	StartTime          string // HH:MM
	EndTime            string // HH:MM
	GracePeriodMinutes int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Schedule returns the part of the shift used to classify a clock-in.
func (s Shift) Schedule() worktime.Schedule {
	return worktime.Schedule{Start: s.StartTime, GraceMinutes: s.GracePeriodMinutes}
}
