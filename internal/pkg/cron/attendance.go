package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/worktrack/worktrack-backend-go/internal/domain/attendance"
	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/worktime"
)

// AttendanceJobs closes out past working days by recording Absent or
// OnLeave for employees without attendance.
type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	location          *time.Location
	now               func() time.Time

	mu      sync.Mutex
	lastRun time.Time // civil date last marked
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, location *time.Location) *AttendanceJobs {
	if location == nil {
		location = time.UTC
	}
	return &AttendanceJobs{
		attendanceService: attendanceService,
		location:          location,
		now:               time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_employees", 1*time.Hour, j.MarkAbsentYesterday)
}

// MarkAbsentYesterday marks the previous civil day once per day. The
// service skips weekends and holidays and never duplicates records.
func (j *AttendanceJobs) MarkAbsentYesterday(ctx context.Context) error {
	yesterday := worktime.CivilDate(j.now().In(j.location)).AddDate(0, 0, -1)

	j.mu.Lock()
	done := j.lastRun.Equal(yesterday)
	j.mu.Unlock()
	if done {
		return nil
	}

	system := user.Actor{Role: user.RoleAdmin}
	result, err := j.attendanceService.MarkAbsent(ctx, system, attendance.MarkAbsentRequest{
		Date: yesterday.Format(worktime.DateLayout),
	})
	if err != nil {
		return fmt.Errorf("failed to mark absent for %s: %w", yesterday.Format(worktime.DateLayout), err)
	}

	j.mu.Lock()
	j.lastRun = yesterday
	j.mu.Unlock()

	slog.Info("Cron: marked missing attendance",
		slog.String("date", result.Date),
		slog.Int("absent", result.MarkedAbsent),
		slog.Int("on_leave", result.MarkedOnLeave),
		slog.String("skipped", result.Skipped),
	)
	return nil
}
