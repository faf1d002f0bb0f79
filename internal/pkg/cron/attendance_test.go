package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worktrack/worktrack-backend-go/internal/domain/attendance"
	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
)

type markAbsentStub struct {
	attendance.AttendanceService
	dates []string
	err   error
}

func (s *markAbsentStub) MarkAbsent(_ context.Context, actor user.Actor, req attendance.MarkAbsentRequest) (attendance.MarkAbsentResponse, error) {
	if !actor.Can(user.PermissionAttendanceCorrect) {
		return attendance.MarkAbsentResponse{}, user.ErrInsufficientPermissions
	}
	if s.err != nil {
		return attendance.MarkAbsentResponse{}, s.err
	}
	s.dates = append(s.dates, req.Date)
	return attendance.MarkAbsentResponse{Date: req.Date, MarkedAbsent: 1}, nil
}

func TestMarkAbsentYesterday_OncePerDay(t *testing.T) {
	stub := &markAbsentStub{}
	jobs := NewAttendanceJobs(stub, time.UTC)
	now := time.Date(2025, 3, 11, 0, 30, 0, 0, time.UTC)
	jobs.now = func() time.Time { return now }

	ctx := context.Background()
	require.NoError(t, jobs.MarkAbsentYesterday(ctx))
	now = now.Add(5 * time.Hour)
	require.NoError(t, jobs.MarkAbsentYesterday(ctx))
	assert.Equal(t, []string{"2025-03-10"}, stub.dates)

	now = now.Add(24 * time.Hour)
	require.NoError(t, jobs.MarkAbsentYesterday(ctx))
	assert.Equal(t, []string{"2025-03-10", "2025-03-11"}, stub.dates)
}

func TestMarkAbsentYesterday_UsesLocation(t *testing.T) {
	stub := &markAbsentStub{}
	jobs := NewAttendanceJobs(stub, time.FixedZone("UTC+8", 8*60*60))
	// 20:00 UTC on the 10th is already the 11th at UTC+8.
	jobs.now = func() time.Time { return time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC) }

	require.NoError(t, jobs.MarkAbsentYesterday(context.Background()))
	assert.Equal(t, []string{"2025-03-10"}, stub.dates)
}

func TestMarkAbsentYesterday_RetriesAfterFailure(t *testing.T) {
	stub := &markAbsentStub{err: errors.New("db down")}
	jobs := NewAttendanceJobs(stub, time.UTC)
	jobs.now = func() time.Time { return time.Date(2025, 3, 11, 1, 0, 0, 0, time.UTC) }

	assert.Error(t, jobs.MarkAbsentYesterday(context.Background()))

	stub.err = nil
	require.NoError(t, jobs.MarkAbsentYesterday(context.Background()))
	assert.Equal(t, []string{"2025-03-10"}, stub.dates)
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler()
	var calls []string
	s.AddJob("a", time.Hour, func(context.Context) error { calls = append(calls, "a"); return nil })
	s.AddJob("b", time.Hour, func(context.Context) error { calls = append(calls, "b"); return errors.New("boom") })

	s.RunOnce(context.Background())
	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler()
	ran := make(chan struct{}, 1)
	s.AddJob("tick", time.Hour, func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start(context.Background())
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}
