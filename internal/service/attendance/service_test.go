package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worktrack/worktrack-backend-go/internal/domain/attendance"
	"github.com/worktrack/worktrack-backend-go/internal/domain/employee"
	"github.com/worktrack/worktrack-backend-go/internal/domain/holiday"
	"github.com/worktrack/worktrack-backend-go/internal/domain/leave"
	"github.com/worktrack/worktrack-backend-go/internal/domain/shift"
	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/validator"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/worktime"
	"github.com/worktrack/worktrack-backend-go/internal/repository"
	"github.com/worktrack/worktrack-backend-go/internal/repository/gormstore"
	auditService "github.com/worktrack/worktrack-backend-go/internal/service/audit"
	employeeService "github.com/worktrack/worktrack-backend-go/internal/service/employee"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Set(layout string) {
	t, err := time.ParseInLocation("2006-01-02 15:04", layout, time.UTC)
	if err != nil {
		panic(err)
	}
	c.now = t
}

type fixture struct {
	repos   *repository.Repositories
	service attendance.AttendanceService
	clock   *fakeClock
	admin   user.Actor
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db, err := gormstore.OpenInMemory(t.Name())
	require.NoError(t, err)
	repos := repository.FromGorm(db)
	t.Cleanup(repos.Close)

	clock := &fakeClock{}
	clock.Set("2025-03-10 09:00")

	auditSvc := auditService.NewAuditService(repos.Audit)
	employeeSvc := employeeService.NewEmployeeService(repos.Employee, repos.Department, repos.Shift, auditSvc)
	svc := NewAttendanceService(
		repos.Attendance, repos.Employee, repos.Shift, repos.LeaveRequest, repos.Holiday,
		employeeSvc, auditSvc, DefaultPolicy(), WithClock(clock.Now),
	)

	return &fixture{
		repos:   repos,
		service: svc,
		clock:   clock,
		admin:   user.Actor{UserID: "admin", Role: user.RoleAdmin},
	}
}

func (f *fixture) createEmployee(t *testing.T, code string) employee.Employee {
	t.Helper()
	rate := decimal.RequireFromString("20.00")
	emp, err := f.repos.Employee.Create(context.Background(), employee.Employee{
		EmployeeCode: code,
		FirstName:    "Test",
		LastName:     code,
		Email:        code + "@example.com",
		HourlyRate:   &rate,
		Status:       employee.EmploymentStatusActive,
	})
	require.NoError(t, err)
	return emp
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestClockIn_Classification(t *testing.T) {
	tests := []struct {
		name string
		at   string
		want attendance.Status
	}{
		{"early", "2025-03-10 08:45", attendance.StatusPresent},
		{"on time", "2025-03-10 09:00", attendance.StatusPresent},
		{"end of grace period", "2025-03-10 09:15", attendance.StatusPresent},
		{"after grace period", "2025-03-10 09:16", attendance.StatusLate},
		{"afternoon", "2025-03-10 13:00", attendance.StatusLate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			emp := f.createEmployee(t, "EMP-001")
			f.clock.Set(tt.at)

			result, err := f.service.ClockIn(context.Background(), attendance.ClockInRequest{EmployeeID: emp.ID})
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Attendance.Status)
			assert.Equal(t, "2025-03-10", result.Attendance.Date)
			assert.Equal(t, attendance.WorkTypeRegular, result.Attendance.WorkType)
			assert.Contains(t, result.Message, string(tt.want))
		})
	}
}

func TestClockIn_UsesAssignedShift(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	emp := f.createEmployee(t, "EMP-001")

	sh, err := f.repos.Shift.Create(ctx, shift.Shift{Name: "Late", StartTime: "11:00", EndTime: "19:00", GracePeriodMinutes: 5})
	require.NoError(t, err)
	require.NoError(t, f.repos.Employee.UpdateShift(ctx, emp.ID, &sh.ID))

	// Late against the default 09:00 schedule, on time for the assigned one.
	f.clock.Set("2025-03-10 11:04")
	result, err := f.service.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: emp.ID})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, result.Attendance.Status)
}

func TestClockIn_Duplicate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	emp := f.createEmployee(t, "EMP-001")

	_, err := f.service.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: emp.ID})
	require.NoError(t, err)

	f.clock.Set("2025-03-10 10:00")
	_, err = f.service.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: emp.ID})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)

	// The next day is a new record.
	f.clock.Set("2025-03-11 09:00")
	_, err = f.service.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: emp.ID})
	assert.NoError(t, err)
}

// hiddenTodayRepository reports no record for today, as a concurrent request
// would see before the other one commits.
type hiddenTodayRepository struct {
	attendance.AttendanceRepository
}

func (r hiddenTodayRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func TestClockIn_UniqueIndexIsTheGuard(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	emp := f.createEmployee(t, "EMP-001")

	_, err := f.service.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: emp.ID})
	require.NoError(t, err)

	auditSvc := auditService.NewAuditService(f.repos.Audit)
	racing := NewAttendanceService(
		hiddenTodayRepository{f.repos.Attendance}, f.repos.Employee, f.repos.Shift, f.repos.LeaveRequest, f.repos.Holiday,
		employeeService.NewEmployeeService(f.repos.Employee, f.repos.Department, f.repos.Shift, auditSvc),
		auditSvc, DefaultPolicy(), WithClock(f.clock.Now),
	)

	f.clock.Set("2025-03-10 09:01")
	_, err = racing.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: emp.ID})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)

	records, err := f.repos.Attendance.ListInRange(ctx, date("2025-03-10"), date("2025-03-10"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, attendance.StatusPresent, records[0].Status)
}

func TestClockIn_StatusIsSnapshotted(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	emp := f.createEmployee(t, "EMP-001")

	sh, err := f.repos.Shift.Create(ctx, shift.Shift{Name: "Day", StartTime: "09:00", EndTime: "17:00", GracePeriodMinutes: 15})
	require.NoError(t, err)
	require.NoError(t, f.repos.Employee.UpdateShift(ctx, emp.ID, &sh.ID))

	f.clock.Set("2025-03-10 09:10")
	in, err := f.service.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: emp.ID})
	require.NoError(t, err)
	require.Equal(t, attendance.StatusPresent, in.Attendance.Status)

	// 09:10 would be late against the edited shift.
	start, grace := "08:00", 0
	require.NoError(t, f.repos.Shift.Update(ctx, shift.UpdateShiftRequest{ID: sh.ID, StartTime: &start, GracePeriodMinutes: &grace}))

	stored, err := f.repos.Attendance.GetByID(ctx, in.Attendance.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, stored.Status)

	f.clock.Set("2025-03-10 17:00")
	out, err := f.service.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: emp.ID})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, out.Attendance.Status)
}

func TestClockIn_InactiveEmployee(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	emp := f.createEmployee(t, "EMP-001")
	require.NoError(t, f.repos.Employee.UpdateStatus(ctx, emp.ID, employee.EmploymentStatusInactive))

	_, err := f.service.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: emp.ID})
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestClockIn_Validation(t *testing.T) {
	f := setup(t)
	lat := 10.0

	_, err := f.service.ClockIn(context.Background(), attendance.ClockInRequest{EmployeeID: "x", Latitude: &lat})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestClockOut(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	emp := f.createEmployee(t, "EMP-001")

	_, err := f.service.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: emp.ID})
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)

	_, err = f.service.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: emp.ID})
	require.NoError(t, err)

	f.clock.Set("2025-03-10 18:30")
	result, err := f.service.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: emp.ID})
	require.NoError(t, err)

	require.NotNil(t, result.Attendance.TotalHours)
	assert.Equal(t, "8.50", result.Attendance.TotalHours.StringFixed(2))
	assert.Equal(t, "8.00", result.Attendance.RegularHours.StringFixed(2))
	assert.Equal(t, "0.50", result.Attendance.OvertimeHours.StringFixed(2))
	assert.Equal(t, "Clocked out at 18:30. Worked 8.50 hours (8.00 regular, 0.50 overtime).", result.Message)

	stored, err := f.repos.Attendance.GetByEmployeeAndDate(ctx, emp.ID, date("2025-03-10"))
	require.NoError(t, err)
	require.NotNil(t, stored.TotalHours)
	assert.True(t, stored.TotalHours.Equal(stored.RegularHours.Add(*stored.OvertimeHours)))

	f.clock.Set("2025-03-10 19:00")
	_, err = f.service.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: emp.ID})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)
}

func TestClockOut_ClockMovedBackwards(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	emp := f.createEmployee(t, "EMP-001")

	f.clock.Set("2025-03-10 12:00")
	_, err := f.service.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: emp.ID})
	require.NoError(t, err)

	f.clock.Set("2025-03-10 11:00")
	_, err = f.service.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: emp.ID})
	assert.ErrorIs(t, err, worktime.ErrInvalidInterval)

	stored, err := f.repos.Attendance.GetByEmployeeAndDate(ctx, emp.ID, date("2025-03-10"))
	require.NoError(t, err)
	assert.Nil(t, stored.ClockOut)
	assert.Nil(t, stored.TotalHours)
}

func TestClockOut_KeepsClockInNotes(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	emp := f.createEmployee(t, "EMP-001")
	notes := "client visit"

	_, err := f.service.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: emp.ID, Notes: &notes})
	require.NoError(t, err)

	f.clock.Set("2025-03-10 17:00")
	result, err := f.service.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: emp.ID})
	require.NoError(t, err)
	require.NotNil(t, result.Attendance.Notes)
	assert.Equal(t, notes, *result.Attendance.Notes)
}

func TestClockOut_OvernightShift(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	emp := f.createEmployee(t, "EMP-001")

	sh, err := f.repos.Shift.Create(ctx, shift.Shift{Name: "Night", StartTime: "22:00", EndTime: "06:00", GracePeriodMinutes: 10})
	require.NoError(t, err)
	require.NoError(t, f.repos.Employee.UpdateShift(ctx, emp.ID, &sh.ID))

	f.clock.Set("2025-03-10 22:05")
	in, err := f.service.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: emp.ID})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, in.Attendance.Status)

	f.clock.Set("2025-03-11 06:10")
	out, err := f.service.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: emp.ID})
	require.NoError(t, err)
	assert.Equal(t, in.Attendance.ID, out.Attendance.ID)
	assert.Equal(t, "2025-03-10", out.Attendance.Date)
	assert.Equal(t, "7.08", out.Attendance.TotalHours.StringFixed(2))
}

func TestKioskClockIn(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	emp := f.createEmployee(t, "EMP-001")

	_, err := f.service.KioskClockIn(ctx, attendance.KioskRequest{EmployeeCode: "EMP-001", PIN: "1234"})
	assert.ErrorIs(t, err, employee.ErrPINNotSet)

	auditSvc := auditService.NewAuditService(f.repos.Audit)
	employeeSvc := employeeService.NewEmployeeService(f.repos.Employee, f.repos.Department, f.repos.Shift, auditSvc)
	require.NoError(t, employeeSvc.SetPIN(ctx, f.admin, employee.SetPINRequest{EmployeeID: emp.ID, PIN: "1234"}))

	_, err = f.service.KioskClockIn(ctx, attendance.KioskRequest{EmployeeCode: "EMP-001", PIN: "0000"})
	assert.ErrorIs(t, err, employee.ErrInvalidPIN)

	result, err := f.service.KioskClockIn(ctx, attendance.KioskRequest{EmployeeCode: "EMP-001", PIN: "1234"})
	require.NoError(t, err)
	assert.Equal(t, emp.ID, result.Attendance.EmployeeID)

	f.clock.Set("2025-03-10 17:00")
	result, err = f.service.KioskClockOut(ctx, attendance.KioskRequest{EmployeeCode: "EMP-001", PIN: "1234"})
	require.NoError(t, err)
	assert.NotNil(t, result.Attendance.ClockOut)
}

func TestMarkAbsent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	worked := f.createEmployee(t, "EMP-001")
	onLeave := f.createEmployee(t, "EMP-002")
	f.createEmployee(t, "EMP-003")

	// Friday before the clock's Monday
	f.clock.Set("2025-03-07 09:00")
	_, err := f.service.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: worked.ID})
	require.NoError(t, err)

	lt, err := f.repos.LeaveType.Create(ctx, leave.LeaveType{Name: "Annual", DaysAllowed: 12, IsPaid: true})
	require.NoError(t, err)
	_, err = f.repos.LeaveRequest.Create(ctx, leave.LeaveRequest{
		EmployeeID:  onLeave.ID,
		LeaveTypeID: lt.ID,
		StartDate:   date("2025-03-06"),
		EndDate:     date("2025-03-07"),
		TotalDays:   2,
		Status:      leave.LeaveRequestStatusApproved,
	})
	require.NoError(t, err)

	f.clock.Set("2025-03-10 08:00")
	result, err := f.service.MarkAbsent(ctx, f.admin, attendance.MarkAbsentRequest{Date: "2025-03-07"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.MarkedAbsent)
	assert.Equal(t, 1, result.MarkedOnLeave)
	assert.Empty(t, result.Skipped)

	rec, err := f.repos.Attendance.GetByEmployeeAndDate(ctx, onLeave.ID, date("2025-03-07"))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOnLeave, rec.Status)
	assert.Nil(t, rec.ClockIn)

	t.Run("idempotent", func(t *testing.T) {
		again, err := f.service.MarkAbsent(ctx, f.admin, attendance.MarkAbsentRequest{Date: "2025-03-07"})
		require.NoError(t, err)
		assert.Zero(t, again.MarkedAbsent)
		assert.Zero(t, again.MarkedOnLeave)
	})

	t.Run("weekend", func(t *testing.T) {
		res, err := f.service.MarkAbsent(ctx, f.admin, attendance.MarkAbsentRequest{Date: "2025-03-08"})
		require.NoError(t, err)
		assert.Equal(t, "weekend", res.Skipped)
		assert.Zero(t, res.MarkedAbsent)
	})

	t.Run("holiday", func(t *testing.T) {
		_, err := f.repos.Holiday.Create(ctx, holiday.Holiday{Date: date("2025-03-05"), Name: "Founders Day"})
		require.NoError(t, err)

		res, err := f.service.MarkAbsent(ctx, f.admin, attendance.MarkAbsentRequest{Date: "2025-03-05"})
		require.NoError(t, err)
		assert.Equal(t, "holiday", res.Skipped)
	})

	t.Run("today is rejected", func(t *testing.T) {
		_, err := f.service.MarkAbsent(ctx, f.admin, attendance.MarkAbsentRequest{Date: "2025-03-10"})
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})

	t.Run("requires permission", func(t *testing.T) {
		empID := worked.ID
		actor := user.Actor{UserID: "u1", EmployeeID: &empID, Role: user.RoleEmployee}
		_, err := f.service.MarkAbsent(ctx, actor, attendance.MarkAbsentRequest{Date: "2025-03-07"})
		assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
	})
}

func TestCorrect_RecomputesHours(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	emp := f.createEmployee(t, "EMP-001")

	in, err := f.service.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: emp.ID})
	require.NoError(t, err)
	f.clock.Set("2025-03-10 17:00")
	_, err = f.service.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: emp.ID})
	require.NoError(t, err)

	clockOut := "2025-03-10T20:00:00Z"
	updated, err := f.service.Correct(ctx, f.admin, attendance.UpdateAttendanceRequest{
		ID:       in.Attendance.ID,
		ClockOut: &clockOut,
	})
	require.NoError(t, err)
	assert.Equal(t, "10.00", updated.TotalHours.StringFixed(2))
	assert.Equal(t, "8.00", updated.RegularHours.StringFixed(2))
	assert.Equal(t, "2.00", updated.OvertimeHours.StringFixed(2))

	t.Run("clock-out before clock-in", func(t *testing.T) {
		early := "2025-03-10T08:00:00Z"
		_, err := f.service.Correct(ctx, f.admin, attendance.UpdateAttendanceRequest{
			ID:       in.Attendance.ID,
			ClockOut: &early,
		})
		assert.ErrorIs(t, err, worktime.ErrInvalidInterval)

		stored, err := f.repos.Attendance.GetByID(ctx, in.Attendance.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.ClockOut)
		assert.True(t, stored.ClockOut.Equal(time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)))
		assert.Equal(t, "10.00", stored.TotalHours.StringFixed(2))
		assert.Equal(t, "2.00", stored.OvertimeHours.StringFixed(2))
	})

	t.Run("employees cannot correct", func(t *testing.T) {
		empID := emp.ID
		actor := user.Actor{UserID: "u1", EmployeeID: &empID, Role: user.RoleEmployee}
		_, err := f.service.Correct(ctx, actor, attendance.UpdateAttendanceRequest{ID: in.Attendance.ID, ClockOut: &clockOut})
		assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
	})
}

func TestApprove(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	emp := f.createEmployee(t, "EMP-001")

	in, err := f.service.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: emp.ID})
	require.NoError(t, err)

	approved, err := f.service.Approve(ctx, f.admin, in.Attendance.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	_, err = f.service.Approve(ctx, f.admin, in.Attendance.ID)
	assert.ErrorIs(t, err, attendance.ErrAttendanceAlreadyApproved)
}

func TestGet_OwnRecordsOnly(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	a := f.createEmployee(t, "EMP-001")
	b := f.createEmployee(t, "EMP-002")

	in, err := f.service.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: a.ID})
	require.NoError(t, err)

	aID, bID := a.ID, b.ID
	_, err = f.service.Get(ctx, user.Actor{UserID: "ua", EmployeeID: &aID, Role: user.RoleEmployee}, in.Attendance.ID)
	assert.NoError(t, err)

	_, err = f.service.Get(ctx, user.Actor{UserID: "ub", EmployeeID: &bID, Role: user.RoleEmployee}, in.Attendance.ID)
	assert.ErrorIs(t, err, attendance.ErrUnauthorized)
}
