package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/worktrack/worktrack-backend-go/internal/domain/attendance"
	"github.com/worktrack/worktrack-backend-go/internal/domain/audit"
	"github.com/worktrack/worktrack-backend-go/internal/domain/employee"
	"github.com/worktrack/worktrack-backend-go/internal/domain/holiday"
	"github.com/worktrack/worktrack-backend-go/internal/domain/leave"
	"github.com/worktrack/worktrack-backend-go/internal/domain/shift"
	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/pagination"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/validator"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/worktime"
)

// Policy is the attendance configuration.
type Policy struct {
	// DefaultSchedule applies to employees without a resolvable shift.
	DefaultSchedule worktime.Schedule
	Hours           worktime.HoursPolicy
	Location        *time.Location
}

func DefaultPolicy() Policy {
	return Policy{
		DefaultSchedule: worktime.DefaultSchedule(),
		Hours:           worktime.DefaultHoursPolicy(),
		Location:        time.UTC,
	}
}

type Option func(*AttendanceServiceImpl)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *AttendanceServiceImpl) {
		s.now = now
	}
}

type AttendanceServiceImpl struct {
	attendanceRepo   attendance.AttendanceRepository
	employeeRepo     employee.EmployeeRepository
	shiftRepo        shift.ShiftRepository
	leaveRequestRepo leave.LeaveRequestRepository
	holidayRepo      holiday.HolidayRepository
	employeeService  employee.EmployeeService
	auditService     audit.AuditService
	policy           Policy
	now              func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	shiftRepo shift.ShiftRepository,
	leaveRequestRepo leave.LeaveRequestRepository,
	holidayRepo holiday.HolidayRepository,
	employeeService employee.EmployeeService,
	auditService audit.AuditService,
	policy Policy,
	opts ...Option,
) attendance.AttendanceService {
	if policy.Location == nil {
		policy.Location = time.UTC
	}
	s := &AttendanceServiceImpl{
		attendanceRepo:   attendanceRepo,
		employeeRepo:     employeeRepo,
		shiftRepo:        shiftRepo,
		leaveRequestRepo: leaveRequestRepo,
		holidayRepo:      holidayRepo,
		employeeService:  employeeService,
		auditService:     auditService,
		policy:           policy,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AttendanceServiceImpl) localNow() time.Time {
	return s.now().In(s.policy.Location)
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.ClockResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.ClockResult{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.ClockResult{}, err
	}
	if !emp.IsActive() {
		return attendance.ClockResult{}, employee.ErrEmployeeInactive
	}

	now := s.localNow()
	workDate := worktime.CivilDate(now)

	// The unique (employee, date) index is the real guard; this only avoids
	// resolving a shift for nothing.
	if _, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, workDate); err == nil {
		return attendance.ClockResult{}, attendance.ErrAlreadyClockedIn
	} else if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.ClockResult{}, fmt.Errorf("failed to check today's attendance: %w", err)
	}

	schedule, err := s.resolveSchedule(ctx, emp)
	if err != nil {
		return attendance.ClockResult{}, err
	}

	classification, err := schedule.Classify(now)
	if err != nil {
		return attendance.ClockResult{}, fmt.Errorf("shift for employee %s: %w", emp.ID, err)
	}

	created, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
		EmployeeID: emp.ID,
		WorkDate:   workDate,
		ClockIn:    &now,
		Status:     attendance.StatusFromClassification(classification),
		WorkType:   req.WorkType,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Notes:      req.Notes,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceExists) {
			return attendance.ClockResult{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.ClockResult{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	slog.Info("employee clocked in",
		slog.String("employee_id", emp.ID),
		slog.String("status", string(created.Status)),
		slog.String("shift_start", schedule.Start),
	)

	return attendance.ClockResult{
		Attendance: s.mapAttendanceToResponse(created),
		Message:    fmt.Sprintf("Clocked in at %s (%s)", now.Format("15:04"), created.Status),
	}, nil
}

// resolveSchedule falls back to the default schedule when the employee has no
// shift or the shift no longer exists.
func (s *AttendanceServiceImpl) resolveSchedule(ctx context.Context, emp employee.Employee) (worktime.Schedule, error) {
	if emp.ShiftID == nil || *emp.ShiftID == "" {
		return s.policy.DefaultSchedule, nil
	}

	sh, err := s.shiftRepo.GetByID(ctx, *emp.ShiftID)
	if err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			slog.Warn("assigned shift not found, using default schedule",
				slog.String("employee_id", emp.ID),
				slog.String("shift_id", *emp.ShiftID),
			)
			return s.policy.DefaultSchedule, nil
		}
		return worktime.Schedule{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return sh.Schedule(), nil
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.ClockResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.ClockResult{}, err
	}

	now := s.localNow()
	rec, err := s.openRecord(ctx, req.EmployeeID, worktime.CivilDate(now))
	if err != nil {
		return attendance.ClockResult{}, err
	}

	hours, err := worktime.ComputeHours(rec.ClockIn, &now, s.policy.Hours)
	if err != nil {
		return attendance.ClockResult{}, err
	}

	notes := rec.Notes
	if req.Notes != nil {
		notes = req.Notes
	}
	if err := s.attendanceRepo.RecordClockOut(ctx, attendance.ClockOutUpdate{
		ID:       rec.ID,
		ClockOut: now,
		Hours:    hours,
		Notes:    notes,
	}); err != nil {
		return attendance.ClockResult{}, err
	}

	rec.ClockOut = &now
	rec.TotalHours = &hours.Total
	rec.RegularHours = &hours.Regular
	rec.OvertimeHours = &hours.Overtime
	rec.Notes = notes

	slog.Info("employee clocked out",
		slog.String("employee_id", rec.EmployeeID),
		slog.String("total_hours", hours.Total.String()),
	)

	return attendance.ClockResult{
		Attendance: s.mapAttendanceToResponse(rec),
		Message: fmt.Sprintf("Clocked out at %s. Worked %s hours (%s regular, %s overtime).",
			now.Format("15:04"),
			hours.Total.StringFixed(2),
			hours.Regular.StringFixed(2),
			hours.Overtime.StringFixed(2),
		),
	}, nil
}

// openRecord finds the record to clock out: today's, or yesterday's when it
// is still open (overnight shifts).
func (s *AttendanceServiceImpl) openRecord(ctx context.Context, employeeID string, today time.Time) (attendance.Attendance, error) {
	rec, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today)
	if err == nil {
		if rec.ClockIn == nil {
			return attendance.Attendance{}, attendance.ErrNotClockedIn
		}
		if rec.ClockOut != nil {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedOut
		}
		return rec, nil
	}
	if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.Attendance{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	prev, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today.AddDate(0, 0, -1))
	if err == nil && prev.IsOpen() {
		return prev, nil
	}
	if err != nil && !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.Attendance{}, fmt.Errorf("failed to get previous attendance: %w", err)
	}
	return attendance.Attendance{}, attendance.ErrNotClockedIn
}

// KioskClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) KioskClockIn(ctx context.Context, req attendance.KioskRequest) (attendance.ClockResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.ClockResult{}, err
	}
	emp, err := s.employeeService.VerifyPIN(ctx, req.EmployeeCode, req.PIN)
	if err != nil {
		return attendance.ClockResult{}, err
	}
	return s.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: emp.ID, WorkType: attendance.WorkTypeRegular})
}

// KioskClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) KioskClockOut(ctx context.Context, req attendance.KioskRequest) (attendance.ClockResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.ClockResult{}, err
	}
	emp, err := s.employeeService.VerifyPIN(ctx, req.EmployeeCode, req.PIN)
	if err != nil {
		return attendance.ClockResult{}, err
	}
	return s.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: emp.ID})
}

// Get implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Get(ctx context.Context, actor user.Actor, id string) (attendance.AttendanceResponse, error) {
	rec, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if !actor.Can(user.PermissionAttendanceViewAll) {
		empID, err := actor.Employee()
		if err != nil || empID != rec.EmployeeID || !actor.Can(user.PermissionAttendanceViewOwn) {
			return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
		}
	}

	return s.mapAttendanceToResponse(rec), nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, actor user.Actor, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := actor.Require(user.PermissionAttendanceViewAll); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	return s.list(ctx, filter)
}

// MyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MyAttendance(ctx context.Context, actor user.Actor, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := actor.Require(user.PermissionAttendanceViewOwn); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	empID, err := actor.Employee()
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	filter.EmployeeID = &empID
	return s.list(ctx, filter)
}

func (s *AttendanceServiceImpl) list(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, s.mapAttendanceToResponse(rec))
	}

	return attendance.ListAttendanceResponse{
		Page:        pagination.NewPage(filter.Params, total, len(responses)),
		Attendances: responses,
	}, nil
}

// Correct implements attendance.AttendanceService.
// This is the only path that recomputes hours of a closed record.
func (s *AttendanceServiceImpl) Correct(ctx context.Context, actor user.Actor, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := actor.Require(user.PermissionAttendanceCorrect); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	rec, err := s.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	clockIn, clockOut := rec.ClockIn, rec.ClockOut
	if req.ClockInParsed != nil {
		t := req.ClockInParsed.In(s.policy.Location)
		clockIn = &t
	}
	if req.ClockOutParsed != nil {
		t := req.ClockOutParsed.In(s.policy.Location)
		clockOut = &t
	}
	if clockIn == nil && clockOut != nil {
		return attendance.AttendanceResponse{}, validator.ValidationErrors{{
			Field:   "clock_out",
			Message: "clock_out requires a clock_in",
		}}
	}
	if clockIn != nil && !worktime.CivilDate(*clockIn).Equal(rec.WorkDate) {
		return attendance.AttendanceResponse{}, validator.ValidationErrors{{
			Field:   "clock_in",
			Message: "clock_in must be on the attendance date " + rec.WorkDate.Format(worktime.DateLayout),
		}}
	}

	hours, err := worktime.ComputeHours(clockIn, clockOut, s.policy.Hours)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	status := rec.Status
	if req.Status != nil {
		status = *req.Status
	}
	notes := rec.Notes
	if req.Notes != nil {
		notes = req.Notes
	}

	if err := s.attendanceRepo.Correct(ctx, attendance.Correction{
		ID:       rec.ID,
		ClockIn:  clockIn,
		ClockOut: clockOut,
		Status:   status,
		Notes:    notes,
		Hours:    hours,
	}); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to correct attendance: %w", err)
	}

	s.auditService.Record(ctx, actor, audit.ActionUpdate, "attendances", rec.ID,
		fmt.Sprintf("Corrected attendance: status=%s total_hours=%s", status, hours.Total.StringFixed(2)))

	updated, err := s.attendanceRepo.GetByID(ctx, rec.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return s.mapAttendanceToResponse(updated), nil
}

// Approve implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Approve(ctx context.Context, actor user.Actor, id string) (attendance.AttendanceResponse, error) {
	if err := actor.Require(user.PermissionAttendanceApprove); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	rec, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if rec.IsApproved {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceAlreadyApproved
	}

	if err := s.attendanceRepo.Approve(ctx, id, actor.UserID, s.localNow()); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to approve attendance: %w", err)
	}

	updated, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return s.mapAttendanceToResponse(updated), nil
}

// MarkAbsent implements attendance.AttendanceService.
// Running it twice for the same date does not create duplicates.
func (s *AttendanceServiceImpl) MarkAbsent(ctx context.Context, actor user.Actor, req attendance.MarkAbsentRequest) (attendance.MarkAbsentResponse, error) {
	if err := actor.Require(user.PermissionAttendanceCorrect); err != nil {
		return attendance.MarkAbsentResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.MarkAbsentResponse{}, err
	}

	date := req.DateParsed
	result := attendance.MarkAbsentResponse{Date: date.Format(worktime.DateLayout)}

	if !date.Before(worktime.CivilDate(s.localNow())) {
		return result, validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be before today",
		}}
	}

	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		result.Skipped = "weekend"
		return result, nil
	}

	isHoliday, err := s.holidayRepo.IsHoliday(ctx, date)
	if err != nil {
		return result, fmt.Errorf("failed to check holiday: %w", err)
	}
	if isHoliday {
		result.Skipped = "holiday"
		return result, nil
	}

	leaves, err := s.leaveRequestRepo.ListApprovedCovering(ctx, date)
	if err != nil {
		return result, fmt.Errorf("failed to list approved leave: %w", err)
	}
	onLeave := make(map[string]bool, len(leaves))
	for _, l := range leaves {
		onLeave[l.EmployeeID] = true
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list employees: %w", err)
	}

	for _, emp := range employees {
		status := attendance.StatusAbsent
		if onLeave[emp.ID] {
			status = attendance.StatusOnLeave
		}

		_, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
			EmployeeID: emp.ID,
			WorkDate:   date,
			Status:     status,
			WorkType:   attendance.WorkTypeRegular,
		})
		if errors.Is(err, attendance.ErrAttendanceExists) {
			continue
		}
		if err != nil {
			slog.Error("failed to mark attendance",
				slog.String("employee_id", emp.ID),
				slog.String("date", result.Date),
				slog.String("error", err.Error()),
			)
			continue
		}

		if status == attendance.StatusOnLeave {
			result.MarkedOnLeave++
		} else {
			result.MarkedAbsent++
		}
	}

	slog.Info("marked missing attendance",
		slog.String("date", result.Date),
		slog.Int("absent", result.MarkedAbsent),
		slog.Int("on_leave", result.MarkedOnLeave),
	)

	return result, nil
}

func (s *AttendanceServiceImpl) formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.In(s.policy.Location).Format(time.RFC3339)
	return &v
}

// mapAttendanceToResponse converts an Attendance entity to AttendanceResponse
func (s *AttendanceServiceImpl) mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:            att.ID,
		EmployeeID:    att.EmployeeID,
		EmployeeName:  att.EmployeeName,
		EmployeeCode:  att.EmployeeCode,
		Date:          att.WorkDate.Format(worktime.DateLayout),
		ClockIn:       s.formatTime(att.ClockIn),
		ClockOut:      s.formatTime(att.ClockOut),
		Status:        att.Status,
		WorkType:      att.WorkType,
		Latitude:      att.Latitude,
		Longitude:     att.Longitude,
		TotalHours:    att.TotalHours,
		RegularHours:  att.RegularHours,
		OvertimeHours: att.OvertimeHours,
		Notes:         att.Notes,
		IsApproved:    att.IsApproved,
		ApprovedBy:    att.ApprovedBy,
		ApprovedAt:    s.formatTime(att.ApprovedAt),
		CreatedAt:     att.CreatedAt.In(s.policy.Location).Format(time.RFC3339),
		UpdatedAt:     att.UpdatedAt.In(s.policy.Location).Format(time.RFC3339),
	}
}
