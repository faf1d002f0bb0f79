//go:build integration

package postgresql

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/worktrack/worktrack-backend-go/internal/domain/announcement"
	"github.com/worktrack/worktrack-backend-go/internal/domain/attendance"
	"github.com/worktrack/worktrack-backend-go/internal/domain/audit"
	"github.com/worktrack/worktrack-backend-go/internal/domain/department"
	"github.com/worktrack/worktrack-backend-go/internal/domain/employee"
	"github.com/worktrack/worktrack-backend-go/internal/domain/expense"
	"github.com/worktrack/worktrack-backend-go/internal/domain/holiday"
	"github.com/worktrack/worktrack-backend-go/internal/domain/leave"
	"github.com/worktrack/worktrack-backend-go/internal/domain/shift"
	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/database"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/pagination"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/worktime"
)

var testDB *database.DB

func TestMain(m *testing.M) {
	ctx := context.Background()

	dsn := os.Getenv("TEST_DATABASE_URL")
	var container *postgres.PostgresContainer
	if dsn == "" {
		var err error
		container, err = postgres.Run(ctx,
			"postgres:17-alpine",
			postgres.WithDatabase("worktrack_test"),
			postgres.WithUsername("test"),
			postgres.WithPassword("test"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second),
			),
		)
		if err != nil {
			panic(err)
		}
		dsn, err = container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			panic(err)
		}
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolConfig{MaxConns: 5, MinConns: 1})
	if err != nil {
		panic(err)
	}
	if err := Migrate(ctx, db); err != nil {
		panic(err)
	}
	testDB = db

	code := m.Run()

	db.Close()
	if container != nil {
		_ = container.Terminate(ctx)
	}
	os.Exit(code)
}

func setupDB(t *testing.T) *database.DB {
	t.Helper()
	_, err := testDB.Exec(context.Background(), `
		TRUNCATE announcements, audit_logs, holidays, leave_requests, leave_types, expenses,
			attendances, users, employees, shifts, departments CASCADE`)
	require.NoError(t, err)
	return testDB
}

func createEmployee(t *testing.T, repo employee.EmployeeRepository, code, email string) employee.Employee {
	t.Helper()
	rate := decimal.RequireFromString("25.00")
	hired := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	emp, err := repo.Create(context.Background(), employee.Employee{
		EmployeeCode: code,
		FirstName:    "Test",
		LastName:     code,
		Email:        email,
		HireDate:     &hired,
		HourlyRate:   &rate,
		Status:       employee.EmploymentStatusActive,
	})
	require.NoError(t, err)
	return emp
}

func TestEmployeeRepository_Integration(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	deptRepo := NewDepartmentRepository(db)
	shiftRepo := NewShiftRepository(db)
	repo := NewEmployeeRepository(db)

	emp := createEmployee(t, repo, "EMP-001", "one@example.com")
	assert.True(t, emp.HourlyRate.Equal(decimal.NewFromInt(25)))
	require.NotNil(t, emp.HireDate)
	assert.Equal(t, "2024-01-15", emp.HireDate.Format(worktime.DateLayout))

	_, err := repo.Create(ctx, employee.Employee{EmployeeCode: "EMP-001", FirstName: "Dup", Email: "x@example.com"})
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)
	_, err = repo.Create(ctx, employee.Employee{EmployeeCode: "EMP-002", FirstName: "Dup", Email: "one@example.com"})
	assert.ErrorIs(t, err, employee.ErrEmailExists)

	_, err = repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	dept, err := deptRepo.Create(ctx, department.Department{Name: "Engineering", Budget: decimal.NewFromInt(10000)})
	require.NoError(t, err)
	s, err := shiftRepo.Create(ctx, shift.Shift{Name: "Morning", StartTime: "08:00", EndTime: "16:00", GracePeriodMinutes: 10})
	require.NoError(t, err)

	require.NoError(t, repo.Update(ctx, employee.UpdateEmployeeRequest{ID: emp.ID, DepartmentID: &dept.ID}))
	require.NoError(t, repo.UpdateShift(ctx, emp.ID, &s.ID))

	got, err := repo.GetByCode(ctx, "EMP-001")
	require.NoError(t, err)
	assert.Equal(t, "Engineering", got.Department())
	require.NotNil(t, got.ShiftID)
	assert.Equal(t, s.ID, *got.ShiftID)

	assert.ErrorIs(t, deptRepo.Delete(ctx, dept.ID), department.ErrDepartmentInUse)
	count, err := shiftRepo.CountAssignedEmployees(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	search := "emp-001"
	list, total, err := repo.List(ctx, employee.EmployeeFilter{Search: &search, Params: pagination.Params{Page: 1, Limit: 10}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)
}

func TestAttendanceRepository_Integration(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	empRepo := NewEmployeeRepository(db)
	repo := NewAttendanceRepository(db)

	emp := createEmployee(t, empRepo, "EMP-001", "one@example.com")
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	in := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	rec, err := repo.Create(ctx, attendance.Attendance{
		EmployeeID: emp.ID, WorkDate: day, ClockIn: &in, Status: attendance.StatusPresent,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.WorkTypeRegular, rec.WorkType)
	require.NotNil(t, rec.EmployeeCode)
	assert.Equal(t, "EMP-001", *rec.EmployeeCode)

	_, err = repo.Create(ctx, attendance.Attendance{EmployeeID: emp.ID, WorkDate: day, Status: attendance.StatusAbsent})
	assert.ErrorIs(t, err, attendance.ErrAttendanceExists)

	out := in.Add(10 * time.Hour)
	hours, err := worktime.ComputeHours(&in, &out, worktime.DefaultHoursPolicy())
	require.NoError(t, err)
	update := attendance.ClockOutUpdate{ID: rec.ID, ClockOut: out, Hours: hours}
	require.NoError(t, repo.RecordClockOut(ctx, update))
	assert.ErrorIs(t, repo.RecordClockOut(ctx, update), attendance.ErrAlreadyClockedOut)

	got, err := repo.GetByEmployeeAndDate(ctx, emp.ID, day)
	require.NoError(t, err)
	require.NotNil(t, got.TotalHours)
	assert.Equal(t, "9.00", got.TotalHours.StringFixed(2))
	assert.Equal(t, "8.00", got.RegularHours.StringFixed(2))
	assert.Equal(t, "1.00", got.OvertimeHours.StringFixed(2))

	records, err := repo.ListInRange(ctx, day.AddDate(0, 0, -1), day)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	require.NoError(t, repo.Approve(ctx, rec.ID, emp.ID, out))
	pending, total, err := repo.List(ctx, attendance.AttendanceFilter{PendingOnly: true, Params: pagination.Params{Page: 1, Limit: 10}})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, pending)
}

func TestExpenseAndLeaveRepositories_Integration(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	empRepo := NewEmployeeRepository(db)
	expenseRepo := NewExpenseRepository(db)
	typeRepo := NewLeaveTypeRepository(db)
	requestRepo := NewLeaveRequestRepository(db)

	emp := createEmployee(t, empRepo, "EMP-001", "one@example.com")
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	x, err := expenseRepo.Create(ctx, expense.Expense{
		EmployeeID: emp.ID, ExpenseDate: day, Amount: decimal.RequireFromString("42.50"), Category: "Travel",
	})
	require.NoError(t, err)
	assert.Equal(t, expense.StatusPending, x.Status)

	require.NoError(t, expenseRepo.UpdateStatus(ctx, x.ID, expense.StatusApproved, emp.ID, time.Now()))
	assert.ErrorIs(t, expenseRepo.UpdateStatus(ctx, x.ID, expense.StatusRejected, emp.ID, time.Now()), expense.ErrExpenseAlreadyProcessed)

	approved, err := expenseRepo.ListApprovedInRange(ctx, day, day)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.True(t, approved[0].Amount.Equal(decimal.RequireFromString("42.50")))

	lt, err := typeRepo.Create(ctx, leave.LeaveType{Name: "Annual", DaysAllowed: 12, IsPaid: false})
	require.NoError(t, err)
	assert.False(t, lt.IsPaid)

	req, err := requestRepo.Create(ctx, leave.LeaveRequest{
		EmployeeID: emp.ID, LeaveTypeID: lt.ID, StartDate: day, EndDate: day.AddDate(0, 0, 2), TotalDays: 3,
	})
	require.NoError(t, err)

	overlap, err := requestRepo.HasOverlap(ctx, emp.ID, day.AddDate(0, 0, 2), day.AddDate(0, 0, 5))
	require.NoError(t, err)
	assert.True(t, overlap)

	require.NoError(t, requestRepo.UpdateStatus(ctx, req.ID, leave.LeaveRequestStatusApproved, emp.ID, time.Now()))
	used, err := requestRepo.UsedDays(ctx, emp.ID, lt.ID, 2026)
	require.NoError(t, err)
	assert.Equal(t, 3, used)

	covering, err := requestRepo.ListApprovedCovering(ctx, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, covering, 1)

	assert.ErrorIs(t, typeRepo.Delete(ctx, lt.ID), leave.ErrLeaveTypeInUse)
}

func TestHolidayUserAndAuditRepositories_Integration(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	holidayRepo := NewHolidayRepository(db)
	userRepo := NewUserRepository(db)
	auditRepo := NewAuditRepository(db)

	day := time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)
	_, err := holidayRepo.Create(ctx, holiday.Holiday{Date: day, Name: "Christmas"})
	require.NoError(t, err)
	_, err = holidayRepo.Create(ctx, holiday.Holiday{Date: day, Name: "Duplicate"})
	assert.ErrorIs(t, err, holiday.ErrHolidayExists)

	is, err := holidayRepo.IsHoliday(ctx, day)
	require.NoError(t, err)
	assert.True(t, is)
	list, err := holidayRepo.ListByYear(ctx, 2026)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	u, err := userRepo.Create(ctx, user.User{Email: "Admin@Example.com", PasswordHash: "hash", Role: user.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", u.Email)
	_, err = userRepo.Create(ctx, user.User{Email: "admin@example.com", PasswordHash: "hash", Role: user.RoleAdmin})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)

	emp := createEmployee(t, NewEmployeeRepository(db), "EMP-001", "ada@example.com")
	_, err = userRepo.Create(ctx, user.User{Email: "ada@example.com", PasswordHash: "hash", Role: user.RoleEmployee, EmployeeID: &emp.ID})
	require.NoError(t, err)
	users, err := userRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "ada@example.com", users[0].Email)
	require.NotNil(t, users[0].EmployeeName)
	assert.Nil(t, users[1].EmployeeName)

	require.NoError(t, userRepo.UpdatePassword(ctx, u.ID, "new-hash"))
	reloaded, err := userRepo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", reloaded.PasswordHash)

	details := "Created holiday"
	require.NoError(t, auditRepo.Create(ctx, audit.Entry{
		UserID: &u.ID, Action: audit.ActionCreate, TableName: "holidays", RecordID: list[0].ID, Details: &details,
	}))
	entries, total, err := auditRepo.List(ctx, audit.Filter{Params: pagination.Params{Page: 1, Limit: 10}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, audit.ActionCreate, entries[0].Action)
}

func TestAnnouncementRepository_Integration(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewAnnouncementRepository(db)

	first, err := repo.Create(ctx, announcement.Announcement{Title: "first", Message: "body", IsActive: true})
	require.NoError(t, err)
	_, err = repo.Create(ctx, announcement.Announcement{Title: "second", Message: "body", IsActive: true})
	require.NoError(t, err)
	_, err = repo.Create(ctx, announcement.Announcement{Title: "hidden", Message: "body", IsActive: false})
	require.NoError(t, err)

	active, err := repo.ListActive(ctx, 5)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "second", active[0].Title)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, repo.Delete(ctx, first.ID))
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), announcement.ErrAnnouncementNotFound)
}
