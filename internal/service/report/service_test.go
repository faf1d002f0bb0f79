package report

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worktrack/worktrack-backend-go/internal/domain/attendance"
	"github.com/worktrack/worktrack-backend-go/internal/domain/department"
	"github.com/worktrack/worktrack-backend-go/internal/domain/employee"
	"github.com/worktrack/worktrack-backend-go/internal/domain/report"
	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/validator"
	"github.com/worktrack/worktrack-backend-go/internal/repository"
	"github.com/worktrack/worktrack-backend-go/internal/repository/gormstore"
)

var admin = user.Actor{UserID: "admin", Role: user.RoleAdmin}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

type seeded struct {
	service report.ReportService
	alpha   employee.Employee
	bravo   employee.Employee
	charlie employee.Employee
}

func setup(t *testing.T) seeded {
	t.Helper()
	ctx := context.Background()

	db, err := gormstore.OpenInMemory(t.Name())
	require.NoError(t, err)
	repos := repository.FromGorm(db)
	t.Cleanup(repos.Close)

	eng, err := repos.Department.Create(ctx, department.Department{Name: "Engineering", Budget: decimal.NewFromInt(50000)})
	require.NoError(t, err)

	newEmployee := func(code, last string, deptID *string) employee.Employee {
		emp, err := repos.Employee.Create(ctx, employee.Employee{
			EmployeeCode: code,
			FirstName:    "Test",
			LastName:     last,
			Email:        code + "@example.com",
			DepartmentID: deptID,
			Status:       employee.EmploymentStatusActive,
		})
		require.NoError(t, err)
		return emp
	}

	s := seeded{
		service: NewReportService(repos.Employee, repos.Attendance),
		alpha:   newEmployee("EMP-001", "Alpha", &eng.ID),
		bravo:   newEmployee("EMP-002", "Bravo", &eng.ID),
		charlie: newEmployee("EMP-003", "Charlie", nil),
	}

	records := []attendance.Attendance{
		{EmployeeID: s.alpha.ID, WorkDate: day("2025-03-03"), Status: attendance.StatusPresent,
			TotalHours: dec("9.50"), RegularHours: dec("8.00"), OvertimeHours: dec("1.50")},
		{EmployeeID: s.alpha.ID, WorkDate: day("2025-03-04"), Status: attendance.StatusLate,
			TotalHours: dec("8.25"), RegularHours: dec("8.00"), OvertimeHours: dec("0.25")},
		{EmployeeID: s.alpha.ID, WorkDate: day("2025-03-05"), Status: attendance.StatusAbsent},
		{EmployeeID: s.bravo.ID, WorkDate: day("2025-03-03"), Status: attendance.StatusOnLeave},
		{EmployeeID: s.bravo.ID, WorkDate: day("2025-03-10"), Status: attendance.StatusPresent,
			TotalHours: dec("10.00"), RegularHours: dec("8.00"), OvertimeHours: dec("2.00")},
		{EmployeeID: s.charlie.ID, WorkDate: day("2025-03-04"), Status: attendance.StatusPresent,
			TotalHours: dec("10.00"), RegularHours: dec("8.00"), OvertimeHours: dec("2.00")},
	}
	for _, rec := range records {
		rec.WorkType = attendance.WorkTypeRegular
		_, err := repos.Attendance.Create(ctx, rec)
		require.NoError(t, err)
	}

	return s
}

func week() report.DateRangeRequest {
	return report.DateRangeRequest{StartDate: "2025-03-03", EndDate: "2025-03-07"}
}

func TestAttendanceSummary(t *testing.T) {
	s := setup(t)

	result, err := s.service.AttendanceSummary(context.Background(), admin, week())
	require.NoError(t, err)
	assert.Equal(t, "2025-03-03", result.StartDate)
	require.Len(t, result.Lines, 3)

	byCode := make(map[string]report.AttendanceSummaryLine)
	for _, line := range result.Lines {
		byCode[line.EmployeeID] = line
	}

	alpha := byCode["EMP-001"]
	assert.Equal(t, "Engineering", alpha.Department)
	assert.Equal(t, 1, alpha.DaysPresent)
	assert.Equal(t, 1, alpha.DaysLate)
	assert.Equal(t, 1, alpha.DaysAbsent)
	assert.True(t, alpha.TotalHours.Equal(decimal.RequireFromString("17.75")))
	assert.True(t, alpha.RegularHours.Equal(decimal.NewFromInt(16)))
	assert.True(t, alpha.OvertimeHours.Equal(decimal.RequireFromString("1.75")))

	// The 03-10 record is outside the range.
	bravo := byCode["EMP-002"]
	assert.Equal(t, 1, bravo.DaysOnLeave)
	assert.Equal(t, 0, bravo.DaysPresent)
	assert.True(t, bravo.TotalHours.IsZero())

	assert.Equal(t, "Unassigned", byCode["EMP-003"].Department)
}

func TestOvertimeByDepartment(t *testing.T) {
	s := setup(t)

	result, err := s.service.OvertimeByDepartment(context.Background(), admin, week())
	require.NoError(t, err)
	require.Len(t, result.Departments, 2)

	assert.Equal(t, "Engineering", result.Departments[0].Department)
	assert.Equal(t, 2, result.Departments[0].Employees)
	assert.True(t, result.Departments[0].OvertimeHours.Equal(decimal.RequireFromString("1.75")))

	assert.Equal(t, "Unassigned", result.Departments[1].Department)
	assert.Equal(t, 1, result.Departments[1].Employees)
	assert.True(t, result.Departments[1].OvertimeHours.Equal(decimal.NewFromInt(2)))
}

func TestReports_Validation(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  report.DateRangeRequest
	}{
		{"bad start", report.DateRangeRequest{StartDate: "03/03/2025", EndDate: "2025-03-07"}},
		{"reversed", report.DateRangeRequest{StartDate: "2025-03-07", EndDate: "2025-03-03"}},
		{"too long", report.DateRangeRequest{StartDate: "2024-01-01", EndDate: "2025-03-03"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.service.AttendanceSummary(ctx, admin, tt.req)
			var verrs validator.ValidationErrors
			assert.ErrorAs(t, err, &verrs)
		})
	}
}

func TestReports_RequirePermission(t *testing.T) {
	s := setup(t)
	emp := user.Actor{UserID: "u1", EmployeeID: &s.alpha.ID, Role: user.RoleEmployee}

	_, err := s.service.AttendanceSummary(context.Background(), emp, week())
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	_, err = s.service.OvertimeByDepartment(context.Background(), emp, week())
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}
