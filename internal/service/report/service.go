package report

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/worktrack/worktrack-backend-go/internal/domain/attendance"
	"github.com/worktrack/worktrack-backend-go/internal/domain/employee"
	"github.com/worktrack/worktrack-backend-go/internal/domain/report"
	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/rounding"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/worktime"
)

// unassignedDepartment labels employees without a department.
const unassignedDepartment = "Unassigned"

type ReportServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
}

func NewReportService(employeeRepo employee.EmployeeRepository, attendanceRepo attendance.AttendanceRepository) report.ReportService {
	return &ReportServiceImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
	}
}

func departmentOf(emp employee.Employee) string {
	if name := emp.Department(); name != "" {
		return name
	}
	return unassignedDepartment
}

func addHours(total *decimal.Decimal, h *decimal.Decimal) {
	if h != nil {
		*total = total.Add(*h)
	}
}

// AttendanceSummary implements report.ReportService.
func (s *ReportServiceImpl) AttendanceSummary(ctx context.Context, actor user.Actor, req report.DateRangeRequest) (report.AttendanceSummaryReport, error) {
	if err := actor.Require(user.PermissionReportsView); err != nil {
		return report.AttendanceSummaryReport{}, err
	}
	if err := req.Validate(); err != nil {
		return report.AttendanceSummaryReport{}, err
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return report.AttendanceSummaryReport{}, fmt.Errorf("failed to list employees: %w", err)
	}
	records, err := s.attendanceRepo.ListInRange(ctx, req.Start, req.End)
	if err != nil {
		return report.AttendanceSummaryReport{}, fmt.Errorf("failed to get attendance data: %w", err)
	}

	byEmployee := make(map[string][]attendance.Attendance, len(employees))
	for _, rec := range records {
		byEmployee[rec.EmployeeID] = append(byEmployee[rec.EmployeeID], rec)
	}

	lines := make([]report.AttendanceSummaryLine, 0, len(employees))
	for _, emp := range employees {
		line := report.AttendanceSummaryLine{
			EmployeeID: emp.EmployeeCode,
			Name:       emp.FullName(),
			Department: departmentOf(emp),
		}
		total, regular, overtime := decimal.Zero, decimal.Zero, decimal.Zero

		for _, rec := range byEmployee[emp.ID] {
			switch rec.Status {
			case attendance.StatusPresent:
				line.DaysPresent++
			case attendance.StatusLate:
				line.DaysLate++
			case attendance.StatusAbsent:
				line.DaysAbsent++
			case attendance.StatusHalfDay:
				line.DaysHalfDay++
			case attendance.StatusOnLeave:
				line.DaysOnLeave++
			}
			addHours(&total, rec.TotalHours)
			addHours(&regular, rec.RegularHours)
			addHours(&overtime, rec.OvertimeHours)
		}

		line.TotalHours = rounding.Round(total)
		line.RegularHours = rounding.Round(regular)
		line.OvertimeHours = rounding.Round(overtime)
		lines = append(lines, line)
	}

	return report.AttendanceSummaryReport{
		StartDate: req.Start.Format(worktime.DateLayout),
		EndDate:   req.End.Format(worktime.DateLayout),
		Lines:     lines,
	}, nil
}

// OvertimeByDepartment implements report.ReportService.
func (s *ReportServiceImpl) OvertimeByDepartment(ctx context.Context, actor user.Actor, req report.DateRangeRequest) (report.OvertimeReport, error) {
	if err := actor.Require(user.PermissionReportsView); err != nil {
		return report.OvertimeReport{}, err
	}
	if err := req.Validate(); err != nil {
		return report.OvertimeReport{}, err
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return report.OvertimeReport{}, fmt.Errorf("failed to list employees: %w", err)
	}
	records, err := s.attendanceRepo.ListInRange(ctx, req.Start, req.End)
	if err != nil {
		return report.OvertimeReport{}, fmt.Errorf("failed to get attendance data: %w", err)
	}

	deptOf := make(map[string]string, len(employees))
	byDept := make(map[string]*report.DepartmentOvertimeLine)
	for _, emp := range employees {
		name := departmentOf(emp)
		deptOf[emp.ID] = name
		line, ok := byDept[name]
		if !ok {
			line = &report.DepartmentOvertimeLine{Department: name, OvertimeHours: decimal.Zero}
			byDept[name] = line
		}
		line.Employees++
	}

	for _, rec := range records {
		name, ok := deptOf[rec.EmployeeID]
		if !ok || rec.OvertimeHours == nil {
			continue
		}
		line := byDept[name]
		line.OvertimeHours = line.OvertimeHours.Add(*rec.OvertimeHours)
	}

	departments := make([]report.DepartmentOvertimeLine, 0, len(byDept))
	for _, line := range byDept {
		line.OvertimeHours = rounding.Round(line.OvertimeHours)
		departments = append(departments, *line)
	}
	sort.Slice(departments, func(i, j int) bool {
		return departments[i].Department < departments[j].Department
	})

	return report.OvertimeReport{
		StartDate:   req.Start.Format(worktime.DateLayout),
		EndDate:     req.End.Format(worktime.DateLayout),
		Departments: departments,
	}, nil
}
