package payroll

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/worktrack/worktrack-backend-go/internal/domain/attendance"
	"github.com/worktrack/worktrack-backend-go/internal/domain/department"
	"github.com/worktrack/worktrack-backend-go/internal/domain/employee"
	"github.com/worktrack/worktrack-backend-go/internal/domain/expense"
	"github.com/worktrack/worktrack-backend-go/internal/domain/payroll"
	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/export"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/worktime"
)

type PayrollServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	expenseRepo    expense.ExpenseRepository
	departmentRepo department.DepartmentRepository
	aggregator     *Aggregator
}

func NewPayrollService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	expenseRepo expense.ExpenseRepository,
	departmentRepo department.DepartmentRepository,
	settings payroll.Settings,
	logger *slog.Logger,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		expenseRepo:    expenseRepo,
		departmentRepo: departmentRepo,
		aggregator:     NewAggregator(settings, logger),
	}
}

// Generate implements payroll.PayrollService.
func (s *PayrollServiceImpl) Generate(ctx context.Context, actor user.Actor, req payroll.PeriodRequest) (payroll.Report, error) {
	if err := actor.Require(user.PermissionPayrollView); err != nil {
		return payroll.Report{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.Report{}, err
	}

	lines, err := s.lines(ctx, req.Period)
	if err != nil {
		return payroll.Report{}, err
	}

	return payroll.Report{
		Year:        req.Year,
		Month:       req.Month,
		PeriodStart: req.Period.Start.Format(worktime.DateLayout),
		PeriodEnd:   req.Period.End.Format(worktime.DateLayout),
		Lines:       lines,
		Totals:      Summarize(lines),
	}, nil
}

// DepartmentRollup implements payroll.PayrollService.
func (s *PayrollServiceImpl) DepartmentRollup(ctx context.Context, actor user.Actor, req payroll.PeriodRequest) (payroll.DepartmentReport, error) {
	if err := actor.Require(user.PermissionPayrollView); err != nil {
		return payroll.DepartmentReport{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.DepartmentReport{}, err
	}

	lines, err := s.lines(ctx, req.Period)
	if err != nil {
		return payroll.DepartmentReport{}, err
	}

	departments, err := s.departmentRepo.List(ctx)
	if err != nil {
		return payroll.DepartmentReport{}, fmt.Errorf("failed to list departments: %w", err)
	}
	budgets := make([]payroll.Budget, 0, len(departments))
	for _, d := range departments {
		budgets = append(budgets, payroll.Budget{Department: d.Name, Amount: d.Budget})
	}

	return payroll.DepartmentReport{
		Year:        req.Year,
		Month:       req.Month,
		Departments: RollupDepartments(lines, budgets),
	}, nil
}

// Export implements payroll.PayrollService.
func (s *PayrollServiceImpl) Export(ctx context.Context, actor user.Actor, req payroll.ExportRequest) (payroll.ExportFile, error) {
	if err := actor.Require(user.PermissionPayrollView); err != nil {
		return payroll.ExportFile{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.ExportFile{}, err
	}

	lines, err := s.lines(ctx, req.Period)
	if err != nil {
		return payroll.ExportFile{}, err
	}

	name := fmt.Sprintf("payroll_%04d_%02d", req.Year, req.Month)
	switch req.Format {
	case payroll.ExportFormatCSV:
		data, err := export.PayrollCSV(lines)
		if err != nil {
			return payroll.ExportFile{}, err
		}
		return payroll.ExportFile{Filename: name + ".csv", ContentType: "text/csv", Data: data}, nil
	case payroll.ExportFormatXLSX:
		title := fmt.Sprintf("Payroll %04d-%02d", req.Year, req.Month)
		data, err := export.PayrollXLSX(title, lines, Summarize(lines))
		if err != nil {
			return payroll.ExportFile{}, err
		}
		return payroll.ExportFile{
			Filename:    name + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	default:
		return payroll.ExportFile{}, payroll.ErrUnsupportedExportFormat
	}
}

func (s *PayrollServiceImpl) lines(ctx context.Context, period worktime.Period) ([]payroll.Line, error) {
	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	records, err := s.attendanceRepo.ListInRange(ctx, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	expenses, err := s.expenseRepo.ListApprovedInRange(ctx, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	return s.aggregator.Generate(Input{
		Period:     period,
		Employees:  employees,
		Attendance: records,
		Expenses:   expenses,
	})
}
