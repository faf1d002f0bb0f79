package payroll

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/worktrack/worktrack-backend-go/internal/domain/attendance"
	"github.com/worktrack/worktrack-backend-go/internal/domain/employee"
	"github.com/worktrack/worktrack-backend-go/internal/domain/expense"
	"github.com/worktrack/worktrack-backend-go/internal/domain/payroll"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/rounding"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/worktime"
)

// Input is everything one payroll run reads.
type Input struct {
	Period     worktime.Period
	Employees  []employee.Employee
	Attendance []attendance.Attendance
	Expenses   []expense.Expense
}

// Aggregator turns attendance hours and approved expenses into payroll lines.
// It holds no state between runs.
type Aggregator struct {
	settings payroll.Settings
	logger   *slog.Logger
}

func NewAggregator(settings payroll.Settings, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{settings: settings, logger: logger}
}

// Generate returns one line per active employee, in the order employees are
// given. A failure on one employee is logged and that line is zero-filled.
func (a *Aggregator) Generate(in Input) ([]payroll.Line, error) {
	if err := a.settings.Validate(); err != nil {
		return nil, err
	}

	records := make(map[string][]attendance.Attendance)
	for _, rec := range in.Attendance {
		if in.Period.Contains(rec.WorkDate) {
			records[rec.EmployeeID] = append(records[rec.EmployeeID], rec)
		}
	}

	expenses := make(map[string][]expense.Expense)
	for _, exp := range in.Expenses {
		if exp.Status == expense.StatusApproved && in.Period.Contains(exp.ExpenseDate) {
			expenses[exp.EmployeeID] = append(expenses[exp.EmployeeID], exp)
		}
	}

	lines := make([]payroll.Line, 0, len(in.Employees))
	for _, emp := range in.Employees {
		if !emp.IsActive() {
			continue
		}

		line, err := a.line(emp, records[emp.ID], expenses[emp.ID])
		if err != nil {
			a.logger.Error("payroll line zero-filled",
				slog.String("employee_id", emp.ID),
				slog.String("period", in.Period.String()),
				slog.String("error", err.Error()),
			)
			line = zeroLine(emp)
		}
		lines = append(lines, line)
	}

	return lines, nil
}

func (a *Aggregator) line(emp employee.Employee, records []attendance.Attendance, expenses []expense.Expense) (payroll.Line, error) {
	regular, overtime := decimal.Zero, decimal.Zero
	for _, rec := range records {
		if rec.RegularHours != nil {
			if rec.RegularHours.IsNegative() {
				return payroll.Line{}, fmt.Errorf("%w: record %s", payroll.ErrNegativeHours, rec.ID)
			}
			regular = regular.Add(*rec.RegularHours)
		}
		if rec.OvertimeHours != nil {
			if rec.OvertimeHours.IsNegative() {
				return payroll.Line{}, fmt.Errorf("%w: record %s", payroll.ErrNegativeHours, rec.ID)
			}
			overtime = overtime.Add(*rec.OvertimeHours)
		}
	}

	reimbursement := decimal.Zero
	for _, exp := range expenses {
		if exp.Amount.IsNegative() {
			return payroll.Line{}, fmt.Errorf("%w: expense %s", payroll.ErrNegativeExpense, exp.ID)
		}
		reimbursement = reimbursement.Add(exp.Amount)
	}

	if emp.HourlyRate == nil {
		a.logger.Warn("employee has no hourly rate, using zero",
			slog.String("employee_id", emp.ID),
		)
	}
	rate := emp.Rate()
	if rate.IsNegative() {
		return payroll.Line{}, fmt.Errorf("%w: %s", employee.ErrInvalidHourlyRate, rate)
	}

	regular = rounding.Round(regular)
	overtime = rounding.Round(overtime)
	reimbursement = rounding.Round(reimbursement)

	gross := rounding.Round(regular.Mul(rate).Add(overtime.Mul(rate).Mul(a.settings.OvertimeMultiplier)))
	tax := rounding.Round(gross.Mul(a.settings.TaxRate))
	net := rounding.Round(gross.Sub(tax).Add(reimbursement))

	return payroll.Line{
		EmployeeRef:    emp.ID,
		EmployeeID:     emp.EmployeeCode,
		Name:           emp.FullName(),
		Department:     emp.Department(),
		RegularHours:   regular,
		OvertimeHours:  overtime,
		HourlyRate:     rate,
		GrossPay:       gross,
		Tax:            tax,
		Reimbursements: reimbursement,
		NetPay:         net,
	}, nil
}

func zeroLine(emp employee.Employee) payroll.Line {
	return payroll.Line{
		EmployeeRef:    emp.ID,
		EmployeeID:     emp.EmployeeCode,
		Name:           emp.FullName(),
		Department:     emp.Department(),
		RegularHours:   decimal.Zero,
		OvertimeHours:  decimal.Zero,
		HourlyRate:     emp.Rate(),
		GrossPay:       decimal.Zero,
		Tax:            decimal.Zero,
		Reimbursements: decimal.Zero,
		NetPay:         decimal.Zero,
	}
}

// Summarize adds up a set of lines.
func Summarize(lines []payroll.Line) payroll.Totals {
	t := payroll.Totals{
		RegularHours:   decimal.Zero,
		OvertimeHours:  decimal.Zero,
		GrossPay:       decimal.Zero,
		Tax:            decimal.Zero,
		Reimbursements: decimal.Zero,
		NetPay:         decimal.Zero,
	}
	for _, l := range lines {
		t.RegularHours = t.RegularHours.Add(l.RegularHours)
		t.OvertimeHours = t.OvertimeHours.Add(l.OvertimeHours)
		t.GrossPay = t.GrossPay.Add(l.GrossPay)
		t.Tax = t.Tax.Add(l.Tax)
		t.Reimbursements = t.Reimbursements.Add(l.Reimbursements)
		t.NetPay = t.NetPay.Add(l.NetPay)
	}
	return t
}
