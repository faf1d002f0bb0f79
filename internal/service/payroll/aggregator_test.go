package payroll

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worktrack/worktrack-backend-go/internal/domain/attendance"
	"github.com/worktrack/worktrack-backend-go/internal/domain/employee"
	"github.com/worktrack/worktrack-backend-go/internal/domain/expense"
	"github.com/worktrack/worktrack-backend-go/internal/domain/payroll"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/worktime"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func strp(s string) *string { return &s }

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func newEmployee(id, code, first, last, dept, rate string) employee.Employee {
	e := employee.Employee{
		ID:           id,
		EmployeeCode: code,
		FirstName:    first,
		LastName:     last,
		Status:       employee.EmploymentStatusActive,
	}
	if dept != "" {
		e.DepartmentName = strp(dept)
	}
	if rate != "" {
		e.HourlyRate = dp(rate)
	}
	return e
}

func record(empID string, day time.Time, regular, overtime string) attendance.Attendance {
	return attendance.Attendance{
		ID:            empID + day.Format("0102"),
		EmployeeID:    empID,
		WorkDate:      day,
		Status:        attendance.StatusPresent,
		RegularHours:  dp(regular),
		OvertimeHours: dp(overtime),
	}
}

func approved(empID string, day time.Time, amount string) expense.Expense {
	return expense.Expense{ID: "x-" + empID, EmployeeID: empID, ExpenseDate: day, Amount: d(amount), Status: expense.StatusApproved}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func mustPeriod(t *testing.T, year, month int) worktime.Period {
	t.Helper()
	p, err := worktime.MonthPeriod(year, month)
	require.NoError(t, err)
	return p
}

// 20 days of 8h plus 10h overtime spread over the month.
func fullMonth(empID string) []attendance.Attendance {
	var recs []attendance.Attendance
	for day := 1; day <= 20; day++ {
		ot := "0"
		if day <= 10 {
			ot = "1"
		}
		recs = append(recs, record(empID, date(2025, time.March, day+3), "8", ot))
	}
	return recs
}

func TestGenerate_EndToEndScenario(t *testing.T) {
	agg := NewAggregator(payroll.DefaultSettings(), quietLogger())

	lines, err := agg.Generate(Input{
		Period:     mustPeriod(t, 2025, 3),
		Employees:  []employee.Employee{newEmployee("e1", "E001", "Jane", "Doe", "Engineering", "25")},
		Attendance: fullMonth("e1"),
		Expenses:   []expense.Expense{approved("e1", date(2025, time.March, 15), "50")},
	})
	require.NoError(t, err)
	require.Len(t, lines, 1)

	l := lines[0]
	assert.Equal(t, "E001", l.EmployeeID)
	assert.Equal(t, "Jane Doe", l.Name)
	assert.Equal(t, "Engineering", l.Department)
	assert.Equal(t, "160.00", l.RegularHours.StringFixed(2))
	assert.Equal(t, "10.00", l.OvertimeHours.StringFixed(2))
	assert.Equal(t, "4375.00", l.GrossPay.StringFixed(2))
	assert.Equal(t, "875.00", l.Tax.StringFixed(2))
	assert.Equal(t, "50.00", l.Reimbursements.StringFixed(2))
	assert.Equal(t, "3550.00", l.NetPay.StringFixed(2))
}

func TestGenerate_ZeroHoursEmployeeStillAppears(t *testing.T) {
	agg := NewAggregator(payroll.DefaultSettings(), quietLogger())

	lines, err := agg.Generate(Input{
		Period: mustPeriod(t, 2025, 3),
		Employees: []employee.Employee{
			newEmployee("e1", "E001", "Jane", "Doe", "Engineering", "25"),
			newEmployee("e2", "E002", "Idle", "Person", "Sales", "20"),
		},
		Attendance: fullMonth("e1"),
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, "E002", lines[1].EmployeeID)
	assert.True(t, lines[1].GrossPay.IsZero())
	assert.True(t, lines[1].NetPay.IsZero())
	assert.True(t, lines[1].HourlyRate.Equal(d("20")))
}

func TestGenerate_FiltersInputs(t *testing.T) {
	agg := NewAggregator(payroll.DefaultSettings(), quietLogger())

	inactive := newEmployee("e3", "E003", "Gone", "Away", "Sales", "30")
	inactive.Status = employee.EmploymentStatusInactive

	rejected := approved("e1", date(2025, time.March, 10), "99")
	rejected.Status = expense.StatusRejected
	pending := approved("e1", date(2025, time.March, 11), "77")
	pending.Status = expense.StatusPending

	open := attendance.Attendance{ID: "open", EmployeeID: "e1", WorkDate: date(2025, time.March, 31), Status: attendance.StatusPresent}

	lines, err := agg.Generate(Input{
		Period:    mustPeriod(t, 2025, 3),
		Employees: []employee.Employee{newEmployee("e1", "E001", "Jane", "Doe", "", "10"), inactive},
		Attendance: []attendance.Attendance{
			record("e1", date(2025, time.March, 3), "8", "0"),
			record("e1", date(2025, time.February, 28), "8", "2"), // out of range
			record("e1", date(2025, time.April, 1), "8", "2"),     // out of range
			record("e3", date(2025, time.March, 3), "8", "0"),     // inactive
			open,
		},
		Expenses: []expense.Expense{
			rejected,
			pending,
			approved("e1", date(2025, time.April, 1), "12"),
			approved("e1", date(2025, time.March, 31), "5.5"),
		},
	})
	require.NoError(t, err)
	require.Len(t, lines, 1)

	l := lines[0]
	assert.Equal(t, "8.00", l.RegularHours.StringFixed(2))
	assert.Equal(t, "0.00", l.OvertimeHours.StringFixed(2))
	assert.Equal(t, "80.00", l.GrossPay.StringFixed(2))
	assert.Equal(t, "16.00", l.Tax.StringFixed(2))
	assert.Equal(t, "5.50", l.Reimbursements.StringFixed(2))
	assert.Equal(t, "69.50", l.NetPay.StringFixed(2))
	assert.Equal(t, "", l.Department)
}

func TestGenerate_DecemberRange(t *testing.T) {
	agg := NewAggregator(payroll.DefaultSettings(), quietLogger())

	lines, err := agg.Generate(Input{
		Period:    mustPeriod(t, 2025, 12),
		Employees: []employee.Employee{newEmployee("e1", "E001", "Jane", "Doe", "", "10")},
		Attendance: []attendance.Attendance{
			record("e1", date(2025, time.December, 31), "8", "1"),
			record("e1", date(2026, time.January, 1), "8", "1"),
		},
	})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "8.00", lines[0].RegularHours.StringFixed(2))
	assert.Equal(t, "1.00", lines[0].OvertimeHours.StringFixed(2))
	assert.Equal(t, "95.00", lines[0].GrossPay.StringFixed(2))
}

func TestGenerate_MissingRateUsesZero(t *testing.T) {
	var logs bytes.Buffer
	agg := NewAggregator(payroll.DefaultSettings(), slog.New(slog.NewTextHandler(&logs, nil)))

	lines, err := agg.Generate(Input{
		Period:     mustPeriod(t, 2025, 3),
		Employees:  []employee.Employee{newEmployee("e1", "E001", "No", "Rate", "", "")},
		Attendance: []attendance.Attendance{record("e1", date(2025, time.March, 3), "8", "0")},
		Expenses:   []expense.Expense{approved("e1", date(2025, time.March, 3), "20")},
	})
	require.NoError(t, err)
	require.Len(t, lines, 1)

	assert.True(t, lines[0].GrossPay.IsZero())
	assert.Equal(t, "20.00", lines[0].NetPay.StringFixed(2))
	assert.Contains(t, logs.String(), "no hourly rate")
}

func TestGenerate_OneBadEmployeeDoesNotBlockOthers(t *testing.T) {
	var logs bytes.Buffer
	agg := NewAggregator(payroll.DefaultSettings(), slog.New(slog.NewTextHandler(&logs, nil)))

	bad := record("e1", date(2025, time.March, 3), "-8", "0")

	lines, err := agg.Generate(Input{
		Period: mustPeriod(t, 2025, 3),
		Employees: []employee.Employee{
			newEmployee("e1", "E001", "Bad", "Data", "", "10"),
			newEmployee("e2", "E002", "Good", "Data", "", "10"),
		},
		Attendance: []attendance.Attendance{bad, record("e2", date(2025, time.March, 3), "8", "0")},
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.True(t, lines[0].GrossPay.IsZero())
	assert.Equal(t, "80.00", lines[1].GrossPay.StringFixed(2))
	assert.Contains(t, logs.String(), "payroll line zero-filled")
}

func TestGenerate_InvalidSettings(t *testing.T) {
	agg := NewAggregator(payroll.Settings{TaxRate: d("1.2"), OvertimeMultiplier: d("1.5")}, quietLogger())

	_, err := agg.Generate(Input{Period: mustPeriod(t, 2025, 3)})
	assert.ErrorIs(t, err, payroll.ErrInvalidSettings)
}

func TestGenerate_Additivity(t *testing.T) {
	agg := NewAggregator(payroll.DefaultSettings(), quietLogger())

	rates := []string{"17.35", "22.10", "9.99", "41.07", "13.33"}
	var employees []employee.Employee
	var records []attendance.Attendance
	var expenses []expense.Expense
	for i, rate := range rates {
		id := string(rune('a' + i))
		employees = append(employees, newEmployee(id, "E00"+id, "Emp", id, "", rate))
		for day := 1; day <= 7+i; day++ {
			records = append(records, record(id, date(2025, time.May, day), "7.67", "1.33"))
		}
		expenses = append(expenses, approved(id, date(2025, time.May, 9), "13.37"))
	}

	lines, err := agg.Generate(Input{Period: mustPeriod(t, 2025, 5), Employees: employees, Attendance: records, Expenses: expenses})
	require.NoError(t, err)

	totals := Summarize(lines)
	want := totals.GrossPay.Sub(totals.Tax).Add(totals.Reimbursements)
	assert.True(t, totals.NetPay.Equal(want), "net %s, gross-tax+reimb %s", totals.NetPay, want)
}

func TestGenerate_Idempotent(t *testing.T) {
	agg := NewAggregator(payroll.DefaultSettings(), quietLogger())
	in := Input{
		Period: mustPeriod(t, 2025, 3),
		Employees: []employee.Employee{
			newEmployee("e1", "E001", "Jane", "Doe", "Engineering", "25"),
			newEmployee("e2", "E002", "John", "Roe", "Sales", "19.5"),
		},
		Attendance: append(fullMonth("e1"), fullMonth("e2")...),
		Expenses:   []expense.Expense{approved("e1", date(2025, time.March, 15), "50")},
	}

	first, err := agg.Generate(in)
	require.NoError(t, err)
	second, err := agg.Generate(in)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}
