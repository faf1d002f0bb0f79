package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Settings holds the payroll rates.
type Settings struct {
	TaxRate            decimal.Decimal
	OvertimeMultiplier decimal.Decimal
}

func DefaultSettings() Settings {
	return Settings{
		TaxRate:            decimal.RequireFromString("0.20"),
		OvertimeMultiplier: decimal.RequireFromString("1.5"),
	}
}

func (s Settings) Validate() error {
	if s.TaxRate.IsNegative() || s.TaxRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: tax rate %s must be in [0, 1)", ErrInvalidSettings, s.TaxRate)
	}
	if s.OvertimeMultiplier.LessThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: overtime multiplier %s must be at least 1", ErrInvalidSettings, s.OvertimeMultiplier)
	}
	return nil
}

// Columns is the fixed column order of a payroll export.
var Columns = []string{
	"Employee ID",
	"Name",
	"Department",
	"Regular Hours",
	"Overtime Hours",
	"Hourly Rate",
	"Gross Pay",
	"Tax",
	"Reimbursements",
	"Net Pay",
}

// Line is one employee's payroll for a month. It is computed on request and
// never stored.
type Line struct {
	EmployeeRef    string          `json:"-"`
	EmployeeID     string          `json:"employee_id"`
	Name           string          `json:"name"`
	Department     string          `json:"department"`
	RegularHours   decimal.Decimal `json:"regular_hours"`
	OvertimeHours  decimal.Decimal `json:"overtime_hours"`
	HourlyRate     decimal.Decimal `json:"hourly_rate"`
	GrossPay       decimal.Decimal `json:"gross_pay"`
	Tax            decimal.Decimal `json:"tax"`
	Reimbursements decimal.Decimal `json:"reimbursements"`
	NetPay         decimal.Decimal `json:"net_pay"`
}

// Values returns the line in Columns order with money and hours fixed to two places.
func (l Line) Values() []string {
	return []string{
		l.EmployeeID,
		l.Name,
		l.Department,
		l.RegularHours.StringFixedBank(2),
		l.OvertimeHours.StringFixedBank(2),
		l.HourlyRate.StringFixedBank(2),
		l.GrossPay.StringFixedBank(2),
		l.Tax.StringFixedBank(2),
		l.Reimbursements.StringFixedBank(2),
		l.NetPay.StringFixedBank(2),
	}
}

type Totals struct {
	RegularHours   decimal.Decimal `json:"regular_hours"`
	OvertimeHours  decimal.Decimal `json:"overtime_hours"`
	GrossPay       decimal.Decimal `json:"gross_pay"`
	Tax            decimal.Decimal `json:"tax"`
	Reimbursements decimal.Decimal `json:"reimbursements"`
	NetPay         decimal.Decimal `json:"net_pay"`
}

type BudgetStatus string

const (
	BudgetStatusWithin      BudgetStatus = "WithinBudget"
	BudgetStatusOver        BudgetStatus = "OverBudget"
	BudgetStatusNoBudgetSet BudgetStatus = "NoBudgetSet"
)

// DepartmentLine compares a department's gross pay with its budget.
// Utilization is a percentage and is zero when no budget is set.
type DepartmentLine struct {
	Department  string          `json:"department"`
	Employees   int             `json:"employees"`
	Budget      decimal.Decimal `json:"budget"`
	ActualSpend decimal.Decimal `json:"actual_spend"`
	Variance    decimal.Decimal `json:"variance"`
	Utilization decimal.Decimal `json:"utilization"`
	Status      BudgetStatus    `json:"status"`
}

// Budget is the input of the department rollup.
type Budget struct {
	Department string
	Amount     decimal.Decimal
}
