package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/worktrack/worktrack-backend-go/internal/domain/payroll"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/rounding"
)

// UnassignedDepartment groups lines of employees without a department.
const UnassignedDepartment = "Unassigned"

var hundred = decimal.NewFromInt(100)

// RollupDepartments sums gross pay per department and compares it with the
// budgets. Budgeted departments come first in the given order, followed by
// any other department seen in lines.
func RollupDepartments(lines []payroll.Line, budgets []payroll.Budget) []payroll.DepartmentLine {
	type bucket struct {
		budget    decimal.Decimal
		spend     decimal.Decimal
		employees int
	}

	order := make([]string, 0, len(budgets))
	buckets := make(map[string]*bucket)

	for _, b := range budgets {
		if _, ok := buckets[b.Department]; ok {
			continue
		}
		order = append(order, b.Department)
		buckets[b.Department] = &bucket{budget: b.Amount, spend: decimal.Zero}
	}

	for _, l := range lines {
		name := l.Department
		if name == "" {
			name = UnassignedDepartment
		}
		bk, ok := buckets[name]
		if !ok {
			bk = &bucket{budget: decimal.Zero, spend: decimal.Zero}
			buckets[name] = bk
			order = append(order, name)
		}
		bk.spend = bk.spend.Add(l.GrossPay)
		bk.employees++
	}

	result := make([]payroll.DepartmentLine, 0, len(order))
	for _, name := range order {
		bk := buckets[name]
		spend := rounding.Round(bk.spend)

		line := payroll.DepartmentLine{
			Department:  name,
			Employees:   bk.employees,
			Budget:      bk.budget,
			ActualSpend: spend,
			Variance:    rounding.Round(bk.budget.Sub(spend)),
			Utilization: decimal.Zero,
		}

		switch {
		case !bk.budget.IsPositive():
			line.Status = payroll.BudgetStatusNoBudgetSet
		case spend.GreaterThan(bk.budget):
			line.Status = payroll.BudgetStatusOver
			line.Utilization = rounding.Round(spend.Div(bk.budget).Mul(hundred))
		default:
			line.Status = payroll.BudgetStatusWithin
			line.Utilization = rounding.Round(spend.Div(bk.budget).Mul(hundred))
		}

		result = append(result, line)
	}

	return result
}
