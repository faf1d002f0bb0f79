package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worktrack/worktrack-backend-go/internal/domain/payroll"
)

func lineFor(dept, gross string) payroll.Line {
	return payroll.Line{Department: dept, GrossPay: d(gross)}
}

func TestRollupDepartments(t *testing.T) {
	lines := []payroll.Line{
		lineFor("Engineering", "4375"),
		lineFor("Engineering", "3000"),
		lineFor("Sales", "2500"),
		lineFor("Support", "1200"),
		lineFor("", "800"),
	}
	budgets := []payroll.Budget{
		{Department: "Engineering", Amount: d("7000")},
		{Department: "Sales", Amount: d("10000")},
		{Department: "Support", Amount: d("0")},
		{Department: "Legal", Amount: d("500")},
	}

	got := RollupDepartments(lines, budgets)
	require.Len(t, got, 5)

	eng := got[0]
	assert.Equal(t, "Engineering", eng.Department)
	assert.Equal(t, 2, eng.Employees)
	assert.Equal(t, "7375.00", eng.ActualSpend.StringFixed(2))
	assert.Equal(t, payroll.BudgetStatusOver, eng.Status)
	assert.Equal(t, "105.36", eng.Utilization.StringFixed(2))
	assert.Equal(t, "-375.00", eng.Variance.StringFixed(2))

	sales := got[1]
	assert.Equal(t, payroll.BudgetStatusWithin, sales.Status)
	assert.Equal(t, "25.00", sales.Utilization.StringFixed(2))

	support := got[2]
	assert.Equal(t, payroll.BudgetStatusNoBudgetSet, support.Status)
	assert.True(t, support.Utilization.IsZero())
	assert.Equal(t, "1200.00", support.ActualSpend.StringFixed(2))

	legal := got[3]
	assert.Equal(t, "Legal", legal.Department)
	assert.Equal(t, 0, legal.Employees)
	assert.Equal(t, payroll.BudgetStatusWithin, legal.Status)
	assert.True(t, legal.Utilization.IsZero())

	unassigned := got[4]
	assert.Equal(t, UnassignedDepartment, unassigned.Department)
	assert.Equal(t, payroll.BudgetStatusNoBudgetSet, unassigned.Status)
}

func TestRollupDepartments_ExactlyOnBudgetIsWithin(t *testing.T) {
	got := RollupDepartments(
		[]payroll.Line{lineFor("Ops", "1000")},
		[]payroll.Budget{{Department: "Ops", Amount: d("1000")}},
	)
	require.Len(t, got, 1)
	assert.Equal(t, payroll.BudgetStatusWithin, got[0].Status)
	assert.Equal(t, "100.00", got[0].Utilization.StringFixed(2))
}
