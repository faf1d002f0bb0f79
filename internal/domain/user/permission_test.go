package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleAdmin, PermissionPayrollView))
	assert.True(t, HasPermission(RoleManager, PermissionAttendanceApprove))
	assert.False(t, HasPermission(RoleManager, PermissionPayrollView))
	assert.True(t, HasPermission(RoleEmployee, PermissionAttendanceCreate))
	assert.False(t, HasPermission(RoleEmployee, PermissionExpenseApprove))
	assert.False(t, HasPermission(Role("ghost"), PermissionAttendanceCreate))
}

func TestActor(t *testing.T) {
	empID := "0190a1b2-0000-7000-8000-000000000001"
	a := Actor{UserID: "u1", EmployeeID: &empID, Role: RoleEmployee}

	assert.NoError(t, a.Require(PermissionExpenseCreate))
	assert.ErrorIs(t, a.Require(PermissionEmployeeManage), ErrInsufficientPermissions)

	got, err := a.Employee()
	assert.NoError(t, err)
	assert.Equal(t, empID, got)

	_, err = Actor{Role: RoleAdmin}.Employee()
	assert.ErrorIs(t, err, ErrNoLinkedEmployee)
}
