package employee

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worktrack/worktrack-backend-go/internal/domain/audit"
	"github.com/worktrack/worktrack-backend-go/internal/domain/department"
	"github.com/worktrack/worktrack-backend-go/internal/domain/employee"
	"github.com/worktrack/worktrack-backend-go/internal/domain/shift"
	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
	"github.com/worktrack/worktrack-backend-go/internal/repository"
	"github.com/worktrack/worktrack-backend-go/internal/repository/gormstore"
	auditService "github.com/worktrack/worktrack-backend-go/internal/service/audit"
)

var admin = user.Actor{Role: user.RoleAdmin}

type fixture struct {
	repos   *repository.Repositories
	service employee.EmployeeService
	audit   audit.AuditService
}

func setup(t *testing.T) fixture {
	t.Helper()
	db, err := gormstore.OpenInMemory(t.Name())
	require.NoError(t, err)
	repos := repository.FromGorm(db)
	t.Cleanup(repos.Close)

	auditSvc := auditService.NewAuditService(repos.Audit)
	return fixture{
		repos:   repos,
		service: NewEmployeeService(repos.Employee, repos.Department, repos.Shift, auditSvc),
		audit:   auditSvc,
	}
}

func createRequest(code string) employee.CreateEmployeeRequest {
	rate := decimal.RequireFromString("25.00")
	return employee.CreateEmployeeRequest{
		EmployeeCode: code,
		FirstName:    "Grace",
		LastName:     "Hopper",
		Email:        code + "@Example.com",
		HourlyRate:   &rate,
	}
}

func TestCreate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, admin, createRequest("emp-001"))
	require.NoError(t, err)
	assert.Equal(t, "EMP-001", created.EmployeeCode)
	assert.Equal(t, "emp-001@example.com", created.Email)
	assert.Equal(t, employee.EmploymentStatusActive, created.Status)
	assert.Equal(t, "Grace Hopper", created.FullName)
	assert.False(t, created.HasPIN)

	dup := createRequest("EMP-001")
	dup.Email = "someone.else@example.com"
	_, err = f.service.Create(ctx, admin, dup)
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)
}

func TestCreate_UnknownReferences(t *testing.T) {
	f := setup(t)
	missing := "00000000-0000-0000-0000-000000000000"

	req := createRequest("EMP-001")
	req.DepartmentID = &missing
	_, err := f.service.Create(context.Background(), admin, req)
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)

	req = createRequest("EMP-002")
	req.ShiftID = &missing
	_, err = f.service.Create(context.Background(), admin, req)
	assert.ErrorIs(t, err, shift.ErrShiftNotFound)
}

func TestUpdate_RecordsChangedFields(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, admin, createRequest("EMP-001"))
	require.NoError(t, err)

	rate := decimal.RequireFromString("30.00")
	position := "Engineer"
	updated, err := f.service.Update(ctx, admin, employee.UpdateEmployeeRequest{
		ID:         created.ID,
		Position:   &position,
		HourlyRate: &rate,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.HourlyRate)
	assert.True(t, updated.HourlyRate.Equal(rate))
	assert.Equal(t, "Engineer", *updated.Position)

	table := "employees"
	entries, err := f.audit.List(ctx, admin, audit.Filter{TableName: &table, RecordID: &created.ID})
	require.NoError(t, err)

	var details []string
	for _, e := range entries.Entries {
		if e.Details != nil {
			details = append(details, *e.Details)
		}
	}
	assert.Contains(t, details, "Updated fields: [position hourly_rate]")
	assert.Contains(t, details, "Created employee EMP-001")
}

func TestDeactivate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, admin, createRequest("EMP-001"))
	require.NoError(t, err)

	require.NoError(t, f.service.Deactivate(ctx, admin, created.ID))
	got, err := f.service.Get(ctx, admin, created.ID)
	require.NoError(t, err)
	assert.Equal(t, employee.EmploymentStatusInactive, got.Status)

	// Deactivating twice is a no-op.
	assert.NoError(t, f.service.Deactivate(ctx, admin, created.ID))
}

func TestAssignShift(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, admin, createRequest("EMP-001"))
	require.NoError(t, err)
	sh, err := f.repos.Shift.Create(ctx, shift.Shift{Name: "Night", StartTime: "22:00", EndTime: "06:00", GracePeriodMinutes: 10})
	require.NoError(t, err)

	got, err := f.service.AssignShift(ctx, admin, employee.AssignShiftRequest{EmployeeID: created.ID, ShiftID: &sh.ID})
	require.NoError(t, err)
	require.NotNil(t, got.ShiftID)
	assert.Equal(t, sh.ID, *got.ShiftID)

	empty := ""
	got, err = f.service.AssignShift(ctx, admin, employee.AssignShiftRequest{EmployeeID: created.ID, ShiftID: &empty})
	require.NoError(t, err)
	assert.Nil(t, got.ShiftID)
}

func TestSetAndVerifyPIN(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, admin, createRequest("EMP-001"))
	require.NoError(t, err)

	_, err = f.service.VerifyPIN(ctx, "EMP-001", "1234")
	assert.ErrorIs(t, err, employee.ErrPINNotSet)

	require.NoError(t, f.service.SetPIN(ctx, admin, employee.SetPINRequest{EmployeeID: created.ID, PIN: "1234"}))

	emp, err := f.service.VerifyPIN(ctx, " emp-001 ", "1234")
	require.NoError(t, err)
	assert.Equal(t, created.ID, emp.ID)

	_, err = f.service.VerifyPIN(ctx, "EMP-001", "9999")
	assert.ErrorIs(t, err, employee.ErrInvalidPIN)

	_, err = f.service.VerifyPIN(ctx, "EMP-404", "1234")
	assert.ErrorIs(t, err, employee.ErrInvalidPIN)

	require.NoError(t, f.service.Deactivate(ctx, admin, created.ID))
	_, err = f.service.VerifyPIN(ctx, "EMP-001", "1234")
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestGet_OwnRecordOnly(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	first, err := f.service.Create(ctx, admin, createRequest("EMP-001"))
	require.NoError(t, err)
	second, err := f.service.Create(ctx, admin, createRequest("EMP-002"))
	require.NoError(t, err)

	self := user.Actor{UserID: "u1", EmployeeID: &first.ID, Role: user.RoleEmployee}
	_, err = f.service.Get(ctx, self, first.ID)
	assert.NoError(t, err)

	_, err = f.service.Get(ctx, self, second.ID)
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	_, err = f.service.Create(ctx, self, createRequest("EMP-003"))
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}
