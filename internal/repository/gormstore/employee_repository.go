package gormstore

import (
	"context"
	"strings"

	"github.com/worktrack/worktrack-backend-go/internal/domain/employee"
	"gorm.io/gorm"
)

type employeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

func toEmployee(m Employee) employee.Employee {
	e := employee.Employee{
		ID:            m.ID,
		EmployeeCode:  m.EmployeeCode,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		Email:         m.Email,
		Phone:         m.Phone,
		DepartmentID:  m.DepartmentID,
		Position:      m.Position,
		HireDate:      parseDatePtr(m.HireDate),
		HourlyRate:    m.HourlyRate,
		MonthlySalary: m.MonthlySalary,
		Status:        employee.EmploymentStatus(m.Status),
		ShiftID:       m.ShiftID,
		PINHash:       m.PINHash,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.Department != nil {
		name := m.Department.Name
		e.DepartmentName = &name
	}
	return e
}

// employeeConflict maps a unique violation to the column that caused it.
func employeeConflict(err error) error {
	cols, ok := uniqueViolation(err)
	if !ok {
		return err
	}
	if strings.Contains(cols, "email") {
		return employee.ErrEmailExists
	}
	return employee.ErrEmployeeCodeExists
}

func (r *employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	m := Employee{
		EmployeeCode:  e.EmployeeCode,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		Email:         e.Email,
		Phone:         e.Phone,
		DepartmentID:  e.DepartmentID,
		Position:      e.Position,
		HireDate:      dateStringPtr(e.HireDate),
		HourlyRate:    e.HourlyRate,
		MonthlySalary: e.MonthlySalary,
		Status:        string(e.Status),
		ShiftID:       e.ShiftID,
		PINHash:       e.PINHash,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return employee.Employee{}, employeeConflict(err)
	}
	return toEmployee(m), nil
}

func (r *employeeRepository) get(ctx context.Context, query string, arg interface{}) (employee.Employee, error) {
	var m Employee
	if err := r.db.WithContext(ctx).Preload("Department").Where(query, arg).First(&m).Error; err != nil {
		if isNotFound(err) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return toEmployee(m), nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return r.get(ctx, "id = ?", id)
}

func (r *employeeRepository) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	return r.get(ctx, "employee_code = ?", code)
}

func (r *employeeRepository) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	query := r.db.WithContext(ctx).Model(&Employee{})
	if filter.DepartmentID != nil && *filter.DepartmentID != "" {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Search != nil && *filter.Search != "" {
		like := "%" + strings.ToLower(*filter.Search) + "%"
		query = query.Where(
			"(LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(employee_code) LIKE ? OR LOWER(email) LIKE ?)",
			like, like, like, like,
		)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Employee
	err := query.Preload("Department").
		Order("last_name, first_name").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	employees := make([]employee.Employee, 0, len(rows))
	for _, m := range rows {
		employees = append(employees, toEmployee(m))
	}
	return employees, total, nil
}

func (r *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	var rows []Employee
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("status = ?", string(employee.EmploymentStatusActive)).
		Order("last_name, first_name, employee_code").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	employees := make([]employee.Employee, 0, len(rows))
	for _, m := range rows {
		employees = append(employees, toEmployee(m))
	}
	return employees, nil
}

func (r *employeeRepository) updateColumns(ctx context.Context, id string, updates map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&Employee{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return employeeConflict(res.Error)
	}
	if res.RowsAffected == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepository) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.DepartmentID != nil {
		if *req.DepartmentID == "" {
			updates["department_id"] = nil
		} else {
			updates["department_id"] = *req.DepartmentID
		}
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.HourlyRate != nil {
		updates["hourly_rate"] = *req.HourlyRate
	}
	if req.MonthlySalary != nil {
		updates["monthly_salary"] = *req.MonthlySalary
	}
	if req.Status != nil {
		updates["status"] = string(*req.Status)
	}
	if req.ShiftID != nil {
		if *req.ShiftID == "" {
			updates["shift_id"] = nil
		} else {
			updates["shift_id"] = *req.ShiftID
		}
	}
	if len(updates) == 0 {
		return nil
	}
	return r.updateColumns(ctx, req.ID, updates)
}

func (r *employeeRepository) UpdateStatus(ctx context.Context, id string, status employee.EmploymentStatus) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"status": string(status)})
}

func (r *employeeRepository) UpdatePIN(ctx context.Context, id string, pinHash string) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"pin_hash": pinHash})
}

func (r *employeeRepository) UpdateShift(ctx context.Context, id string, shiftID *string) error {
	var value interface{}
	if shiftID != nil {
		value = *shiftID
	}
	return r.updateColumns(ctx, id, map[string]interface{}{"shift_id": value})
}
