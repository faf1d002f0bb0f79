package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/worktrack/worktrack-backend-go/internal/domain/employee"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeSelect = `
	SELECT
		e.id, e.employee_code, e.first_name, e.last_name, e.email, e.phone,
		e.department_id, e.position, e.hire_date, e.hourly_rate, e.monthly_salary,
		e.status, e.shift_id, e.pin_hash, e.created_at, e.updated_at,
		d.name AS department_name
	FROM employees e
	LEFT JOIN departments d ON e.department_id = d.id`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.EmployeeCode, &emp.FirstName, &emp.LastName, &emp.Email, &emp.Phone,
		&emp.DepartmentID, &emp.Position, &emp.HireDate, &emp.HourlyRate, &emp.MonthlySalary,
		&emp.Status, &emp.ShiftID, &emp.PINHash, &emp.CreatedAt, &emp.UpdatedAt,
		&emp.DepartmentName,
	)
	return emp, err
}

// employeeConflict maps a unique violation to the column that caused it.
func employeeConflict(err error) error {
	constraint, ok := uniqueViolation(err)
	if !ok {
		return err
	}
	if strings.Contains(constraint, "email") {
		return employee.ErrEmailExists
	}
	return employee.ErrEmployeeCodeExists
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return employee.Employee{}, err
	}

	var hireDate *string
	if emp.HireDate != nil {
		d := dateArg(*emp.HireDate)
		hireDate = &d
	}
	status := emp.Status
	if status == "" {
		status = employee.EmploymentStatusActive
	}

	query := `
		INSERT INTO employees (
			id, employee_code, first_name, last_name, email, phone, department_id,
			position, hire_date, hourly_rate, monthly_salary, status, shift_id, pin_hash
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err = q.Exec(ctx, query,
		id, emp.EmployeeCode, emp.FirstName, emp.LastName, strings.ToLower(emp.Email), emp.Phone, emp.DepartmentID,
		emp.Position, hireDate, emp.HourlyRate, emp.MonthlySalary, string(status), emp.ShiftID, emp.PINHash,
	)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", employeeConflict(err))
	}

	return r.GetByID(ctx, id)
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return r.get(ctx, "e.id = $1", id)
}

// GetByCode implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	return r.get(ctx, "e.employee_code = $1", code)
}

func (r *employeeRepositoryImpl) get(ctx context.Context, where string, arg interface{}) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	emp, err := scanEmployee(q.QueryRow(ctx, employeeSelect+" WHERE "+where, arg))
	if err != nil {
		if isNotFound(err) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if filter.DepartmentID != nil && *filter.DepartmentID != "" {
		conditions = append(conditions, fmt.Sprintf("e.department_id = $%d", argIdx))
		args = append(args, *filter.DepartmentID)
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("e.status = $%d", argIdx))
		args = append(args, string(*filter.Status))
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(e.first_name ILIKE $%d OR e.last_name ILIKE $%d OR e.employee_code ILIKE $%d OR e.email ILIKE $%d)",
			argIdx, argIdx, argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM employees e WHERE %s", whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := fmt.Sprintf(`%s
		WHERE %s
		ORDER BY e.last_name, e.first_name
		LIMIT $%d OFFSET $%d`, employeeSelect, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	employees, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	query := employeeSelect + `
		WHERE e.status = $1
		ORDER BY e.last_name, e.first_name, e.employee_code`
	return r.query(ctx, query, string(employee.EmploymentStatusActive))
}

func (r *employeeRepositoryImpl) query(ctx context.Context, query string, args ...interface{}) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := []employee.Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func (r *employeeRepositoryImpl) updateColumns(ctx context.Context, id string, updates map[string]interface{}) error {
	q := GetQuerier(ctx, r.db)

	sql, args := buildUpdate("employees", updates, id)
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		if isNotFound(err) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update employee with id %s: %w", id, employeeConflict(err))
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	updates := make(map[string]interface{})
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Email != nil {
		updates["email"] = strings.ToLower(*req.Email)
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
		return nil // No updates provided
	}
	return r.updateColumns(ctx, req.ID, updates)
}

// UpdateStatus implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UpdateStatus(ctx context.Context, id string, status employee.EmploymentStatus) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"status": string(status)})
}

// UpdatePIN implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UpdatePIN(ctx context.Context, id string, pinHash string) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"pin_hash": pinHash})
}

// UpdateShift implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UpdateShift(ctx context.Context, id string, shiftID *string) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"shift_id": shiftID})
}
