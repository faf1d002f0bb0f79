package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/worktrack/worktrack-backend-go/internal/domain/department"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/database"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

const departmentColumns = `id, name, description, budget, created_at, updated_at`

func scanDepartment(row pgx.Row) (department.Department, error) {
	var d department.Department
	err := row.Scan(&d.ID, &d.Name, &d.Description, &d.Budget, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

// Create implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Create(ctx context.Context, dept department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return department.Department{}, err
	}

	query := `
		INSERT INTO departments (id, name, description, budget)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + departmentColumns

	created, err := scanDepartment(q.QueryRow(ctx, query, id, dept.Name, dept.Description, dept.Budget))
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return department.Department{}, department.ErrDepartmentNameExists
		}
		return department.Department{}, fmt.Errorf("failed to create department: %w", err)
	}
	return created, nil
}

// GetByID implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id string) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	d, err := scanDepartment(q.QueryRow(ctx, "SELECT "+departmentColumns+" FROM departments WHERE id = $1", id))
	if err != nil {
		if isNotFound(err) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to get department with id %s: %w", id, err)
	}
	return d, nil
}

// List implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) List(ctx context.Context) ([]department.Department, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, "SELECT "+departmentColumns+" FROM departments ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	departments := []department.Department{}
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

// Update implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Update(ctx context.Context, req department.UpdateDepartmentRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Budget != nil {
		updates["budget"] = *req.Budget
	}
	if len(updates) == 0 {
		_, err := r.GetByID(ctx, req.ID)
		return err
	}

	sql, args := buildUpdate("departments", updates, req.ID)
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return department.ErrDepartmentNameExists
		}
		if isNotFound(err) {
			return department.ErrDepartmentNotFound
		}
		return fmt.Errorf("failed to update department with id %s: %w", req.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}
	return nil
}

// Delete implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Delete(ctx context.Context, id string) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		var employees int64
		if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM employees WHERE department_id = $1", id).Scan(&employees); err != nil {
			if isNotFound(err) {
				return department.ErrDepartmentNotFound
			}
			return fmt.Errorf("failed to count department employees: %w", err)
		}
		if employees > 0 {
			return department.ErrDepartmentInUse
		}

		tag, err := q.Exec(ctx, "DELETE FROM departments WHERE id = $1", id)
		if err != nil {
			if foreignKeyViolation(err) {
				return department.ErrDepartmentInUse
			}
			return fmt.Errorf("failed to delete department with id %s: %w", id, err)
		}
		if tag.RowsAffected() == 0 {
			return department.ErrDepartmentNotFound
		}
		return nil
	})
}
