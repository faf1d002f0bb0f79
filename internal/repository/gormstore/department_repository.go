package gormstore

import (
	"context"

	"github.com/worktrack/worktrack-backend-go/internal/domain/department"
	"gorm.io/gorm"
)

type departmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.DepartmentRepository {
	return &departmentRepository{db: db}
}

func toDepartment(m Department) department.Department {
	return department.Department{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Budget:      m.Budget,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *departmentRepository) Create(ctx context.Context, dept department.Department) (department.Department, error) {
	m := Department{
		Name:        dept.Name,
		Description: dept.Description,
		Budget:      dept.Budget,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if _, ok := uniqueViolation(err); ok {
			return department.Department{}, department.ErrDepartmentNameExists
		}
		return department.Department{}, err
	}
	return toDepartment(m), nil
}

func (r *departmentRepository) GetByID(ctx context.Context, id string) (department.Department, error) {
	var m Department
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, err
	}
	return toDepartment(m), nil
}

func (r *departmentRepository) List(ctx context.Context) ([]department.Department, error) {
	var rows []Department
	if err := r.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}

	departments := make([]department.Department, 0, len(rows))
	for _, m := range rows {
		departments = append(departments, toDepartment(m))
	}
	return departments, nil
}

func (r *departmentRepository) Update(ctx context.Context, req department.UpdateDepartmentRequest) error {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Budget != nil {
		updates["budget"] = *req.Budget
	}

	if _, err := r.GetByID(ctx, req.ID); err != nil {
		return err
	}
	if len(updates) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Model(&Department{}).Where("id = ?", req.ID).Updates(updates).Error
	if _, ok := uniqueViolation(err); ok {
		return department.ErrDepartmentNameExists
	}
	return err
}

func (r *departmentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var employees int64
		if err := tx.Model(&Employee{}).Where("department_id = ?", id).Count(&employees).Error; err != nil {
			return err
		}
		if employees > 0 {
			return department.ErrDepartmentInUse
		}

		res := tx.Delete(&Department{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return department.ErrDepartmentNotFound
		}
		return nil
	})
}
