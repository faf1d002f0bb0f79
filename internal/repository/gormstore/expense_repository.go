package gormstore

import (
	"context"
	"time"

	"github.com/worktrack/worktrack-backend-go/internal/domain/expense"
	"gorm.io/gorm"
)

type expenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) expense.ExpenseRepository {
	return &expenseRepository{db: db}
}

func toExpense(m Expense) expense.Expense {
	e := expense.Expense{
		ID:          m.ID,
		EmployeeID:  m.EmployeeID,
		ExpenseDate: parseDate(m.ExpenseDate),
		Amount:      m.Amount,
		Category:    m.Category,
		Description: m.Description,
		Status:      expense.Status(m.Status),
		ApprovedBy:  m.ApprovedBy,
		ProcessedAt: m.ProcessedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Employee != nil {
		name := toEmployee(*m.Employee).FullName()
		e.EmployeeName = &name
	}
	return e
}

func (r *expenseRepository) Create(ctx context.Context, e expense.Expense) (expense.Expense, error) {
	m := Expense{
		EmployeeID:  e.EmployeeID,
		ExpenseDate: dateString(e.ExpenseDate),
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
		Status:      string(e.Status),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return expense.Expense{}, err
	}
	return toExpense(m), nil
}

func (r *expenseRepository) GetByID(ctx context.Context, id string) (expense.Expense, error) {
	var m Expense
	if err := r.db.WithContext(ctx).Preload("Employee").First(&m, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return expense.Expense{}, expense.ErrExpenseNotFound
		}
		return expense.Expense{}, err
	}
	return toExpense(m), nil
}

func (r *expenseRepository) List(ctx context.Context, filter expense.ExpenseFilter) ([]expense.Expense, int64, error) {
	query := r.db.WithContext(ctx).Model(&Expense{})
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Start != nil {
		query = query.Where("expense_date >= ?", dateString(*filter.Start))
	}
	if filter.End != nil {
		query = query.Where("expense_date <= ?", dateString(*filter.End))
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Expense
	err := query.Preload("Employee").
		Order("expense_date DESC, created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	expenses := make([]expense.Expense, 0, len(rows))
	for _, m := range rows {
		expenses = append(expenses, toExpense(m))
	}
	return expenses, total, nil
}

func (r *expenseRepository) ListApprovedInRange(ctx context.Context, start, end time.Time) ([]expense.Expense, error) {
	var rows []Expense
	err := r.db.WithContext(ctx).
		Where("status = ? AND expense_date >= ? AND expense_date <= ?",
			string(expense.StatusApproved), dateString(start), dateString(end)).
		Order("expense_date, employee_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	expenses := make([]expense.Expense, 0, len(rows))
	for _, m := range rows {
		expenses = append(expenses, toExpense(m))
	}
	return expenses, nil
}

func (r *expenseRepository) UpdateStatus(ctx context.Context, id string, status expense.Status, processedBy string, processedAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&Expense{}).
		Where("id = ? AND status = ?", id, string(expense.StatusPending)).
		Updates(map[string]interface{}{
			"status":       string(status),
			"approved_by":  processedBy,
			"processed_at": processedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return expense.ErrExpenseAlreadyProcessed
	}
	return nil
}
