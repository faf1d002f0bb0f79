package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/worktrack/worktrack-backend-go/internal/domain/expense"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/database"
)

type expenseRepositoryImpl struct {
	db *database.DB
}

func NewExpenseRepository(db *database.DB) expense.ExpenseRepository {
	return &expenseRepositoryImpl{db: db}
}

const expenseSelect = `
	SELECT
		x.id, x.employee_id, x.expense_date, x.amount, x.category, x.description,
		x.status, x.approved_by, x.processed_at, x.created_at, x.updated_at,
		TRIM(e.first_name || ' ' || e.last_name) AS employee_name
	FROM expenses x
	LEFT JOIN employees e ON x.employee_id = e.id`

func scanExpense(row pgx.Row) (expense.Expense, error) {
	var x expense.Expense
	err := row.Scan(
		&x.ID, &x.EmployeeID, &x.ExpenseDate, &x.Amount, &x.Category, &x.Description,
		&x.Status, &x.ApprovedBy, &x.ProcessedAt, &x.CreatedAt, &x.UpdatedAt,
		&x.EmployeeName,
	)
	return x, err
}

// Create implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) Create(ctx context.Context, x expense.Expense) (expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return expense.Expense{}, err
	}
	status := x.Status
	if status == "" {
		status = expense.StatusPending
	}

	query := `
		INSERT INTO expenses (id, employee_id, expense_date, amount, category, description, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = q.Exec(ctx, query, id, x.EmployeeID, dateArg(x.ExpenseDate), x.Amount, x.Category, x.Description, string(status))
	if err != nil {
		return expense.Expense{}, fmt.Errorf("failed to create expense: %w", err)
	}
	return r.GetByID(ctx, id)
}

// GetByID implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) GetByID(ctx context.Context, id string) (expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	x, err := scanExpense(q.QueryRow(ctx, expenseSelect+" WHERE x.id = $1", id))
	if err != nil {
		if isNotFound(err) {
			return expense.Expense{}, expense.ErrExpenseNotFound
		}
		return expense.Expense{}, fmt.Errorf("failed to get expense with id %s: %w", id, err)
	}
	return x, nil
}

// List implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) List(ctx context.Context, filter expense.ExpenseFilter) ([]expense.Expense, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("x.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("x.status = $%d", argIdx))
		args = append(args, string(*filter.Status))
		argIdx++
	}
	if filter.Start != nil {
		conditions = append(conditions, fmt.Sprintf("x.expense_date >= $%d", argIdx))
		args = append(args, dateArg(*filter.Start))
		argIdx++
	}
	if filter.End != nil {
		conditions = append(conditions, fmt.Sprintf("x.expense_date <= $%d", argIdx))
		args = append(args, dateArg(*filter.End))
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM expenses x WHERE %s", whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := fmt.Sprintf(`%s
		WHERE %s
		ORDER BY x.expense_date DESC, x.created_at DESC
		LIMIT $%d OFFSET $%d`, expenseSelect, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	expenses, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

// ListApprovedInRange implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) ListApprovedInRange(ctx context.Context, start, end time.Time) ([]expense.Expense, error) {
	query := expenseSelect + `
		WHERE x.status = $1 AND x.expense_date BETWEEN $2 AND $3
		ORDER BY x.expense_date, x.employee_id`
	return r.query(ctx, query, string(expense.StatusApproved), dateArg(start), dateArg(end))
}

func (r *expenseRepositoryImpl) query(ctx context.Context, query string, args ...interface{}) ([]expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []expense.Expense{}
	for rows.Next() {
		x, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, x)
	}
	return expenses, rows.Err()
}

// UpdateStatus implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) UpdateStatus(ctx context.Context, id string, status expense.Status, processedBy string, processedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE expenses
		SET status = $1, approved_by = $2, processed_at = $3, updated_at = NOW()
		WHERE id = $4 AND status = $5`

	tag, err := q.Exec(ctx, query, string(status), processedBy, processedAt, id, string(expense.StatusPending))
	if err != nil {
		if isNotFound(err) {
			return expense.ErrExpenseNotFound
		}
		return fmt.Errorf("failed to update expense %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return expense.ErrExpenseAlreadyProcessed
	}
	return nil
}
