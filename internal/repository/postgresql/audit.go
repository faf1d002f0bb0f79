package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/worktrack/worktrack-backend-go/internal/domain/audit"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/database"
)

type auditRepositoryImpl struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.AuditRepository {
	return &auditRepositoryImpl{db: db}
}

// Create implements audit.AuditRepository.
func (r *auditRepositoryImpl) Create(ctx context.Context, entry audit.Entry) error {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO audit_logs (id, user_id, action, table_name, record_id, details)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := q.Exec(ctx, query, id, entry.UserID, string(entry.Action), entry.TableName, entry.RecordID, entry.Details); err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

// List implements audit.AuditRepository.
func (r *auditRepositoryImpl) List(ctx context.Context, filter audit.Filter) ([]audit.Entry, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if filter.TableName != nil && *filter.TableName != "" {
		conditions = append(conditions, fmt.Sprintf("table_name = $%d", argIdx))
		args = append(args, *filter.TableName)
		argIdx++
	}
	if filter.RecordID != nil && *filter.RecordID != "" {
		conditions = append(conditions, fmt.Sprintf("record_id = $%d", argIdx))
		args = append(args, *filter.RecordID)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM audit_logs WHERE %s", whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, action, table_name, record_id, details, created_at
		FROM audit_logs
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d`, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit logs: %w", err)
	}
	defer rows.Close()

	entries := []audit.Entry{}
	for rows.Next() {
		var e audit.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.TableName, &e.RecordID, &e.Details, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}
