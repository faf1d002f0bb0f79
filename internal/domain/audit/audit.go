package audit

import (
	"context"
	"time"

	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/pagination"
)

type Action string

const (
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

type Entry struct {
	ID        string
	UserID    *string
	Action    Action
	TableName string
	RecordID  string
	Details   *string
	CreatedAt time.Time
}

type EntryResponse struct {
	ID        string  `json:"id"`
	UserID    *string `json:"user_id,omitempty"`
	Action    Action  `json:"action"`
	TableName string  `json:"table_name"`
	RecordID  string  `json:"record_id"`
	Details   *string `json:"details,omitempty"`
	CreatedAt string  `json:"created_at"`
}

type ListEntryResponse struct {
	pagination.Page
	Entries []EntryResponse `json:"entries"`
}

type Filter struct {
	TableName *string `json:"table_name,omitempty"`
	RecordID  *string `json:"record_id,omitempty"`
	pagination.Params
}

func (f *Filter) Validate() error {
	if errs := f.Params.Normalize(); len(errs) > 0 {
		return errs
	}
	return nil
}

type AuditRepository interface {
	Create(ctx context.Context, entry Entry) error
	List(ctx context.Context, filter Filter) ([]Entry, int64, error)
}

type AuditService interface {
	// Record never fails the caller; storage errors are logged.
	Record(ctx context.Context, actor user.Actor, action Action, table, recordID, details string)
	List(ctx context.Context, actor user.Actor, filter Filter) (ListEntryResponse, error)
}
