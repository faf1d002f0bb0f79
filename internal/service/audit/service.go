package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/worktrack/worktrack-backend-go/internal/domain/audit"
	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/pagination"
)

type AuditServiceImpl struct {
	auditRepo audit.AuditRepository
}

func NewAuditService(auditRepo audit.AuditRepository) audit.AuditService {
	return &AuditServiceImpl{auditRepo: auditRepo}
}

// Record implements audit.AuditService.
func (s *AuditServiceImpl) Record(ctx context.Context, actor user.Actor, action audit.Action, table, recordID, details string) {
	entry := audit.Entry{
		Action:    action,
		TableName: table,
		RecordID:  recordID,
	}
	if actor.UserID != "" {
		userID := actor.UserID
		entry.UserID = &userID
	}
	if details != "" {
		entry.Details = &details
	}

	if err := s.auditRepo.Create(ctx, entry); err != nil {
		slog.Error("failed to write audit entry",
			slog.String("table", table),
			slog.String("record_id", recordID),
			slog.String("action", string(action)),
			slog.String("error", err.Error()),
		)
	}
}

// List implements audit.AuditService.
func (s *AuditServiceImpl) List(ctx context.Context, actor user.Actor, filter audit.Filter) (audit.ListEntryResponse, error) {
	if err := actor.Require(user.PermissionAuditView); err != nil {
		return audit.ListEntryResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return audit.ListEntryResponse{}, err
	}

	entries, total, err := s.auditRepo.List(ctx, filter)
	if err != nil {
		return audit.ListEntryResponse{}, err
	}

	responses := make([]audit.EntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, audit.EntryResponse{
			ID:        e.ID,
			UserID:    e.UserID,
			Action:    e.Action,
			TableName: e.TableName,
			RecordID:  e.RecordID,
			Details:   e.Details,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
		})
	}

	return audit.ListEntryResponse{
		Page:    pagination.NewPage(filter.Params, total, len(responses)),
		Entries: responses,
	}, nil
}
