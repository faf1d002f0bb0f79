package announcement

import (
	"context"
	"fmt"

	"github.com/worktrack/worktrack-backend-go/internal/domain/announcement"
	"github.com/worktrack/worktrack-backend-go/internal/domain/audit"
	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
)

type AnnouncementServiceImpl struct {
	announcementRepo announcement.AnnouncementRepository
	auditService     audit.AuditService
}

func NewAnnouncementService(announcementRepo announcement.AnnouncementRepository, auditService audit.AuditService) announcement.AnnouncementService {
	return &AnnouncementServiceImpl{
		announcementRepo: announcementRepo,
		auditService:     auditService,
	}
}

func toResponse(a announcement.Announcement) announcement.AnnouncementResponse {
	return announcement.AnnouncementResponse{
		ID:        a.ID,
		Title:     a.Title,
		Message:   a.Message,
		CreatedBy: a.CreatedBy,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
	}
}

func toResponses(list []announcement.Announcement) []announcement.AnnouncementResponse {
	responses := make([]announcement.AnnouncementResponse, 0, len(list))
	for _, a := range list {
		responses = append(responses, toResponse(a))
	}
	return responses
}

// Create implements announcement.AnnouncementService.
func (s *AnnouncementServiceImpl) Create(ctx context.Context, actor user.Actor, req announcement.CreateAnnouncementRequest) (announcement.AnnouncementResponse, error) {
	if err := actor.Require(user.PermissionAnnouncementManage); err != nil {
		return announcement.AnnouncementResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return announcement.AnnouncementResponse{}, err
	}

	var createdBy *string
	if actor.UserID != "" {
		id := actor.UserID
		createdBy = &id
	}

	created, err := s.announcementRepo.Create(ctx, announcement.Announcement{
		Title:     req.Title,
		Message:   req.Message,
		CreatedBy: createdBy,
		IsActive:  true,
	})
	if err != nil {
		return announcement.AnnouncementResponse{}, fmt.Errorf("failed to create announcement: %w", err)
	}

	s.auditService.Record(ctx, actor, audit.ActionCreate, "announcements", created.ID,
		fmt.Sprintf("Posted announcement %q", created.Title))

	return toResponse(created), nil
}

// ListActive implements announcement.AnnouncementService.
func (s *AnnouncementServiceImpl) ListActive(ctx context.Context, actor user.Actor, limit int) ([]announcement.AnnouncementResponse, error) {
	list, err := s.announcementRepo.ListActive(ctx, announcement.ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return toResponses(list), nil
}

// ListAll implements announcement.AnnouncementService.
func (s *AnnouncementServiceImpl) ListAll(ctx context.Context, actor user.Actor) ([]announcement.AnnouncementResponse, error) {
	if err := actor.Require(user.PermissionAnnouncementManage); err != nil {
		return nil, err
	}

	list, err := s.announcementRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return toResponses(list), nil
}

// Delete implements announcement.AnnouncementService.
func (s *AnnouncementServiceImpl) Delete(ctx context.Context, actor user.Actor, id string) error {
	if err := actor.Require(user.PermissionAnnouncementManage); err != nil {
		return err
	}
	if err := s.announcementRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditService.Record(ctx, actor, audit.ActionDelete, "announcements", id, "Deleted announcement")
	return nil
}
