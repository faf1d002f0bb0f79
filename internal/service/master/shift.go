package master

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/worktrack/worktrack-backend-go/internal/domain/audit"
	"github.com/worktrack/worktrack-backend-go/internal/domain/shift"
	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/worktime"
)

type shiftServiceImpl struct {
	shiftRepo    shift.ShiftRepository
	auditService audit.AuditService
}

func NewShiftService(shiftRepo shift.ShiftRepository, auditService audit.AuditService) shift.ShiftService {
	return &shiftServiceImpl{
		shiftRepo:    shiftRepo,
		auditService: auditService,
	}
}

// normalizeTimeOfDay stores times as zero-padded HH:MM.
func normalizeTimeOfDay(s string) string {
	t, err := worktime.ParseTimeOfDay(s)
	if err != nil {
		return s
	}
	return t.String()
}

func mapShiftToResponse(s shift.Shift) shift.ShiftResponse {
	return shift.ShiftResponse{
		ID:                 s.ID,
		Name:               s.Name,
		StartTime:          s.StartTime,
		EndTime:            s.EndTime,
		GracePeriodMinutes: s.GracePeriodMinutes,
	}
}

func (s *shiftServiceImpl) Create(ctx context.Context, actor user.Actor, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := actor.Require(user.PermissionOrganizationManage); err != nil {
		return shift.ShiftResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	created, err := s.shiftRepo.Create(ctx, shift.Shift{
		Name:               strings.TrimSpace(req.Name),
		StartTime:          normalizeTimeOfDay(req.StartTime),
		EndTime:            normalizeTimeOfDay(req.EndTime),
		GracePeriodMinutes: req.GracePeriodMinutes,
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	s.auditService.Record(ctx, actor, audit.ActionCreate, "shifts", created.ID,
		fmt.Sprintf("Created shift %s %s-%s", created.Name, created.StartTime, created.EndTime))

	return mapShiftToResponse(created), nil
}

func (s *shiftServiceImpl) Get(ctx context.Context, actor user.Actor, id string) (shift.ShiftResponse, error) {
	if err := actor.Require(user.PermissionOrganizationView); err != nil {
		return shift.ShiftResponse{}, err
	}

	sh, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return mapShiftToResponse(sh), nil
}

func (s *shiftServiceImpl) List(ctx context.Context, actor user.Actor) ([]shift.ShiftResponse, error) {
	if err := actor.Require(user.PermissionOrganizationView); err != nil {
		return nil, err
	}

	shifts, err := s.shiftRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, mapShiftToResponse(sh))
	}
	return responses, nil
}

// Update changes the shift definition only. Attendance already recorded
// keeps its status.
func (s *shiftServiceImpl) Update(ctx context.Context, actor user.Actor, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := actor.Require(user.PermissionOrganizationManage); err != nil {
		return shift.ShiftResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}
	if req.StartTime != nil {
		v := normalizeTimeOfDay(*req.StartTime)
		req.StartTime = &v
	}
	if req.EndTime != nil {
		v := normalizeTimeOfDay(*req.EndTime)
		req.EndTime = &v
	}

	if err := s.shiftRepo.Update(ctx, req); err != nil {
		return shift.ShiftResponse{}, err
	}

	s.auditService.Record(ctx, actor, audit.ActionUpdate, "shifts", req.ID, "Updated shift")

	return s.Get(ctx, actor, req.ID)
}

func (s *shiftServiceImpl) Delete(ctx context.Context, actor user.Actor, id string) error {
	if err := actor.Require(user.PermissionOrganizationManage); err != nil {
		return err
	}

	if _, err := s.shiftRepo.GetByID(ctx, id); err != nil {
		return err
	}

	assigned, err := s.shiftRepo.CountAssignedEmployees(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count assigned employees: %w", err)
	}
	if assigned > 0 {
		slog.Info("refusing to delete assigned shift", slog.String("shift_id", id), slog.Int64("employees", assigned))
		return shift.ErrShiftInUse
	}

	if err := s.shiftRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditService.Record(ctx, actor, audit.ActionDelete, "shifts", id, "Deleted shift")
	return nil
}
