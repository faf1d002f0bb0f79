package master

import (
	"context"
	"fmt"
	"strings"

	"github.com/worktrack/worktrack-backend-go/internal/domain/audit"
	"github.com/worktrack/worktrack-backend-go/internal/domain/holiday"
	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/worktime"
)

type holidayServiceImpl struct {
	holidayRepo  holiday.HolidayRepository
	auditService audit.AuditService
}

func NewHolidayService(holidayRepo holiday.HolidayRepository, auditService audit.AuditService) holiday.HolidayService {
	return &holidayServiceImpl{
		holidayRepo:  holidayRepo,
		auditService: auditService,
	}
}

func (s *holidayServiceImpl) Create(ctx context.Context, actor user.Actor, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := actor.Require(user.PermissionOrganizationManage); err != nil {
		return holiday.HolidayResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	created, err := s.holidayRepo.Create(ctx, holiday.Holiday{
		Date: req.DateParsed,
		Name: strings.TrimSpace(req.Name),
	})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	s.auditService.Record(ctx, actor, audit.ActionCreate, "holidays", created.ID,
		fmt.Sprintf("Created holiday %s on %s", created.Name, created.Date.Format(worktime.DateLayout)))

	return holiday.HolidayResponse{
		ID:   created.ID,
		Date: created.Date.Format(worktime.DateLayout),
		Name: created.Name,
	}, nil
}

func (s *holidayServiceImpl) List(ctx context.Context, actor user.Actor, year int) ([]holiday.HolidayResponse, error) {
	if err := actor.Require(user.PermissionOrganizationView); err != nil {
		return nil, err
	}

	holidays, err := s.holidayRepo.ListByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	responses := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, holiday.HolidayResponse{
			ID:   h.ID,
			Date: h.Date.Format(worktime.DateLayout),
			Name: h.Name,
		})
	}
	return responses, nil
}

func (s *holidayServiceImpl) Delete(ctx context.Context, actor user.Actor, id string) error {
	if err := actor.Require(user.PermissionOrganizationManage); err != nil {
		return err
	}
	if err := s.holidayRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditService.Record(ctx, actor, audit.ActionDelete, "holidays", id, "Deleted holiday")
	return nil
}
