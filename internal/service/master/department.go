package master

import (
	"context"
	"fmt"
	"strings"

	"github.com/worktrack/worktrack-backend-go/internal/domain/audit"
	"github.com/worktrack/worktrack-backend-go/internal/domain/department"
	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
)

type departmentServiceImpl struct {
	departmentRepo department.DepartmentRepository
	auditService   audit.AuditService
}

func NewDepartmentService(departmentRepo department.DepartmentRepository, auditService audit.AuditService) department.DepartmentService {
	return &departmentServiceImpl{
		departmentRepo: departmentRepo,
		auditService:   auditService,
	}
}

func mapDepartmentToResponse(d department.Department) department.DepartmentResponse {
	return department.DepartmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Budget:      d.Budget,
	}
}

func (s *departmentServiceImpl) Create(ctx context.Context, actor user.Actor, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := actor.Require(user.PermissionOrganizationManage); err != nil {
		return department.DepartmentResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	created, err := s.departmentRepo.Create(ctx, department.Department{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Budget:      req.Budget,
	})
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	s.auditService.Record(ctx, actor, audit.ActionCreate, "departments", created.ID,
		fmt.Sprintf("Created department %s with budget %s", created.Name, created.Budget.StringFixed(2)))

	return mapDepartmentToResponse(created), nil
}

func (s *departmentServiceImpl) Get(ctx context.Context, actor user.Actor, id string) (department.DepartmentResponse, error) {
	if err := actor.Require(user.PermissionOrganizationView); err != nil {
		return department.DepartmentResponse{}, err
	}

	d, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return mapDepartmentToResponse(d), nil
}

func (s *departmentServiceImpl) List(ctx context.Context, actor user.Actor) ([]department.DepartmentResponse, error) {
	if err := actor.Require(user.PermissionOrganizationView); err != nil {
		return nil, err
	}

	departments, err := s.departmentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	responses := make([]department.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		responses = append(responses, mapDepartmentToResponse(d))
	}
	return responses, nil
}

func (s *departmentServiceImpl) Update(ctx context.Context, actor user.Actor, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := actor.Require(user.PermissionOrganizationManage); err != nil {
		return department.DepartmentResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}

	if err := s.departmentRepo.Update(ctx, req); err != nil {
		return department.DepartmentResponse{}, err
	}

	s.auditService.Record(ctx, actor, audit.ActionUpdate, "departments", req.ID, "Updated department")

	return s.Get(ctx, actor, req.ID)
}

func (s *departmentServiceImpl) Delete(ctx context.Context, actor user.Actor, id string) error {
	if err := actor.Require(user.PermissionOrganizationManage); err != nil {
		return err
	}

	if err := s.departmentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditService.Record(ctx, actor, audit.ActionDelete, "departments", id, "Deleted department")
	return nil
}
