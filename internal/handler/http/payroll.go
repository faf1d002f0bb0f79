package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/worktrack/worktrack-backend-go/internal/domain/payroll"
	"github.com/worktrack/worktrack-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	Departments(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// periodFrom reads year and month from the query string. Range checks are
// left to the service so they surface as validation errors.
func periodFrom(w http.ResponseWriter, r *http.Request) (payroll.PeriodRequest, bool) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "invalid year parameter", nil)
		return payroll.PeriodRequest{}, false
	}

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		response.BadRequest(w, "invalid month parameter", nil)
		return payroll.PeriodRequest{}, false
	}

	return payroll.PeriodRequest{Year: year, Month: month}, true
}

// Generate handles GET /payroll
func (h *payrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	req, ok := periodFrom(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.Generate(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Departments handles GET /payroll/departments
func (h *payrollHandlerImpl) Departments(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	req, ok := periodFrom(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.DepartmentRollup(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Export handles GET /payroll/export
func (h *payrollHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	period, ok := periodFrom(w, r)
	if !ok {
		return
	}

	req := payroll.ExportRequest{
		PeriodRequest: period,
		Format:        payroll.ExportFormat(r.URL.Query().Get("format")),
	}

	file, err := h.payrollService.Export(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Data); err != nil {
		slog.Error("failed to write payroll export", "filename", file.Filename, "error", err)
	}
}
