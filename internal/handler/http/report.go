package http

import (
	"net/http"

	"github.com/worktrack/worktrack-backend-go/internal/domain/report"
	"github.com/worktrack/worktrack-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	GetAttendanceSummary(w http.ResponseWriter, r *http.Request)
	GetOvertimeByDepartment(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

func dateRangeFrom(r *http.Request) report.DateRangeRequest {
	q := r.URL.Query()
	return report.DateRangeRequest{
		StartDate: q.Get("start"),
		EndDate:   q.Get("end"),
	}
}

// GetAttendanceSummary handles GET /reports/attendance-summary
func (h *reportHandlerImpl) GetAttendanceSummary(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.AttendanceSummary(r.Context(), actor, dateRangeFrom(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetOvertimeByDepartment handles GET /reports/overtime-by-department
func (h *reportHandlerImpl) GetOvertimeByDepartment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.OvertimeByDepartment(r.Context(), actor, dateRangeFrom(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
