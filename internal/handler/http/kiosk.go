package http

import (
	"net/http"

	"github.com/worktrack/worktrack-backend-go/internal/domain/attendance"
	"github.com/worktrack/worktrack-backend-go/internal/handler/http/response"
)

// KioskHandler serves the shared clock terminal. Callers authenticate with
// employee code and PIN instead of a token.
type KioskHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
}

type kioskHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewKioskHandler(attendanceService attendance.AttendanceService) KioskHandler {
	return &kioskHandlerImpl{attendanceService: attendanceService}
}

func (h *kioskHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.KioskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.attendanceService.KioskClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, result.Message, result)
}

func (h *kioskHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.KioskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.attendanceService.KioskClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, result.Message, result)
}
