package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/worktrack/worktrack-backend-go/internal/domain/announcement"
	"github.com/worktrack/worktrack-backend-go/internal/handler/http/response"
)

type AnnouncementHandler interface {
	ListActive(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type announcementHandlerImpl struct {
	announcementService announcement.AnnouncementService
}

func NewAnnouncementHandler(announcementService announcement.AnnouncementService) AnnouncementHandler {
	return &announcementHandlerImpl{announcementService: announcementService}
}

// ListActive handles GET /announcements?limit=
func (h *announcementHandlerImpl) ListActive(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	list, err := h.announcementService.ListActive(r.Context(), actor, queryInt(r, "limit"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, list)
}

// ListAll handles GET /announcements/all
func (h *announcementHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	list, err := h.announcementService.ListAll(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, list)
}

// Create handles POST /announcements
func (h *announcementHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req announcement.CreateAnnouncementRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.announcementService.Create(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Announcement posted", created)
}

// Delete handles DELETE /announcements/{id}
func (h *announcementHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	if err := h.announcementService.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Announcement deleted", nil)
}
