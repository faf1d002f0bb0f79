package http

import (
	"net/http"

	"github.com/worktrack/worktrack-backend-go/internal/domain/audit"
	"github.com/worktrack/worktrack-backend-go/internal/handler/http/response"
)

type AuditHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type auditHandlerImpl struct {
	auditService audit.AuditService
}

func NewAuditHandler(auditService audit.AuditService) AuditHandler {
	return &auditHandlerImpl{auditService: auditService}
}

// List handles GET /audit
func (h *auditHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	filter := audit.Filter{
		TableName: queryString(r, "table"),
		RecordID:  queryString(r, "record_id"),
		Params:    pageParams(r),
	}

	result, err := h.auditService.List(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, result, response.PageMeta(result.Page))
}
