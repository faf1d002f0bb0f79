package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/worktrack/worktrack-backend-go/internal/domain/expense"
	"github.com/worktrack/worktrack-backend-go/internal/handler/http/response"
)

type ExpenseHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetMyExpenses(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type expenseHandlerImpl struct {
	expenseService expense.ExpenseService
}

func NewExpenseHandler(expenseService expense.ExpenseService) ExpenseHandler {
	return &expenseHandlerImpl{expenseService: expenseService}
}

func expenseFilter(r *http.Request) expense.ExpenseFilter {
	filter := expense.ExpenseFilter{
		EmployeeID: queryString(r, "employee_id"),
		StartDate:  queryString(r, "start_date"),
		EndDate:    queryString(r, "end_date"),
		Params:     pageParams(r),
	}
	if status := queryString(r, "status"); status != nil {
		s := expense.Status(*status)
		filter.Status = &s
	}
	return filter
}

// Submit implements ExpenseHandler.
func (h *expenseHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req expense.SubmitExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.expenseService.Submit(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Expense submitted", result)
}

// List implements ExpenseHandler.
func (h *expenseHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	result, err := h.expenseService.List(r.Context(), actor, expenseFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, result, response.PageMeta(result.Page))
}

// GetMyExpenses implements ExpenseHandler.
func (h *expenseHandlerImpl) GetMyExpenses(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	result, err := h.expenseService.MyExpenses(r.Context(), actor, expenseFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, result, response.PageMeta(result.Page))
}

// Get implements ExpenseHandler.
func (h *expenseHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	result, err := h.expenseService.Get(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Approve implements ExpenseHandler.
func (h *expenseHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	result, err := h.expenseService.Approve(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Expense approved", result)
}

// Reject implements ExpenseHandler.
func (h *expenseHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	result, err := h.expenseService.Reject(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Expense rejected", result)
}
