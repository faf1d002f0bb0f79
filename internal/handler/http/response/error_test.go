package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worktrack/worktrack-backend-go/internal/domain/attendance"
	"github.com/worktrack/worktrack-backend-go/internal/domain/auth"
	"github.com/worktrack/worktrack-backend-go/internal/domain/employee"
	"github.com/worktrack/worktrack-backend-go/internal/domain/expense"
	"github.com/worktrack/worktrack-backend-go/internal/domain/payroll"
	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/validator"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/worktime"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", validator.ValidationErrors{{Field: "email", Message: "email is required"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"bad shift config", fmt.Errorf("resolve shift: %w", worktime.ErrInvalidTimeOfDay), http.StatusInternalServerError, "CONFIGURATION_ERROR"},
		{"bad payroll settings", payroll.ErrInvalidSettings, http.StatusInternalServerError, "CONFIGURATION_ERROR"},
		{"invalid interval", worktime.ErrInvalidInterval, http.StatusBadRequest, "BAD_REQUEST"},
		{"already clocked in", attendance.ErrAlreadyClockedIn, http.StatusConflict, "CONFLICT"},
		{"already clocked out", attendance.ErrAlreadyClockedOut, http.StatusConflict, "CONFLICT"},
		{"not clocked in", attendance.ErrNotClockedIn, http.StatusConflict, "CONFLICT"},
		{"expense processed", expense.ErrExpenseAlreadyProcessed, http.StatusConflict, "CONFLICT"},
		{"permission", user.ErrInsufficientPermissions, http.StatusForbidden, "FORBIDDEN"},
		{"credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"not found", employee.ErrEmployeeNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body Response
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestHandleError_ClockMessages(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, attendance.ErrAlreadyClockedIn)

	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Already clocked in.", body.Error.Message)
}
