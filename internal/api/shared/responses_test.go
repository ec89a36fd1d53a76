package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yodaslang/yodas-api/internal/platform/logger"
)

func TestRespondWithJSON(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/sets/folders", nil)

	RespondWithJSON(w, r, http.StatusOK, []string{"Week 1", "Week 2"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `["Week 1","Week 2"]`, w.Body.String())
}

func TestRespondWithMessage(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPut, "/sets/updateSetFolder", nil)

	RespondWithMessage(w, r, http.StatusOK, "Change Successful")
	assert.JSONEq(t, `{"message":"Change Successful"}`, w.Body.String())
}

func TestRespondWithError_IncludesTraceID(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/sets/9/terms", nil)
	r = r.WithContext(WithTraceID(r.Context(), "trace-123"))

	RespondWithError(w, r, http.StatusNotFound, "Set not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Set not found", body.Error)
	assert.Equal(t, "trace-123", body.TraceID)
}

func TestRespondWithErrorAndLog(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		opts      []ResponseOption
		wantLevel string
	}{
		{name: "server error", status: http.StatusInternalServerError, wantLevel: "ERROR"},
		{name: "client error", status: http.StatusBadRequest, wantLevel: "DEBUG"},
		{name: "elevated client error", status: http.StatusUnauthorized, opts: []ResponseOption{WithElevatedLogLevel()}, wantLevel: "WARN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _, buf := logger.NewCaptureContext(t)
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/sets", nil).WithContext(ctx)

			err := errors.New("dial postgres://yodas:hunter2@db/yodas: refused")
			RespondWithErrorAndLog(w, r, tt.status, "Something went wrong", err, tt.opts...)

			assert.Equal(t, tt.status, w.Code)
			assert.NotContains(t, w.Body.String(), "hunter2")
			assert.NotContains(t, buf.String(), "hunter2")
			logger.AssertLogField(t, buf, "level", tt.wantLevel)
			logger.AssertLogField(t, buf, "user_message", "Something went wrong")
		})
	}
}
