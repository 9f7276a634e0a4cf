package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gridedit/pkg/api"
)

func TestRecovery(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		handler        http.HandlerFunc
		name           string
		expectedStatus int
		expectPanic    bool
	}{
		{
			name: "Normal handler without panic",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("success"))
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Handler with panic (string)",
			handler: func(w http.ResponseWriter, r *http.Request) {
				panic("something went wrong")
			},
			expectPanic:    true,
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name: "Handler with panic (error)",
			handler: func(w http.ResponseWriter, r *http.Request) {
				panic(io.ErrUnexpectedEOF)
			},
			expectPanic:    true,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Recovery(logger)(tt.handler)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/s1/outputs", nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if !tt.expectPanic {
				assert.Equal(t, "success", w.Body.String())
				return
			}

			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			var resp api.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, "Internal Server Error", resp.Error)
		})
	}
}

func TestRecovery_LogsStackTrace(t *testing.T) {
	var logBuf strings.Builder
	logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	handler := Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic for logging")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/s1/edits", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	logOutput := logBuf.String()
	assert.Contains(t, logOutput, "Panic recovered")
	assert.Contains(t, logOutput, "test panic for logging")
	assert.Contains(t, logOutput, "POST")
	assert.Contains(t, logOutput, "/api/v1/sessions/s1/edits")
	assert.Contains(t, logOutput, "goroutine")
}

func TestRecovery_WrapsLogging(t *testing.T) {
	var logBuf strings.Builder
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	handler := Recovery(logger)(Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/s1/outputs", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, logBuf.String(), "Panic recovered")
}
