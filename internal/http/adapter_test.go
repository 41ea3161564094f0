package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"visit-analytics/internal/shared/svcerrors"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHandler adapts a function to AppHttpHandler.
type testHandler struct {
	handleFunc func(w http.ResponseWriter, r *http.Request) error
}

func (h *testHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	return h.handleFunc(w, r)
}

func TestErrorHandlingAdapter_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		err              error
		expectedStatus   int
		expectedCategory string
		expectedCode     string
		expectedMessage  string
		expectErrorLog   bool
	}{
		{
			name:             "unsupported field",
			err:              svcerrors.NewInvalidArgumentError("QRY_1000", `field "ip" is not supported by groupby`, nil),
			expectedStatus:   http.StatusBadRequest,
			expectedCategory: "invalid_argument",
			expectedCode:     "QRY_1000",
			expectedMessage:  `field "ip" is not supported by groupby`,
		},
		{
			name:             "replayed batch",
			err:              svcerrors.NewResourceConflictError("ING_1001", "event batch already processed", nil),
			expectedStatus:   http.StatusConflict,
			expectedCategory: "resource_conflict",
			expectedCode:     "ING_1001",
			expectedMessage:  "event batch already processed",
		},
		{
			name:             "cancelled query",
			err:              svcerrors.NewUnavailableError("QRY_9000", "query cancelled before completion", nil),
			expectedStatus:   http.StatusServiceUnavailable,
			expectedCategory: "unavailable",
			expectedCode:     "QRY_9000",
			expectedMessage:  "query cancelled before completion",
		},
		{
			name:             "store failure hides the cause",
			err:              svcerrors.NewInternalError("ING_9000", assert.AnError),
			expectedStatus:   http.StatusInternalServerError,
			expectedCategory: "internal",
			expectedCode:     "ING_9000",
			expectedMessage:  "internal server error",
			expectErrorLog:   true,
		},
		{
			name:             "plain error",
			err:              assert.AnError,
			expectedStatus:   http.StatusInternalServerError,
			expectedCategory: "internal",
			expectedCode:     "SYS_9001",
			expectedMessage:  "internal server error",
			expectErrorLog:   true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var logs bytes.Buffer
			router := chi.NewRouter()
			router.Use(mwRequestID(newCapturingLogger(t, &logs)))
			router.Get("/services/{service}/count", errorHandlingAdapter(&testHandler{
				handleFunc: func(w http.ResponseWriter, r *http.Request) error {
					return tt.err
				},
			}))

			req := httptest.NewRequest(http.MethodGet, "/services/blog/count", nil)
			req.Header.Set(headerRequestID, "req-"+tt.expectedCode)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var errorResponse ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errorResponse))
			assert.Equal(t, ErrorResponse{
				RequestID:        "req-" + tt.expectedCode,
				ErrorCategory:    tt.expectedCategory,
				ErrorCode:        tt.expectedCode,
				ErrorDescription: tt.expectedMessage,
			}, errorResponse)

			if tt.expectErrorLog {
				assert.Contains(t, logs.String(), `"level":"error"`)
				assert.Contains(t, logs.String(), `"service":"blog"`)
				assert.Contains(t, logs.String(), assert.AnError.Error())
			} else {
				assert.NotContains(t, logs.String(), `"level":"error"`)
			}
		})
	}
}

func TestErrorHandlingAdapter_NoError(t *testing.T) {
	t.Parallel()

	handler := errorHandlingAdapter(&testHandler{
		handleFunc: func(w http.ResponseWriter, r *http.Request) error {
			writeJSON(w, http.StatusAccepted, map[string]int{"accepted": 2})
			return nil
		},
	})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/services/blog/events", nil))

	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.JSONEq(t, `{"accepted":2}`, rr.Body.String())
}

func TestWriteErrorResponse_RecordsErrorOnAppWriter(t *testing.T) {
	t.Parallel()

	appWriter := newAppResponseWriter(httptest.NewRecorder(), 1)
	req := httptest.NewRequest(http.MethodGet, "/services/blog/average", nil)

	writeErrorResponse(appWriter, req, svcerrors.NewInvalidArgumentError("QRY_1001", "invalid day", nil))

	assert.Equal(t, "QRY_1001", appWriter.ErrorCode())
	assert.Equal(t, http.StatusBadRequest, appWriter.StatusOrOK())
}
