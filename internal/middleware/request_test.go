package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"freight-backoffice/internal/logger"
	"freight-backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"missing", "", false},
		{"well formed", "req-42.abc_DEF", true},
		{"header injection", "abc\r\nSet-Cookie: x=1", false},
		{"too long", strings.Repeat("a", 65), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(RequestIDHeader)
			assert.Equal(t, got, w.Body.String())
			if tt.keep {
				assert.Equal(t, tt.incoming, got)
			} else {
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			}
		})
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	serve := func(production bool, path string) http.Header {
		r := gin.New()
		r.Use(SecurityHeadersMiddleware(production))
		r.GET(path, func(c *gin.Context) { c.Status(http.StatusOK) })
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w.Header()
	}

	api := serve(false, "/api/v1/invoices")
	assert.Equal(t, "nosniff", api.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", api.Get("X-Frame-Options"))
	assert.Equal(t, "no-store", api.Get("Cache-Control"))
	assert.Empty(t, api.Get("Strict-Transport-Security"))

	health := serve(true, "/health")
	assert.Empty(t, health.Get("Cache-Control"))
	assert.NotEmpty(t, health.Get("Strict-Transport-Security"))
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestSizeLimitMiddleware(16))
	r.POST("/api/v1/invoices", func(c *gin.Context) { c.Status(http.StatusCreated) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(`{"a":1}`)))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(strings.Repeat("x", 17))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "BODY_TOO_LARGE")
}

func TestLoggingMiddlewareRecordsRouteAndEntity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)
	logger.Set(zap.New(core))
	t.Cleanup(func() { logger.Set(zap.NewNop()) })

	userID := uuid.New()
	r := gin.New()
	r.Use(RequestIDMiddleware(), LoggingMiddleware())
	r.GET("/api/v1/invoices/:id", func(c *gin.Context) {
		c.Set(ContextUserID, userID)
		utils.DetailedErrorResponse(c, http.StatusNotFound, utils.ErrorBody{Error: "Invoice not found", Code: "INVOICE_NOT_FOUND"})
	})

	invoiceID := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/"+invoiceID, nil)
	req.Header.Set(RequestIDHeader, "req-1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("Request rejected").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)

	fields := entries[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "/api/v1/invoices/:id", fields["route"])
	assert.Equal(t, invoiceID, fields["entity_id"])
	assert.Equal(t, userID.String(), fields["user_id"])
	assert.Equal(t, "INVOICE_NOT_FOUND", fields["error_code"])
	assert.EqualValues(t, http.StatusNotFound, fields["status_code"])
}
