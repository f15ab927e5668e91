package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailscope/retailscope/pkg/errors"
)

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	return r
}

func serve(r *gin.Engine, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name   string
		cfg    *LoggerConfig
		status int
	}{
		{"access log on", &LoggerConfig{AccessLog: true}, http.StatusOK},
		{"access log off", &LoggerConfig{AccessLog: false}, http.StatusOK},
		{"nil config", nil, http.StatusOK},
		{"client error", nil, http.StatusNotFound},
		{"server error", nil, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(RequestID(), Logger(tt.cfg))
			r.GET("/report", func(c *gin.Context) { c.Status(tt.status) })

			w := serve(r, http.MethodGet, "/report?tab=service", nil)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRecovery(t *testing.T) {
	r := newRouter(Recovery())
	r.GET("/report", func(c *gin.Context) { panic("template exploded") })

	w := serve(r, http.MethodGet, "/report", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	body := decode(t, w)
	assert.Equal(t, string(errors.ErrCodeInternal), body["code"])
	assert.Equal(t, "Internal server error", body["message"])
}

func TestCORS(t *testing.T) {
	allowed := []string{"http://localhost:3000", "https://example.com"}

	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantHeader string
	}{
		{"allowed origin", http.MethodGet, "http://localhost:3000", http.StatusOK, "http://localhost:3000"},
		{"other origin", http.MethodGet, "http://evil.com", http.StatusOK, ""},
		{"no origin", http.MethodGet, "", http.StatusOK, ""},
		{"preflight allowed", http.MethodOptions, "https://example.com", http.StatusNoContent, "https://example.com"},
		{"preflight refused", http.MethodOptions, "http://evil.com", http.StatusForbidden, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(CORS(allowed))
			r.GET("/api/v1/report", func(c *gin.Context) { c.Status(http.StatusOK) })
			r.OPTIONS("/api/v1/report", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := serve(r, tt.method, "/api/v1/report", map[string]string{"Origin": tt.origin})
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantHeader, w.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantHeader != "" {
				assert.Equal(t, "GET, HEAD, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
				assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := newRouter(RequestID())
	r.GET("/health", func(c *gin.Context) {
		id, ok := c.Get(RequestIDKey)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"request_id": id})
	})

	t.Run("generated", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/health", nil)
		id := w.Header().Get("X-Request-ID")
		assert.Len(t, id, 20)
		assert.Equal(t, id, decode(t, w)["request_id"])
	})

	t.Run("propagated", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/health", map[string]string{"X-Request-ID": "test-request-id-123"})
		assert.Equal(t, "test-request-id-123", w.Header().Get("X-Request-ID"))
		assert.Equal(t, "test-request-id-123", decode(t, w)["request_id"])
	})
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name        string
		debug       bool
		err         error
		wantStatus  int
		wantCode    errors.ErrorCode
		wantMessage string
		wantDetails bool
	}{
		{
			name:        "client error shows message",
			err:         errors.ErrUnsupportedFormat("docx"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    errors.ErrCodeExportFormat,
			wantMessage: "unsupported export format: docx",
		},
		{
			name:        "server error hidden in production",
			err:         errors.Wrap(errors.ErrCodeRender, "template failed at line 12", fmt.Errorf("boom")),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    errors.ErrCodeRender,
			wantMessage: "Internal server error",
		},
		{
			name:        "server error shown in debug",
			debug:       true,
			err:         errors.New(errors.ErrCodeRender, "template failed at line 12"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    errors.ErrCodeRender,
			wantMessage: "template failed at line 12",
		},
		{
			name:        "timeout status hides message in production",
			err:         errors.New(errors.ErrCodeExportTimeout, "PDF export timed out"),
			wantStatus:  http.StatusGatewayTimeout,
			wantCode:    errors.ErrCodeExportTimeout,
			wantMessage: "Internal server error",
		},
		{
			name:        "timeout message shown in debug",
			debug:       true,
			err:         errors.New(errors.ErrCodeExportTimeout, "PDF export timed out"),
			wantStatus:  http.StatusGatewayTimeout,
			wantCode:    errors.ErrCodeExportTimeout,
			wantMessage: "PDF export timed out",
		},
		{
			name:        "browser unavailable hides message in production",
			err:         errors.ErrBrowserUnavailable(fmt.Errorf("exec: chrome not found")),
			wantStatus:  http.StatusServiceUnavailable,
			wantCode:    errors.ErrCodeBrowserUnavailable,
			wantMessage: "Internal server error",
		},
		{
			name:        "details only in debug",
			debug:       true,
			err:         errors.ErrValidation("bad query").WithDetails([]string{"open must be a number"}),
			wantStatus:  http.StatusBadRequest,
			wantCode:    errors.ErrCodeValidation,
			wantMessage: "bad query",
			wantDetails: true,
		},
		{
			name:        "plain error hidden in production",
			err:         fmt.Errorf("disk full at /var/exports"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    errors.ErrCodeInternal,
			wantMessage: "Internal server error",
		},
		{
			name:        "plain error shown in debug",
			debug:       true,
			err:         fmt.Errorf("disk full"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    errors.ErrCodeInternal,
			wantMessage: "disk full",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(ErrorHandler(tt.debug))
			r.GET("/api/v1/report/export", func(c *gin.Context) {
				_ = c.Error(tt.err)
				c.Abort()
			})

			w := serve(r, http.MethodGet, "/api/v1/report/export", nil)
			assert.Equal(t, tt.wantStatus, w.Code)

			body := decode(t, w)
			assert.Equal(t, string(tt.wantCode), body["code"])
			assert.Equal(t, tt.wantMessage, body["message"])
			_, hasDetails := body["details"]
			assert.Equal(t, tt.wantDetails, hasDetails)
		})
	}
}

func TestErrorHandlerNoError(t *testing.T) {
	r := newRouter(ErrorHandler(false))
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	w := serve(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
}

func TestMetrics(t *testing.T) {
	r := newRouter(Metrics())
	r.GET("/report", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/report", nil).Code)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/missing", nil).Code)
}

func TestCORSWildcard(t *testing.T) {
	r := newRouter(CORS([]string{"*"}))
	r.GET("/api/v1/report/charts", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/api/v1/report/charts", map[string]string{"Origin": "https://dashboards.example"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://dashboards.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))

	w = serve(r, http.MethodOptions, "/api/v1/report/charts", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequestIDRejectsMalformed(t *testing.T) {
	r := newRouter(RequestID())
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, incoming := range []string{
		"has space",
		"line\tbreak",
		"abcdefghijklmnopqrstuvwxyz0123456789abcdefghijklmnopqrstuvwxyz0123456789",
	} {
		w := serve(r, http.MethodGet, "/health", map[string]string{HeaderRequestID: incoming})
		got := w.Header().Get(HeaderRequestID)
		assert.NotEqual(t, incoming, got)
		assert.Len(t, got, 20)
	}
}

func TestErrorHandlerKeepsWrittenResponse(t *testing.T) {
	r := newRouter(ErrorHandler(false))
	r.GET("/report", func(c *gin.Context) {
		c.String(http.StatusOK, "partial document")
		_ = c.Error(fmt.Errorf("client went away"))
	})

	w := serve(r, http.MethodGet, "/report", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "partial document", w.Body.String())
}

func TestRecoveryAfterRequestID(t *testing.T) {
	r := newRouter(Recovery(), RequestID())
	r.GET("/api/v1/report", func(c *gin.Context) { panic(fmt.Errorf("nil report")) })

	w := serve(r, http.MethodGet, "/api/v1/report", map[string]string{HeaderRequestID: "trace-7"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "trace-7", w.Header().Get(HeaderRequestID))
	assert.Equal(t, string(errors.ErrCodeInternal), decode(t, w)["code"])
}
