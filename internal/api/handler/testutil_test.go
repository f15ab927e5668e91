package handler

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailscope/retailscope/internal/api/middleware"
	"github.com/retailscope/retailscope/internal/config"
	"github.com/retailscope/retailscope/internal/report"
	"github.com/retailscope/retailscope/internal/report/exporter"
)

// setupTestRouter returns a gin engine with error rendering, as the API router applies it
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.ErrorHandler(false))
	return r
}

// newTestHandler wires a handler over the bundled report with default config
func newTestHandler(t *testing.T) *ReportHandler {
	t.Helper()
	cfg := config.Default()
	renderer, err := report.NewRenderer(report.OptionsFromConfig(cfg.Report))
	require.NoError(t, err)
	return NewReportHandler(renderer, exporter.NewDefaultManager(renderer, cfg), report.IndianRetail(), cfg.Page)
}

func doRequest(r *gin.Engine, method, url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// assertErrorResponse checks the {code, message} error body
func assertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	assert.Equal(t, status, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, code, body["code"])
	assert.NotEmpty(t, body["message"])
}

