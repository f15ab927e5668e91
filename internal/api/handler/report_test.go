package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailscope/retailscope/consts"
	"github.com/retailscope/retailscope/internal/config"
	"github.com/retailscope/retailscope/internal/model"
	"github.com/retailscope/retailscope/internal/verify"
	"github.com/retailscope/retailscope/pkg/errors"
)

func reportRouter(t *testing.T) *gin.Engine {
	t.Helper()
	h := newTestHandler(t)
	r := setupTestRouter()
	r.GET("/", h.GetPage)
	r.GET("/report", h.GetDocument)
	r.GET("/health", Health)
	api := r.Group("/api/v1/report")
	api.GET("", h.GetReport)
	api.GET("/charts", h.GetCharts)
	api.GET("/formats", h.ListFormats)
	api.GET("/export", h.ExportReport)
	return r
}

func parseHTML(t *testing.T, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)
	return doc
}

func TestGetPage(t *testing.T) {
	w := doRequest(reportRouter(t), http.MethodGet, "/?tab=service&open=1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

	page := parseHTML(t, w.Body.String())
	assert.Equal(t, config.DefaultPageTitle, page.Find("h1.page-title").Text())

	frame := page.Find("iframe.html-embed")
	require.Equal(t, 1, frame.Length())
	assert.Equal(t, "2000", frame.AttrOr("height", ""))

	embedded := parseHTML(t, frame.AttrOr("srcdoc", ""))
	assert.Equal(t, []string{"service-content"}, verify.VisiblePanes(embedded))
	assert.Equal(t, []int{1}, verify.OpenEntries(embedded))
}

func TestGetDocument(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantPane string
		wantOpen []int
	}{
		{"defaults", "", "personalization-content", nil},
		{"selected state", "?tab=operations&open=2", "operations-content", []int{2}},
		{"unknown tab falls back", "?tab=nope&open=9", "personalization-content", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(reportRouter(t), http.MethodGet, "/report"+tt.query)
			require.Equal(t, http.StatusOK, w.Code)

			doc := parseHTML(t, w.Body.String())
			assert.Equal(t, []string{tt.wantPane}, verify.VisiblePanes(doc))
			assert.Equal(t, tt.wantOpen, verify.OpenEntries(doc))
		})
	}
}

func TestGetReport(t *testing.T) {
	w := doRequest(reportRouter(t), http.MethodGet, "/api/v1/report")
	require.Equal(t, http.StatusOK, w.Code)

	var rpt model.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rpt))
	assert.Equal(t, "ai-in-indian-retail", rpt.Slug)
	assert.Len(t, rpt.Leaders.Entries, 4)
}

func TestGetCharts(t *testing.T) {
	w := doRequest(reportRouter(t), http.MethodGet, "/api/v1/report/charts")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Charts []model.ChartSpec `json:"charts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Charts, 3)

	growth := body.Charts[0]
	assert.Equal(t, []string{"2024", "2025", "2026", "2027", "2028", "2029", "2030"}, growth.Labels)
	assert.Equal(t, []float64{584.7, 781.7, 1045.1, 1397.3, 1868.2, 2500.0, 3474.6}, growth.Datasets[0].Data)
	assert.InDelta(t, 100, body.Charts[1].Datasets[0].Sum(), 1e-9)
}

func TestListFormats(t *testing.T) {
	w := doRequest(reportRouter(t), http.MethodGet, "/api/v1/report/formats")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"formats":["host","html","json","pdf"]}`, w.Body.String())
}

func TestExportReport(t *testing.T) {
	tests := []struct {
		name            string
		query           string
		wantType        string
		wantDisposition string
		wantBody        string
	}{
		{"default html", "", "text/html; charset=utf-8", `attachment; filename="ai-in-indian-retail.html"`, "<!DOCTYPE html>"},
		{"host page", "?format=host", "text/html; charset=utf-8", `attachment; filename="ai-in-indian-retail-page.html"`, "srcdoc="},
		{"json upper case", "?format=JSON", "application/json; charset=utf-8", `attachment; filename="ai-in-indian-retail.json"`, `"slug": "ai-in-indian-retail"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(reportRouter(t), http.MethodGet, "/api/v1/report/export"+tt.query)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantType, w.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantDisposition, w.Header().Get("Content-Disposition"))
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestExportReportUnsupportedFormat(t *testing.T) {
	w := doRequest(reportRouter(t), http.MethodGet, "/api/v1/report/export?format=docx")
	assertErrorResponse(t, w, http.StatusBadRequest, string(errors.ErrCodeExportFormat))
	assert.Empty(t, w.Header().Get("Content-Disposition"))
}

func TestHealth(t *testing.T) {
	w := doRequest(reportRouter(t), http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status  string       `json:"status"`
		Service string       `json:"service"`
		Version string       `json:"version"`
		Uptime  string       `json:"uptime"`
		Build   consts.Build `json:"build"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, consts.ServiceName, body.Service)
	assert.Equal(t, consts.Version, body.Version)
	assert.NotEmpty(t, body.Uptime)
	assert.Equal(t, consts.BuildInfo(), body.Build)
}
