package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/retailscope/retailscope/internal/api/handler"
	"github.com/retailscope/retailscope/internal/config"
	"github.com/retailscope/retailscope/internal/report"
	"github.com/retailscope/retailscope/internal/report/exporter"
	"github.com/retailscope/retailscope/pkg/logger"
)

func init() {
	logger.Init(logger.Config{
		Level:  "error",
		Format: "text",
	})
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	return cfg
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	renderer, err := report.NewRenderer(report.OptionsFromConfig(cfg.Report))
	require.NoError(t, err)
	h := handler.NewReportHandler(renderer, exporter.NewDefaultManager(renderer, cfg), report.IndianRetail(), cfg.Page)

	srv := New(cfg, h)
	srv.SetupRoutes()
	return srv
}

func TestNew(t *testing.T) {
	cfg := testConfig()
	srv := newTestServer(t, cfg)

	assert.Same(t, cfg, srv.cfg)
	assert.NotNil(t, srv.Router())
	assert.False(t, srv.Router().RedirectTrailingSlash)
	assert.Equal(t, "127.0.0.1:0", srv.Addr())
}

func TestDebugMode(t *testing.T) {
	cfg := testConfig()
	cfg.Server.Debug = true
	newTestServer(t, cfg)
	assert.Equal(t, gin.DebugMode, gin.Mode())

	cfg.Server.Debug = false
	newTestServer(t, cfg)
	assert.Equal(t, gin.ReleaseMode, gin.Mode())
}

func TestRoutesRegistered(t *testing.T) {
	srv := newTestServer(t, testConfig())

	for _, path := range []string{"/health", "/", "/report", "/api/v1/report/charts"} {
		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestStartServeStop(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	srv := newTestServer(t, testConfig())
	require.NoError(t, srv.Start())
	assert.NotEqual(t, "127.0.0.1:0", srv.Addr())

	client := &http.Client{
		Timeout:   10 * time.Second,
		Transport: &http.Transport{DisableKeepAlives: true},
	}
	resp, err := client.Get("http://" + srv.Addr() + "/health")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"ok"`)

	require.NoError(t, srv.Stop())

	_, err = client.Get("http://" + srv.Addr() + "/health")
	assert.Error(t, err)
}

func TestStartAddressInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	cfg := testConfig()
	cfg.Server.Port = ln.Addr().(*net.TCPAddr).Port

	srv := newTestServer(t, cfg)
	err = srv.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}

func TestStopBeforeStart(t *testing.T) {
	srv := newTestServer(t, testConfig())
	assert.NoError(t, srv.Stop())
	assert.NoError(t, srv.Shutdown(context.Background()))
}

func TestShutdownTwice(t *testing.T) {
	srv := newTestServer(t, testConfig())
	require.NoError(t, srv.Start())
	require.NoError(t, srv.Stop())
	assert.NoError(t, srv.Stop())
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, time.Second, orDefault(0, time.Second))
	assert.Equal(t, time.Second, orDefault(-time.Minute, time.Second))
	assert.Equal(t, time.Minute, orDefault(time.Minute, time.Second))
}
