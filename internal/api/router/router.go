// Package router sets up the HTTP routes for the report server.
package router

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/retailscope/retailscope/consts"
	"github.com/retailscope/retailscope/internal/api/handler"
	"github.com/retailscope/retailscope/internal/api/middleware"
	"github.com/retailscope/retailscope/internal/config"
)

// Setup configures all routes
func Setup(r *gin.Engine, h *handler.ReportHandler, cfg *config.Config) {
	// Apply global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger(&middleware.LoggerConfig{
		AccessLog: cfg.Logging.AccessLog,
	}))
	r.Use(middleware.CORS(cfg.Server.CORSOrigins))
	r.Use(middleware.RequestID())
	// Internal error messages are only exposed in debug mode
	r.Use(middleware.ErrorHandler(cfg.Server.Debug))
	r.Use(middleware.Metrics())

	// Apply OpenTelemetry tracing middleware
	r.Use(otelgin.Middleware(consts.ServiceName))

	r.NoRoute(handler.NotFound)
	r.GET("/health", handler.Health)

	// Pages
	r.GET("/", h.GetPage)
	r.GET("/report", h.GetDocument)

	// API v1 routes
	v1 := r.Group("/api/v1")
	reports := v1.Group("/report")
	{
		reports.GET("", h.GetReport)
		reports.GET("/charts", h.GetCharts)
		reports.GET("/formats", h.ListFormats)
		reports.GET("/export", h.ExportReport)
	}
}
