// Package telemetry provides OpenTelemetry integration for the application.
package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/retailscope/retailscope/pkg/logger"
)

const (
	// MeterName is the default meter name for the application
	MeterName = "github.com/retailscope/retailscope"
)

// Metrics holds all application metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram

	// Document metrics
	RendersTotal   metric.Int64Counter
	RenderDuration metric.Float64Histogram
	RenderCacheHit metric.Int64Counter

	// Export metrics
	ExportsTotal   metric.Int64Counter
	ExportDuration metric.Float64Histogram
	ExportBytes    metric.Int64Histogram
	ActiveExports  metric.Int64UpDownCounter
}

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// GetMetrics returns the global metrics instance, initializing it if necessary
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		var err error
		globalMetrics, err = initMetrics()
		if err != nil {
			logger.Error("Failed to initialize metrics", zap.Error(err))
			globalMetrics = &Metrics{}
		}
	})
	return globalMetrics
}

func initMetrics() (*Metrics, error) {
	meter := otel.Meter(MeterName)
	m := &Metrics{}

	var err error

	// HTTP metrics
	m.HTTPRequestsTotal, err = meter.Int64Counter(
		"retailscope_http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	m.HTTPRequestDuration, err = meter.Float64Histogram(
		"retailscope_http_request_duration_seconds",
		metric.WithDescription("Duration of HTTP requests in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10),
	)
	if err != nil {
		return nil, err
	}

	// Document metrics
	m.RendersTotal, err = meter.Int64Counter(
		"retailscope_document_renders_total",
		metric.WithDescription("Total number of report document renders"),
		metric.WithUnit("{render}"),
	)
	if err != nil {
		return nil, err
	}

	m.RenderDuration, err = meter.Float64Histogram(
		"retailscope_document_render_duration_seconds",
		metric.WithDescription("Duration of report document renders in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5),
	)
	if err != nil {
		return nil, err
	}

	m.RenderCacheHit, err = meter.Int64Counter(
		"retailscope_document_render_cache_hits_total",
		metric.WithDescription("Total number of renders served from cache"),
		metric.WithUnit("{render}"),
	)
	if err != nil {
		return nil, err
	}

	// Export metrics
	m.ExportsTotal, err = meter.Int64Counter(
		"retailscope_exports_total",
		metric.WithDescription("Total number of report exports"),
		metric.WithUnit("{export}"),
	)
	if err != nil {
		return nil, err
	}

	m.ExportDuration, err = meter.Float64Histogram(
		"retailscope_export_duration_seconds",
		metric.WithDescription("Duration of report exports in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60),
	)
	if err != nil {
		return nil, err
	}

	m.ExportBytes, err = meter.Int64Histogram(
		"retailscope_export_size_bytes",
		metric.WithDescription("Size of exported report files in bytes"),
		metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(1<<10, 16<<10, 64<<10, 256<<10, 1<<20, 4<<20, 16<<20),
	)
	if err != nil {
		return nil, err
	}

	m.ActiveExports, err = meter.Int64UpDownCounter(
		"retailscope_active_exports",
		metric.WithDescription("Number of exports currently in progress"),
		metric.WithUnit("{export}"),
	)
	if err != nil {
		return nil, err
	}

	logger.Info("Metrics initialized successfully")
	return m, nil
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, durationSeconds float64) {
	if m.HTTPRequestsTotal != nil {
		m.HTTPRequestsTotal.Add(ctx, 1,
			metric.WithAttributes(
				attribute.String("method", method),
				attribute.String("path", path),
				attribute.Int("status_code", statusCode),
			),
		)
	}
	if m.HTTPRequestDuration != nil {
		m.HTTPRequestDuration.Record(ctx, durationSeconds,
			metric.WithAttributes(
				attribute.String("method", method),
				attribute.String("path", path),
			),
		)
	}
}

// RecordRender records a document render. cached is true when the bytes
// came from the render cache.
func (m *Metrics) RecordRender(ctx context.Context, cached bool, durationSeconds float64) {
	if m.RendersTotal != nil {
		m.RendersTotal.Add(ctx, 1,
			metric.WithAttributes(attribute.Bool("cached", cached)),
		)
	}
	if cached {
		if m.RenderCacheHit != nil {
			m.RenderCacheHit.Add(ctx, 1)
		}
		return
	}
	if m.RenderDuration != nil {
		m.RenderDuration.Record(ctx, durationSeconds)
	}
}

// RecordExportStarted records that an export has started
func (m *Metrics) RecordExportStarted(ctx context.Context, format string) {
	if m.ActiveExports != nil {
		m.ActiveExports.Add(ctx, 1,
			metric.WithAttributes(attribute.String("format", format)),
		)
	}
}

// RecordExportCompleted records the outcome of an export
func (m *Metrics) RecordExportCompleted(ctx context.Context, format string, success bool, size int64, durationSeconds float64) {
	if m.ActiveExports != nil {
		m.ActiveExports.Add(ctx, -1,
			metric.WithAttributes(attribute.String("format", format)),
		)
	}
	attrs := metric.WithAttributes(
		attribute.String("format", format),
		attribute.Bool("success", success),
	)
	if m.ExportsTotal != nil {
		m.ExportsTotal.Add(ctx, 1, attrs)
	}
	if m.ExportDuration != nil {
		m.ExportDuration.Record(ctx, durationSeconds, attrs)
	}
	if success && m.ExportBytes != nil {
		m.ExportBytes.Record(ctx, size,
			metric.WithAttributes(attribute.String("format", format)),
		)
	}
}
