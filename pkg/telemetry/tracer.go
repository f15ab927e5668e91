package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName names the application's tracer
const TracerName = "github.com/retailscope/retailscope"

// Span attribute keys
var (
	AttrReportSlug  = attribute.Key("report.slug")
	AttrViewTab     = attribute.Key("view.tab")
	AttrViewOpen    = attribute.Key("view.open")
	AttrCacheHit    = attribute.Key("render.cache_hit")
	AttrExportID    = attribute.Key("export.id")
	AttrExportFmt   = attribute.Key("export.format")
	AttrExportBytes = attribute.Key("export.bytes")
)

// Tracer returns the global tracer for the application
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// StartSpan starts a span on the application tracer. Callers end it.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name, opts...)
}

// StartRenderSpan starts the span of one document render for a view state
func StartRenderSpan(ctx context.Context, slug, tab string, open int) (context.Context, trace.Span) {
	return StartSpan(ctx, "report.Render", trace.WithAttributes(
		AttrReportSlug.String(slug),
		AttrViewTab.String(tab),
		AttrViewOpen.Int(open),
	))
}

// StartExportSpan starts the span of one export
func StartExportSpan(ctx context.Context, exportID, format string) (context.Context, trace.Span) {
	return StartSpan(ctx, "exporter.Export", trace.WithAttributes(
		AttrExportID.String(exportID),
		AttrExportFmt.String(format),
	))
}

// MarkCacheHit records whether a render was served from the cache
func MarkCacheHit(span trace.Span, hit bool) {
	span.SetAttributes(AttrCacheHit.Bool(hit))
}

// EndExport sets the outcome of an export span; size is ignored on error
func EndExport(span trace.Span, size int, err error) {
	if err != nil {
		SetSpanError(span, err)
		return
	}
	span.SetAttributes(AttrExportBytes.Int(size))
	SetSpanOK(span)
}

// SetSpanError records err on the span and marks it failed. A nil err is ignored.
func SetSpanError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSpanOK marks the span successful
func SetSpanOK(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}
