// Package middleware provides the gin middleware chain of the report server.
package middleware

import (
	"net/http"
	"regexp"
	"runtime/debug"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/retailscope/retailscope/pkg/errors"
	"github.com/retailscope/retailscope/pkg/idgen"
	"github.com/retailscope/retailscope/pkg/logger"
	"github.com/retailscope/retailscope/pkg/telemetry"
)

// RequestIDKey is the gin context key holding the request ID
const RequestIDKey = "request_id"

// HeaderRequestID carries the request ID in both directions
const HeaderRequestID = "X-Request-ID"

const (
	internalMessage = "Internal server error"
	unmatchedRoute  = "unmatched"
	healthRoute     = "/health"
)

// Incoming request IDs are echoed into headers and logs, so only short
// token-like values are accepted.
var validRequestID = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// View state and export parameters worth seeing in request logs
var loggedParams = []string{"tab", "open", "format"}

// LoggerConfig holds the configuration for the Logger middleware
type LoggerConfig struct {
	// AccessLog logs successful requests at info level.
	// Health probes are never access-logged.
	AccessLog bool
}

// Logger returns a middleware that logs finished requests.
// Failures are always logged; successes only with AccessLog.
func Logger(cfg *LoggerConfig) gin.HandlerFunc {
	accessLog := cfg != nil && cfg.AccessLog

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		if status < http.StatusBadRequest && (!accessLog || c.FullPath() == healthRoute) {
			return
		}

		fields := requestFields(c, time.Since(start))
		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("Request failed", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("Request rejected", fields...)
		default:
			logger.Info("Request served", fields...)
		}
	}
}

// requestFields describes a finished request
func requestFields(c *gin.Context, latency time.Duration) []zap.Field {
	fields := []zap.Field{
		zap.Int("status", c.Writer.Status()),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("route", routeOf(c)),
		zap.Int("bytes", c.Writer.Size()),
		zap.String("ip", c.ClientIP()),
		zap.Duration("latency", latency),
	}

	query := c.Request.URL.Query()
	for _, key := range loggedParams {
		if v := query.Get(key); v != "" {
			fields = append(fields, zap.String(key, v))
		}
	}
	if id := c.GetString(RequestIDKey); id != "" {
		fields = append(fields, zap.String(RequestIDKey, id))
	}
	if len(c.Errors) > 0 {
		fields = append(fields, zap.String("error", c.Errors.String()))
	}
	return fields
}

// routeOf returns the matched route pattern, so /report?tab=x and
// /report?tab=y share one value
func routeOf(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return unmatchedRoute
}

// Recovery returns a middleware that turns handler panics into E1000 responses
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			logger.Error("Handler panicked",
				zap.Any("panic", rec),
				zap.String("method", c.Request.Method),
				zap.String("route", routeOf(c)),
				zap.String(RequestIDKey, c.GetString(RequestIDKey)),
				zap.ByteString("stack", debug.Stack()),
			)
			writeError(c, http.StatusInternalServerError, errors.ErrCodeInternal, internalMessage, nil)
		}()
		c.Next()
	}
}

// CORS answers cross-origin requests from allowedOrigins; "*" admits any origin.
// The API is read-only, so only GET and HEAD are advertised.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	anyOrigin := slices.Contains(allowedOrigins, "*")
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		_, listed := allowed[origin]
		permitted := origin != "" && (anyOrigin || listed)

		if permitted {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			h.Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, "+HeaderRequestID)
			// Export downloads read their filename from Content-Disposition
			h.Set("Access-Control-Expose-Headers", "Content-Length, Content-Type, Content-Disposition, "+HeaderRequestID)
			h.Set("Access-Control-Max-Age", "86400")
		}

		if c.Request.Method != http.MethodOptions {
			c.Next()
			return
		}
		if permitted {
			c.AbortWithStatus(http.StatusNoContent)
		} else {
			c.AbortWithStatus(http.StatusForbidden)
		}
	}
}

// RequestID returns a middleware that tags each request with an ID.
// A well-formed X-Request-ID from the client is kept; anything else is replaced.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if !validRequestID.MatchString(id) {
			id = idgen.NewRequestID()
		}
		c.Set(RequestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// ErrorHandler returns a middleware that renders handler errors as {code, message}.
// Outside debug mode, messages of 5xx errors and all details are hidden.
func ErrorHandler(debugMode bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		status, code, message := http.StatusInternalServerError, errors.ErrCodeInternal, err.Error()
		var details any
		if appErr, ok := errors.AsAppError(err); ok {
			status, code, message, details = appErr.HTTPStatus(), appErr.Code, appErr.Message, appErr.Details
		}

		if !debugMode {
			details = nil
			if status >= http.StatusInternalServerError {
				message = internalMessage
			}
		}
		writeError(c, status, code, message, details)
	}
}

// writeError aborts the request with the API error body
func writeError(c *gin.Context, status int, code errors.ErrorCode, message string, details any) {
	body := gin.H{"code": code, "message": message}
	if details != nil {
		body["details"] = details
	}
	c.AbortWithStatusJSON(status, body)
}

// Metrics returns a middleware that records request count and latency per route
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		telemetry.GetMetrics().RecordHTTPRequest(c.Request.Context(),
			c.Request.Method, routeOf(c), c.Writer.Status(), time.Since(start).Seconds())
	}
}
