// Package errors defines the application error type. An AppError carries a
// code that API clients receive and that selects the HTTP status.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents application error codes
type ErrorCode string

// Error codes for different error categories
const (
	// General errors (1xxx)
	ErrCodeInternal   ErrorCode = "E1000"
	ErrCodeValidation ErrorCode = "E1001"
	ErrCodeNotFound   ErrorCode = "E1002"

	// Configuration errors (6xxx)
	ErrCodeConfigNotFound ErrorCode = "E6001"
	ErrCodeConfigInvalid  ErrorCode = "E6002"
	ErrCodeConfigParse    ErrorCode = "E6003"

	// Render and export errors (7xxx)
	ErrCodeRender             ErrorCode = "E7001"
	ErrCodeExportFormat       ErrorCode = "E7002"
	ErrCodeExportFailed       ErrorCode = "E7003"
	ErrCodeExportTimeout      ErrorCode = "E7004"
	ErrCodeBrowserUnavailable ErrorCode = "E7005"
)

// Process exit codes
const (
	// ExitCodeConfigValidation indicates configuration validation failure
	ExitCodeConfigValidation = 2
	// ExitCodeVerifyFailed indicates one or more presentation checks failed
	ExitCodeVerifyFailed = 3
)

// AppError represents an application-level error with code and context
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
	Details any       `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the code to the status the API answers with
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeValidation, ErrCodeExportFormat:
		return http.StatusBadRequest
	case ErrCodeExportTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeBrowserUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WithDetails attaches details, shown to clients only in debug mode
func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

// Problems returns the details when they are a list of problem descriptions
func (e *AppError) Problems() []string {
	problems, _ := e.Details.([]string)
	return problems
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an existing error with AppError
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// ErrValidation reports a bad request parameter
func ErrValidation(message string) *AppError {
	return New(ErrCodeValidation, message)
}

// ErrNotFound reports an unknown resource or route
func ErrNotFound(resource string) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource))
}

// ErrConfigNotFound reports an unreadable configuration file
func ErrConfigNotFound(path string, err error) *AppError {
	return Wrap(ErrCodeConfigNotFound, fmt.Sprintf("failed to read config %s", path), err)
}

// ErrConfigParse reports a configuration file that is not valid YAML for the schema
func ErrConfigParse(path string, err error) *AppError {
	return Wrap(ErrCodeConfigParse, fmt.Sprintf("failed to parse config %s", path), err)
}

// ErrConfigInvalid reports every validation problem of a loaded configuration
func ErrConfigInvalid(problems []string) *AppError {
	return New(ErrCodeConfigInvalid, "invalid configuration").WithDetails(problems)
}

// ErrRender reports a document or host page that failed to render
func ErrRender(message string, err error) *AppError {
	return Wrap(ErrCodeRender, message, err)
}

// ErrUnsupportedFormat creates an error for an unknown export format
func ErrUnsupportedFormat(format string) *AppError {
	return New(ErrCodeExportFormat, fmt.Sprintf("unsupported export format: %s", format))
}

// ErrExportFailed reports a failed export in the named format
func ErrExportFailed(format string, err error) *AppError {
	return Wrap(ErrCodeExportFailed, fmt.Sprintf("failed to export %s", format), err)
}

// ErrExportTimeout reports an export that ran out of time
func ErrExportTimeout(format string, err error) *AppError {
	return Wrap(ErrCodeExportTimeout, fmt.Sprintf("%s export timed out", format), err)
}

// ErrBrowserUnavailable reports that no headless Chrome could be started
func ErrBrowserUnavailable(err error) *AppError {
	return Wrap(ErrCodeBrowserUnavailable, "headless Chrome not found", err)
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// AsAppError finds an AppError in err's chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
