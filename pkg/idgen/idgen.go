// Package idgen provides ID generation utilities for the application.
package idgen

import (
	"github.com/rs/xid"
)

// NewID generates a new globally unique identifier.
// The result is 20 characters, URL-safe and sortable by creation time.
func NewID() string {
	return xid.New().String()
}

// NewRequestID generates a unique ID for HTTP request tracking.
func NewRequestID() string {
	return NewID()
}

// NewExportID generates a unique ID for one export run, used to correlate
// log lines and temporary files belonging to the same export.
func NewExportID() string {
	return "exp_" + NewID()
}

// IsValid reports whether s is a well-formed xid.
func IsValid(s string) bool {
	_, err := xid.FromString(s)
	return err == nil
}
