// Package errors provides standardized error handling for the Slidecast player
package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors that can be used across the application
var (
	// ErrIdentityMissing indicates no device identity is persisted; the
	// player cannot fetch content and must be paired first
	ErrIdentityMissing = errors.New("device identity missing")

	// ErrNetwork indicates a request failed or returned a non-2xx status
	ErrNetwork = errors.New("network error")

	// ErrMalformedResponse indicates the remote JSON had an unexpected shape
	ErrMalformedResponse = errors.New("malformed response")

	// ErrEmptyContent indicates a well-formed response with nothing displayable
	ErrEmptyContent = errors.New("no displayable content")

	// ErrAssetDownload indicates a single media asset could not be cached
	ErrAssetDownload = errors.New("asset download failed")

	// ErrNotFound indicates a requested resource doesn't exist
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput indicates invalid input parameters
	ErrInvalidInput = errors.New("invalid input")
)

// Error represents a domain error with additional context
type Error struct {
	// Code is a machine-readable error code
	Code string
	// Message is a human-readable error description
	Message string
	// Op describes the operation that failed
	Op string
	// Err is the underlying error
	Err error
}

// Error implements the error interface with a formatted message
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain handling
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error with the given details
func NewError(code string, message string, op string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

// IsIdentityMissing returns true if err means the device is unpaired
func IsIdentityMissing(err error) bool {
	return errors.Is(err, ErrIdentityMissing)
}

// IsNetwork returns true if err represents a transport-level failure
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// IsMalformedResponse returns true if err represents an undecodable response
func IsMalformedResponse(err error) bool {
	return errors.Is(err, ErrMalformedResponse)
}

// IsEmptyContent returns true if err means the feed held nothing displayable
func IsEmptyContent(err error) bool {
	return errors.Is(err, ErrEmptyContent)
}

// IsNotFound returns true if err represents a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidInput returns true if err represents an invalid input error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
