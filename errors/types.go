package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeInvalidRoot    ErrorCode = "INVALID_ROOT"
	ErrCodeInvalidWorkers ErrorCode = "INVALID_WORKERS"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"

	// Git errors
	ErrCodeGitNotInstalled ErrorCode = "GIT_NOT_INSTALLED"
	ErrCodeStatusFailed    ErrorCode = "STATUS_FAILED"

	// Filesystem errors
	ErrCodePermissionDenied ErrorCode = "PERMISSION_DENIED"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// SweepError represents a structured error with context
type SweepError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *SweepError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SweepError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *SweepError) WithDetail(key string, value interface{}) *SweepError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *SweepError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new SweepError
func New(code ErrorCode, message string) *SweepError {
	return &SweepError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a SweepError
func Wrap(err error, code ErrorCode, message string) *SweepError {
	return &SweepError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific SweepError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	sweepErr, ok := err.(*SweepError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return sweepErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	sweepErr, ok := err.(*SweepError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return sweepErr.Code
}

// IsFatal reports whether an error represents a startup misconfiguration
// that aborts the scan before any work begins.
func IsFatal(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidRoot, ErrCodeInvalidWorkers, ErrCodeConfigInvalid, ErrCodeGitNotInstalled:
		return true
	}
	return false
}
