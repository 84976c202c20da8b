// Package errors provides the structured error types used across exnew.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeVersion    ErrorType = "version"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeInternal   ErrorType = "internal"
)

// Error codes for the failure modes a generation run can hit.
const (
	ErrCodeInvalidAppName          = "ERR_INVALID_APP_NAME"
	ErrCodeInvalidModuleName       = "ERR_INVALID_MODULE_NAME"
	ErrCodeModuleNameTaken         = "ERR_MODULE_NAME_TAKEN"
	ErrCodeUnparseableVersion      = "ERR_UNPARSEABLE_VERSION"
	ErrCodeDirectoryCreationFailed = "ERR_DIRECTORY_CREATION_FAILED"
	ErrCodeFileWriteFailed         = "ERR_FILE_WRITE_FAILED"
	ErrCodeInternalError           = "ERR_INTERNAL"
)

// ExnewError is a structured error type with context.
type ExnewError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	Context     map[string]interface{}
	Recoverable bool
}

// Error implements the error interface.
func (e *ExnewError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *ExnewError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison.
func (e *ExnewError) Is(target error) bool {
	var t *ExnewError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *ExnewError) WithContext(key string, value interface{}) *ExnewError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// Error creation functions

// NewValidationError creates a validation error. Validation errors are
// detected before any filesystem mutation, so retrying with corrected
// input is always safe.
func NewValidationError(code, message string) *ExnewError {
	return &ExnewError{
		Type:        ErrorTypeValidation,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewVersionError creates an error for an unparseable toolchain version.
func NewVersionError(message string, cause error) *ExnewError {
	return &ExnewError{
		Type:        ErrorTypeVersion,
		Code:        ErrCodeUnparseableVersion,
		Message:     message,
		Cause:       cause,
		Recoverable: true,
	}
}

// NewIOError creates an I/O error. Write-phase failures may leave a
// partially populated directory behind; the operator cleans up or
// re-invokes against a fresh path.
func NewIOError(code, message string, cause error) *ExnewError {
	return &ExnewError{
		Type:        ErrorTypeIO,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// NewInternalError creates an internal error for programmer mistakes such
// as a malformed template in the static catalog.
func NewInternalError(message string, cause error) *ExnewError {
	return &ExnewError{
		Type:        ErrorTypeInternal,
		Code:        ErrCodeInternalError,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// IsValidationError checks whether err is a validation error.
func IsValidationError(err error) bool {
	var e *ExnewError
	if errors.As(err, &e) {
		return e.Type == ErrorTypeValidation
	}

	return false
}

// ErrorCode extracts the error code from an error, or "" when the error
// is not an ExnewError.
func ErrorCode(err error) string {
	var e *ExnewError
	if errors.As(err, &e) {
		return e.Code
	}

	return ""
}
