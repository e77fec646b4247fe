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
	ErrorTypeSecurity   ErrorType = "security"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeRegistry   ErrorType = "registry"
	ErrorTypeInstall    ErrorType = "install"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeInternal   ErrorType = "internal"
)

// LibError is a structured error type with context.
type LibError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	Context     map[string]interface{}
	Component   string
	FilePath    string
	Hint        string
	Recoverable bool
}

// Error implements the error interface.
func (e *LibError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Component != "" {
		parts = append(parts, "component:"+e.Component)
	}

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *LibError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison.
func (e *LibError) Is(target error) bool {
	var t *LibError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *LibError) WithContext(key string, value interface{}) *LibError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithFile records the file the error refers to.
func (e *LibError) WithFile(filePath string) *LibError {
	e.FilePath = filePath

	return e
}

// WithComponent adds component context.
func (e *LibError) WithComponent(component string) *LibError {
	e.Component = component

	return e
}

// WithHint sets the recovery hint shown to the user.
func (e *LibError) WithHint(hint string) *LibError {
	e.Hint = hint

	return e
}

// WithCause sets the underlying error.
func (e *LibError) WithCause(cause error) *LibError {
	e.Cause = cause

	return e
}

// Error creation functions

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *LibError {
	return &LibError{
		Type:        ErrorTypeValidation,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewSecurityError creates a security error.
func NewSecurityError(code, message string) *LibError {
	return &LibError{
		Type:        ErrorTypeSecurity,
		Code:        code,
		Message:     message,
		Recoverable: false,
	}
}

// NewNetworkError creates a network error.
func NewNetworkError(code, message string, cause error) *LibError {
	return &LibError{
		Type:        ErrorTypeNetwork,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// NewRegistryError creates an error for an unusable registry response.
func NewRegistryError(code, message string, cause error) *LibError {
	return &LibError{
		Type:        ErrorTypeRegistry,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// NewInstallError creates a dependency installation error.
func NewInstallError(code, message string, cause error) *LibError {
	return &LibError{
		Type:        ErrorTypeInstall,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: true,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *LibError {
	return &LibError{
		Type:        ErrorTypeInternal,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// Error recovery and handling utilities

// IsRecoverable checks if an error is recoverable.
func IsRecoverable(err error) bool {
	var le *LibError
	if errors.As(err, &le) {
		return le.Recoverable
	}

	return false
}

// IsType reports whether err is a LibError of the given type.
func IsType(err error, t ErrorType) bool {
	var le *LibError
	if errors.As(err, &le) {
		return le.Type == t
	}

	return false
}

// IsSecurityError checks if an error is security-related.
func IsSecurityError(err error) bool {
	return IsType(err, ErrorTypeSecurity)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return IsType(err, ErrorTypeValidation)
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code string) bool {
	for err != nil {
		var le *LibError
		if !errors.As(err, &le) {
			return false
		}
		if le.Code == code {
			return true
		}
		err = le.Cause
	}

	return false
}

// Common error codes.
const (
	ErrCodeInvalidComponentName = "ERR_INVALID_COMPONENT_NAME"
	ErrCodeUnknownComponent     = "ERR_UNKNOWN_COMPONENT"
	ErrCodeInvalidPath          = "ERR_INVALID_PATH"
	ErrCodePathEscape           = "ERR_PATH_ESCAPE"
	ErrCodeCommandInjection     = "ERR_COMMAND_INJECTION"
	ErrCodeCommandNotAllowed    = "ERR_COMMAND_NOT_ALLOWED"
	ErrCodeInvalidPackage       = "ERR_INVALID_PACKAGE"
	ErrCodeInvalidURL           = "ERR_INVALID_URL"
	ErrCodeRegistryUnreachable  = "ERR_REGISTRY_UNREACHABLE"
	ErrCodeRegistryStatus       = "ERR_REGISTRY_STATUS"
	ErrCodeRegistryDecode       = "ERR_REGISTRY_DECODE"
	ErrCodeRegistryShape        = "ERR_REGISTRY_SHAPE"
	ErrCodeInstallFailed        = "ERR_INSTALL_FAILED"
	ErrCodeWriteFailed          = "ERR_WRITE_FAILED"
	ErrCodeConfigInvalid        = "ERR_CONFIG_INVALID"
	ErrCodeInternalError        = "ERR_INTERNAL"
	ErrCodeInterrupted          = "ERR_INTERRUPTED"
	ErrCodeMultipleErrors       = "ERR_MULTIPLE_ERRORS"
)

// Helper functions for common errors

// ErrInvalidComponentName creates an error for a name that fails the pattern check.
func ErrInvalidComponentName(name string) *LibError {
	return NewValidationError(
		ErrCodeInvalidComponentName,
		fmt.Sprintf("invalid component name %q", name),
	).WithContext("name", name)
}

// ErrUnknownComponent creates an error for a name outside the allow-list.
func ErrUnknownComponent(name string, allowed []string) *LibError {
	return NewValidationError(
		ErrCodeUnknownComponent,
		fmt.Sprintf("component %q is not available", name),
	).WithContext("name", name).WithContext("allowed", allowed)
}

// ErrPathEscape creates a security error for a destination outside its base directory.
func ErrPathEscape(path, base string) *LibError {
	return NewSecurityError(
		ErrCodePathEscape,
		"resolved path escapes "+base,
	).WithFile(path)
}

// ErrCommandInjection creates a command injection security error.
func ErrCommandInjection(command string) *LibError {
	return NewSecurityError(
		ErrCodeCommandInjection,
		"command injection attempt: "+command,
	)
}

// ErrRegistryShape creates an error for a registry payload with an unexpected structure.
func ErrRegistryShape(component, reason string) *LibError {
	return NewRegistryError(
		ErrCodeRegistryShape,
		"malformed registry entry: "+reason,
		nil,
	).WithComponent(component)
}

// ErrInterrupted creates an error for an operation cancelled by the user.
func ErrInterrupted(operation string, cause error) *LibError {
	return NewInternalError(
		ErrCodeInterrupted,
		operation+" interrupted",
		cause,
	)
}
