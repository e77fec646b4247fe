package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Wrap wraps an error with additional context, creating a LibError if the input is not already one
func Wrap(err error, errType ErrorType, code, message string) *LibError {
	if err == nil {
		return nil
	}

	// Keep the inner error's context and hint so the outer error still explains itself
	var le *LibError
	if errors.As(err, &le) {
		return &LibError{
			Type:        errType,
			Code:        code,
			Message:     message,
			Cause:       le,
			Context:     copyContext(le.Context),
			Component:   le.Component,
			FilePath:    le.FilePath,
			Hint:        le.Hint,
			Recoverable: le.Recoverable,
		}
	}

	return &LibError{
		Type:        errType,
		Code:        code,
		Message:     message,
		Cause:       err,
		Recoverable: errType == ErrorTypeValidation || errType == ErrorTypeInstall,
	}
}

// WrapIO wraps an error as an I/O error
func WrapIO(err error, code, message string) *LibError {
	libErr := Wrap(err, ErrorTypeIO, code, message)
	if libErr != nil {
		libErr.Recoverable = false
	}
	return libErr
}

// WrapConfig wraps an error as a configuration error
func WrapConfig(err error, code, message string) *LibError {
	libErr := Wrap(err, ErrorTypeConfig, code, message)
	if libErr != nil {
		libErr.Recoverable = false
	}
	return libErr
}

// WrapInternal wraps an error as an internal error
func WrapInternal(err error, code, message string) *LibError {
	libErr := Wrap(err, ErrorTypeInternal, code, message)
	if libErr != nil {
		libErr.Recoverable = false
	}
	return libErr
}

// CombineErrors combines multiple errors into a single error with context
func CombineErrors(errs ...error) error {
	var nonNil []error
	for _, err := range errs {
		if err != nil {
			nonNil = append(nonNil, err)
		}
	}
	if len(nonNil) == 0 {
		return nil
	}
	if len(nonNil) == 1 {
		return nonNil[0]
	}

	messages := make([]string, 0, len(nonNil))
	hint := ""
	for _, err := range nonNil {
		messages = append(messages, err.Error())
		if hint == "" {
			hint = HintFor(err)
		}
	}

	return &LibError{
		Type:    ErrorTypeInternal,
		Code:    ErrCodeMultipleErrors,
		Message: fmt.Sprintf("%d errors occurred:\n  - %s", len(nonNil), strings.Join(messages, "\n  - ")),
		Context: map[string]interface{}{
			"error_count": len(nonNil),
			"errors":      messages,
		},
		Hint:        hint,
		Recoverable: false,
	}
}

func copyContext(src map[string]interface{}) map[string]interface{} {
	if src == nil {
		return nil
	}
	dst := make(map[string]interface{}, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
