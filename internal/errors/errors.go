package errors

import (
	"context"
	stderrors "errors"
	"fmt"

	"gofactorial/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context. Domain errors keep their
// classification so the CLI can still map them to an exit status.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    Classify(err),
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetCode returns the error code if it's an AppError, otherwise classifies it
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return Classify(err)
}

// Classify maps domain sentinel errors to error codes
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case core.IsInvalidParameter(err):
		return CodeInvalidParameter
	case core.IsMalformedInput(err):
		return CodeMalformedInput
	case core.IsInvalidDesign(err):
		return CodeInvalidDesign
	default:
		return CodeInternalError
	}
}

// Predefined error codes
const (
	CodeConfigInvalid    = "CONFIG_INVALID"
	CodeInvalidParameter = "INVALID_PARAMETER"
	CodeMalformedInput   = "MALFORMED_INPUT"
	CodeInvalidDesign    = "INVALID_DESIGN"
	CodeIOError          = "IO_ERROR"
	CodeInternalError    = "INTERNAL_ERROR"
)

// Process exit statuses per error code
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorConfig   = 2
	ExitErrorInput    = 3
	ExitErrorIO       = 4
	ExitErrorCanceled = 130
)

// ExitCode maps an error to a process exit status
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if stderrors.Is(err, context.Canceled) {
		return ExitErrorCanceled
	}
	switch GetCode(err) {
	case CodeConfigInvalid, CodeInvalidParameter:
		return ExitErrorConfig
	case CodeMalformedInput, CodeInvalidDesign:
		return ExitErrorInput
	case CodeIOError:
		return ExitErrorIO
	default:
		return ExitErrorGeneric
	}
}

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func IOError(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeIOError,
		Message: message,
		Cause:   cause,
	}
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}
