package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"rateorder/domain/kinetics"
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

// Wrap wraps an error with additional context. The code is kept from an
// inner AppError, otherwise derived from the cause.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    CodeFor(err),
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

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid   = "CONFIG_INVALID"
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeInternalError   = "INTERNAL_ERROR"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeInvalidOrder    = "INVALID_ORDER"
	CodeDegenerateFit   = "DEGENERATE_FIT"
	CodeNoValidFit      = "NO_VALID_FIT"
	CodeParseError      = "PARSE_ERROR"
)

// CodeFor classifies err by the first known error in its chain
func CodeFor(err error) string {
	var appErr *AppError
	switch {
	case err == nil:
		return ""
	case stderrors.As(err, &appErr):
		return appErr.Code
	case stderrors.Is(err, kinetics.ErrNoValidFit):
		return CodeNoValidFit
	case stderrors.Is(err, kinetics.ErrInvalidOrder):
		return CodeInvalidOrder
	case stderrors.Is(err, kinetics.ErrDegenerateFit):
		return CodeDegenerateFit
	case stderrors.Is(err, kinetics.ErrInvalidInput), kinetics.IsSeriesError(err):
		return CodeInvalidInput
	default:
		return CodeInternalError
	}
}

// HTTPStatus maps an error code to a response status
func HTTPStatus(code string) int {
	switch code {
	case CodeInvalidInput, CodeInvalidOrder, CodeParseError, CodeValidationError:
		return http.StatusBadRequest
	case CodeNoValidFit, CodeDegenerateFit:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func ValidationError(message string) *AppError {
	return New(CodeValidationError, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func ParseError(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeParseError,
		Message: message,
		Cause:   cause,
	}
}
