package errors

import (
	stderrors "errors"
	"fmt"
	"maps"
)

// AppError carries a machine-readable code, a message, optional structured
// details and the error that caused it.
type AppError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Cause   error          `json:"-"`
}

func (e *AppError) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += " (cause: " + e.Cause.Error() + ")"
	}
	return msg
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the cause and returns e.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets one detail and returns e.
func (e *AppError) WithDetail(key string, value any) *AppError {
	return e.WithDetails(map[string]any{key: value})
}

// WithDetails merges details into e and returns e.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	maps.Copy(e.Details, details)
	return e
}

// New returns an AppError with no details or cause.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func newf(code ErrorCode, format string, args ...any) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// StageFailed reports that a pipeline stage failed on the element at index.
// The pass that produced it stopped at that element.
func StageFailed(stage string, index int, cause error) *AppError {
	return newf(ErrCodeStageFailed, "%s stage failed at element %d", stage, index).
		WithDetails(map[string]any{"stage": stage, "index": index}).
		WithCause(cause)
}

// InvalidInput reports a rejected argument. An empty field leaves the
// "field" detail unset.
func InvalidInput(field, reason string) *AppError {
	e := newf(ErrCodeInvalidInput, "Invalid input: %s", reason)
	if field != "" {
		e.WithDetail("field", field)
	}
	return e
}

// Validation reports failed validation under INVALID_INPUT.
func Validation(message string) *AppError {
	return New(ErrCodeInvalidInput, message)
}

// MissingField reports a required field that was not set.
func MissingField(field string) *AppError {
	return newf(ErrCodeMissingField, "Missing required field: %s", field).
		WithDetail("field", field)
}

// InvalidFormat reports a field whose value does not match expected.
func InvalidFormat(field, expected string) *AppError {
	return newf(ErrCodeInvalidFormat, "Invalid format for %s. Expected: %s", field, expected).
		WithDetails(map[string]any{"field": field, "expected_format": expected})
}

// Internal wraps an unexpected failure.
func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "An unexpected error occurred.").WithCause(cause)
}

// AsAppError finds the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := stderrors.As(err, &appErr)
	return appErr, ok
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ""
}

// IsCode reports whether err's chain holds an AppError with code.
func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// Wrap returns the AppError in err's chain, or err wrapped as
// INTERNAL_ERROR when there is none. Wrap(nil) is nil.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return Internal(err)
}

// StageOf extracts the stage name and element index from a STAGE_FAILED
// error anywhere in err's chain.
func StageOf(err error) (stage string, index int, ok bool) {
	appErr, found := AsAppError(err)
	if !found || appErr.Code != ErrCodeStageFailed {
		return "", 0, false
	}
	stage, _ = appErr.Details["stage"].(string)
	index, _ = appErr.Details["index"].(int)
	return stage, index, true
}
