package errors

import "fmt"

// ErrorCode represents a Jot error code.
type ErrorCode string

const (
	ErrInvalidRequest    ErrorCode = "INVALID_REQUEST"     // 400
	ErrNotFound          ErrorCode = "NOT_FOUND"           // 404
	ErrFactAlreadyExists ErrorCode = "FACT_ALREADY_EXISTS" // 409
	ErrFactTooLarge      ErrorCode = "FACT_TOO_LARGE"      // 413
	ErrInternal          ErrorCode = "INTERNAL"            // 500
)

// JotError represents a structured error with code, status, and details.
// The in-memory store itself never produces these; they belong to the
// operations boundary that wraps it for HTTP, MCP, and CLI callers.
type JotError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *JotError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *JotError {
	return &JotError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing fact or session.
func NewNotFound(kind, identifier string) *JotError {
	return &JotError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("%s not found: %s", kind, identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewFactAlreadyExists creates a 409 error for duplicate fact ids.
func NewFactAlreadyExists(id string) *JotError {
	return &JotError{
		Code:    ErrFactAlreadyExists,
		Status:  409,
		Message: fmt.Sprintf("fact with id %q already exists", id),
		Details: map[string]any{"id": id},
	}
}

// NewFactTooLarge creates a 413 error when fact text exceeds the size limit.
func NewFactTooLarge(max, actual int) *JotError {
	return &JotError{
		Code:    ErrFactTooLarge,
		Status:  413,
		Message: fmt.Sprintf("fact exceeds maximum size: %d chars (max %d)", actual, max),
		Details: map[string]any{"max_chars": max, "actual_chars": actual},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *JotError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &JotError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// AsJotError returns err as a *JotError, wrapping unknown errors as internal.
func AsJotError(err error) *JotError {
	if jErr, ok := err.(*JotError); ok {
		return jErr
	}
	return NewInternal(err)
}

// Is checks if an error is a JotError with the given code.
func Is(err error, code ErrorCode) bool {
	if jErr, ok := err.(*JotError); ok {
		return jErr.Code == code
	}
	return false
}
