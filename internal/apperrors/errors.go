package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("resource state conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrInvalidTransition indicates that the requested status is not reachable
// from the order's current status.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrAlreadyTerminal indicates that the order has reached a terminal status
// and accepts no further transitions.
var ErrAlreadyTerminal = errors.New("order is in a terminal status")

// ErrInsufficientStock indicates that a stock item does not have enough
// available quantity to satisfy the request.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrAlreadySettled indicates that the obligation was already settled or cancelled.
var ErrAlreadySettled = errors.New("obligation already settled")

// ErrOverSettlement indicates that the settlement amount exceeds the obligation amount.
var ErrOverSettlement = errors.New("settlement amount exceeds obligation amount")

// AppError wraps a lower-level error with an HTTP-ish status code and a message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
