package service

import (
	"errors"
	"strings"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTooManyAttempts    = errors.New("account temporarily locked, try again later")

	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")

	ErrForbidden         = errors.New("forbidden: user does not have permission for this action")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrOrderNotPending   = errors.New("only pending orders can be modified")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInvalidStatus     = errors.New("invalid order status")
)

// ValidationError carries field-level input problems that map to a 400
// response, with the individual failures listed for the caller.
type ValidationError struct {
	Msg     string
	Details []string
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Msg
	}
	return e.Msg + ": " + strings.Join(e.Details, "; ")
}

func newValidationError(msg string, details ...string) *ValidationError {
	return &ValidationError{Msg: msg, Details: details}
}
