// Package errors defines the domain error values shared by services and
// handlers. Handlers map a DomainError to its HTTP status; anything else is
// an internal failure.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// DomainError is an error the API reports to the caller verbatim.
type DomainError struct {
	Code    string
	Message string
	Status  int
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches on Code so wrapped copies created by WithMessage still match
// the sentinel they came from.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithMessage returns a copy of e carrying a more specific message.
func (e *DomainError) WithMessage(format string, args ...interface{}) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: fmt.Sprintf(format, args...),
		Status:  e.Status,
	}
}

var (
	ErrNotFound = &DomainError{
		Code:    "NOT_FOUND",
		Message: "resource not found",
		Status:  http.StatusNotFound,
	}
	ErrValidation = &DomainError{
		Code:    "VALIDATION_FAILED",
		Message: "invalid request",
		Status:  http.StatusBadRequest,
	}
	ErrInvalidCredentials = &DomainError{
		Code:    "INVALID_CREDENTIALS",
		Message: "invalid email or password",
		Status:  http.StatusUnauthorized,
	}
	ErrSessionExpired = &DomainError{
		Code:    "SESSION_EXPIRED",
		Message: "session expired",
		Status:  http.StatusUnauthorized,
	}
	ErrForbiddenRole = &DomainError{
		Code:    "FORBIDDEN_ROLE",
		Message: "super admin access required",
		Status:  http.StatusForbidden,
	}
	ErrPaymentNotPending = &DomainError{
		Code:    "PAYMENT_NOT_PENDING",
		Message: "payment has already been processed",
		Status:  http.StatusConflict,
	}
	ErrUnsupportedEntity = &DomainError{
		Code:    "UNSUPPORTED_ENTITY",
		Message: "unsupported entity",
		Status:  http.StatusBadRequest,
	}
	ErrUpload = &DomainError{
		Code:    "UPLOAD_FAILED",
		Message: "image upload failed",
		Status:  http.StatusBadGateway,
	}
)

// As reports whether err carries a DomainError and returns it.
func As(err error) (*DomainError, bool) {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de, true
	}
	return nil, false
}
