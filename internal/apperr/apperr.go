// Package apperr defines the application error taxonomy.
// Every error crossing the repository or resolver boundary is one of these;
// store-library error types never leak past the DAO layer.
package apperr

import (
	"errors"
	"fmt"
)

// Code is a stable, machine-readable error code surfaced to API clients.
type Code string

const (
	CodeBadRequest      Code = "BAD_REQUEST"
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeNotFound        Code = "NOT_FOUND"
	CodeForbidden       Code = "FORBIDDEN"
	CodeInternal        Code = "INTERNAL"
)

// Error carries a taxonomy code, a client-safe message, and an optional
// wrapped cause for logs. Clients only ever see the code and message.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Extensions satisfies the graphql-go ResolverError contract so the code
// rides along in the error's extensions map.
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code": string(e.Code),
	}
}

// BadRequest reports input that fails validation.
func BadRequest(message string) *Error {
	return &Error{Code: CodeBadRequest, Message: message}
}

// Unauthenticated reports a request with no resolved caller identity.
func Unauthenticated() *Error {
	return &Error{Code: CodeUnauthenticated, Message: "authentication required"}
}

// NotFound reports an absent entity.
func NotFound(entity string) *Error {
	return &Error{Code: CodeNotFound, Message: entity + " not found"}
}

// Forbidden reports an authenticated caller acting on a resource it does
// not own.
func Forbidden() *Error {
	return &Error{Code: CodeForbidden, Message: "not allowed"}
}

// Internal wraps a store or infrastructure failure. The cause is kept for
// logging but never shown to clients.
func Internal(cause error) *Error {
	return &Error{Code: CodeInternal, Message: "internal error", cause: cause}
}

// CodeOf extracts the taxonomy code from err. Unclassified errors are
// reported as internal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}
