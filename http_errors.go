package viewkit

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError represents an HTTP error with a status code and a message safe
// to show to the client. It is a value type so errors.As works on both the
// error itself and wrapped chains.
type HTTPError struct {
	Code    int    // HTTP status code
	Message string // Client-facing message
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Message
}

// Common client errors
var (
	ErrBadRequest       = HTTPError{Code: http.StatusBadRequest, Message: "bad request"}
	ErrUnauthorized     = HTTPError{Code: http.StatusUnauthorized, Message: "unauthorized"}
	ErrForbidden        = HTTPError{Code: http.StatusForbidden, Message: "forbidden"}
	ErrNotFound         = HTTPError{Code: http.StatusNotFound, Message: "not found"}
	ErrMethodNotAllowed = HTTPError{Code: http.StatusMethodNotAllowed, Message: "method not allowed"}
	ErrGone             = HTTPError{Code: http.StatusGone, Message: "gone"}
)

// Common server errors
var (
	ErrInternalServerError = HTTPError{Code: http.StatusInternalServerError, Message: "internal server error"}
	ErrNotImplemented      = HTTPError{Code: http.StatusNotImplemented, Message: "not implemented"}
)

// NewHTTPError creates a custom HTTP error with the given status code and
// message.
func NewHTTPError(code int, message string) HTTPError {
	return HTTPError{Code: code, Message: message}
}

// NotFoundf creates a 404 error whose message names the underlying cause,
// e.g. the invalid page number or the entity that could not be resolved.
//
// Example:
//
//	return viewkit.Error(viewkit.NotFoundf("Invalid page %d: %s", number, err))
func NotFoundf(format string, args ...any) HTTPError {
	return HTTPError{Code: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

// errorResponse resolves an error to a plain HTTP response at the boundary.
type errorResponse struct {
	err error
}

func (e errorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	var httpErr HTTPError
	if errors.As(e.err, &httpErr) {
		http.Error(w, httpErr.Message, httpErr.Code)
		return nil
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	return nil
}

// Error wraps err in a Response. HTTPError values render with their own
// status code and message; anything else renders as a 500 without leaking
// the error text to the client. Decorators use it to convert per-request
// failures (missing entity, invalid page, empty list) into responses
// without aborting the composition.
func Error(err error) Response {
	return errorResponse{err: err}
}
