// Package httperrors converts errors returned by request handlers into uniform
// JSON error responses:
//
//	{"message": "...", "extensions": {...}}
//
// ErrorEncoder should be registered once for every go-kit HTTP server, see ServerOptions.
package httperrors

import (
	"net/http"
)

// ErrorResponse is a body of error response
type ErrorResponse struct {
	Message    string                 `json:"message"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// ExtendedError is an error with additional info about error (error code etc)
type ExtendedError interface {
	error
	ErrorExtensions() map[string]interface{}
}

// HTTPError is an error with HTTP status and optional cause
type HTTPError struct {
	Status  int    // HTTP status
	Message string // error message. If it is empty, status text is used
	Cause   error  // cause of error (optional)
}

// New creates new HTTP error
func New(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

// Wrap creates new HTTP error with cause
func Wrap(status int, message string, cause error) *HTTPError {
	return &HTTPError{Status: status, Message: message, Cause: cause}
}

// BadRequest creates new HTTP error with 400 status
func BadRequest(message string, cause error) *HTTPError {
	return Wrap(http.StatusBadRequest, message, cause)
}

// Unauthorized creates new HTTP error with 401 status
func Unauthorized(cause error) *HTTPError {
	return Wrap(http.StatusUnauthorized, "", cause)
}

func (e *HTTPError) Error() string {
	if len(e.Message) == 0 {
		return http.StatusText(e.Status)
	}
	return e.Message
}

// StatusCode implements go-kit StatusCoder
func (e *HTTPError) StatusCode() int { return e.Status }

func (e *HTTPError) Unwrap() error { return e.Cause }
