package hasura

import "net/http"

// Error is a Hasura client error with a fixed message and HTTP status.
// Values are only created inside this package, see the Err* variables.
type Error struct {
	msg    string
	status int
}

func newError(msg string) *Error {
	return &Error{msg: msg, status: http.StatusBadRequest}
}

func (e *Error) Error() string { return e.msg }

// Status returns HTTP status which should be used in response for this error
func (e *Error) Status() int { return e.status }

var (
	ErrMissingAdminSecret = newError("admin secret is not configured")
	ErrMissingEndpoint    = newError("graphql endpoint is not configured")
	ErrEmptyRequest       = newError("empty hasura request")
	ErrEmptyQuery         = newError("empty graphql query")
)
