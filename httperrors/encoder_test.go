package httperrors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hasura/go-graphql-client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobr/csxhasura/clients/hasura"
)

type extendedError struct {
	msg        string
	extensions map[string]interface{}
}

func (e *extendedError) Error() string                           { return e.msg }
func (e *extendedError) ErrorExtensions() map[string]interface{} { return e.extensions }

func TestNormalize(t *testing.T) {
	extensions := map[string]interface{}{
		"code":               "ERR123",
		"additionalProperty": "Additional info",
	}

	tests := []struct {
		name       string
		err        error
		status     int
		message    string
		extensions map[string]interface{}
	}{
		{
			name:    "http error without cause",
			err:     New(http.StatusBadRequest, "Exception Message"),
			status:  http.StatusBadRequest,
			message: "Exception Message",
		},
		{
			name:    "http error with cause",
			err:     Wrap(http.StatusBadRequest, "Exception Message", errors.New("Cause Message")),
			status:  http.StatusBadRequest,
			message: "Cause Message",
		},
		{
			name:    "unauthorized with cause",
			err:     Unauthorized(errors.New("Cause Message")),
			status:  http.StatusUnauthorized,
			message: "Cause Message",
		},
		{
			name:    "unauthorized without message",
			err:     Unauthorized(nil),
			status:  http.StatusUnauthorized,
			message: "Unauthorized",
		},
		{
			name:    "hasura error",
			err:     hasura.ErrMissingAdminSecret,
			status:  http.StatusBadRequest,
			message: hasura.ErrMissingAdminSecret.Error(),
		},
		{
			name:    "wrapped hasura error",
			err:     fmt.Errorf("exec users query: %w", hasura.ErrEmptyQuery),
			status:  http.StatusBadRequest,
			message: hasura.ErrEmptyQuery.Error(),
		},
		{
			name:    "wrapped http error with cause",
			err:     fmt.Errorf("ctx: %w", Wrap(http.StatusBadRequest, "Exception Message", errors.New("Cause Message"))),
			status:  http.StatusBadRequest,
			message: "Cause Message",
		},
		{
			name:    "wrapped http error without cause",
			err:     fmt.Errorf("ctx: %w", New(http.StatusForbidden, "Exception Message")),
			status:  http.StatusForbidden,
			message: "Exception Message",
		},
		{
			name:       "extended cause",
			err:        Wrap(http.StatusBadRequest, "Exception Message", &extendedError{msg: "Extended Error message", extensions: extensions}),
			status:     http.StatusBadRequest,
			message:    "Extended Error message",
			extensions: extensions,
		},
		{
			name:       "extended cause of unknown error",
			err:        fmt.Errorf("request failed: %w", &extendedError{msg: "Extended Error message", extensions: extensions}),
			status:     http.StatusInternalServerError,
			message:    "Extended Error message",
			extensions: extensions,
		},
		{
			name: "graphql errors cause",
			err: Wrap(http.StatusBadGateway, "hasura request failed", graphql.Errors{
				{Message: "field not found", Extensions: map[string]interface{}{"code": "validation-failed"}},
			}),
			status:     http.StatusBadGateway,
			message:    "field not found",
			extensions: map[string]interface{}{"code": "validation-failed"},
		},
		{
			name:    "graphql errors cause without extensions",
			err:     Wrap(http.StatusBadGateway, "hasura request failed", graphql.Errors{{Message: "field not found"}}),
			status:  http.StatusBadGateway,
			message: "field not found",
		},
		{
			name:    "cause without message",
			err:     Wrap(http.StatusConflict, "Exception Message", errors.New("")),
			status:  http.StatusConflict,
			message: "Exception Message",
		},
		{
			name:    "unknown error",
			err:     errors.New("connection refused"),
			status:  http.StatusInternalServerError,
			message: "connection refused",
		},
		{
			name:    "unknown error without message",
			err:     errors.New(""),
			status:  http.StatusInternalServerError,
			message: "Internal server error",
		},
		{
			name:    "nil error",
			status:  http.StatusInternalServerError,
			message: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, res := Normalize(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, res.Message)
			assert.Equal(t, tt.extensions, res.Extensions)
		})
	}
}

func TestErrorEncoder(t *testing.T) {
	w := httptest.NewRecorder()
	cause := &extendedError{msg: "Extended Error message", extensions: map[string]interface{}{"code": "ERR123"}}

	ErrorEncoder(context.Background(), Wrap(http.StatusBadRequest, "Exception Message", cause), w)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"Extended Error message","extensions":{"code":"ERR123"}}`, w.Body.String())
}

func TestErrorEncoderOmitsEmptyExtensions(t *testing.T) {
	w := httptest.NewRecorder()

	ErrorEncoder(context.Background(), hasura.ErrMissingAdminSecret, w)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, map[string]interface{}{"message": "admin secret is not configured"}, body)
}

func TestErrorEncoderDropsUnencodableExtensions(t *testing.T) {
	w := httptest.NewRecorder()
	cause := &extendedError{msg: "bad extensions", extensions: map[string]interface{}{"fn": func() {}}}

	ErrorEncoder(context.Background(), fmt.Errorf("wrapped: %w", cause), w)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"bad extensions"}`, w.Body.String())
}

func TestHTTPErrorImplementsStatusCoder(t *testing.T) {
	err := BadRequest("", nil)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode())
	assert.Equal(t, "Bad Request", err.Error())
	assert.Nil(t, err.Unwrap())
}
