package httperrors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zoobr/csxhasura/clients/hasura"
	"github.com/zoobr/csxhasura/logger"
	"github.com/zoobr/csxhasura/metrics"

	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/hasura/go-graphql-client"
)

const fallbackMessage = "Internal server error"

// base returns response status & message by error itself.
// It also returns the error from chain which status is taken from.
func base(err error) (int, string, error) {
	var sc httptransport.StatusCoder
	if errors.As(err, &sc) {
		if scErr, ok := sc.(error); ok {
			return sc.StatusCode(), messageOf(scErr), scErr
		}
		return sc.StatusCode(), err.Error(), err
	}

	var hErr *hasura.Error
	if errors.As(err, &hErr) {
		return hErr.Status(), hErr.Error(), hErr
	}

	msg := messageOf(err)
	if len(msg) == 0 {
		msg = fallbackMessage
	}
	return http.StatusInternalServerError, msg, err
}

// messageOf returns human readable message of error
func messageOf(err error) string {
	if gqlErrs, ok := err.(graphql.Errors); ok && len(gqlErrs) > 0 {
		return gqlErrs[0].Message
	}
	return err.Error()
}

// extensionsOf returns extensions of error if error has them
func extensionsOf(err error) (map[string]interface{}, bool) {
	switch e := err.(type) {
	case ExtendedError:
		ext := e.ErrorExtensions()
		return ext, ext != nil
	case graphql.Errors:
		if len(e) == 0 || len(e[0].Extensions) == 0 {
			return nil, false
		}
		return e[0].Extensions, true
	}
	return nil, false
}

// Normalize returns HTTP status & response body for error.
// Status is taken from the first recognized error of chain, message & extensions are taken
// from cause of that error if it has them.
func Normalize(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusInternalServerError, ErrorResponse{Message: fallbackMessage}
	}

	status, msg, matched := base(err)
	res := ErrorResponse{Message: msg}

	cause := errors.Unwrap(matched)
	if cause == nil {
		return status, res
	}
	if ext, ok := extensionsOf(cause); ok {
		res.Message = messageOf(cause)
		res.Extensions = ext
	} else if causeMsg := messageOf(cause); len(causeMsg) != 0 {
		res.Message = causeMsg
	}

	return status, res
}

// marshal encodes response body. If extensions can't be encoded, they are dropped.
func marshal(res ErrorResponse) []byte {
	b, err := json.Marshal(res)
	if err == nil {
		return b
	}
	logger.Error(err, res.Extensions, "msg", "can't encode error extensions")

	b, err = json.Marshal(ErrorResponse{Message: res.Message})
	if err != nil {
		return []byte(`{"message":"` + fallbackMessage + `"}`)
	}
	return b
}

// ErrorEncoder writes error response. It is go-kit ErrorEncoder, see ServerOptions.
func ErrorEncoder(ctx context.Context, err error, w http.ResponseWriter) {
	status, res := Normalize(err)
	metrics.CountErrorResponse(status)
	if status >= http.StatusInternalServerError {
		reqID, _ := logger.GetReqID(ctx)
		logger.Error(errOrFallback(err), nil, "status", status, "reqID", reqID)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, wErr := w.Write(marshal(res)); wErr != nil {
		logger.Warnw("can't write error response", "error", wErr)
	}
}

func errOrFallback(err error) error {
	if err == nil {
		return errors.New(fallbackMessage)
	}
	return err
}

// ServerOptions returns go-kit server options which must be used by every HTTP server:
// error encoder, transport error logger & request ID for logs.
func ServerOptions() []httptransport.ServerOption {
	return []httptransport.ServerOption{
		httptransport.ServerErrorEncoder(ErrorEncoder),
		httptransport.ServerBefore(logger.LoggerPathThrough()),
		logger.ServerErrorHandler(),
	}
}
