// Package transport exposes Hasura service as go-kit HTTP endpoint.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/zoobr/csxhasura/clients/hasura"
	"github.com/zoobr/csxhasura/httperrors"
	"github.com/zoobr/csxhasura/logger"
	"github.com/zoobr/csxhasura/metrics"
	"github.com/zoobr/csxhasura/tracer"

	"github.com/go-kit/kit/endpoint"
	httptransport "github.com/go-kit/kit/transport/http"
)

const bearerPrefix = "Bearer "

// ExecRequest is a body of incoming GraphQL request
type ExecRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// ExecResponse is a body of successful response
type ExecResponse struct {
	Data json.RawMessage `json:"data"`
}

// Execer is the part of Hasura service used by endpoint
type Execer interface {
	ExecRaw(ctx context.Context, req *hasura.Request) (json.RawMessage, error)
}

// MakeExecEndpoint returns endpoint which sends request to Hasura.
// Errors of Hasura client are wrapped into 502 error, so their messages & extensions get into response.
func MakeExecEndpoint(svc Execer) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(*hasura.Request)
		data, err := svc.ExecRaw(ctx, req)
		if err != nil {
			var hErr *hasura.Error
			if errors.As(err, &hErr) {
				return nil, err
			}
			return nil, httperrors.Wrap(http.StatusBadGateway, "hasura request failed", err)
		}
		return &ExecResponse{Data: data}, nil
	}
}

// DecodeExecRequest decodes incoming GraphQL request. Bearer token & role are forwarded to Hasura.
func DecodeExecRequest(_ context.Context, r *http.Request) (interface{}, error) {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, bearerPrefix) || len(auth) == len(bearerPrefix) {
		return nil, httperrors.Unauthorized(errors.New("bearer token is required"))
	}

	var body ExecRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, httperrors.BadRequest("invalid request body", err)
	}
	if len(body.Query) == 0 {
		return nil, httperrors.BadRequest("query is required", nil)
	}

	opts := hasura.AuthorizationOptions{
		hasura.OptionBearerToken: strings.TrimPrefix(auth, bearerPrefix),
	}
	if role := r.Header.Get(hasura.HeaderRole); len(role) != 0 {
		opts[hasura.OptionRole] = role
	}

	return &hasura.Request{
		Query:                body.Query,
		Variables:            body.Variables,
		AuthorizationOptions: opts,
	}, nil
}

// NewHTTPHandler returns go-kit HTTP handler for Hasura requests
func NewHTTPHandler(svc Execer, name string) http.Handler {
	ep := MakeExecEndpoint(svc)
	ep = logger.LoggerEndpointMiddleware()(ep)
	ep = metrics.MetricsEndpointMiddleware("endpoint." + name)(ep)
	ep = tracer.TracerEndpointMiddleware(name)(ep)

	return httptransport.NewServer(
		ep,
		DecodeExecRequest,
		httptransport.EncodeJSONResponse,
		httperrors.ServerOptions()...,
	)
}
