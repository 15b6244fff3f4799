package hasura

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zoobr/csxhasura/metrics"
	"github.com/zoobr/csxhasura/tracer"

	pkgerrs "github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

// Config is a Hasura connection config
type Config struct {
	GraphQLEndpoint string // Hasura GraphQL endpoint URL
	AdminSecret     string // admin secret (optional). Needed only for UseAdminSecret requests
}

// Request is a GraphQL request to Hasura
type Request struct {
	Query                string                 // GraphQL query
	Variables            map[string]interface{} // query variables
	Headers              map[string]string      // additional request headers
	Flags                RequestFlags           // request flags
	AuthorizationOptions AuthorizationOptions   // authorization options
}

// Service sends requests to Hasura. It is safe for concurrent use.
type Service struct {
	cfg         Config
	httpClient  *http.Client
	executor    Executor
	authHeaders map[AuthorizationOption]string // header names by authorization option
}

// Option is a Service option
type Option func(*Service)

// WithHTTPClient sets HTTP client for default executor
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		s.httpClient = client
	}
}

// WithExecutor sets custom GraphQL executor
func WithExecutor(executor Executor) Option {
	return func(s *Service) {
		s.executor = executor
	}
}

// NewService creates new Hasura service by config
func NewService(cfg Config, opts ...Option) (*Service, error) {
	if len(cfg.GraphQLEndpoint) == 0 {
		return nil, ErrMissingEndpoint
	}

	s := &Service{cfg: cfg, authHeaders: authorizationHeaders}
	for _, opt := range opts {
		opt(s)
	}
	if s.executor == nil {
		s.executor = newGqlExecutor(cfg.GraphQLEndpoint, s.httpClient)
	}

	return s, nil
}

// adminSecret returns configured admin secret or error if it is missing
func (s *Service) adminSecret() (string, error) {
	if len(s.cfg.AdminSecret) == 0 {
		return "", ErrMissingAdminSecret
	}
	return s.cfg.AdminSecret, nil
}

// ExecRaw sends request to Hasura and returns raw "data" of response.
// Errors of executor are returned as is.
func (s *Service) ExecRaw(ctx context.Context, req *Request) (json.RawMessage, error) {
	header, err := s.Headers(req)
	if err != nil {
		return nil, err
	}
	if len(req.Query) == 0 {
		return nil, ErrEmptyQuery
	}

	attrs := []attribute.KeyValue{
		attribute.String("hasura.endpoint", s.cfg.GraphQLEndpoint),
		attribute.Bool("hasura.admin_secret", req.Flags.Has(UseAdminSecret)),
	}

	var data json.RawMessage
	metrics.Collect("hasura.exec", func() error {
		err = tracer.Span(ctx, "hasura.exec", func(ctx context.Context) error {
			var execErr error
			data, execErr = s.executor.ExecRaw(ctx, req.Query, req.Variables, header)
			return execErr
		}, attrs...)
		return err
	})

	return data, err
}

// Query sends request to Hasura and decodes "data" of response into T
func Query[T any](ctx context.Context, s *Service, req *Request) (T, error) {
	var res T
	data, err := s.ExecRaw(ctx, req)
	if err != nil {
		return res, err
	}
	if len(data) == 0 {
		return res, nil
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return res, pkgerrs.Wrap(err, "can't decode hasura response")
	}
	return res, nil
}
