package hasura

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hasura/go-graphql-client"
)

// Executor executes GraphQL queries. It is the transport used by Service.
type Executor interface {
	// ExecRaw executes query with variables & headers and returns raw "data" of response
	ExecRaw(ctx context.Context, query string, variables map[string]interface{}, header http.Header) (json.RawMessage, error)
}

// gqlExecutor is Executor based on Hasura GraphQL client
type gqlExecutor struct {
	client *graphql.Client
}

// newGqlExecutor creates new GraphQL client executor for the endpoint
func newGqlExecutor(addr string, httpClient *http.Client) *gqlExecutor {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &gqlExecutor{client: graphql.NewClient(addr, httpClient)}
}

// ExecRaw executes query using client copy with request headers
func (e *gqlExecutor) ExecRaw(ctx context.Context, query string, variables map[string]interface{}, header http.Header) (json.RawMessage, error) {
	client := e.client.WithRequestModifier(func(r *http.Request) {
		for k, v := range header {
			r.Header[k] = v
		}
	})
	return client.ExecRaw(ctx, query, variables)
}
