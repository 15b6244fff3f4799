package tracer

import (
	"context"

	"github.com/go-kit/kit/endpoint"
	"go.opentelemetry.io/contrib/instrumentation/github.com/go-kit/kit/otelkit"
	"go.opentelemetry.io/otel/attribute"
)

var ot = otelTracer{} // global tracer instance

// Init initializes tracer
func Init(jaegerURL, serviceNamespace, serviceName string) (func(context.Context), error) {
	return ot.initialize(jaegerURL, serviceNamespace, serviceName)
}

// InitNop initializes No-op tracer whick doesn't make tracing. Useful for tests
func InitNop() {
	ot.initNop()
}

// Span creates tracing span with attributes, then exec callback & write result to span.
// Error of callback is returned as is.
func Span(ctx context.Context, name string, cb func(ctx context.Context) error, attrs ...attribute.KeyValue) error {
	return ot.span(ctx, name, cb, attrs...)
}

// TracerEndpointMiddleware returns tracing midleware
func TracerEndpointMiddleware(name string) endpoint.Middleware {
	epName := "endpoint." + name
	return otelkit.EndpointMiddleware(otelkit.WithOperation(epName))
}
