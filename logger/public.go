package logger

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/transport"
	"github.com/hashicorp/go-uuid"
	"go.uber.org/zap"

	httptransport "github.com/go-kit/kit/transport/http"
)

// context key type for request ID
type ctxKey string

const reqIDKey ctxKey = "reqID"

// global logger instance. It doesn't log anything until Init is called
var lg = logger{logger: zap.NewNop().Sugar()}

// Init initializes logger
func Init(loggerMode string) (func(), error) {
	return lg.initialize(loggerMode)
}

// Info logs info message.
// See https://pkg.go.dev/go.uber.org/zap#SugaredLogger.Info for details.
func Info(args ...interface{}) {
	lg.logger.Info(args...)
}

// Error logs error message with optional payload and additional data
func Error(err error, payload interface{}, keysAndValues ...interface{}) {
	lg.error(err, payload, keysAndValues...)
}

// Fatal logs error message with optional payload and additional data, then calls os.Exit(1)
func Fatal(err error, payload interface{}, keysAndValues ...interface{}) {
	lg.fatal(err, payload, keysAndValues...)
}

// Debugw logs a message with some additional context. The variadic key-value
// pairs are treated as they are in With.
// See https://pkg.go.dev/go.uber.org/zap#SugaredLogger.Debugw for details
func Debugw(msg string, keysAndValues ...interface{}) {
	lg.logger.Debugw(msg, keysAndValues...)
}

// Infow logs a message with some additional context.
// See https://pkg.go.dev/go.uber.org/zap#SugaredLogger.Infow for details
func Infow(msg string, keysAndValues ...interface{}) {
	lg.logger.Infow(msg, keysAndValues...)
}

// Warnw logs a message with some additional context.
// See https://pkg.go.dev/go.uber.org/zap#SugaredLogger.Warnw for details
func Warnw(msg string, keysAndValues ...interface{}) {
	lg.logger.Warnw(msg, keysAndValues...)
}

// ServerErrorHandler returns go-kit server option which logs transport errors
func ServerErrorHandler() httptransport.ServerOption {
	return httptransport.ServerErrorHandler(transport.NewLogErrorHandler(&lg))
}

// LoggerEndpointMiddleware returns go-kit middleware which logs errors, panics & success (in debug).
// Panic is converted into error, so it is encoded as any other error.
func LoggerEndpointMiddleware() endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			defer func(begin time.Time) {
				r := recover()
				if r != nil { // panic
					err = fmt.Errorf("panic: %v", r)
					response = nil
				}
				if err != nil {
					Error(err, request, "reqID", reqIDOf(ctx), "duration", time.Since(begin))
				} else { // success
					Debugw("Success", "reqID", reqIDOf(ctx), "payload", request, "duration", time.Since(begin))
				}
			}(time.Now())

			return next(ctx, request)
		}
	}
}

// LoggerPathThrough returns a go-kit request function
// to add the request ID into context for path through logging
func LoggerPathThrough() httptransport.RequestFunc {
	return func(ctx context.Context, req *http.Request) context.Context {
		reqID, err := uuid.GenerateUUID()
		if err != nil {
			return ctx
		}
		return context.WithValue(ctx, reqIDKey, reqID)
	}
}

// GetReqID returns request ID from context for path through logging
func GetReqID(ctx context.Context) (string, bool) {
	reqID, ok := ctx.Value(reqIDKey).(string)
	return reqID, ok
}

// reqIDOf returns request ID from context or empty string
func reqIDOf(ctx context.Context) string {
	reqID, _ := GetReqID(ctx)
	return reqID
}
