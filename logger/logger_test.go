package logger

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := lg.logger
	lg.logger = zap.New(core).Sugar()
	t.Cleanup(func() { lg.logger = prev })
	return logs
}

func TestInitWrongMode(t *testing.T) {
	_, err := Init("verbose")
	require.Error(t, err)
}

func TestInitTesting(t *testing.T) {
	prev := lg.logger
	defer func() { lg.logger = prev }()

	finish, err := Init(LoggerModeTesting)
	require.NoError(t, err)
	Info("nothing is written")
	finish()
}

func TestLoggerEndpointMiddlewareRecoversPanic(t *testing.T) {
	logs := observe(t)

	ep := LoggerEndpointMiddleware()(func(context.Context, interface{}) (interface{}, error) {
		panic("boom")
	})

	res, err := ep(context.Background(), "req")
	require.EqualError(t, err, "panic: boom")
	assert.Nil(t, res)
	require.Equal(t, 1, logs.FilterMessage("panic: boom").Len())
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
}

func TestLoggerEndpointMiddlewareLogsError(t *testing.T) {
	logs := observe(t)
	wantErr := errors.New("hasura failed")

	ep := LoggerEndpointMiddleware()(func(context.Context, interface{}) (interface{}, error) {
		return nil, wantErr
	})

	_, err := ep(context.Background(), "req")
	require.ErrorIs(t, err, wantErr)
	entries := logs.FilterMessage("hasura failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req", entries[0].ContextMap()["payload"])
}

func TestLoggerEndpointMiddlewareSuccess(t *testing.T) {
	logs := observe(t)

	ep := LoggerEndpointMiddleware()(func(context.Context, interface{}) (interface{}, error) {
		return "ok", nil
	})

	res, err := ep(context.Background(), "req")
	require.NoError(t, err)
	assert.Equal(t, "ok", res)
	assert.Equal(t, 1, logs.FilterMessage("Success").Len())
}

func TestLoggerPathThrough(t *testing.T) {
	ctx := LoggerPathThrough()(context.Background(), httptest.NewRequest("GET", "/", nil))

	reqID, ok := GetReqID(ctx)
	require.True(t, ok)
	assert.Len(t, reqID, 36)

	_, ok = GetReqID(context.Background())
	assert.False(t, ok)
}

func TestLogImplementsKitLogger(t *testing.T) {
	logs := observe(t)

	require.NoError(t, lg.Log("err", "decode failed"))
	entries := logs.FilterMessage("transport error").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "decode failed", entries[0].ContextMap()["err"])
}
