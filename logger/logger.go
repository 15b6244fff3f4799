package logger

import (
	"go.uber.org/zap"
)

// logger is a wrapper of zap sugared logger
type logger struct {
	logger *zap.SugaredLogger
}

// initialize initializes logger by mode. It returns finalizer which flushes buffered logs.
func (l *logger) initialize(loggerMode string) (func(), error) {
	sl, err := newLogger(loggerMode, loggerMode != LoggerModeDev)
	if err != nil {
		return nil, err
	}
	l.logger = sl

	return func() {
		_ = sl.Sync()
	}, nil
}

// withPayload returns list of key-value pairs with error & payload
func withPayload(err error, payload interface{}, keysAndValues []interface{}) []interface{} {
	kv := make([]interface{}, 0, len(keysAndValues)+4)
	kv = append(kv, "error", err)
	if payload != nil {
		kv = append(kv, "payload", payload)
	}
	return append(kv, keysAndValues...)
}

// error logs error with optional payload & additional data
func (l *logger) error(err error, payload interface{}, keysAndValues ...interface{}) {
	l.logger.Errorw(err.Error(), withPayload(err, payload, keysAndValues)...)
}

// fatal logs error with optional payload & additional data, then calls os.Exit(1)
func (l *logger) fatal(err error, payload interface{}, keysAndValues ...interface{}) {
	l.logger.Fatalw(err.Error(), withPayload(err, payload, keysAndValues)...)
}

// Log implements go-kit logger interface. It is used for logging of transport errors.
func (l *logger) Log(keyvals ...interface{}) error {
	l.logger.Errorw("transport error", keyvals...)
	return nil
}
