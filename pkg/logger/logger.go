package logger

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
)

type ctxKey string

const (
	requestIdKey ctxKey = "requestId"
)

var log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// WithRequestId returns a copy of ctx carrying the given request id. Every
// entry built from the returned context through Logger is tagged with it.
func WithRequestId(ctx context.Context, requestId string) context.Context {
	return context.WithValue(ctx, requestIdKey, requestId)
}

// RequestId returns the request id stored in ctx, if any.
func RequestId(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIdKey).(string)
	return id
}

// Logger returns a log entry scoped to ctx.
func Logger(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(log)
	if id := RequestId(ctx); id != "" {
		entry = entry.WithField(string(requestIdKey), id)
	}
	return entry
}

// SetLevel changes the level of the package logger, e.g. "debug" or "warn".
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	return nil
}

// Base exposes the underlying logger so tests can redirect output or attach hooks.
func Base() *logrus.Logger {
	return log
}
