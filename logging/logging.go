// Package logging builds the structured logger used by the server and
// CLI; the pipeline stages do not log. Adapted from the teacher's zap-with-nop-fallback
// pattern in internal/lsp/server.go.
package logging

import "go.uber.org/zap"

// New builds a zap logger. dev selects the human-readable development
// encoder; otherwise the JSON production encoder is used. If construction
// fails for either, a no-op logger is returned rather than a nil pointer,
// so callers never need a nil check before logging.
func New(dev bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if dev {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// NewNop is a convenience for tests and for callers that pass a nil
// logger into a constructor expecting *zap.Logger.
func NewNop() *zap.Logger { return zap.NewNop() }

// Safe returns l if non-nil, or a no-op logger otherwise. server.New and
// server.Routes call through Safe so a nil *zap.Logger never panics.
func Safe(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
