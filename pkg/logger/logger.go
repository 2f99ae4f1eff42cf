// Package logger builds the structured logger every litedb component
// threads through its Config: a zap.SugaredLogger, named after the
// service that opened the database.
package logger

import "go.uber.org/zap"

// New builds a production zap logger scoped to service, falling back to a
// no-op logger if zap's own initialization fails (which in practice only
// happens under a broken logging sink configuration, not user error).
func New(service string) *zap.SugaredLogger {
	base, err := zap.NewProduction()
	if err != nil {
		base = zap.NewNop()
	}
	return base.Sugar().Named(service)
}

// NewDevelopment builds a human-readable console logger suited to local
// development and tests.
func NewDevelopment(service string) *zap.SugaredLogger {
	base, err := zap.NewDevelopment()
	if err != nil {
		base = zap.NewNop()
	}
	return base.Sugar().Named(service)
}
