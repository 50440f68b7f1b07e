package logger

import (
	"go.uber.org/zap"

	"account_search/internal/app/port"
)

// zapAdapter implements port.Logger on top of a sugared zap logger, so
// services can log key/value pairs without importing zap.
type zapAdapter struct {
	sugar *zap.SugaredLogger
}

// NewZapAdapter wraps the given zap logger as a port.Logger.
func NewZapAdapter(l *zap.Logger) port.Logger {
	return &zapAdapter{sugar: l.Sugar()}
}

func (a *zapAdapter) Info(msg string, args ...any) {
	a.sugar.Infow(msg, args...)
}

func (a *zapAdapter) Debug(msg string, args ...any) {
	a.sugar.Debugw(msg, args...)
}

func (a *zapAdapter) Warn(msg string, args ...any) {
	a.sugar.Warnw(msg, args...)
}

func (a *zapAdapter) Error(msg string, args ...any) {
	a.sugar.Errorw(msg, args...)
}
