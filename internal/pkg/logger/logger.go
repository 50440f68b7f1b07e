// Package logger builds the application's zap logger and adapts it to the
// port.Logger interface used by services.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a production JSON logger at the given level. An unknown
// level string falls back to info.
func New(levelStr string) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(levelStr)
	if err != nil {
		level = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true

	return cfg.Build()
}
