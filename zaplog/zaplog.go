// Package zaplog adapts a zap logger to middleware.Logger.
package zaplog

import (
	"go.uber.org/zap"

	"github.com/fxsml/gostep/middleware"
)

// Logger implements middleware.Logger on top of a zap.SugaredLogger.
// Args are interpreted as alternating keys and values.
type Logger struct {
	sugar *zap.SugaredLogger
}

var _ middleware.Logger = (*Logger)(nil)

// New returns a Logger writing to l. A nil l yields a no-op logger.
func New(l *zap.Logger) *Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return &Logger{sugar: l.Sugar()}
}

// NewProduction returns a Logger backed by zap's production JSON config at
// the given level ("debug", "info", "warn" or "error").
func NewProduction(level string) (*Logger, func() error, error) {
	cfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, nil, err
	}
	cfg.Level = lvl
	l, err := cfg.Build()
	if err != nil {
		return nil, nil, err
	}
	return New(l), l.Sync, nil
}

// Debug logs msg at debug level with args as key-value pairs.
func (l *Logger) Debug(msg string, args ...any) { l.sugar.Debugw(msg, args...) }

// Info logs msg at info level with args as key-value pairs.
func (l *Logger) Info(msg string, args ...any) { l.sugar.Infow(msg, args...) }

// Warn logs msg at warn level with args as key-value pairs.
func (l *Logger) Warn(msg string, args ...any) { l.sugar.Warnw(msg, args...) }

// Error logs msg at error level with args as key-value pairs.
func (l *Logger) Error(msg string, args ...any) { l.sugar.Errorw(msg, args...) }
