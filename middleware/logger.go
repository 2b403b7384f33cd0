package middleware

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fxsml/gostep"
)

// LogLevel represents the severity level for logging messages.
type LogLevel string

const (
	// LogLevelDebug is used for detailed information.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo is used for general information messages.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn is used for warning conditions.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError is used for error conditions.
	LogLevelError LogLevel = "error"
)

// Logger defines an interface for logging at different severity levels.
type Logger interface {
	// Debug logs a message at debug level.
	Debug(msg string, args ...any)
	// Info logs a message at info level.
	Info(msg string, args ...any)
	// Warn logs a message at warning level.
	Warn(msg string, args ...any)
	// Error logs a message at error level.
	Error(msg string, args ...any)
}

// LogConfig holds configuration for the Log middleware.
// Defaults from the global default config are used for any fields not set.
type LogConfig struct {
	// Args are additional arguments to include in all log messages.
	Args []any `yaml:"-"`

	// LevelSuccess is the log level used for successful calls.
	// Defaults to LogLevelDebug.
	LevelSuccess LogLevel `yaml:"level_success"`
	// LevelFailure is the log level used for failed calls.
	// Defaults to LogLevelError.
	LevelFailure LogLevel `yaml:"level_failure"`

	// MessageSuccess is the message logged on success.
	// Defaults to "GOSTEP: Success".
	MessageSuccess string `yaml:"message_success"`
	// MessageFailure is the message logged on failure.
	// Defaults to "GOSTEP: Failure".
	MessageFailure string `yaml:"message_failure"`

	// Disabled disables all logging when set to true.
	Disabled bool `yaml:"disabled"`
}

var (
	mu               sync.RWMutex
	logger           Logger = slog.Default()
	defaultLogConfig        = LogConfig{
		LevelSuccess:   LogLevelDebug,
		LevelFailure:   LogLevelError,
		MessageSuccess: "GOSTEP: Success",
		MessageFailure: "GOSTEP: Failure",
	}
)

// SetDefaultLogger sets the logger used by Log middleware created afterwards.
// slog.Default() is used by default.
func SetDefaultLogger(l Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// SetDefaultLogConfig sets the defaults applied to unset LogConfig fields of
// Log middleware created afterwards.
func SetDefaultLogConfig(config LogConfig) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogConfig = config.parse(defaultLogConfig)
}

func defaults() (Logger, LogConfig) {
	mu.RLock()
	defer mu.RUnlock()
	return logger, defaultLogConfig
}

func parseLogLevel(level LogLevel) LogLevel {
	return LogLevel(strings.ToLower(string(level)))
}

func (c LogConfig) parse(def LogConfig) LogConfig {
	c.LevelSuccess = parseLogLevel(c.LevelSuccess)
	if c.LevelSuccess == "" {
		c.LevelSuccess = def.LevelSuccess
	}
	c.LevelFailure = parseLogLevel(c.LevelFailure)
	if c.LevelFailure == "" {
		c.LevelFailure = def.LevelFailure
	}
	if c.MessageSuccess == "" {
		c.MessageSuccess = def.MessageSuccess
	}
	if c.MessageFailure == "" {
		c.MessageFailure = def.MessageFailure
	}
	if len(c.Args) == 0 {
		c.Args = def.Args
	}
	c.Disabled = c.Disabled || def.Disabled
	return c
}

func logFunc(level LogLevel, log Logger) func(msg string, args ...any) {
	switch level {
	case LogLevelDebug:
		return log.Debug
	case LogLevelWarn:
		return log.Warn
	case LogLevelError:
		return log.Error
	default:
		return log.Info
	}
}

func appendArgs(args ...[]any) []any {
	l := 0
	for _, a := range args {
		l += len(a)
	}
	result := make([]any, 0, l)
	for _, a := range args {
		result = append(result, a...)
	}
	return result
}

// Log logs the outcome of every call using the default logger. Metadata
// from the call context is included in every message.
func Log[I, E, O any](config LogConfig) Middleware[I, E, O] {
	log, _ := defaults()
	return LogWith[I, E, O](log, config)
}

// LogWith is like Log but uses the given logger. Unset config fields fall
// back to the current defaults. Failures from a recovered panic carry the
// stack trace under "stack".
func LogWith[I, E, O any](log Logger, config LogConfig) Middleware[I, E, O] {
	_, def := defaults()
	config = config.parse(def)
	if config.Disabled {
		return func(next gostep.Step[I, E, O]) gostep.Step[I, E, O] { return next }
	}
	logSuccess := logFunc(config.LevelSuccess, log)
	logFailure := logFunc(config.LevelFailure, log)
	return func(next gostep.Step[I, E, O]) gostep.Step[I, E, O] {
		return gostep.StepFunc[I, E, O](func(ctx context.Context, in I, extra E) (O, error) {
			start := time.Now()
			out, err := next.Perform(ctx, in, extra)
			duration := time.Since(start)
			if err != nil {
				failure := []any{"error", err, "duration", duration}
				var procErr *gostep.ProcessingError
				if errors.As(err, &procErr) && procErr.StackTrace != "" {
					failure = append(failure, "stack", procErr.StackTrace)
				}
				logFailure(config.MessageFailure,
					appendArgs(config.Args, MetadataFromContext(ctx).Args(), failure)...)
			} else {
				logSuccess(config.MessageSuccess,
					appendArgs(config.Args, MetadataFromContext(ctx).Args(), []any{"duration", duration})...)
			}
			return out, err
		})
	}
}
