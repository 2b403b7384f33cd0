package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fxsml/gostep/config"
	"github.com/fxsml/gostep/middleware"
	"github.com/fxsml/gostep/promstep"
	"github.com/fxsml/gostep/zaplog"
)

type cliConfig struct {
	Concurrency int                    `yaml:"concurrency"`
	Timeout     time.Duration          `yaml:"timeout"`
	LogFormat   string                 `yaml:"log_format"`
	LogLevel    string                 `yaml:"log_level"`
	Log         middleware.LogConfig   `yaml:"log"`
	Metrics     promstep.CollectorOpts `yaml:"metrics"`
}

func defaultConfig() cliConfig {
	return cliConfig{
		Concurrency: 4,
		LogFormat:   "text",
		LogLevel:    "info",
	}
}

// loadConfig layers defaults, the YAML file at path (if any), dotenv files
// and GOSTEP_CLI_* environment variables.
func loadConfig(path string) (cliConfig, error) {
	cfg := defaultConfig()
	if path != "" {
		if err := config.LoadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := config.LoadDotenv(); err != nil {
		return cfg, err
	}
	if err := config.Load("cli", &cfg); err != nil {
		return cfg, err
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return cfg, nil
}

// newLogger returns the logger selected by cfg and a function flushing it.
func newLogger(cfg cliConfig, w io.Writer) (middleware.Logger, func() error, error) {
	switch cfg.LogFormat {
	case "text", "":
		var level slog.Level
		if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
			return nil, nil, fmt.Errorf("log level: %w", err)
		}
		h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
		return slog.New(h), func() error { return nil }, nil
	case "json":
		return zaplog.NewProduction(cfg.LogLevel)
	default:
		return nil, nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
}
