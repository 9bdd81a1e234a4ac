package main

import (
	"log/slog"
	"os"
	"strconv"
)

// Config holds the CLI defaults sourced from the environment. Flags override
// these per invocation.
type Config struct {
	Seed     *uint64
	LogLevel string
}

func loadConfig() Config {
	cfg := Config{LogLevel: "warn"}

	if v := os.Getenv("JSONMINT_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Seed = &n
		}
	}
	if v := os.Getenv("JSONMINT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	return cfg
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
