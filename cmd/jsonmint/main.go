package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/okanra/jsonmint/internal/logging"
)

func main() {
	cfg := loadConfig()

	handler := logging.NewCorrelationHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	logger := slog.New(handler)

	if err := run(os.Args[1:], os.Stdin, os.Stdout, logger); err != nil {
		fmt.Fprintln(os.Stderr, "jsonmint:", err.Error())
		os.Exit(1)
	}
}
