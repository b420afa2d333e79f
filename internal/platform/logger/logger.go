// Package logger provides structured logging functionality for the application.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/phrazzld/lola-users/internal/config"
)

// Log formats accepted in ServerConfig.LogFormat.
const (
	FormatJSON    = "json"
	FormatText    = "text"
	FormatConsole = "console"
)

// Setup initializes and configures the application's logging system based on
// the provided configuration. It creates a structured logger writing to stdout
// with the appropriate log level and sets it as the default logger for the
// application.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	logger := slog.New(NewHandler(os.Stdout, cfg))

	// Set this logger as the default for the application
	// This allows using the slog package functions directly (slog.Info, slog.Error, etc.)
	slog.SetDefault(logger)

	return logger, nil
}

// NewHandler builds the slog.Handler described by cfg on top of out.
func NewHandler(out io.Writer, cfg config.ServerConfig) slog.Handler {
	level := ParseLevel(cfg.LogLevel)

	switch strings.ToLower(cfg.LogFormat) {
	case FormatText:
		return slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	case FormatConsole:
		return tint.NewHandler(out, &tint.Options{
			Level:      level,
			NoColor:    !isTerminal(out),
			TimeFormat: time.TimeOnly,
		})
	default:
		return slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})
	}
}

// ParseLevel parses the log level (case-insensitive). Unknown values fall
// back to info with a warning on stderr.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		tmpLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmpLogger.Warn("invalid log level configured, using default level",
			"configured_level", s,
			"default_level", "info")
		return slog.LevelInfo
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
