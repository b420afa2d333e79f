// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels. For local development a colored console format backed by
// github.com/lmittmann/tint is available.
package logger
