// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package with a JSON handler for
// machine-readable output and github.com/lmittmann/tint for coloured text
// output during interactive use.
package logger
