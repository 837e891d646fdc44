// Package logger configures the process-wide log/slog JSON logger from the
// server configuration and carries request-scoped loggers through a
// context.Context, so handlers and generators log with the request's trace ID.
//
// The test helpers in this package capture JSON log output in memory for
// assertions.
package logger
