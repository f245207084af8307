// Package logger builds the application slog.Logger: JSON or text output,
// env-driven level, static attributes, and context extractors that pull
// request-scoped values (tracking id, principal) into every record.
package logger
