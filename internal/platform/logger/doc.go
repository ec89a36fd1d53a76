// Package logger provides structured logging for the service using the
// standard library log/slog package. Loggers travel through request
// contexts so that trace ids attached by the HTTP layer reach the stores.
package logger
