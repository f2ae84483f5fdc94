package logging

import (
	"log/slog"
	"os"
)

// NewLogger returns a slog logger configured for Cloud Logging compatibility.
func NewLogger(service string) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: true})
	return slog.New(handler).With(slog.String("service", service))
}

// WithEvent attaches the identifiers of the CloudEvent being handled.
func WithEvent(logger *slog.Logger, eventID, eventType string) *slog.Logger {
	return logger.With(slog.String("eventId", eventID), slog.String("eventType", eventType))
}
