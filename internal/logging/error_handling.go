package logging

import (
	"io"
	"log/slog"
)

// SafeCloseWithLogging closes a resource and logs any errors that occur
func SafeCloseWithLogging(closer io.Closer, logger *slog.Logger, operation string) {
	if closer == nil {
		return
	}

	if err := closer.Close(); err != nil {
		LogError(logger, "failed to close resource", err,
			slog.String("operation", operation),
			slog.String("component", "resource_management"))
	}
}

// DrainAndClose discards what is left of an HTTP response body before
// closing it so the connection can be reused.
func DrainAndClose(body io.ReadCloser, logger *slog.Logger, operation string) {
	if body == nil {
		return
	}
	if _, err := io.Copy(io.Discard, body); err != nil {
		LogError(logger, "failed to drain response body", err,
			slog.String("operation", operation),
			slog.String("component", "resource_management"))
	}
	SafeCloseWithLogging(body, logger, operation)
}
