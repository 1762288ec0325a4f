package requestid

import (
	"context"
	"log/slog"
)

// LoggerExtractor returns a logger.ContextExtractor adding the request
// identifier to every record logged with a request-scoped context.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if requestID := FromContext(ctx); requestID != "" {
			return slog.String("request_id", requestID), true
		}
		return slog.Attr{}, false
	}
}
