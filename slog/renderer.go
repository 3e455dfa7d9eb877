package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/stagger"
)

// Ensure LoggingPageRenderer implements stagger.PageRenderer.
var _ stagger.PageRenderer = (*LoggingPageRenderer)(nil)

// LoggingPageRenderer wraps a PageRenderer with debug logging.
type LoggingPageRenderer struct {
	next   stagger.PageRenderer
	logger *slog.Logger
}

// NewLoggingPageRenderer creates a new LoggingPageRenderer.
func NewLoggingPageRenderer(next stagger.PageRenderer, logger *slog.Logger) *LoggingPageRenderer {
	return &LoggingPageRenderer{next: next, logger: logger}
}

// Render logs the URL being rendered and delegates to the wrapped renderer.
func (r *LoggingPageRenderer) Render(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		r.logger.Debug("render",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Render(ctx, url)
}

// Close delegates to the wrapped renderer.
func (r *LoggingPageRenderer) Close() error {
	return r.next.Close()
}
