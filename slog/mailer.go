// Package slog provides logging decorators for stagger services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/stagger"
)

// Ensure LoggingMailer implements stagger.Mailer.
var _ stagger.Mailer = (*LoggingMailer)(nil)

// LoggingMailer wraps a Mailer with debug logging.
type LoggingMailer struct {
	next   stagger.Mailer
	logger *slog.Logger
}

// NewLoggingMailer creates a new LoggingMailer.
func NewLoggingMailer(next stagger.Mailer, logger *slog.Logger) *LoggingMailer {
	return &LoggingMailer{next: next, logger: logger}
}

// Send logs the recipient and delegates to the wrapped mailer.
func (m *LoggingMailer) Send(ctx context.Context, msg *stagger.Message) (err error) {
	defer func(begin time.Time) {
		m.logger.Debug("send",
			"to", msg.To,
			"bytes", len(msg.HTMLBody),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return m.next.Send(ctx, msg)
}
