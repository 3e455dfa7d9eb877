package slog

import (
	"context"
	"log/slog"

	"github.com/fwojciec/stagger"
)

// Ensure LoggingContactWriter implements stagger.ContactWriter.
var _ stagger.ContactWriter = (*LoggingContactWriter)(nil)

// LoggingContactWriter wraps a ContactWriter with debug logging.
type LoggingContactWriter struct {
	next   stagger.ContactWriter
	logger *slog.Logger
	count  int
}

// NewLoggingContactWriter creates a new LoggingContactWriter.
func NewLoggingContactWriter(next stagger.ContactWriter, logger *slog.Logger) *LoggingContactWriter {
	return &LoggingContactWriter{next: next, logger: logger}
}

// WriteContact delegates to the wrapped writer and logs the row.
func (w *LoggingContactWriter) WriteContact(ctx context.Context, contact *stagger.Contact) (err error) {
	defer func() {
		if err == nil {
			w.count++
		}
		w.logger.Debug("write contact",
			"company", contact.Company,
			"row", w.count,
			"err", err,
		)
	}()
	return w.next.WriteContact(ctx, contact)
}

// Close delegates to the wrapped writer and logs the total row count.
func (w *LoggingContactWriter) Close() (err error) {
	defer func() {
		w.logger.Debug("close contact store", "rows", w.count, "err", err)
	}()
	return w.next.Close()
}
