// Package dispatch sends a rendered message to each target in turn.
package dispatch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/stagger"
)

// DefaultDelay is the pause after every send.
const DefaultDelay = 10 * time.Second

// BatchSize is the number of targets between position markers.
const BatchSize = 10

// Progress markers written for each target.
const (
	MarkSuccess = "."
	MarkFailure = "x"
)

// Dispatcher sends one message per target, strictly in order, pausing a
// fixed delay after each send whatever its outcome. Send failures are
// counted and never stop the batch.
type Dispatcher struct {
	Mailer  stagger.Mailer
	Subject string

	// Delay is the pause after each target. Defaults to DefaultDelay.
	Delay time.Duration

	// Sleep performs the pause. Defaults to time.Sleep, so a pause is not
	// cut short by context cancellation.
	Sleep func(time.Duration)

	// Recipients, if set, flags addresses that probably appeared earlier in
	// the batch. Flagged targets are still sent to.
	Recipients stagger.RecipientFilter

	// Out receives operator-facing progress. Defaults to io.Discard.
	Out io.Writer

	// Logger receives per-target diagnostics. Defaults to discarding.
	Logger *slog.Logger
}

// Run renders template for every target and submits it through the
// mailer. It returns the final counters after writing the report to Out.
// Returns EINVALID without sending anything if targets is empty.
func (d *Dispatcher) Run(ctx context.Context, targets []*stagger.Contact, template string) (stagger.BatchCounters, error) {
	var counters stagger.BatchCounters
	if len(targets) == 0 {
		return counters, stagger.Errorf(stagger.EINVALID, "no valid targets")
	}

	out := d.Out
	if out == nil {
		out = io.Discard
	}
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	delay := d.Delay
	if delay == 0 {
		delay = DefaultDelay
	}
	sleep := d.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	subject := d.Subject
	if subject == "" {
		subject = stagger.DefaultSubject
	}

	total := len(targets)
	fmt.Fprintf(out, "Preparing to send E-Mails to %d targets.\n", total)
	fmt.Fprintf(out, "Delay between emails: %s - ETA: %s\n", delay, delay*time.Duration(total))

	for i, target := range targets {
		if i%BatchSize == 0 {
			fmt.Fprint(out, BatchMarker(i, total))
		}

		if d.Recipients != nil {
			if d.Recipients.Test(target.Email) {
				logger.Warn("possible duplicate recipient", "email", target.Email, "company", target.Company)
			}
			d.Recipients.Add(target.Email)
		}

		err := d.Mailer.Send(ctx, &stagger.Message{
			To:       target.Email,
			Subject:  subject,
			HTMLBody: stagger.Render(template, target.Name),
		})
		counters.Record(err == nil)
		if err != nil {
			logger.Warn("send failed", "email", target.Email, "position", i, "err", err)
			fmt.Fprint(out, MarkFailure)
		} else {
			fmt.Fprint(out, MarkSuccess)
		}

		sleep(delay)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Emails sent! %s\n", stagger.FormatReport(counters))

	return counters, nil
}

// BatchMarker returns the position marker printed before target i of total,
// naming the zero-based range of the batch that starts there.
func BatchMarker(i, total int) string {
	return fmt.Sprintf("[%d-%d]", i, min(i+BatchSize-1, total-1))
}
