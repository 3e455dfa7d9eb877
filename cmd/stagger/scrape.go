package main

import (
	"fmt"
	"iter"

	"github.com/fwojciec/stagger"
	"github.com/fwojciec/stagger/csv"
	stagslog "github.com/fwojciec/stagger/slog"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	if deps.Source == nil {
		return fail(deps, stagger.Errorf(stagger.EINTERNAL, "no contact source configured"))
	}

	file, err := csv.Create(c.OutputPath)
	if err != nil {
		return fail(deps, err)
	}
	w := stagslog.NewLoggingContactWriter(file, deps.logger())

	raws, found := drain(deps.Source.Contacts(deps.Ctx, c.URL))
	fmt.Fprintf(deps.Stdout, "Found %d potential contacts\n", found)

	contacts, err := stagger.Extract(deps.Ctx, raws, w, func(contact *stagger.Contact) {
		fmt.Fprintf(deps.Stdout, "%s: %s - %s\n", contact.Company, contact.Name, contact.Email)
	})
	if closeErr := w.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Saved %d contacts to %s\n", len(contacts), c.OutputPath)
	return nil
}

// drain consumes seq so the number of contact elements is known before
// extraction starts. It returns a sequence replaying the buffered contacts,
// followed by the error that ended seq, if any.
func drain(seq iter.Seq2[stagger.RawContact, error]) (iter.Seq2[stagger.RawContact, error], int) {
	var raws []stagger.RawContact
	var failure error
	for raw, err := range seq {
		if err != nil {
			failure = err
			break
		}
		raws = append(raws, raw)
	}

	return func(yield func(stagger.RawContact, error) bool) {
		for _, raw := range raws {
			if !yield(raw, nil) {
				return
			}
		}
		if failure != nil {
			yield(stagger.RawContact{}, failure)
		}
	}, len(raws)
}
