package stagger

import (
	"context"
	"iter"
	"strings"
)

// MissingText replaces absent name or email text in extracted contacts.
const MissingText = "None"

// RawContact holds the text scraped from one contact element.
// Empty Name or Email means the page had nothing for that field.
type RawContact struct {
	Company string
	Name    string
	Email   string
}

// ExtractProgressFunc is called for every accepted contact.
type ExtractProgressFunc func(*Contact)

// Extract turns raw contacts into records, writing each accepted record to w
// as soon as it is produced. Entries with an empty company are skipped, as is
// any entry whose company equals the previously accepted one. Only adjacent
// duplicates are suppressed.
//
// An error yielded by raws aborts extraction. The records accepted so far are
// returned alongside it and have already been written.
func Extract(ctx context.Context, raws iter.Seq2[RawContact, error], w ContactWriter, progress ExtractProgressFunc) ([]*Contact, error) {
	var contacts []*Contact
	var last string

	for raw, err := range raws {
		if err != nil {
			return contacts, err
		}
		if raw.Company == "" || raw.Company == last {
			continue
		}

		c := normalize(raw)
		if err := w.WriteContact(ctx, c); err != nil {
			return contacts, err
		}
		contacts = append(contacts, c)
		last = c.Company

		if progress != nil {
			progress(c)
		}
	}

	return contacts, nil
}

func normalize(raw RawContact) *Contact {
	name := raw.Name
	if name == "" {
		name = MissingText
	}
	email := raw.Email
	if email == "" {
		email = MissingText
	}
	return &Contact{
		Company: raw.Company,
		Name:    name,
		Email:   strings.ReplaceAll(email, "(at)", "@"),
	}
}
