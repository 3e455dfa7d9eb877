// Package csv provides the CSV record store for scraped contacts.
package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/fwojciec/stagger"
)

// Header is the first row of every record store.
var Header = []string{"Company", "Contact name", "Contact email"}

// Ensure Writer implements stagger.ContactWriter at compile time.
var _ stagger.ContactWriter = (*Writer)(nil)

// Writer streams contacts as CSV rows. The header is written on creation
// and every row is flushed as soon as it is written, so an interrupted
// scrape leaves every accepted contact on disk.
type Writer struct {
	cw     *csv.Writer
	closer io.Closer
}

// NewWriter writes the header row to w and returns a Writer appending to it.
func NewWriter(w io.Writer) (*Writer, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return nil, err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	return &Writer{cw: cw}, nil
}

// Create truncates or creates the file at path and returns a Writer for it.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, stagger.Errorf(stagger.ENOTFOUND, "cannot create output file %q: directory does not exist", path)
	} else if err != nil {
		return nil, stagger.Errorf(stagger.EINVALID, "cannot create output file %q: %v", path, err)
	}

	w, err := NewWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, stagger.Errorf(stagger.EINVALID, "cannot write output file %q: %v", path, err)
	}
	w.closer = f
	return w, nil
}

// WriteContact appends one row and flushes it.
func (w *Writer) WriteContact(ctx context.Context, contact *stagger.Contact) error {
	if err := contact.Validate(); err != nil {
		return err
	}
	if err := w.cw.Write([]string{contact.Company, contact.Name, contact.Email}); err != nil {
		return err
	}
	w.cw.Flush()
	return w.cw.Error()
}

// Close flushes pending output and closes the underlying file, if any.
func (w *Writer) Close() error {
	w.cw.Flush()
	err := w.cw.Error()
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
		w.closer = nil
	}
	return err
}
