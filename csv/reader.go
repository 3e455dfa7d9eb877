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

// Ensure Reader implements stagger.ContactReader at compile time.
var _ stagger.ContactReader = (*Reader)(nil)

// Reader loads contacts from a CSV record store file.
type Reader struct {
	path string
}

// NewReader returns a Reader for the file at path.
// The file is opened on each ReadContacts call.
func NewReader(path string) *Reader {
	return &Reader{path: path}
}

// ReadContacts opens the store and parses every row.
// Returns ENOTFOUND if the file does not exist.
func (r *Reader) ReadContacts(ctx context.Context) ([]*stagger.Contact, error) {
	f, err := os.Open(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, stagger.Errorf(stagger.ENOTFOUND, "input file %q not found", r.path)
	} else if err != nil {
		return nil, stagger.Errorf(stagger.EINVALID, "cannot open input file %q: %v", r.path, err)
	}
	defer f.Close()

	return ReadContacts(f)
}

// ReadContacts parses a record store. The first row is the header and is
// skipped. Every row must have exactly three fields; otherwise EINVALID is
// returned and no contacts are.
func ReadContacts(r io.Reader) ([]*stagger.Contact, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	if _, err := cr.Read(); err == io.EOF {
		return nil, nil
	} else if err != nil {
		return nil, stagger.Errorf(stagger.EINVALID, "malformed record store header: %v", err)
	}

	var contacts []*stagger.Contact
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return contacts, nil
		}
		if err != nil {
			return nil, stagger.Errorf(stagger.EINVALID, "malformed record store: %v", err)
		}

		contacts = append(contacts, &stagger.Contact{
			Company: rec[0],
			Name:    rec[1],
			Email:   rec[2],
		})
	}
}
