package mock

import (
	"context"

	"github.com/fwojciec/stagger"
)

// Compile-time interface verification.
var (
	_ stagger.ContactWriter = (*ContactWriter)(nil)
	_ stagger.ContactReader = (*ContactReader)(nil)
)

// ContactWriter is a mock implementation of stagger.ContactWriter.
type ContactWriter struct {
	WriteContactFn func(ctx context.Context, contact *stagger.Contact) error
	CloseFn        func() error
}

func (w *ContactWriter) WriteContact(ctx context.Context, contact *stagger.Contact) error {
	return w.WriteContactFn(ctx, contact)
}

func (w *ContactWriter) Close() error {
	return w.CloseFn()
}

// ContactReader is a mock implementation of stagger.ContactReader.
type ContactReader struct {
	ReadContactsFn func(ctx context.Context) ([]*stagger.Contact, error)
}

func (r *ContactReader) ReadContacts(ctx context.Context) ([]*stagger.Contact, error) {
	return r.ReadContactsFn(ctx)
}
