package mock

import (
	"context"

	"github.com/fwojciec/stagger"
)

// Compile-time interface verification.
var (
	_ stagger.Mailer          = (*Mailer)(nil)
	_ stagger.RecipientFilter = (*RecipientFilter)(nil)
	_ stagger.Converter       = (*Converter)(nil)
)

// Mailer is a mock implementation of stagger.Mailer.
type Mailer struct {
	SendFn func(ctx context.Context, msg *stagger.Message) error
}

func (m *Mailer) Send(ctx context.Context, msg *stagger.Message) error {
	return m.SendFn(ctx, msg)
}

// RecipientFilter is a mock implementation of stagger.RecipientFilter.
type RecipientFilter struct {
	AddFn  func(addr string)
	TestFn func(addr string) bool
}

func (f *RecipientFilter) Add(addr string) {
	f.AddFn(addr)
}

func (f *RecipientFilter) Test(addr string) bool {
	return f.TestFn(addr)
}

// Converter is a mock implementation of stagger.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
