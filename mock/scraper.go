package mock

import (
	"context"
	"iter"

	"github.com/fwojciec/stagger"
)

// Compile-time interface verification.
var (
	_ stagger.PageRenderer  = (*PageRenderer)(nil)
	_ stagger.ContactParser = (*ContactParser)(nil)
	_ stagger.ContactSource = (*ContactSource)(nil)
)

// PageRenderer is a mock implementation of stagger.PageRenderer.
type PageRenderer struct {
	RenderFn func(ctx context.Context, url string) (string, error)
	CloseFn  func() error
}

func (r *PageRenderer) Render(ctx context.Context, url string) (string, error) {
	return r.RenderFn(ctx, url)
}

func (r *PageRenderer) Close() error {
	return r.CloseFn()
}

// ContactParser is a mock implementation of stagger.ContactParser.
type ContactParser struct {
	ParseFn func(html string) iter.Seq2[stagger.RawContact, error]
}

func (p *ContactParser) Parse(html string) iter.Seq2[stagger.RawContact, error] {
	return p.ParseFn(html)
}

// ContactSource is a mock implementation of stagger.ContactSource.
type ContactSource struct {
	ContactsFn func(ctx context.Context, url string) iter.Seq2[stagger.RawContact, error]
}

func (s *ContactSource) Contacts(ctx context.Context, url string) iter.Seq2[stagger.RawContact, error] {
	return s.ContactsFn(ctx, url)
}

// RawContacts returns a sequence yielding raws in order.
func RawContacts(raws ...stagger.RawContact) iter.Seq2[stagger.RawContact, error] {
	return func(yield func(stagger.RawContact, error) bool) {
		for _, raw := range raws {
			if !yield(raw, nil) {
				return
			}
		}
	}
}
