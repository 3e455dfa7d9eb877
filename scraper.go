package stagger

import (
	"context"
	"iter"
	"time"
)

// PageRenderer loads a page in a browser, applies the UI steps of its
// selector table and returns the resulting HTML.
type PageRenderer interface {
	// Render navigates to the URL, performs the configured clicks,
	// waits for the page to settle and returns the rendered HTML.
	Render(ctx context.Context, url string) (html string, err error)

	// Close releases browser resources.
	// Must be called when the PageRenderer is no longer needed.
	Close() error
}

// ContactParser extracts raw contacts from rendered HTML.
type ContactParser interface {
	// Parse yields one RawContact per contact element in document order.
	// A yielded error ends the sequence.
	Parse(html string) iter.Seq2[RawContact, error]
}

// ContactSource produces the raw contacts listed at a URL.
type ContactSource interface {
	Contacts(ctx context.Context, url string) iter.Seq2[RawContact, error]
}

// Ensure PageSource implements ContactSource at compile time.
var _ ContactSource = (*PageSource)(nil)

// PageSource is a ContactSource that renders a page and parses it.
type PageSource struct {
	Renderer PageRenderer
	Parser   ContactParser
}

// NewContactSource returns a PageSource over the given renderer and parser.
func NewContactSource(renderer PageRenderer, parser ContactParser) *PageSource {
	return &PageSource{Renderer: renderer, Parser: parser}
}

// Contacts renders the page once and yields the contacts parsed from it.
// A render failure is yielded as the only element.
func (s *PageSource) Contacts(ctx context.Context, url string) iter.Seq2[RawContact, error] {
	return func(yield func(RawContact, error) bool) {
		html, err := s.Renderer.Render(ctx, url)
		if err != nil {
			yield(RawContact{}, err)
			return
		}
		for raw, err := range s.Parser.Parse(html) {
			if !yield(raw, err) || err != nil {
				return
			}
		}
	}
}

// SelectorTable describes the layout of a contact listing page.
type SelectorTable struct {
	// Clicks are XPath expressions clicked in order after the page loads,
	// e.g. filter tiles and a list-view toggle.
	Clicks []string `yaml:"clicks"`

	// Settle is how long to wait after the last click before reading the page.
	Settle time.Duration `yaml:"settle"`

	// Contact selects one element per listed contact.
	Contact string `yaml:"contact"`

	// Company, Name and Email are evaluated inside each contact element.
	// Company is required to match; Name and Email may be missing.
	Company string `yaml:"company"`
	Name    string `yaml:"name"`
	Email   string `yaml:"email"`
}

// DefaultSettle is the wait after the UI steps of the default table.
const DefaultSettle = 3 * time.Second

// DefaultSelectorTable returns the table for the dual-study partner listing
// the tool was first written for.
func DefaultSelectorTable() SelectorTable {
	return SelectorTable{
		Clicks: []string{
			"/html/body/div/div[2]/div/div/div/div[1]/div[2]/div[1]/div[2]",
			"/html/body/div/div[2]/div/div/div/div[1]/div[2]/div[2]/div[1]",
			"/html/body/div/div[2]/div/div/div/div[1]/div[2]/div[2]/div[2]",
			"/html/body/div/div[2]/div/div/div/div[2]",
		},
		Settle:  DefaultSettle,
		Contact: ".w-full.items-center.flex.flex-col",
		Company: "h2",
		Name:    "p.w-full",
		Email:   ".underline",
	}
}

// Validate returns an error if a required selector is empty.
func (t *SelectorTable) Validate() error {
	if t.Contact == "" {
		return Errorf(EINVALID, "selector table: contact selector required")
	}
	if t.Company == "" {
		return Errorf(EINVALID, "selector table: company selector required")
	}
	if t.Name == "" {
		return Errorf(EINVALID, "selector table: name selector required")
	}
	if t.Email == "" {
		return Errorf(EINVALID, "selector table: email selector required")
	}
	if t.Settle < 0 {
		return Errorf(EINVALID, "selector table: settle must not be negative")
	}
	return nil
}
