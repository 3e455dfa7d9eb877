// Package goquery extracts raw contacts from rendered listing pages.
package goquery

import (
	"iter"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/stagger"
)

// Ensure Parser implements stagger.ContactParser at compile time.
var _ stagger.ContactParser = (*Parser)(nil)

// Parser reads contact elements using the CSS selectors of a selector table.
type Parser struct {
	table stagger.SelectorTable
}

// NewParser creates a Parser for the given table.
func NewParser(table stagger.SelectorTable) *Parser {
	return &Parser{table: table}
}

// Parse yields one RawContact per element matching the contact selector.
// A contact element without a company element yields EINVALID and ends the
// sequence. Missing name or email elements yield empty text.
func (p *Parser) Parse(html string) iter.Seq2[stagger.RawContact, error] {
	return func(yield func(stagger.RawContact, error) bool) {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			yield(stagger.RawContact{}, stagger.Errorf(stagger.EINVALID, "failed to parse HTML: %v", err))
			return
		}

		contacts := doc.Find(p.table.Contact)
		for i := range contacts.Length() {
			el := contacts.Eq(i)

			company := el.Find(p.table.Company).First()
			if company.Length() == 0 {
				yield(stagger.RawContact{}, stagger.Errorf(stagger.EINVALID,
					"contact element %d has no match for company selector %q", i, p.table.Company))
				return
			}

			raw := stagger.RawContact{
				Company: text(company),
				Name:    text(el.Find(p.table.Name).First()),
				Email:   text(el.Find(p.table.Email).First()),
			}
			if !yield(raw, nil) {
				return
			}
		}
	}
}

// text returns the selection's text with whitespace runs collapsed.
func text(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}
