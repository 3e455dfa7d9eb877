// Package bloom flags probable duplicate recipients using Bloom filters.
package bloom

import (
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/stagger"
)

// Ensure Filter implements stagger.RecipientFilter at compile time.
var _ stagger.RecipientFilter = (*Filter)(nil)

// DefaultFalsePositiveRate is the rate used by NewRecipientFilter.
const DefaultFalsePositiveRate = 0.001

// Filter wraps a Bloom filter keyed by normalized email address.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected addresses
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// NewRecipientFilter sizes a filter for a batch of n targets.
func NewRecipientFilter(n int) *Filter {
	return NewFilter(uint(max(n, 1)), DefaultFalsePositiveRate)
}

// Add adds an address to the filter.
func (f *Filter) Add(addr string) {
	f.f.AddString(normalize(addr))
}

// Test returns true if the address might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(addr string) bool {
	return f.f.TestString(normalize(addr))
}

// EstimatedCount returns the approximate number of addresses in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

// normalize lowercases and trims an address so case variants collide.
func normalize(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}
