// Package bloom provides probabilistic visited-set tracking for category
// traversal using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter tracks visited category titles. False positives are possible, so
// a rarely-revisited category may occasionally be skipped; false negatives
// are not, so a cycle is always broken.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected categories with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a category title as visited.
func (f *Filter) Add(title string) {
	f.f.AddString(title)
}

// Test returns true if the category title might have been visited.
func (f *Filter) Test(title string) bool {
	return f.f.TestString(title)
}

// EstimatedCount returns the approximate number of recorded titles.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
