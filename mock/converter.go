package mock

import "github.com/fwojciec/wikicorpus"

var _ wikicorpus.Converter = (*Converter)(nil)

// Converter is a mock implementation of wikicorpus.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
