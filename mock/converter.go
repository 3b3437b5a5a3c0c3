package mock

import "github.com/fwojciec/pageflat"

var _ pageflat.Converter = (*Converter)(nil)

// Converter is a mock implementation of pageflat.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
