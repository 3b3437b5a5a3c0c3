// Package htmltomarkdown wraps html-to-markdown as the markup reduction step
// of the normalization pipeline. The Markdown output is an intermediate form:
// its emphasis and heading markers are exactly what the final flattening pass
// strips, so conversion and flattening together reduce storage-format HTML to
// marker-free prose.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/pageflat"
)

// Ensure Converter implements pageflat.Converter at compile time.
var _ pageflat.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown-flavored text.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown-flavored text. Empty input
// converts to empty output; a missing body is handled upstream by the
// normalizer, so an empty string here is not an error.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}
	return c.conv.ConvertString(html)
}
