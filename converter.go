package pageflat

// Converter converts HTML to Markdown-flavored plain text.
// The output may contain emphasis and heading markers; FlattenText
// strips them during the final reduction to a single line.
type Converter interface {
	// Convert transforms HTML content into text.
	Convert(html string) (string, error)
}
