// Package fs provides file-based persistence of extraction results.
package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/pageflat"
)

// FormatExport formats a result as a plain text export: a fixed metadata
// header followed by the normalized document body.
func FormatExport(result *pageflat.Result) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(result.Title)
	b.WriteString("\n**Type:** ")
	b.WriteString(result.Type)
	b.WriteString("\n**Status:** ")
	b.WriteString(result.StatusField)
	b.WriteString("\n**Source:** ")
	b.WriteString(result.URL)
	b.WriteString("\n**Page ID:** ")
	b.WriteString(result.PageID)
	b.WriteString("\n\n")
	b.WriteString(result.Content)
	b.WriteString("\n")
	return b.String()
}

// Ensure Writer implements pageflat.ResultWriter at compile time.
var _ pageflat.ResultWriter = (*Writer)(nil)

// Writer writes extraction results as plain text files.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteResult writes the formatted export to path, creating parent
// directories as needed.
func (w *Writer) WriteResult(path string, result *pageflat.Result) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(FormatExport(result)), 0644)
}
