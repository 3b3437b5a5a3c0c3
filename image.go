package pageflat

import (
	"bytes"
	"context"
	"fmt"
	"image"

	// Registered decoders for the formats Confluence serves inline.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// ExtractImageText produces best-effort structured text from raw image bytes.
// It never fails outward: undecodable bytes and OCR errors degrade to a
// descriptive placeholder string, so a single bad image can never abort the
// larger pipeline. The result is never empty.
func ExtractImageText(ctx context.Context, ocr OCR, data []byte) string {
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Sprintf("[Unable to process image: %v]", err)
	}

	text, err := ocr.ImageToText(ctx, data)
	if err != nil {
		return fmt.Sprintf("[Unable to process image: %v]", err)
	}

	return FormatOCRText(text)
}

// FormatOCRText structures raw OCR output for LLM consumption. Output with
// two or more non-blank lines is treated as tabular: the first line becomes
// the header row and each subsequent line a numbered data row. Anything else
// is rendered as a bare image-content string, even if empty; whitespace-only
// OCR output is accepted, not treated as an error.
func FormatOCRText(text string) string {
	lines := cleanLines(text)

	if len(lines) < 2 {
		return "IMAGE CONTENT: " + text
	}

	var b bytes.Buffer
	b.WriteString("TABLE DATA (structured for analysis):\n")
	fmt.Fprintf(&b, "Headers: %s\n", lines[0])
	for i, row := range lines[1:] {
		fmt.Fprintf(&b, "Row %d: %s\n", i+1, row)
	}
	return b.String()
}
