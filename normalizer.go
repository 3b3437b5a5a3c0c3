package pageflat

import "context"

// NoContentPlaceholder is returned as the whole document body when a page
// carries no storage-format HTML at all.
const NoContentPlaceholder = "No content body found"

// ImageStatus describes the outcome of processing one embedded image.
// A skipped download and a legitimately absent image render identically in
// the document; the report keeps them distinguishable for diagnostics.
type ImageStatus string

const (
	ImageProcessed      ImageStatus = "processed"       // downloaded, text recorded
	ImageDownloadFailed ImageStatus = "download_failed" // slot consumed, no text emitted
	ImageNoSource       ImageStatus = "no_source"       // element carried no locator
)

// ImageKind distinguishes the two tag vocabularies the storage format uses
// for embedded images. The two kinds keep independent position counters.
type ImageKind string

const (
	KindInlineImage ImageKind = "image"      // <img src=...>
	KindAttachment  ImageKind = "attachment" // <ri:attachment ri:filename=...>
)

// ImageReport records the outcome of one embedded image or attachment.
type ImageReport struct {
	Kind     ImageKind
	Position int // 1-based among elements of the same kind, in document order
	Source   string
	Status   ImageStatus
}

// NormalizedContent is the output of content normalization: the flattened
// document text plus per-image outcome reports.
type NormalizedContent struct {
	Text    string
	Reports []ImageReport
}

// Normalizer reduces a page's storage-format HTML to flattened text with
// embedded images rewritten as extracted text sections. Normalization never
// fails: malformed markup, unreachable images, and OCR noise all degrade to
// some text rather than an error.
type Normalizer interface {
	Normalize(ctx context.Context, page *Page) *NormalizedContent
}
