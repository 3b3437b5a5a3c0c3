package pageflat

import "context"

// OCR recognizes text in a raster image. It is the only part of image
// processing that talks to an external engine; everything around it
// (decode checks, table structuring) is deterministic.
type OCR interface {
	// ImageToText runs character recognition over the image bytes and
	// returns the recognized text, line-oriented, in reading order.
	ImageToText(ctx context.Context, data []byte) (string, error)
}
