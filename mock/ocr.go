package mock

import (
	"context"

	"github.com/fwojciec/pageflat"
)

var _ pageflat.OCR = (*OCR)(nil)

// OCR is a mock implementation of pageflat.OCR.
type OCR struct {
	ImageToTextFn func(ctx context.Context, data []byte) (string, error)
}

func (o *OCR) ImageToText(ctx context.Context, data []byte) (string, error) {
	return o.ImageToTextFn(ctx, data)
}
