package mock

import (
	"context"

	"github.com/fwojciec/pageflat"
)

var _ pageflat.Normalizer = (*Normalizer)(nil)

// Normalizer is a mock implementation of pageflat.Normalizer.
type Normalizer struct {
	NormalizeFn func(ctx context.Context, page *pageflat.Page) *pageflat.NormalizedContent
}

func (n *Normalizer) Normalize(ctx context.Context, page *pageflat.Page) *pageflat.NormalizedContent {
	return n.NormalizeFn(ctx, page)
}
