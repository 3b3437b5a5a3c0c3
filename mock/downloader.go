package mock

import (
	"context"

	"github.com/fwojciec/pageflat"
)

var _ pageflat.Downloader = (*Downloader)(nil)

// Downloader is a mock implementation of pageflat.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, url string) ([]byte, error)
}

func (d *Downloader) Download(ctx context.Context, url string) ([]byte, error) {
	return d.DownloadFn(ctx, url)
}
