package mock

import "github.com/fwojciec/pageflat"

var _ pageflat.ResultWriter = (*Writer)(nil)

// Writer is a mock implementation of pageflat.ResultWriter.
type Writer struct {
	WriteResultFn func(path string, result *pageflat.Result) error
}

func (w *Writer) WriteResult(path string, result *pageflat.Result) error {
	return w.WriteResultFn(path, result)
}
