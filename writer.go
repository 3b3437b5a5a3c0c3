package pageflat

// ResultWriter persists a successful extraction to storage.
type ResultWriter interface {
	// WriteResult writes the result's content, preceded by a metadata
	// header, to the given path.
	WriteResult(path string, result *Result) error
}
