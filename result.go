package pageflat

// Section headers appended to the normalized document.
const (
	ImagesHeader   = "\n\nEXTRACTED IMAGES AND TABLES:\n"
	CommentsHeader = "\n\nPAGE COMMENTS AND DISCUSSIONS:\n\n"
)

// Result is the envelope returned to callers. Status is either "success" or
// "error"; there is no partial-success state. Degraded data (a failed image
// download, a missing comment thread) is absorbed into Content and never
// changes Status.
type Result struct {
	Status      string `json:"status"`
	Title       string `json:"title,omitempty"`
	Type        string `json:"type,omitempty"`
	StatusField string `json:"status_field,omitempty"`
	Content     string `json:"content,omitempty"`
	PageID      string `json:"page_id,omitempty"`
	URL         string `json:"url,omitempty"`
	OutputFile  string `json:"output_file,omitempty"`
	Message     string `json:"message,omitempty"`
}

// ErrorResult builds an error envelope from a terminal failure.
func ErrorResult(err error) *Result {
	return &Result{
		Status:  "error",
		Message: ErrorMessage(err),
	}
}
