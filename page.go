package pageflat

import "context"

// Page represents a Confluence page fetched from the REST API.
// The body is the page's storage-format HTML; it may legitimately be empty,
// in which case normalization produces a fixed placeholder.
type Page struct {
	ID       string
	Title    string
	Type     string
	Status   string
	BodyHTML string
}

// Validate returns an error if the page is missing required fields.
// An empty body is not an error; the normalizer handles it.
func (p *Page) Validate() error {
	if p.ID == "" {
		return Errorf(EINVALID, "page ID required")
	}
	if p.Title == "" {
		return Errorf(EINVALID, "page title required")
	}
	if p.Type == "" {
		return Errorf(EINVALID, "page type required")
	}
	if p.Status == "" {
		return Errorf(EINVALID, "page status required")
	}
	return nil
}

// PageService retrieves pages and comments from a Confluence site.
type PageService interface {
	// CurrentUser is a lightweight authentication probe.
	// Returns the display name of the authenticated user, or
	// EUNAUTHORIZED if the credentials are rejected.
	CurrentUser(ctx context.Context) (string, error)

	// FindPageByID fetches a page with its storage-format body.
	// Returns ENOTFOUND if the page does not exist and EUNAUTHORIZED
	// with diagnostic detail on a 403 response.
	FindPageByID(ctx context.Context, pageID string) (*Page, error)

	// FindComments fetches the top-level comments attached to a page.
	FindComments(ctx context.Context, pageID string) ([]*Comment, error)

	// FindReplies fetches the replies attached to a comment.
	FindReplies(ctx context.Context, commentID string) ([]*Comment, error)
}

// Downloader retrieves raw bytes from a URL using the site credentials.
// Implementations make exactly one attempt per call; retries are a
// wrapping policy, not a hidden default.
type Downloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}
