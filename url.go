package pageflat

import (
	"net/url"
	"strings"
)

// ExtractPageID extracts the Confluence page ID from a page URL.
// Two URL shapes are recognized: a /pages/<id>/ path segment
// (modern cloud URLs) and a pageId=<id> query parameter (legacy URLs).
// The extracted ID is passed through opaquely; it is not validated
// as numeric.
func ExtractPageID(rawURL string) (string, error) {
	if _, after, ok := strings.Cut(rawURL, "/pages/"); ok {
		id, _, _ := strings.Cut(after, "/")
		return id, nil
	}
	if idx := strings.LastIndex(rawURL, "pageId="); idx != -1 {
		id, _, _ := strings.Cut(rawURL[idx+len("pageId="):], "&")
		return id, nil
	}
	return "", Errorf(EINVALID, "unable to extract page ID from URL %q: provide a valid Confluence page URL", rawURL)
}

// AttachmentDownloadURL constructs the download URL for a file attached to a
// page. Attachment-reference elements carry only a filename; the download
// route is keyed by page ID.
func AttachmentDownloadURL(baseURL, pageID, filename string) string {
	return baseURL + "/wiki/download/attachments/" + url.PathEscape(pageID) + "/" + url.PathEscape(filename)
}

// BaseURL derives the site base URL (scheme://host) from a page URL.
func BaseURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", Errorf(EINVALID, "URL %q has no scheme or host", rawURL)
	}
	return u.Scheme + "://" + u.Host, nil
}
