// Package pageflat converts a single Confluence wiki page into a flattened,
// LLM-consumable text document. It fetches the page's storage-format HTML over
// the REST API, rewrites embedded images and attachments into OCR-extracted
// text, reduces the remaining markup to a single space-joined line, and
// optionally appends the page's flattened comment threads.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, gemini/).
package pageflat
