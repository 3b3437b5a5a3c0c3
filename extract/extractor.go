// Package extract orchestrates a single page extraction: credential
// resolution, authentication check, page fetch, content normalization,
// optional comment flattening, and optional file persistence.
package extract

import (
	"context"
	"log/slog"

	"github.com/fwojciec/pageflat"
	"github.com/google/uuid"
)

// Request describes one extraction. Credentials are resolved separately
// (see ResolveCredentials); by the time a Request reaches Extract the
// site client already carries them.
type Request struct {
	URL             string
	IncludeComments bool
	OutputFile      string
}

// Extractor coordinates one extraction per call. Invocations share no
// mutable state, so a single Extractor is safe for concurrent use as long
// as its collaborators are.
type Extractor struct {
	Service    pageflat.PageService
	Normalizer pageflat.Normalizer
	Converter  pageflat.Converter
	Writer     pageflat.ResultWriter
	Logger     *slog.Logger
}

// Extract runs the extraction pipeline and returns the success envelope.
// A returned error is terminal: unresolvable page reference, failed
// authentication, or failed page fetch. Everything downstream of the page
// fetch degrades into the document instead of failing — missing images,
// unreachable comments, and a failed output write all still yield success.
func (e *Extractor) Extract(ctx context.Context, req Request) (*pageflat.Result, error) {
	logger := e.logger().With("run_id", uuid.NewString())

	pageID, err := pageflat.ExtractPageID(req.URL)
	if err != nil {
		return nil, err
	}
	logger.Debug("resolved page reference", "page_id", pageID, "url", req.URL)

	user, err := e.Service.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("authentication successful", "user", user)

	page, err := e.Service.FindPageByID(ctx, pageID)
	if err != nil {
		return nil, err
	}
	logger.Debug("fetched page", "title", page.Title, "body_bytes", len(page.BodyHTML))

	content := e.Normalizer.Normalize(ctx, page)
	for _, report := range content.Reports {
		if report.Status != pageflat.ImageProcessed {
			logger.Debug("image not processed", "kind", report.Kind, "position", report.Position, "status", report.Status)
		}
	}

	text := content.Text
	if req.IncludeComments {
		if thread := e.commentThread(ctx, page.ID, logger); thread != "" {
			text += pageflat.CommentsHeader + thread
		}
	}

	result := &pageflat.Result{
		Status:      "success",
		Title:       page.Title,
		Type:        page.Type,
		StatusField: page.Status,
		Content:     text,
		PageID:      page.ID,
		URL:         req.URL,
	}

	if req.OutputFile != "" && e.Writer != nil {
		// Best effort: a failed write is observable in the log but
		// never flips the envelope to error.
		if err := e.Writer.WriteResult(req.OutputFile, result); err != nil {
			logger.Warn("failed to write output file", "path", req.OutputFile, "error", err)
		} else {
			result.OutputFile = req.OutputFile
			logger.Debug("wrote output file", "path", req.OutputFile)
		}
	}

	return result, nil
}

// commentThread fetches, interleaves, flattens, and renders the page's
// comments. Any fetch failure degrades to an empty thread.
func (e *Extractor) commentThread(ctx context.Context, pageID string, logger *slog.Logger) string {
	top, err := e.Service.FindComments(ctx, pageID)
	if err != nil {
		logger.Debug("comment fetch failed, continuing without comments", "error", err)
		return ""
	}

	// Each top-level comment is immediately followed by its own replies;
	// a failed reply fetch degrades to a reply-less comment.
	var thread []*pageflat.Comment
	for _, c := range top {
		thread = append(thread, c)
		replies, err := e.Service.FindReplies(ctx, c.ID)
		if err != nil {
			logger.Debug("reply fetch failed, continuing without replies", "comment_id", c.ID, "error", err)
			continue
		}
		for _, r := range replies {
			r.ParentID = c.ID
			thread = append(thread, r)
		}
	}

	for _, c := range thread {
		c.Body = e.flattenBody(c.BodyHTML)
	}

	return pageflat.FormatCommentThread(thread)
}

// flattenBody reduces a comment body with the same pipeline as the page
// body; conversion failure degrades to flattening the raw markup.
func (e *Extractor) flattenBody(bodyHTML string) string {
	text, err := e.Converter.Convert(bodyHTML)
	if err != nil {
		text = bodyHTML
	}
	return pageflat.FlattenText(text)
}

func (e *Extractor) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}
