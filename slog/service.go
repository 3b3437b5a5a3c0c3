// Package slog provides logging decorators for the pageflat domain
// interfaces. Debug visibility is a wrapping concern: the decorated
// implementations stay free of logging configuration, and callers opt in
// by wrapping.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pageflat"
)

// Ensure LoggingService implements pageflat.PageService.
var _ pageflat.PageService = (*LoggingService)(nil)

// LoggingService wraps a PageService with request/duration logging.
type LoggingService struct {
	next   pageflat.PageService
	logger *slog.Logger
}

// NewLoggingService creates a new LoggingService.
func NewLoggingService(next pageflat.PageService, logger *slog.Logger) *LoggingService {
	return &LoggingService{next: next, logger: logger}
}

// CurrentUser delegates to the wrapped service and logs the outcome.
func (s *LoggingService) CurrentUser(ctx context.Context) (string, error) {
	begin := time.Now()
	user, err := s.next.CurrentUser(ctx)
	s.logger.Debug("auth probe",
		"user", user,
		"duration", time.Since(begin),
		"error", err,
	)
	return user, err
}

// FindPageByID delegates to the wrapped service and logs the outcome.
func (s *LoggingService) FindPageByID(ctx context.Context, pageID string) (*pageflat.Page, error) {
	begin := time.Now()
	page, err := s.next.FindPageByID(ctx, pageID)
	attrs := []any{"page_id", pageID, "duration", time.Since(begin), "error", err}
	if page != nil {
		attrs = append(attrs, "title", page.Title, "body_bytes", len(page.BodyHTML))
	}
	s.logger.Debug("page fetch", attrs...)
	return page, err
}

// FindComments delegates to the wrapped service and logs the outcome.
func (s *LoggingService) FindComments(ctx context.Context, pageID string) ([]*pageflat.Comment, error) {
	begin := time.Now()
	comments, err := s.next.FindComments(ctx, pageID)
	s.logger.Debug("comment fetch",
		"page_id", pageID,
		"count", len(comments),
		"duration", time.Since(begin),
		"error", err,
	)
	return comments, err
}

// FindReplies delegates to the wrapped service and logs the outcome.
func (s *LoggingService) FindReplies(ctx context.Context, commentID string) ([]*pageflat.Comment, error) {
	begin := time.Now()
	replies, err := s.next.FindReplies(ctx, commentID)
	s.logger.Debug("reply fetch",
		"comment_id", commentID,
		"count", len(replies),
		"duration", time.Since(begin),
		"error", err,
	)
	return replies, err
}

// Ensure LoggingDownloader implements pageflat.Downloader.
var _ pageflat.Downloader = (*LoggingDownloader)(nil)

// LoggingDownloader wraps a Downloader with per-download logging.
type LoggingDownloader struct {
	next   pageflat.Downloader
	logger *slog.Logger
}

// NewLoggingDownloader creates a new LoggingDownloader.
func NewLoggingDownloader(next pageflat.Downloader, logger *slog.Logger) *LoggingDownloader {
	return &LoggingDownloader{next: next, logger: logger}
}

// Download delegates to the wrapped downloader and logs the outcome.
func (d *LoggingDownloader) Download(ctx context.Context, url string) ([]byte, error) {
	begin := time.Now()
	data, err := d.next.Download(ctx, url)
	d.logger.Debug("download",
		"url", url,
		"bytes", len(data),
		"duration", time.Since(begin),
		"error", err,
	)
	return data, err
}
