// Package mock provides function-field mock implementations of the
// pageflat domain interfaces for use in tests.
package mock

import (
	"context"

	"github.com/fwojciec/pageflat"
)

var _ pageflat.PageService = (*PageService)(nil)

// PageService is a mock implementation of pageflat.PageService.
type PageService struct {
	CurrentUserFn  func(ctx context.Context) (string, error)
	FindPageByIDFn func(ctx context.Context, pageID string) (*pageflat.Page, error)
	FindCommentsFn func(ctx context.Context, pageID string) ([]*pageflat.Comment, error)
	FindRepliesFn  func(ctx context.Context, commentID string) ([]*pageflat.Comment, error)
}

func (s *PageService) CurrentUser(ctx context.Context) (string, error) {
	return s.CurrentUserFn(ctx)
}

func (s *PageService) FindPageByID(ctx context.Context, pageID string) (*pageflat.Page, error) {
	return s.FindPageByIDFn(ctx, pageID)
}

func (s *PageService) FindComments(ctx context.Context, pageID string) ([]*pageflat.Comment, error) {
	return s.FindCommentsFn(ctx, pageID)
}

func (s *PageService) FindReplies(ctx context.Context, commentID string) ([]*pageflat.Comment, error) {
	return s.FindRepliesFn(ctx, commentID)
}
