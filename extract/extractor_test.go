package extract_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/pageflat"
	"github.com/fwojciec/pageflat/extract"
	"github.com/fwojciec/pageflat/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageURL = "https://example.atlassian.net/wiki/spaces/ENG/pages/123456/Release+Notes"

func testPage() *pageflat.Page {
	return &pageflat.Page{
		ID:       "123456",
		Title:    "Release Notes",
		Type:     "page",
		Status:   "current",
		BodyHTML: "<p>hello</p>",
	}
}

// happyService returns a PageService mock covering the success path.
func happyService() *mock.PageService {
	return &mock.PageService{
		CurrentUserFn: func(ctx context.Context) (string, error) {
			return "Test User", nil
		},
		FindPageByIDFn: func(ctx context.Context, pageID string) (*pageflat.Page, error) {
			return testPage(), nil
		},
		FindCommentsFn: func(ctx context.Context, pageID string) ([]*pageflat.Comment, error) {
			return nil, nil
		},
		FindRepliesFn: func(ctx context.Context, commentID string) ([]*pageflat.Comment, error) {
			return nil, nil
		},
	}
}

func passthroughNormalizer() *mock.Normalizer {
	return &mock.Normalizer{
		NormalizeFn: func(ctx context.Context, page *pageflat.Page) *pageflat.NormalizedContent {
			return &pageflat.NormalizedContent{Text: "normalized body"}
		},
	}
}

func identityConverter() *mock.Converter {
	return &mock.Converter{
		ConvertFn: func(html string) (string, error) { return html, nil },
	}
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("returns success envelope with page metadata", func(t *testing.T) {
		t.Parallel()

		e := &extract.Extractor{
			Service:    happyService(),
			Normalizer: passthroughNormalizer(),
			Converter:  identityConverter(),
		}

		result, err := e.Extract(context.Background(), extract.Request{URL: pageURL})
		require.NoError(t, err)

		assert.Equal(t, "success", result.Status)
		assert.Equal(t, "Release Notes", result.Title)
		assert.Equal(t, "page", result.Type)
		assert.Equal(t, "current", result.StatusField)
		assert.Equal(t, "normalized body", result.Content)
		assert.Equal(t, "123456", result.PageID)
		assert.Equal(t, pageURL, result.URL)
		assert.Empty(t, result.OutputFile)
	})

	t.Run("fails on unresolvable page reference", func(t *testing.T) {
		t.Parallel()

		e := &extract.Extractor{
			Service:    happyService(),
			Normalizer: passthroughNormalizer(),
			Converter:  identityConverter(),
		}

		_, err := e.Extract(context.Background(), extract.Request{URL: "https://example.atlassian.net/no/id"})
		require.Error(t, err)
		assert.Equal(t, pageflat.EINVALID, pageflat.ErrorCode(err))
	})

	t.Run("fails when authentication is rejected", func(t *testing.T) {
		t.Parallel()

		service := happyService()
		service.CurrentUserFn = func(ctx context.Context) (string, error) {
			return "", pageflat.Errorf(pageflat.EUNAUTHORIZED, "authentication failed, please check your credentials")
		}

		e := &extract.Extractor{
			Service:    service,
			Normalizer: passthroughNormalizer(),
			Converter:  identityConverter(),
		}

		_, err := e.Extract(context.Background(), extract.Request{URL: pageURL})
		require.Error(t, err)
		assert.Equal(t, pageflat.EUNAUTHORIZED, pageflat.ErrorCode(err))
	})

	t.Run("fails when the page fetch fails", func(t *testing.T) {
		t.Parallel()

		service := happyService()
		service.FindPageByIDFn = func(ctx context.Context, pageID string) (*pageflat.Page, error) {
			return nil, pageflat.Errorf(pageflat.ENOTFOUND, "page %s not found (HTTP 404)", pageID)
		}

		e := &extract.Extractor{
			Service:    service,
			Normalizer: passthroughNormalizer(),
			Converter:  identityConverter(),
		}

		_, err := e.Extract(context.Background(), extract.Request{URL: pageURL})
		require.Error(t, err)
		assert.Equal(t, pageflat.ENOTFOUND, pageflat.ErrorCode(err))
	})

	t.Run("does not fetch comments unless opted in", func(t *testing.T) {
		t.Parallel()

		service := happyService()
		service.FindCommentsFn = func(ctx context.Context, pageID string) ([]*pageflat.Comment, error) {
			t.Fatal("comments must not be fetched without opt-in")
			return nil, nil
		}

		e := &extract.Extractor{
			Service:    service,
			Normalizer: passthroughNormalizer(),
			Converter:  identityConverter(),
		}

		result, err := e.Extract(context.Background(), extract.Request{URL: pageURL})
		require.NoError(t, err)
		assert.NotContains(t, result.Content, "PAGE COMMENTS")
	})

	t.Run("appends flattened comment threads when opted in", func(t *testing.T) {
		t.Parallel()

		service := happyService()
		service.FindCommentsFn = func(ctx context.Context, pageID string) ([]*pageflat.Comment, error) {
			return []*pageflat.Comment{
				{ID: "c1", Author: "Alice", BodyHTML: "<p>great <strong>page</strong></p>"},
				{ID: "c2", Author: "Bob", BodyHTML: "<p>agreed</p>"},
			}, nil
		}
		service.FindRepliesFn = func(ctx context.Context, commentID string) ([]*pageflat.Comment, error) {
			if commentID == "c1" {
				return []*pageflat.Comment{
					{ID: "r1", Author: "Carol", BodyHTML: "<p>same</p>", IsReply: true},
				}, nil
			}
			return nil, nil
		}

		e := &extract.Extractor{
			Service:    service,
			Normalizer: passthroughNormalizer(),
			Converter: &mock.Converter{
				// Strip the wrapping paragraph tags; marker stripping is
				// FlattenText's job.
				ConvertFn: func(html string) (string, error) {
					replaced := html
					for _, tag := range []string{"<p>", "</p>", "<strong>", "</strong>"} {
						replaced = strings.ReplaceAll(replaced, tag, "")
					}
					return replaced, nil
				},
			},
		}

		result, err := e.Extract(context.Background(), extract.Request{URL: pageURL, IncludeComments: true})
		require.NoError(t, err)

		assert.Contains(t, result.Content, "PAGE COMMENTS AND DISCUSSIONS:")
		assert.Contains(t, result.Content, "COMMENT 1:")
		assert.Contains(t, result.Content, "great page")
		assert.Contains(t, result.Content, "REPLY 1:")
		assert.Contains(t, result.Content, "COMMENT 2:")

		// Replies are attributed to their parent before rendering.
		assert.Contains(t, result.Content, "Author: Carol")
	})

	t.Run("comment fetch failure degrades to no comments", func(t *testing.T) {
		t.Parallel()

		service := happyService()
		service.FindCommentsFn = func(ctx context.Context, pageID string) ([]*pageflat.Comment, error) {
			return nil, pageflat.Errorf(pageflat.EUNAVAILABLE, "connection reset")
		}

		e := &extract.Extractor{
			Service:    service,
			Normalizer: passthroughNormalizer(),
			Converter:  identityConverter(),
		}

		result, err := e.Extract(context.Background(), extract.Request{URL: pageURL, IncludeComments: true})
		require.NoError(t, err)
		assert.Equal(t, "success", result.Status)
		assert.NotContains(t, result.Content, "PAGE COMMENTS")
	})

	t.Run("reply fetch failure degrades to a reply-less comment", func(t *testing.T) {
		t.Parallel()

		service := happyService()
		service.FindCommentsFn = func(ctx context.Context, pageID string) ([]*pageflat.Comment, error) {
			return []*pageflat.Comment{{ID: "c1", Author: "Alice", BodyHTML: "<p>hello</p>"}}, nil
		}
		service.FindRepliesFn = func(ctx context.Context, commentID string) ([]*pageflat.Comment, error) {
			return nil, pageflat.Errorf(pageflat.EUNAVAILABLE, "timeout")
		}

		e := &extract.Extractor{
			Service:    service,
			Normalizer: passthroughNormalizer(),
			Converter:  identityConverter(),
		}

		result, err := e.Extract(context.Background(), extract.Request{URL: pageURL, IncludeComments: true})
		require.NoError(t, err)
		assert.Contains(t, result.Content, "COMMENT 1:")
		assert.NotContains(t, result.Content, "REPLY")
	})

	t.Run("empty comment list emits no header", func(t *testing.T) {
		t.Parallel()

		e := &extract.Extractor{
			Service:    happyService(),
			Normalizer: passthroughNormalizer(),
			Converter:  identityConverter(),
		}

		result, err := e.Extract(context.Background(), extract.Request{URL: pageURL, IncludeComments: true})
		require.NoError(t, err)
		assert.NotContains(t, result.Content, "PAGE COMMENTS")
	})

	t.Run("writes the output file and records its path", func(t *testing.T) {
		t.Parallel()

		var wrotePath string
		writer := &mock.Writer{
			WriteResultFn: func(path string, result *pageflat.Result) error {
				wrotePath = path
				return nil
			},
		}

		e := &extract.Extractor{
			Service:    happyService(),
			Normalizer: passthroughNormalizer(),
			Converter:  identityConverter(),
			Writer:     writer,
		}

		result, err := e.Extract(context.Background(), extract.Request{URL: pageURL, OutputFile: "out.txt"})
		require.NoError(t, err)
		assert.Equal(t, "out.txt", wrotePath)
		assert.Equal(t, "out.txt", result.OutputFile)
	})

	t.Run("write failure is absorbed and leaves output file unset", func(t *testing.T) {
		t.Parallel()

		writer := &mock.Writer{
			WriteResultFn: func(path string, result *pageflat.Result) error {
				return pageflat.Errorf(pageflat.EINTERNAL, "disk full")
			},
		}

		e := &extract.Extractor{
			Service:    happyService(),
			Normalizer: passthroughNormalizer(),
			Converter:  identityConverter(),
			Writer:     writer,
		}

		result, err := e.Extract(context.Background(), extract.Request{URL: pageURL, OutputFile: "out.txt"})
		require.NoError(t, err)
		assert.Equal(t, "success", result.Status)
		assert.Empty(t, result.OutputFile)
	})
}
