// Package goquery provides the goquery-based implementation of
// pageflat.Normalizer. It walks a page's storage-format HTML, rewrites
// embedded images and attachments into OCR-extracted text sections, and
// reduces the remaining markup to a single flattened line.
package goquery

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pageflat"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel image downloads per page.
const DefaultConcurrency = 3

// Ensure Normalizer implements pageflat.Normalizer at compile time.
var _ pageflat.Normalizer = (*Normalizer)(nil)

// Normalizer rewrites a page's embedded images into extracted text and
// flattens the remaining markup. Downloads and OCR calls for independent
// images run concurrently; output ordering is reconstructed from document
// order, never from completion order.
type Normalizer struct {
	Downloader  pageflat.Downloader
	OCR         pageflat.OCR
	Converter   pageflat.Converter
	BaseURL     string
	Concurrency int
	Logger      *slog.Logger
}

// imageJob is one embedded image to download and extract.
type imageJob struct {
	kind     pageflat.ImageKind
	position int // 1-based among elements of the same kind
	source   string
	sel      *goquery.Selection
}

// imageOutcome is the processed result of one imageJob.
type imageOutcome struct {
	text       string // extracted text, empty when the download failed
	downloaded bool
}

// Normalize reduces the page body to flattened text with extracted image
// sections appended. It never fails: an unparseable body falls back to
// converting the raw markup, and per-image failures degrade per the
// ExtractImageText contract.
func (n *Normalizer) Normalize(ctx context.Context, page *pageflat.Page) *pageflat.NormalizedContent {
	logger := n.logger()

	if strings.TrimSpace(page.BodyHTML) == "" {
		return &pageflat.NormalizedContent{Text: pageflat.NoContentPlaceholder}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.BodyHTML))
	if err != nil {
		logger.Debug("body parse failed, converting raw markup", "error", err)
		return &pageflat.NormalizedContent{Text: n.convert(page.BodyHTML)}
	}

	jobs := collectJobs(doc, page.ID, n.BaseURL)
	logger.Debug("located embedded images",
		"inline", countKind(jobs, pageflat.KindInlineImage),
		"attachments", countKind(jobs, pageflat.KindAttachment),
	)

	outcomes := n.processJobs(ctx, jobs)

	content := &pageflat.NormalizedContent{}
	var sections []string

	for i, job := range jobs {
		report := pageflat.ImageReport{
			Kind:     job.kind,
			Position: job.position,
			Source:   job.source,
			Status:   pageflat.ImageProcessed,
		}

		switch {
		case job.source == "":
			report.Status = pageflat.ImageNoSource
		case !outcomes[i].downloaded:
			// Slot consumed, nothing emitted. The element is dropped
			// with the rest of the image markup below.
			report.Status = pageflat.ImageDownloadFailed
			logger.Debug("image download failed, skipping", "source", job.source)
		case job.kind == pageflat.KindInlineImage:
			sections = append(sections, fmt.Sprintf("\n--- IMAGE %d ---\n%s\n", job.position, outcomes[i].text))
			job.sel.ReplaceWithHtml(fmt.Sprintf("[IMAGE_%d_PROCESSED_BELOW]", job.position))
		default:
			sections = append(sections, fmt.Sprintf("\n--- ATTACHMENT %d ---\n%s\n", job.position, outcomes[i].text))
		}

		content.Reports = append(content.Reports, report)
	}

	// Text-only reduction: link targets and unprocessed image elements
	// carry no prose, so anchors collapse to their text and image markup
	// is dropped before conversion.
	doc.Find("a").Each(func(_ int, s *goquery.Selection) { unwrap(s) })
	doc.Find("ri\\:attachment").Each(func(_ int, s *goquery.Selection) { unwrap(s) })
	doc.Find("ac\\:image").Each(func(_ int, s *goquery.Selection) { s.Remove() })
	doc.Find("img").Remove()

	markup, err := doc.Html()
	if err != nil {
		markup = page.BodyHTML
	}

	content.Text = n.convert(markup)
	if len(sections) > 0 {
		content.Text += pageflat.ImagesHeader + strings.Join(sections, "")
	}

	return content
}

// collectJobs locates both image tag vocabularies in document order.
// Inline images and attachment references keep independent position
// counters; both reflect a real quirk of the storage format, not
// accidental duplication.
func collectJobs(doc *goquery.Document, pageID, baseURL string) []imageJob {
	var jobs []imageJob

	doc.Find("img").Each(func(i int, s *goquery.Selection) {
		src := strings.TrimSpace(s.AttrOr("src", ""))
		jobs = append(jobs, imageJob{
			kind:     pageflat.KindInlineImage,
			position: i + 1,
			source:   resolveSource(baseURL, src),
			sel:      s,
		})
	})

	doc.Find("ri\\:attachment").Each(func(i int, s *goquery.Selection) {
		filename := strings.TrimSpace(s.AttrOr("ri:filename", ""))
		job := imageJob{
			kind:     pageflat.KindAttachment,
			position: i + 1,
			sel:      s,
		}
		if filename != "" {
			job.source = pageflat.AttachmentDownloadURL(baseURL, pageID, filename)
		}
		jobs = append(jobs, job)
	})

	return jobs
}

// processJobs downloads and extracts all images through a bounded worker
// group. Identical payloads reuse a single OCR pass.
func (n *Normalizer) processJobs(ctx context.Context, jobs []imageJob) []imageOutcome {
	outcomes := make([]imageOutcome, len(jobs))

	concurrency := n.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var mu sync.Mutex
	seen := make(map[uint64]string)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, job := range jobs {
		if job.source == "" {
			continue
		}
		g.Go(func() error {
			data, err := n.Downloader.Download(gctx, job.source)
			if err != nil {
				return nil
			}
			n.logger().Debug("downloaded image",
				"source", job.source,
				"bytes", len(data),
				"payload_hash", fmt.Sprintf("%016x", xxhash.Sum64(data)),
			)

			key := xxhash.Sum64(data)
			mu.Lock()
			text, ok := seen[key]
			mu.Unlock()

			if !ok {
				text = pageflat.ExtractImageText(gctx, n.OCR, data)
				mu.Lock()
				seen[key] = text
				mu.Unlock()
			}

			outcomes[i] = imageOutcome{text: text, downloaded: true}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// convert reduces markup to a single flattened line; conversion failure
// degrades to flattening the raw markup's text.
func (n *Normalizer) convert(markup string) string {
	text, err := n.Converter.Convert(markup)
	if err != nil {
		n.logger().Debug("markup conversion failed, flattening raw input", "error", err)
		text = markup
	}
	return pageflat.FlattenText(text)
}

func (n *Normalizer) logger() *slog.Logger {
	if n.Logger != nil {
		return n.Logger
	}
	return slog.Default()
}

// resolveSource resolves a possibly-relative image locator against the
// site base URL.
func resolveSource(baseURL, src string) string {
	if src == "" || strings.HasPrefix(src, "http") {
		return src
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return src
	}
	ref, err := url.Parse(src)
	if err != nil {
		return src
	}
	return base.ResolveReference(ref).String()
}

// unwrap replaces each node in the selection with its own children.
func unwrap(s *goquery.Selection) {
	for _, node := range s.Nodes {
		parent := node.Parent
		if parent == nil {
			continue
		}
		var next *html.Node
		for child := node.FirstChild; child != nil; child = next {
			next = child.NextSibling
			node.RemoveChild(child)
			parent.InsertBefore(child, node)
		}
		parent.RemoveChild(node)
	}
}

func countKind(jobs []imageJob, kind pageflat.ImageKind) int {
	var count int
	for _, job := range jobs {
		if job.kind == kind {
			count++
		}
	}
	return count
}
