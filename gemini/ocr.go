// Package gemini implements pageflat.OCR using Google Gemini's multimodal
// API as the character-recognition engine.
package gemini

import (
	"context"
	"net/http"

	"github.com/fwojciec/pageflat"
	"google.golang.org/genai"
)

// DefaultModel is the model used for transcription.
const DefaultModel = "gemini-2.5-flash"

// Prompt asks for a verbatim, line-oriented transcription. The line
// orientation matters: downstream structuring treats the first line as a
// table header row and the rest as data rows, matching what a
// uniform-text-block OCR segmentation would produce.
const Prompt = "Transcribe all text visible in this image exactly as it appears, " +
	"one line of image text per output line, preserving reading order. " +
	"Keep cells of the same table row on one line separated by spaces. " +
	"Return only the transcribed text with no commentary. " +
	"If the image contains no text, return nothing."

// Ensure OCR implements pageflat.OCR at compile time.
var _ pageflat.OCR = (*OCR)(nil)

// OCR recognizes image text via Gemini.
type OCR struct {
	client *genai.Client
	model  string
}

// Option configures an OCR.
type Option func(*OCR)

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(o *OCR) {
		o.model = model
	}
}

// NewOCR creates an OCR backed by the given Gemini client.
func NewOCR(client *genai.Client, opts ...Option) *OCR {
	o := &OCR{client: client, model: DefaultModel}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ImageToText transcribes the text visible in the image bytes.
func (o *OCR) ImageToText(ctx context.Context, data []byte) (string, error) {
	if o.client == nil {
		return "", pageflat.Errorf(pageflat.EINTERNAL, "gemini client not configured")
	}

	content := &genai.Content{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{Text: Prompt},
			{InlineData: &genai.Blob{
				MIMEType: http.DetectContentType(data),
				Data:     data,
			}},
		},
	}

	result, err := o.client.Models.GenerateContent(ctx, o.model, []*genai.Content{content}, BuildConfig())
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", pageflat.Errorf(pageflat.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for transcription calls.
// Temperature zero keeps transcription deterministic.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{
		Temperature: &temp,
	}
}
