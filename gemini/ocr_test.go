package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/pageflat"
	"github.com/fwojciec/pageflat/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOCR_ImageToText_ReturnsErrorWhenClientMissing(t *testing.T) {
	t.Parallel()

	ocr := gemini.NewOCR(nil)

	_, err := ocr.ImageToText(context.Background(), []byte{0x89, 0x50})

	require.Error(t, err)
	assert.Equal(t, pageflat.EINTERNAL, pageflat.ErrorCode(err))
}

func TestBuildConfig_TranscriptionIsDeterministic(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.Temperature)
	assert.Zero(t, *config.Temperature)
}

func TestPrompt_AsksForLineOrientedOutput(t *testing.T) {
	t.Parallel()

	assert.Contains(t, gemini.Prompt, "one line")
	assert.Contains(t, gemini.Prompt, "no commentary")
}
