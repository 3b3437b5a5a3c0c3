package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	stdhttp "net/http"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pageflat"
	"github.com/fwojciec/pageflat/extract"
	"github.com/fwojciec/pageflat/fs"
	"github.com/fwojciec/pageflat/gemini"
	"github.com/fwojciec/pageflat/goquery"
	"github.com/fwojciec/pageflat/htmltomarkdown"
	pfhttp "github.com/fwojciec/pageflat/http"
	pfslog "github.com/fwojciec/pageflat/slog"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Getenv resolves environment variables; injectable for tests.
	Getenv func(string) string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Getenv: os.Getenv}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pageflat"),
		kong.Description("Flatten a Confluence page into LLM-ready text"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	creds, err := extract.ResolveCredentials(cli.Email, cli.APIToken, m.Getenv)
	if err != nil {
		return m.fail(cli, stdout, stderr, err)
	}

	baseURL, err := pageflat.BaseURL(cli.URL)
	if err != nil {
		return m.fail(cli, stdout, stderr, err)
	}

	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	clientOpts := []pfhttp.Option{
		pfhttp.WithHTTPClient(&stdhttp.Client{Timeout: cli.Timeout}),
	}
	if cli.RateLimit > 0 {
		clientOpts = append(clientOpts, pfhttp.WithRateLimit(cli.RateLimit))
	}
	client := pfhttp.NewClient(baseURL, creds.Email, creds.APIToken, clientOpts...)

	var service pageflat.PageService = client
	var downloader pageflat.Downloader = client
	if cli.Debug {
		service = pfslog.NewLoggingService(service, logger)
		downloader = pfslog.NewLoggingDownloader(downloader, logger)
	}

	ocr, err := m.newOCR(ctx, cli, stderr)
	if err != nil {
		return err
	}

	converter := htmltomarkdown.NewConverter()

	extractor := &extract.Extractor{
		Service: service,
		Normalizer: &goquery.Normalizer{
			Downloader:  downloader,
			OCR:         ocr,
			Converter:   converter,
			BaseURL:     baseURL,
			Concurrency: cli.Concurrency,
			Logger:      logger,
		},
		Converter: converter,
		Writer:    fs.NewWriter(),
		Logger:    logger,
	}

	result, err := extractor.Extract(ctx, extract.Request{
		URL:             cli.URL,
		IncludeComments: cli.Comments,
		OutputFile:      cli.Output,
	})
	if err != nil {
		return m.fail(cli, stdout, stderr, err)
	}

	if cli.JSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprint(stdout, fs.FormatExport(result))
	if result.OutputFile != "" {
		fmt.Fprintf(stderr, "saved to %s\n", result.OutputFile)
	}
	return nil
}

// newOCR builds the Gemini-backed OCR engine. Without a GEMINI_API_KEY the
// pipeline still runs; embedded images degrade to unprocessable placeholders.
func (m *Main) newOCR(ctx context.Context, cli *CLI, stderr io.Writer) (*gemini.OCR, error) {
	var opts []gemini.Option
	if cli.Model != "" {
		opts = append(opts, gemini.WithModel(cli.Model))
	}

	apiKey := m.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY not set; embedded images will not be transcribed")
		return gemini.NewOCR(nil, opts...), nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	return gemini.NewOCR(client, opts...), nil
}

// fail reports a terminal error in the mode the caller asked for: a JSON
// error envelope on stdout, or a plain message on stderr.
func (m *Main) fail(cli *CLI, stdout, stderr io.Writer, err error) error {
	if cli.JSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(pageflat.ErrorResult(err))
	} else {
		fmt.Fprintf(stderr, "error: %s\n", pageflat.ErrorMessage(err))
	}
	return err
}
