package main

import "time"

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL         string        `arg:"" required:"" help:"Confluence page URL to extract"`
	Email       string        `help:"Confluence account email (falls back to CONFLUENCE_EMAIL)"`
	APIToken    string        `help:"Confluence API token (falls back to CONFLUENCE_API_TOKEN)"`
	Comments    bool          `short:"c" help:"Include page comments and discussions"`
	Output      string        `short:"o" help:"Also write the extracted page to this file"`
	JSON        bool          `help:"Emit the result envelope as JSON on stdout"`
	Debug       bool          `help:"Enable debug logging on stderr"`
	Timeout     time.Duration `default:"30s" help:"HTTP timeout per request"`
	Concurrency int           `default:"3" help:"Concurrent image download limit"`
	RateLimit   float64       `help:"Cap outgoing API requests per second (0 = unlimited)"`
	Model       string        `help:"Gemini model for image transcription"`
}
