package pageflat

import (
	"strconv"
	"strings"
)

// Comment represents one page comment. Reply nesting is one level deep:
// Confluence models deeper threads as flat reply lists attached to each
// top-level comment, and the fetch layer returns them already interleaved
// (each top-level comment immediately followed by its own replies).
type Comment struct {
	ID       string
	Author   string
	Created  string // raw timestamp string from the API, not parsed
	BodyHTML string // storage-format body as returned by the API
	Body     string // flattened plain text, filled in by the orchestrator
	IsReply  bool
	ParentID string

	// Context describes what content a top-level comment is attached to,
	// derived from the comment's nearest ancestor title. Empty means the
	// main page content.
	Context string
}

const replyIndent = "    "

// FormatCommentThread renders an ordered comment list as a deterministic,
// indented, numbered thread. Top-level comments are labeled COMMENT <n>;
// replies are indented one level and labeled REPLY <n>, with the reply
// counter restarting at each new top-level comment. Returns an empty string
// for an empty list so callers can omit the section header entirely.
func FormatCommentThread(comments []*Comment) string {
	if len(comments) == 0 {
		return ""
	}

	var b strings.Builder
	topIndex, replyIndex := 0, 0

	for _, c := range comments {
		if c.IsReply {
			replyIndex++
			writeComment(&b, c, replyIndent, "REPLY", replyIndex, false)
			continue
		}
		topIndex++
		replyIndex = 0
		writeComment(&b, c, "", "COMMENT", topIndex, true)
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeComment(b *strings.Builder, c *Comment, indent, label string, n int, withContext bool) {
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString(indent)
	b.WriteString(label)
	b.WriteString(" ")
	b.WriteString(strconv.Itoa(n))
	b.WriteString(":\n")

	b.WriteString(indent)
	b.WriteString("Author: ")
	b.WriteString(c.Author)
	if c.Created != "" {
		b.WriteString(" | Date: ")
		b.WriteString(c.Created)
	}
	b.WriteString("\n")

	if withContext {
		context := c.Context
		if context == "" {
			context = "main page content"
		}
		b.WriteString(indent)
		b.WriteString("Context: Re: ")
		b.WriteString(context)
		b.WriteString("\n")
	}

	b.WriteString(indent)
	b.WriteString(c.Body)
	b.WriteString("\n")
}
