package pageflat

import "strings"

// FlattenText reduces multi-line Markdown-flavored text to a single
// space-joined line. Lines are trimmed, blank lines dropped, escape
// backslashes and leftover emphasis and heading markers stripped, and
// internal whitespace runs collapsed. Losing paragraph boundaries is
// deliberate: downstream LLM consumers receive one linear stream rather
// than layout-dependent text.
//
// Backslashes go first: converters escape Markdown-significant
// punctuation on the way out, so `[`, `_`, and `*` arrive as `\[`,
// `\_`, and `\*`. Stripping the backslash restores literal text and
// keeps bracketed tokens intact.
//
// The function is a fixed point: flattening already-flattened text
// returns it unchanged.
func FlattenText(text string) string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.ReplaceAll(line, "\\", "")
		line = strings.ReplaceAll(line, "**", "")
		line = strings.ReplaceAll(line, "*", "")
		line = strings.ReplaceAll(line, "##", "")
		line = strings.ReplaceAll(line, "#", "")
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, " ")
}

// cleanLines splits text into non-blank trimmed lines with internal
// whitespace runs collapsed to single spaces.
func cleanLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
