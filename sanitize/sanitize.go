// Package sanitize normalizes raw caller text before validation, word
// counting, and any completion call.
package sanitize

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	horizontalWS  = regexp.MustCompile(`[ \t]+`)
	tooManyBreaks = regexp.MustCompile(`\n{3,}`)
)

// Clean strips markup tags, collapses whitespace runs to single spaces,
// drops control characters except newline and tab, caps consecutive
// newlines at two, and trims. Empty input yields empty output; Clean
// never fails and is idempotent on its own output.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	t := stripMarkup(text)
	t = strings.ReplaceAll(t, "\r\n", "\n")
	t = strings.ReplaceAll(t, "\r", "\n")
	t = strings.Map(dropControl, t)
	t = horizontalWS.ReplaceAllString(t, " ")
	t = tooManyBreaks.ReplaceAllString(t, "\n\n")
	return strings.TrimSpace(t)
}

// stripMarkup removes tags and decodes entities by walking the HTML
// token stream and keeping only text nodes. Plain text passes through
// unchanged.
func stripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	tz := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	b.Grow(len(s))
	for {
		switch tz.Next() {
		case html.ErrorToken:
			// The tokenizer reports io.EOF here when the input ends.
			return b.String()
		case html.TextToken:
			b.Write(tz.Text())
		}
	}
}

// dropControl removes control characters except newline and tab.
func dropControl(r rune) rune {
	if r == '\n' || r == '\t' {
		return r
	}
	if r < 0x20 || r == 0x7f {
		return -1
	}
	return r
}

// WordCount tokenizes by whitespace runs, so "a b  c" counts three.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// SentenceCount splits on sentence terminators and discards empty
// segments. Used by the local analysis fallback.
func SentenceCount(text string) int {
	n := 0
	for _, seg := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		if strings.TrimSpace(seg) != "" {
			n++
		}
	}
	return n
}

var blankLine = regexp.MustCompile(`\n[ \t]*\n`)

// ParagraphCount splits on blank lines and discards empty segments.
func ParagraphCount(text string) int {
	n := 0
	for _, seg := range blankLine.Split(text, -1) {
		if strings.TrimSpace(seg) != "" {
			n++
		}
	}
	return n
}

// Truncate shortens s to max runes with an ellipsis suffix when longer.
// History summaries never return full text.
func Truncate(s string, max int) string {
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	return string(rs[:max]) + "..."
}
