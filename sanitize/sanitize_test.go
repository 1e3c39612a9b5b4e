package sanitize_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"text-assistant/sanitize"
)

func TestCleanStripsMarkup(t *testing.T) {
	assert.Equal(t, "Hello world", sanitize.Clean("<p>Hello <b>world</b></p>"))
	assert.Equal(t, "a & b", sanitize.Clean("a &amp; b"))
	assert.Equal(t, "plain text stays put", sanitize.Clean("plain text stays put"))
}

func TestCleanNormalizesWhitespace(t *testing.T) {
	assert.Equal(t, "one two", sanitize.Clean("one \t  two"))
	assert.Equal(t, "line1\nline2", sanitize.Clean("line1\r\nline2"))
	assert.Equal(t, "para1\n\npara2", sanitize.Clean("para1\n\n\n\n\npara2"))
	assert.Equal(t, "trimmed", sanitize.Clean("   trimmed \n "))
}

func TestCleanDropsControlCharacters(t *testing.T) {
	assert.Equal(t, "ab", sanitize.Clean("a\x00\x07b"))
	// Newline and tab survive the control sweep; the tab then collapses
	// into the surrounding spacing.
	assert.Equal(t, "a b", sanitize.Clean("a\tb"))
}

func TestCleanEmptyInput(t *testing.T) {
	assert.Equal(t, "", sanitize.Clean(""))
	assert.Equal(t, "", sanitize.Clean("   \n\t  "))
	assert.Equal(t, "", sanitize.Clean("<div><span></span></div>"))
}

func TestCleanIsIdempotent(t *testing.T) {
	inputs := []string{
		"<p>Hello <b>world</b></p>",
		"one \t  two\r\nthree\n\n\n\nfour",
		"a &amp; b &lt;c&gt;",
		"   plain   ",
	}
	for _, in := range inputs {
		once := sanitize.Clean(in)
		assert.Equal(t, once, sanitize.Clean(once), "input %q", in)
	}
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 3, sanitize.WordCount("a b  c"))
	assert.Equal(t, 0, sanitize.WordCount(""))
	assert.Equal(t, 0, sanitize.WordCount("   "))
	assert.Equal(t, 2, sanitize.WordCount("hello\nworld"))
}

func TestSentenceCount(t *testing.T) {
	assert.Equal(t, 2, sanitize.SentenceCount("First. Second!"))
	assert.Equal(t, 1, sanitize.SentenceCount("No terminator"))
	assert.Equal(t, 2, sanitize.SentenceCount("One... Two?"))
	assert.Equal(t, 0, sanitize.SentenceCount(""))
}

func TestParagraphCount(t *testing.T) {
	assert.Equal(t, 2, sanitize.ParagraphCount("para1\n\npara2"))
	assert.Equal(t, 1, sanitize.ParagraphCount("single line"))
	assert.Equal(t, 2, sanitize.ParagraphCount("a\n \t\nb"))
	assert.Equal(t, 0, sanitize.ParagraphCount(""))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", sanitize.Truncate("short", 100))

	long := strings.Repeat("x", 150)
	got := sanitize.Truncate(long, 100)
	assert.Equal(t, 103, len(got))
	assert.True(t, strings.HasSuffix(got, "..."))

	exact := strings.Repeat("y", 100)
	assert.Equal(t, exact, sanitize.Truncate(exact, 100))
}
