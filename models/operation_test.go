package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOperation(t *testing.T) {
	op, ok := ParseOperation("summarize")
	assert.True(t, ok)
	assert.Equal(t, OpSummarize, op)

	op, ok = ParseOperation("  Translate ")
	assert.True(t, ok)
	assert.Equal(t, OpTranslate, op)

	_, ok = ParseOperation("reverse")
	assert.False(t, ok)

	_, ok = ParseOperation("")
	assert.False(t, ok)
}

func TestOperationDescriptions(t *testing.T) {
	for _, op := range AllOperations() {
		assert.NotEmpty(t, op.Description(), "operation %s has no description", op)
	}
}

func TestSupportedLanguages(t *testing.T) {
	assert.True(t, IsSupportedLanguage("es"))
	assert.True(t, IsSupportedLanguage("zh"))
	assert.False(t, IsSupportedLanguage("xx"))
	assert.False(t, IsSupportedLanguage(""))

	assert.Equal(t, "Spanish", LanguageName("es"))
	// Unknown codes fall back to the code itself.
	assert.Equal(t, "xx", LanguageName("xx"))
}
