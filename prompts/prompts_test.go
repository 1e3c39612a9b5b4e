package prompts_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"text-assistant/models"
	"text-assistant/prompts"
)

func TestBuildIsDeterministic(t *testing.T) {
	s1, u1 := prompts.Build("some text", models.OpSummarize, "")
	s2, u2 := prompts.Build("some text", models.OpSummarize, "")
	assert.Equal(t, s1, s2)
	assert.Equal(t, u1, u2)
}

func TestBuildEmbedsText(t *testing.T) {
	for _, op := range models.AllOperations() {
		_, user := prompts.Build("UNIQUE-MARKER", op, "es")
		assert.Contains(t, user, "UNIQUE-MARKER", "operation %s", op)
	}
}

func TestBuildTranslateResolvesLanguageName(t *testing.T) {
	_, user := prompts.Build("hola", models.OpTranslate, "es")
	assert.Contains(t, user, "translate the following text to Spanish")

	// Unknown codes pass through rather than failing.
	_, user = prompts.Build("hola", models.OpTranslate, "xx")
	assert.Contains(t, user, "translate the following text to xx")

	// Missing target defaults to English.
	_, user = prompts.Build("hola", models.OpTranslate, "")
	assert.Contains(t, user, "translate the following text to English")
}

func TestBuildDistinctSystemPrompts(t *testing.T) {
	seen := map[string]models.Operation{}
	for _, op := range models.AllOperations() {
		system, _ := prompts.Build("text", op, "es")
		if prev, dup := seen[system]; dup {
			t.Fatalf("operations %s and %s share a system prompt", prev, op)
		}
		seen[system] = op
	}
}

func TestBuildUnknownOperationFallsBack(t *testing.T) {
	system, user := prompts.Build("text", models.Operation("mystery"), "")
	assert.Contains(t, system, "helpful AI assistant")
	assert.Contains(t, user, "process the following text")
}

func TestBuildAnalysis(t *testing.T) {
	user := prompts.BuildAnalysis("analyze me")
	assert.Contains(t, user, `"analyze me"`)
	for _, key := range []string{"word_count", "sentence_count", "sentiment", "key_topics", "summary"} {
		assert.True(t, strings.Contains(user, key), "missing %s", key)
	}
}
