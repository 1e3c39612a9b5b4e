package aiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"text-assistant/aiclient"
	"text-assistant/config"
)

// stubCompletion serves an OpenAI-style chat completion response.
func stubCompletion(t *testing.T, content, finishReason string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"id": "chatcmpl-test",
			"object": "chat.completion",
			"model": "gpt-3.5-turbo-0125",
			"choices": [{
				"index": 0,
				"message": {"role": "assistant", "content": %q},
				"finish_reason": %q
			}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 34, "total_tokens": 46}
		}`, content, finishReason)
	}))
}

func stubError(status int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprintf(w, `{"error": {"message": "stub failure", "type": "server_error"}}`)
	}))
}

func newTestClient(endpoint string) *aiclient.Client {
	return aiclient.New(config.AIConfig{
		APIKey:         "test-key",
		Endpoint:       endpoint,
		Model:          "gpt-3.5-turbo",
		TimeoutSeconds: 5,
	})
}

func TestCompleteSuccess(t *testing.T) {
	srv := stubCompletion(t, "  This is the improved answer.  ", "stop")
	defer srv.Close()

	c := newTestClient(srv.URL)
	defer c.Close()

	result, err := c.Complete(context.Background(), "system", "user", aiclient.DefaultParams())
	require.NoError(t, err)

	assert.Equal(t, "This is the improved answer.", result.ModifiedText)
	assert.Equal(t, "stop", result.FinishReason)
	assert.Equal(t, 46, result.TokensUsed)
	assert.Equal(t, 12, result.PromptTokens)
	assert.Equal(t, 34, result.CompletionTokens)
	assert.Equal(t, "gpt-3.5-turbo-0125", result.ModelEcho)
}

func TestCompleteConfidenceHeuristic(t *testing.T) {
	cases := []struct {
		content      string
		finishReason string
		want         float64
	}{
		{"a reasonably long completion", "stop", 0.9},
		{"short", "stop", 0.7},
		{"ran out of tokens mid sentence", "length", 0.6},
		{"filtered", "content_filter", 0.5},
	}
	for _, tc := range cases {
		srv := stubCompletion(t, tc.content, tc.finishReason)
		c := newTestClient(srv.URL)

		result, err := c.Complete(context.Background(), "system", "user", aiclient.DefaultParams())
		require.NoError(t, err)
		assert.Equal(t, tc.want, result.Confidence, "finish=%s content=%q", tc.finishReason, tc.content)

		c.Close()
		srv.Close()
	}
}

func TestCompleteServerErrorIsRetryable(t *testing.T) {
	srv := stubError(http.StatusInternalServerError)
	defer srv.Close()

	c := newTestClient(srv.URL)
	defer c.Close()

	_, err := c.Complete(context.Background(), "system", "user", aiclient.DefaultParams())
	require.Error(t, err)

	var cerr *aiclient.CompletionError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, aiclient.KindRemoteRejected, cerr.Kind)
	assert.Equal(t, http.StatusInternalServerError, cerr.StatusCode)
	assert.True(t, cerr.Retryable)
}

func TestCompleteClientErrorIsNotRetryable(t *testing.T) {
	srv := stubError(http.StatusTooManyRequests)
	defer srv.Close()

	c := newTestClient(srv.URL)
	defer c.Close()

	_, err := c.Complete(context.Background(), "system", "user", aiclient.DefaultParams())
	require.Error(t, err)

	var cerr *aiclient.CompletionError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, aiclient.KindRemoteRejected, cerr.Kind)
	assert.False(t, cerr.Retryable)
}

func TestCompleteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	c := aiclient.New(config.AIConfig{
		APIKey: "test-key", Endpoint: srv.URL, Model: "gpt-3.5-turbo", TimeoutSeconds: 1,
	})
	defer c.Close()

	_, err := c.Complete(context.Background(), "system", "user", aiclient.DefaultParams())
	require.Error(t, err)

	var cerr *aiclient.CompletionError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, aiclient.KindTimeout, cerr.Kind)
	assert.True(t, cerr.Retryable)
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": "x", "object": "chat.completion", "choices": []}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	defer c.Close()

	_, err := c.Complete(context.Background(), "system", "user", aiclient.DefaultParams())
	require.Error(t, err)

	var cerr *aiclient.CompletionError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, aiclient.KindTransport, cerr.Kind)
	assert.True(t, cerr.Retryable)
}

func TestParamsFromOptions(t *testing.T) {
	p := aiclient.ParamsFromOptions(nil)
	assert.Equal(t, aiclient.DefaultParams(), p)

	// JSON-decoded numbers arrive as float64.
	p = aiclient.ParamsFromOptions(map[string]any{
		"temperature": 0.2,
		"max_tokens":  float64(500),
		"top_p":       0.5,
		"mystery":     "ignored",
	})
	assert.Equal(t, float32(0.2), p.Temperature)
	assert.Equal(t, 500, p.MaxTokens)
	assert.Equal(t, float32(0.5), p.TopP)

	p = aiclient.ParamsFromOptions(map[string]any{"max_tokens": -5})
	assert.Equal(t, aiclient.DefaultMaxTokens, p.MaxTokens)
}

func TestAnalyzeParsesModelJSON(t *testing.T) {
	payload := map[string]any{
		"word_count":      42,
		"sentence_count":  3,
		"paragraph_count": 1,
		"reading_level":   "intermediate",
		"sentiment":       "positive",
		"key_topics":      []string{"testing", "go"},
		"language":        "en",
		"tone":            "formal",
		"summary":         "A text about testing.",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	srv := stubCompletion(t, string(body), "stop")
	defer srv.Close()

	c := newTestClient(srv.URL)
	defer c.Close()

	got := c.Analyze(context.Background(), "some text to analyze")
	assert.Equal(t, aiclient.SourceAIDerived, got.Source)
	assert.Equal(t, 42, got.WordCount)
	assert.Equal(t, "positive", got.Sentiment)
	assert.Equal(t, []string{"testing", "go"}, got.KeyTopics)
}

func TestAnalyzeFallsBackOnBadJSON(t *testing.T) {
	srv := stubCompletion(t, "I cannot answer in JSON, sorry.", "stop")
	defer srv.Close()

	c := newTestClient(srv.URL)
	defer c.Close()

	got := c.Analyze(context.Background(), "First sentence. Second sentence.")
	assert.Equal(t, aiclient.SourceLocalFallback, got.Source)
	assert.Equal(t, 4, got.WordCount)
	assert.Equal(t, 2, got.SentenceCount)
	assert.Equal(t, aiclient.UnknownSentinel, got.Sentiment)
	assert.Equal(t, aiclient.UnknownSentinel, got.Language)
}

func TestAnalyzeFallsBackOnCallFailure(t *testing.T) {
	srv := stubError(http.StatusBadGateway)
	defer srv.Close()

	c := newTestClient(srv.URL)
	defer c.Close()

	got := c.Analyze(context.Background(), "some text")
	assert.Equal(t, aiclient.SourceLocalFallback, got.Source)
}

func TestBasicAnalysisTruncatesSummary(t *testing.T) {
	long := strings.Repeat("word ", 40)
	got := aiclient.BasicAnalysis(long)
	assert.Equal(t, aiclient.SourceLocalFallback, got.Source)
	assert.Equal(t, 40, got.WordCount)
	assert.True(t, strings.HasSuffix(got.Summary, "..."))
	assert.LessOrEqual(t, len([]rune(got.Summary)), 103)
}

func TestHealthCheck(t *testing.T) {
	srv := stubCompletion(t, "Hi", "stop")
	defer srv.Close()

	c := newTestClient(srv.URL)
	defer c.Close()
	assert.NoError(t, c.HealthCheck(context.Background()))

	bad := stubError(http.StatusServiceUnavailable)
	defer bad.Close()

	cBad := newTestClient(bad.URL)
	defer cBad.Close()
	assert.Error(t, cBad.HealthCheck(context.Background()))
}
