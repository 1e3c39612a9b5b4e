// Package aiclient bridges to an OpenAI-compatible completion API and
// classifies its outcomes.
package aiclient

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"text-assistant/config"
	"text-assistant/logger"
)

// Default model parameters, overridable per call through the request
// options map.
const (
	DefaultTemperature float32 = 0.7
	DefaultMaxTokens   int     = 2000
	DefaultTopP        float32 = 1.0
)

// Params are the recognized completion tuning knobs. Unknown option
// keys are ignored, never forwarded.
type Params struct {
	Temperature float32
	MaxTokens   int
	TopP        float32
}

// DefaultParams returns the documented defaults.
func DefaultParams() Params {
	return Params{
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
		TopP:        DefaultTopP,
	}
}

// ParamsFromOptions overlays recognized keys from the opaque options
// map onto the defaults. Numeric values arrive as float64 after JSON
// decoding but ints are accepted too.
func ParamsFromOptions(options map[string]any) Params {
	p := DefaultParams()
	if options == nil {
		return p
	}
	if v, ok := asFloat(options["temperature"]); ok {
		p.Temperature = float32(v)
	}
	if v, ok := asFloat(options["max_tokens"]); ok && v > 0 {
		p.MaxTokens = int(v)
	}
	if v, ok := asFloat(options["top_p"]); ok {
		p.TopP = float32(v)
	}
	return p
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// CompletionResult is one successful completion round trip.
type CompletionResult struct {
	ModifiedText     string
	TokensUsed       int
	PromptTokens     int
	CompletionTokens int
	FinishReason     string
	ModelEcho        string

	// Confidence is a heuristic proxy for answer completeness derived
	// from the finish reason and content length. It is not a
	// calibrated probability; known limitation.
	Confidence float64
}

// Client holds the long-lived connection pool to the completion API.
// Construct once at startup, Close at shutdown.
type Client struct {
	api        *openai.Client
	httpClient *http.Client
	model      string
}

// New builds a client from config. The endpoint is the API base URL
// (the "/chat/completions" path is appended by the library), which is
// how tests point the client at a stub server.
func New(cfg config.AIConfig) *Client {
	httpClient := &http.Client{Timeout: cfg.Timeout()}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	clientConfig.HTTPClient = httpClient

	return &Client{
		api:        openai.NewClientWithConfig(clientConfig),
		httpClient: httpClient,
		model:      cfg.Model,
	}
}

// Model reports the configured model identifier.
func (c *Client) Model() string { return c.model }

// Close releases idle connections in the pool.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// Complete sends one system/user prompt pair and returns the model's
// answer. Failures come back as *CompletionError with the retryable
// flag already decided.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string, params Params) (*CompletionResult, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
		TopP:        params.TopP,
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, classify(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &CompletionError{
			Kind:      KindTransport,
			Retryable: true,
			Err:       errors.New("completion response contained no choices"),
		}
	}

	choice := resp.Choices[0]
	finishReason := string(choice.FinishReason)

	return &CompletionResult{
		ModifiedText:     strings.TrimSpace(choice.Message.Content),
		TokensUsed:       resp.Usage.TotalTokens,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		FinishReason:     finishReason,
		ModelEcho:        resp.Model,
		Confidence:       confidenceScore(finishReason, choice.Message.Content),
	}, nil
}

// HealthCheck issues a minimal completion and reports nil only on a
// successful round trip.
func (c *Client) HealthCheck(ctx context.Context) error {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: "Hello"},
		},
		MaxTokens: 5,
	}
	if _, err := c.api.CreateChatCompletion(ctx, req); err != nil {
		cerr := classify(err)
		logger.WarnWithFields("ai health check failed", logger.Fields{"error": cerr.Error()})
		return cerr
	}
	return nil
}

// confidenceScore reproduces the documented heuristic exactly: the
// content length is measured before trimming.
func confidenceScore(finishReason, content string) float64 {
	switch {
	case finishReason == "stop" && len(content) > 10:
		return 0.9
	case finishReason == "stop":
		return 0.7
	case finishReason == "length":
		return 0.6
	default:
		return 0.5
	}
}

// classify maps library errors onto the completion error taxonomy.
func classify(err error) *CompletionError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &CompletionError{
			Kind:       KindRemoteRejected,
			StatusCode: apiErr.HTTPStatusCode,
			Retryable:  apiErr.HTTPStatusCode >= http.StatusInternalServerError,
			Err:        err,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode > 0 {
		return &CompletionError{
			Kind:       KindRemoteRejected,
			StatusCode: reqErr.HTTPStatusCode,
			Retryable:  reqErr.HTTPStatusCode >= http.StatusInternalServerError,
			Err:        err,
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &CompletionError{Kind: KindTimeout, Retryable: true, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &CompletionError{Kind: KindTimeout, Retryable: true, Err: err}
	}

	return &CompletionError{Kind: KindTransport, Retryable: true, Err: err}
}
