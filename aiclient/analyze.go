package aiclient

import (
	"context"
	"encoding/json"

	openai "github.com/sashabaranov/go-openai"

	"text-assistant/logger"
	"text-assistant/prompts"
	"text-assistant/sanitize"
)

// AnalysisSource tags which path produced an analysis.
type AnalysisSource string

const (
	SourceAIDerived     AnalysisSource = "ai"
	SourceLocalFallback AnalysisSource = "local_fallback"
)

// UnknownSentinel marks fields the local fallback refuses to guess.
const UnknownSentinel = "unknown"

// AnalysisResult is a structured text analysis. Source distinguishes a
// model-produced analysis from the local fallback.
type AnalysisResult struct {
	Source         AnalysisSource `json:"source"`
	WordCount      int            `json:"word_count"`
	SentenceCount  int            `json:"sentence_count"`
	ParagraphCount int            `json:"paragraph_count"`
	CharacterCount int            `json:"character_count,omitempty"`
	ReadingLevel   string         `json:"reading_level"`
	Sentiment      string         `json:"sentiment"`
	KeyTopics      []string       `json:"key_topics"`
	Language       string         `json:"language"`
	Tone           string         `json:"tone"`
	Summary        string         `json:"summary"`
}

// analysisPayload is the JSON shape requested from the model.
type analysisPayload struct {
	WordCount      int      `json:"word_count"`
	SentenceCount  int      `json:"sentence_count"`
	ParagraphCount int      `json:"paragraph_count"`
	ReadingLevel   string   `json:"reading_level"`
	Sentiment      string   `json:"sentiment"`
	KeyTopics      []string `json:"key_topics"`
	Language       string   `json:"language"`
	Tone           string   `json:"tone"`
	Summary        string   `json:"summary"`
}

// Analyze asks the model for a structured analysis of the text. When
// the call fails or the answer is not parseable JSON it degrades to a
// local basic analysis; it never returns an error.
func (c *Client) Analyze(ctx context.Context, text string) AnalysisResult {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompts.AnalysisSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompts.BuildAnalysis(text)},
		},
		Temperature: 0.3,
		MaxTokens:   1000,
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil || len(resp.Choices) == 0 {
		if err != nil {
			logger.WarnWithFields("ai text analysis failed, using basic analysis", logger.Fields{"error": err.Error()})
		}
		return BasicAnalysis(text)
	}

	var payload analysisPayload
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &payload); err != nil {
		logger.WarnWithFields("ai analysis was not valid JSON, using basic analysis", logger.Fields{"error": err.Error()})
		return BasicAnalysis(text)
	}

	topics := payload.KeyTopics
	if topics == nil {
		topics = []string{}
	}
	return AnalysisResult{
		Source:         SourceAIDerived,
		WordCount:      payload.WordCount,
		SentenceCount:  payload.SentenceCount,
		ParagraphCount: payload.ParagraphCount,
		ReadingLevel:   payload.ReadingLevel,
		Sentiment:      payload.Sentiment,
		KeyTopics:      topics,
		Language:       payload.Language,
		Tone:           payload.Tone,
		Summary:        payload.Summary,
	}
}

// BasicAnalysis computes counts locally and marks everything the model
// would have judged with explicit unknown sentinels. It never fails.
func BasicAnalysis(text string) AnalysisResult {
	return AnalysisResult{
		Source:         SourceLocalFallback,
		WordCount:      sanitize.WordCount(text),
		SentenceCount:  sanitize.SentenceCount(text),
		ParagraphCount: sanitize.ParagraphCount(text),
		CharacterCount: len(text),
		ReadingLevel:   UnknownSentinel,
		Sentiment:      UnknownSentinel,
		KeyTopics:      []string{},
		Language:       UnknownSentinel,
		Tone:           UnknownSentinel,
		Summary:        sanitize.Truncate(text, 100),
	}
}
