// Package prompts maps each operation to its system and user prompt.
package prompts

import (
	"fmt"

	"text-assistant/models"
)

const genericSystemPrompt = "You are a helpful AI assistant that processes text according to user requests."

var systemPrompts = map[models.Operation]string{
	models.OpSummarize: "You are an expert at creating concise, accurate summaries that capture the key points of any text.",
	models.OpImprove:   "You are an expert editor who improves text clarity, grammar, and readability while preserving the original meaning and tone.",
	models.OpTranslate: "You are an expert translator who provides accurate, natural translations while preserving context and meaning.",
	models.OpCorrect:   "You are an expert proofreader who corrects grammar, spelling, and punctuation errors while maintaining the original style.",
	models.OpExpand:    "You are an expert writer who can elaborate on ideas with relevant details and examples while maintaining coherence.",
	models.OpSimplify:  "You are an expert at making complex text easier to understand while preserving all important information.",
	models.OpAnalyze:   "You are an expert text analyst who provides detailed insights about content, structure, and meaning.",
}

// Build returns the system and user prompt for an operation. It is
// total over well-formed requests: an operation outside the closed set
// (which validation already rejects) falls back to a generic prompt
// instead of failing. For translate, targetLanguage is resolved to its
// display name so the prompt is deterministic.
func Build(text string, op models.Operation, targetLanguage string) (systemPrompt, userPrompt string) {
	systemPrompt, ok := systemPrompts[op]
	if !ok {
		systemPrompt = genericSystemPrompt
	}

	switch op {
	case models.OpSummarize:
		userPrompt = fmt.Sprintf("Please summarize the following text concisely:\n\n%s", text)
	case models.OpImprove:
		userPrompt = fmt.Sprintf("Please improve the following text for clarity, grammar, and readability:\n\n%s", text)
	case models.OpTranslate:
		lang := "English"
		if targetLanguage != "" {
			lang = models.LanguageName(targetLanguage)
		}
		userPrompt = fmt.Sprintf("Please translate the following text to %s:\n\n%s", lang, text)
	case models.OpCorrect:
		userPrompt = fmt.Sprintf("Please correct any grammar, spelling, and punctuation errors in the following text:\n\n%s", text)
	case models.OpExpand:
		userPrompt = fmt.Sprintf("Please expand and elaborate on the following text with more details:\n\n%s", text)
	case models.OpSimplify:
		userPrompt = fmt.Sprintf("Please simplify the following text to make it easier to understand:\n\n%s", text)
	case models.OpAnalyze:
		userPrompt = fmt.Sprintf("Please analyze the following text and provide insights:\n\n%s", text)
	default:
		userPrompt = fmt.Sprintf("Please process the following text:\n\n%s", text)
	}

	return systemPrompt, userPrompt
}

// AnalysisSystemPrompt instructs the model to answer structured text
// analysis as JSON.
const AnalysisSystemPrompt = "You are a text analysis expert. Provide accurate analysis in the requested JSON format."

// BuildAnalysis returns the user prompt for the structured analysis
// call.
func BuildAnalysis(text string) string {
	return fmt.Sprintf(`Analyze the following text and provide insights:

Text: %q

Please provide analysis in the following JSON format:
{
    "word_count": <number>,
    "sentence_count": <number>,
    "paragraph_count": <number>,
    "reading_level": "<level>",
    "sentiment": "<positive/negative/neutral>",
    "key_topics": ["<topic1>", "<topic2>"],
    "language": "<detected_language>",
    "tone": "<formal/informal/casual>",
    "summary": "<brief_summary>"
}`, text)
}
