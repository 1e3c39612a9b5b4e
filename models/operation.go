package models

import "strings"

// Operation is one of the supported text transformations. The set is
// closed: adding one requires a prompt pair in prompts and a stub
// template in the test doubles.
type Operation string

const (
	OpSummarize Operation = "summarize"
	OpImprove   Operation = "improve"
	OpTranslate Operation = "translate"
	OpCorrect   Operation = "correct"
	OpExpand    Operation = "expand"
	OpSimplify  Operation = "simplify"
	OpAnalyze   Operation = "analyze"
)

// AllOperations lists every supported operation in a stable order.
func AllOperations() []Operation {
	return []Operation{
		OpSummarize,
		OpImprove,
		OpTranslate,
		OpCorrect,
		OpExpand,
		OpSimplify,
		OpAnalyze,
	}
}

// ParseOperation matches case-insensitively against the closed set.
func ParseOperation(s string) (Operation, bool) {
	op := Operation(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllOperations() {
		if op == known {
			return op, true
		}
	}
	return "", false
}

func (o Operation) String() string { return string(o) }

// Description returns a short human-readable summary, used by the
// operations listing endpoint.
func (o Operation) Description() string {
	switch o {
	case OpSummarize:
		return "Create a concise summary of the text"
	case OpImprove:
		return "Improve clarity, grammar, and readability"
	case OpTranslate:
		return "Translate the text to a target language"
	case OpCorrect:
		return "Correct grammar, spelling, and punctuation errors"
	case OpExpand:
		return "Expand the text with more details"
	case OpSimplify:
		return "Simplify the text to make it easier to understand"
	case OpAnalyze:
		return "Analyze the text and provide insights"
	default:
		return ""
	}
}
