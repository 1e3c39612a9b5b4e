package services

import (
	"fmt"

	"text-assistant/models"
)

// ProcessingErrorKind tells the transport layer which failure class it
// is shaping.
type ProcessingErrorKind string

const (
	// KindEmptyInput means sanitization left nothing to process; the
	// remote model is never called with empty input.
	KindEmptyInput ProcessingErrorKind = "empty_input"
	// KindCompletion wraps a failure of the remote completion call.
	KindCompletion ProcessingErrorKind = "completion"
	// KindInternal covers everything unexpected. Fails open toward
	// "caller may retry".
	KindInternal ProcessingErrorKind = "internal"
)

// ProcessingError is the pipeline-level failure. It preserves the
// operation name and the retryable flag of its cause.
type ProcessingError struct {
	Op        models.Operation
	Kind      ProcessingErrorKind
	Retryable bool
	Err       error
}

func (e *ProcessingError) Error() string {
	switch e.Kind {
	case KindEmptyInput:
		return "text is empty after sanitization"
	case KindCompletion:
		return fmt.Sprintf("text processing failed for operation %q: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("unexpected processing failure for operation %q: %v", e.Op, e.Err)
	}
}

func (e *ProcessingError) Unwrap() error { return e.Err }
