package aiclient

import "fmt"

// ErrorKind classifies a failed completion round trip.
type ErrorKind string

const (
	// KindTimeout means the call breached its deadline.
	KindTimeout ErrorKind = "timeout"
	// KindTransport covers connection refused, DNS failures and other
	// errors below the HTTP layer.
	KindTransport ErrorKind = "transport"
	// KindRemoteRejected means the remote service answered non-2xx.
	KindRemoteRejected ErrorKind = "remote_rejected"
)

// CompletionError is the typed failure of a completion call. Retryable
// is true for timeouts, transport faults, and server-class rejections;
// client-class rejections are permanent.
type CompletionError struct {
	Kind       ErrorKind
	StatusCode int
	Retryable  bool
	Err        error
}

func (e *CompletionError) Error() string {
	switch e.Kind {
	case KindTimeout:
		return "completion request timed out"
	case KindRemoteRejected:
		return fmt.Sprintf("completion service returned status %d: %v", e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("completion request failed: %v", e.Err)
	}
}

func (e *CompletionError) Unwrap() error { return e.Err }
