package dto

import "time"

// ErrorResponse is the structured envelope carried by every non-2xx
// HTTP response. RequestID lets support trace a failure; IsRetryable
// tells callers whether their own backoff makes sense.
type ErrorResponse struct {
	ErrorCode   string         `json:"error_code"`
	Message     string         `json:"message"`
	Details     map[string]any `json:"details,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
	RequestID   string         `json:"request_id,omitempty"`
	ErrorType   string         `json:"error_type"`
	IsRetryable bool           `json:"is_retryable"`
}
