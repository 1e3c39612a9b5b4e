package dto

import (
	"time"

	"text-assistant/models"
)

// ModificationResponse is the success body of POST /text/modify.
type ModificationResponse struct {
	OriginalText      string           `json:"original_text"`
	ModifiedText      string           `json:"modified_text"`
	Operation         models.Operation `json:"operation"`
	Timestamp         time.Time        `json:"timestamp"`
	ProcessingTime    float64          `json:"processing_time"`
	UserID            string           `json:"user_id,omitempty"`
	AIModelUsed       string           `json:"ai_model_used,omitempty"`
	ConfidenceScore   *float64         `json:"confidence_score,omitempty"`
	WordCountOriginal int              `json:"word_count_original"`
	WordCountModified int              `json:"word_count_modified"`
	Metadata          map[string]any   `json:"metadata,omitempty"`
}

// ModificationSummary is one history entry. Texts are truncated to 100
// characters; list views never carry full text.
type ModificationSummary struct {
	ID                string           `json:"id"`
	OriginalText      string           `json:"original_text"`
	ModifiedText      string           `json:"modified_text"`
	Operation         models.Operation `json:"operation"`
	Timestamp         time.Time        `json:"timestamp"`
	ProcessingTime    float64          `json:"processing_time"`
	AIModelUsed       string           `json:"ai_model_used"`
	ConfidenceScore   *float64         `json:"confidence_score,omitempty"`
	WordCountOriginal int              `json:"word_count_original"`
	WordCountModified int              `json:"word_count_modified"`
}

// HistoryResponse is a page of a user's modification history.
type HistoryResponse struct {
	UserID             string                `json:"user_id"`
	TotalModifications int64                 `json:"total_modifications"`
	Modifications      []ModificationSummary `json:"modifications"`
	Page               int                   `json:"page"`
	PageSize           int                   `json:"page_size"`
	TotalPages         int                   `json:"total_pages"`
}

// UserStatsResponse aggregates a user's history. A user without records
// gets the zero-shaped value, not an error.
type UserStatsResponse struct {
	UserID              string           `json:"user_id"`
	TotalModifications  int64            `json:"total_modifications"`
	TotalProcessingTime float64          `json:"total_processing_time"`
	AvgProcessingTime   float64          `json:"avg_processing_time"`
	TotalWordsProcessed int64            `json:"total_words_processed"`
	OperationsBreakdown map[string]int64 `json:"operations_breakdown"`
	FirstModification   *time.Time       `json:"first_modification"`
	LastModification    *time.Time       `json:"last_modification"`
}

// BackgroundResponse is the JSON written back on the loopback socket.
type BackgroundResponse struct {
	Success        bool      `json:"success"`
	ModifiedText   string    `json:"modified_text,omitempty"`
	ErrorMessage   string    `json:"error_message,omitempty"`
	ProcessingTime float64   `json:"processing_time"`
	Timestamp      time.Time `json:"timestamp"`
}

// OperationInfo describes one supported operation for the listing
// endpoint.
type OperationInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// OperationsResponse lists the closed operation set.
type OperationsResponse struct {
	Operations []OperationInfo `json:"operations"`
}

// ComponentHealth reports one dependency inside the health response.
type ComponentHealth struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
	Version   string          `json:"version"`
	Uptime    float64         `json:"uptime"`
	Database  ComponentHealth `json:"database"`
	AIService ComponentHealth `json:"ai_service"`
}
