// Package events publishes completed-modification events. Publishing
// is best effort: failures are logged by the caller and never fail the
// user-visible operation.
package events

import (
	"context"
	"time"

	"text-assistant/models"
)

// ModificationCompleted is emitted after a record is persisted.
type ModificationCompleted struct {
	ID                string           `json:"id"`
	UserID            string           `json:"user_id,omitempty"`
	Operation         models.Operation `json:"operation"`
	AIModelUsed       string           `json:"ai_model_used"`
	ProcessingTime    float64          `json:"processing_time"`
	WordCountOriginal int              `json:"word_count_original"`
	WordCountModified int              `json:"word_count_modified"`
	Timestamp         time.Time        `json:"timestamp"`
}

// Publisher is the outbound event port.
type Publisher interface {
	Publish(ctx context.Context, event ModificationCompleted) error
	Close()
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, ModificationCompleted) error { return nil }
func (NoopPublisher) Close()                                               {}
