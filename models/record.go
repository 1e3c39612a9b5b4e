package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ModificationRecord is the audit row for one completed modification.
// Collection: modification_records
//
// Records are written exactly once by the pipeline and never updated;
// the retention sweep is the only delete path.
type ModificationRecord struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	UserID       string    `bson:"user_id,omitempty" json:"user_id,omitempty"`
	OriginalText string    `bson:"original_text" json:"original_text"`
	ModifiedText string    `bson:"modified_text" json:"modified_text"`
	Operation    Operation `bson:"operation" json:"operation"`

	Timestamp      time.Time `bson:"timestamp" json:"timestamp"`
	ProcessingTime float64   `bson:"processing_time" json:"processing_time"`
	AIModelUsed    string    `bson:"ai_model_used" json:"ai_model_used"`

	ConfidenceScore   *float64 `bson:"confidence_score,omitempty" json:"confidence_score,omitempty"`
	WordCountOriginal int      `bson:"word_count_original" json:"word_count_original"`
	WordCountModified int      `bson:"word_count_modified" json:"word_count_modified"`

	// Request context carried through from the caller.
	SourceApplication  string         `bson:"source_application,omitempty" json:"source_application,omitempty"`
	WindowTitle        string         `bson:"window_title,omitempty" json:"window_title,omitempty"`
	TargetLanguage     string         `bson:"target_language,omitempty" json:"target_language,omitempty"`
	PreserveFormatting bool           `bson:"preserve_formatting" json:"preserve_formatting"`
	Options            map[string]any `bson:"options,omitempty" json:"options,omitempty"`
	Metadata           map[string]any `bson:"metadata,omitempty" json:"metadata,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
