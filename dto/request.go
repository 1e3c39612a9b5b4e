package dto

// ModificationRequest is the JSON body accepted by POST /text/modify.
// Operation stays a raw string here so the validator can report an
// unknown value instead of failing JSON binding.
type ModificationRequest struct {
	Text               string         `json:"text"`
	Operation          string         `json:"operation"`
	UserID             string         `json:"user_id,omitempty"`
	Options            map[string]any `json:"options,omitempty"`
	TargetLanguage     string         `json:"target_language,omitempty"`
	PreserveFormatting *bool          `json:"preserve_formatting,omitempty"`

	// Desktop source metadata, populated by the loopback listener.
	SourceApplication string `json:"source_application,omitempty"`
	WindowTitle       string `json:"window_title,omitempty"`
}

// PreserveFormattingOrDefault defaults to true when the field is absent.
func (r ModificationRequest) PreserveFormattingOrDefault() bool {
	if r.PreserveFormatting == nil {
		return true
	}
	return *r.PreserveFormatting
}

// BackgroundRequest is the JSON accepted on the loopback socket. It is
// a subset of ModificationRequest plus desktop source metadata.
type BackgroundRequest struct {
	Text              string         `json:"text"`
	Operation         string         `json:"operation"`
	SourceApplication string         `json:"source_application,omitempty"`
	WindowTitle       string         `json:"window_title,omitempty"`
	UserID            string         `json:"user_id,omitempty"`
	Options           map[string]any `json:"options,omitempty"`
}

// AnalysisRequest is the JSON body accepted by POST /text/analyze.
type AnalysisRequest struct {
	Text   string `json:"text"`
	UserID string `json:"user_id,omitempty"`
}
