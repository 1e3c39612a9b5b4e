// Package validate performs structural request validation. Every
// function is pure: it collects the full list of violations so callers
// can report all problems in one round trip.
package validate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"text-assistant/dto"
	"text-assistant/models"
)

const (
	MaxTextLength        = 10000
	MaxUserIDLength      = 100
	MaxSourceAppLength   = 100
	MaxWindowTitleLength = 200
	MaxOptionsSize       = 1000
	MaxPageSize          = 100
)

var invalidUserIDChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// ValidateModification checks a modify request against all field and
// cross-field rules. An empty slice means the request is valid.
func ValidateModification(req dto.ModificationRequest) []string {
	var errs []string

	errs = append(errs, validateText(req.Text)...)

	op, opKnown := validateOperation(req.Operation, &errs)

	if req.UserID != "" {
		if msg := userIDError(req.UserID); msg != "" {
			errs = append(errs, msg)
		}
	}

	if req.TargetLanguage != "" && !models.IsSupportedLanguage(req.TargetLanguage) {
		errs = append(errs, "Invalid target language code")
	}
	if opKnown && op == models.OpTranslate && req.TargetLanguage == "" {
		errs = append(errs, "Target language is required for translation operations")
	}

	errs = append(errs, validateOptions(req.Options)...)

	return errs
}

// ValidateBackground checks the loopback-socket request subset.
func ValidateBackground(req dto.BackgroundRequest) []string {
	var errs []string

	errs = append(errs, validateText(req.Text)...)
	validateOperation(req.Operation, &errs)

	optional := []struct {
		name  string
		value string
		max   int
	}{
		{"source_application", req.SourceApplication, MaxSourceAppLength},
		{"window_title", req.WindowTitle, MaxWindowTitleLength},
		{"user_id", req.UserID, MaxUserIDLength},
	}
	for _, f := range optional {
		if f.value != "" && utf8.RuneCountInString(f.value) > f.max {
			errs = append(errs, fmt.Sprintf("%s cannot exceed %d characters", f.name, f.max))
		}
	}

	errs = append(errs, validateOptions(req.Options)...)

	return errs
}

// ValidateAnalysis checks an analyze request.
func ValidateAnalysis(text, userID string) []string {
	var errs []string
	errs = append(errs, validateText(text)...)
	if userID != "" {
		if msg := userIDError(userID); msg != "" {
			errs = append(errs, msg)
		}
	}
	return errs
}

// ValidatePagination bounds page to >=1 and pageSize to [1,100].
func ValidatePagination(page, pageSize int) []string {
	var errs []string
	if page < 1 {
		errs = append(errs, "Page number must be >= 1")
	}
	if pageSize < 1 {
		errs = append(errs, "Page size must be >= 1")
	}
	if pageSize > MaxPageSize {
		errs = append(errs, fmt.Sprintf("Page size cannot exceed %d", MaxPageSize))
	}
	return errs
}

// ValidateUserID checks a path-level user identifier.
func ValidateUserID(userID string) (bool, string) {
	if strings.TrimSpace(userID) == "" {
		return false, "User ID cannot be empty"
	}
	if msg := userIDError(userID); msg != "" {
		return false, msg
	}
	return true, ""
}

// ValidateOperationFilter parses an optional operation filter. Empty
// input is valid and yields no filter.
func ValidateOperationFilter(operation string) (models.Operation, bool, string) {
	if operation == "" {
		return "", true, ""
	}
	op, ok := models.ParseOperation(operation)
	if !ok {
		return "", false, invalidOperationMessage()
	}
	return op, true, ""
}

func validateText(text string) []string {
	if text == "" {
		return []string{"Missing required field: text"}
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return []string{"Text cannot be empty"}
	}
	if utf8.RuneCountInString(trimmed) > MaxTextLength {
		return []string{fmt.Sprintf("Text cannot exceed %d characters", MaxTextLength)}
	}
	return nil
}

func validateOperation(operation string, errs *[]string) (models.Operation, bool) {
	if operation == "" {
		*errs = append(*errs, "Missing required field: operation")
		return "", false
	}
	op, ok := models.ParseOperation(operation)
	if !ok {
		*errs = append(*errs, invalidOperationMessage())
		return "", false
	}
	return op, true
}

func validateOptions(options map[string]any) []string {
	if options == nil {
		return nil
	}
	serialized, err := json.Marshal(options)
	if err != nil || len(serialized) > MaxOptionsSize {
		return []string{"Options dictionary is too large"}
	}
	return nil
}

func userIDError(userID string) string {
	if strings.TrimSpace(userID) == "" {
		return "User ID cannot be empty"
	}
	if utf8.RuneCountInString(userID) > MaxUserIDLength {
		return fmt.Sprintf("User ID cannot exceed %d characters", MaxUserIDLength)
	}
	if invalidUserIDChars.MatchString(userID) {
		return "User ID contains invalid characters"
	}
	return ""
}

func invalidOperationMessage() string {
	names := make([]string, 0, len(models.AllOperations()))
	for _, op := range models.AllOperations() {
		names = append(names, op.String())
	}
	return "Invalid operation. Valid operations: " + strings.Join(names, ", ")
}
