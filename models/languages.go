package models

import "strings"

// SupportedLanguages maps recognized target-language codes to their
// display names, used both for validation and for translate prompts.
var SupportedLanguages = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"ru": "Russian",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese",
	"ar": "Arabic",
	"hi": "Hindi",
	"nl": "Dutch",
	"sv": "Swedish",
	"no": "Norwegian",
	"da": "Danish",
	"fi": "Finnish",
	"pl": "Polish",
	"tr": "Turkish",
	"he": "Hebrew",
}

// IsSupportedLanguage matches language codes case-insensitively.
func IsSupportedLanguage(code string) bool {
	_, ok := SupportedLanguages[strings.ToLower(code)]
	return ok
}

// LanguageName resolves a code to its display name, falling back to the
// code itself when unknown so translate prompts stay deterministic.
func LanguageName(code string) string {
	if name, ok := SupportedLanguages[strings.ToLower(code)]; ok {
		return name
	}
	return code
}
