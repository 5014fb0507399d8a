package lendon

import "strings"

const (
	// SourceLocale is the language sellers paste in.
	SourceLocale = "zh_CN"
	// TargetLocale is the language of every generated result.
	TargetLocale = "vi_VN"
)

// LanguageNames maps locale codes to human-readable names for AI prompts.
var LanguageNames = map[string]string{
	"zh_CN": "Chinese (Simplified)",
	"zh_TW": "Chinese (Traditional)",
	"vi_VN": "Vietnamese (Vietnam)",
	"en_US": "English (United States)",
	"th_TH": "Thai (Thailand)",
	"id_ID": "Indonesian (Indonesia)",
	"ms_MY": "Malay (Malaysia)",
	"tl_PH": "Tagalog (Philippines)",
}

// ShortCodeToLocale maps short language codes to full locale codes.
var ShortCodeToLocale = map[string]string{
	"zh": "zh_CN",
	"vi": "vi_VN",
	"en": "en_US",
	"th": "th_TH",
	"id": "id_ID",
	"ms": "ms_MY",
}

// GetLanguageName returns the human-readable name for a language code.
// Falls back to the code itself if not found.
func GetLanguageName(langCode string) string {
	langCode = NormalizeLocale(langCode)
	if name, ok := LanguageNames[langCode]; ok {
		return name
	}
	if locale, ok := ShortCodeToLocale[langCode]; ok {
		if name, ok := LanguageNames[locale]; ok {
			return name
		}
	}
	return langCode
}

// NormalizeLocale converts a language code to the standard format (e.g., "vi-VN" → "vi_VN").
func NormalizeLocale(langCode string) string {
	return strings.ReplaceAll(langCode, "-", "_")
}

// ToHTMLLang converts a locale code to HTML lang attribute format (e.g., "vi_VN" → "vi-VN").
func ToHTMLLang(langCode string) string {
	return strings.ReplaceAll(langCode, "_", "-")
}
