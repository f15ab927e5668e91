package config

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// LanguageAuto asks ParseLanguage to detect the language from the environment
const LanguageAuto = "auto"

// LanguageConfig wraps the document language tag
type LanguageConfig struct {
	tag language.Tag
}

// ParseLanguage parses an ISO language tag.
// Empty or unparsable tags fall back to English; "auto" detects from LANG and friends.
func ParseLanguage(langTag string) *LanguageConfig {
	switch strings.TrimSpace(langTag) {
	case "":
		return &LanguageConfig{tag: language.English}
	case LanguageAuto:
		return &LanguageConfig{tag: detectSystemLanguage()}
	}

	tag, err := language.Parse(langTag)
	if err != nil {
		tag, err = language.Parse(strings.ReplaceAll(strings.ToLower(langTag), "_", "-"))
		if err != nil {
			tag = language.English
		}
	}
	return &LanguageConfig{tag: tag}
}

// Tag returns the underlying language tag
func (lc *LanguageConfig) Tag() language.Tag {
	return lc.tag
}

// String returns the language tag as a string (e.g., "en", "en-IN")
func (lc *LanguageConfig) String() string {
	return lc.tag.String()
}

// Base returns the base language subtag (e.g., "en" for "en-IN")
func (lc *LanguageConfig) Base() string {
	base, _ := lc.tag.Base()
	return base.String()
}

// Dir returns the writing direction for the HTML dir attribute
func (lc *LanguageConfig) Dir() string {
	switch lc.Base() {
	case "ar", "fa", "he", "ur":
		return "rtl"
	default:
		return "ltr"
	}
}

// detectSystemLanguage reads the locale from common environment variables
func detectSystemLanguage() language.Tag {
	for _, envVar := range []string{"LC_ALL", "LC_MESSAGES", "LANGUAGE", "LANG"} {
		val := os.Getenv(envVar)
		if val == "" {
			continue
		}
		// "en_US.UTF-8" -> "en-US"
		langPart := strings.Split(val, ".")[0]
		langPart = strings.Split(langPart, ":")[0]
		langPart = strings.Replace(langPart, "_", "-", 1)

		if tag, err := language.Parse(langPart); err == nil && tag != language.Und {
			return tag
		}
	}
	return language.English
}
