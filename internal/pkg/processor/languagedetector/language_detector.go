package languagedetector

import (
	"strings"

	"github.com/pemistahl/lingua-go"

	"commentguard/internal/pkg/metrics"
)

// Comments shorter than this are too ambiguous to classify.
const minTextLength = 20

// Builds a detector over the languages that realistically show up in the
// comment corpora this service handles. Models are preloaded so the first
// batch does not pay the initialization cost.
func New() lingua.LanguageDetector {
	return lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.Korean,
			lingua.English,
			lingua.Japanese,
			lingua.Chinese,
			lingua.Spanish,
		).
		WithPreloadedLanguageModels().
		Build()
}

// Detects the language of a single comment and returns its ISO 639-1
// code, or "unknown" when the text is too short or detection fails.
func DetectLanguage(detector lingua.LanguageDetector, text string) string {
	if len(text) < minTextLength {
		return "unknown"
	}

	detected, exists := detector.DetectLanguageOf(text)
	if !exists {
		metrics.LanguageDetectionFailures.Inc()
		return "unknown"
	}
	return strings.ToLower(detected.IsoCode639_1().String())
}
