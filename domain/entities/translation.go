package entities

// TranslationResult is the outcome of a translation request.
type TranslationResult struct {
	TranslatedText         string  `json:"translated_text"`
	Confidence             float64 `json:"confidence"`
	DetectedSourceLanguage string  `json:"detected_source_language,omitempty"`
	Provider               string  `json:"provider,omitempty"`
	ProcessingTimeMs       int64   `json:"processing_time_ms"`
	Cached                 bool    `json:"cached"`
}

// DetectionAlternative is a lower-ranked candidate from language detection.
type DetectionAlternative struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// DetectionResult is the outcome of a language detection request.
type DetectionResult struct {
	Language     string                 `json:"language"`
	Confidence   float64                `json:"confidence"`
	Provider     string                 `json:"provider,omitempty"`
	Alternatives []DetectionAlternative `json:"alternatives,omitempty"`
}

// MessageTranslations carries the per-message translation state produced for
// a chat message: the original text plus a mapping from target language code
// to already-translated text. The orchestrator populates Translations; the
// surrounding application owns the message itself.
type MessageTranslations struct {
	OriginalText     string            `json:"original_text"`
	OriginalLanguage string            `json:"original_language"`
	Translations     map[string]string `json:"translations"`
	AutoTranslated   bool              `json:"auto_translated"`
	Confidence       float64           `json:"confidence,omitempty"`
	Provider         string            `json:"provider,omitempty"`
}
