package repositories

import (
	"context"

	"github.com/ikunnect/agentdesk/domain/entities"
)

// TranslationBackend abstracts any translation/detection provider, whether a
// network API or the built-in offline table.
type TranslationBackend interface {
	// Code returns the short provider identifier this backend is registered under.
	Code() string
	// Translate converts text from the source language to the target language.
	Translate(ctx context.Context, text, sourceLang, targetLang string) (*entities.TranslationResult, error)
	// DetectLanguage guesses the language of the given text.
	DetectLanguage(ctx context.Context, text string) (*entities.DetectionResult, error)
}
