package translator

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ikunnect/agentdesk/domain/entities"
	"github.com/ikunnect/agentdesk/domain/repositories"
)

// OfflineProviderCode identifies the built-in deterministic backend. It needs
// no credentials and is always registered, making it the universal fallback.
const OfflineProviderCode = "offline"

const (
	offlinePlaceholderConfidence = 0.85
	offlineDefaultLanguage       = "en"
	offlineDefaultConfidence     = 0.70
)

// phraseTable holds canned translations for common contact-center phrases,
// keyed by "source-target" then exact text.
var phraseTable = map[string]map[string]string{
	"en-es": {
		"Hello":               "Hola",
		"How can I help you?": "¿Cómo puedo ayudarte?",
		"Thank you":           "Gracias",
		"Goodbye":             "Adiós",
		"Yes":                 "Sí",
		"No":                  "No",
		"Please wait":         "Por favor espera",
		"I understand":        "Entiendo",
	},
	"en-fr": {
		"Hello":               "Bonjour",
		"How can I help you?": "Comment puis-je vous aider?",
		"Thank you":           "Merci",
		"Goodbye":             "Au revoir",
		"Yes":                 "Oui",
		"No":                  "Non",
		"Please wait":         "Veuillez patienter",
		"I understand":        "Je comprends",
	},
	"es-en": {
		"Hola":                   "Hello",
		"¿Cómo puedo ayudarte?":  "How can I help you?",
		"Gracias":                "Thank you",
		"Adiós":                  "Goodbye",
		"Sí":                     "Yes",
		"No":                     "No",
		"Por favor espera":       "Please wait",
		"Entiendo":               "I understand",
	},
	"fr-en": {
		"Bonjour":                     "Hello",
		"Comment puis-je vous aider?": "How can I help you?",
		"Merci":                       "Thank you",
		"Au revoir":                   "Goodbye",
		"Oui":                         "Yes",
		"Non":                         "No",
		"Veuillez patienter":          "Please wait",
		"Je comprends":                "I understand",
	},
}

// detectionRule maps a character predicate to a detected language. Rules are
// applied in order; the first rune match wins.
type detectionRule struct {
	language   string
	confidence float64
	match      func(r rune) bool
}

var detectionRules = []detectionRule{
	{"es", 0.85, func(r rune) bool { return strings.ContainsRune("ñáéíóúü", r) }},
	{"fr", 0.80, func(r rune) bool { return strings.ContainsRune("àâäéèêëïîôöùûüÿç", r) }},
	{"de", 0.80, func(r rune) bool { return strings.ContainsRune("äöüß", r) }},
	{"ru", 0.90, func(r rune) bool { return (r >= 'а' && r <= 'я') || (r >= 'А' && r <= 'Я') || r == 'ё' || r == 'Ё' }},
	{"zh", 0.85, func(r rune) bool { return r >= 0x4E00 && r <= 0x9FAF }},
	{"ja", 0.90, func(r rune) bool { return (r >= 0x3040 && r <= 0x309F) || (r >= 0x30A0 && r <= 0x30FF) }},
	{"ko", 0.90, func(r rune) bool { return (r >= 0x3131 && r <= 0x318E) || (r >= 0xAC00 && r <= 0xD7A3) }},
	{"ar", 0.85, func(r rune) bool { return r >= 0x0627 && r <= 0x064A }},
}

// OfflineBackend is a deterministic translation backend that never touches
// the network. Unknown phrases get a marked placeholder so the agent can tell
// a degraded translation from a real one.
type OfflineBackend struct {
	delay  time.Duration
	logger *zap.Logger
}

var _ repositories.TranslationBackend = (*OfflineBackend)(nil)

// NewOfflineBackend creates the offline backend. The delay simulates provider
// latency so in-progress UI states behave the same against every backend;
// pass zero to disable it.
func NewOfflineBackend(delay time.Duration, logger *zap.Logger) *OfflineBackend {
	return &OfflineBackend{delay: delay, logger: logger}
}

// Code implements repositories.TranslationBackend.
func (b *OfflineBackend) Code() string {
	return OfflineProviderCode
}

// Translate implements repositories.TranslationBackend. It is total: every
// input produces a result, so fallback to this backend cannot fail.
func (b *OfflineBackend) Translate(ctx context.Context, text, sourceLang, targetLang string) (*entities.TranslationResult, error) {
	if err := b.sleep(ctx); err != nil {
		return nil, err
	}

	translated, ok := phraseTable[sourceLang+"-"+targetLang][text]
	if !ok {
		translated = "[" + strings.ToUpper(targetLang) + "] " + text
	}

	b.logger.Debug("Offline translation served",
		zap.String("source", sourceLang),
		zap.String("target", targetLang),
		zap.Bool("phraseHit", ok))

	return &entities.TranslationResult{
		TranslatedText:         translated,
		Confidence:             offlinePlaceholderConfidence,
		DetectedSourceLanguage: sourceLang,
	}, nil
}

// DetectLanguage implements repositories.TranslationBackend using ordered
// character-class heuristics over diacritics and script ranges.
func (b *OfflineBackend) DetectLanguage(ctx context.Context, text string) (*entities.DetectionResult, error) {
	if err := b.sleep(ctx); err != nil {
		return nil, err
	}

	for _, rule := range detectionRules {
		for _, r := range text {
			if rule.match(r) {
				return &entities.DetectionResult{
					Language:   rule.language,
					Confidence: rule.confidence,
				}, nil
			}
		}
	}

	return &entities.DetectionResult{
		Language:   offlineDefaultLanguage,
		Confidence: offlineDefaultConfidence,
	}, nil
}

func (b *OfflineBackend) sleep(ctx context.Context) error {
	if b.delay <= 0 {
		return nil
	}
	select {
	case <-time.After(b.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
