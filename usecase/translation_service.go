package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ikunnect/agentdesk/domain/entities"
	"github.com/ikunnect/agentdesk/domain/repositories"
	"github.com/ikunnect/agentdesk/internal/cache"
)

const (
	identityConfidence         = 1.0
	detectionDefaultLanguage   = "en"
	detectionDefaultConfidence = 0.5
)

// TranslationService orchestrates translation requests across registered
// backends: it resolves the provider, consults the write-through cache, and
// falls back to the offline backend when a network provider fails. The cache
// is the only shared mutable state; everything else is read-only after
// registration.
type TranslationService struct {
	mu              sync.RWMutex
	backends        map[string]repositories.TranslationBackend
	defaultProvider string

	offlineProvider string

	cache  *cache.FIFO
	logger *zap.Logger
}

// NewTranslationService creates an orchestrator with the offline backend
// registered as the initial default. Further backends are added with
// Register; the most recently registered network backend becomes the default.
func NewTranslationService(offline repositories.TranslationBackend, cacheCapacity int, logger *zap.Logger) *TranslationService {
	s := &TranslationService{
		backends: make(map[string]repositories.TranslationBackend),
		cache:    cache.NewFIFO(cacheCapacity),
		logger:   logger,
	}
	s.backends[offline.Code()] = offline
	s.defaultProvider = offline.Code()
	s.offlineProvider = offline.Code()
	return s
}

// Register adds a backend and makes it the default provider.
func (s *TranslationService) Register(backend repositories.TranslationBackend) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backends[backend.Code()] = backend
	s.defaultProvider = backend.Code()
	s.logger.Info("Translation backend registered", zap.String("provider", backend.Code()))
}

// Providers returns the codes of all registered backends.
func (s *TranslationService) Providers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	codes := make([]string, 0, len(s.backends))
	for code := range s.backends {
		codes = append(codes, code)
	}
	return codes
}

// DefaultProvider returns the currently active default provider code.
func (s *TranslationService) DefaultProvider() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaultProvider
}

// SetDefaultProvider switches the process-wide default. Referencing an
// unregistered provider fails with ConfigurationError and leaves the current
// default unchanged.
func (s *TranslationService) SetDefaultProvider(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.backends[code]; !ok {
		return &entities.ConfigurationError{Provider: code}
	}
	s.defaultProvider = code
	s.logger.Info("Default translation provider changed", zap.String("provider", code))
	return nil
}

// ClearCache drops all cached translations.
func (s *TranslationService) ClearCache() {
	s.cache.Clear()
}

// Translate converts text between languages. Empty input and identity
// language pairs short-circuit without touching any backend or the cache.
// Cache hits are returned as stored; on a miss the resolved backend is
// invoked and its result written through. A failing network backend is
// retried exactly once against the offline backend.
func (s *TranslationService) Translate(ctx context.Context, text, sourceLang, targetLang, providerOverride string) (*entities.TranslationResult, error) {
	if strings.TrimSpace(text) == "" || sourceLang == targetLang {
		return &entities.TranslationResult{
			TranslatedText: text,
			Confidence:     identityConfidence,
		}, nil
	}

	backend, err := s.resolve(providerOverride)
	if err != nil {
		return nil, err
	}

	result, err := s.translateWith(ctx, backend, text, sourceLang, targetLang)
	if err == nil {
		return result, nil
	}
	if backend.Code() == s.offlineProvider {
		return nil, err
	}

	s.logger.Warn("Translation backend failed, falling back to offline",
		zap.String("provider", backend.Code()),
		zap.Error(err))

	offline, resolveErr := s.resolve(s.offlineProvider)
	if resolveErr != nil {
		return nil, err
	}
	return s.translateWith(ctx, offline, text, sourceLang, targetLang)
}

func (s *TranslationService) translateWith(ctx context.Context, backend repositories.TranslationBackend, text, sourceLang, targetLang string) (*entities.TranslationResult, error) {
	key := cacheKey(backend.Code(), sourceLang, targetLang, text)
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	start := time.Now()
	result, err := backend.Translate(ctx, text, sourceLang, targetLang)
	if err != nil {
		return nil, err
	}

	result.Provider = backend.Code()
	// A provider-reported processing time wins; the locally measured
	// round-trip is only a substitute when the backend reports none.
	if result.ProcessingTimeMs == 0 {
		result.ProcessingTimeMs = time.Since(start).Milliseconds()
	}
	result.Cached = false

	stored := *result
	stored.Cached = true
	s.cache.Put(key, &stored)

	return result, nil
}

// DetectLanguage guesses the language of text with the same provider
// resolution and fallback policy as Translate. Detection results are never
// cached.
func (s *TranslationService) DetectLanguage(ctx context.Context, text, providerOverride string) (*entities.DetectionResult, error) {
	if strings.TrimSpace(text) == "" {
		return &entities.DetectionResult{
			Language:   detectionDefaultLanguage,
			Confidence: detectionDefaultConfidence,
		}, nil
	}

	backend, err := s.resolve(providerOverride)
	if err != nil {
		return nil, err
	}

	result, err := backend.DetectLanguage(ctx, text)
	if err == nil {
		result.Provider = backend.Code()
		return result, nil
	}
	if backend.Code() == s.offlineProvider {
		return nil, err
	}

	s.logger.Warn("Language detection failed, falling back to offline",
		zap.String("provider", backend.Code()),
		zap.Error(err))

	offline, resolveErr := s.resolve(s.offlineProvider)
	if resolveErr != nil {
		return nil, err
	}
	result, err = offline.DetectLanguage(ctx, text)
	if err != nil {
		return nil, err
	}
	result.Provider = offline.Code()
	return result, nil
}

// TranslateMessage populates the per-message translation map consumed by the
// chat view: one entry per requested target language, skipping the original
// language.
func (s *TranslationService) TranslateMessage(ctx context.Context, text, sourceLang string, targetLangs []string) (*entities.MessageTranslations, error) {
	out := &entities.MessageTranslations{
		OriginalText:     text,
		OriginalLanguage: sourceLang,
		Translations:     make(map[string]string, len(targetLangs)),
		AutoTranslated:   true,
	}

	for _, target := range targetLangs {
		if target == sourceLang {
			continue
		}
		result, err := s.Translate(ctx, text, sourceLang, target, "")
		if err != nil {
			return nil, err
		}
		out.Translations[target] = result.TranslatedText
		out.Confidence = result.Confidence
		out.Provider = result.Provider
	}
	return out, nil
}

func (s *TranslationService) resolve(override string) (repositories.TranslationBackend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	code := override
	if code == "" {
		code = s.defaultProvider
	}
	backend, ok := s.backends[code]
	if !ok {
		return nil, &entities.ConfigurationError{Provider: code}
	}
	return backend, nil
}

// cacheKey is case- and whitespace-sensitive on the source text: two texts
// differing only in spacing are distinct cache entries.
func cacheKey(provider, sourceLang, targetLang, text string) string {
	return provider + ":" + sourceLang + "-" + targetLang + ":" + text
}
