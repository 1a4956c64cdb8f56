package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/ikunnect/agentdesk/domain/entities"
)

// spyBackend records calls and serves scripted results.
type spyBackend struct {
	mu             sync.Mutex
	code           string
	translateCalls int
	detectCalls    int
	fail           bool
	translated     string
	processingMs   int64
}

func (s *spyBackend) Code() string { return s.code }

func (s *spyBackend) Translate(ctx context.Context, text, sourceLang, targetLang string) (*entities.TranslationResult, error) {
	s.mu.Lock()
	s.translateCalls++
	s.mu.Unlock()
	if s.fail {
		return nil, &entities.BackendError{Provider: s.code, Op: "translate", Message: "scripted failure"}
	}
	translated := s.translated
	if translated == "" {
		translated = "translated:" + text
	}
	return &entities.TranslationResult{TranslatedText: translated, Confidence: 0.9, ProcessingTimeMs: s.processingMs}, nil
}

func (s *spyBackend) DetectLanguage(ctx context.Context, text string) (*entities.DetectionResult, error) {
	s.mu.Lock()
	s.detectCalls++
	s.mu.Unlock()
	if s.fail {
		return nil, &entities.BackendError{Provider: s.code, Op: "detect", Message: "scripted failure"}
	}
	return &entities.DetectionResult{Language: "es", Confidence: 0.9}, nil
}

func (s *spyBackend) calls() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.translateCalls, s.detectCalls
}

func newService(t *testing.T, offline *spyBackend) *TranslationService {
	t.Helper()
	return NewTranslationService(offline, 10, zaptest.NewLogger(t))
}

func TestTranslateIdentityShortCircuit(t *testing.T) {
	offline := &spyBackend{code: "offline"}
	svc := newService(t, offline)

	result, err := svc.Translate(context.Background(), "Hello", "en", "en", "")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if result.TranslatedText != "Hello" {
		t.Errorf("Expected identity translation, got %q", result.TranslatedText)
	}
	if result.Confidence != 1.0 {
		t.Errorf("Expected confidence 1.0, got %f", result.Confidence)
	}
	if result.Cached {
		t.Error("Identity translation must not be marked cached")
	}
	if calls, _ := offline.calls(); calls != 0 {
		t.Errorf("Expected zero backend calls, got %d", calls)
	}
}

func TestTranslateEmptyTextShortCircuit(t *testing.T) {
	offline := &spyBackend{code: "offline"}
	svc := newService(t, offline)

	for _, text := range []string{"", "   ", "\t\n"} {
		result, err := svc.Translate(context.Background(), text, "en", "es", "")
		if err != nil {
			t.Fatalf("Translate(%q) failed: %v", text, err)
		}
		if result.TranslatedText != text {
			t.Errorf("Expected original text back, got %q", result.TranslatedText)
		}
		if result.Confidence != 1.0 {
			t.Errorf("Expected confidence 1.0, got %f", result.Confidence)
		}
	}
	if calls, _ := offline.calls(); calls != 0 {
		t.Errorf("Expected zero backend calls, got %d", calls)
	}
}

func TestDetectEmptyTextShortCircuit(t *testing.T) {
	offline := &spyBackend{code: "offline"}
	svc := newService(t, offline)

	result, err := svc.DetectLanguage(context.Background(), "   ", "")
	if err != nil {
		t.Fatalf("DetectLanguage failed: %v", err)
	}
	if result.Language != "en" || result.Confidence != 0.5 {
		t.Errorf("Expected default en/0.5, got %s/%f", result.Language, result.Confidence)
	}
	if _, calls := offline.calls(); calls != 0 {
		t.Errorf("Expected zero backend calls, got %d", calls)
	}
}

func TestTranslateCacheIdempotence(t *testing.T) {
	offline := &spyBackend{code: "offline", translated: "Hola"}
	svc := newService(t, offline)

	first, err := svc.Translate(context.Background(), "Hello", "en", "es", "")
	if err != nil {
		t.Fatalf("First translate failed: %v", err)
	}
	if first.Cached {
		t.Error("First call must be a cache miss")
	}
	if first.Provider != "offline" {
		t.Errorf("Expected provider stamp 'offline', got %q", first.Provider)
	}

	second, err := svc.Translate(context.Background(), "Hello", "en", "es", "")
	if err != nil {
		t.Fatalf("Second translate failed: %v", err)
	}
	if !second.Cached {
		t.Error("Second call must be served from cache")
	}
	if second.TranslatedText != first.TranslatedText {
		t.Errorf("Cache returned different text: %q vs %q", second.TranslatedText, first.TranslatedText)
	}
	if calls, _ := offline.calls(); calls != 1 {
		t.Errorf("Expected exactly one backend call, got %d", calls)
	}
}

func TestTranslateCacheIsKeySensitive(t *testing.T) {
	offline := &spyBackend{code: "offline"}
	svc := newService(t, offline)

	svc.Translate(context.Background(), "Hello", "en", "es", "")
	svc.Translate(context.Background(), "hello", "en", "es", "")
	svc.Translate(context.Background(), "Hello ", "en", "es", "")

	if calls, _ := offline.calls(); calls != 3 {
		t.Errorf("Expected three distinct cache keys, got %d backend calls", calls)
	}
}

func TestTranslateFallbackToOffline(t *testing.T) {
	offline := &spyBackend{code: "offline", translated: "Hola"}
	svc := newService(t, offline)
	failing := &spyBackend{code: "google", fail: true}
	svc.Register(failing)

	result, err := svc.Translate(context.Background(), "Hello", "en", "es", "")
	if err != nil {
		t.Fatalf("Expected fallback to succeed, got %v", err)
	}
	if result.Provider != "offline" {
		t.Errorf("Expected offline provider after fallback, got %q", result.Provider)
	}
	if result.TranslatedText != "Hola" {
		t.Errorf("Expected offline translation, got %q", result.TranslatedText)
	}
	if calls, _ := failing.calls(); calls != 1 {
		t.Errorf("Expected exactly one failing backend call, got %d", calls)
	}
}

func TestTranslateFallbackWithExplicitOverride(t *testing.T) {
	offline := &spyBackend{code: "offline"}
	svc := newService(t, offline)
	svc.Register(&spyBackend{code: "onemeta", fail: true})
	svc.Register(&spyBackend{code: "google"})

	// Override selects the failing backend even though google is default.
	result, err := svc.Translate(context.Background(), "Hello", "en", "es", "onemeta")
	if err != nil {
		t.Fatalf("Expected fallback to succeed, got %v", err)
	}
	if result.Provider != "offline" {
		t.Errorf("Expected fallback to offline, got %q", result.Provider)
	}
}

func TestTranslateOfflineFailurePropagates(t *testing.T) {
	offline := &spyBackend{code: "offline", fail: true}
	svc := newService(t, offline)

	_, err := svc.Translate(context.Background(), "Hello", "en", "es", "")
	var backendErr *entities.BackendError
	if !errors.As(err, &backendErr) {
		t.Fatalf("Expected BackendError from offline backend, got %v", err)
	}
}

func TestTranslateUnknownProvider(t *testing.T) {
	offline := &spyBackend{code: "offline"}
	svc := newService(t, offline)

	_, err := svc.Translate(context.Background(), "Hello", "en", "es", "nope")
	var confErr *entities.ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("Expected ConfigurationError, got %v", err)
	}
}

func TestSetDefaultProvider(t *testing.T) {
	offline := &spyBackend{code: "offline"}
	svc := newService(t, offline)
	svc.Register(&spyBackend{code: "google"})

	if err := svc.SetDefaultProvider("offline"); err != nil {
		t.Fatalf("SetDefaultProvider failed: %v", err)
	}
	if svc.DefaultProvider() != "offline" {
		t.Errorf("Expected default 'offline', got %q", svc.DefaultProvider())
	}

	err := svc.SetDefaultProvider("unregistered")
	var confErr *entities.ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("Expected ConfigurationError, got %v", err)
	}
	if svc.DefaultProvider() != "offline" {
		t.Errorf("Failed SetDefaultProvider must not change the default, got %q", svc.DefaultProvider())
	}
}

func TestRegisterMakesBackendDefault(t *testing.T) {
	offline := &spyBackend{code: "offline"}
	svc := newService(t, offline)

	if svc.DefaultProvider() != "offline" {
		t.Errorf("Expected initial default 'offline', got %q", svc.DefaultProvider())
	}

	svc.Register(&spyBackend{code: "google"})
	if svc.DefaultProvider() != "google" {
		t.Errorf("Expected default 'google' after registration, got %q", svc.DefaultProvider())
	}

	providers := svc.Providers()
	if len(providers) != 2 {
		t.Errorf("Expected 2 providers, got %v", providers)
	}
}

func TestDetectFallbackToOffline(t *testing.T) {
	offline := &spyBackend{code: "offline"}
	svc := newService(t, offline)
	svc.Register(&spyBackend{code: "google", fail: true})

	result, err := svc.DetectLanguage(context.Background(), "Hola amigo", "")
	if err != nil {
		t.Fatalf("Expected fallback to succeed, got %v", err)
	}
	if result.Provider != "offline" {
		t.Errorf("Expected offline provider after fallback, got %q", result.Provider)
	}
}

func TestDetectionNeverCached(t *testing.T) {
	offline := &spyBackend{code: "offline"}
	svc := newService(t, offline)

	svc.DetectLanguage(context.Background(), "Hola", "")
	svc.DetectLanguage(context.Background(), "Hola", "")

	if _, calls := offline.calls(); calls != 2 {
		t.Errorf("Expected two backend calls for repeated detection, got %d", calls)
	}
}

func TestClearCache(t *testing.T) {
	offline := &spyBackend{code: "offline"}
	svc := newService(t, offline)

	svc.Translate(context.Background(), "Hello", "en", "es", "")
	svc.ClearCache()
	svc.Translate(context.Background(), "Hello", "en", "es", "")

	if calls, _ := offline.calls(); calls != 2 {
		t.Errorf("Expected cache miss after clear, got %d backend calls", calls)
	}
}

func TestTranslateMessage(t *testing.T) {
	offline := &spyBackend{code: "offline"}
	svc := newService(t, offline)

	msg, err := svc.TranslateMessage(context.Background(), "Hello", "en", []string{"es", "fr", "en"})
	if err != nil {
		t.Fatalf("TranslateMessage failed: %v", err)
	}
	if len(msg.Translations) != 2 {
		t.Errorf("Expected 2 translations (original language skipped), got %d", len(msg.Translations))
	}
	if !msg.AutoTranslated {
		t.Error("Expected AutoTranslated to be set")
	}
	if msg.Translations["es"] != "translated:Hello" {
		t.Errorf("Unexpected translation: %q", msg.Translations["es"])
	}
}

func TestProcessingTimePrefersProviderReported(t *testing.T) {
	offline := &spyBackend{code: "offline", processingMs: 420}
	svc := newService(t, offline)

	result, err := svc.Translate(context.Background(), "Hello", "en", "es", "")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if result.ProcessingTimeMs != 420 {
		t.Errorf("Expected provider-reported 420ms kept, got %d", result.ProcessingTimeMs)
	}
}

func TestProcessingTimeStampedWhenUnreported(t *testing.T) {
	offline := &spyBackend{code: "offline"}
	svc := newService(t, offline)

	result, err := svc.Translate(context.Background(), "Hello", "en", "es", "")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if result.ProcessingTimeMs < 0 {
		t.Errorf("Expected non-negative measured time, got %d", result.ProcessingTimeMs)
	}
}
