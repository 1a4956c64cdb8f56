package translator

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/ikunnect/agentdesk/domain/entities"
)

func TestNewGoogleBackendRequiresAPIKey(t *testing.T) {
	_, err := NewGoogleBackend(GoogleConfig{}, zaptest.NewLogger(t))
	if err == nil {
		t.Error("Expected error when API key is not set")
	}
}

func TestGoogleTranslate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("Expected API key query parameter, got %q", r.URL.Query().Get("key"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"translations":[{"translatedText":"Hola","detectedSourceLanguage":"en"}]}}`))
	}))
	defer server.Close()

	backend, err := NewGoogleBackend(GoogleConfig{APIKey: "test-key", BaseURL: server.URL}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Failed to create backend: %v", err)
	}

	result, err := backend.Translate(context.Background(), "Hello", "en", "es")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if result.TranslatedText != "Hola" {
		t.Errorf("Expected 'Hola', got %q", result.TranslatedText)
	}
	if result.Confidence != 0.95 {
		t.Errorf("Expected default confidence 0.95, got %f", result.Confidence)
	}
	if result.DetectedSourceLanguage != "en" {
		t.Errorf("Expected detected source 'en', got %q", result.DetectedSourceLanguage)
	}
}

func TestGoogleTranslatePayloadError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error":{"code":403,"message":"quota exceeded"}}`))
	}))
	defer server.Close()

	backend, err := NewGoogleBackend(GoogleConfig{APIKey: "test-key", BaseURL: server.URL}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Failed to create backend: %v", err)
	}

	_, err = backend.Translate(context.Background(), "Hello", "en", "es")
	var backendErr *entities.BackendError
	if !errors.As(err, &backendErr) {
		t.Fatalf("Expected BackendError, got %v", err)
	}
	if backendErr.Provider != GoogleProviderCode {
		t.Errorf("Expected provider %q, got %q", GoogleProviderCode, backendErr.Provider)
	}
	if backendErr.Message != "quota exceeded" {
		t.Errorf("Expected provider-reported message, got %q", backendErr.Message)
	}
}

func TestGoogleTranslateHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	}))
	defer server.Close()

	backend, err := NewGoogleBackend(GoogleConfig{APIKey: "test-key", BaseURL: server.URL}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Failed to create backend: %v", err)
	}

	_, err = backend.Translate(context.Background(), "Hello", "en", "es")
	var backendErr *entities.BackendError
	if !errors.As(err, &backendErr) {
		t.Fatalf("Expected BackendError, got %v", err)
	}
}

func TestGoogleDetectLanguage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/detect" {
			t.Errorf("Expected /detect path, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"detections":[[{"language":"fr","confidence":0.98}]]}}`))
	}))
	defer server.Close()

	backend, err := NewGoogleBackend(GoogleConfig{APIKey: "test-key", BaseURL: server.URL}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Failed to create backend: %v", err)
	}

	result, err := backend.DetectLanguage(context.Background(), "Bonjour")
	if err != nil {
		t.Fatalf("DetectLanguage failed: %v", err)
	}
	if result.Language != "fr" {
		t.Errorf("Expected 'fr', got %q", result.Language)
	}
	if result.Confidence != 0.98 {
		t.Errorf("Expected confidence 0.98, got %f", result.Confidence)
	}
}
