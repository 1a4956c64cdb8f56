package translator

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/ikunnect/agentdesk/domain/entities"
	"github.com/ikunnect/agentdesk/domain/repositories"
)

// GoogleProviderCode identifies the Google Translate backend.
const GoogleProviderCode = "google"

const (
	defaultGoogleBaseURL    = "https://translation.googleapis.com/language/translate/v2"
	defaultGoogleConfidence = 0.95
	defaultGoogleTimeout    = 20 * time.Second
)

// GoogleConfig holds configuration for the Google Translate backend.
// Required fields:
// - APIKey: Google Cloud Translation API key
// Optional fields with defaults:
// - BaseURL: API base URL (default: the public v2 endpoint)
// - Timeout: HTTP timeout (default: 20s)
type GoogleConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// NewGoogleConfigFromEnv creates a GoogleConfig from environment variables.
func NewGoogleConfigFromEnv() GoogleConfig {
	return GoogleConfig{
		APIKey:  os.Getenv("GOOGLE_TRANSLATE_API_KEY"),
		BaseURL: os.Getenv("GOOGLE_TRANSLATE_BASE_URL"),
	}
}

// GoogleBackend implements the TranslationBackend interface against the
// Google Cloud Translation v2 REST API.
type GoogleBackend struct {
	apiKey  string
	baseURL string
	http    *resty.Client
	logger  *zap.Logger
}

var _ repositories.TranslationBackend = (*GoogleBackend)(nil)

type googleTranslateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText         string `json:"translatedText"`
			DetectedSourceLanguage string `json:"detectedSourceLanguage"`
		} `json:"translations"`
	} `json:"data"`
	Error *googleError `json:"error"`
}

type googleDetectResponse struct {
	Data struct {
		Detections [][]struct {
			Language   string  `json:"language"`
			Confidence float64 `json:"confidence"`
		} `json:"detections"`
	} `json:"data"`
	Error *googleError `json:"error"`
}

type googleError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewGoogleBackend creates a Google Translate backend instance.
func NewGoogleBackend(config GoogleConfig, logger *zap.Logger) (*GoogleBackend, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("google translate API key is required")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultGoogleBaseURL
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = defaultGoogleTimeout
	}

	return &GoogleBackend{
		apiKey:  config.APIKey,
		baseURL: baseURL,
		http:    resty.New().SetTimeout(timeout),
		logger:  logger,
	}, nil
}

// Code implements repositories.TranslationBackend.
func (b *GoogleBackend) Code() string {
	return GoogleProviderCode
}

// Translate implements repositories.TranslationBackend.
func (b *GoogleBackend) Translate(ctx context.Context, text, sourceLang, targetLang string) (*entities.TranslationResult, error) {
	var payload googleTranslateResponse
	resp, err := b.http.R().
		SetContext(ctx).
		SetQueryParam("key", b.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"q":      text,
			"source": sourceLang,
			"target": targetLang,
			"format": "text",
		}).
		SetResult(&payload).
		SetError(&payload).
		Post(b.baseURL)
	if err != nil {
		return nil, &entities.BackendError{Provider: GoogleProviderCode, Op: "translate", Message: "request failed", Err: err}
	}
	if backendErr := b.check(resp, payload.Error, "translate"); backendErr != nil {
		return nil, backendErr
	}
	if len(payload.Data.Translations) == 0 {
		return nil, &entities.BackendError{Provider: GoogleProviderCode, Op: "translate", Message: "empty translations in response"}
	}

	translation := payload.Data.Translations[0]
	return &entities.TranslationResult{
		TranslatedText:         translation.TranslatedText,
		Confidence:             defaultGoogleConfidence,
		DetectedSourceLanguage: translation.DetectedSourceLanguage,
	}, nil
}

// DetectLanguage implements repositories.TranslationBackend.
func (b *GoogleBackend) DetectLanguage(ctx context.Context, text string) (*entities.DetectionResult, error) {
	var payload googleDetectResponse
	resp, err := b.http.R().
		SetContext(ctx).
		SetQueryParam("key", b.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"q": text}).
		SetResult(&payload).
		SetError(&payload).
		Post(b.baseURL + "/detect")
	if err != nil {
		return nil, &entities.BackendError{Provider: GoogleProviderCode, Op: "detect", Message: "request failed", Err: err}
	}
	if backendErr := b.check(resp, payload.Error, "detect"); backendErr != nil {
		return nil, backendErr
	}
	if len(payload.Data.Detections) == 0 || len(payload.Data.Detections[0]) == 0 {
		return nil, &entities.BackendError{Provider: GoogleProviderCode, Op: "detect", Message: "empty detections in response"}
	}

	detection := payload.Data.Detections[0][0]
	return &entities.DetectionResult{
		Language:   detection.Language,
		Confidence: detection.Confidence,
	}, nil
}

// check maps a non-2xx status or a payload-level error field to BackendError.
func (b *GoogleBackend) check(resp *resty.Response, apiErr *googleError, op string) error {
	if apiErr != nil && apiErr.Message != "" {
		b.logger.Warn("Google Translate API reported error",
			zap.String("op", op),
			zap.Int("code", apiErr.Code),
			zap.String("message", apiErr.Message))
		return &entities.BackendError{Provider: GoogleProviderCode, Op: op, Message: apiErr.Message}
	}
	if resp.IsError() {
		b.logger.Warn("Google Translate API returned error status",
			zap.String("op", op),
			zap.Int("statusCode", resp.StatusCode()))
		return &entities.BackendError{
			Provider: GoogleProviderCode,
			Op:       op,
			Message:  fmt.Sprintf("unexpected status %s", resp.Status()),
		}
	}
	return nil
}
