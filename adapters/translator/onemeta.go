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

// OneMetaProviderCode identifies the OneMeta Verbum backend, preferred for
// quality when its credential is configured.
const OneMetaProviderCode = "onemeta"

const (
	defaultOneMetaBaseURL    = "https://api.onemeta.ai/v1"
	defaultOneMetaModel      = "verbum-call-v2"
	defaultOneMetaDetector   = "language-detector-v2"
	defaultOneMetaConfidence = 0.95
	defaultOneMetaTimeout    = 20 * time.Second
)

// OneMetaConfig holds configuration for the OneMeta backend.
// Required fields:
// - APIKey: OneMeta bearer token
// Optional fields with defaults:
// - BaseURL: API base URL (default: "https://api.onemeta.ai/v1")
// - Model: translation model (default: "verbum-call-v2")
// - Timeout: HTTP timeout (default: 20s)
type OneMetaConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// NewOneMetaConfigFromEnv creates a OneMetaConfig from environment variables.
func NewOneMetaConfigFromEnv() OneMetaConfig {
	return OneMetaConfig{
		APIKey:  os.Getenv("ONEMETA_API_KEY"),
		BaseURL: os.Getenv("ONEMETA_BASE_URL"),
		Model:   os.Getenv("ONEMETA_MODEL"),
	}
}

// OneMetaBackend implements the TranslationBackend interface against the
// OneMeta Verbum REST API.
type OneMetaBackend struct {
	apiKey  string
	baseURL string
	model   string
	http    *resty.Client
	logger  *zap.Logger
}

var _ repositories.TranslationBackend = (*OneMetaBackend)(nil)

type oneMetaTranslateResponse struct {
	TranslatedText   string  `json:"translated_text"`
	Confidence       float64 `json:"confidence"`
	DetectedLanguage string  `json:"detected_language"`
	ProcessingTimeMs int64   `json:"processing_time_ms"`
	Error            string  `json:"error"`
}

type oneMetaDetectResponse struct {
	DetectedLanguage string  `json:"detected_language"`
	Confidence       float64 `json:"confidence"`
	Alternatives     []struct {
		Language   string  `json:"language"`
		Confidence float64 `json:"confidence"`
	} `json:"alternatives"`
	Error string `json:"error"`
}

// NewOneMetaBackend creates a OneMeta backend instance.
func NewOneMetaBackend(config OneMetaConfig, logger *zap.Logger) (*OneMetaBackend, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("onemeta API key is required")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultOneMetaBaseURL
	}

	model := config.Model
	if model == "" {
		model = defaultOneMetaModel
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = defaultOneMetaTimeout
	}

	return &OneMetaBackend{
		apiKey:  config.APIKey,
		baseURL: baseURL,
		model:   model,
		http:    resty.New().SetTimeout(timeout),
		logger:  logger,
	}, nil
}

// Code implements repositories.TranslationBackend.
func (b *OneMetaBackend) Code() string {
	return OneMetaProviderCode
}

// Translate implements repositories.TranslationBackend.
func (b *OneMetaBackend) Translate(ctx context.Context, text, sourceLang, targetLang string) (*entities.TranslationResult, error) {
	var payload oneMetaTranslateResponse
	resp, err := b.http.R().
		SetContext(ctx).
		SetAuthToken(b.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"text":                text,
			"source_language":     sourceLang,
			"target_language":     targetLang,
			"model":               b.model,
			"preserve_formatting": true,
		}).
		SetResult(&payload).
		SetError(&payload).
		Post(b.baseURL + "/translate")
	if err != nil {
		return nil, &entities.BackendError{Provider: OneMetaProviderCode, Op: "translate", Message: "request failed", Err: err}
	}
	if resp.IsError() {
		message := payload.Error
		if message == "" {
			message = fmt.Sprintf("unexpected status %s", resp.Status())
		}
		b.logger.Warn("OneMeta translate failed",
			zap.Int("statusCode", resp.StatusCode()),
			zap.String("message", message))
		return nil, &entities.BackendError{Provider: OneMetaProviderCode, Op: "translate", Message: message}
	}

	confidence := payload.Confidence
	if confidence == 0 {
		confidence = defaultOneMetaConfidence
	}

	return &entities.TranslationResult{
		TranslatedText:         payload.TranslatedText,
		Confidence:             confidence,
		DetectedSourceLanguage: payload.DetectedLanguage,
		ProcessingTimeMs:       payload.ProcessingTimeMs,
	}, nil
}

// DetectLanguage implements repositories.TranslationBackend.
func (b *OneMetaBackend) DetectLanguage(ctx context.Context, text string) (*entities.DetectionResult, error) {
	var payload oneMetaDetectResponse
	resp, err := b.http.R().
		SetContext(ctx).
		SetAuthToken(b.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"text":  text,
			"model": defaultOneMetaDetector,
		}).
		SetResult(&payload).
		SetError(&payload).
		Post(b.baseURL + "/detect")
	if err != nil {
		return nil, &entities.BackendError{Provider: OneMetaProviderCode, Op: "detect", Message: "request failed", Err: err}
	}
	if resp.IsError() {
		message := payload.Error
		if message == "" {
			message = fmt.Sprintf("unexpected status %s", resp.Status())
		}
		b.logger.Warn("OneMeta detect failed",
			zap.Int("statusCode", resp.StatusCode()),
			zap.String("message", message))
		return nil, &entities.BackendError{Provider: OneMetaProviderCode, Op: "detect", Message: message}
	}

	result := &entities.DetectionResult{
		Language:   payload.DetectedLanguage,
		Confidence: payload.Confidence,
	}
	for _, alt := range payload.Alternatives {
		result.Alternatives = append(result.Alternatives, entities.DetectionAlternative{
			Language:   alt.Language,
			Confidence: alt.Confidence,
		})
	}
	return result, nil
}
