package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/ikunnect/agentdesk/domain/entities"
	"github.com/ikunnect/agentdesk/domain/repositories"
)

// GeminiProviderCode identifies the Gemini-backed translation backend.
const GeminiProviderCode = "gemini"

const (
	defaultGeminiModel      = "gemini-2.0-flash"
	defaultGeminiTimeout    = 30 * time.Second
	defaultGeminiConfidence = 0.92
)

// GeminiBackend implements the TranslationBackend interface on top of the
// Gemini API, prompting the model for a structured JSON translation. It is an
// optional backend for language pairs the REST providers handle poorly.
type GeminiBackend struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

var _ repositories.TranslationBackend = (*GeminiBackend)(nil)

// NewGeminiBackend creates a Gemini backend instance. GEMINI_API_KEY is
// required; GEMINI_MODEL overrides the default model.
func NewGeminiBackend(logger *zap.Logger) (*GeminiBackend, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = defaultGeminiModel
	}

	return &GeminiBackend{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// Code implements repositories.TranslationBackend.
func (b *GeminiBackend) Code() string {
	return GeminiProviderCode
}

// Translate implements repositories.TranslationBackend.
func (b *GeminiBackend) Translate(ctx context.Context, text, sourceLang, targetLang string) (*entities.TranslationResult, error) {
	prompt := fmt.Sprintf(
		`Translate the following text from %q to %q. Respond with JSON only: {"translation": "..."}. Text: %s`,
		sourceLang, targetLang, text)

	content, err := b.generate(ctx, prompt)
	if err != nil {
		return nil, &entities.BackendError{Provider: GeminiProviderCode, Op: "translate", Message: "generation failed", Err: err}
	}

	var parsed struct {
		Translation string `json:"translation"`
	}
	if err := json.Unmarshal([]byte(stripFences(content)), &parsed); err != nil || parsed.Translation == "" {
		return nil, &entities.BackendError{Provider: GeminiProviderCode, Op: "translate", Message: "malformed model response"}
	}

	return &entities.TranslationResult{
		TranslatedText:         parsed.Translation,
		Confidence:             defaultGeminiConfidence,
		DetectedSourceLanguage: sourceLang,
	}, nil
}

// DetectLanguage implements repositories.TranslationBackend.
func (b *GeminiBackend) DetectLanguage(ctx context.Context, text string) (*entities.DetectionResult, error) {
	prompt := fmt.Sprintf(
		`Identify the language of the following text. Respond with JSON only: {"language": "<ISO-639-1 code>", "confidence": <0..1>}. Text: %s`,
		text)

	content, err := b.generate(ctx, prompt)
	if err != nil {
		return nil, &entities.BackendError{Provider: GeminiProviderCode, Op: "detect", Message: "generation failed", Err: err}
	}

	var parsed struct {
		Language   string  `json:"language"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(stripFences(content)), &parsed); err != nil || parsed.Language == "" {
		return nil, &entities.BackendError{Provider: GeminiProviderCode, Op: "detect", Message: "malformed model response"}
	}
	if parsed.Confidence <= 0 || parsed.Confidence > 1 {
		parsed.Confidence = defaultGeminiConfidence
	}

	return &entities.DetectionResult{
		Language:   strings.ToLower(parsed.Language),
		Confidence: parsed.Confidence,
	}, nil
}

func (b *GeminiBackend) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGeminiTimeout)
	defer cancel()

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.1)),
	}

	response, err := b.client.Models.GenerateContent(ctx, b.model, contents, config)
	if err != nil {
		b.logger.Warn("Gemini generation failed", zap.Error(err))
		return "", err
	}
	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content generated")
	}

	var out string
	for _, part := range response.Candidates[0].Content.Parts {
		out += part.Text
	}
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("empty response")
	}
	return out, nil
}

// stripFences removes a ```json fenced block when the model wraps its output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "```"); idx >= 0 {
		rest := s[idx+3:]
		rest = strings.TrimPrefix(rest, "json")
		if j := strings.Index(rest, "```"); j >= 0 {
			return strings.TrimSpace(rest[:j])
		}
	}
	return s
}
