package provider

import (
	"context"
	"strings"

	"github.com/holiy930561/LenDon"
	"github.com/sashabaranov/go-openai"
)

const (
	// GeminiBaseURL is Gemini's OpenAI-compatible endpoint.
	GeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

	// ModelFlash is the fastest model offered to sellers.
	ModelFlash = "gemini-2.5-flash"

	// ModelPro gives the best quality.
	ModelPro = "gemini-3-pro-preview"

	// regenerateTemperatureBoost is added to the temperature on regeneration.
	regenerateTemperatureBoost = 0.4
)

// OpenAIProvider implements Generator using an OpenAI-compatible chat API.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey      string  // API key
	Model       string  // Model to use (default: ModelFlash)
	Temperature float32 // Temperature for generation (default: 0.7)
	BaseURL     string  // Custom base URL (default: GeminiBaseURL)
}

// NewOpenAIProvider creates a new OpenAI-compatible provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = strings.TrimSuffix(GeminiBaseURL, "/")
	if cfg.BaseURL != "" {
		config.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}

	model := cfg.Model
	if model == "" {
		model = ModelFlash
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.7
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

// Model returns the configured model name.
func (p *OpenAIProvider) Model() string {
	return p.model
}

// Generate produces localized text for one request.
func (p *OpenAIProvider) Generate(ctx context.Context, req GenerationRequest) (GenerationResult, error) {
	regenerate := lendon.IsRegeneration(ctx)

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: BuildSystemPrompt(req, regenerate)},
			{Role: openai.ChatMessageRoleUser, Content: BuildUserMessage(req)},
		},
		Temperature: p.temperatureFor(regenerate),
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return GenerationResult{}, &lendon.ProviderError{
			Message:   "chat completion call failed",
			Cause:     err,
			Retryable: isRetryableError(err),
		}
	}

	if len(resp.Choices) == 0 {
		return GenerationResult{}, &lendon.ProviderError{
			Message:   "no response from model",
			Retryable: true,
		}
	}

	text, err := parseResponse(resp.Choices[0].Message.Content)
	if err != nil {
		return GenerationResult{}, err
	}

	return GenerationResult{Text: text, Scenario: req.Scenario}, nil
}

func (p *OpenAIProvider) temperatureFor(regenerate bool) float32 {
	if !regenerate {
		return p.temperature
	}
	t := p.temperature + regenerateTemperatureBoost
	if t > 1 {
		t = 1
	}
	return t
}

// Verify OpenAIProvider implements Generator
var _ Generator = (*OpenAIProvider)(nil)
