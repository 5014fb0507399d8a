package provider

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/holiy930561/LenDon"
	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OfficialProvider implements Generator with the official openai-go SDK.
type OfficialProvider struct {
	client      openai.Client
	model       string
	temperature float64
}

// OfficialConfig holds configuration for the official SDK provider.
type OfficialConfig struct {
	APIKey      string
	Model       string  // default: ModelFlash
	Temperature float64 // default: 0.7
	BaseURL     string  // default: GeminiBaseURL
	MaxRetries  int     // SDK-level retries; 0 leaves retries to the caller
}

// NewOfficialProvider creates a provider backed by openai-go.
func NewOfficialProvider(cfg OfficialConfig) (*OfficialProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("api key missing")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = GeminiBaseURL
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(cfg.MaxRetries),
		option.WithHeader("User-Agent", lendon.UserAgent()),
	}

	model := cfg.Model
	if model == "" {
		model = ModelFlash
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.7
	}

	return &OfficialProvider{
		client:      openai.NewClient(opts...),
		model:       model,
		temperature: temperature,
	}, nil
}

// Model returns the configured model name.
func (p *OfficialProvider) Model() string {
	return p.model
}

// Generate produces localized text for one request.
func (p *OfficialProvider) Generate(ctx context.Context, req GenerationRequest) (GenerationResult, error) {
	regenerate := lendon.IsRegeneration(ctx)

	temperature := p.temperature
	if regenerate {
		temperature = min(temperature+regenerateTemperatureBoost, 1)
	}

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(BuildSystemPrompt(req, regenerate)),
			openai.UserMessage(BuildUserMessage(req)),
		},
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		return GenerationResult{}, &lendon.ProviderError{
			Message:    "chat completion call failed",
			Cause:      err,
			Retryable:  isRetryableAPIError(err),
			RetryAfter: retryAfter(err),
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

// isRetryableAPIError uses the status code when the SDK reports one.
func isRetryableAPIError(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}
	return isRetryableError(err)
}

// retryAfter reads the Retry-After header of a failed call, in seconds or
// as an HTTP date.
func retryAfter(err error) time.Duration {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) || apiErr.Response == nil {
		return 0
	}

	value := apiErr.Response.Header.Get("Retry-After")
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}

// Verify OfficialProvider implements Generator
var _ Generator = (*OfficialProvider)(nil)
