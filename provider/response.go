package provider

import (
	"encoding/json"
	"strings"

	"github.com/holiy930561/LenDon"
)

// parseResponse extracts the generated text from a model reply.
// It accepts {"result": "..."}, an object whose first string value is the
// text, or bare text.
func parseResponse(content string) (string, error) {
	content = stripCodeFence(strings.TrimSpace(content))

	var objResult map[string]interface{}
	if err := json.Unmarshal([]byte(content), &objResult); err == nil {
		if result, ok := objResult["result"].(string); ok {
			return nonEmpty(result)
		}

		// Fallback: find first string value
		for _, v := range objResult {
			if s, ok := v.(string); ok {
				return nonEmpty(s)
			}
		}

		return "", &lendon.ProviderError{
			Message:   "invalid response format: no text field",
			Retryable: false,
		}
	}

	var strResult string
	if err := json.Unmarshal([]byte(content), &strResult); err == nil {
		return nonEmpty(strResult)
	}

	if strings.HasPrefix(content, "{") || strings.HasPrefix(content, "[") {
		return "", &lendon.ProviderError{
			Message:   "invalid response format: malformed JSON",
			Retryable: false,
		}
	}

	return nonEmpty(content)
}

func nonEmpty(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &lendon.ProviderError{
			Message:   "empty result",
			Retryable: false,
		}
	}
	return text, nil
}

// stripCodeFence removes a surrounding ``` block some models add despite
// the prompt.
func stripCodeFence(content string) string {
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```")
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		content = content[i+1:]
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

func isRetryableError(err error) bool {
	// Check for common retryable conditions
	errStr := strings.ToLower(err.Error())
	retryablePatterns := []string{
		"rate limit",
		"timeout",
		"connection refused",
		"connection reset",
		"temporary",
		"resource_exhausted",
		"503",
		"502",
		"500",
		"429",
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}
