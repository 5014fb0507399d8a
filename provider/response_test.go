package provider

import (
	"errors"
	"testing"

	"github.com/holiy930561/LenDon"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"result key", `{"result": "Ốp lưng iPhone"}`, "Ốp lưng iPhone"},
		{"other key", `{"title": "Ốp lưng iPhone"}`, "Ốp lưng iPhone"},
		{"json string", `"Ốp lưng iPhone"`, "Ốp lưng iPhone"},
		{"bare text", "Ốp lưng iPhone", "Ốp lưng iPhone"},
		{"code fence", "```json\n{\"result\": \"Ốp lưng iPhone\"}\n```", "Ốp lưng iPhone"},
		{"padded", `{"result": "  Dạ vâng  "}`, "Dạ vâng"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseResponse(tt.content)
			if err != nil {
				t.Fatalf("parseResponse failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseResponse() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseResponse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"empty result", `{"result": ""}`},
		{"no string field", `{"result": 42}`},
		{"malformed", `{"result": "unterminated`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseResponse(tt.content)
			var perr *lendon.ProviderError
			if !errors.As(err, &perr) {
				t.Fatalf("Expected ProviderError, got %v", err)
			}
			if perr.Retryable {
				t.Error("Malformed responses should not be retryable")
			}
		})
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{errors.New("error, status code: 429, status: 429 Too Many Requests"), true},
		{errors.New("RESOURCE_EXHAUSTED: quota"), true},
		{errors.New("dial tcp: connection refused"), true},
		{errors.New("error, status code: 401, message: invalid api key"), false},
	}

	for _, tt := range tests {
		if got := isRetryableError(tt.err); got != tt.want {
			t.Errorf("isRetryableError(%q) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
