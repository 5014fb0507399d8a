package lendon

import (
	"errors"
	"fmt"
	"testing"
)

func TestGenerationFailure(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := &GenerationFailure{Message: "generation failed", Cause: cause}

	if err.Error() != "generation failed: quota exceeded" {
		t.Errorf("unexpected error message: %s", err.Error())
	}

	if err.Unwrap() != cause {
		t.Error("Unwrap() should return the cause")
	}

	// Without cause
	err2 := &GenerationFailure{Message: "simple error"}
	if err2.Error() != "simple error" {
		t.Errorf("unexpected error message: %s", err2.Error())
	}
}

func TestEmptyInputError(t *testing.T) {
	err := &EmptyInputError{}
	if err.Error() != "source text is empty" {
		t.Errorf("unexpected error message: %s", err.Error())
	}

	err2 := &EmptyInputError{Input: "   "}
	if err2.Error() != "source text is blank (3 whitespace characters)" {
		t.Errorf("unexpected error message: %s", err2.Error())
	}

	wrapped := fmt.Errorf("submit: %w", err2)
	if !IsEmptyInput(wrapped) {
		t.Error("IsEmptyInput should see through wrapping")
	}
	if IsEmptyInput(errors.New("other")) {
		t.Error("IsEmptyInput should be false for unrelated errors")
	}
}

func TestMissingTranslationError(t *testing.T) {
	err := &MissingTranslationError{Language: "zh", Key: "output.copy"}

	expected := `missing translation: zh has no "output.copy"`
	if err.Error() != expected {
		t.Errorf("unexpected error message: %s, want %s", err.Error(), expected)
	}
}

func TestProviderError(t *testing.T) {
	err := &ProviderError{Message: "rate limited", Retryable: true}

	if err.Error() != "provider error: rate limited" {
		t.Errorf("unexpected error message: %s", err.Error())
	}

	if !err.Retryable {
		t.Error("error should be retryable")
	}
}

func TestCacheError(t *testing.T) {
	err := &CacheError{Message: "connection failed"}

	if err.Error() != "cache error: connection failed" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
}

func TestProcessorError(t *testing.T) {
	err := &ProcessorError{Message: "parse failed", ContentType: "html"}

	if err.Error() != "processor error (html): parse failed" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
}
