package lendon

import (
	"errors"
	"fmt"
	"time"
)

// ErrRequestInFlight is returned by Submit while a request is still processing.
// The submission is dropped and the session state is left untouched.
var ErrRequestInFlight = errors.New("a generation request is already in flight")

// EmptyInputError indicates the source text was blank after trimming.
type EmptyInputError struct {
	Input string
}

func (e *EmptyInputError) Error() string {
	if e.Input == "" {
		return "source text is empty"
	}
	return fmt.Sprintf("source text is blank (%d whitespace characters)", len(e.Input))
}

// MissingTranslationError indicates a localized string is absent for a language.
type MissingTranslationError struct {
	Language string
	Key      string
}

func (e *MissingTranslationError) Error() string {
	return fmt.Sprintf("missing translation: %s has no %q", e.Language, e.Key)
}

// GenerationFailure is the single error kind surfaced in the error phase.
// Network, quota and malformed-payload failures all collapse into it.
type GenerationFailure struct {
	Message string
	Cause   error
}

func (e *GenerationFailure) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *GenerationFailure) Unwrap() error {
	return e.Cause
}

// ProviderError indicates an AI provider failure (API error, rate limit, etc.).
type ProviderError struct {
	Message    string
	Cause      error
	Retryable  bool          // Whether the operation can be retried
	RetryAfter time.Duration // Server-suggested wait before retrying, 0 if none
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// CacheError indicates a cache operation failure.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}

// ProcessorError indicates the pasted source could not be processed.
type ProcessorError struct {
	Message     string
	Cause       error
	ContentType string // The type of content that failed to process
}

func (e *ProcessorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("processor error (%s): %s: %v", e.ContentType, e.Message, e.Cause)
	}
	return fmt.Sprintf("processor error (%s): %s", e.ContentType, e.Message)
}

func (e *ProcessorError) Unwrap() error {
	return e.Cause
}

// IsEmptyInput reports whether err is an EmptyInputError.
func IsEmptyInput(err error) bool {
	var target *EmptyInputError
	return errors.As(err, &target)
}
