package lendon

import "time"

// Phase is the lifecycle phase of a generation session.
type Phase string

const (
	// PhaseIdle means nothing has been submitted, or the last result was discarded.
	PhaseIdle Phase = "idle"
	// PhaseProcessing means one request is in flight.
	PhaseProcessing Phase = "processing"
	// PhaseReady means the last request produced a result.
	PhaseReady Phase = "ready"
	// PhaseError means the last request failed.
	PhaseError Phase = "error"
)

// GenerationRequest is the immutable input of one generation call.
type GenerationRequest struct {
	ID               string    // Unique request identifier (UUID)
	Scenario         Scenario  // Scenario captured at submit time
	SourceText       string    // Chinese source text (trimmed)
	GlossaryTerms    []string  // Terms kept untranslated (sorted, unique)
	InjectedKeywords []string  // Keywords/slang to work in, in user order
	CreatedAt        time.Time // Submit time
}

// HasGlossary reports whether any terms must stay untranslated.
func (r GenerationRequest) HasGlossary() bool {
	return len(r.GlossaryTerms) > 0
}

// GenerationResult is what the generation service returns.
type GenerationResult struct {
	Text     string
	Scenario Scenario
}

// ValidationOutcome is derived from a result; it is never stored on its own.
type ValidationOutcome struct {
	CharacterCount int
	Limit          int  // Only meaningful when HasLimit is true
	HasLimit       bool // Whether the scenario defines a character limit
	IsOverLimit    bool
}

// GenerationState is the single state owned by a Session.
type GenerationState struct {
	Phase   Phase
	Request *GenerationRequest // Set while processing, ready or error
	Result  *GenerationResult  // Set only when ready
	Outcome *ValidationOutcome // Set only when ready
	Err     error              // Set only on error (a *GenerationFailure)
}

// Snapshot is what the display surface renders.
type Snapshot struct {
	Version    uint64   // Increases with every transition
	Scenario   Scenario // Live (selected) scenario
	SourceText string   // Live input text
	State      GenerationState
}
