package lendon

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session owns the generation lifecycle of one seller's workspace:
// the selected scenario, the live input and the single GenerationState.
//
// The display surface drives it through SetScenario, SetSourceText, Submit,
// Regenerate and Reset, and reads it through State and Snapshot. At most one
// request is in flight; its completion arrives on a separate goroutine and is
// applied only if the request has not been discarded in the meantime.
type Session struct {
	generator Generator
	processor SourceProcessor
	logger    *zap.Logger
	metrics   *Metrics
	timeout   time.Duration
	observers []func(Snapshot)

	mu         sync.Mutex
	scenario   Scenario
	sourceText string
	state      GenerationState
	seq        uint64        // Identifies the request whose completion is still wanted
	changed    chan struct{} // Closed and replaced on every transition and delivery

	version    uint64     // Bumped on every transition
	pending    []Snapshot // Transitions not yet handed to observers, oldest first
	delivered  uint64     // Version of the last snapshot handed to observers
	delivering bool       // A goroutine is draining pending
}

// SessionOption is a functional option for configuring a Session.
type SessionOption func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger *zap.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records session activity into m.
func WithMetrics(m *Metrics) SessionOption {
	return func(s *Session) {
		s.metrics = m
	}
}

// WithTimeout bounds each generation call. A timeout ends in the error phase.
func WithTimeout(d time.Duration) SessionOption {
	return func(s *Session) {
		s.timeout = d
	}
}

// WithObserver registers fn to receive a snapshot after every transition.
// Snapshots arrive one at a time in transition order, outside the session
// lock. fn may call back into the session but must not call Wait.
func WithObserver(fn func(Snapshot)) SessionOption {
	return func(s *Session) {
		s.observers = append(s.observers, fn)
	}
}

// WithSourceProcessor normalizes pasted source text before it is captured.
func WithSourceProcessor(p SourceProcessor) SessionOption {
	return func(s *Session) {
		s.processor = p
	}
}

// WithInitialScenario sets the scenario selected at start.
func WithInitialScenario(scenario Scenario) SessionOption {
	return func(s *Session) {
		if scenario.Valid() {
			s.scenario = scenario
		}
	}
}

// NewSession creates an idle session that dispatches to generator.
func NewSession(generator Generator, opts ...SessionOption) *Session {
	s := &Session{
		generator: generator,
		logger:    zap.NewNop(),
		scenario:  ScenarioSEOTitle,
		state:     GenerationState{Phase: PhaseIdle},
		changed:   make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SetScenario selects the live scenario. An in-flight request keeps the
// scenario it captured.
func (s *Session) SetScenario(scenario Scenario) error {
	if !scenario.Valid() {
		return fmt.Errorf("unknown scenario %q", scenario)
	}

	s.mu.Lock()
	s.scenario = scenario
	s.transitionLocked()
	s.mu.Unlock()

	s.deliver()
	return nil
}

// SetSourceText records an edit of the live input. Editing after a result or
// an error returns the session to idle; an in-flight request is unaffected.
func (s *Session) SetSourceText(text string) {
	s.mu.Lock()
	s.sourceText = text
	if s.state.Phase == PhaseReady || s.state.Phase == PhaseError {
		s.state = GenerationState{Phase: PhaseIdle}
	}
	s.transitionLocked()
	s.mu.Unlock()

	s.deliver()
}

// Submit captures a new request from the given input and dispatches it.
//
// Blank input fails with *EmptyInputError. While a request is in flight the
// submission is dropped and ErrRequestInFlight is returned. In both cases the
// state is unchanged. ctx bounds the generation call.
func (s *Session) Submit(ctx context.Context, sourceText string, glossaryTerms, injectedKeywords []string) error {
	text := sourceText
	if s.processor != nil {
		processed, err := s.processor.Process(sourceText)
		if err != nil {
			return err
		}
		text = processed
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return &EmptyInputError{Input: sourceText}
	}

	s.mu.Lock()
	if s.state.Phase == PhaseProcessing {
		inflight := s.state.Request.ID
		s.mu.Unlock()
		s.logger.Debug("submission dropped, request in flight", zap.String("request_id", inflight))
		return ErrRequestInFlight
	}

	req := NewGenerationRequest(s.scenario, text, glossaryTerms, injectedKeywords)
	s.sourceText = sourceText
	s.dispatchLocked(ctx, req, false)
	s.transitionLocked()
	s.mu.Unlock()

	s.deliver()
	return nil
}

// Regenerate re-dispatches the last captured request unchanged. It only acts
// in the ready or error phase and reports whether a request was dispatched.
func (s *Session) Regenerate(ctx context.Context) bool {
	s.mu.Lock()
	if (s.state.Phase != PhaseReady && s.state.Phase != PhaseError) || s.state.Request == nil {
		phase := s.state.Phase
		s.mu.Unlock()
		s.logger.Debug("regenerate ignored", zap.String("phase", string(phase)))
		return false
	}

	req := *s.state.Request
	s.dispatchLocked(ctx, req, true)
	s.transitionLocked()
	s.mu.Unlock()

	s.deliver()
	return true
}

// Reset returns to idle, discarding any result, error and captured request.
// The completion of a discarded in-flight request is ignored.
func (s *Session) Reset() {
	s.mu.Lock()
	if s.state.Phase == PhaseProcessing {
		s.logger.Info("in-flight request discarded", zap.String("request_id", s.state.Request.ID))
	}
	s.seq++
	s.state = GenerationState{Phase: PhaseIdle}
	s.transitionLocked()
	s.mu.Unlock()

	s.deliver()
}

// Wait blocks until no request is in flight and observers have seen the
// state reached, then returns it.
func (s *Session) Wait(ctx context.Context) (GenerationState, error) {
	for {
		s.mu.Lock()
		if s.state.Phase != PhaseProcessing && s.delivered == s.version {
			state := s.state.clone()
			s.mu.Unlock()
			return state, nil
		}
		changed := s.changed
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return s.State(), ctx.Err()
		case <-changed:
		}
	}
}

// State returns a copy of the current generation state.
func (s *Session) State() GenerationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Scenario returns the live scenario.
func (s *Session) Scenario() Scenario {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scenario
}

// SourceText returns the live input text.
func (s *Session) SourceText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sourceText
}

// Snapshot returns everything the display surface renders.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// dispatchLocked moves to processing and starts the generation call.
func (s *Session) dispatchLocked(ctx context.Context, req GenerationRequest, regenerate bool) {
	s.seq++
	seq := s.seq
	captured := req
	s.state = GenerationState{Phase: PhaseProcessing, Request: &captured}
	s.metrics.observeSubmit()

	s.logger.Info("generation dispatched",
		zap.String("request_id", req.ID),
		zap.String("scenario", string(req.Scenario)),
		zap.Bool("regenerate", regenerate),
		zap.Int("glossary_terms", len(req.GlossaryTerms)),
		zap.Int("keywords", len(req.InjectedKeywords)),
	)

	go s.run(ctx, seq, req, regenerate)
}

func (s *Session) run(ctx context.Context, seq uint64, req GenerationRequest, regenerate bool) {
	if regenerate {
		ctx = WithRegeneration(ctx)
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := s.generator.Generate(ctx, req)
	s.complete(seq, req, result, err, time.Since(start))
}

// complete applies a generation outcome if its request is still wanted.
func (s *Session) complete(seq uint64, req GenerationRequest, result GenerationResult, err error, elapsed time.Duration) {
	if err == nil && strings.TrimSpace(result.Text) == "" {
		err = &ProviderError{Message: "empty result"}
	}

	s.mu.Lock()
	if seq != s.seq || s.state.Phase != PhaseProcessing {
		s.mu.Unlock()
		s.logger.Debug("stale completion ignored", zap.String("request_id", req.ID))
		return
	}

	var outcome *ValidationOutcome
	if err != nil {
		var failure *GenerationFailure
		if !errors.As(err, &failure) {
			failure = &GenerationFailure{Message: "generation failed", Cause: err}
		}
		s.state = GenerationState{Phase: PhaseError, Request: &req, Err: failure}
		s.logger.Warn("generation failed",
			zap.String("request_id", req.ID),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
	} else {
		// Validate against the captured scenario, not the live tab.
		result.Scenario = req.Scenario
		o := Validate(result)
		outcome = &o
		s.state = GenerationState{Phase: PhaseReady, Request: &req, Result: &result, Outcome: outcome}
		s.logger.Info("generation ready",
			zap.String("request_id", req.ID),
			zap.String("scenario", string(req.Scenario)),
			zap.Int("chars", o.CharacterCount),
			zap.Bool("over_limit", o.IsOverLimit),
			zap.Duration("elapsed", elapsed),
		)
	}
	s.metrics.observeCompletion(req, outcome, err, elapsed)
	s.transitionLocked()
	s.mu.Unlock()

	s.deliver()
}

// transitionLocked queues a snapshot of the new state for observers and
// wakes waiters. Callers run deliver once the lock is released.
func (s *Session) transitionLocked() {
	s.version++
	s.pending = append(s.pending, s.snapshotLocked())
	s.broadcastLocked()
}

func (s *Session) broadcastLocked() {
	close(s.changed)
	s.changed = make(chan struct{})
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Version:    s.version,
		Scenario:   s.scenario,
		SourceText: s.sourceText,
		State:      s.state.clone(),
	}
}

// deliver hands queued snapshots to observers in order. Only one goroutine
// drains at a time; the others leave their snapshots to it.
func (s *Session) deliver() {
	s.mu.Lock()
	if s.delivering {
		s.mu.Unlock()
		return
	}
	s.delivering = true

	for len(s.pending) > 0 {
		batch := s.pending
		s.pending = nil
		s.mu.Unlock()

		for _, snap := range batch {
			for _, fn := range s.observers {
				fn(snap)
			}
		}

		s.mu.Lock()
		s.delivered = batch[len(batch)-1].Version
		s.broadcastLocked()
	}

	s.delivering = false
	s.mu.Unlock()
}

// clone deep-copies the state so callers cannot reach session memory.
func (g GenerationState) clone() GenerationState {
	out := GenerationState{Phase: g.Phase, Err: g.Err}
	if g.Request != nil {
		req := *g.Request
		req.GlossaryTerms = append([]string(nil), g.Request.GlossaryTerms...)
		req.InjectedKeywords = append([]string(nil), g.Request.InjectedKeywords...)
		out.Request = &req
	}
	if g.Result != nil {
		res := *g.Result
		out.Result = &res
	}
	if g.Outcome != nil {
		o := *g.Outcome
		out.Outcome = &o
	}
	return out
}

// normalizeTerms trims, deduplicates and sorts glossary terms.
func normalizeTerms(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// normalizeKeywords trims keywords and drops blanks and repeats, keeping order.
func normalizeKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// NewGenerationRequest captures a request with a fresh ID. Glossary terms
// are trimmed, deduplicated and sorted; keywords keep their order.
func NewGenerationRequest(scenario Scenario, sourceText string, glossaryTerms, injectedKeywords []string) GenerationRequest {
	return GenerationRequest{
		ID:               uuid.NewString(),
		Scenario:         scenario,
		SourceText:       strings.TrimSpace(sourceText),
		GlossaryTerms:    normalizeTerms(glossaryTerms),
		InjectedKeywords: normalizeKeywords(injectedKeywords),
		CreatedAt:        time.Now(),
	}
}

// SplitList splits a comma separated input field ("Apple, iPhone，Pro")
// into items. Full-width commas are accepted.
func SplitList(value string) []string {
	value = strings.ReplaceAll(value, "，", ",")
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
