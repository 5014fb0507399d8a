package lendon

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// generateCall is one call observed by gatedGenerator.
type generateCall struct {
	req        GenerationRequest
	regenerate bool
	replies    chan generateReply
}

type generateReply struct {
	text string
	err  error
}

// gatedGenerator blocks every call until the test replies to it.
type gatedGenerator struct {
	calls chan generateCall
}

func newGatedGenerator() *gatedGenerator {
	return &gatedGenerator{calls: make(chan generateCall, 8)}
}

func (g *gatedGenerator) Generate(ctx context.Context, req GenerationRequest) (GenerationResult, error) {
	call := generateCall{req: req, regenerate: IsRegeneration(ctx), replies: make(chan generateReply, 1)}
	g.calls <- call
	select {
	case <-ctx.Done():
		return GenerationResult{}, ctx.Err()
	case r := <-call.replies:
		if r.err != nil {
			return GenerationResult{}, r.err
		}
		// Deliberately report a different scenario; the session must ignore it.
		return GenerationResult{Text: r.text, Scenario: ScenarioMarketing}, nil
	}
}

func (g *gatedGenerator) nextCall(t *testing.T) generateCall {
	t.Helper()
	select {
	case c := <-g.calls:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a generate call")
		return generateCall{}
	}
}

func (c generateCall) reply(r generateReply) {
	c.replies <- r
}

func waitState(t *testing.T, s *Session) GenerationState {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	state, err := s.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	return state
}

func TestSession_StartsIdle(t *testing.T) {
	s := NewSession(newGatedGenerator())

	state := s.State()
	if state.Phase != PhaseIdle || state.Request != nil || state.Result != nil || state.Err != nil {
		t.Errorf("Expected empty idle state, got %+v", state)
	}
	if s.Scenario() != ScenarioSEOTitle {
		t.Errorf("Expected SEO title by default, got %s", s.Scenario())
	}
}

func TestSession_SubmitEmptyInput(t *testing.T) {
	gen := newGatedGenerator()
	s := NewSession(gen)

	for _, input := range []string{"", "   ", "\n\t "} {
		err := s.Submit(context.Background(), input, nil, nil)

		var empty *EmptyInputError
		if !errors.As(err, &empty) {
			t.Errorf("Submit(%q): expected EmptyInputError, got %v", input, err)
		}
		if s.State().Phase != PhaseIdle {
			t.Errorf("Submit(%q): state should stay idle, got %s", input, s.State().Phase)
		}
	}

	if len(gen.calls) != 0 {
		t.Errorf("Generator should not be called, got %d calls", len(gen.calls))
	}
}

func TestSession_SubmitToReadyOverLimit(t *testing.T) {
	gen := newGatedGenerator()
	s := NewSession(gen)

	if err := s.Submit(context.Background(), "iPhone case", []string{"iPhone", " Apple ", "iPhone"}, []string{"hot", "", "sale"}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	state := s.State()
	if state.Phase != PhaseProcessing {
		t.Fatalf("Expected processing, got %s", state.Phase)
	}
	if state.Request == nil || state.Request.SourceText != "iPhone case" {
		t.Fatalf("Unexpected captured request: %+v", state.Request)
	}
	if got := strings.Join(state.Request.GlossaryTerms, ","); got != "Apple,iPhone" {
		t.Errorf("Glossary should be a sorted set, got %q", got)
	}
	if got := strings.Join(state.Request.InjectedKeywords, ","); got != "hot,sale" {
		t.Errorf("Keywords should keep order and drop blanks, got %q", got)
	}
	if state.Request.ID == "" {
		t.Error("Request should have an ID")
	}

	call := gen.nextCall(t)
	if call.regenerate {
		t.Error("First dispatch should not be a regeneration")
	}
	call.reply(generateReply{text: strings.Repeat("A", 121)})

	state = waitState(t, s)
	if state.Phase != PhaseReady {
		t.Fatalf("Expected ready, got %s (%v)", state.Phase, state.Err)
	}
	if state.Result.Scenario != ScenarioSEOTitle {
		t.Errorf("Result scenario should be the request's, got %s", state.Result.Scenario)
	}
	if state.Outcome == nil || !state.Outcome.IsOverLimit || state.Outcome.CharacterCount != 121 {
		t.Errorf("Expected over-limit outcome, got %+v", state.Outcome)
	}
}

func TestSession_SubmitWhileProcessingIsDropped(t *testing.T) {
	gen := newGatedGenerator()
	s := NewSession(gen)

	if err := s.Submit(context.Background(), "iPhone case", nil, nil); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	original := s.State().Request
	call := gen.nextCall(t)

	err := s.Submit(context.Background(), "other text", []string{"X"}, nil)
	if !errors.Is(err, ErrRequestInFlight) {
		t.Fatalf("Expected ErrRequestInFlight, got %v", err)
	}

	state := s.State()
	if state.Phase != PhaseProcessing {
		t.Errorf("Expected still processing, got %s", state.Phase)
	}
	if state.Request.ID != original.ID || state.Request.SourceText != "iPhone case" {
		t.Errorf("In-flight request was modified: %+v", state.Request)
	}

	call.reply(generateReply{text: "Ốp lưng iPhone"})
	waitState(t, s)

	select {
	case c := <-gen.calls:
		t.Errorf("Dropped submission reached the generator: %+v", c.req)
	default:
	}
}

func TestSession_RegenerateReusesCapturedRequest(t *testing.T) {
	gen := newGatedGenerator()
	s := NewSession(gen)

	if err := s.Submit(context.Background(), "iPhone case", []string{"Apple"}, nil); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	first := gen.nextCall(t)

	// Editing while processing does not touch the in-flight request.
	s.SetSourceText("edited after submit")
	if s.State().Phase != PhaseProcessing {
		t.Fatal("Editing while processing should not change the phase")
	}

	first.reply(generateReply{text: "Ốp lưng iPhone chống sốc"})
	if state := waitState(t, s); state.Phase != PhaseReady {
		t.Fatalf("Expected ready, got %s", state.Phase)
	}

	if !s.Regenerate(context.Background()) {
		t.Fatal("Regenerate from ready should dispatch")
	}
	if s.State().Phase != PhaseProcessing {
		t.Errorf("Expected processing after regenerate, got %s", s.State().Phase)
	}

	second := gen.nextCall(t)
	if !second.regenerate {
		t.Error("Regenerate dispatch should be marked as a regeneration")
	}
	if second.req.SourceText != "iPhone case" {
		t.Errorf("Regenerate should reuse the captured text, got %q", second.req.SourceText)
	}
	if second.req.ID != first.req.ID {
		t.Error("Regenerate should reuse the captured request unchanged")
	}

	second.reply(generateReply{text: "Ốp lưng iPhone siêu bền"})
	state := waitState(t, s)
	if state.Result.Text != "Ốp lưng iPhone siêu bền" {
		t.Errorf("Unexpected result: %q", state.Result.Text)
	}
}

func TestSession_RegenerateIgnoredOutsideReadyOrError(t *testing.T) {
	gen := newGatedGenerator()
	s := NewSession(gen)

	if s.Regenerate(context.Background()) {
		t.Error("Regenerate from idle should be a no-op")
	}

	if err := s.Submit(context.Background(), "iPhone case", nil, nil); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	call := gen.nextCall(t)

	if s.Regenerate(context.Background()) {
		t.Error("Regenerate while processing should be a no-op")
	}

	call.reply(generateReply{text: "ok"})
	waitState(t, s)
}

func TestSession_FailureThenRegenerate(t *testing.T) {
	gen := newGatedGenerator()
	s := NewSession(gen)

	if err := s.Submit(context.Background(), "客服：什么时候发货？", nil, nil); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	call := gen.nextCall(t)
	call.reply(generateReply{err: &ProviderError{Message: "quota exceeded"}})

	state := waitState(t, s)
	if state.Phase != PhaseError {
		t.Fatalf("Expected error phase, got %s", state.Phase)
	}

	var failure *GenerationFailure
	if !errors.As(state.Err, &failure) {
		t.Fatalf("Expected GenerationFailure, got %T", state.Err)
	}
	if !strings.Contains(failure.Error(), "quota exceeded") {
		t.Errorf("Failure should carry the cause, got %q", failure.Error())
	}
	if state.Result != nil || state.Outcome != nil {
		t.Error("Error state should not carry a result")
	}

	if !s.Regenerate(context.Background()) {
		t.Fatal("Regenerate from error should dispatch")
	}
	retry := gen.nextCall(t)
	retry.reply(generateReply{text: "Dạ, shop sẽ gửi hàng trong hôm nay ạ."})

	if state := waitState(t, s); state.Phase != PhaseReady {
		t.Errorf("Expected ready after regenerate, got %s", state.Phase)
	}
}

func TestSession_EmptyResultIsFailure(t *testing.T) {
	gen := newGatedGenerator()
	s := NewSession(gen)

	if err := s.Submit(context.Background(), "商品", nil, nil); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	call := gen.nextCall(t)
	call.reply(generateReply{text: "  "})

	if state := waitState(t, s); state.Phase != PhaseError {
		t.Errorf("Expected error for empty result, got %s", state.Phase)
	}
}

func TestSession_ScenarioChangeDoesNotAffectInFlight(t *testing.T) {
	gen := newGatedGenerator()
	s := NewSession(gen)

	if err := s.Submit(context.Background(), "iPhone case", nil, nil); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	call := gen.nextCall(t)

	if err := s.SetScenario(ScenarioProductDetail); err != nil {
		t.Fatalf("SetScenario failed: %v", err)
	}
	if call.req.Scenario != ScenarioSEOTitle {
		t.Errorf("In-flight request should keep its scenario, got %s", call.req.Scenario)
	}

	call.reply(generateReply{text: strings.Repeat("B", 130)})
	state := waitState(t, s)

	if !state.Outcome.IsOverLimit {
		t.Error("Result should be validated against the request's SEO limit")
	}
	if s.Scenario() != ScenarioProductDetail {
		t.Errorf("Live scenario should be product detail, got %s", s.Scenario())
	}

	if err := s.SetScenario("TIKTOK"); err == nil {
		t.Error("Expected error for unknown scenario")
	}
}

func TestSession_EditReturnsToIdle(t *testing.T) {
	gen := newGatedGenerator()
	s := NewSession(gen)

	if err := s.Submit(context.Background(), "iPhone case", nil, nil); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	call := gen.nextCall(t)
	call.reply(generateReply{text: "ok"})
	waitState(t, s)

	s.SetSourceText("iPhone case 2")

	state := s.State()
	if state.Phase != PhaseIdle || state.Request != nil {
		t.Errorf("Editing after a result should return to idle, got %+v", state)
	}
	if s.SourceText() != "iPhone case 2" {
		t.Errorf("Unexpected source text %q", s.SourceText())
	}
	if s.Regenerate(context.Background()) {
		t.Error("Regenerate after an edit should be a no-op")
	}
}

func TestSession_ResetDiscardsInFlight(t *testing.T) {
	gen := newGatedGenerator()
	s := NewSession(gen)

	if err := s.Submit(context.Background(), "iPhone case", nil, nil); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	stale := gen.nextCall(t)

	s.Reset()
	if state := s.State(); state.Phase != PhaseIdle || state.Request != nil {
		t.Fatalf("Expected idle after reset, got %+v", state)
	}

	// A new request may start before the old one resolves.
	if err := s.Submit(context.Background(), "手机支架", nil, nil); err != nil {
		t.Fatalf("Submit after reset failed: %v", err)
	}
	fresh := gen.nextCall(t)

	// The discarded request resolves first and must be ignored.
	stale.reply(generateReply{text: "stale"})
	time.Sleep(20 * time.Millisecond)
	if state := s.State(); state.Phase != PhaseProcessing || state.Request.SourceText != "手机支架" {
		t.Fatalf("Stale completion changed the state: %+v", state)
	}

	fresh.reply(generateReply{text: "Giá đỡ điện thoại"})
	state := waitState(t, s)
	if state.Result.Text != "Giá đỡ điện thoại" {
		t.Errorf("Unexpected result %q", state.Result.Text)
	}

	s.Reset()
	if state := s.State(); state.Phase != PhaseIdle || state.Result != nil {
		t.Errorf("Reset should discard the result, got %+v", state)
	}
}

func TestSession_TimeoutIsFailure(t *testing.T) {
	gen := newGatedGenerator()
	s := NewSession(gen, WithTimeout(30*time.Millisecond))

	if err := s.Submit(context.Background(), "iPhone case", nil, nil); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	gen.nextCall(t)

	state := waitState(t, s)
	if state.Phase != PhaseError {
		t.Fatalf("Expected error after timeout, got %s", state.Phase)
	}
	if !errors.Is(state.Err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded cause, got %v", state.Err)
	}
}

func TestSession_StateIsACopy(t *testing.T) {
	gen := newGatedGenerator()
	s := NewSession(gen)

	if err := s.Submit(context.Background(), "iPhone case", []string{"Apple"}, nil); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	call := gen.nextCall(t)

	state := s.State()
	state.Request.SourceText = "tampered"
	state.Request.GlossaryTerms[0] = "tampered"

	again := s.State()
	if again.Request.SourceText != "iPhone case" || again.Request.GlossaryTerms[0] != "Apple" {
		t.Error("Mutating a returned state must not affect the session")
	}

	call.reply(generateReply{text: "ok"})
	waitState(t, s)
}

func TestSession_ObserverAndMetrics(t *testing.T) {
	gen := newGatedGenerator()
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	phases := make(chan Phase, 4)
	s := NewSession(gen,
		WithMetrics(metrics),
		WithObserver(func(snap Snapshot) {
			phases <- snap.State.Phase
		}),
	)

	if err := s.Submit(context.Background(), "iPhone case", nil, nil); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	call := gen.nextCall(t)
	call.reply(generateReply{text: strings.Repeat("A", 121)})

	for _, want := range []Phase{PhaseProcessing, PhaseReady} {
		select {
		case got := <-phases:
			if got != want {
				t.Errorf("Observed phase %s, want %s", got, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %s notification", want)
		}
	}

	if v := testutil.ToFloat64(metrics.submissions); v != 1 {
		t.Errorf("Expected 1 submission, got %v", v)
	}
	if v := testutil.ToFloat64(metrics.generations.WithLabelValues("ready")); v != 1 {
		t.Errorf("Expected 1 ready generation, got %v", v)
	}
	if v := testutil.ToFloat64(metrics.overLimit.WithLabelValues(string(ScenarioSEOTitle))); v != 1 {
		t.Errorf("Expected 1 over-limit result, got %v", v)
	}
}

// display records what a slow observer last rendered.
type display struct {
	mu       sync.Mutex
	last     Snapshot
	versions []uint64
	active   int32
	overlap  int32
}

func (d *display) render(snap Snapshot) {
	if atomic.AddInt32(&d.active, 1) > 1 {
		atomic.AddInt32(&d.overlap, 1)
	}
	time.Sleep(2 * time.Millisecond)

	d.mu.Lock()
	d.last = snap
	d.versions = append(d.versions, snap.Version)
	d.mu.Unlock()

	atomic.AddInt32(&d.active, -1)
}

func TestSession_ObserverSeesTransitionsInOrder(t *testing.T) {
	instant := GeneratorFunc(func(ctx context.Context, req GenerationRequest) (GenerationResult, error) {
		return GenerationResult{Text: "ok"}, nil
	})

	for run := 0; run < 5; run++ {
		d := &display{}
		s := NewSession(instant, WithObserver(d.render))

		if err := s.Submit(context.Background(), "手机壳", nil, nil); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		state := waitState(t, s)
		if !s.Regenerate(context.Background()) {
			t.Fatal("Regenerate should be accepted after ready")
		}
		state = waitState(t, s)

		d.mu.Lock()
		shown := d.last
		versions := append([]uint64(nil), d.versions...)
		d.mu.Unlock()

		if shown.State.Phase != state.Phase || shown.Version != s.Snapshot().Version {
			t.Errorf("run %d: display shows %s (v%d), session is %s (v%d)",
				run, shown.State.Phase, shown.Version, state.Phase, s.Snapshot().Version)
		}
		if n := atomic.LoadInt32(&d.overlap); n != 0 {
			t.Errorf("run %d: observer ran concurrently %d times", run, n)
		}
		if len(versions) != 4 {
			t.Errorf("run %d: expected 4 notifications, got %v", run, versions)
		}
		for i := 1; i < len(versions); i++ {
			if versions[i] <= versions[i-1] {
				t.Errorf("run %d: notifications out of order: %v", run, versions)
				break
			}
		}
	}
}

func TestSession_ObserverMayCallBack(t *testing.T) {
	instant := GeneratorFunc(func(ctx context.Context, req GenerationRequest) (GenerationResult, error) {
		return GenerationResult{Text: "ok"}, nil
	})

	var (
		s      *Session
		mu     sync.Mutex
		phases []Phase
	)
	s = NewSession(instant, WithObserver(func(snap Snapshot) {
		mu.Lock()
		phases = append(phases, snap.State.Phase)
		mu.Unlock()
		if snap.State.Phase == PhaseReady {
			s.Reset()
		}
	}))

	if err := s.Submit(context.Background(), "手机壳", nil, nil); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if state := waitState(t, s); state.Phase != PhaseIdle {
		t.Errorf("Expected idle after reset from observer, got %s", state.Phase)
	}

	mu.Lock()
	defer mu.Unlock()
	want := []Phase{PhaseProcessing, PhaseReady, PhaseIdle}
	if len(phases) != len(want) {
		t.Fatalf("Observed %v, want %v", phases, want)
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Errorf("Observed %v, want %v", phases, want)
			break
		}
	}
}

type prefixProcessor struct{}

func (prefixProcessor) Process(content string) (string, error) {
	return strings.TrimPrefix(content, "<p>"), nil
}

func (prefixProcessor) ContentType() string { return "test" }

func TestSession_SourceProcessor(t *testing.T) {
	gen := newGatedGenerator()
	s := NewSession(gen, WithSourceProcessor(prefixProcessor{}))

	if err := s.Submit(context.Background(), "<p>", nil, nil); !IsEmptyInput(err) {
		t.Errorf("Input empty after processing should be rejected, got %v", err)
	}

	if err := s.Submit(context.Background(), "<p>手机壳", nil, nil); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	call := gen.nextCall(t)
	if call.req.SourceText != "手机壳" {
		t.Errorf("Expected processed text, got %q", call.req.SourceText)
	}
	call.reply(generateReply{text: "ok"})
	waitState(t, s)
}

func TestSplitList(t *testing.T) {
	got := SplitList(" Apple, iPhone，Pro Max ,, ")
	want := []string{"Apple", "iPhone", "Pro Max"}

	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("SplitList() = %v, want %v", got, want)
	}
}
