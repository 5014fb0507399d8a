package lendon

import (
	"context"
)

// Generator is the interface for text-generation backends.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (GenerationResult, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, req GenerationRequest) (GenerationResult, error)

// Generate calls f(ctx, req).
func (f GeneratorFunc) Generate(ctx context.Context, req GenerationRequest) (GenerationResult, error) {
	return f(ctx, req)
}

// ResultCache is the interface for generated-result caching.
type ResultCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// SourceProcessor normalizes pasted source text before a request is captured.
type SourceProcessor interface {
	Process(content string) (string, error)
	ContentType() string
}

type regenerationKey struct{}

// WithRegeneration marks ctx as a regenerate dispatch. Caches skip their
// lookup and providers ask for a different wording.
func WithRegeneration(ctx context.Context) context.Context {
	return context.WithValue(ctx, regenerationKey{}, true)
}

// IsRegeneration reports whether ctx was marked by WithRegeneration.
func IsRegeneration(ctx context.Context) bool {
	v, _ := ctx.Value(regenerationKey{}).(bool)
	return v
}

// CachedGenerator serves repeated requests from a ResultCache.
type CachedGenerator struct {
	generator Generator
	cache     ResultCache
	model     string
}

// CachedGeneratorOption is a functional option for configuring a CachedGenerator.
type CachedGeneratorOption func(*CachedGenerator)

// WithCacheModel namespaces cache keys by model name.
func WithCacheModel(model string) CachedGeneratorOption {
	return func(g *CachedGenerator) {
		g.model = model
	}
}

// NewCachedGenerator wraps generator with cache.
func NewCachedGenerator(generator Generator, cache ResultCache, opts ...CachedGeneratorOption) *CachedGenerator {
	g := &CachedGenerator{
		generator: generator,
		cache:     cache,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate implements Generator with caching.
func (g *CachedGenerator) Generate(ctx context.Context, req GenerationRequest) (GenerationResult, error) {
	key := CacheKeyExtended(RequestFingerprint(req), string(req.Scenario), g.model)

	if g.cache != nil && !IsRegeneration(ctx) {
		if cached, ok := g.cache.Get(key); ok {
			return GenerationResult{Text: cached, Scenario: req.Scenario}, nil
		}
	}

	result, err := g.generator.Generate(ctx, req)
	if err != nil {
		return GenerationResult{}, err
	}

	if g.cache != nil {
		_ = g.cache.Set(key, result.Text) // Ignore cache set errors
	}

	return result, nil
}

// Verify CachedGenerator implements Generator
var _ Generator = (*CachedGenerator)(nil)
