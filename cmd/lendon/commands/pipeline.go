package commands

import (
	"fmt"

	"github.com/holiy930561/LenDon"
	"github.com/holiy930561/LenDon/cache"
	"github.com/holiy930561/LenDon/internal/config"
	"github.com/holiy930561/LenDon/provider"
	"go.uber.org/zap"
)

// pipeline is the generator stack built from configuration.
type pipeline struct {
	generator lendon.Generator
	cache     cache.Enumerable
	model     string
	close     func()
}

// newProvider selects the generation backend.
func newProvider(cfg *config.Config) (lendon.Generator, string, error) {
	switch cfg.Backend {
	case config.BackendOpenAI:
		p := provider.NewOpenAIProvider(provider.OpenAIConfig{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			BaseURL:     cfg.BaseURL,
		})
		return p, p.Model(), nil
	case config.BackendOfficial:
		p, err := provider.NewOfficialProvider(provider.OfficialConfig{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			Temperature: float64(cfg.Temperature),
			BaseURL:     cfg.BaseURL,
		})
		if err != nil {
			return nil, "", err
		}
		return p, p.Model(), nil
	case config.BackendMock:
		return provider.NewMockProvider(), "mock", nil
	default:
		return nil, "", fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// newCache uses Redis when configured, memory otherwise. noCache disables
// caching entirely.
func newCache(cfg *config.Config, log *zap.Logger, noCache bool) (cache.Enumerable, func(), error) {
	if noCache {
		return nil, func() {}, nil
	}
	if cfg.RedisURL == "" {
		return cache.NewInMemoryCache(cfg.CacheTTL), func() {}, nil
	}

	rc, err := cache.NewRedisCache(cache.RedisConfig{
		URL:    cfg.RedisURL,
		TTL:    cfg.CacheTTL,
		Logger: log,
	})
	if err != nil {
		return nil, nil, err
	}
	return rc, func() { _ = rc.Close() }, nil
}

// buildPipeline wraps the provider with rate limiting, retries and the
// result cache, innermost first.
func buildPipeline(cfg *config.Config, log *zap.Logger, noCache bool) (*pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	gen, model, err := newProvider(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RequestsPerMinute > 0 && cfg.Backend != config.BackendMock {
		gen = lendon.NewRateLimitedGenerator(gen, lendon.RateLimitConfig{RequestsPerMinute: cfg.RequestsPerMinute})
	}

	retryCfg := lendon.DefaultRetryConfig()
	retryCfg.MaxRetries = cfg.MaxRetries
	gen = lendon.NewRetryableGenerator(gen, retryCfg, lendon.WithRetryLogger(log))

	c, closeCache, err := newCache(cfg, log, noCache)
	if err != nil {
		return nil, err
	}

	p := &pipeline{generator: gen, model: model, close: closeCache}
	if c != nil {
		p.cache = c
		p.generator = lendon.NewCachedGenerator(gen, c, lendon.WithCacheModel(model))
	}

	log.Debug("pipeline ready",
		zap.String("backend", cfg.Backend),
		zap.String("model", model),
		zap.Bool("cache", c != nil),
		zap.Bool("redis", cfg.RedisURL != ""),
	)

	return p, nil
}
