// Package lendon turns Chinese product text into Vietnamese marketplace
// content: SEO titles, product descriptions, customer-service replies and
// marketing copy.
//
// A Session owns the generation lifecycle for one workspace. It captures a
// GenerationRequest on Submit, hands it to a Generator (usually an AI
// provider wrapped with retry, rate limiting and a result cache), and
// validates the result against the scenario's constraints, such as the
// 120 character limit of SEO titles.
//
// Basic usage:
//
//	p := provider.NewOpenAIProvider(provider.OpenAIConfig{
//	    APIKey: os.Getenv("LENDON_API_KEY"),
//	})
//
//	gen := lendon.NewCachedGenerator(
//	    lendon.NewRetryableGenerator(p, lendon.DefaultRetryConfig()),
//	    cache.NewInMemoryCache(3600),
//	)
//
//	s := lendon.NewSession(gen, lendon.WithInitialScenario(lendon.ScenarioSEOTitle))
//	if err := s.Submit(ctx, "苹果15手机壳 防摔 透明", []string{"iPhone 15"}, nil); err != nil {
//	    log.Fatal(err)
//	}
//
//	state, _ := s.Wait(ctx)
//	if state.Phase == lendon.PhaseReady {
//	    fmt.Println(state.Result.Text, state.Outcome)
//	}
package lendon
