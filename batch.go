package lendon

import (
	"context"
	"strings"
	"sync"
)

// BatchItem is the outcome of one request in a batch.
type BatchItem struct {
	Request GenerationRequest
	Result  GenerationResult
	Outcome ValidationOutcome
	Err     error
}

// DefaultBatchWorkers bounds concurrent generations in GenerateBatch.
const DefaultBatchWorkers = 4

// GenerateBatch runs every request through gen using a bounded pool of
// goroutines. Items are returned in request order. Empty results are
// reported as ProviderError, the same way a Session treats them.
func GenerateBatch(ctx context.Context, gen Generator, reqs []GenerationRequest, workers int) []BatchItem {
	items := make([]BatchItem, len(reqs))
	if len(reqs) == 0 {
		return items
	}
	if workers <= 0 {
		workers = DefaultBatchWorkers
	}
	if workers > len(reqs) {
		workers = len(reqs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				items[i] = generateOne(ctx, gen, reqs[i])
			}
		}()
	}

	for i := range reqs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return items
}

func generateOne(ctx context.Context, gen Generator, req GenerationRequest) BatchItem {
	item := BatchItem{Request: req}

	if err := ctx.Err(); err != nil {
		item.Err = err
		return item
	}

	result, err := gen.Generate(ctx, req)
	if err == nil && strings.TrimSpace(result.Text) == "" {
		err = &ProviderError{Message: "empty result"}
	}
	if err != nil {
		item.Err = err
		return item
	}

	result.Scenario = req.Scenario
	item.Result = result
	item.Outcome = Validate(result)
	return item
}
