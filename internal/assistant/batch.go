package assistant

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/hyperjump/sahayak/internal/models"
)

// RespondAll answers independent queries concurrently on a pool of at most
// workers goroutines (zero or less means one per CPU). Results keep the order
// of queries. Every query shares loc and has no history.
func (a *Assistant) RespondAll(ctx context.Context, queries []string, loc *models.Location, workers int) ([]models.SearchResult, error) {
	results := make([]models.SearchResult, len(queries))
	if len(queries) == 0 {
		return results, nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var wg sync.WaitGroup
	pool, err := ants.NewPoolWithFunc(min(workers, len(queries)), func(arg interface{}) {
		defer wg.Done()
		i := arg.(int)
		results[i] = a.Respond(ctx, queries[i], loc, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	for i := range queries {
		wg.Add(1)
		if err := pool.Invoke(i); err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("failed to schedule query %d: %w", i, err)
		}
	}
	wg.Wait()
	return results, nil
}
