package tables

import (
	"context"
	"runtime"
	"sync"

	"github.com/tsawler/labscan/model"
)

// ReconstructPages reconstructs every page concurrently and concatenates the
// resulting rows in the order the pages are given. A nil reconstructor selects
// the registered "geometric" one.
//
// The only error is ctx.Err() when the context ends before all pages are done.
func ReconstructPages(ctx context.Context, r Reconstructor, pages []model.Page) (model.Table, error) {
	if r == nil {
		r = GetReconstructor("geometric")
	}

	results := make([]model.Table, len(pages))
	sem := make(chan struct{}, runtime.NumCPU())

	var wg sync.WaitGroup
	for i := range pages {
		select {
		case <-ctx.Done():
			wg.Wait()
			return model.NewTable(), ctx.Err()
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = r.Reconstruct(pages[i].Tokens)
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return model.NewTable(), err
	}

	out := model.NewTable()
	for _, t := range results {
		out.Concat(t)
	}
	return out, nil
}
