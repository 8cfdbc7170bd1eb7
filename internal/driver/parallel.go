package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"weft/internal/loader"
)

// LoadAll runs one load session per entry, fanning out across jobs workers
// (0 = one per CPU). Sessions share nothing, so the only coordination is
// the worker cap; results come back in entry order. The error is non-nil
// only when the context is cancelled — per-page findings stay inside each
// session's diagnostic bag.
func LoadAll(ctx context.Context, root string, entries []string, opts loader.Options, jobs int) ([]LoadResult, error) {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([]LoadResult, len(entries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, entry := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = LoadResult{
				Entry:   entry,
				Session: Load(root, entry, opts),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
