package synth

import (
	"context"
	"sync"

	"delugekit/internal/regions"
)

type extraction struct {
	source  regions.SourceFile
	regions []regions.Region
	err     error
}

// extractAll runs regions.Extract over files with at most workers in
// flight. Results are indexed like files.
func extractAll(ctx context.Context, files []string, workers int, opts regions.Options) []extraction {
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	results := make([]extraction, len(files))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = extraction{source: regions.SourceFile{Path: files[idx]}, err: err}
					continue
				}
				src, regs, err := regions.Extract(files[idx], opts)
				results[idx] = extraction{source: src, regions: regs, err: err}
			}
		}()
	}

	for idx := range files {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()
	return results
}
