package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// BatchResult aggregates a run over a document directory.
type BatchResult struct {
	Succeeded []*Summary
	Failed    map[string]error
}

// DocumentProcessor is what the runner drives per document.
type DocumentProcessor interface {
	ProcessDocument(ctx context.Context, pdfPath string) (*Summary, error)
}

// Runner fans a directory of PDFs out to a bounded worker pool. Document
// failures are isolated: they are collected, not propagated, so one bad scan
// never cancels the rest of the batch.
type Runner struct {
	Logger    *slog.Logger
	Processor DocumentProcessor
	Workers   int
}

func NewRunner(logger *slog.Logger, proc DocumentProcessor, workers int) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if workers <= 0 {
		workers = 4
	}
	return &Runner{Logger: logger, Processor: proc, Workers: workers}
}

// Run processes every *.pdf under dir, in name order for reproducible logs.
func (r *Runner) Run(ctx context.Context, dir string) (*BatchResult, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	r.Logger.Info("batch.start", "dir", dir, "documents", len(paths), "workers", r.Workers)

	result := &BatchResult{Failed: map[string]error{}}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Workers)
	for _, path := range paths {
		g.Go(func() error {
			sum, err := r.Processor.ProcessDocument(gctx, path)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				r.Logger.Error("batch.document.failed", "pdf", path, "err", err)
				result.Failed[path] = err
				return nil
			}
			result.Succeeded = append(result.Succeeded, sum)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(result.Succeeded, func(i, j int) bool {
		return result.Succeeded[i].Document < result.Succeeded[j].Document
	})
	r.Logger.Info("batch.done", "succeeded", len(result.Succeeded), "failed", len(result.Failed))
	return result, nil
}
