package audit

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/seoscan/seoscan/internal/model"
)

// DefaultBatchConcurrency is how many URLs are audited at once.
const DefaultBatchConcurrency = 2

// BatchResult pairs one URL with its outcome. Exactly one of Report and Err
// is set.
type BatchResult struct {
	URL    string
	Report *model.Report
	Err    error
}

// Batch audits multiple URLs concurrently.
type Batch struct {
	auditor     *Auditor
	concurrency int
}

// NewBatch creates a Batch over an Auditor. A concurrency below one falls
// back to the default.
func NewBatch(auditor *Auditor, concurrency int) *Batch {
	if concurrency < 1 {
		concurrency = DefaultBatchConcurrency
	}
	return &Batch{auditor: auditor, concurrency: concurrency}
}

// Run audits every URL and returns one result per URL, in input order.
// A failed audit records its error without aborting the others.
func (b *Batch) Run(ctx context.Context, urls []string) []BatchResult {
	results := make([]BatchResult, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, u := range urls {
		g.Go(func() error {
			report, err := b.auditor.Run(ctx, u)
			results[i] = BatchResult{URL: u, Report: report, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
