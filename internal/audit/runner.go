package audit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/seoscan/seoscan/internal/check"
	"github.com/seoscan/seoscan/internal/model"
)

// Execution limits.
const (
	// DefaultConcurrency is how many checks run at once. Network checks
	// dominate the wall clock, so a moderate bound keeps the audit fast
	// without hammering the target host.
	DefaultConcurrency = 8

	// DefaultCheckTimeout bounds a single check, network probes included.
	DefaultCheckTimeout = 10 * time.Second
)

// ProgressFunc receives monotonic progress updates as checks finish.
type ProgressFunc func(completed, total int)

// Runner executes a check registry against one target.
//
// Design decision: Every check runs through the same bounded errgroup path
// whether it touches the network or not. Splitting synchronous from network
// checks would save nothing measurable and would create two code paths with
// subtly different ordering and failure semantics.
type Runner struct {
	logger      *slog.Logger
	concurrency int
	timeout     time.Duration
	progress    ProgressFunc
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithConcurrency bounds how many checks run at once. Values below one are
// ignored.
func WithConcurrency(n int) RunnerOption {
	return func(r *Runner) {
		if n >= 1 {
			r.concurrency = n
		}
	}
}

// WithCheckTimeout bounds a single check's execution.
func WithCheckTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithProgress registers a progress callback. It is invoked once per
// finished check, under a lock, so reported counts only ever increase.
func WithProgress(fn ProgressFunc) RunnerOption {
	return func(r *Runner) {
		r.progress = fn
	}
}

// NewRunner creates a Runner with the given options.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		logger:      slog.Default(),
		concurrency: DefaultConcurrency,
		timeout:     DefaultCheckTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every check against the target and returns the applicable
// results in registration order, with anchor slugs attached. Inapplicable
// (nil) results are filtered out; failing or panicking checks are degraded
// to neutral results in place.
func (r *Runner) Run(ctx context.Context, checks []check.Check, target *check.Target) []model.CheckResult {
	// Slots are pre-allocated by registration index so concurrent
	// completion cannot reorder the report.
	slots := make([]*model.CheckResult, len(checks))

	var mu sync.Mutex
	completed := 0

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, c := range checks {
		g.Go(func() error {
			slots[i] = r.runOne(ctx, c, target)

			mu.Lock()
			completed++
			if r.progress != nil {
				r.progress(completed, len(checks))
			}
			mu.Unlock()
			return nil
		})
	}
	// The group never returns errors; failures became neutral results.
	_ = g.Wait()

	results := make([]model.CheckResult, 0, len(checks))
	for _, slot := range slots {
		if slot == nil {
			continue
		}
		slot.ID = model.Slugify(slot.Name)
		results = append(results, *slot)
	}
	return results
}

// runOne executes a single check with the per-check timeout, converting
// errors and panics into the neutral fallback result. A nil return means
// the check declared itself inapplicable.
func (r *Runner) runOne(ctx context.Context, c check.Check, target *check.Target) (result *model.CheckResult) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("check panicked",
				slog.String("check", c.Name()),
				slog.Any("panic", rec))
			result = fallbackResult(c, fmt.Sprintf("internal error: %v", rec))
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	res, err := c.Run(ctx, target)
	if err != nil {
		r.logger.Warn("check failed",
			slog.String("check", c.Name()),
			slog.String("error", err.Error()))
		return fallbackResult(c, err.Error())
	}

	r.logger.Debug("check finished",
		slog.String("check", c.Name()),
		slog.Duration("elapsed", time.Since(start)),
		slog.Bool("applicable", res != nil))
	return res
}

// fallbackResult represents a check that could not complete. Neutral rather
// than failing: an unobserved property is not a confirmed problem.
func fallbackResult(c check.Check, reason string) *model.CheckResult {
	return &model.CheckResult{
		Name:        c.Name(),
		Category:    c.Category(),
		Status:      model.StatusNeutral,
		Priority:    model.PriorityLow,
		Description: "This check could not be completed: " + reason,
	}
}
