package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/seoscan/seoscan/internal/check"
	"github.com/seoscan/seoscan/internal/fetch"
	"github.com/seoscan/seoscan/internal/model"
	"github.com/seoscan/seoscan/internal/score"
)

// FetchError reports that the audited page itself could not be retrieved.
// It is the only fatal failure an audit produces; everything downstream of
// a successful fetch degrades per check instead.
type FetchError struct {
	// URL is the page that could not be fetched.
	URL string

	// Err is the underlying transport failure.
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap exposes the underlying failure to errors.Is/As.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Auditor runs complete audits: fetch, check, score, report.
type Auditor struct {
	client fetch.Client
	checks []check.Check
	runner *Runner
	scorer *score.Scorer
	logger *slog.Logger
}

// AuditorOption configures an Auditor.
type AuditorOption func(*Auditor)

// WithChecks replaces the default check registry.
func WithChecks(checks []check.Check) AuditorOption {
	return func(a *Auditor) {
		a.checks = checks
	}
}

// WithRunner replaces the default runner.
func WithRunner(runner *Runner) AuditorOption {
	return func(a *Auditor) {
		if runner != nil {
			a.runner = runner
		}
	}
}

// WithScorer replaces the default scorer.
func WithScorer(scorer *score.Scorer) AuditorOption {
	return func(a *Auditor) {
		if scorer != nil {
			a.scorer = scorer
		}
	}
}

// WithAuditLogger sets the structured logger.
func WithAuditLogger(logger *slog.Logger) AuditorOption {
	return func(a *Auditor) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAuditor creates an Auditor over the given fetch client. Without
// options it uses the full default registry, runner, and scorer.
func NewAuditor(client fetch.Client, opts ...AuditorOption) *Auditor {
	a := &Auditor{
		client: client,
		checks: check.Defaults(client),
		runner: NewRunner(),
		scorer: score.NewScorer(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run audits one URL and returns its report. It returns a *FetchError when
// the page cannot be retrieved; every other problem is absorbed into the
// report as degraded results.
func (a *Auditor) Run(ctx context.Context, rawURL string) (*model.Report, error) {
	start := time.Now()
	a.logger.Info("audit started", slog.String("url", rawURL))

	page, err := a.client.Page(ctx, rawURL)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	a.logger.Debug("page fetched",
		slog.String("url", rawURL),
		slog.Int("status", page.StatusCode),
		slog.Int("bytes", len(page.Contents)))

	target := check.NewTarget(rawURL, page.Contents, page.Headers)
	results := a.runner.Run(ctx, a.checks, target)
	summary := a.scorer.Score(results)

	report := &model.Report{
		URL:            rawURL,
		GeneratedAt:    time.Now().UTC(),
		OverallScore:   summary.Overall,
		Grade:          summary.Grade,
		Results:        results,
		CategoryScores: summary.ByCategory,
		Issues:         model.ExtractIssues(results),
	}

	a.logger.Info("audit finished",
		slog.String("url", rawURL),
		slog.Int("score", report.OverallScore),
		slog.String("grade", string(report.Grade)),
		slog.Int("checks", len(results)),
		slog.Duration("elapsed", time.Since(start)))

	return report, nil
}
