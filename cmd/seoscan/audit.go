package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/seoscan/seoscan/internal/audit"
	"github.com/seoscan/seoscan/internal/check"
	"github.com/seoscan/seoscan/internal/config"
	"github.com/seoscan/seoscan/internal/database"
	"github.com/seoscan/seoscan/internal/fetch"
	"github.com/seoscan/seoscan/internal/log"
	"github.com/seoscan/seoscan/internal/model"
	"github.com/seoscan/seoscan/internal/report"
	"github.com/seoscan/seoscan/internal/score"
)

// NewAuditCmd creates the audit command.
func NewAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit [url...]",
		Short: "Audit web pages for SEO issues",
		Long: `Audit fetches one or more pages and runs the full battery of SEO checks.

Each page is analyzed for:
- Meta tags, headings, and structured data
- Image attributes and formats
- Performance signals (page size, requests, caching, compression)
- Security headers, HTTPS, and TLS certificate health
- Network configuration (DNS, sitemap, robots.txt, custom 404)

Results are scored per category and overall, with a prioritized issue list.
Multiple URLs are audited concurrently.

Examples:
  # Audit a single page
  seoscan audit https://example.com

  # Audit several pages at once
  seoscan audit https://example.com https://example.org

  # Output a JSON report
  seoscan audit --json https://example.com

  # Write a Markdown report to a file
  seoscan audit --markdown -o report.md https://example.com

  # Use a custom configuration file
  seoscan audit -c myconfig.yaml https://example.com`,
		Args: cobra.ArbitraryArgs,
		RunE: runAuditCmd,
	}

	// Fetch flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Fetch timeout per page")
	cmd.Flags().StringP("user-agent", "u", config.DefaultUserAgent,
		"User-Agent header sent with page fetches")

	// Check execution flags
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency,
		"Number of checks run in parallel per audit")
	cmd.Flags().Duration("check-timeout", config.DefaultCheckTimeout,
		"Per-check execution timeout")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of URLs audited concurrently")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .seoscan in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// History flags
	cmd.Flags().Bool("no-save", false,
		"Do not save the audit to the history database")

	return cmd
}

// runAuditCmd executes the audit command.
func runAuditCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewSecureLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// Cancel in-flight audits on interrupt.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runAudit(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags and the optional
// config file. Flag values take precedence over file values, so the file is
// applied first and explicit flags overwrite afterwards.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	configFilePath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg.ConfigFilePath = configFilePath

	explicitConfigPath := configFilePath != ""
	configPath := config.FindConfigFile(configFilePath)
	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cf.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", configFilePath)
	}

	if cmd.Flags().Changed("timeout") {
		if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("user-agent") {
		if cfg.UserAgent, err = cmd.Flags().GetString("user-agent"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("concurrency") {
		if cfg.Concurrency, err = cmd.Flags().GetInt("concurrency"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("check-timeout") {
		if cfg.CheckTimeout, err = cmd.Flags().GetDuration("check-timeout"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("batch") {
		if cfg.BatchSize, err = cmd.Flags().GetInt("batch"); err != nil {
			return nil, err
		}
	}

	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave
	cfg.DBDir = config.XDGDataDir()

	cfg.Targets = args

	return cfg, nil
}

// runAudit executes the audit for all configured targets.
func runAudit(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if len(cfg.Targets) == 0 {
		return config.ErrNoTarget
	}

	logger.Debug("starting audit",
		"targets", cfg.Targets,
		"concurrency", cfg.Concurrency,
		"batchSize", cfg.BatchSize,
	)

	var db *database.HistoryDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close()
	}

	client := fetch.NewHTTPClient(
		fetch.WithTimeout(cfg.Timeout),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
	)

	runnerOpts := []audit.RunnerOption{
		audit.WithLogger(logger),
		audit.WithConcurrency(cfg.Concurrency),
		audit.WithCheckTimeout(cfg.CheckTimeout),
	}
	// Batch runs interleave several audits, so the counter only makes sense
	// for a single target.
	if len(cfg.Targets) == 1 {
		runnerOpts = append(runnerOpts, audit.WithProgress(auditProgress(os.Stderr)))
	}

	auditor := audit.NewAuditor(client,
		audit.WithChecks(check.Defaults(client)),
		audit.WithRunner(audit.NewRunner(runnerOpts...)),
		audit.WithScorer(score.NewScorer(score.WithWeights(cfg.Weights))),
		audit.WithAuditLogger(logger),
	)

	if len(cfg.Targets) > 1 {
		return runBatchAudit(ctx, cfg, auditor, db, logger)
	}
	return runSingleAudit(ctx, cfg, auditor, db, logger)
}

// auditProgress returns a progress callback that rewrites one status line as
// checks finish and terminates it when the last check completes.
func auditProgress(w io.Writer) audit.ProgressFunc {
	return func(completed, total int) {
		fmt.Fprintf(w, "\rChecks: %d/%d", completed, total)
		if completed == total {
			fmt.Fprintln(w)
		}
	}
}

// runSingleAudit audits one URL and writes its report.
func runSingleAudit(ctx context.Context, cfg *config.Config, auditor *audit.Auditor, db *database.HistoryDB, logger *slog.Logger) error {
	target := cfg.Targets[0]

	fmt.Fprintf(os.Stderr, "Auditing %s...\n", target)
	startTime := time.Now()

	rep, err := auditor.Run(ctx, target)
	if err != nil {
		var fetchErr *audit.FetchError
		if errors.As(err, &fetchErr) {
			return fmt.Errorf("could not fetch %s: %w", fetchErr.URL, fetchErr.Err)
		}
		return err
	}

	fmt.Fprintf(os.Stderr, "Audit completed in %s\n\n", time.Since(startTime).Round(time.Millisecond))

	if err := outputReport(cfg, rep); err != nil {
		return err
	}

	saveReport(ctx, db, rep, logger)
	return nil
}

// runBatchAudit audits multiple URLs concurrently.
func runBatchAudit(ctx context.Context, cfg *config.Config, auditor *audit.Auditor, db *database.HistoryDB, logger *slog.Logger) error {
	fmt.Fprintf(os.Stderr, "Auditing %d pages (concurrency: %d)...\n\n", len(cfg.Targets), cfg.BatchSize)
	startTime := time.Now()

	results := audit.NewBatch(auditor, cfg.BatchSize).Run(ctx, cfg.Targets)

	var failed int
	for i, res := range results {
		fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", i+1, len(results), res.URL)
		if res.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "  audit failed: %v\n", res.Err)
			continue
		}
		if err := outputReport(cfg, res.Report); err != nil {
			logger.Error("report failed", "url", res.URL, "error", err)
		}
		saveReport(ctx, db, res.Report, logger)
	}

	fmt.Fprintf(os.Stderr, "\nBatch audit completed in %s\n", time.Since(startTime).Round(time.Millisecond))

	if failed == len(results) {
		return errors.New("all audits failed")
	}
	return nil
}

// outputReport writes the report in the requested format.
func outputReport(cfg *config.Config, rep *model.Report) error {
	var output io.Writer = os.Stdout
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	_, err := newWriter(cfg, output).Write(rep)
	return err
}

// newWriter selects the report writer for the configured format.
func newWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output)
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output)
	}
}

// saveReport persists the report when history is enabled. Failure to save
// never fails the audit itself.
func saveReport(ctx context.Context, db *database.HistoryDB, rep *model.Report, logger *slog.Logger) {
	if db == nil {
		return
	}
	if _, err := db.SaveReport(ctx, rep); err != nil {
		logger.Error("failed to save audit to history", "url", rep.URL, "error", err)
	}
}
