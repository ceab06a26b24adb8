package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/seoscan/seoscan/internal/score"
)

// Default configuration values.
const (
	// DefaultTimeout bounds one page fetch including redirects. Ten seconds
	// covers slow origins without stalling an audit on a dead host.
	DefaultTimeout = 10 * time.Second

	// DefaultConcurrency is the number of checks run in parallel. Most
	// checks are pure HTML analysis, so the bound mainly limits the handful
	// of network probes hitting the same origin at once.
	DefaultConcurrency = 8

	// DefaultCheckTimeout bounds one check's execution. Network probes
	// carry their own shorter timeouts; this is the backstop.
	DefaultCheckTimeout = 10 * time.Second

	// DefaultBatchSize is the number of URLs audited concurrently when
	// multiple targets are given. Each audit already fans out its own
	// checks, so this stays small.
	DefaultBatchSize = 2

	// DefaultUserAgent identifies the auditor in HTTP requests. Some
	// servers vary their response for non-browser agents, so the string
	// mimics a browser while still naming the tool.
	DefaultUserAgent = "Mozilla/5.0 (compatible; seoscan/1.0; +https://github.com/seoscan/seoscan)"

	// DefaultMaxBodySize limits the maximum response body size to read.
	// 10MB covers even bloated pages while preventing memory exhaustion
	// from unexpectedly large responses.
	DefaultMaxBodySize = 10 << 20 // 10 MiB

	// DefaultServeAddr is the listen address of the proxy server.
	DefaultServeAddr = "localhost:3001"

	// AppName is the application name used for XDG directory paths.
	AppName = "seoscan"
)

// Config holds all configuration options for an audit run.
// This struct is designed to be populated from CLI flags and an optional
// config file, then passed through the application via dependency injection
// rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., FetchConfig, ScoreConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant
// benefit.
type Config struct {
	// Timeout is the fetch timeout for each HTTP request.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Responses larger than this are truncated. Set to 0 for the default.
	MaxBodySize int64

	// Concurrency is the number of checks run in parallel per audit.
	Concurrency int

	// CheckTimeout bounds one check's execution.
	CheckTimeout time.Duration

	// BatchSize is the number of URLs audited concurrently.
	BatchSize int

	// Weights configures the credit each check status earns when scoring.
	Weights score.Weights

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON report output instead of the human-readable
	// format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of the
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// Targets is the list of URLs to audit.
	Targets []string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .seoscan in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// DBDir is the directory path for storing the SQLite history database.
	// When empty, the XDG data directory is used.
	DBDir string

	// SaveToDB indicates whether to save audit results to the history
	// database.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use
// cases. Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeout,
// concurrency). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Timeout:      DefaultTimeout,
		UserAgent:    DefaultUserAgent,
		MaxBodySize:  DefaultMaxBodySize,
		Concurrency:  DefaultConcurrency,
		CheckTimeout: DefaultCheckTimeout,
		BatchSize:    DefaultBatchSize,
		Weights:      score.DefaultWeights(),
	}
}

// XDGDataDir returns the XDG data directory for seoscan.
// On Linux: ~/.local/share/seoscan
// On macOS: ~/Library/Application Support/seoscan
// On Windows: %LOCALAPPDATA%\seoscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for seoscan.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.CheckTimeout <= 0 {
		return ErrInvalidCheckTimeout
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	for _, w := range []float64{c.Weights.Pass, c.Weights.Neutral, c.Weights.Fail} {
		if w < 0 || w > 1 {
			return ErrInvalidWeights
		}
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}
