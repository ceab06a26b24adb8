package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/seoscan/seoscan/internal/score"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".seoscan"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File mirrors the .seoscan YAML layout. Fields are pointers so that absent
// keys leave the corresponding Config value untouched.
type File struct {
	// Timeout is the fetch timeout, in Go duration syntax ("15s").
	Timeout *time.Duration `yaml:"timeout"`

	// UserAgent overrides the User-Agent header.
	UserAgent *string `yaml:"user_agent"`

	// MaxBodySize caps the response body size in bytes.
	MaxBodySize *int64 `yaml:"max_body_size"`

	// Concurrency is the number of checks run in parallel.
	Concurrency *int `yaml:"concurrency"`

	// CheckTimeout bounds one check's execution.
	CheckTimeout *time.Duration `yaml:"check_timeout"`

	// Weights configures the scoring credit per status.
	Weights *score.Weights `yaml:"weights"`
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers should
// handle this error appropriately based on whether the config file path was
// explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &cf, nil
}

// Apply copies the file's present values onto the config.
func (f *File) Apply(c *Config) {
	if f.Timeout != nil {
		c.Timeout = *f.Timeout
	}
	if f.UserAgent != nil {
		c.UserAgent = *f.UserAgent
	}
	if f.MaxBodySize != nil {
		c.MaxBodySize = *f.MaxBodySize
	}
	if f.Concurrency != nil {
		c.Concurrency = *f.Concurrency
	}
	if f.CheckTimeout != nil {
		c.CheckTimeout = *f.CheckTimeout
	}
	if f.Weights != nil {
		c.Weights = *f.Weights
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .seoscan in the current directory
// 3. Look for .seoscan in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if
// not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// DefaultFileContents is the annotated template written by the init command.
const DefaultFileContents = `# seoscan configuration file.
# Every key is optional; absent keys keep their built-in defaults.

# Fetch timeout per page, in Go duration syntax.
#timeout: 10s

# User-Agent header sent with page fetches.
#user_agent: "Mozilla/5.0 (compatible; seoscan/1.0; +https://github.com/seoscan/seoscan)"

# Maximum response body size in bytes.
#max_body_size: 10485760

# Number of checks run in parallel per audit.
#concurrency: 8

# Per-check execution timeout.
#check_timeout: 10s

# Scoring credit per check status, each between 0 and 1.
#weights:
#  pass: 1.0
#  neutral: 0.6
#  fail: 0.0
`

// WriteDefaultFile writes the annotated default config to path. It refuses
// to overwrite an existing file.
func WriteDefaultFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err := os.WriteFile(path, []byte(DefaultFileContents), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
