// Package log provides secure logging built on the standard slog package.
//
// Audits log fetched response headers at debug level, and those headers can
// carry session cookies or credentials when a site is misconfigured. The
// SecureHandler masks such values before they reach the underlying handler,
// so verbose logs stay safe to share.
//
// Usage:
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("page fetched",
//	    "set-cookie", "session=abc123", // masked in output
//	    "url", "https://example.com",
//	)
package log
