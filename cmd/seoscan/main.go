// Package main provides the entry point for the seoscan CLI.
//
// seoscan audits web pages for SEO issues: meta tags, headings, images,
// performance signals, security headers, and network-level configuration.
// Each audit produces a scored report with a prioritized issue list.
//
// Usage:
//
//	seoscan audit <url>
//	seoscan audit --json <url> <url>...
//
// See --help for all available options.
package main

// main is the entry point for seoscan.
func main() {
	Execute()
}
