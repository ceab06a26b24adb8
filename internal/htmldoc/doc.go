// Package htmldoc turns raw HTML text into a structured, queryable document.
//
// Parsing is tolerant: malformed HTML is repaired best-effort by
// golang.org/x/net/html, and missing nodes yield empty query results rather
// than errors. Checks interpret an empty result as "missing", which is
// frequently the very condition they test for.
//
// The package is pure: the same HTML always produces the same structure, and
// no query performs I/O. Documents are safe for concurrent readers because
// nothing mutates the parsed tree after Parse returns.
package htmldoc
