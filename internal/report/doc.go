// Package report renders audit reports in the supported output formats:
// plain text for terminals, JSON for machine consumption, and Markdown for
// documentation and sharing.
//
// Writers are pure renderers over the model.Report aggregate; none of them
// recompute scores or re-derive the issue list, so every format presents
// the same numbers.
package report
