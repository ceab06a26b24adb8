// Package audit orchestrates a full audit run: fetch the page, execute every
// registered check concurrently, score the outcome, and assemble the report.
//
// The orchestrator guarantees three properties the report contract depends
// on. Results appear in check registration order no matter how concurrent
// execution interleaves. A check that fails or panics degrades to a neutral
// result carrying the check's name, so one broken rule never sinks the run.
// And only the top-level page fetch is fatal: if the target cannot be
// retrieved at all there is nothing to audit, and the caller receives a
// FetchError.
package audit
