// Package check defines the audit checks and the registry that orders them.
//
// Every check implements the Check interface: a stable human-readable name,
// a scoring category, and a Run method that inspects a read-only Target and
// produces at most one result. Checks never mutate the Target, which is what
// makes running them concurrently safe.
//
// A check may return (nil, nil) when it does not apply to the page at all,
// for example an image check on a page without images. Inapplicable checks
// vanish from the report entirely rather than diluting the score.
//
// Checks that need the network beyond the already-fetched page (DNS lookups,
// certificate probes, sibling URL fetches) hold a fetch.Client and respect
// the context deadline the orchestrator imposes. When such a check cannot
// complete its observation it degrades itself to a neutral result with an
// explanatory description instead of failing the audit.
//
// Defaults builds the full ordered registry; adding a new check means
// implementing the interface and appending it there.
package check
