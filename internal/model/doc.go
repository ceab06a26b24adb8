// Package model defines the core data structures used throughout seoscan.
//
// This package contains the following main types:
//   - CheckResult: The atomic outcome produced by a single check
//   - Status / Priority / Category: Closed enumerations describing a result
//   - Report: The aggregate audit report handed to any renderer
//   - Issue: A prioritized remediation entry extracted from results
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (check, audit, score, report, database) need
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage. Field names are part of the external contract and must
// not change: existing renderers and stored reports depend on them.
package model
