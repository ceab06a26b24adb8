package model

import (
	"sort"
	"time"
)

// Grade is the letter grade derived from the overall score.
type Grade string

// Grade values. The score-to-grade boundary table lives in the score
// package; these are just the possible outputs.
const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Report is the aggregate audit result handed to any renderer.
// It is created once per audit after all checks resolve and is immutable.
//
// Design decision: We keep the prioritized issue list as a stored field
// rather than recomputing it in each renderer because every output format
// (text, JSON, markdown) presents the same action plan, and storing it keeps
// serialized reports self-contained for the history database.
type Report struct {
	// URL is the audited page URL.
	URL string `json:"url"`

	// GeneratedAt is when the audit completed.
	GeneratedAt time.Time `json:"generated_at"`

	// OverallScore is the weighted score in [0, 100].
	OverallScore int `json:"overall_score"`

	// Grade is the letter grade for OverallScore.
	Grade Grade `json:"grade"`

	// Results holds every applicable check result in registration order.
	Results []CheckResult `json:"results"`

	// CategoryScores maps each category with at least one applicable
	// result to its sub-score. Categories with no results are omitted
	// entirely, never reported as zero.
	CategoryScores map[Category]int `json:"category_scores"`

	// Issues is the prioritized action list: non-passing results with
	// high or medium priority, high first.
	Issues []Issue `json:"issues,omitempty"`
}

// Issue is one entry in the prioritized remediation list.
type Issue struct {
	// Priority is high or medium; low-priority results never become issues.
	Priority Priority `json:"priority"`

	// Name is the originating check's name.
	Name string `json:"name"`

	// Description is the originating result's description.
	Description string `json:"description"`

	// Anchor is the originating result's ID slug, for cross-referencing
	// the detailed entry.
	Anchor string `json:"anchor"`
}

// ExtractIssues builds the prioritized action list from a result list.
// It selects results whose status is not pass and whose priority is high or
// medium, then orders them high before medium. The sort is stable: ties keep
// the original result order, so the issue list is as deterministic as the
// result list itself.
func ExtractIssues(results []CheckResult) []Issue {
	issues := make([]Issue, 0)
	for _, r := range results {
		if r.Status == StatusPass {
			continue
		}
		if r.Priority != PriorityHigh && r.Priority != PriorityMedium {
			continue
		}
		issues = append(issues, Issue{
			Priority:    r.Priority,
			Name:        r.Name,
			Description: r.Description,
			Anchor:      r.ID,
		})
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Priority < issues[j].Priority
	})

	return issues
}

// CountByStatus tallies results per status.
// Report writers use this for the pass/neutral/failed summary bars.
func CountByStatus(results []CheckResult) (passed, neutral, failed int) {
	for _, r := range results {
		switch {
		case r.Status == StatusPass:
			passed++
		case r.Status == StatusNeutral:
			neutral++
		case r.Status.Failed():
			failed++
		}
	}
	return passed, neutral, failed
}
