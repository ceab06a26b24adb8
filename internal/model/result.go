package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status is the outcome classification of a single check.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons, with custom JSON marshaling so that the
// serialized form stays the lower-case string contract ("pass", "neutral",
// "warning", "error") that renderers and stored reports expect.
type Status int

const (
	// StatusPass indicates the check found no issue.
	StatusPass Status = iota

	// StatusNeutral indicates an informational observation that is neither
	// a pass nor a failure. Neutral results receive partial scoring credit.
	// It is also the fallback status when a check itself could not run
	// (network failure, timeout, or an internal error).
	StatusNeutral

	// StatusWarning indicates an issue was found.
	StatusWarning

	// StatusError indicates a hard failure, reserved for cases where a
	// required element is missing entirely. Scored identically to warning.
	StatusError
)

// String returns the wire representation of the status.
func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusNeutral:
		return "neutral"
	case StatusWarning:
		return "warning"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Failed reports whether the status counts as a failure for scoring.
// Warning and error are treated equivalently.
func (s Status) Failed() bool {
	return s == StatusWarning || s == StatusError
}

// MarshalJSON serializes the status as its string form.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON parses the string form of a status.
// Unknown values are an error: stored reports must round-trip exactly.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw {
	case "pass":
		*s = StatusPass
	case "neutral":
		*s = StatusNeutral
	case "warning":
		*s = StatusWarning
	case "error":
		*s = StatusError
	default:
		return fmt.Errorf("unknown check status %q", raw)
	}
	return nil
}

// Priority ranks how urgently a non-passing result should be addressed.
// It governs the order of the remediation issue list only; it does not
// influence scoring.
type Priority int

const (
	// PriorityHigh issues are listed first in the action plan.
	PriorityHigh Priority = iota

	// PriorityMedium issues follow high ones.
	PriorityMedium

	// PriorityLow issues are excluded from the action plan entirely.
	PriorityLow
)

// String returns the wire representation of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the priority as its string form.
func (p Priority) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON parses the string form of a priority.
func (p *Priority) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw {
	case "high":
		*p = PriorityHigh
	case "medium":
		*p = PriorityMedium
	case "low":
		*p = PriorityLow
	default:
		return fmt.Errorf("unknown priority %q", raw)
	}
	return nil
}

// Category groups check results for sub-score reporting.
// The set is closed: category sub-scores are computed per tag, and a result
// may also carry no category (scored overall but excluded from the breakdown).
type Category string

const (
	// CategoryMeta covers title, description, and other meta tags.
	CategoryMeta Category = "meta"

	// CategoryHeadings covers H1/H2 structure.
	CategoryHeadings Category = "headings"

	// CategoryImages covers image optimization.
	CategoryImages Category = "images"

	// CategoryPerformance covers page weight and load behavior.
	CategoryPerformance Category = "performance"

	// CategorySecurity covers HTTPS, headers, and server configuration.
	CategorySecurity Category = "security"

	// CategoryTechnical covers crawlability and markup hygiene.
	CategoryTechnical Category = "technical"

	// CategorySocial covers social meta tags, trackers, and profile links.
	CategorySocial Category = "social"
)

// Categories lists every known category in display order.
// Report writers iterate this slice so the breakdown order is stable.
func Categories() []Category {
	return []Category{
		CategoryMeta,
		CategoryHeadings,
		CategoryImages,
		CategoryPerformance,
		CategorySecurity,
		CategoryTechnical,
		CategorySocial,
	}
}

// CheckResult is the atomic unit produced by every check.
// A result is immutable once produced; the orchestrator never modifies it
// after collection except to attach the derived ID slug.
type CheckResult struct {
	// ID is a slug derived from Name, used for cross-referencing
	// (anchors in rendered reports). Attached by the orchestrator.
	ID string `json:"id,omitempty"`

	// Name is the human-readable check identifier, unique within one run.
	Name string `json:"name"`

	// Status is the outcome classification.
	Status Status `json:"status"`

	// Priority ranks the result in the issue list. Meaningful only when
	// Status is not pass.
	Priority Priority `json:"priority"`

	// Category tags the result for sub-scoring. Empty means uncategorized:
	// counted in the overall score but absent from the breakdown.
	Category Category `json:"category,omitempty"`

	// Description explains what the check observed.
	Description string `json:"description"`

	// Recommendation is optional remediation guidance. Rendering concern
	// only; never scored.
	Recommendation string `json:"recommendation,omitempty"`

	// Details carries supporting data for display (found values, counts).
	Details string `json:"details,omitempty"`
}

// Slugify derives an anchor ID from a check name: lower-cased, runs of
// non-alphanumeric characters collapsed to single hyphens, leading and
// trailing hyphens trimmed.
//
// Collisions between similarly-worded names are not deduplicated. Slugs are
// used only as anchors, never as keys, so a collision degrades an anchor
// rather than corrupting data.
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastHyphen := true // trim leading hyphens
	for _, r := range strings.ToLower(name) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if alnum {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
