package score

import (
	"math"

	"github.com/seoscan/seoscan/internal/model"
)

// Default scoring weights. Neutral results denote informational-but-not-
// failing observations and earn 60% credit, distinct from pass (100%) and
// warning/error (0%).
const (
	// DefaultPassWeight is the credit for a passing result.
	DefaultPassWeight = 1.0

	// DefaultNeutralWeight is the credit for a neutral result.
	DefaultNeutralWeight = 0.6

	// DefaultFailWeight is the credit for a warning or error result.
	DefaultFailWeight = 0.0
)

// Weights configures the credit each status earns.
//
// Design decision: The weights are kept configurable because they are not
// derived from any documented SEO principle; they are conventions inherited
// from the scoring formula this engine reproduces. The grade boundaries are
// NOT configurable: they are a fixed contract shared with every renderer.
type Weights struct {
	// Pass is the credit for a passing result.
	Pass float64 `yaml:"pass"`

	// Neutral is the credit for a neutral result.
	Neutral float64 `yaml:"neutral"`

	// Fail is the credit for a warning or error result.
	Fail float64 `yaml:"fail"`
}

// DefaultWeights returns the standard 1.0 / 0.6 / 0.0 weighting.
func DefaultWeights() Weights {
	return Weights{
		Pass:    DefaultPassWeight,
		Neutral: DefaultNeutralWeight,
		Fail:    DefaultFailWeight,
	}
}

// Summary is the scoring output: the overall score, its letter grade, and
// per-category sub-scores.
type Summary struct {
	// Overall is the weighted score across all applicable results, in
	// [0, 100].
	Overall int

	// Grade is the letter grade for Overall.
	Grade model.Grade

	// ByCategory maps each category with at least one result to its
	// sub-score. Categories with zero applicable results are absent.
	ByCategory map[model.Category]int
}

// Scorer computes scores from result lists.
type Scorer struct {
	weights Weights
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithWeights overrides the default status weights.
func WithWeights(w Weights) Option {
	return func(s *Scorer) {
		s.weights = w
	}
}

// NewScorer creates a Scorer with the given options.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{weights: DefaultWeights()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score computes the overall score, grade, and category breakdown for the
// given results. The result list must already have inapplicable (nil)
// results filtered out: every entry counts toward a denominator.
func (s *Scorer) Score(results []model.CheckResult) Summary {
	summary := Summary{
		Overall:    s.percentage(results),
		ByCategory: make(map[model.Category]int),
	}
	summary.Grade = GradeFor(summary.Overall)

	for _, category := range model.Categories() {
		var subset []model.CheckResult
		for _, r := range results {
			if r.Category == category {
				subset = append(subset, r)
			}
		}
		// A category with no applicable results is omitted, not zero.
		if len(subset) == 0 {
			continue
		}
		summary.ByCategory[category] = s.percentage(subset)
	}

	return summary
}

// percentage computes round(weighted / total * 100) for one result list.
// An empty list scores zero.
func (s *Scorer) percentage(results []model.CheckResult) int {
	if len(results) == 0 {
		return 0
	}

	var weighted float64
	for _, r := range results {
		switch {
		case r.Status == model.StatusPass:
			weighted += s.weights.Pass
		case r.Status == model.StatusNeutral:
			weighted += s.weights.Neutral
		default:
			weighted += s.weights.Fail
		}
	}

	return int(math.Round(weighted / float64(len(results)) * 100))
}

// GradeFor maps a score to its letter grade.
// The boundary table is a fixed contract: 90+ A, 80+ B, 70+ C, 60+ D,
// everything below F.
func GradeFor(score int) model.Grade {
	switch {
	case score >= 90:
		return model.GradeA
	case score >= 80:
		return model.GradeB
	case score >= 70:
		return model.GradeC
	case score >= 60:
		return model.GradeD
	default:
		return model.GradeF
	}
}
