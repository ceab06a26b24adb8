// Package score derives the overall score, letter grade, and per-category
// sub-scores from a list of check results.
//
// The scoring formula is a weighted pass rate: passing results earn full
// credit, neutral results earn partial credit, and failed results earn none.
// The weights are configurable constants rather than hard-coded values
// because they are conventions, not derived from any documented principle.
// The grade boundary table, by contrast, is a fixed contract.
//
// Scoring is fully deterministic: identical result lists always yield
// identical scores and grades.
package score
