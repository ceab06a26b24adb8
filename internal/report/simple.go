package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/seoscan/seoscan/internal/model"
)

// SimpleWriter outputs a compact plain-text report for terminals.
type SimpleWriter struct {
	baseWriter
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer) *SimpleWriter {
	return &SimpleWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report as plain text.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "SEO Audit: %s\n", report.URL)
	fmt.Fprintf(&b, "Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "Score: %d/100 (grade %s)\n", report.OverallScore, report.Grade)

	passed, neutral, failed := model.CountByStatus(report.Results)
	fmt.Fprintf(&b, "Checks: %d passed, %d neutral, %d failed (%d total)\n",
		passed, neutral, failed, len(report.Results))
	b.WriteString("\n")

	// Category breakdown in the model's display order; absent categories
	// produced no results and are skipped.
	b.WriteString("Category scores:\n")
	for _, category := range model.Categories() {
		sub, ok := report.CategoryScores[category]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "  %-14s %3d\n", categoryTitle(category), sub)
	}
	b.WriteString("\n")

	if len(report.Issues) > 0 {
		b.WriteString("Priority issues:\n")
		for _, issue := range report.Issues {
			fmt.Fprintf(&b, "  [%s] %s: %s\n", strings.ToUpper(issue.Priority.String()), issue.Name, issue.Description)
		}
		b.WriteString("\n")
	}

	b.WriteString("Results:\n")
	for _, result := range report.Results {
		fmt.Fprintf(&b, "  %s %-40s %s\n", statusSymbol(result.Status), result.Name, result.Description)
	}

	return io.WriteString(w.output, b.String())
}
