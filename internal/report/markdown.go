package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/seoscan/seoscan/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeScores(md, report)
	w.writeIssues(md, report)
	w.writeResults(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with audit information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("SEO Audit Report")
	md.PlainText("")

	passed, neutral, failed := model.CountByStatus(report.Results)
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"URL", "`" + report.URL + "`"},
			{"Audit Date", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Overall Score", strconv.Itoa(report.OverallScore) + "/100"},
			{"Grade", gradeBadge(report.Grade)},
			{"Checks", strconv.Itoa(passed) + " passed, " + strconv.Itoa(neutral) + " neutral, " + strconv.Itoa(failed) + " failed"},
		},
	})
	md.PlainText("")

	w.writeAlert(md, report)
}

// gradeBadge decorates a grade with a traffic-light marker.
func gradeBadge(grade model.Grade) string {
	switch grade {
	case model.GradeA:
		return "🟢 A"
	case model.GradeB:
		return "🟢 B"
	case model.GradeC:
		return "🟡 C"
	case model.GradeD:
		return "🟠 D"
	default:
		return "🔴 F"
	}
}

// writeAlert writes an appropriate alert based on the overall result.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.Report) {
	high := 0
	for _, issue := range report.Issues {
		if issue.Priority == model.PriorityHigh {
			high++
		}
	}

	switch {
	case high > 0:
		md.Warningf(
			"%d high priority issue(s) detected. Fixing these first will have the biggest impact on rankings.",
			high,
		)
	case len(report.Issues) > 0:
		md.Importantf(
			"%d medium priority issue(s) found. The site is in reasonable shape but has room to improve.",
			len(report.Issues),
		)
	default:
		md.Tip("No significant SEO issues detected.")
	}
	md.PlainText("")
}

// writeScores writes the per-category score breakdown.
func (w *MarkdownWriter) writeScores(md *markdown.Markdown, report *model.Report) {
	md.H2("Category Scores")
	md.PlainText("")

	rows := make([][]string, 0, len(report.CategoryScores))
	for _, category := range model.Categories() {
		sub, ok := report.CategoryScores[category]
		if !ok {
			continue
		}
		rows = append(rows, []string{
			categoryTitle(category),
			strconv.Itoa(sub),
			scoreBar(sub),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Category", "Score", ""},
		Rows:   rows,
	})
	md.PlainText("")
}

// scoreBar renders a ten-segment bar for a 0-100 score.
func scoreBar(score int) string {
	filled := score / 10
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

// writeIssues writes the priority issue list.
func (w *MarkdownWriter) writeIssues(md *markdown.Markdown, report *model.Report) {
	md.H2("Priority Issues")
	md.PlainText("")

	if len(report.Issues) == 0 {
		md.PlainText("No high or medium priority issues found.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(report.Issues))
	for i, issue := range report.Issues {
		rows[i] = []string{
			priorityBadge(issue.Priority),
			"[" + issue.Name + "](#" + issue.Anchor + ")",
			truncateString(issue.Description, 80),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Priority", "Check", "Finding"},
		Rows:   rows,
	})
	md.PlainText("")
}

// priorityBadge decorates a priority level with a colored marker.
func priorityBadge(priority model.Priority) string {
	switch priority {
	case model.PriorityHigh:
		return "🔴 High"
	case model.PriorityMedium:
		return "🟡 Medium"
	default:
		return "🔵 Low"
	}
}

// writeResults writes all check results grouped by category.
func (w *MarkdownWriter) writeResults(md *markdown.Markdown, report *model.Report) {
	md.H2("Results")
	md.PlainText("")

	for _, category := range model.Categories() {
		var results []model.CheckResult
		for _, result := range report.Results {
			if result.Category == category {
				results = append(results, result)
			}
		}
		if len(results) == 0 {
			continue
		}

		md.PlainText("### " + categoryTitle(category))
		md.PlainText("")
		w.writeResultsTable(md, results)
	}
}

// writeResultsTable writes a table of check results with details.
func (w *MarkdownWriter) writeResultsTable(md *markdown.Markdown, results []model.CheckResult) {
	rows := make([][]string, len(results))
	for i, result := range results {
		rows[i] = []string{
			statusSymbol(result.Status),
			result.Name,
			truncateString(result.Description, 70),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"", "Check", "Finding"},
		Rows:   rows,
	})
	md.PlainText("")

	// Recommendations only make sense for checks that did not pass.
	for _, result := range results {
		if result.Status == model.StatusPass || result.Recommendation == "" {
			continue
		}
		md.Details("How to fix: "+result.Name, result.Recommendation)
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [seoscan](https://github.com/seoscan/seoscan)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
