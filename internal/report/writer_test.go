package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/seoscan/seoscan/internal/model"
)

// createTestReport creates a report with sample data for testing.
func createTestReport() *model.Report {
	results := []model.CheckResult{
		{
			ID:          "meta-title-test",
			Name:        "Meta Title Test",
			Status:      model.StatusPass,
			Priority:    model.PriorityHigh,
			Category:    model.CategoryMeta,
			Description: "The title tag is 42 characters long.",
		},
		{
			ID:             "meta-description-test",
			Name:           "Meta Description Test",
			Status:         model.StatusWarning,
			Priority:       model.PriorityHigh,
			Category:       model.CategoryMeta,
			Description:    "The page is missing a meta description.",
			Recommendation: "Add a meta description between 50 and 160 characters.",
		},
		{
			ID:          "https-test",
			Name:        "HTTPS Test",
			Status:      model.StatusPass,
			Priority:    model.PriorityHigh,
			Category:    model.CategorySecurity,
			Description: "The page is served over HTTPS.",
		},
		{
			ID:          "sitemap-test",
			Name:        "Sitemap Test",
			Status:      model.StatusNeutral,
			Priority:    model.PriorityMedium,
			Category:    model.CategoryTechnical,
			Description: "Could not verify the sitemap.",
		},
	}

	return &model.Report{
		URL:          "https://example.com",
		GeneratedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		OverallScore: 82,
		Grade:        model.GradeB,
		Results:      results,
		CategoryScores: map[model.Category]int{
			model.CategoryMeta:      50,
			model.CategorySecurity:  100,
			model.CategoryTechnical: 60,
		},
		Issues: model.ExtractIssues(results),
	}
}

// TestSimpleWriter tests the human-readable report writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes report header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		n, err := w.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("Write() = %d bytes, buffer has %d", n, buf.Len())
		}

		output := buf.String()
		if !strings.Contains(output, "https://example.com") {
			t.Error("expected output to contain the audited URL")
		}
		if !strings.Contains(output, "82/100") {
			t.Error("expected output to contain the overall score")
		}
		if !strings.Contains(output, "grade B") {
			t.Error("expected output to contain the grade")
		}
	})

	t.Run("writes category scores", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "Meta") {
			t.Error("expected output to contain the Meta category")
		}
		if !strings.Contains(output, "Security") {
			t.Error("expected output to contain the Security category")
		}
		if strings.Contains(output, "Images") {
			t.Error("should not print categories without results")
		}
	})

	t.Run("writes priority issues", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "[HIGH] Meta Description Test") {
			t.Error("expected output to contain the high priority issue")
		}
		if !strings.Contains(output, "[MEDIUM] Sitemap Test") {
			t.Error("expected output to contain the medium priority issue")
		}
	})

	t.Run("writes status markers per result", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "✓") {
			t.Error("expected pass marker in output")
		}
		if !strings.Contains(output, "!") {
			t.Error("expected warning marker in output")
		}
	})

	t.Run("omits issue section when clean", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)
		report := createTestReport()
		report.Issues = nil

		if _, err := w.Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if strings.Contains(buf.String(), "Priority issues:") {
			t.Error("should not print an empty issue section")
		}
	})
}

// TestJSONWriter tests the JSON report writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("outputs valid JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		_, err := w.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var parsed model.Report
		if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}

		if parsed.URL != "https://example.com" {
			t.Errorf("expected url %q, got %q", "https://example.com", parsed.URL)
		}
		if parsed.OverallScore != 82 {
			t.Errorf("expected overall score 82, got %d", parsed.OverallScore)
		}
		if len(parsed.Results) != 4 {
			t.Errorf("expected 4 results, got %d", len(parsed.Results))
		}
	})

	t.Run("uses wire field names", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, field := range []string{`"overall_score"`, `"category_scores"`, `"generated_at"`, `"status": "warning"`, `"priority": "high"`} {
			if !strings.Contains(output, field) {
				t.Errorf("expected JSON output to contain %s", field)
			}
		}
	})

	t.Run("ends with a newline", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.HasSuffix(buf.String(), "\n") {
			t.Error("expected output to end with a newline")
		}
	})
}

// TestMarkdownWriter tests the Markdown report writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes report header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		_, err := w.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "# SEO Audit Report") {
			t.Error("expected output to contain H1 header")
		}
		if !strings.Contains(output, "`https://example.com`") {
			t.Error("expected output to contain the audited URL")
		}
	})

	t.Run("writes category score table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "## Category Scores") {
			t.Error("expected output to contain category score header")
		}
		if !strings.Contains(output, "Security") {
			t.Error("expected output to contain the Security category")
		}
	})

	t.Run("links issues to result anchors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "[Meta Description Test](#meta-description-test)") {
			t.Error("expected issue to link to its anchor")
		}
	})

	t.Run("includes GitHub alert for high priority issues", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "[!WARNING]") {
			t.Error("expected WARNING alert for high priority issues")
		}
	})

	t.Run("includes TIP alert when clean", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)
		report := createTestReport()
		report.Issues = nil

		if _, err := w.Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "[!TIP]") {
			t.Error("expected TIP alert for a clean report")
		}
	})

	t.Run("includes fix details for failed checks", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "<details>") {
			t.Error("expected output to contain details tags")
		}
		if !strings.Contains(output, "How to fix: Meta Description Test") {
			t.Error("expected fix details for the failing check")
		}
	})

	t.Run("writes footer with link", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "https://github.com/seoscan/seoscan") {
			t.Error("expected footer with repository link")
		}
	})
}

// TestMultiWriter tests writing to multiple outputs.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var buf1, buf2 bytes.Buffer
		multi := NewMultiWriter(NewSimpleWriter(&buf1), NewJSONWriter(&buf2))

		n, err := multi.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != buf1.Len()+buf2.Len() {
			t.Errorf("Write() = %d bytes, buffers hold %d", n, buf1.Len()+buf2.Len())
		}

		if buf1.Len() == 0 {
			t.Error("expected buf1 to have content")
		}
		if buf2.Len() == 0 {
			t.Error("expected buf2 to have content")
		}
		if strings.Contains(buf1.String(), "{") {
			t.Error("expected buf1 (simple) to not be JSON")
		}
		if !strings.Contains(buf2.String(), "{") {
			t.Error("expected buf2 (JSON) to contain JSON")
		}
	})

	t.Run("handles empty writers list", func(t *testing.T) {
		t.Parallel()

		n, err := NewMultiWriter().Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 0 {
			t.Errorf("expected 0 bytes written for empty writers, got %d", n)
		}
	})
}

// TestTruncateString tests the string truncation helper.
func TestTruncateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is a longer string", 10, "this is..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
		{"ab", 5, "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			result := truncateString(tt.input, tt.maxLen)
			if result != tt.expected {
				t.Errorf("truncateString(%q, %d) = %q, want %q",
					tt.input, tt.maxLen, result, tt.expected)
			}
		})
	}
}
