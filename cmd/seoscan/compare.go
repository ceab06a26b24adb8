package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/seoscan/seoscan/internal/config"
	"github.com/seoscan/seoscan/internal/database"
	"github.com/seoscan/seoscan/internal/model"
)

// Constants for score direction.
const (
	scoreDirectionImproved  = "improved"
	scoreDirectionWorsened  = "worsened"
	scoreDirectionUnchanged = "unchanged"
)

// NewCompareCmd creates the compare command.
// This command compares audit results with historical data stored in the database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [url]",
		Short: "Compare audit results with historical data",
		Long: `Compare displays differences between the current and previous audit results.

This command retrieves historical audit data from the database and shows:
- Checks whose status changed since the last audit
- Checks that appeared or disappeared
- The change in overall score and grade

The comparison requires at least two audits in the database for the specified
URL. Use 'seoscan audit' to perform audits and save results.

Examples:
  # Compare latest two audits for a page
  seoscan compare https://example.com

  # List all audit history for a page
  seoscan compare --list https://example.com

  # Compare with a specific historical audit by ID
  seoscan compare --with-audit-id 5 https://example.com

  # Output comparison in JSON format
  seoscan compare --json https://example.com

  # List all audited URLs in the database
  seoscan compare --list-urls`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	// History listing flags
	cmd.Flags().BoolP("list", "l", false,
		"List audit history for the specified URL")
	cmd.Flags().BoolP("list-urls", "L", false,
		"List all audited URLs in the database")

	// Comparison target flags
	cmd.Flags().Int64P("with-audit-id", "i", 0,
		"Compare with a specific audit by ID (use --list to see available IDs)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	listURLs, err := cmd.Flags().GetBool("list-urls")
	if err != nil {
		return err
	}

	// Validate arguments before opening the database so that validation
	// failures never leave a lock behind.
	var targetURL string
	if !listURLs {
		if len(args) == 0 {
			return errors.New("url is required (use --list-urls to see audited pages)")
		}
		targetURL = args[0]
	}

	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if listURLs {
		return listAuditedURLs(ctx, db)
	}

	listHistory, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if listHistory {
		return listAuditHistory(ctx, db, targetURL)
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	withAuditID, err := cmd.Flags().GetInt64("with-audit-id")
	if err != nil {
		return err
	}

	return runComparison(ctx, db, targetURL, withAuditID, jsonOutput)
}

// listAuditedURLs lists all URLs that have audit records in the database.
func listAuditedURLs(ctx context.Context, db *database.HistoryDB) error {
	urls, err := db.AuditedURLs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list audited URLs: %w", err)
	}

	if len(urls) == 0 {
		fmt.Println("No audited pages found in the database.")
		fmt.Println("\nUse 'seoscan audit <url>' to audit a page.")
		return nil
	}

	fmt.Printf("Audited pages (%d):\n\n", len(urls))
	for _, u := range urls {
		fmt.Printf("  • %s\n", u)
	}
	fmt.Println("\nUse 'seoscan compare --list <url>' to see audit history for a page.")

	return nil
}

// listAuditHistory lists all audit records for a specific URL.
func listAuditHistory(ctx context.Context, db *database.HistoryDB, targetURL string) error {
	audits, err := db.History(ctx, targetURL)
	if err != nil {
		return fmt.Errorf("failed to get audit history: %w", err)
	}

	if len(audits) == 0 {
		fmt.Printf("No audit history found for %s\n", targetURL)
		fmt.Println("\nUse 'seoscan audit' to audit this page.")
		return nil
	}

	fmt.Printf("Audit history for %s (%d audits):\n\n", targetURL, len(audits))
	fmt.Printf("  %-6s  %-20s  %-6s  %s\n", "ID", "Date", "Score", "Grade")
	fmt.Println("  " + strings.Repeat("-", 45))

	for _, meta := range audits {
		fmt.Printf("  %-6d  %-20s  %-6d  %s\n",
			meta.ID,
			meta.GeneratedAt.Format("2006-01-02 15:04:05"),
			meta.Score,
			meta.Grade,
		)
	}

	fmt.Println("\nUse 'seoscan compare <url>' to compare the latest two audits.")
	fmt.Println("Use 'seoscan compare --with-audit-id <id> <url>' to compare with a specific audit.")

	return nil
}

// runComparison performs the actual comparison between audit reports.
func runComparison(ctx context.Context, db *database.HistoryDB, targetURL string, withAuditID int64, jsonOutput bool) error {
	reports, err := db.LatestReports(ctx, targetURL, 2)
	if err != nil {
		return fmt.Errorf("failed to get audit history: %w", err)
	}

	if len(reports) == 0 {
		return fmt.Errorf("no audit history found for %s", targetURL)
	}
	if len(reports) < 2 && withAuditID == 0 {
		return fmt.Errorf("at least 2 audits are required for comparison (found %d)", len(reports))
	}

	// Latest report is always the current one.
	currentReport := reports[0]

	var previousReport *model.Report
	if withAuditID > 0 {
		previousReport, err = db.GetReportByID(ctx, withAuditID)
		if err != nil {
			return fmt.Errorf("failed to get audit with ID %d: %w", withAuditID, err)
		}
		if previousReport == nil {
			return fmt.Errorf("audit with ID %d not found", withAuditID)
		}
		if previousReport.URL != targetURL {
			return fmt.Errorf("audit ID %d belongs to %s, not %s", withAuditID, previousReport.URL, targetURL)
		}
	} else {
		previousReport = reports[1]
	}

	comparison := compareReports(previousReport, currentReport)

	if jsonOutput {
		return outputComparisonJSON(comparison)
	}
	return outputComparisonText(comparison)
}

// ComparisonResult holds the result of comparing two audit reports.
type ComparisonResult struct {
	// URL is the audited page.
	URL string `json:"url"`

	// PreviousAudit contains metadata about the previous audit.
	PreviousAudit AuditSummary `json:"previous_audit"`

	// CurrentAudit contains metadata about the current audit.
	CurrentAudit AuditSummary `json:"current_audit"`

	// ScoreDelta is the change in overall score.
	ScoreDelta int `json:"score_delta"`

	// Direction is "improved", "worsened", or "unchanged".
	Direction string `json:"direction"`

	// StatusChanges contains checks whose status changed between audits.
	StatusChanges []StatusChange `json:"status_changes,omitempty"`

	// NewChecks contains check names that appeared in the current audit.
	NewChecks []string `json:"new_checks,omitempty"`

	// RemovedChecks contains check names that disappeared since the previous audit.
	RemovedChecks []string `json:"removed_checks,omitempty"`
}

// AuditSummary contains metadata about an audit for comparison display.
type AuditSummary struct {
	// GeneratedAt is when the audit was performed.
	GeneratedAt time.Time `json:"generated_at"`

	// Score is the overall audit score (0-100).
	Score int `json:"score"`

	// Grade is the letter grade for the score.
	Grade model.Grade `json:"grade"`

	// TotalChecks is the number of check results in this audit.
	TotalChecks int `json:"total_checks"`
}

// StatusChange describes a check whose status differs between two audits.
type StatusChange struct {
	// Name is the check name.
	Name string `json:"name"`

	// Previous is the status in the previous audit.
	Previous string `json:"previous"`

	// Current is the status in the current audit.
	Current string `json:"current"`
}

// compareReports compares two audit reports and generates a comparison result.
func compareReports(previous, current *model.Report) *ComparisonResult {
	result := &ComparisonResult{
		URL: current.URL,
		PreviousAudit: AuditSummary{
			GeneratedAt: previous.GeneratedAt,
			Score:       previous.OverallScore,
			Grade:       previous.Grade,
			TotalChecks: len(previous.Results),
		},
		CurrentAudit: AuditSummary{
			GeneratedAt: current.GeneratedAt,
			Score:       current.OverallScore,
			Grade:       current.Grade,
			TotalChecks: len(current.Results),
		},
	}

	result.ScoreDelta = current.OverallScore - previous.OverallScore
	switch {
	case result.ScoreDelta > 0:
		result.Direction = scoreDirectionImproved
	case result.ScoreDelta < 0:
		result.Direction = scoreDirectionWorsened
	default:
		result.Direction = scoreDirectionUnchanged
	}

	previousByName := make(map[string]model.CheckResult, len(previous.Results))
	for _, r := range previous.Results {
		previousByName[r.Name] = r
	}
	currentByName := make(map[string]model.CheckResult, len(current.Results))
	for _, r := range current.Results {
		currentByName[r.Name] = r
	}

	// Walk the current results in report order so output is stable.
	for _, r := range current.Results {
		prev, exists := previousByName[r.Name]
		if !exists {
			result.NewChecks = append(result.NewChecks, r.Name)
			continue
		}
		if prev.Status != r.Status {
			result.StatusChanges = append(result.StatusChanges, StatusChange{
				Name:     r.Name,
				Previous: prev.Status.String(),
				Current:  r.Status.String(),
			})
		}
	}

	for _, r := range previous.Results {
		if _, exists := currentByName[r.Name]; !exists {
			result.RemovedChecks = append(result.RemovedChecks, r.Name)
		}
	}

	return result
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(result *ComparisonResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonText outputs the comparison result in human-readable text format.
func outputComparisonText(result *ComparisonResult) error {
	fmt.Printf("Audit Comparison: %s\n", result.URL)
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\nScore: %s\n", formatScoreDirection(result.Direction))

	fmt.Printf("\nPrevious audit: %s\n", result.PreviousAudit.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Current audit:  %s\n", result.CurrentAudit.GeneratedAt.Format("2006-01-02 15:04:05"))

	fmt.Println("\nScore Summary:")
	fmt.Printf("  %-10s  %-10s  %-10s  %-10s\n", "", "Previous", "Current", "Change")
	fmt.Println("  " + strings.Repeat("-", 45))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Score",
		result.PreviousAudit.Score, result.CurrentAudit.Score,
		formatDelta(result.ScoreDelta))
	fmt.Printf("  %-10s  %-10s  %-10s\n", "Grade",
		result.PreviousAudit.Grade, result.CurrentAudit.Grade)
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Checks",
		result.PreviousAudit.TotalChecks, result.CurrentAudit.TotalChecks,
		formatDelta(result.CurrentAudit.TotalChecks-result.PreviousAudit.TotalChecks))

	if len(result.StatusChanges) > 0 {
		fmt.Printf("\nStatus Changes (%d):\n", len(result.StatusChanges))
		for _, c := range result.StatusChanges {
			fmt.Printf("  [~] %s: %s -> %s\n", c.Name, c.Previous, c.Current)
		}
	}

	if len(result.NewChecks) > 0 {
		fmt.Printf("\nNew Checks (%d):\n", len(result.NewChecks))
		for _, name := range result.NewChecks {
			fmt.Printf("  [+] %s\n", name)
		}
	}

	if len(result.RemovedChecks) > 0 {
		fmt.Printf("\nRemoved Checks (%d):\n", len(result.RemovedChecks))
		for _, name := range result.RemovedChecks {
			fmt.Printf("  [-] %s\n", name)
		}
	}

	if len(result.StatusChanges) == 0 && len(result.NewChecks) == 0 && len(result.RemovedChecks) == 0 {
		fmt.Println("\nNo check-level changes between the two audits.")
	}

	return nil
}

// formatScoreDirection formats the score change direction for display.
func formatScoreDirection(direction string) string {
	switch direction {
	case scoreDirectionImproved:
		return "IMPROVED (score increased)"
	case scoreDirectionWorsened:
		return "WORSENED (score decreased)"
	default:
		return "UNCHANGED"
	}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	} else if delta < 0 {
		return strconv.Itoa(delta)
	}
	return "0"
}
