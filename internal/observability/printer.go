package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/tablesmith/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJobStatus outputs a human-readable summary of a job's state.
func (p *Printer) PrintJobStatus(status *types.JobStatus) {
	if status == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job:      %s\n", status.ID))
	sb.WriteString(fmt.Sprintf("Stage:    %s\n", status.Stage))
	sb.WriteString(fmt.Sprintf("Files:    %d\n", len(status.Files)))
	if status.Progress != nil {
		sb.WriteString(fmt.Sprintf("Progress: %s\n", status.Progress.Message))
	}

	if len(status.Errors) > 0 {
		sb.WriteString("\nErrors:\n")
		count := min(len(status.Errors), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", status.Errors[i]))
		}
		if len(status.Errors) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(status.Errors)-maxItemsToShow))
		}
	}

	p.printBox("Ingestion Job", strings.TrimRight(sb.String(), "\n"))
}

// PrintAnalysis outputs a summary of the analyzer's findings.
func (p *Printer) PrintAnalysis(report *types.AnalysisReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Files:  %d\n", report.TotalFiles))
	sb.WriteString(fmt.Sprintf("Tables: %d\n", report.TotalTables))
	sb.WriteString(fmt.Sprintf("Rows:   %d\n", report.TotalRows))

	if len(report.Relationships) > 0 {
		sb.WriteString("\nRelationships:\n")
		count := min(len(report.Relationships), maxItemsToShow)
		for i := 0; i < count; i++ {
			rel := report.Relationships[i]
			sb.WriteString(fmt.Sprintf("  • %s.%s -> %s.%s (%s)\n",
				rel.FromTable, rel.FromColumn, rel.ToTable, rel.ToColumn, rel.Confidence))
		}
		if len(report.Relationships) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(report.Relationships)-maxItemsToShow))
		}
	}

	if len(report.DataQualityIssues) > 0 {
		sb.WriteString("\nQuality Warnings:\n")
		count := min(len(report.DataQualityIssues), maxItemsToShow)
		for i := 0; i < count; i++ {
			finding := report.DataQualityIssues[i]
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", finding.Table, finding.Issue))
		}
		if len(report.DataQualityIssues) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(report.DataQualityIssues)-maxItemsToShow))
		}
	}

	p.printBox("File Analysis", strings.TrimRight(sb.String(), "\n"))
}

// PrintSchemaResult outputs the outcome of schema generation.
func (p *Printer) PrintSchemaResult(result *types.SchemaResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	verified := "no"
	if result.VerificationStatus {
		verified = "yes"
	}
	tableCount := 0
	if result.Plan != nil {
		tableCount = len(result.Plan.Tables)
	}
	sb.WriteString(fmt.Sprintf("Tables:   %d\n", tableCount))
	sb.WriteString(fmt.Sprintf("Rounds:   %d\n", result.RoundsTaken))
	sb.WriteString(fmt.Sprintf("Verified: %s\n", verified))

	if len(result.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		count := min(len(result.Warnings), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", result.Warnings[i]))
		}
	}

	p.printBox("Schema Generation", strings.TrimRight(sb.String(), "\n"))
}

// PrintMaterialization outputs the outcome of database creation.
func (p *Printer) PrintMaterialization(result *types.MaterializationResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Database: %s\n", result.DatabaseName))
	sb.WriteString(fmt.Sprintf("Path:     %s\n", result.DatabasePath))

	for _, table := range result.TablesCreated {
		sb.WriteString(fmt.Sprintf("  • %s: %d rows\n", table, result.RowsInserted[table]))
	}

	if len(result.Errors) > 0 {
		sb.WriteString("\nErrors:\n")
		count := min(len(result.Errors), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", result.Errors[i]))
		}
	}

	p.printBox("Database", strings.TrimRight(sb.String(), "\n"))
}
