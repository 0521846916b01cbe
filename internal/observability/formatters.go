// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jonathan/hirehub/internal/apply"
	"github.com/jonathan/hirehub/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for listings and details
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
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// FormatSalary renders a salary range for display. Internship ranges below 100
// are treated as hourly rates.
func FormatSalary(job types.Job) string {
	lo, hi := job.Salary.Min, job.Salary.Max
	if job.ExperienceLevel == types.Internship && lo < 100 {
		return fmt.Sprintf("$%d - $%d/hour", lo, hi)
	}
	return fmt.Sprintf("$%s - $%s per year", thousands(lo), thousands(hi))
}

func thousands(n int) string {
	if n >= 1000 {
		return fmt.Sprintf("%.0fk", math.Round(float64(n)/1000))
	}
	return fmt.Sprintf("%d", n)
}

// PrintJobList outputs one card per job under a summary of the active filters.
func (p *Printer) PrintJobList(jobs []types.Job, total int, filters types.FilterCriteria) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Showing %d of %d jobs\n", len(jobs), total))
	if !filters.IsDefault() {
		sb.WriteString(fmt.Sprintf("Filters: %s\n", DescribeFilters(filters)))
	}

	if len(jobs) == 0 {
		sb.WriteString("\nNo jobs found matching your criteria.\n")
		sb.WriteString("Try adjusting your filters or search terms.")
		p.printBox("JOB LISTINGS", sb.String())
		return
	}

	for i, job := range jobs {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("[%s] %s  (#%s)\n", job.LogoGlyph(), job.Title, job.ID))
		sb.WriteString(fmt.Sprintf("    %s · %s\n", job.Company, job.Location))
		sb.WriteString(fmt.Sprintf("    %s · %s · %s\n", job.Category, job.ExperienceLevel, job.JobType))
		sb.WriteString(fmt.Sprintf("    %s", FormatSalary(job)))
		if i < len(jobs)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("JOB LISTINGS", sb.String())
}

// DescribeFilters summarises the non-default criteria in c.
func DescribeFilters(c types.FilterCriteria) string {
	c = c.Normalize()
	var parts []string
	if c.Category != types.AllCategories {
		parts = append(parts, string(c.Category))
	}
	if c.Location != types.AllLocations {
		parts = append(parts, c.Location)
	}
	if c.Experience != types.AllExperience {
		parts = append(parts, string(c.Experience))
	}
	if q := strings.TrimSpace(c.SearchQuery); q != "" {
		parts = append(parts, fmt.Sprintf("%q", q))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

// PrintJobDetail outputs the full posting.
func (p *Printer) PrintJobDetail(job *types.Job) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:     %s\n", job.Company))
	sb.WriteString(fmt.Sprintf("Location:    %s\n", job.Location))
	sb.WriteString(fmt.Sprintf("Category:    %s\n", job.Category))
	sb.WriteString(fmt.Sprintf("Experience:  %s\n", job.ExperienceLevel))
	sb.WriteString(fmt.Sprintf("Type:        %s\n", job.JobType))
	sb.WriteString(fmt.Sprintf("Salary:      %s\n", FormatSalary(*job)))
	if job.PostedDate != "" {
		sb.WriteString(fmt.Sprintf("Posted:      %s\n", job.PostedDate))
	}
	sb.WriteString("\n")

	if job.Description != "" {
		sb.WriteString(wrap(job.Description, boxWidth-4))
		sb.WriteString("\n\n")
	}

	writeList(&sb, "Responsibilities", job.Responsibilities)
	writeList(&sb, "Qualifications", job.Qualifications)
	writeList(&sb, "Benefits", job.Benefits)

	if job.CompanyDescription != "" || job.CompanyWebsite != "" || job.CompanyLinkedIn != "" {
		sb.WriteString(fmt.Sprintf("About %s:\n", job.Company))
		if job.CompanyDescription != "" {
			sb.WriteString(wrap(job.CompanyDescription, boxWidth-4))
			sb.WriteString("\n")
		}
		if job.CompanyWebsite != "" {
			sb.WriteString(fmt.Sprintf("  Website:  %s\n", job.CompanyWebsite))
		}
		if job.CompanyLinkedIn != "" {
			sb.WriteString(fmt.Sprintf("  LinkedIn: %s\n", job.CompanyLinkedIn))
		}
	}

	p.printBox(strings.ToUpper(job.Title), strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(title + ":\n")
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
	sb.WriteString("\n")
}

// wrap breaks text into lines no wider than width.
func wrap(text string, width int) string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && len([]rune(line.String()))+1+len([]rune(word)) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteString(" ")
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// PrintMessage outputs a single-line status box, used for not-found and load errors.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintMessage(message string) {
	fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(message, boxWidth-4))
	fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
}

// PrintFieldErrors outputs the messages of a rejected application in field order.
func (p *Printer) PrintFieldErrors(errs apply.FieldErrors) {
	if errs.Valid() {
		return
	}

	var sb strings.Builder
	for _, field := range []string{apply.FieldName, apply.FieldEmail, apply.FieldResume} {
		if msg, ok := errs[field]; ok {
			sb.WriteString(fmt.Sprintf("⚠ %s: %s\n", field, msg))
		}
	}
	p.printBox("APPLICATION ERRORS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReceipt outputs the confirmation of a submitted application.
func (p *Printer) PrintReceipt(job *types.Job, receipt *types.ApplicationReceipt) {
	if receipt == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString("✅ Application Submitted!\n")
	sb.WriteString("We'll get back to you soon.\n\n")
	if job != nil {
		sb.WriteString(fmt.Sprintf("Position:      %s at %s\n", job.Title, job.Company))
	}
	sb.WriteString(fmt.Sprintf("Confirmation:  %s\n", receipt.ConfirmationID))
	sb.WriteString(fmt.Sprintf("Submitted:     %s", receipt.SubmittedAt.Format("2006-01-02 15:04 MST")))

	p.printBox("APPLICATION RECEIPT", sb.String())
}
