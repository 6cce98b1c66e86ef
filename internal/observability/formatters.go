// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/jonathan/resume-scorer/internal/ingestion"
	"github.com/jonathan/resume-scorer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// previewLines is the number of job posting lines shown by PrintJobPosting
	previewLines = 8
)

// Score bands for coloring
const (
	goodScore = 80
	fairScore = 60
)

// Printer handles formatted report output
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
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to width runes, marking the cut with "...".
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// scoreColor picks green, yellow or red for a 0-100 score.
func scoreColor(score float64) func(format string, a ...any) string {
	switch {
	case score >= goodScore:
		return color.GreenString
	case score >= fairScore:
		return color.YellowString
	default:
		return color.RedString
	}
}

// PrintReport outputs the final score, the weighted component breakdown and
// the most useful signal details.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintReport(report *types.ScoreReport) {
	if report == nil {
		return
	}

	fmt.Fprintln(p.out, color.New(color.Bold, color.Underline).Sprint("Match Analysis"))
	fmt.Fprintf(p.out, "Score: %s\n\n", scoreColor(report.FinalScore)("%.2f/100", report.FinalScore))

	c := report.Components
	var sb strings.Builder
	for _, row := range []struct {
		name  string
		value float64
	}{
		{"Keywords", c.Keywords},
		{"Skills", c.Skills},
		{"Experience", c.Experience},
		{"Education", c.Education},
		{"Achievements", c.Achievements},
		{"Language", c.Language},
		{"Format", c.Format},
		{"Diversity", c.Diversity},
	} {
		fmt.Fprintf(&sb, "%-14s %6.1f%%\n", row.name, row.value*100)
	}
	p.printBox("Components", sb.String())

	sig := report.Signals
	p.printList(color.GreenString("Matched skills:"), color.GreenString("✓"), sig.Skills.MatchedSkills)
	p.printList(color.RedString("Missing skills:"), color.RedString("✗"), sig.Skills.MissingSkills)
	p.printList(color.RedString("Missing keywords:"), color.RedString("✗"), sig.Keywords.MissingKeywords)

	education := color.RedString("not found")
	if sig.Education.Verified {
		education = color.GreenString("verified")
	}
	fmt.Fprintf(p.out, "\nEducation (%s): %s\n", sig.Education.RequiredDegree, education)
	fmt.Fprintf(p.out, "Job titles matched: %d\n", sig.Experience.Count)
	fmt.Fprintf(p.out, "Achievements: %d\n", sig.Achievements.Count)
	fmt.Fprintf(p.out, "Diversity mentions: %d\n", sig.Diversity.Count)
	if !sig.Format.Clean {
		fmt.Fprintf(p.out, "%s %s\n", color.YellowString("⚠"), formatIssues(sig.Format))
	}

	p.printList(color.YellowString("Misspelled words:"), color.YellowString("•"), sig.Language.Misspelled)
	if len(sig.Language.Corrections) > 0 {
		fmt.Fprintf(p.out, "\n%s\n", color.YellowString("Suggested corrections:"))
		count := min(len(sig.Language.Corrections), maxItemsToShow)
		for _, corr := range sig.Language.Corrections[:count] {
			fmt.Fprintf(p.out, "  %s -> %s\n", corr.Original, corr.Corrected)
		}
		if len(sig.Language.Corrections) > maxItemsToShow {
			fmt.Fprintf(p.out, "  ... and %d more\n", len(sig.Language.Corrections)-maxItemsToShow)
		}
	}
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printList(title, bullet string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(p.out, "\n%s\n", title)
	count := min(len(items), maxItemsToShow)
	for _, item := range items[:count] {
		fmt.Fprintf(p.out, "  %s %s\n", bullet, item)
	}
	if len(items) > maxItemsToShow {
		fmt.Fprintf(p.out, "  ... and %d more\n", len(items)-maxItemsToShow)
	}
}

func formatIssues(f types.FormatResult) string {
	var issues []string
	if f.HasTabs {
		issues = append(issues, "tabs")
	}
	if f.HasBlankLines {
		issues = append(issues, "blank lines")
	}
	if f.HasHTMLTags {
		issues = append(issues, "HTML tags")
	}
	return "Formatting issues: " + strings.Join(issues, ", ")
}

// PrintJobPosting outputs fetched job posting metadata and the first lines of its text.
func (p *Printer) PrintJobPosting(meta *ingestion.Metadata, text string) {
	if meta == nil {
		return
	}

	var sb strings.Builder
	if meta.URL != "" {
		fmt.Fprintf(&sb, "URL:       %s\n", meta.URL)
	}
	if meta.Platform != "" {
		fmt.Fprintf(&sb, "Platform:  %s\n", meta.Platform)
	}
	fmt.Fprintf(&sb, "Source:    %s\n", meta.Source)
	fmt.Fprintf(&sb, "Rendered:  %t\n", meta.Rendered)
	fmt.Fprintf(&sb, "Chars:     %d\n", meta.Chars)
	fmt.Fprintf(&sb, "Hash:      %s\n", meta.Hash)

	lines := strings.Split(text, "\n")
	if len(lines) > 0 && text != "" {
		sb.WriteString("\n")
		for _, line := range lines[:min(len(lines), previewLines)] {
			sb.WriteString(line + "\n")
		}
		if len(lines) > previewLines {
			fmt.Fprintf(&sb, "... and %d more lines\n", len(lines)-previewLines)
		}
	}

	p.printBox("Job Posting", sb.String())
}
