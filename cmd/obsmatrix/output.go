package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tsawler/obsmatrix"
)

var (
	// titleStyle for category names and headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for reconciled counts
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// warnStyle for warnings
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	// errorStyle for failed categories
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// boxStyle for the summary box
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1)
)

// FormatSummary renders the outcome of a run
func FormatSummary(w io.Writer, report *obsmatrix.Report) {
	resp := report.Response

	added := make(map[string]int)
	total := make(map[string]int)
	for _, r := range resp.Results {
		if !r.Label.IsObservation() {
			continue
		}
		total[r.Category]++
		if r.Reconciled {
			added[r.Category]++
		}
	}
	failed := make(map[string]bool)
	for _, f := range report.Failures {
		failed[f.Category] = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", dimStyle.Render("Run:"), report.RunID)
	fmt.Fprintf(&b, "%s %d  %s %d  %s %d  %s %s\n",
		dimStyle.Render("Pages:"), report.PageCount,
		dimStyle.Render("Paragraphs:"), report.ParagraphCount,
		dimStyle.Render("Observations:"), report.ObservationCount,
		dimStyle.Render("Reconciled:"), successStyle.Render(fmt.Sprint(resp.ReconciledCount())),
	)

	for _, c := range report.Categories {
		status := successStyle.Render(fmt.Sprintf("+%d", added[c]))
		if failed[c] {
			status = errorStyle.Render("failed")
		}
		fmt.Fprintf(&b, "\n%s %s %s", titleStyle.Render(c), dimStyle.Render(fmt.Sprintf("%d observations", total[c])), status)
	}
	for _, e := range report.Exports {
		fmt.Fprintf(&b, "\n%s %s", dimStyle.Render("Exported:"), e.Dest)
	}

	fmt.Fprintln(w, boxStyle.Render(b.String()))
	FormatWarnings(w, report.Warnings)
}

// FormatWarnings renders warnings, one per line
func FormatWarnings(w io.Writer, warnings []obsmatrix.Warning) {
	for _, warning := range warnings {
		style := warnStyle
		if warning.Code == obsmatrix.WarnCategoryFailed {
			style = errorStyle
		}
		fmt.Fprintf(w, "%s %s\n", style.Render("!"), warning.String())
	}
}
