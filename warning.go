package obsmatrix

import (
	"fmt"
	"strings"
)

// WarningCode classifies a non-fatal issue found during a run.
type WarningCode string

// Warning codes.
const (
	// WarnRejectedHeading marks a heading line that did not normalize to a
	// category.
	WarnRejectedHeading WarningCode = "rejected_heading"

	// WarnDuplicateMatrix marks a spreadsheet ignored because an earlier
	// one already claimed its category key.
	WarnDuplicateMatrix WarningCode = "duplicate_matrix"

	// WarnUnkeyedMatrix marks a spreadsheet whose filename yields no key.
	WarnUnkeyedMatrix WarningCode = "unkeyed_matrix"

	// WarnNoHeading marks observations that precede every heading.
	WarnNoHeading WarningCode = "no_heading"

	// WarnUnrouted marks a category with observations but no spreadsheet.
	WarnUnrouted WarningCode = "unrouted_category"

	// WarnCategoryFailed marks a category whose reconciliation failed.
	WarnCategoryFailed WarningCode = "category_failed"

	// WarnExportFailed marks a spreadsheet that could not be exported.
	WarnExportFailed WarningCode = "export_failed"

	// WarnTrackingFailed marks a run record that could not be written.
	WarnTrackingFailed WarningCode = "tracking_failed"
)

// Warning is a non-fatal issue. The run still produced results.
type Warning struct {
	Code     WarningCode
	Message  string
	Page     int    // 0 when not tied to a page
	Category string // empty when not tied to a category
	Err      error  // underlying error, if any
}

func (w Warning) String() string {
	var b strings.Builder
	b.WriteString(string(w.Code))
	if w.Page > 0 {
		fmt.Fprintf(&b, " (page %d)", w.Page)
	}
	b.WriteString(": ")
	b.WriteString(w.Message)
	if w.Err != nil {
		b.WriteString(": ")
		b.WriteString(w.Err.Error())
	}
	return b.String()
}

// FormatWarnings renders warnings one per line.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

// CategoryFailure records a category whose reconciliation failed. Its
// paragraphs stay unreconciled; other categories are unaffected.
type CategoryFailure struct {
	Category string
	Store    string
	Err      error
}

func (f *CategoryFailure) Error() string {
	return fmt.Sprintf("category %s (%s): %v", f.Category, f.Store, f.Err)
}

func (f *CategoryFailure) Unwrap() error {
	return f.Err
}
