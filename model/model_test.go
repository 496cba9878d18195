package model

import (
	"encoding/json"
	"strings"
	"testing"
)

// ============================================================================
// Document Tests
// ============================================================================

func TestDocumentAddPage(t *testing.T) {
	doc := NewDocument("report.pdf")

	if !doc.AddPage(1, "first") {
		t.Fatal("AddPage(1) = false, want true")
	}
	if !doc.AddPage(3, "third") {
		t.Fatal("AddPage(3) = false, want true")
	}

	tests := []struct {
		name   string
		number int
	}{
		{"zero", 0},
		{"negative", -2},
		{"duplicate", 3},
		{"out of order", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if doc.AddPage(tt.number, "x") {
				t.Errorf("AddPage(%d) = true, want false", tt.number)
			}
		})
	}

	if doc.PageCount() != 2 {
		t.Errorf("PageCount() = %d, want 2", doc.PageCount())
	}
}

func TestDocumentGetPage(t *testing.T) {
	doc := NewDocument("report.pdf")
	doc.AddPage(2, "two")
	doc.AddPage(5, "five")

	if p := doc.GetPage(5); p == nil || p.Text != "five" {
		t.Errorf("GetPage(5) = %+v, want text five", p)
	}
	if p := doc.GetPage(3); p != nil {
		t.Errorf("GetPage(3) = %+v, want nil", p)
	}
}

func TestDocumentIsEmpty(t *testing.T) {
	doc := NewDocument("blank.pdf")
	if !doc.IsEmpty() {
		t.Error("new document should be empty")
	}

	doc.AddPage(1, "  \n\t ")
	if !doc.IsEmpty() {
		t.Error("document with blank page should be empty")
	}

	doc.AddPage(2, "text")
	if doc.IsEmpty() {
		t.Error("document with text should not be empty")
	}
}

// ============================================================================
// PageText Tests
// ============================================================================

func TestPageTextLines(t *testing.T) {
	p := PageText{Number: 1, Text: "a\r\nb\n\nc"}
	got := p.Lines()
	want := []string{"a", "b", "", "c"}

	if len(got) != len(want) {
		t.Fatalf("Lines() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Lines()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if lines := (PageText{Number: 1}).Lines(); lines != nil {
		t.Errorf("Lines() on empty page = %q, want nil", lines)
	}
}

// ============================================================================
// Label and Heading Tests
// ============================================================================

func TestLabelIsObservation(t *testing.T) {
	tests := []struct {
		label Label
		want  bool
	}{
		{LabelObservation, true},
		{"Observacion", true},
		{" OBSERVACION ", true},
		{LabelOther, false},
		{"", false},
	}

	for _, tt := range tests {
		if got := tt.label.IsObservation(); got != tt.want {
			t.Errorf("Label(%q).IsObservation() = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestHeadingOccurrenceSameAs(t *testing.T) {
	a := HeadingOccurrence{Page: 3, Category: "ELECTRICA", Qualifier: "LADO AIRE", Raw: "E (Eléctrica)"}
	b := HeadingOccurrence{Page: 3, Category: "ELECTRICA", Qualifier: "LADO AIRE", Raw: "other"}

	if !a.SameAs(b) {
		t.Error("occurrences differing only in Raw should be the same")
	}

	b.Qualifier = ""
	if a.SameAs(b) {
		t.Error("occurrences with different qualifiers should differ")
	}
}

// ============================================================================
// Response Tests
// ============================================================================

func TestNewResponse(t *testing.T) {
	paras := []Paragraph{
		{Page: 1, Text: "intro", Label: LabelOther},
		{Page: 2, Text: "fix it", Label: LabelObservation, Category: "ELECTRICA", SourceRef: "ELECTRICA_obs.xlsx", Reconciled: true},
	}

	resp := NewResponse(paras)
	if len(resp.Results) != 2 {
		t.Fatalf("len(Results) = %d, want 2", len(resp.Results))
	}
	if got := len(resp.Observations()); got != 1 {
		t.Errorf("Observations() = %d, want 1", got)
	}
	if got := resp.ReconciledCount(); got != 1 {
		t.Errorf("ReconciledCount() = %d, want 1", got)
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	for _, key := range []string{`"results"`, `"page":2`, `"source_ref":"ELECTRICA_obs.xlsx"`, `"reconciled":true`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("JSON %s missing %s", data, key)
		}
	}
}
