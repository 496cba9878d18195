package layout

import (
	"testing"

	"github.com/tsawler/obsmatrix/model"
	"github.com/tsawler/obsmatrix/text"
)

func TestExtractHeadings_Basic(t *testing.T) {
	pages := []model.PageText{
		{Number: 1, Text: "INFORME DE REVISIÓN\nContenido general."},
		{Number: 3, Text: "1.2 ESPECIALIDAD E (Eléctrica - Lado Aire)\nLa acometida no cumple."},
		{Number: 10, Text: "ESPECIALIDAD S\nTexto."},
	}

	got := ExtractHeadings(pages)
	want := []model.HeadingOccurrence{
		{Page: 3, Category: "ELECTRICA", Qualifier: "LADO AIRE"},
		{Page: 10, Category: "ESTRUCTURA"},
	}

	if len(got) != len(want) {
		t.Fatalf("ExtractHeadings() = %+v, want %+v", got, want)
	}
	for i := range want {
		if !got[i].SameAs(want[i]) {
			t.Errorf("occurrence %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if got[0].Raw != "E (Eléctrica - Lado Aire)" {
		t.Errorf("Raw = %q, want %q", got[0].Raw, "E (Eléctrica - Lado Aire)")
	}
}

func TestExtractHeadings_PrimaryAndFallback(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"plain", "ESPECIALIDAD Pavimentos", "PAVIMENTOS"},
		{"outline prefix", "3.1.4 ESPECIALIDAD Topografía", "TOPOGRAFIA"},
		{"lowercase keyword", "especialidad de Tránsito", "TRANSITO"},
		{"fallback mid-line", "Comentarios de la ESPECIALIDAD Geométrico", "GEOMETRICO"},
		{"toc leader", "2. ESPECIALIDAD BIM ........ 45", "BIM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractHeadings([]model.PageText{{Number: 1, Text: tt.line}})
			if len(got) != 1 {
				t.Fatalf("ExtractHeadings(%q) = %+v, want one occurrence", tt.line, got)
			}
			if got[0].Category != tt.want {
				t.Errorf("Category = %q, want %q", got[0].Category, tt.want)
			}
		})
	}
}

func TestExtractHeadings_NoMatch(t *testing.T) {
	pages := []model.PageText{
		{Number: 1, Text: "ESPECIALIDADES\nESPECIALIDAD\nEspecialidad:"},
	}
	if got := ExtractHeadings(pages); len(got) != 0 {
		t.Errorf("ExtractHeadings() = %+v, want none", got)
	}
}

func TestExtractHeadings_CollapsesAdjacentDuplicates(t *testing.T) {
	pages := []model.PageText{
		{Number: 2, Text: "ESPECIALIDAD E\nESPECIALIDAD Eléctrica\nESPECIALIDAD S"},
		{Number: 3, Text: "ESPECIALIDAD E"},
		{Number: 3, Text: ""},
	}

	got := ExtractHeadings(pages)
	// Page 2 "E" and "Eléctrica" collapse; S separates; page 3 E is kept.
	wantCats := []string{"ELECTRICA", "ESTRUCTURA", "ELECTRICA"}
	if len(got) != len(wantCats) {
		t.Fatalf("ExtractHeadings() = %+v, want %d occurrences", got, len(wantCats))
	}
	for i, c := range wantCats {
		if got[i].Category != c {
			t.Errorf("occurrence %d category = %q, want %q", i, got[i].Category, c)
		}
	}
}

func TestExtractHeadings_KeepsNonAdjacentRepeats(t *testing.T) {
	pages := []model.PageText{
		{Number: 5, Text: "ESPECIALIDAD E\nESPECIALIDAD S\nESPECIALIDAD E"},
	}
	if got := ExtractHeadings(pages); len(got) != 3 {
		t.Errorf("ExtractHeadings() = %d occurrences, want 3", len(got))
	}
}

func TestExtractHeadings_SameCategoryDifferentPages(t *testing.T) {
	pages := []model.PageText{
		{Number: 1, Text: "ESPECIALIDAD E"},
		{Number: 2, Text: "ESPECIALIDAD E"},
	}
	if got := ExtractHeadings(pages); len(got) != 2 {
		t.Errorf("ExtractHeadings() = %d occurrences, want 2", len(got))
	}
}

func TestHeadingExtractor_Analyze_Rejected(t *testing.T) {
	pages := []model.PageText{
		{Number: 7, Text: "ESPECIALIDAD DE\nESPECIALIDAD Pavimentos\nESPECIALIDAD ......"},
	}

	result := NewHeadingExtractor().Analyze(pages)
	if len(result.Occurrences) != 1 {
		t.Errorf("Occurrences = %+v, want 1", result.Occurrences)
	}
	if len(result.Rejected) != 2 {
		t.Fatalf("Rejected = %+v, want 2", result.Rejected)
	}
	if result.Rejected[0].Page != 7 || result.Rejected[0].Line != "ESPECIALIDAD DE" {
		t.Errorf("Rejected[0] = %+v", result.Rejected[0])
	}
}

func TestHeadingExtractor_CustomKeyword(t *testing.T) {
	ex := NewHeadingExtractorWithConfig(HeadingConfig{
		Keyword: "SPECIALTY",
		Abbreviations: text.AbbreviationTable{
			{Token: "HV", Canonical: "HIGH VOLTAGE"},
		},
	})

	got := ex.Extract([]model.PageText{{Number: 1, Text: "4 SPECIALTY HV (North)\nESPECIALIDAD E"}})
	if len(got) != 1 {
		t.Fatalf("Extract() = %+v, want 1", got)
	}
	if got[0].Category != "HIGH VOLTAGE" || got[0].Qualifier != "NORTH" {
		t.Errorf("Extract()[0] = %+v", got[0])
	}
}

func TestHeadingLayout_Categories(t *testing.T) {
	l := &HeadingLayout{Occurrences: []model.HeadingOccurrence{
		{Page: 1, Category: "B"}, {Page: 2, Category: "A"}, {Page: 3, Category: "B"},
	}}
	got := l.Categories()
	if len(got) != 2 || got[0] != "B" || got[1] != "A" {
		t.Errorf("Categories() = %q, want [B A]", got)
	}
}

func TestMatchLine(t *testing.T) {
	ex := NewHeadingExtractor()
	if rest, ok := ex.MatchLine("  1 ESPECIALIDAD  Tránsito  "); !ok || rest != "Tránsito" {
		t.Errorf("MatchLine() = %q, %v; want Tránsito, true", rest, ok)
	}
	if _, ok := ex.MatchLine("sin encabezado"); ok {
		t.Error("MatchLine() matched a line without keyword")
	}
}
