package text

import (
	"strings"
	"testing"
)

func TestNormalizeHeading(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		wantCategory  string
		wantQualifier string
	}{
		{"letter code with hyphenated qualifier", "E (Eléctrica - Lado Aire)", "ELECTRICA", "LADO AIRE"},
		{"letter code with spelled name", "E (Eléctrica)", "ELECTRICA", ""},
		{"balanced parenthetical", "Eléctrica (Lado Aire)", "ELECTRICA", "LADO AIRE"},
		{"unbalanced parenthetical", "DE TELECOMUNICACIONES (LADO", "TELECOMUNICACIONES", "LADO"},
		{"dot leader page number", "De Diseño Aeroportuario ........ 152", "DISENO AEROPORTUARIO", ""},
		{"trailing page number", "ELECTRICA 12", "ELECTRICA", ""},
		{"explanatory prose after comma", "de Señalización Horizontal, es necesario revisar", "SENALIZACION HORIZONTAL", ""},
		{"explanatory prose after semicolon", "Estructuras; ver anexo", "ESTRUCTURAS", ""},
		{"en dash qualifier", "Geométrico – Diseño Vial", "GEOMETRICO", "DISENO VIAL"},
		{"em dash qualifier", "Tránsito — Fase 2 — Norte", "TRANSITO", "FASE 2 - NORTE"},
		{"decorative quotes", "“Pavimentos”", "PAVIMENTOS", ""},
		{"guillemets", "«Topografía»", "TOPOGRAFIA", ""},
		{"bare letter S", "S", "ESTRUCTURA", ""},
		{"bare letter B", "B", "GEOTECNIA Y ESTUDIOS GEOMORFOLOGICOS", ""},
		{"letter with hyphen suffix", "E-Lado", "ELECTRICA", ""},
		{"BIM with page", "BIM 3", "BIM", ""},
		{"FADS with trailing text", "FADS: requisitos", "FADS", ""},
		{"qualifier reduced to empty", "Tránsito (...)", "TRANSITO", ""},
		{"trailing punctuation", "Pavimentos:.", "PAVIMENTOS", ""},
		{"internal whitespace", "  Seguridad    Vial  ", "SEGURIDAD VIAL", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NormalizeHeading(tt.input)
			if h.Category != tt.wantCategory {
				t.Errorf("NormalizeHeading(%q).Category = %q, want %q", tt.input, h.Category, tt.wantCategory)
			}
			if h.Qualifier != tt.wantQualifier {
				t.Errorf("NormalizeHeading(%q).Qualifier = %q, want %q", tt.input, h.Qualifier, tt.wantQualifier)
			}
			if !h.Valid() {
				t.Errorf("NormalizeHeading(%q).Valid() = false, want true", tt.input)
			}
		})
	}
}

func TestNormalizeHeading_Rejected(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"DE",
		"del",
		"La",
		"el.",
		"«»",
		"....",
		"()",
		"- - -",
		"152",
		"\xff\xfe bad",
		"El\xe9ctrica",
	}

	for _, input := range inputs {
		h := NormalizeHeading(input)
		if h.Valid() {
			t.Errorf("NormalizeHeading(%q) = %+v, want rejection", input, h)
		}
		if h.Qualifier != "" {
			t.Errorf("NormalizeHeading(%q).Qualifier = %q, want empty", input, h.Qualifier)
		}
	}
}

func TestNormalizeHeading_Cleaned(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"E (Eléctrica – Lado Aire)", "E (Eléctrica - Lado Aire)"},
		{"“De Diseño”  ....... 12", "De Diseño"},
		{"  Pavimentos   7 ", "Pavimentos"},
	}

	for _, tt := range tests {
		if got := NormalizeHeading(tt.input).Cleaned; got != tt.want {
			t.Errorf("NormalizeHeading(%q).Cleaned = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeHeading_Total(t *testing.T) {
	inputs := []string{
		strings.Repeat("ESPECIALIDAD ", 500),
		strings.Repeat("(", 200),
		strings.Repeat(")", 200),
		"((a)",
		"a ( b ) ( c",
		"\x00\xff\xfe",
		"日本語の見出し",
		strings.Repeat("- ", 1000),
		strings.Repeat(".", 3000) + "9",
	}

	for _, input := range inputs {
		h := NormalizeHeading(input)
		if h.Category != strings.ToUpper(h.Category) {
			t.Errorf("NormalizeHeading(%.20q).Category = %q, not uppercase", input, h.Category)
		}
	}
}

func TestAbbreviationTable_FirstMatchWins(t *testing.T) {
	table := AbbreviationTable{
		{Token: "E", Canonical: "FIRST"},
		{Token: "E", Canonical: "SECOND"},
	}

	if got := table.Normalize("E").Category; got != "FIRST" {
		t.Errorf("Normalize(E).Category = %q, want FIRST", got)
	}

	rule, ok := table.Match("E LADO")
	if !ok || rule.Canonical != "FIRST" {
		t.Errorf("Match(E LADO) = %+v, %v; want FIRST", rule, ok)
	}

	if _, ok := table.Match("ELECTRICA"); ok {
		t.Error("Match(ELECTRICA) should not match token E")
	}
}

func TestAbbreviationTable_NonLetterCodeKeepsQualifier(t *testing.T) {
	h := NormalizeHeading("BIM (Modelo Federado)")
	if h.Category != "BIM" || h.Qualifier != "MODELO FEDERADO" {
		t.Errorf("NormalizeHeading(BIM (Modelo Federado)) = %+v", h)
	}
}
