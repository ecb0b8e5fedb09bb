package schema

import (
	"strings"
	"testing"
)

func TestColumnsShape(t *testing.T) {
	if len(Columns) != 16 {
		t.Fatalf("len=%d", len(Columns))
	}
	if Columns[0] != "Parent ID" || Columns[15] != "Original External Identifier" {
		t.Fatalf("unexpected column order: %v", Columns)
	}
}

func TestEveryCanonicalColumnMapsToItself(t *testing.T) {
	for _, col := range Columns {
		target, ok := ColumnMapping[StandardizeHeader(col)]
		if !ok {
			t.Fatalf("canonical column %q has no self-mapping", col)
		}
		if target != col {
			t.Fatalf("%q maps to %q", col, target)
		}
	}
}

func TestColumnMappingTargetsAreCanonical(t *testing.T) {
	for source, target := range ColumnMapping {
		if ColumnIndex(target) < 0 {
			t.Fatalf("source %q maps to unknown column %q", source, target)
		}
	}
}

func TestNormalizeCompliance(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"   ", ""},
		{"Compliant", "C"},
		{"c", "C"},
		{"C", "C"},
		{"Non-Compliant", "NC"},
		{"not compliant", "NC"},
		{"NC", "NC"},
		{"Partially Compliant", "PC"},
		{"partial", "PC"},
		{"pc", "PC"},
		{"TBD", "TBD"},
		{"Waived", "Waived"},
	}
	for _, tc := range cases {
		if got := NormalizeCompliance(tc.input); got != tc.want {
			t.Fatalf("NormalizeCompliance(%q)=%q want %q", tc.input, got, tc.want)
		}
	}
}

func TestNormalizeComplianceIsIdempotent(t *testing.T) {
	inputs := []string{"", "Compliant", "non compliant", "partial", "TBD", "C", "NC", "PC"}
	for _, input := range inputs {
		once := NormalizeCompliance(input)
		twice := NormalizeCompliance(once)
		if once != twice {
			t.Fatalf("not stable for %q: %q then %q", input, once, twice)
		}
	}
}

func TestStandardizeHeader(t *testing.T) {
	if got := StandardizeHeader(`  "Req ID"  `); got != "req id" {
		t.Fatalf("got %q", got)
	}
	if got := StandardizeHeader(strings.ToUpper("compliance")); got != "compliance" {
		t.Fatalf("got %q", got)
	}
}
