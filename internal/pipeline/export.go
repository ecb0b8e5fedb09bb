package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"reqnorm/internal"
	"reqnorm/internal/schema"
)

// Export writes records in the format implied by the output extension.
// Unknown extensions fall back to CSV with a .csv suffix.
func Export(records []internal.Record, outputPath string) error {
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".xlsx", ".xls":
		return ExportXLSX(records, outputPath)
	case ".csv":
		return ExportCSV(records, outputPath)
	default:
		return ExportCSV(records, strings.TrimSuffix(outputPath, filepath.Ext(outputPath))+".csv")
	}
}

// ExportCSV writes the canonical table as semicolon-separated text with
// no field quoting; embedded delimiters, backslashes and line breaks
// are backslash-escaped.
func ExportCSV(records []internal.Record, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}

	b := strings.Builder{}
	writeRow := func(values []string) {
		for i, v := range values {
			if i > 0 {
				b.WriteByte(';')
			}
			b.WriteString(escapeCSVField(v))
		}
		b.WriteByte('\n')
	}

	writeRow(schema.Columns)
	for _, rec := range records {
		writeRow(rec.Values())
	}

	if err := os.WriteFile(outputPath, []byte(b.String()), 0o644); err != nil {
		return err
	}
	fmt.Printf("saved %d record(s) to %s\n", len(records), outputPath)
	return nil
}

func escapeCSVField(value string) string {
	r := strings.NewReplacer(`\`, `\\`, ";", `\;`, "\r\n", `\n`, "\n", `\n`, "\r", `\n`)
	return r.Replace(value)
}

// ExportXLSX writes the canonical table as a one-sheet workbook.
func ExportXLSX(records []internal.Record, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, h := range schema.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for rowIdx, rec := range records {
		for colIdx, v := range rec.Values() {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	if err := f.SaveAs(outputPath); err != nil {
		return err
	}
	fmt.Printf("saved %d record(s) to %s\n", len(records), outputPath)
	return nil
}

// GenerateTemplate writes a blank canonical table with one sample row
// showing the expected shape of each field.
func GenerateTemplate(outputPath string) error {
	sample := internal.Record{
		ParentID:                   "REQ-001",
		RequirementID:              "REQ-001-01",
		Type:                       "Functional",
		SubType:                    "Performance",
		Title:                      "Sample Requirement Title",
		Definition:                 "The system shall perform X within Y timeframe.",
		Notes:                      "Additional implementation notes",
		Remarks:                    "Review comments",
		Responsibility:             "Engineering Team",
		Applicability:              "All subsystems",
		Compliance:                 "C",
		ComplianceNotes:            "Fully compliant",
		Verification:               "Test",
		VerificationNotes:          "Verified by unit test",
		ReferenceDocument:          "REF-DOC-001",
		OriginalExternalIdentifier: "EXT-REQ-001",
	}
	return Export([]internal.Record{sample}, outputPath)
}
