package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"reqnorm/internal/cache"
	"reqnorm/internal/resolve"
)

type sheetDef struct {
	name string
	rows [][]any
}

func mkWorkbook(t *testing.T, path string, sheets []sheetDef) {
	t.Helper()
	f := excelize.NewFile()
	for i, sheet := range sheets {
		if i == 0 {
			if sheet.name != f.GetSheetName(0) {
				if err := f.SetSheetName(f.GetSheetName(0), sheet.name); err != nil {
					t.Fatal(err)
				}
			}
		} else {
			if _, err := f.NewSheet(sheet.name); err != nil {
				t.Fatal(err)
			}
		}
		for r, row := range sheet.rows {
			for c, v := range row {
				cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
				if err := f.SetCellValue(sheet.name, cell, v); err != nil {
					t.Fatal(err)
				}
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
}

func TestExtractXLSXSingleSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reqs.xlsx")
	mkWorkbook(t, path, []sheetDef{
		{name: "Sheet1", rows: [][]any{
			{"Req ID", "Title"},
			{"R1", "First"},
			{"R2", "Second"},
		}},
	})

	table, err := ExtractXLSX(path, nil, &resolve.Scripted{})
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Headers) != 2 || table.Headers[0] != "Req ID" {
		t.Fatalf("headers=%v", table.Headers)
	}
	if len(table.Rows) != 2 || table.Cell(1, 0) != "R2" {
		t.Fatalf("rows=%v", table.Rows)
	}
}

func TestExtractXLSXMultiSheetUsesResolverAndCache(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "reqs.xlsx")
	mkWorkbook(t, path, []sheetDef{
		{name: "Summary", rows: [][]any{{"nothing"}}},
		{name: "Data", rows: [][]any{
			{"Req ID"},
			{"R1"},
		}},
	})

	fc := cache.New(filepath.Join(tmp, ".cache"))
	table, err := ExtractXLSX(path, fc, &resolve.Scripted{Sheet: "Data"})
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Rows) != 1 || table.Cell(0, 0) != "R1" {
		t.Fatalf("rows=%v", table.Rows)
	}
	if fc.Choices(path).SheetName != "Data" {
		t.Fatalf("sheet not cached: %q", fc.Choices(path).SheetName)
	}

	// Second pass must not consult the resolver at all.
	table2, err := ExtractXLSX(path, fc, &resolve.Scripted{Sheet: "Summary"})
	if err != nil {
		t.Fatal(err)
	}
	if table2.Headers[0] != "Req ID" {
		t.Fatalf("cached sheet ignored, headers=%v", table2.Headers)
	}
}

func TestExtractCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reqs.csv")
	content := "Req ID,Title,Status\nR1,First,Compliant\nR2,Second,\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := ExtractCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Headers) != 3 || len(table.Rows) != 2 {
		t.Fatalf("headers=%v rows=%v", table.Headers, table.Rows)
	}
	if table.Cell(0, 2) != "Compliant" {
		t.Fatalf("cell=%q", table.Cell(0, 2))
	}
}
