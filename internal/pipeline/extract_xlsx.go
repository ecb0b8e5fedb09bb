package pipeline

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"reqnorm/internal"
	"reqnorm/internal/cache"
	"reqnorm/internal/resolve"
)

// ExtractXLSX reads a workbook into a Table. A single-sheet workbook is
// read directly; with multiple sheets the cached selection is used when
// it still names an existing sheet, otherwise the resolver picks one
// and the choice is persisted.
func ExtractXLSX(path string, fc *cache.FileCache, r resolve.Resolver) (internal.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return internal.Table{}, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return internal.Table{}, fmt.Errorf("workbook has no sheets: %s", path)
	}

	sheet := sheets[0]
	if len(sheets) > 1 {
		sheet, err = selectSheet(path, sheets, fc, r)
		if err != nil {
			return internal.Table{}, err
		}
	}

	fmt.Printf("reading sheet %q\n", sheet)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return internal.Table{}, err
	}
	if len(rows) == 0 {
		return internal.Table{}, nil
	}
	return internal.Table{Headers: rows[0], Rows: rows[1:]}, nil
}

func selectSheet(path string, sheets []string, fc *cache.FileCache, r resolve.Resolver) (string, error) {
	if fc != nil {
		cached := fc.Choices(path).SheetName
		for _, sheet := range sheets {
			if sheet == cached {
				fmt.Printf("using cached sheet selection %q\n", cached)
				return cached, nil
			}
		}
	}

	sheet, err := r.SelectSheet(path, sheets)
	if err != nil {
		return "", err
	}
	if fc != nil {
		fc.SaveSheet(path, sheet)
	}
	return sheet, nil
}
