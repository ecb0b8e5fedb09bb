package pipeline

import (
	"encoding/csv"
	"os"

	"reqnorm/internal"
)

// ExtractCSV reads comma-delimited text into a Table. Ragged rows are
// tolerated; the first row is the header.
func ExtractCSV(path string) (internal.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return internal.Table{}, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return internal.Table{}, err
	}
	if len(rows) == 0 {
		return internal.Table{}, nil
	}
	return internal.Table{Headers: rows[0], Rows: rows[1:]}, nil
}
