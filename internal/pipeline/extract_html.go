package pipeline

import (
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"reqnorm/internal"
	"reqnorm/internal/util"
)

// ExtractHTML reads the first data table of an HTML export into a
// Table. The first row (th or td) is taken as the header row.
func ExtractHTML(path string) (internal.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return internal.Table{}, err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return internal.Table{}, err
	}

	var table internal.Table
	found := false
	doc.Find("table").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		rows := sel.Find("tr")
		if rows.Length() < 2 {
			return true
		}

		rows.First().Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			table.Headers = append(table.Headers, util.CollapseWhitespace(cell.Text()))
		})
		rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
			cells := []string{}
			row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, util.CollapseWhitespace(cell.Text()))
			})
			if len(cells) > 0 {
				table.Rows = append(table.Rows, cells)
			}
		})
		found = true
		return false
	})

	if !found || len(strings.TrimSpace(strings.Join(table.Headers, ""))) == 0 {
		return internal.Table{}, fmt.Errorf("no data table found in %s", path)
	}
	return table, nil
}
