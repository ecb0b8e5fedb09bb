package pipeline

import (
	"strings"

	pdf "github.com/ledongthuc/pdf"

	"reqnorm/internal/util"
)

// ExtractPDFLines pulls normalized text lines out of a structured
// requirements PDF. Each page's text is Unicode-normalized, the fixed
// page header prefix is skipped, and the remainder is split into
// whitespace-collapsed non-empty lines ready for GroupBlocks.
func ExtractPDFLines(path string, headerSkip int) ([]string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lines := []string{}
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		lines = append(lines, pageLines(text, headerSkip)...)
	}
	return lines, nil
}

// pageLines normalizes one page of raw extracted text.
func pageLines(text string, headerSkip int) []string {
	text = util.NormalizeUnicode(text)
	if headerSkip >= len(text) {
		return nil
	}
	if headerSkip > 0 {
		text = text[headerSkip:]
	}
	return splitLines(text)
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = util.CollapseWhitespace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
