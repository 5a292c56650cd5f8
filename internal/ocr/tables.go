package ocr

import (
	"regexp"
	"strings"
)

var (
	reColumnGap    = regexp.MustCompile(`\s{2,}`)
	reNonPrintable = regexp.MustCompile(`[^\x20-\x7E\n\t\x{00C0}-\x{017F}€£]`)
	reSpaceRun     = regexp.MustCompile(`[ \t]+`)
)

// FlattenTabularRows finds lines that look like table rows (two or more cells
// separated by runs of whitespace) and renders each as a single pipe-delimited
// string. The flattened rows are appended to the page text so item tables stay
// searchable after the layout is lost.
func FlattenTabularRows(pageText string) []string {
	var rows []string
	for _, line := range strings.Split(pageText, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		cells := reColumnGap.Split(trimmed, -1)
		if len(cells) < 2 {
			continue
		}
		for i, c := range cells {
			cells[i] = strings.TrimSpace(c)
		}
		rows = append(rows, strings.Join(cells, " | "))
	}
	return rows
}

// CleanText strips OCR artifacts: non-printable characters go away (keeping
// Latin-1 accents and currency signs) and whitespace runs collapse to single
// spaces. Newlines are preserved as line boundaries.
func CleanText(text string) string {
	text = reNonPrintable.ReplaceAllString(text, "")
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(reSpaceRun.ReplaceAllString(line, " "))
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
