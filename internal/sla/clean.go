package sla

import (
	"regexp"
	"strings"
)

// spreadsheetEscape matches values that spreadsheet exports wrap to stop
// Excel from reinterpreting them, such as ="ABC123" or =(5).
var spreadsheetEscape = regexp.MustCompile(`^=\(?"?(.*?)"?\)?$`)

// CleanCell strips the spreadsheet escape wrapper from a cell value.
// Values without the wrapper are returned unchanged, surrounding
// whitespace included, so store names still have to match exactly.
func CleanCell(s string) string {
	m := spreadsheetEscape.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return s
	}
	return m[1]
}
