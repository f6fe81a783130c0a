package ingest

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nao1215/slareport/internal/model"
)

// dateCellLayout renders native date cells day-first, the way the CSV
// exports spell timestamps, so both inputs decode identically.
const dateCellLayout = "02/01/2006 03:04:05 PM"

// ReadXLSX reads an Excel workbook. The named sheet is used when sheet is
// non-empty; otherwise the first sheet of the workbook is read.
//
// Text cells are taken as displayed. Cells holding a native date or time
// are rewritten to dateCellLayout, because their display text follows the
// workbook's (usually US month-first) number format.
func ReadXLSX(r io.Reader, sheet string) (*model.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: %w", ErrParse, errors.New("workbook has no sheets"))
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %w", ErrParse, sheet, err)
	}

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %w", ErrParse, sheet, err)
	}

	rewriteDateCells(f, sheet, rows, raw)

	return newTable(rows)
}

// rewriteDateCells replaces the display text of date-formatted numeric
// cells in rows with their day-first rendering. raw holds the stored
// values of the same sheet.
func rewriteDateCells(f *excelize.File, sheet string, rows, raw [][]string) {
	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	for r, row := range rows {
		if r >= len(raw) {
			return
		}
		for c, shown := range row {
			if c >= len(raw[r]) || raw[r][c] == "" || raw[r][c] == shown {
				continue
			}
			stored := raw[r][c]

			// Cells of type "d" store ISO 8601 text.
			if t, err := time.Parse(time.RFC3339Nano, stored); err == nil {
				row[c] = t.Format(dateCellLayout)
				continue
			}

			serial, err := strconv.ParseFloat(stored, 64)
			if err != nil {
				continue
			}
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil || !isDateCell(f, sheet, name) {
				continue
			}
			t, err := excelize.ExcelDateToTime(serial, date1904)
			if err != nil {
				continue
			}
			row[c] = t.Round(time.Second).Format(dateCellLayout)
		}
	}
}

// isDateCell reports whether the number format of the named cell shows a
// date or time.
func isDateCell(f *excelize.File, sheet, name string) bool {
	idx, err := f.GetCellStyle(sheet, name)
	if err != nil {
		return false
	}
	style, err := f.GetStyle(idx)
	if err != nil || style == nil {
		return false
	}
	if isBuiltInDateFormat(style.NumFmt) {
		return true
	}
	return style.CustomNumFmt != nil && isDateFormatCode(*style.CustomNumFmt)
}

// isBuiltInDateFormat reports whether id is one of the built-in number
// formats that render dates or times, including the CJK locale ones.
func isBuiltInDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22:
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormatCode reports whether a custom number format code contains
// date or time tokens outside of quoted literals and [bracket] sections.
func isDateFormatCode(code string) bool {
	var (
		inQuote   bool
		inBracket bool
	)
	for _, ch := range strings.ToLower(code) {
		switch {
		case ch == '"':
			inQuote = !inQuote
		case inQuote:
		case ch == '[':
			inBracket = true
		case ch == ']':
			inBracket = false
		case inBracket:
		case strings.ContainsRune("ymdhs", ch):
			return true
		}
	}
	return false
}
