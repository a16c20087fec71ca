package dataprocessing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sganes21/Dataset-Final-Project/internal/frame"
)

// cellReader types the stored value of a sheet's cells. Text cells stay
// text, numbers stay numbers, and numbers under a date number format
// become times. Display formatting is never applied.
type cellReader struct {
	wb       *excelize.File
	sheet    string
	date1904 bool
	dateFmt  map[int]bool
}

func newCellReader(wb *excelize.File, sheet string) (*cellReader, error) {
	props, err := wb.GetWorkbookProps()
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook properties: %w", err)
	}
	r := &cellReader{wb: wb, sheet: sheet, dateFmt: make(map[int]bool)}
	if props.Date1904 != nil {
		r.date1904 = *props.Date1904
	}
	return r, nil
}

// value returns the typed value of the cell at col, row (both 1-based)
// whose unformatted text is raw.
func (r *cellReader) value(col, row int, raw string) (any, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return nil, err
	}
	typ, err := r.wb.GetCellType(r.sheet, cell)
	if err != nil {
		return nil, fmt.Errorf("failed to read type of %s: %w", cell, err)
	}

	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError:
		return s, nil
	case excelize.CellTypeBool:
		return s == "1" || strings.EqualFold(s, "true"), nil
	case excelize.CellTypeDate:
		return parseISODate(s)
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s, nil
	}
	date, err := r.isDateStyled(cell)
	if err != nil {
		return nil, err
	}
	if date {
		if t, err := excelize.ExcelDateToTime(n, r.date1904); err == nil {
			return t, nil
		}
	}
	return frame.NumberValue(n), nil
}

func (r *cellReader) isDateStyled(cell string) (bool, error) {
	idx, err := r.wb.GetCellStyle(r.sheet, cell)
	if err != nil {
		return false, fmt.Errorf("failed to read style of %s: %w", cell, err)
	}
	if date, ok := r.dateFmt[idx]; ok {
		return date, nil
	}
	date := false
	if style, err := r.wb.GetStyle(idx); err == nil {
		date = isDateNumFmt(style)
	}
	r.dateFmt[idx] = date
	return date, nil
}

// isDateNumFmt reports whether a style's number format renders a date or
// a time. Built-in ids cover the Latin, CJK and Thai date formats.
func isDateNumFmt(style *excelize.Style) bool {
	if style.CustomNumFmt != nil {
		return isDateFormatCode(*style.CustomNumFmt)
	}
	id := style.NumFmt
	switch {
	case id >= 14 && id <= 22,
		id >= 27 && id <= 36,
		id >= 45 && id <= 47,
		id >= 50 && id <= 58,
		id >= 71 && id <= 81:
		return true
	}
	return false
}

// isDateFormatCode looks for date or time tokens in a custom format code
// once quoted literals, bracketed sections and escaped characters are
// removed.
func isDateFormatCode(code string) bool {
	var b strings.Builder
	inQuote, inBracket := false, false
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case inQuote:
			inQuote = c != '"'
		case inBracket:
			inBracket = c != ']'
		case c == '"':
			inQuote = true
		case c == '[':
			inBracket = true
		case c == '\\', c == '_', c == '*':
			i++
		default:
			b.WriteByte(c)
		}
	}
	return strings.ContainsAny(strings.ToLower(b.String()), "ymdhs")
}

var isoDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

func parseISODate(s string) (any, error) {
	for _, layout := range isoDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return nil, fmt.Errorf("date cell %q is not ISO 8601", s)
}
