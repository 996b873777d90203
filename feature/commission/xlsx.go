package commission

import (
	"bytes"
	"slices"
	"strings"

	"commission-comparer/core/reconcile"

	"github.com/xuri/excelize/v2"
)

// sheetRows opens a workbook and returns the rows of the requested sheet
// together with the resolved sheet name. An empty sheet name selects the first
// sheet. Unreadable workbooks and missing sheets are schema errors.
func sheetRows(name string, content []byte, sheet string) ([][]string, string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, "", &reconcile.SchemaError{Document: name, Reason: "not a readable workbook", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if sheet == "" {
		if len(sheets) == 0 {
			return nil, "", reconcile.NewSchemaError(name, "workbook has no sheets")
		}
		sheet = sheets[0]
	} else if !slices.Contains(sheets, sheet) {
		return nil, "", reconcile.NewSchemaError(name, "missing sheet %q", sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, "", &reconcile.SchemaError{Document: name, Reason: "unreadable sheet " + sheet, Err: err}
	}
	return rows, sheet, nil
}

// cell returns the trimmed cell value, empty when the row is shorter.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// blank reports whether every cell of the row is empty.
func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// columns resolves each layout field to its column index in the header row.
// Header text is matched case-insensitively.
func (l Layout) columns(name string, header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, seen := index[key]; !seen && key != "" {
			index[key] = i
		}
	}

	cols := make(map[string]int, len(l.Columns))
	for field, title := range l.Columns {
		i, ok := index[strings.ToLower(title)]
		if !ok {
			return nil, reconcile.NewSchemaError(name, "missing column %q", title)
		}
		cols[field] = i
	}
	return cols, nil
}
