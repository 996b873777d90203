package commission

import (
	"strings"

	"commission-comparer/core/reconcile"
	"commission-comparer/core/utils"
)

// BranchExtractor reads the "Vbi Data" sheet of branch RCTI workbooks.
//
// The table header is either the first row or the row right after a title
// row. Empty rows are ignored, "--" placeholders read as blank and reference
// numbers stored as floats are normalized to integers.
type BranchExtractor struct {
	schema *reconcile.Schema
	layout Layout
}

// NewBranchExtractor creates a branch extractor.
func NewBranchExtractor() *BranchExtractor {
	return &BranchExtractor{schema: BranchSchema(), layout: BranchLayout()}
}

func (e *BranchExtractor) Kind() string              { return KindBranch }
func (e *BranchExtractor) Schema() *reconcile.Schema { return e.schema }

// DocumentKey keeps the first five parts of the file name.
func (e *BranchExtractor) DocumentKey(name string) string {
	return branchDocumentKey(name)
}

func (e *BranchExtractor) Extract(name string, content []byte) (*reconcile.Document, error) {
	rows, sheet, err := sheetRows(name, content, e.layout.Sheet)
	if err != nil {
		return nil, err
	}

	headerAt := e.headerRow(rows)
	if headerAt < 0 {
		return nil, reconcile.NewSchemaError(name, "no %q header row in sheet %s", e.layout.Columns[FieldBroker], sheet)
	}
	cols, err := e.layout.columns(name, rows[headerAt])
	if err != nil {
		return nil, err
	}

	doc := &reconcile.Document{
		Name: name,
		Key:  e.DocumentKey(name),
		Rows: reconcile.NewRecordSet(e.schema),
	}
	for i := headerAt + 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		fields := make(map[string]reconcile.Value, len(cols))
		for field, col := range cols {
			fields[field] = strings.TrimSpace(strings.ReplaceAll(cell(rows[i], col), "--", " "))
		}
		if n, ok := utils.ToInt(fields[FieldRefNo]); ok {
			fields[FieldRefNo] = n
		}
		doc.Rows.Add(fields, reconcile.SourceLocation{File: name, Sheet: sheet, Line: i + 1})
	}
	return doc, nil
}

// headerRow returns the index of the table header: the first or second
// non-empty row whose first cell names the broker column.
func (e *BranchExtractor) headerRow(rows [][]string) int {
	title := strings.ToLower(e.layout.Columns[FieldBroker])
	seen := 0
	for i, row := range rows {
		if blank(row) {
			continue
		}
		if strings.ToLower(cell(row, 0)) == title {
			return i
		}
		if seen++; seen == 2 {
			break
		}
	}
	return -1
}
