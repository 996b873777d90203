package commission

import (
	"strings"

	"commission-comparer/core/reconcile"
	"commission-comparer/core/utils"
)

// totalID marks the totals row of an executive summary.
const totalID = "Total"

// SummaryExtractor reads the "Branch Summary Report" sheet of executive
// summary workbooks. The header is the first or second non-empty row holding
// an ID column, so a report title above the table is skipped. Every column is
// carried under its header text and rows are identified by their ID.
type SummaryExtractor struct {
	schema *reconcile.Schema
	layout Layout
}

// NewSummaryExtractor creates an executive summary extractor.
func NewSummaryExtractor() *SummaryExtractor {
	return &SummaryExtractor{schema: SummarySchema(), layout: SummaryLayout()}
}

func (e *SummaryExtractor) Kind() string              { return KindSummary }
func (e *SummaryExtractor) Schema() *reconcile.Schema { return e.schema }

// DocumentKey returns the same key for every file: each side holds one
// executive summary per run, and several files pair up in name order.
func (e *SummaryExtractor) DocumentKey(string) string {
	return KindSummary
}

func (e *SummaryExtractor) Extract(name string, content []byte) (*reconcile.Document, error) {
	rows, sheet, err := sheetRows(name, content, e.layout.Sheet)
	if err != nil {
		return nil, err
	}

	if allBlank(rows) {
		return nil, reconcile.NewSchemaError(name, "sheet %s is empty", sheet)
	}
	headerAt := e.headerRow(rows)
	if headerAt < 0 {
		return nil, reconcile.NewSchemaError(name, "no %q header row in sheet %s", e.layout.Columns[FieldID], sheet)
	}
	header := rows[headerAt]
	cols, err := e.layout.columns(name, header)
	if err != nil {
		return nil, err
	}
	idCol := cols[FieldID]

	doc := &reconcile.Document{
		Name: name,
		Key:  e.DocumentKey(name),
		Rows: reconcile.NewRecordSet(e.schema),
	}
	for i := headerAt + 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}

		id := cell(row, idCol)
		if id == "" {
			return nil, reconcile.NewSchemaError(name, "row %d has no ID", i+1)
		}

		fields := map[string]reconcile.Value{FieldID: id}
		if n, ok := utils.ToInt(id); ok && !strings.EqualFold(id, totalID) {
			fields[FieldID] = n
		}
		for c, title := range header {
			title = strings.TrimSpace(title)
			if c == idCol || title == "" {
				continue
			}
			fields[title] = cell(row, c)
		}
		doc.Rows.Add(fields, reconcile.SourceLocation{File: name, Sheet: sheet, Line: i + 1})
	}
	return doc, nil
}

// headerRow returns the index of the first or second non-empty row with a
// cell naming the ID column.
func (e *SummaryExtractor) headerRow(rows [][]string) int {
	title := e.layout.Columns[FieldID]
	seen := 0
	for i, row := range rows {
		if blank(row) {
			continue
		}
		for _, c := range row {
			if strings.EqualFold(strings.TrimSpace(c), title) {
				return i
			}
		}
		if seen++; seen == 2 {
			break
		}
	}
	return -1
}

func allBlank(rows [][]string) bool {
	for _, row := range rows {
		if !blank(row) {
			return false
		}
	}
	return true
}
