package report

import (
	"fmt"
	"io"
	"strings"

	"commission-comparer/core/reconcile"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the report workbook.
const (
	SheetSummary   = "Summary"
	SheetDocuments = "Documents"
	SheetSkipped   = "Skipped"
)

var (
	discrepancyHeader = []any{"Document", "File A", "File B", "Message", "Tab", "Line A", "Line B", "Field", "Value A", "Value B"}
	documentHeader    = []any{"Document", "File A", "File B", "Rows A", "Rows B", "Discrepancies", "Status"}
	skippedHeader     = []any{"Side", "File", "Reason"}
)

// sheetWriter appends rows to one sheet and keeps the first error.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	err   error
}

func (s *sheetWriter) write(style int, values ...any) {
	if s.err != nil {
		return
	}
	s.row++
	start, _ := excelize.CoordinatesToCellName(1, s.row)
	if s.err = s.f.SetSheetRow(s.sheet, start, &values); s.err != nil {
		return
	}
	if style != 0 && len(values) > 0 {
		end, _ := excelize.CoordinatesToCellName(len(values), s.row)
		s.err = s.f.SetCellStyle(s.sheet, start, end, style)
	}
}

func (s *sheetWriter) skip() { s.row++ }

type styles struct {
	title  int
	header int
	alert  int
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error
	if st.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 20}}); err != nil {
		return st, err
	}
	st.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"000000"}},
	})
	if err != nil {
		return st, err
	}
	st.alert, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: "FF0000"}})
	return st, err
}

// WriteWorkbook renders the report as an xlsx workbook: a summary sheet listing
// every discrepancy, a per-document sheet and, when documents were skipped, a
// sheet naming them.
func WriteWorkbook(w io.Writer, runID string, rep *reconcile.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	st, err := newStyles(f)
	if err != nil {
		return fmt.Errorf("failed to create workbook styles: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return err
	}
	if err := writeSummary(f, st, runID, rep); err != nil {
		return fmt.Errorf("failed to write summary sheet: %w", err)
	}

	if _, err := f.NewSheet(SheetDocuments); err != nil {
		return err
	}
	if err := writeDocuments(f, st, rep); err != nil {
		return fmt.Errorf("failed to write documents sheet: %w", err)
	}

	if len(rep.Skipped) > 0 {
		if _, err := f.NewSheet(SheetSkipped); err != nil {
			return err
		}
		s := &sheetWriter{f: f, sheet: SheetSkipped}
		s.write(st.header, skippedHeader...)
		for _, sk := range rep.Skipped {
			s.write(0, strings.ToUpper(string(sk.Side)), sk.Name, sk.Reason)
		}
		if s.err != nil {
			return fmt.Errorf("failed to write skipped sheet: %w", s.err)
		}
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

func writeSummary(f *excelize.File, st styles, runID string, rep *reconcile.Report) error {
	s := &sheetWriter{f: f, sheet: SheetSummary}
	title := fmt.Sprintf("Commission %s RCTI Summary", kindTitle(rep.Kind))
	s.write(st.title, title)
	if s.err == nil {
		s.err = f.MergeCell(SheetSummary, "A1", "J1")
	}
	s.write(0, "Run", runID)
	s.write(0, "Margin", rep.Margin)
	s.write(0, "Documents A", rep.Summary.DocumentsA, "Documents B", rep.Summary.DocumentsB)
	s.write(0, "Discrepancies", rep.Summary.Total(), "Skipped", rep.Summary.Skipped)
	s.skip()

	s.write(st.header, discrepancyHeader...)
	for _, d := range rep.Discrepancies() {
		style := 0
		if d.Kind == reconcile.KindFieldMismatch {
			style = st.alert
		}
		s.write(style, discrepancyRow(d)...)
	}
	if s.err == nil {
		s.err = f.SetColWidth(SheetSummary, "A", "J", 22)
	}
	return s.err
}

func writeDocuments(f *excelize.File, st styles, rep *reconcile.Report) error {
	s := &sheetWriter{f: f, sheet: SheetDocuments}
	s.write(st.header, documentHeader...)
	for _, doc := range rep.Documents {
		status, style := "OK", 0
		switch {
		case doc.NameA == "" || doc.NameB == "":
			status, style = "Unpaired", st.alert
		case len(doc.Discrepancies) > 0:
			status, style = "Differences", st.alert
		}
		s.write(style, doc.Key, doc.NameA, doc.NameB, doc.RowsA, doc.RowsB, len(doc.Discrepancies), status)
	}
	if s.err == nil {
		s.err = f.SetColWidth(SheetDocuments, "A", "G", 22)
	}
	return s.err
}

func discrepancyRow(d reconcile.Discrepancy) []any {
	var fileA, fileB, tab string
	var lineA, lineB any = "", ""
	if d.LocationA != nil {
		fileA, tab = d.LocationA.File, d.LocationA.Sheet
		if d.LocationA.Line > 0 {
			lineA = d.LocationA.Line
		}
	}
	if d.LocationB != nil {
		fileB = d.LocationB.File
		if tab == "" {
			tab = d.LocationB.Sheet
		}
		if d.LocationB.Line > 0 {
			lineB = d.LocationB.Line
		}
	}
	return []any{d.Document, fileA, fileB, d.Message, tab, lineA, lineB, d.Field, d.ValueA, d.ValueB}
}

// kindTitle turns "executive_summary" into "Executive Summary".
func kindTitle(kind string) string {
	words := strings.Fields(strings.ReplaceAll(kind, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
