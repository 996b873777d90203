package report

import (
	"fmt"
	"io"
	"strconv"

	"commission-comparer/core/reconcile"

	"github.com/olekukonko/tablewriter"
)

// WriteTable prints the report summary and its discrepancies as console tables.
func WriteTable(w io.Writer, rep *reconcile.Report) error {
	s := rep.Summary

	summary := tablewriter.NewWriter(w)
	summary.Header("Metric", "Count")
	metrics := [][]string{
		{"Documents A", strconv.Itoa(s.DocumentsA)},
		{"Documents B", strconv.Itoa(s.DocumentsB)},
		{"Paired documents", strconv.Itoa(s.PairedDocuments)},
		{"Clean documents", strconv.Itoa(s.CleanDocuments)},
		{"Missing documents", strconv.Itoa(s.MissingDocuments)},
		{"Missing rows", strconv.Itoa(s.MissingRows)},
		{"Missing columns", strconv.Itoa(s.MissingColumns)},
		{"Field mismatches", strconv.Itoa(s.FieldMismatches)},
		{"Skipped documents", strconv.Itoa(s.Skipped)},
	}
	for _, m := range metrics {
		if err := summary.Append(m); err != nil {
			return err
		}
	}
	if err := summary.Render(); err != nil {
		return err
	}

	discrepancies := rep.Discrepancies()
	if len(discrepancies) == 0 {
		_, err := fmt.Fprintln(w, "No discrepancies found.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Document", "Message", "Field", "Line A", "Line B", "Value A", "Value B")
	for _, d := range discrepancies {
		row := []string{d.Document, d.Message, d.Field, line(d.LocationA), line(d.LocationB), d.ValueA, d.ValueB}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func line(loc *reconcile.SourceLocation) string {
	if loc == nil {
		return ""
	}
	if loc.Line == 0 {
		return loc.File
	}
	return loc.File + ":" + strconv.Itoa(loc.Line)
}
