package report

import (
	"bytes"
	"testing"

	"commission-comparer/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, "run-1", sampleReport()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetDocuments, SheetSkipped}, f.GetSheetList())

	t.Run("Summary", func(t *testing.T) {
		rows, err := f.GetRows(SheetSummary)
		require.NoError(t, err)

		assert.Equal(t, "Commission Branch RCTI Summary", rows[0][0])
		assert.Equal(t, []string{"Run", "run-1"}, rows[1])
		assert.Equal(t, []string{"Discrepancies", "3", "Skipped", "1"}, rows[4])

		// Row 6 is blank, the table header follows.
		header := rows[6]
		assert.Equal(t, "Document", header[0])
		assert.Equal(t, "Value B", header[9])

		assert.Equal(t, []string{"acme", "acme_1.xlsx", "acme_2.xlsx", "Value of commission does not match",
			"Vbi Data", "4", "5", "commission", "100.00", "101.00"}, rows[7])
		// Trailing empty cells are trimmed by GetRows.
		assert.Equal(t, []string{"acme", "acme_1.xlsx", "", "No corresponding row in commission file", "Vbi Data", "4"}, rows[8])
		assert.Equal(t, "gamma_2.xlsx", rows[9][2])
		assert.Len(t, rows, 10)
	})

	t.Run("Documents", func(t *testing.T) {
		rows, err := f.GetRows(SheetDocuments)
		require.NoError(t, err)
		require.Len(t, rows, 4)
		assert.Equal(t, []string{"acme", "acme_1.xlsx", "acme_2.xlsx", "3", "3", "2", "Differences"}, rows[1])
		assert.Equal(t, "OK", rows[2][6])
		assert.Equal(t, "Unpaired", rows[3][6])
	})

	t.Run("Skipped", func(t *testing.T) {
		rows, err := f.GetRows(SheetSkipped)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "broken.xlsx", "missing sheet Vbi Data"}, rows[1])
	})
}

func TestWriteWorkbook_NoSkipped(t *testing.T) {
	rep := &reconcile.Report{Kind: "executive_summary"}

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, "run-2", rep))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetDocuments}, f.GetSheetList())
	title, err := f.GetCellValue(SheetSummary, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Commission Executive Summary RCTI Summary", title)
}
