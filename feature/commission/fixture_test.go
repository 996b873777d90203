package commission

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes rows into sheet of a new workbook and returns its bytes.
// A nil row leaves the spreadsheet row empty.
func buildWorkbook(t *testing.T, sheet string, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}
	for i, row := range rows {
		if row == nil {
			continue
		}
		start, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, start, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

var brokerHeader = []any{"Commission Type", "Client", "Commission Ref ID", "Bank", "Loan Balance",
	"Amount Paid", "GST Paid", "Total Amount Paid", "Comments"}

// brokerRows builds a broker statement with the given line items.
func brokerRows(items ...[]any) [][]any {
	rows := [][]any{
		{"Recipient Created Tax Invoice"},
		nil,
		nil,
		{"From", "Acme Lending Pty Ltd"},
		{"To", "Jane Citizen"},
		{"ABN", "12 345 678 901"},
		nil,
		nil,
		nil,
		brokerHeader,
	}
	rows = append(rows, items...)
	return append(rows, []any{"", "Bank Account: (062-000/12345678)"})
}

var branchHeader = []any{"Broker", "Lender", "Client", "Ref #", "Referrer", "Settled Loan", "Settlement Date",
	"Commission", "GST", "Fee/Commission Split", "Fees GST", "Remitted/Net", "Paid To Broker",
	"Paid To Referrer", "Retained"}

// referrerHTML builds a referrer statement with the given table rows.
func referrerHTML(rows ...string) string {
	s := `<html><body>
<p>From: Acme Lending ABN: 12 345 678 901 To: Smith Referrals ABN: 98 765 432 109</p>
<p>BSB: 062-000 - Account: 12345678 / Total: $1,100.00</p>
<table>
<tr><th>Type</th><th>Client</th><th>Referrer</th><th>Amount</th><th>GST</th><th>Total</th></tr>
`
	for _, r := range rows {
		s += r + "\n"
	}
	return s + "</table></body></html>"
}
