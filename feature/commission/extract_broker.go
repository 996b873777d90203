package commission

import (
	"strings"

	"commission-comparer/core/reconcile"
)

// Broker statement layout, as 0-based row indexes into the first sheet.
const (
	brokerRowFrom   = 3
	brokerRowTo     = 4
	brokerRowABN    = 5
	brokerRowHeader = 9
)

// BrokerExtractor reads broker RCTI workbooks.
//
// The first sheet carries the sender, recipient and ABN in column B of rows 4
// to 6, the line item table with its header on row 10, and the bank line
// "...: (BSB/ACCOUNT)" in column B of the last row.
type BrokerExtractor struct {
	schema *reconcile.Schema
	layout Layout
}

// NewBrokerExtractor creates a broker extractor.
func NewBrokerExtractor() *BrokerExtractor {
	return &BrokerExtractor{schema: BrokerSchema(), layout: BrokerLayout()}
}

func (e *BrokerExtractor) Kind() string              { return KindBroker }
func (e *BrokerExtractor) Schema() *reconcile.Schema { return e.schema }

// DocumentKey drops the six trailing run and date parts of the file name.
func (e *BrokerExtractor) DocumentKey(name string) string {
	return dropTrailing(name, 6)
}

func (e *BrokerExtractor) Extract(name string, content []byte) (*reconcile.Document, error) {
	rows, sheet, err := sheetRows(name, content, e.layout.Sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) <= brokerRowHeader+1 {
		return nil, reconcile.NewSchemaError(name, "expected at least %d rows, found %d", brokerRowHeader+2, len(rows))
	}

	last := len(rows) - 1
	bsb, account, ok := parseBankLine(cell(rows[last], 1))
	if !ok {
		return nil, reconcile.NewSchemaError(name, "missing bank details on row %d", last+1)
	}

	doc := &reconcile.Document{
		Name: name,
		Key:  e.DocumentKey(name),
		Rows: reconcile.NewRecordSet(e.schema),
	}
	doc.Header = reconcile.NewRecord(e.schema.HeaderSchema(), map[string]reconcile.Value{
		HeaderFrom:    cell(rows[brokerRowFrom], 1),
		HeaderTo:      cell(rows[brokerRowTo], 1),
		HeaderABN:     cell(rows[brokerRowABN], 1),
		HeaderBSB:     bsb,
		HeaderAccount: account,
	}, reconcile.SourceLocation{File: name, Sheet: sheet})

	cols, err := e.layout.columns(name, rows[brokerRowHeader])
	if err != nil {
		return nil, err
	}

	for i := brokerRowHeader + 1; i < last; i++ {
		if blank(rows[i]) {
			continue
		}
		fields := make(map[string]reconcile.Value, len(cols))
		for field, col := range cols {
			fields[field] = cell(rows[i], col)
		}
		doc.Rows.Add(fields, reconcile.SourceLocation{File: name, Sheet: sheet, Line: i + 1})
	}
	return doc, nil
}

// parseBankLine reads "Bank Account: (062-000/12345678)" into BSB and account.
func parseBankLine(text string) (bsb, account string, ok bool) {
	_, details, found := strings.Cut(text, ":")
	if !found {
		return "", "", false
	}
	bsb, account, found = strings.Cut(strings.TrimSpace(details), "/")
	if !found {
		return "", "", false
	}
	bsb = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(bsb), "("))
	account = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(account), ")"))
	return bsb, account, true
}
