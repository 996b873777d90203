package commission

import (
	"bytes"
	"strings"

	"commission-comparer/core/reconcile"
	"commission-comparer/core/utils"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ReferrerExtractor reads referrer RCTI HTML statements.
//
// The first paragraph reads "From: <name> ABN: <abn> To: <name> ABN: <abn>",
// the second "BSB: <bsb> - Account: <account> / ...: <total>". The first table
// row is the column header; line items have six cells, or five when the
// referrer name is omitted.
type ReferrerExtractor struct {
	schema *reconcile.Schema
}

// NewReferrerExtractor creates a referrer extractor.
func NewReferrerExtractor() *ReferrerExtractor {
	return &ReferrerExtractor{schema: ReferrerSchema()}
}

func (e *ReferrerExtractor) Kind() string              { return KindReferrer }
func (e *ReferrerExtractor) Schema() *reconcile.Schema { return e.schema }

// DocumentKey drops the trailing stamps and the statement period.
func (e *ReferrerExtractor) DocumentKey(name string) string {
	return referrerDocumentKey(name)
}

func (e *ReferrerExtractor) Extract(name string, content []byte) (*reconcile.Document, error) {
	root, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, &reconcile.SchemaError{Document: name, Reason: "unparseable html", Err: err}
	}

	paragraphs := findAll(root, atom.P)
	if len(paragraphs) < 2 {
		return nil, reconcile.NewSchemaError(name, "expected 2 header paragraphs, found %d", len(paragraphs))
	}
	header, err := e.parseHeader(name, text(paragraphs[0]), text(paragraphs[1]))
	if err != nil {
		return nil, err
	}

	trs := findAll(root, atom.Tr)
	if len(trs) == 0 {
		return nil, reconcile.NewSchemaError(name, "no table rows")
	}

	doc := &reconcile.Document{
		Name: name,
		Key:  e.DocumentKey(name),
		Rows: reconcile.NewRecordSet(e.schema),
	}
	doc.Header = reconcile.NewRecord(e.schema.HeaderSchema(), header, reconcile.SourceLocation{File: name})

	// trs[0] is the column header
	for i, tr := range trs[1:] {
		line := i + 1
		var cells []string
		for _, td := range findAll(tr, atom.Td) {
			cells = append(cells, text(td))
		}

		var fields map[string]reconcile.Value
		switch {
		case len(cells) >= 6:
			fields = referrerRow(cells[0], cells[1], cells[2], cells[3], cells[4], cells[5])
		case len(cells) == 5:
			fields = referrerRow(cells[0], cells[1], "", cells[2], cells[3], cells[4])
		default:
			return nil, reconcile.NewSchemaError(name, "row %d has %d cells", line, len(cells))
		}
		doc.Rows.Add(fields, reconcile.SourceLocation{File: name, Line: line})
	}
	return doc, nil
}

func referrerRow(commissionType, client, referrer, amount, gst, total string) map[string]reconcile.Value {
	return map[string]reconcile.Value{
		FieldCommissionType: commissionType,
		FieldClient:         client,
		FieldReferrer:       referrer,
		FieldAmountPaid:     amount,
		FieldGSTPaid:        gst,
		FieldTotal:          total,
	}
}

// parseHeader reads the party and bank paragraphs. Both are split on ':' and
// each segment ends with the label of the next one.
func (e *ReferrerExtractor) parseHeader(name, info, bank string) (map[string]reconcile.Value, error) {
	parts := strings.Split(info, ":")
	if len(parts) < 5 {
		return nil, reconcile.NewSchemaError(name, "party paragraph has %d segments", len(parts))
	}
	acct := strings.Split(bank, ":")
	if len(acct) < 4 {
		return nil, reconcile.NewSchemaError(name, "bank paragraph has %d segments", len(acct))
	}

	bsb, _, _ := strings.Cut(acct[1], " - ")
	account, _, _ := strings.Cut(acct[2], "/")

	return map[string]reconcile.Value{
		HeaderFrom:       segment(parts, 1),
		HeaderFromABN:    segment(parts, 2),
		HeaderTo:         segment(parts, 3),
		HeaderToABN:      segment(parts, 4),
		HeaderBSB:        strings.TrimSpace(bsb),
		HeaderAccount:    strings.TrimSpace(account),
		HeaderFinalTotal: segment(acct, 3),
	}, nil
}

// segment returns parts[i] without the trailing word labelling parts[i+1].
func segment(parts []string, i int) string {
	s := strings.TrimSpace(parts[i])
	if i+1 < len(parts) {
		if j := strings.LastIndexByte(s, ' '); j >= 0 {
			s = s[:j]
		} else {
			s = ""
		}
	}
	return strings.TrimSpace(s)
}

// findAll returns the descendants of n with the given tag, in document order.
func findAll(n *html.Node, tag atom.Atom) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == tag {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// text returns the whitespace-collapsed text content of n.
func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return utils.NormalizeSpace(b.String())
}
