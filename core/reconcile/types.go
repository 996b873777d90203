package reconcile

import (
	"fmt"

	"go.uber.org/zap"
)

// Value is a single field value as delivered by an extractor: a string, a number
// or a time.Time. Values are rendered canonically before hashing or comparison.
type Value = any

// SourceLocation points at the line item a record was built from.
type SourceLocation struct {
	// File is the document identifier (file or object name).
	File string `json:"file"`

	// Sheet is the spreadsheet tab, empty for markup documents.
	Sheet string `json:"sheet,omitempty"`

	// Line is the 1-based row or line number inside the document. Zero means the
	// location refers to the document as a whole.
	Line int `json:"line"`
}

// String renders the location as file[:sheet][:line].
func (l SourceLocation) String() string {
	s := l.File
	if l.Sheet != "" {
		s += ":" + l.Sheet
	}
	if l.Line > 0 {
		s += fmt.Sprintf(":%d", l.Line)
	}
	return s
}

// Kind classifies a discrepancy.
type Kind string

const (
	// KindMissingPair is reported for a record or document with no counterpart.
	KindMissingPair Kind = "missing_pair"
	// KindMissingColumn is reported when a schema field is absent on one side.
	KindMissingColumn Kind = "missing_column"
	// KindFieldMismatch is reported when both sides carry a field but disagree.
	KindFieldMismatch Kind = "field_mismatch"
)

// Side names one of the two reconciled collections.
type Side string

const (
	SideA Side = "a"
	SideB Side = "b"
)

// Discrepancy is one reported issue. It is pure data owned by the caller.
type Discrepancy struct {
	// Kind classifies the issue.
	Kind Kind `json:"kind"`

	// Side is set for missing pairs and names the side that has the record.
	Side Side `json:"side,omitempty"`

	// Document is the document-level key the discrepancy belongs to.
	Document string `json:"document"`

	// LocationA and LocationB locate the compared records; nil when absent.
	LocationA *SourceLocation `json:"location_a,omitempty"`
	LocationB *SourceLocation `json:"location_b,omitempty"`

	// Field is the field name for column and field discrepancies.
	Field string `json:"field,omitempty"`

	// ValueA and ValueB carry the raw compared values for field mismatches.
	ValueA string `json:"value_a,omitempty"`
	ValueB string `json:"value_b,omitempty"`

	// Message is a short human readable description.
	Message string `json:"message"`
}

// Pair holds two records believed to describe the same line item. One side may be
// nil for leftovers, never both.
type Pair struct {
	A      *Record
	B      *Record
	Margin float64
}

// Document is the normalized output of an extractor for one source file.
type Document struct {
	// Name is the file or object name the document was read from.
	Name string

	// Key is the document-level identity used to pair documents across sources.
	Key string

	// Header holds document-level fields (names, ABNs, bank details, totals).
	// It may be nil when the document kind has no header.
	Header *Record

	// Rows holds the line items.
	Rows *RecordSet
}

// Extractor turns one raw document into a Document. It must return a
// *SchemaError when an expected column, row or sheet is missing.
type Extractor interface {
	// Kind returns the document kind (e.g. "referrer", "broker").
	Kind() string

	// Schema returns the schema the extractor produces records for.
	Schema() *Schema

	// DocumentKey derives the document identity from a file name.
	DocumentKey(name string) string

	// Extract parses the document content.
	Extract(name string, content []byte) (*Document, error)
}

// Spec bundles the configuration for one reconciliation run.
type Spec struct {
	// Extractor provides format and schema knowledge for the document kind.
	Extractor Extractor

	// Margin is the numeric tolerance applied to every monetary comparison.
	Margin float64

	// Workers bounds how many document pairs are reconciled concurrently.
	// Zero or negative means one.
	Workers int

	// Cache, when set, is consulted before extracting a document.
	Cache *DocumentCache

	// Logger receives skip and progress messages. Nil means no logging.
	Logger *zap.Logger
}

func (s *Spec) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *Spec) workers() int {
	if s.Workers <= 0 {
		return 1
	}
	return s.Workers
}

// DocumentResult groups the discrepancies found for one document pair.
type DocumentResult struct {
	// Key is the document-level identity.
	Key string `json:"key"`

	// NameA and NameB are the paired document names; one is empty for a missing pair.
	NameA string `json:"name_a,omitempty"`
	NameB string `json:"name_b,omitempty"`

	// RowsA and RowsB count the line items on each side.
	RowsA int `json:"rows_a"`
	RowsB int `json:"rows_b"`

	// Discrepancies lists every issue found for the document pair.
	Discrepancies []Discrepancy `json:"discrepancies"`
}

// SkippedDocument records a document excluded because extraction failed.
type SkippedDocument struct {
	Side   Side   `json:"side"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Report is the full output of a directory reconciliation.
type Report struct {
	// Kind is the document kind reconciled.
	Kind string `json:"kind"`

	// Margin is the tolerance used for the run.
	Margin float64 `json:"margin"`

	// Documents holds one entry per document key, in natural name order.
	Documents []DocumentResult `json:"documents"`

	// Skipped lists documents excluded because of schema errors.
	Skipped []SkippedDocument `json:"skipped"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`
}

// Discrepancies flattens the report into a single ordered list.
func (r *Report) Discrepancies() []Discrepancy {
	var out []Discrepancy
	for _, doc := range r.Documents {
		out = append(out, doc.Discrepancies...)
	}
	return out
}
