package reconcile

import (
	"context"
	"fmt"
	"io"
	"sort"

	"facette.io/natsort"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Source lists and opens the raw documents of one side of a reconciliation.
type Source interface {
	// Name describes the source for logs and reports (a directory or bucket prefix).
	Name() string

	// List returns the document names available in the source.
	List(ctx context.Context) ([]string, error)

	// Open returns the content of a single document.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// documentSchema pairs documents by key, exactly like line items.
var documentSchema = &Schema{
	Name: "document",
	Fields: []Field{
		IdentityField("key"),
		TextField("name"),
	},
}

// Reconcile matches two record sets and diffs every pair, returning all
// discrepancies: field level ones for identity pairs, then one missing pair per
// leftover on side a, then side b.
func Reconcile(a, b *RecordSet, margin float64) []Discrepancy {
	return reconcileRows(a.Schema(), "", a, b, margin)
}

func reconcileRows(schema *Schema, document string, a, b *RecordSet, margin float64) []Discrepancy {
	m := Match(a, b, margin)

	identity := append([]Pair(nil), m.Identity...)
	sort.SliceStable(identity, func(i, j int) bool {
		return identity[i].A.Location.Line < identity[j].A.Location.Line
	})

	var out []Discrepancy
	for _, p := range m.Exact {
		out = append(out, Diff(schema, document, p)...)
	}
	for _, p := range identity {
		out = append(out, Diff(schema, document, p)...)
	}
	for _, r := range m.OnlyA {
		out = append(out, Diff(schema, document, Pair{A: r, Margin: margin})...)
	}
	for _, r := range m.OnlyB {
		out = append(out, Diff(schema, document, Pair{B: r, Margin: margin})...)
	}
	return out
}

// ReconcileDocuments compares a matched document pair: header fields first, then
// line items.
func ReconcileDocuments(schema *Schema, a, b *Document, margin float64) DocumentResult {
	result := DocumentResult{
		Key:   a.Key,
		NameA: a.Name,
		NameB: b.Name,
		RowsA: a.Rows.Len(),
		RowsB: b.Rows.Len(),
	}

	if len(schema.Header) > 0 && a.Header != nil && b.Header != nil {
		pair := Pair{A: a.Header, B: b.Header, Margin: margin}
		result.Discrepancies = append(result.Discrepancies, Diff(schema.HeaderSchema(), a.Key, pair)...)
	}
	result.Discrepancies = append(result.Discrepancies, reconcileRows(schema, a.Key, rowsOf(schema, a), rowsOf(schema, b), margin)...)
	return result
}

// ReconcileDirectory extracts every document of both sources, pairs documents by
// their document key and reconciles each pair. A document present on one side
// only yields a single missing pair. Documents failing extraction with a
// SchemaError are skipped and listed in the report.
//
// Document pairs are independent and processed by up to spec.Workers goroutines.
// Cancelling ctx abandons the remaining document pairs.
func ReconcileDirectory(ctx context.Context, spec *Spec, a, b Source) (*Report, error) {
	if spec.Extractor == nil {
		return nil, fmt.Errorf("reconcile: spec has no extractor")
	}
	log := spec.logger().With(zap.String("kind", spec.Extractor.Kind()))

	var (
		docsA, docsB       []*Document
		skippedA, skippedB []SkippedDocument
	)

	// Load both sides concurrently
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		docsA, skippedA, err = loadSource(gctx, spec, SideA, a)
		return err
	})
	g.Go(func() error {
		var err error
		docsB, skippedB, err = loadSource(gctx, spec, SideB, b)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info("Documents loaded",
		zap.String("source_a", a.Name()),
		zap.String("source_b", b.Name()),
		zap.Int("documents_a", len(docsA)),
		zap.Int("documents_b", len(docsB)),
		zap.Int("skipped", len(skippedA)+len(skippedB)),
	)

	setA, byRecordA := documentSet(docsA)
	setB, byRecordB := documentSet(docsB)
	m := Match(setA, setB, spec.Margin)
	pairs := m.Pairs()

	schema := spec.Extractor.Schema()
	results := make([]DocumentResult, len(pairs))

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(spec.workers())
	for i, p := range pairs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			docA, docB := byRecordA[p.A], byRecordB[p.B]
			results[i] = ReconcileDocuments(schema, docA, docB, spec.Margin)
			log.Debug("Document pair reconciled",
				zap.String("document", docA.Key),
				zap.Int("discrepancies", len(results[i].Discrepancies)),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, r := range m.OnlyA {
		results = append(results, missingDocument(SideA, byRecordA[r]))
	}
	for _, r := range m.OnlyB {
		results = append(results, missingDocument(SideB, byRecordB[r]))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return natsort.Compare(primaryName(results[i]), primaryName(results[j]))
	})

	report := &Report{
		Kind:      spec.Extractor.Kind(),
		Margin:    spec.Margin,
		Documents: results,
		Skipped:   append(append([]SkippedDocument{}, skippedA...), skippedB...),
	}
	report.Summary = Summarize(report, len(docsA), len(docsB))
	return report, nil
}

// loadSource lists and extracts every document of one side.
func loadSource(ctx context.Context, spec *Spec, side Side, src Source) ([]*Document, []SkippedDocument, error) {
	names, err := src.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list %s: %w", src.Name(), err)
	}
	natsort.Sort(names)

	log := spec.logger()
	var (
		docs    []*Document
		skipped []SkippedDocument
	)
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		content, err := readDocument(ctx, src, name)
		if err != nil {
			return nil, nil, err
		}

		doc, err := extract(spec, name, content)
		if err != nil {
			if IsSchemaError(err) {
				log.Warn("Skipping malformed document",
					zap.String("side", string(side)),
					zap.String("document", name),
					zap.Error(err),
				)
				skipped = append(skipped, SkippedDocument{Side: side, Name: name, Reason: err.Error()})
				continue
			}
			return nil, nil, fmt.Errorf("failed to extract %s: %w", name, err)
		}
		docs = append(docs, doc)
	}
	return docs, skipped, nil
}

func readDocument(ctx context.Context, src Source, name string) ([]byte, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return content, nil
}

func extract(spec *Spec, name string, content []byte) (*Document, error) {
	if spec.Cache != nil {
		return spec.Cache.GetOrExtract(spec.Extractor, name, content)
	}
	return spec.Extractor.Extract(name, content)
}

// documentSet indexes documents as records of documentSchema.
func documentSet(docs []*Document) (*RecordSet, map[*Record]*Document) {
	set := NewRecordSet(documentSchema)
	byRecord := make(map[*Record]*Document, len(docs))
	for _, doc := range docs {
		r := set.Add(map[string]Value{"key": doc.Key, "name": doc.Name}, SourceLocation{File: doc.Name})
		byRecord[r] = doc
	}
	return set, byRecord
}

func missingDocument(side Side, doc *Document) DocumentResult {
	r := NewRecord(documentSchema, nil, SourceLocation{File: doc.Name})
	result := DocumentResult{
		Key:           doc.Key,
		Discrepancies: []Discrepancy{missingPair(doc.Key, side, r, MsgMissingDocument)},
	}
	if side == SideA {
		result.NameA, result.RowsA = doc.Name, doc.Rows.Len()
	} else {
		result.NameB, result.RowsB = doc.Name, doc.Rows.Len()
	}
	return result
}

func rowsOf(schema *Schema, doc *Document) *RecordSet {
	if doc.Rows == nil {
		return NewRecordSet(schema)
	}
	return doc.Rows
}

func primaryName(r DocumentResult) string {
	if r.NameA != "" {
		return r.NameA
	}
	return r.NameB
}

// InspectedDocument describes one document that extracted cleanly.
type InspectedDocument struct {
	Name string `json:"name"`
	Key  string `json:"key"`
	Rows int    `json:"rows"`
}

// Inspection lists what one source yields for a document kind.
type Inspection struct {
	Source    string              `json:"source"`
	Documents []InspectedDocument `json:"documents"`
	Skipped   []SkippedDocument   `json:"skipped"`
}

// Inspect extracts every document of src without reconciling, reporting the
// document keys and row counts and the documents that would be skipped.
func Inspect(ctx context.Context, spec *Spec, side Side, src Source) (*Inspection, error) {
	if spec.Extractor == nil {
		return nil, fmt.Errorf("reconcile: spec has no extractor")
	}
	docs, skipped, err := loadSource(ctx, spec, side, src)
	if err != nil {
		return nil, err
	}

	in := &Inspection{Source: src.Name(), Skipped: skipped}
	for _, doc := range docs {
		in.Documents = append(in.Documents, InspectedDocument{Name: doc.Name, Key: doc.Key, Rows: doc.Rows.Len()})
	}
	return in, nil
}
