package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var lineSchema = &Schema{
	Name:   "line",
	Fields: []Field{IdentityField("id"), ValueField("amount")},
	Header: []Field{TextField("to")},
}

// lineExtractor reads "to=<name>" followed by "id,amount" lines.
// Content starting with "!" is malformed.
type lineExtractor struct{}

func (lineExtractor) Kind() string    { return "line" }
func (lineExtractor) Schema() *Schema { return lineSchema }

func (lineExtractor) DocumentKey(name string) string {
	name = strings.TrimSuffix(name, ".txt")
	if i := strings.LastIndex(name, "_"); i > 0 {
		return name[:i]
	}
	return name
}

func (e lineExtractor) Extract(name string, content []byte) (*Document, error) {
	text := string(content)
	if strings.HasPrefix(text, "!") {
		return nil, NewSchemaError(name, "missing header line")
	}

	doc := &Document{Name: name, Key: e.DocumentKey(name), Rows: NewRecordSet(lineSchema)}
	for i, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		loc := SourceLocation{File: name, Line: i + 1}
		if to, ok := strings.CutPrefix(line, "to="); ok {
			doc.Header = NewRecord(lineSchema.HeaderSchema(), map[string]Value{"to": to}, loc)
			continue
		}
		id, amount, _ := strings.Cut(line, ",")
		doc.Rows.Add(map[string]Value{"id": id, "amount": amount}, loc)
	}
	return doc, nil
}

type memSource struct {
	name    string
	files   map[string]string
	listErr error
}

func (s memSource) Name() string { return s.name }

func (s memSource) List(context.Context) ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	return names, nil
}

func (s memSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	content, ok := s.files[name]
	if !ok {
		return nil, fmt.Errorf("%s: not found", name)
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func lineSet(rows ...string) *RecordSet {
	set := NewRecordSet(lineSchema)
	for i, r := range rows {
		id, amount, _ := strings.Cut(r, ",")
		set.Add(map[string]Value{"id": id, "amount": amount}, SourceLocation{File: "mem", Line: i + 1})
	}
	return set
}

func TestReconcile_IdenticalSetsAreClean(t *testing.T) {
	a := lineSet("K1,$100.00", "K2,$5", "K2,$5", "K3,(4.00)")
	b := lineSet("K1,$100.00", "K2,$5", "K2,$5", "K3,(4.00)")

	assert.Empty(t, Reconcile(a, b, 0))
}

func TestReconcile_Examples(t *testing.T) {
	t.Run("CentOffAtZeroMargin", func(t *testing.T) {
		got := Reconcile(lineSet("K1,$100.00"), lineSet("K1,$100.01"), 0)
		require.Len(t, got, 1)
		assert.Equal(t, KindFieldMismatch, got[0].Kind)
		assert.Equal(t, "amount", got[0].Field)
	})

	t.Run("CentOffWithinMargin", func(t *testing.T) {
		assert.Empty(t, Reconcile(lineSet("K1,$100.00"), lineSet("K1,$100.01"), 0.05))
	})

	t.Run("OnlyOnA", func(t *testing.T) {
		got := Reconcile(lineSet("K1,$5"), lineSet(), 0)
		require.Len(t, got, 1)
		assert.Equal(t, KindMissingPair, got[0].Kind)
		assert.Equal(t, SideA, got[0].Side)
		assert.Equal(t, 1, got[0].LocationA.Line)
	})

	t.Run("ToleranceBoundary", func(t *testing.T) {
		assert.Empty(t, Reconcile(lineSet("K1,10.00"), lineSet("K1,10.05"), 0.05))
		assert.Len(t, Reconcile(lineSet("K1,10.00"), lineSet("K1,10.06"), 0.05), 1)
	})
}

func TestReconcile_SideOnlyRecordsNeverMismatch(t *testing.T) {
	got := Reconcile(lineSet("K1,$1", "K2,$2"), lineSet("K1,$1", "K3,$3"), 0)

	require.Len(t, got, 2)
	assert.Equal(t, SideA, got[0].Side)
	assert.Equal(t, SideB, got[1].Side)
	for _, d := range got {
		assert.Equal(t, KindMissingPair, d.Kind)
	}
}

func TestReconcileDirectory(t *testing.T) {
	a := memSource{name: "a", files: map[string]string{
		"acme_1.txt":   "to=ACME\nK1,$100.00\nK2,$5",
		"beta_1.txt":   "to=Beta\nK1,$1",
		"broken_1.txt": "!",
		"gamma_1.txt":  "to=Gamma\nK9,$9",
		"doc10_1.txt":  "to=Ten\nK1,$1",
		"doc2_1.txt":   "to=Two\nK1,$1",
	}}
	b := memSource{name: "b", files: map[string]string{
		"acme_2.txt":  "to=ACME\nK1,$100.01",
		"beta_2.txt":  "to=BETA PTY\nK1,$1",
		"delta_2.txt": "to=Delta",
		"doc10_2.txt": "to=Ten\nK1,$1",
		"doc2_2.txt":  "to=Two\nK1,$1",
	}}

	for _, workers := range []int{1, 4} {
		t.Run(fmt.Sprintf("Workers%d", workers), func(t *testing.T) {
			spec := &Spec{Extractor: lineExtractor{}, Margin: 0, Workers: workers, Logger: zaptest.NewLogger(t)}

			report, err := ReconcileDirectory(context.Background(), spec, a, b)
			require.NoError(t, err)

			names := make([]string, 0, len(report.Documents))
			for _, doc := range report.Documents {
				names = append(names, primaryName(doc))
			}
			assert.Equal(t, []string{"acme_1.txt", "beta_1.txt", "delta_2.txt", "doc2_1.txt", "doc10_1.txt", "gamma_1.txt"}, names)

			acme := report.Documents[0]
			assert.Equal(t, "acme", acme.Key)
			assert.Equal(t, "acme_2.txt", acme.NameB)
			require.Len(t, acme.Discrepancies, 2)
			assert.Equal(t, KindFieldMismatch, acme.Discrepancies[0].Kind)
			assert.Equal(t, KindMissingPair, acme.Discrepancies[1].Kind)
			assert.Equal(t, SideA, acme.Discrepancies[1].Side)

			beta := report.Documents[1]
			require.Len(t, beta.Discrepancies, 1)
			assert.Equal(t, "to", beta.Discrepancies[0].Field)

			delta := report.Documents[2]
			require.Len(t, delta.Discrepancies, 1)
			assert.Equal(t, MsgMissingDocument, delta.Discrepancies[0].Message)
			assert.Equal(t, SideB, delta.Discrepancies[0].Side)

			require.Len(t, report.Skipped, 1)
			assert.Equal(t, "broken_1.txt", report.Skipped[0].Name)
			assert.Equal(t, SideA, report.Skipped[0].Side)

			s := report.Summary
			assert.Equal(t, 5, s.DocumentsA)
			assert.Equal(t, 5, s.DocumentsB)
			assert.Equal(t, 4, s.PairedDocuments)
			assert.Equal(t, 2, s.CleanDocuments)
			assert.Equal(t, 2, s.MissingDocuments)
			assert.Equal(t, 1, s.MissingRows)
			assert.Equal(t, 2, s.FieldMismatches)
			assert.Equal(t, 1, s.Skipped)
			assert.Equal(t, 5, s.Total())
			assert.Len(t, report.Discrepancies(), 5)
		})
	}
}

func TestReconcileDirectory_ListFailure(t *testing.T) {
	spec := &Spec{Extractor: lineExtractor{}}
	listErr := errors.New("bucket unavailable")

	_, err := ReconcileDirectory(context.Background(), spec, memSource{name: "a", listErr: listErr}, memSource{name: "b"})
	require.Error(t, err)
	assert.ErrorIs(t, err, listErr)
}

func TestReconcileDirectory_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := memSource{name: "a", files: map[string]string{"x_1.txt": "to=X"}}
	_, err := ReconcileDirectory(ctx, &Spec{Extractor: lineExtractor{}}, src, src)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReconcileDirectory_NoExtractor(t *testing.T) {
	_, err := ReconcileDirectory(context.Background(), &Spec{}, memSource{}, memSource{})
	assert.Error(t, err)
}

func TestReconcileDirectory_UsesCache(t *testing.T) {
	cache := NewDocumentCache(0)
	src := memSource{name: "a", files: map[string]string{"x_1.txt": "to=X\nK1,$1"}}

	report, err := ReconcileDirectory(context.Background(), &Spec{Extractor: lineExtractor{}, Cache: cache}, src, src)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Summary.CleanDocuments)
}

func TestInspect(t *testing.T) {
	src := memSource{name: "a", files: map[string]string{
		"acme_10.txt":  "to=ACME\nK1,$1\nK2,$2",
		"acme_9.txt":   "to=ACME",
		"broken_1.txt": "!",
	}}

	in, err := Inspect(context.Background(), &Spec{Extractor: lineExtractor{}}, SideA, src)
	require.NoError(t, err)

	assert.Equal(t, "a", in.Source)
	assert.Equal(t, []InspectedDocument{
		{Name: "acme_9.txt", Key: "acme", Rows: 0},
		{Name: "acme_10.txt", Key: "acme", Rows: 2},
	}, in.Documents)
	require.Len(t, in.Skipped, 1)
	assert.Equal(t, "broken_1.txt", in.Skipped[0].Name)

	_, err = Inspect(context.Background(), &Spec{}, SideA, src)
	assert.Error(t, err)
}
