package reconcile

import (
	"fmt"
	"sort"
)

// Messages used for discrepancies.
const (
	MsgMissingRow      = "No corresponding row in commission file"
	MsgMissingDocument = "No corresponding commission file found"
	MsgMissingColumn   = "No corresponding column (%s) in commission file"
	MsgFieldMismatch   = "Value of %s does not match"
)

// Diff compares the two sides of a pair field by field.
//
// A pair with one side absent yields exactly one missing-pair discrepancy.
// Otherwise every schema field (plus extra fields for open schemas) is checked:
// a field absent on one side is a missing column, a field whose values disagree
// under the field's comparison rule is a field mismatch. Diff panics with
// ErrEmptyPair when neither side is set.
func Diff(schema *Schema, document string, pair Pair) []Discrepancy {
	switch {
	case pair.A == nil && pair.B == nil:
		panic(ErrEmptyPair)
	case pair.B == nil:
		return []Discrepancy{missingPair(document, SideA, pair.A, MsgMissingRow)}
	case pair.A == nil:
		return []Discrepancy{missingPair(document, SideB, pair.B, MsgMissingRow)}
	}

	locA, locB := pair.A.Location, pair.B.Location
	var out []Discrepancy
	for _, f := range diffFields(schema, pair) {
		hasA, hasB := pair.A.Has(f.Name), pair.B.Has(f.Name)
		if !hasA && !hasB {
			continue
		}
		if !hasA || !hasB {
			out = append(out, Discrepancy{
				Kind:      KindMissingColumn,
				Document:  document,
				LocationA: &locA,
				LocationB: &locB,
				Field:     f.Name,
				Message:   fmt.Sprintf(MsgMissingColumn, f.Name),
			})
			continue
		}

		va, vb := pair.A.Fields[f.Name], pair.B.Fields[f.Name]
		if fieldEqual(f, va, vb, pair.Margin) {
			continue
		}
		out = append(out, Discrepancy{
			Kind:      KindFieldMismatch,
			Document:  document,
			LocationA: &locA,
			LocationB: &locB,
			Field:     f.Name,
			ValueA:    pair.A.String(f.Name),
			ValueB:    pair.B.String(f.Name),
			Message:   fmt.Sprintf(MsgFieldMismatch, f.Name),
		})
	}
	return out
}

func fieldEqual(f Field, a, b Value, margin float64) bool {
	if f.Compare == CompareText {
		return EqualText(a, b)
	}
	return Equal(a, b, margin)
}

// diffFields returns the declared fields followed, for open schemas, by any
// field present on either record, sorted by name.
func diffFields(schema *Schema, pair Pair) []Field {
	fields := append([]Field(nil), schema.Fields...)
	if !schema.Open {
		return fields
	}

	extra := map[string]struct{}{}
	for _, r := range []*Record{pair.A, pair.B} {
		for _, name := range extraFields(schema, r.Fields) {
			extra[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(extra))
	for name := range extra {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fields = append(fields, ValueField(name))
	}
	return fields
}

func missingPair(document string, side Side, r *Record, msg string) Discrepancy {
	loc := r.Location
	d := Discrepancy{
		Kind:     KindMissingPair,
		Side:     side,
		Document: document,
		Message:  msg,
	}
	if side == SideA {
		d.LocationA = &loc
	} else {
		d.LocationB = &loc
	}
	return d
}
