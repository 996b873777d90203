package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff_FieldMismatch(t *testing.T) {
	s := testSchema()
	a := NewRecord(s, map[string]Value{"commission_type": "Trail", "client": "K1", "amount": "$100.00", "gst": "$10"}, SourceLocation{File: "a.html", Line: 3})
	b := NewRecord(s, map[string]Value{"commission_type": "Trail", "client": "K1", "amount": "$100.01", "gst": "$10"}, SourceLocation{File: "b.html", Line: 7})

	got := Diff(s, "doc", Pair{A: a, B: b, Margin: 0})
	require.Len(t, got, 1)
	d := got[0]
	assert.Equal(t, KindFieldMismatch, d.Kind)
	assert.Equal(t, "amount", d.Field)
	assert.Equal(t, "$100.00", d.ValueA)
	assert.Equal(t, "$100.01", d.ValueB)
	assert.Equal(t, "Value of amount does not match", d.Message)
	assert.Equal(t, 3, d.LocationA.Line)
	assert.Equal(t, 7, d.LocationB.Line)

	assert.Empty(t, Diff(s, "doc", Pair{A: a, B: b, Margin: 0.05}))
}

func TestDiff_MissingColumn(t *testing.T) {
	s := testSchema()
	a := NewRecord(s, map[string]Value{"commission_type": "Trail", "client": "K1", "amount": "$1", "gst": "$0"}, SourceLocation{})
	b := NewRecord(s, map[string]Value{"commission_type": "Trail", "client": "K1", "amount": "$1"}, SourceLocation{})

	got := Diff(s, "doc", Pair{A: a, B: b})
	require.Len(t, got, 1)
	assert.Equal(t, KindMissingColumn, got[0].Kind)
	assert.Equal(t, "gst", got[0].Field)
	assert.Equal(t, "No corresponding column (gst) in commission file", got[0].Message)
}

func TestDiff_OneSidedPair(t *testing.T) {
	s := testSchema()
	r := NewRecord(s, map[string]Value{"client": "K1", "amount": "$5"}, SourceLocation{File: "a.html", Line: 2})

	got := Diff(s, "doc", Pair{A: r})
	require.Len(t, got, 1)
	assert.Equal(t, KindMissingPair, got[0].Kind)
	assert.Equal(t, SideA, got[0].Side)
	assert.Equal(t, "a.html:2", got[0].LocationA.String())
	assert.Nil(t, got[0].LocationB)
	assert.Equal(t, MsgMissingRow, got[0].Message)

	got = Diff(s, "doc", Pair{B: r})
	require.Len(t, got, 1)
	assert.Equal(t, SideB, got[0].Side)
	assert.Nil(t, got[0].LocationA)
	assert.NotNil(t, got[0].LocationB)
}

func TestDiff_EmptyPairPanics(t *testing.T) {
	assert.PanicsWithValue(t, ErrEmptyPair, func() {
		Diff(testSchema(), "doc", Pair{})
	})
}

func TestDiff_TextFieldIgnoresNumericRule(t *testing.T) {
	s := &Schema{Name: "t", Fields: []Field{IdentityField("id"), TextField("code"), ValueField("amount")}}
	a := NewRecord(s, map[string]Value{"id": "1", "code": "001", "amount": "001"}, SourceLocation{})
	b := NewRecord(s, map[string]Value{"id": "1", "code": "1", "amount": "1"}, SourceLocation{})

	got := Diff(s, "doc", Pair{A: a, B: b})
	require.Len(t, got, 1)
	assert.Equal(t, "code", got[0].Field)
}

func TestDiff_OpenSchemaExtras(t *testing.T) {
	s := &Schema{Name: "open", Fields: []Field{IdentityField("id")}, Open: true}
	a := NewRecord(s, map[string]Value{"id": "1", "Total": "$5", "Branch": "North"}, SourceLocation{})
	b := NewRecord(s, map[string]Value{"id": "1", "Total": "$6"}, SourceLocation{})

	got := Diff(s, "doc", Pair{A: a, B: b})
	require.Len(t, got, 2)
	assert.Equal(t, KindMissingColumn, got[0].Kind)
	assert.Equal(t, "Branch", got[0].Field)
	assert.Equal(t, KindFieldMismatch, got[1].Kind)
	assert.Equal(t, "Total", got[1].Field)
}
