package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(client, amount string, line int) (map[string]Value, SourceLocation) {
	return map[string]Value{
		"commission_type": "Trail",
		"client":          client,
		"amount":          amount,
		"gst":             "$0.00",
	}, SourceLocation{File: "doc.html", Line: line}
}

func TestRecordSet_InsertSaltsRepeatedIdentity(t *testing.T) {
	set := NewRecordSet(testSchema())

	first := set.Add(row("Smith", "$10", 1))
	second := set.Add(row("Smith", "$20", 2))
	third := set.Add(row("Jones", "$30", 3))

	assert.Equal(t, 0, first.Salt())
	assert.Equal(t, 1, second.Salt())
	assert.Equal(t, 0, third.Salt())

	assert.Equal(t, first.RawIdentityKey(), second.RawIdentityKey())
	assert.Equal(t, first.IdentityKey(), first.RawIdentityKey())
	assert.NotEqual(t, first.IdentityKey(), second.IdentityKey())

	assert.Equal(t, 2, set.Occurrences(first.RawIdentityKey()))
	assert.Equal(t, []*Record{first}, set.ByIdentity(first.IdentityKey()))
	assert.Equal(t, []*Record{second}, set.ByIdentity(second.IdentityKey()))
	assert.Equal(t, 3, set.Len())
}

func TestRecordSet_DuplicateContentKeepsBothSlots(t *testing.T) {
	set := NewRecordSet(testSchema())

	first := set.Add(row("Smith", "$10", 1))
	second := set.Add(row("Smith", "$10", 2))

	require.Equal(t, first.ContentKey(), second.ContentKey())
	assert.Equal(t, []*Record{first, second}, set.ByContent(first.ContentKey()))
	assert.Equal(t, []*Record{first, second}, set.Records())
}

func TestRecord_Accessors(t *testing.T) {
	r := NewRecord(testSchema(), map[string]Value{"client": "Smith", "amount": 12.5}, SourceLocation{File: "f", Sheet: "Vbi Data", Line: 4})

	assert.True(t, r.Has("client"))
	assert.False(t, r.Has("gst"))
	assert.Equal(t, "12.5", r.String("amount"))
	assert.Equal(t, "", r.String("gst"))
	assert.Equal(t, []string{"amount", "client"}, r.FieldNames())
	assert.Equal(t, "f:Vbi Data:4", r.Location.String())
}

func TestRecordSet_NilLen(t *testing.T) {
	var set *RecordSet
	assert.Equal(t, 0, set.Len())
}
