package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testSchema() *Schema {
	return &Schema{
		Name: "test",
		Fields: []Field{
			IdentityField("commission_type"),
			IdentityField("client"),
			ValueField("amount"),
			ValueField("gst"),
		},
	}
}

func TestIdentityKey_IgnoresValueFields(t *testing.T) {
	s := testSchema()
	a := map[string]Value{"commission_type": "Upfront", "client": "Smith", "amount": "$10", "gst": "$1"}
	b := map[string]Value{"commission_type": "Upfront", "client": "Smith", "amount": "$99", "gst": "$9"}

	assert.Equal(t, IdentityKey(s, a, 0), IdentityKey(s, b, 0))
	assert.NotEqual(t, ContentKey(s, a), ContentKey(s, b))
}

func TestContentKey_Deterministic(t *testing.T) {
	s := testSchema()
	first := map[string]Value{}
	first["gst"] = "$1"
	first["amount"] = "$10"
	first["client"] = "Smith"
	first["commission_type"] = "Trail"

	second := map[string]Value{
		"commission_type": "Trail",
		"client":          "Smith",
		"amount":          "$10",
		"gst":             "$1",
	}

	for i := 0; i < 10; i++ {
		assert.Equal(t, ContentKey(s, first), ContentKey(s, second))
	}
}

func TestContentKey_NoBoundaryAmbiguity(t *testing.T) {
	s := testSchema()
	a := map[string]Value{"commission_type": "ab", "client": "c"}
	b := map[string]Value{"commission_type": "a", "client": "bc"}

	assert.NotEqual(t, IdentityKey(s, a, 0), IdentityKey(s, b, 0))
	assert.NotEqual(t, ContentKey(s, a), ContentKey(s, b))
}

func TestContentKey_AbsentDiffersFromEmpty(t *testing.T) {
	s := testSchema()
	withEmpty := map[string]Value{"commission_type": "Trail", "client": "Smith", "amount": ""}
	without := map[string]Value{"commission_type": "Trail", "client": "Smith"}

	assert.NotEqual(t, ContentKey(s, withEmpty), ContentKey(s, without))
}

func TestIdentityKey_Salt(t *testing.T) {
	s := testSchema()
	f := map[string]Value{"commission_type": "Trail", "client": "Smith"}

	assert.Equal(t, IdentityKey(s, f, 0), IdentityKey(s, f, 0))
	assert.NotEqual(t, IdentityKey(s, f, 0), IdentityKey(s, f, 1))
	assert.NotEqual(t, IdentityKey(s, f, 1), IdentityKey(s, f, 2))
}

func TestContentKey_OpenSchemaExtras(t *testing.T) {
	s := &Schema{Name: "open", Fields: []Field{IdentityField("id")}, Open: true}
	a := map[string]Value{"id": 1, "Total": "$5"}
	b := map[string]Value{"id": 1, "Total": "$6"}

	assert.Equal(t, IdentityKey(s, a, 0), IdentityKey(s, b, 0))
	assert.NotEqual(t, ContentKey(s, a), ContentKey(s, b))

	closed := &Schema{Name: "closed", Fields: []Field{IdentityField("id")}}
	assert.Equal(t, ContentKey(closed, a), ContentKey(closed, b))
}

func TestDocumentKey(t *testing.T) {
	assert.Equal(t, DocumentKey("Referrer", "ACME"), DocumentKey("Referrer", "ACME"))
	assert.NotEqual(t, DocumentKey("ReferrerA", "CME"), DocumentKey("Referrer", "ACME"))
	assert.Len(t, DocumentKey("x").String(), 64)
}

func TestIdentityKey_FollowsIdentityFieldOrder(t *testing.T) {
	s := testSchema()
	ids := s.IdentityFields()
	assert.Equal(t, []string{"commission_type", "client"}, []string{ids[0].Name, ids[1].Name})
	assert.Len(t, ids, 2)

	reordered := &Schema{Name: "test", Fields: []Field{ValueField("amount"), IdentityField("commission_type"), ValueField("gst"), IdentityField("client")}}
	f := map[string]Value{"commission_type": "Upfront", "client": "Smith", "amount": "$10"}
	assert.Equal(t, IdentityKey(s, f, 0), IdentityKey(reordered, f, 0))
}
