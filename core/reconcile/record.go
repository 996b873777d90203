package reconcile

import (
	"sort"

	"commission-comparer/core/utils"
)

// Record is one normalized line item (or document header).
// It is immutable once inserted into a RecordSet.
type Record struct {
	// Fields maps field names to values.
	Fields map[string]Value

	// Location points at the source line.
	Location SourceLocation

	rawIdentity Hash
	identity    Hash
	content     Hash
	salt        int
}

// NewRecord builds a record and derives its identity and content keys.
func NewRecord(schema *Schema, fields map[string]Value, loc SourceLocation) *Record {
	if fields == nil {
		fields = map[string]Value{}
	}
	r := &Record{
		Fields:   fields,
		Location: loc,
	}
	r.rawIdentity = IdentityKey(schema, fields, 0)
	r.identity = r.rawIdentity
	r.content = ContentKey(schema, fields)
	return r
}

// IdentityKey returns the (possibly salted) identity key.
func (r *Record) IdentityKey() Hash { return r.identity }

// RawIdentityKey returns the identity key before any collision salt was applied.
func (r *Record) RawIdentityKey() Hash { return r.rawIdentity }

// ContentKey returns the key over every field.
func (r *Record) ContentKey() Hash { return r.content }

// Salt returns the disambiguation salt applied at insert time, zero for the
// first occurrence of an identity.
func (r *Record) Salt() int { return r.salt }

// Has reports whether the record carries the named field.
func (r *Record) Has(name string) bool {
	_, ok := r.Fields[name]
	return ok
}

// String returns the canonical text of a field, empty when absent.
func (r *Record) String(name string) string {
	return utils.ToString(r.Fields[name])
}

// FieldNames returns the record's field names sorted.
func (r *Record) FieldNames() []string {
	names := make([]string, 0, len(r.Fields))
	for name := range r.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RecordSet indexes the records extracted from one document.
//
// Records are kept in construction order. The content index maps each content
// key to the positions holding it, and a per-identity counter salts repeated
// identities so each occurrence becomes its own slot.
type RecordSet struct {
	schema   *Schema
	records  []*Record
	content  map[Hash][]int
	identity map[Hash][]int
	raw      map[Hash][]int
	seen     map[Hash]int
}

// NewRecordSet creates an empty set for the given schema.
func NewRecordSet(schema *Schema) *RecordSet {
	return &RecordSet{
		schema:   schema,
		content:  make(map[Hash][]int),
		identity: make(map[Hash][]int),
		raw:      make(map[Hash][]int),
		seen:     make(map[Hash]int),
	}
}

// Schema returns the schema the set was built for.
func (s *RecordSet) Schema() *Schema { return s.schema }

// Insert adds a record. If its identity key has been seen N times before, the
// identity is re-derived with salt N before the record is stored.
func (s *RecordSet) Insert(r *Record) {
	n := s.Occurrences(r.rawIdentity)
	s.seen[r.rawIdentity] = n + 1
	if n > 0 {
		r.salt = n
		r.identity = IdentityKey(s.schema, r.Fields, n)
	}

	pos := len(s.records)
	s.records = append(s.records, r)
	s.content[r.content] = append(s.content[r.content], pos)
	s.identity[r.identity] = append(s.identity[r.identity], pos)
	s.raw[r.rawIdentity] = append(s.raw[r.rawIdentity], pos)
}

// Add builds a record from fields and inserts it.
func (s *RecordSet) Add(fields map[string]Value, loc SourceLocation) *Record {
	r := NewRecord(s.schema, fields, loc)
	s.Insert(r)
	return r
}

// Len returns the number of records.
func (s *RecordSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// Records returns the records in construction order.
func (s *RecordSet) Records() []*Record { return s.records }

// ByContent returns the records holding the content key, in construction order.
func (s *RecordSet) ByContent(key Hash) []*Record {
	return s.lookup(s.content[key])
}

// ByIdentity returns the records holding the (salted) identity key.
func (s *RecordSet) ByIdentity(key Hash) []*Record {
	return s.lookup(s.identity[key])
}

// Occurrences returns how many records share the raw identity key.
func (s *RecordSet) Occurrences(raw Hash) int {
	return s.seen[raw]
}

func (s *RecordSet) lookup(positions []int) []*Record {
	out := make([]*Record, 0, len(positions))
	for _, p := range positions {
		out = append(out, s.records[p])
	}
	return out
}
