package reconcile

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"sort"
	"strconv"

	"commission-comparer/core/utils"
)

// Hash is a SHA-256 digest identifying a record or document.
type Hash [sha256.Size]byte

// String returns the lowercase hex form of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

const (
	markAbsent  byte = 0
	markPresent byte = 1
)

// IdentityKey hashes the identity fields of a record in schema order.
// A salt greater than zero disambiguates repeated identities within one side.
func IdentityKey(schema *Schema, fields map[string]Value, salt int) Hash {
	h := sha256.New()
	for _, f := range schema.IdentityFields() {
		writeField(h, f.Name, fields)
	}
	if salt > 0 {
		writeChunk(h, []byte("#salt"))
		writeChunk(h, []byte(strconv.Itoa(salt)))
	}
	return sum(h)
}

// ContentKey hashes every field of a record: identity fields, value fields and,
// for open schemas, any extra fields in name order.
func ContentKey(schema *Schema, fields map[string]Value) Hash {
	h := sha256.New()
	for _, f := range schema.IdentityFields() {
		writeField(h, f.Name, fields)
	}
	for _, f := range schema.Fields {
		if !f.Identity {
			writeField(h, f.Name, fields)
		}
	}
	if schema.Open {
		for _, name := range extraFields(schema, fields) {
			writeField(h, name, fields)
		}
	}
	return sum(h)
}

// DocumentKey hashes the parts that identify a document's source, each
// length-prefixed so adjacent parts cannot run into each other.
func DocumentKey(parts ...string) Hash {
	h := sha256.New()
	for _, p := range parts {
		writeChunk(h, []byte(p))
	}
	return sum(h)
}

// writeField encodes name, a presence marker and the canonical value, each
// length-prefixed so adjacent values cannot run into each other.
func writeField(h hash.Hash, name string, fields map[string]Value) {
	writeChunk(h, []byte(name))
	v, ok := fields[name]
	if !ok {
		h.Write([]byte{markAbsent})
		return
	}
	h.Write([]byte{markPresent})
	writeChunk(h, []byte(utils.ToString(v)))
}

func writeChunk(h hash.Hash, b []byte) {
	var n [binary.MaxVarintLen64]byte
	l := binary.PutUvarint(n[:], uint64(len(b)))
	h.Write(n[:l])
	h.Write(b)
}

func sum(h hash.Hash) Hash {
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// extraFields returns the record fields not declared by the schema, sorted.
func extraFields(schema *Schema, fields map[string]Value) []string {
	var extra []string
	for name := range fields {
		if _, ok := schema.Lookup(name); !ok {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return extra
}
