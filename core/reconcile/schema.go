package reconcile

// Compare selects how a field's values are compared.
type Compare int

const (
	// CompareAuto compares numerically when both values parse as money and
	// falls back to normalized text otherwise.
	CompareAuto Compare = iota
	// CompareText always compares normalized text.
	CompareText
)

// Field describes one named column of a schema.
type Field struct {
	// Name is the stable field name records use.
	Name string
	// Identity marks fields that name or locate the line item.
	Identity bool
	// Compare overrides the comparison rule for this field.
	Compare Compare
}

// Schema is a declarative descriptor for one document kind.
// Field order fixes the hashing order for identity and content keys.
type Schema struct {
	// Name is the document kind the schema describes.
	Name string

	// Fields lists line-item fields in hashing order.
	Fields []Field

	// Header lists document-level fields diffed once per document pair.
	Header []Field

	// Open allows records to carry fields not listed in Fields. Extra fields
	// feed the content key and are diffed, after the declared fields.
	Open bool
}

// IdentityFields returns the identity-bearing fields in schema order.
func (s *Schema) IdentityFields() []Field {
	var out []Field
	for _, f := range s.Fields {
		if f.Identity {
			out = append(out, f)
		}
	}
	return out
}

// Lookup returns the declared field with the given name.
func (s *Schema) Lookup(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// HeaderSchema returns a schema whose fields are this schema's header fields.
func (s *Schema) HeaderSchema() *Schema {
	return &Schema{Name: s.Name + ".header", Fields: s.Header}
}

// IdentityField declares an identity field compared as text.
func IdentityField(name string) Field {
	return Field{Name: name, Identity: true, Compare: CompareText}
}

// ValueField declares a value field compared numerically when possible.
func ValueField(name string) Field {
	return Field{Name: name}
}

// TextField declares a value field always compared as text.
func TextField(name string) Field {
	return Field{Name: name, Compare: CompareText}
}
