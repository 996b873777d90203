// Package reconcile provides a generic engine for reconciling two independently
// produced collections of commission statement records and reporting every
// discrepancy between them.
//
// The engine knows nothing about file formats. Extractors turn raw documents into
// Documents made of Records, and a declarative Schema tells the engine which fields
// identify a line item and which carry values.
//
// # Architecture
//
// The engine consists of the following components:
//
// 1. Keys: SHA-256 identity keys (fields naming the line item) and content keys
// (every field). Fields are hashed in schema order with length-prefixed canonical
// values, so map iteration order never leaks into a key.
//
// 2. RecordSet: a per-document index. Records sharing an identity are salted with
// their occurrence count at insert time, giving each duplicate its own slot.
//
// 3. Matcher: an exact pass on content keys, an identity pass on salted slots and
// raw identities (both directions), then a leftover pass over what remains.
//
// 4. Differ and Equal: field by field comparison of a pair. Monetary values are
// parsed with shopspring/decimal and compared within a caller supplied margin.
//
// 5. ReconcileDirectory: pairs whole documents by document key using the same
// matcher, and reconciles document pairs concurrently.
//
// # Outcomes are data
//
// Missing pairs, missing columns and field mismatches are Discrepancy values,
// never errors. A malformed document is reported by its extractor as a
// SchemaError; the engine skips it and the run continues.
//
// # Usage Example
//
//	spec := &reconcile.Spec{
//	    Extractor: commission.MustLookup("referrer"),
//	    Margin:    0.01,
//	    Workers:   4,
//	}
//	report, err := reconcile.ReconcileDirectory(ctx, spec, sourceA, sourceB)
package reconcile
