package commission

import (
	"errors"
	"fmt"
	"sort"

	"commission-comparer/core/reconcile"
)

// ErrUnknownKind is returned when no extractor is registered for a kind.
var ErrUnknownKind = errors.New("unknown document kind")

var extractors = map[string]func() reconcile.Extractor{
	KindReferrer: func() reconcile.Extractor { return NewReferrerExtractor() },
	KindBroker:   func() reconcile.Extractor { return NewBrokerExtractor() },
	KindBranch:   func() reconcile.Extractor { return NewBranchExtractor() },
	KindSummary:  func() reconcile.Extractor { return NewSummaryExtractor() },
}

// Lookup returns a new extractor for the document kind.
func Lookup(kind string) (reconcile.Extractor, error) {
	build, ok := extractors[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return build(), nil
}

// MustLookup is like Lookup but panics for unknown kinds.
func MustLookup(kind string) reconcile.Extractor {
	ex, err := Lookup(kind)
	if err != nil {
		panic(err)
	}
	return ex
}

// Kinds returns the registered document kinds, sorted.
func Kinds() []string {
	kinds := make([]string, 0, len(extractors))
	for kind := range extractors {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
