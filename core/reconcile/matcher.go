package reconcile

// MatchResult is the outcome of pairing two record sets.
type MatchResult struct {
	// Exact holds pairs whose content keys are equal.
	Exact []Pair

	// Identity holds pairs that share an identity but differ in value fields.
	Identity []Pair

	// OnlyA and OnlyB hold leftovers, in construction order.
	OnlyA []*Record
	OnlyB []*Record
}

// Pairs returns exact and identity pairs together.
func (m MatchResult) Pairs() []Pair {
	out := make([]Pair, 0, len(m.Exact)+len(m.Identity))
	out = append(out, m.Exact...)
	return append(out, m.Identity...)
}

// matcher tracks which positions of each set have been consumed.
type matcher struct {
	a, b   *RecordSet
	usedA  []bool
	usedB  []bool
	margin float64
	result MatchResult
}

// Match pairs the records of a and b.
//
// The exact pass pairs records with equal content keys. The identity pass then
// pairs remaining records by salted identity slot and, failing that, by raw
// identity, first from a's side and then from b's. When several candidates are
// left the first unconsumed one in construction order wins; this choice is
// deterministic for a given row order but carries no meaning of its own.
// Leftovers are whatever is still unconsumed after both passes.
func Match(a, b *RecordSet, margin float64) MatchResult {
	m := &matcher{
		a:      a,
		b:      b,
		usedA:  make([]bool, a.Len()),
		usedB:  make([]bool, b.Len()),
		margin: margin,
	}

	m.exactPass()
	m.identityPass()
	m.leftoverPass()

	return m.result
}

func (m *matcher) exactPass() {
	for i, r := range m.a.records {
		if j, ok := firstUnused(m.b.content[r.content], m.usedB); ok {
			m.take(i, j, &m.result.Exact)
		}
	}
}

func (m *matcher) identityPass() {
	// a -> b by slot, then by raw identity
	for i, r := range m.a.records {
		if m.usedA[i] {
			continue
		}
		if j, ok := firstUnused(m.b.identity[r.identity], m.usedB); ok {
			m.take(i, j, &m.result.Identity)
		}
	}
	for i, r := range m.a.records {
		if m.usedA[i] {
			continue
		}
		if j, ok := firstUnused(m.b.raw[r.rawIdentity], m.usedB); ok {
			m.take(i, j, &m.result.Identity)
		}
	}

	// b -> a
	for j, r := range m.b.records {
		if m.usedB[j] {
			continue
		}
		if i, ok := firstUnused(m.a.identity[r.identity], m.usedA); ok {
			m.take(i, j, &m.result.Identity)
			continue
		}
		if i, ok := firstUnused(m.a.raw[r.rawIdentity], m.usedA); ok {
			m.take(i, j, &m.result.Identity)
		}
	}
}

func (m *matcher) leftoverPass() {
	for i, r := range m.a.records {
		if !m.usedA[i] {
			m.result.OnlyA = append(m.result.OnlyA, r)
		}
	}
	for j, r := range m.b.records {
		if !m.usedB[j] {
			m.result.OnlyB = append(m.result.OnlyB, r)
		}
	}
}

func (m *matcher) take(i, j int, into *[]Pair) {
	m.usedA[i] = true
	m.usedB[j] = true
	*into = append(*into, Pair{A: m.a.records[i], B: m.b.records[j], Margin: m.margin})
}

func firstUnused(positions []int, used []bool) (int, bool) {
	for _, p := range positions {
		if !used[p] {
			return p, true
		}
	}
	return 0, false
}
