package reconcile

import (
	"strings"

	"commission-comparer/core/utils"

	"github.com/shopspring/decimal"
)

// Epsilon absorbs floating point noise in the caller-supplied margin.
const Epsilon = 1e-6

var epsilon = decimal.NewFromFloat(Epsilon)

// Equal reports whether two values agree within margin.
//
// Two empty values are equal and an empty value never equals a non-empty one.
// When both values parse as money they are equal iff |a-b| <= margin + Epsilon;
// otherwise they are compared as whitespace and case normalized text.
func Equal(a, b Value, margin float64) bool {
	sa := strings.TrimSpace(utils.ToString(a))
	sb := strings.TrimSpace(utils.ToString(b))

	switch {
	case sa == "" && sb == "":
		return true
	case sa == "" || sb == "":
		return false
	}

	na, okA := ParseMoney(sa)
	nb, okB := ParseMoney(sb)
	if okA && okB {
		return withinMargin(na, nb, margin)
	}
	return equalText(sa, sb)
}

// EqualText compares two values as normalized text only.
func EqualText(a, b Value) bool {
	return equalText(utils.ToString(a), utils.ToString(b))
}

func equalText(a, b string) bool {
	return strings.EqualFold(utils.NormalizeSpace(a), utils.NormalizeSpace(b))
}

func withinMargin(a, b decimal.Decimal, margin float64) bool {
	tolerance := decimal.NewFromFloat(margin).Add(epsilon)
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}

// ParseMoney parses a monetary or numeric string such as "$1,234.50",
// "-$12", "(45.10)" or "AUD 3 000". Currency symbols, currency codes and
// thousands separators are ignored. A space between two digits is a thousands
// separator only when exactly three digits follow it, so "1 2" is not 12.
func ParseMoney(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}

	s = trimCurrencyCode(s)

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	var b strings.Builder
	digits := 0
	rs := []rune(s)
	for i, r := range rs {
		switch {
		case isDigit(r):
			digits++
			b.WriteRune(r)
		case r == '.':
			b.WriteRune(r)
		case r == '-' || r == '+':
			if b.Len() > 0 {
				return decimal.Zero, false
			}
			if r == '-' {
				negative = !negative
			}
		case r == ' ' || r == '\u00a0':
			if i > 0 && isDigit(rs[i-1]) && i+1 < len(rs) && isDigit(rs[i+1]) && !digitGroup(rs[i+1:]) {
				return decimal.Zero, false
			}
		case r == ',': // thousands separator
		case isCurrencySymbol(r):
		default:
			return decimal.Zero, false
		}
	}
	if digits == 0 {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

func isCurrencySymbol(r rune) bool {
	switch r {
	case '$', '£', '€', '¥':
		return true
	}
	return false
}

var currencyCodes = []string{"AUD", "NZD", "USD"}

// trimCurrencyCode removes a leading or trailing currency code token.
func trimCurrencyCode(s string) string {
	for _, code := range currencyCodes {
		if strings.HasPrefix(s, code) {
			return strings.TrimSpace(s[len(code):])
		}
		if strings.HasSuffix(s, code) {
			return strings.TrimSpace(s[:len(s)-len(code)])
		}
	}
	return s
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// digitGroup reports whether rs opens with exactly three digits.
func digitGroup(rs []rune) bool {
	n := 0
	for n < len(rs) && isDigit(rs[n]) {
		n++
	}
	return n == 3
}
