package commission

import (
	"path"
	"strings"
)

// nameParts splits a document file name into its underscore separated parts,
// ignoring any directory prefix.
func nameParts(name string) []string {
	return strings.Split(path.Base(name), "_")
}

// stem returns the base file name without its extension.
func stem(name string) string {
	base := path.Base(name)
	return strings.TrimSuffix(base, path.Ext(base))
}

// dropTrailing removes the last n parts of the name (run id, date stamps and
// extension). Names with too few parts fall back to their stem.
func dropTrailing(name string, n int) string {
	parts := nameParts(name)
	if len(parts) <= n {
		return stem(name)
	}
	return strings.Join(parts[:len(parts)-n], "_")
}

// referrerDocumentKey drops the five trailing stamp parts and the period part
// preceding "Referrer", so statements for different periods of the same
// referrer pair up.
func referrerDocumentKey(name string) string {
	parts := nameParts(name)
	if len(parts) <= 5 {
		return stem(name)
	}
	parts = parts[:len(parts)-5]

	out := make([]string, 0, len(parts))
	for i, part := range parts {
		if i+1 < len(parts) && parts[i+1] == "Referrer" {
			continue
		}
		out = append(out, part)
	}
	return strings.Join(out, "_")
}

// branchDocumentKey keeps the first five parts of the name.
func branchDocumentKey(name string) string {
	parts := nameParts(name)
	if len(parts) <= 5 {
		return stem(name)
	}
	return strings.Join(parts[:5], "_")
}
