// Package utils provides common utility functions for the commission comparer.
// It includes helpers for rendering record values canonically and for whitespace
// normalization that doesn't fit into domain-specific packages.
package utils
