// Package sliceutil provides slice helpers shared across modules.
package sliceutil

// Deduplicate returns a new slice with duplicate elements removed,
// preserving first-occurrence order.
func Deduplicate[T comparable](items []T) []T {
	seen := make(map[T]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Contains reports whether items includes target.
func Contains[T comparable](items []T, target T) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
