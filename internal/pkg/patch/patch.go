// Package patch fills optional request values.
package patch

import "cmp"

// Coalesce returns *ptr, or fallback when ptr is nil.
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Bounded returns fallback for non-positive v and caps everything else at max.
func Bounded[T cmp.Ordered](v, fallback, max T) T {
	var zero T
	if v <= zero {
		return fallback
	}
	return min(v, max)
}
