// Package equalutil holds small comparison helpers shared by the structural
// equality checks in the merger.
package equalutil

import (
	"encoding/json"
	"reflect"
)

// EqualPtr compares two pointers of any comparable type for equality.
// Both nil returns true, both non-nil with equal values returns true.
func EqualPtr[T comparable](a, b *T) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// EqualSet reports whether a and b hold the same elements, ignoring order.
// Duplicates are collapsed, so ["a", "a"] equals ["a"].
func EqualSet[T comparable](a, b []T) bool {
	left := make(map[T]struct{}, len(a))
	for _, v := range a {
		left[v] = struct{}{}
	}
	right := make(map[T]struct{}, len(b))
	for _, v := range b {
		if _, ok := left[v]; !ok {
			return false
		}
		right[v] = struct{}{}
	}
	return len(left) == len(right)
}

// Canonical returns the canonical JSON text of v. Object keys are sorted by
// encoding/json, so two values decoded from differently ordered documents
// produce the same text.
func Canonical(v any) (string, bool) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", false
	}
	return string(b), true
}

// EqualCanonical compares two arbitrary values (defaults, examples, extension
// payloads) by their canonical JSON text. Values that cannot be encoded fall
// back to reflect.DeepEqual.
func EqualCanonical(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	ca, okA := Canonical(a)
	cb, okB := Canonical(b)
	if okA && okB {
		return ca == cb
	}
	return reflect.DeepEqual(a, b)
}
