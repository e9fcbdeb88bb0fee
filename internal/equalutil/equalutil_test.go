package equalutil_test

import (
	"testing"

	"github.com/erraggy/oasmerge/internal/equalutil"
	"github.com/erraggy/oasmerge/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestEqualPtr_float64(t *testing.T) {
	tests := []struct {
		name string
		a    *float64
		b    *float64
		want bool
	}{
		{"both nil", nil, nil, true},
		{"a nil, b non-nil", nil, testutil.Ptr(3.14), false},
		{"a non-nil, b nil", testutil.Ptr(3.14), nil, false},
		{"both same value", testutil.Ptr(3.14), testutil.Ptr(3.14), true},
		{"different values", testutil.Ptr(1.0), testutil.Ptr(2.0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, equalutil.EqualPtr(tt.a, tt.b))
		})
	}
}

func TestEqualSet(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want bool
	}{
		{"both nil", nil, nil, true},
		{"nil and empty", nil, []string{}, true},
		{"same order", []string{"id", "name"}, []string{"id", "name"}, true},
		{"different order", []string{"id", "name"}, []string{"name", "id"}, true},
		{"duplicates collapse", []string{"id", "id"}, []string{"id"}, true},
		{"missing element", []string{"id"}, []string{"id", "name"}, false},
		{"different element", []string{"id", "name"}, []string{"id", "email"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, equalutil.EqualSet(tt.a, tt.b))
			assert.Equal(t, tt.want, equalutil.EqualSet(tt.b, tt.a))
		})
	}
}

func TestEqualCanonical(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"both nil", nil, nil, true},
		{"one nil", nil, "x", false},
		{"same scalar", "abc", "abc", true},
		{"int and float of same value", 1, 1.0, true},
		{"maps with different insertion order",
			map[string]any{"a": 1, "b": []any{"x", "y"}},
			map[string]any{"b": []any{"x", "y"}, "a": 1},
			true},
		{"list order matters", []any{"x", "y"}, []any{"y", "x"}, false},
		{"string and number differ", "1", 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, equalutil.EqualCanonical(tt.a, tt.b))
		})
	}
}
