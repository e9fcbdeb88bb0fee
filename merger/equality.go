package merger

import (
	"reflect"

	"github.com/erraggy/oasmerge/internal/equalutil"
	"github.com/erraggy/oasmerge/internal/pathutil"
	"github.com/erraggy/oasmerge/parser"
)

// SchemasEqual reports whether a and b are structurally identical.
//
// The comparison is exact and recursive. Enum values and allOf/anyOf/oneOf
// members compare in order; required names compare as a set; properties
// compare as a key set with recursive values. A schema carrying $ref is an
// opaque leaf: two references are equal when they name the same target, and
// the target is never resolved, so reference cycles cannot recurse.
// Defaults, examples and extensions compare by canonical JSON text.
func SchemasEqual(a, b *parser.Schema) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Ref != "" || b.Ref != "" {
		return refsEqual(a.Ref, b.Ref)
	}

	return scalarsEqual(a, b) &&
		valuesEqual(a, b) &&
		equalutil.EqualSet(a.Required, b.Required) &&
		propertiesEqual(a.Properties, b.Properties) &&
		additionalPropertiesEqual(a.AdditionalProperties, b.AdditionalProperties) &&
		SchemasEqual(a.Items, b.Items) &&
		SchemasEqual(a.Not, b.Not) &&
		schemaListsEqual(a.AllOf, b.AllOf) &&
		schemaListsEqual(a.AnyOf, b.AnyOf) &&
		schemaListsEqual(a.OneOf, b.OneOf) &&
		discriminatorsEqual(a.Discriminator, b.Discriminator) &&
		reflect.DeepEqual(a.XML, b.XML) &&
		reflect.DeepEqual(a.ExternalDocs, b.ExternalDocs) &&
		extensionsEqual(a.Extra, b.Extra)
}

// refsEqual compares two $ref values by target kind and name. Refs that are
// not local component refs compare as plain strings.
func refsEqual(a, b string) bool {
	kindA, nameA, okA := pathutil.ParseRef(a)
	kindB, nameB, okB := pathutil.ParseRef(b)
	if okA && okB {
		return kindA == kindB && nameA == nameB
	}
	return a == b
}

func scalarsEqual(a, b *parser.Schema) bool {
	return a.Title == b.Title &&
		a.Description == b.Description &&
		a.Format == b.Format &&
		a.Pattern == b.Pattern &&
		a.Nullable == b.Nullable &&
		a.ReadOnly == b.ReadOnly &&
		a.WriteOnly == b.WriteOnly &&
		a.Deprecated == b.Deprecated &&
		a.UniqueItems == b.UniqueItems &&
		equalutil.EqualPtr(a.MultipleOf, b.MultipleOf) &&
		equalutil.EqualPtr(a.Minimum, b.Minimum) &&
		equalutil.EqualPtr(a.Maximum, b.Maximum) &&
		equalutil.EqualPtr(a.MinLength, b.MinLength) &&
		equalutil.EqualPtr(a.MaxLength, b.MaxLength) &&
		equalutil.EqualPtr(a.MinItems, b.MinItems) &&
		equalutil.EqualPtr(a.MaxItems, b.MaxItems) &&
		equalutil.EqualPtr(a.MinProperties, b.MinProperties) &&
		equalutil.EqualPtr(a.MaxProperties, b.MaxProperties)
}

// valuesEqual compares the fields that hold arbitrary decoded values.
func valuesEqual(a, b *parser.Schema) bool {
	if len(a.Enum) != len(b.Enum) {
		return false
	}
	for i := range a.Enum {
		if !equalutil.EqualCanonical(a.Enum[i], b.Enum[i]) {
			return false
		}
	}
	return equalutil.EqualCanonical(a.Type, b.Type) &&
		equalutil.EqualCanonical(a.ExclusiveMinimum, b.ExclusiveMinimum) &&
		equalutil.EqualCanonical(a.ExclusiveMaximum, b.ExclusiveMaximum) &&
		equalutil.EqualCanonical(a.Default, b.Default) &&
		equalutil.EqualCanonical(a.Example, b.Example)
}

func propertiesEqual(a, b map[string]*parser.Schema) bool {
	if len(a) != len(b) {
		return false
	}
	for name, pa := range a {
		pb, ok := b[name]
		if !ok || !SchemasEqual(pa, pb) {
			return false
		}
	}
	return true
}

func additionalPropertiesEqual(a, b *parser.AdditionalProperties) bool {
	if a == nil || b == nil {
		return a == b
	}
	if (a.Schema == nil) != (b.Schema == nil) {
		return false
	}
	if a.Schema == nil {
		return a.Allowed == b.Allowed
	}
	return SchemasEqual(a.Schema, b.Schema)
}

func schemaListsEqual(a, b []*parser.Schema) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !SchemasEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func discriminatorsEqual(a, b *parser.Discriminator) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.PropertyName != b.PropertyName || len(a.Mapping) != len(b.Mapping) {
		return false
	}
	for k, va := range a.Mapping {
		vb, ok := b.Mapping[k]
		if !ok || !refsEqual(va, vb) {
			return false
		}
	}
	return extensionsEqual(a.Extra, b.Extra)
}

// extensionsEqual treats nil and empty extension maps as equal.
func extensionsEqual(a, b map[string]any) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return equalutil.EqualCanonical(a, b)
}
