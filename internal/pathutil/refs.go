// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

package pathutil

import "strings"

// Component kinds as they appear in "#/components/{kind}/{name}".
const (
	KindSchemas         = "schemas"
	KindParameters      = "parameters"
	KindResponses       = "responses"
	KindExamples        = "examples"
	KindRequestBodies   = "requestBodies"
	KindHeaders         = "headers"
	KindSecuritySchemes = "securitySchemes"
	KindLinks           = "links"
	KindCallbacks       = "callbacks"
	KindPathItems       = "pathItems"
)

// RefPrefixComponents is the common prefix of all local component references.
const RefPrefixComponents = "#/components/"

// RefPrefixSchemas is the prefix of schema references.
const RefPrefixSchemas = RefPrefixComponents + KindSchemas + "/"

// SchemaRef builds "#/components/schemas/{name}".
func SchemaRef(name string) string {
	return RefPrefixSchemas + name
}

// ParseRef splits a local component reference into its target kind and name.
// It reports false for external references, JSON pointers outside
// #/components, and pointers that go deeper than a component name
// (for example "#/components/schemas/Pet/properties/id").
func ParseRef(ref string) (kind, name string, ok bool) {
	rest, found := strings.CutPrefix(ref, RefPrefixComponents)
	if !found {
		return "", "", false
	}
	kind, name, found = strings.Cut(rest, "/")
	if !found || kind == "" || name == "" || strings.Contains(name, "/") {
		return "", "", false
	}
	return kind, unescapePointer(name), true
}

// unescapePointer reverses JSON Pointer escaping (RFC 6901) of a single token.
func unescapePointer(token string) string {
	if !strings.Contains(token, "~") {
		return token
	}
	return strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")
}
