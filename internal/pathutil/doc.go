// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

// Package pathutil provides helpers for the two kinds of paths the merger
// handles: JSON Pointer references to components and URL path templates.
//
// # Reference Helpers
//
//	ref := pathutil.SchemaRef("Pet")                  // "#/components/schemas/Pet"
//	kind, name, ok := pathutil.ParseRef(ref)          // "schemas", "Pet", true
//
// Only local component references are parsed; external references
// ("other.yaml#/components/schemas/Pet") report ok == false and are left
// untouched by the merger.
//
// # Path Prefixes
//
//	p := pathutil.NormalizePrefix("svc1/")       // "/svc1"
//	full := pathutil.JoinPrefix(p, "/users")     // "/svc1/users"
//
// # Output Path Sanitization
//
// [SanitizeOutputPath] cleans an output file path and rejects symlinks,
// directories and paths that would overwrite one of the inputs:
//
//	safe, err := pathutil.SanitizeOutputPath(out, inputs...)
package pathutil
