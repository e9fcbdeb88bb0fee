// Package oaserrors provides structured error types for oasmerge.
//
// Import path: github.com/erraggy/oasmerge/oaserrors
//
// The error types let callers tell apart the failure categories that the
// command-line front end maps to distinct exit codes.
//
// # Error Types
//
//   - [ParseError]: malformed YAML/JSON or a document that is not OpenAPI 3.x
//   - [ValidationError]: a document that does not conform to the OpenAPI specification
//   - [ConfigError]: invalid or incomplete merge configuration
//   - [SchemaConflictError]: a schema name collision under the "fail" strategy
//
// # Sentinel Errors
//
//   - [ErrParse]: matches any [ParseError]
//   - [ErrValidation]: matches any [ValidationError]
//   - [ErrConfig]: matches any [ConfigError]
//   - [ErrSchemaConflict]: matches any [SchemaConflictError]
//
// # Usage
//
//	result, err := merger.Merge(cfg, sources)
//	var conflict *oaserrors.SchemaConflictError
//	if errors.As(err, &conflict) {
//	    fmt.Printf("schema %q from %s conflicts\n", conflict.Schema, conflict.Source)
//	}
package oaserrors
