// Package parser loads and writes OpenAPI 3.x documents.
//
// Documents are decoded from YAML or JSON into [Document], a typed model
// whose objects keep unknown and extension fields in an Extra map so that
// nothing is lost on the way back out.
//
// # Quick Start
//
//	result, err := parser.ParseWithOptions(
//		parser.WithFilePath("users.yaml"),
//		parser.WithValidation(true),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.SourceName, result.Version)
//
// Swagger 2.0 and other non-3.x inputs fail with an [oaserrors.ParseError].
// When validation is enabled, OpenAPI 3.0 documents are additionally checked
// for conformance and failures are reported as [oaserrors.ValidationError].
//
// # Writing
//
// [WriteFile] picks JSON or YAML from the file extension and writes with
// owner-only permissions. [Marshal] returns the encoded bytes.
//
// # Tag Groups
//
// The x-tagGroups extension is exposed through [Document.TagGroups] and
// [Document.SetTagGroups].
package parser
