// Package merger combines several OpenAPI 3.x documents into one.
//
// Each source is a parsed document paired with a [SourceConfig] naming the
// source and giving the prefixes applied to its paths and operation ids.
// The output document's info and servers come only from [Config]; nothing
// from the sources' info or servers blocks is carried over.
//
// # Quick Start
//
//	users, _ := parser.ParseWithOptions(parser.WithFilePath("users.yaml"))
//	billing, _ := parser.ParseWithOptions(parser.WithFilePath("billing.yaml"))
//
//	result, err := merger.Merge(merger.Config{
//		Info:    merger.Info{Title: "Platform API", Version: "1.0.0"},
//		Servers: []merger.Server{{URL: "https://api.example.com"}},
//	}, []merger.Source{
//		merger.NewSource(users, merger.SourceConfig{PathPrefix: "/users"}),
//		merger.NewSource(billing, merger.SourceConfig{PathPrefix: "/billing", OperationIDPrefix: "billing_"}),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	_ = parser.WriteFile(result.Document, "merged.yaml")
//
// # Phases
//
// A merge runs its phases in a fixed order, each over every source in
// input order:
//
//  1. schemas: component schemas are registered and deduplicated
//  2. paths: paths are prefixed and cloned with schema references rewritten
//  3. tags: tags are deduplicated by name
//  4. security: security schemes are deduplicated by name
//  5. tag-groups: x-tagGroups are merged by group name
//
// Other components (parameters, responses, request bodies, headers,
// examples, links and callbacks) travel with the paths phase; the first
// definition of a name wins.
//
// # Schema Conflicts
//
// Two schemas with the same name and the same structure collapse into one.
// When they differ, [Config.SchemaConflict] decides:
//   - [StrategyRename] (default): the later schema becomes "<source>_<name>"
//     and that source's references follow the new name
//   - [StrategyFirstWins]: the first schema is kept and the later source's
//     references point at it
//   - [StrategyFail]: the merge stops with a *oaserrors.SchemaConflictError
//
// # Warnings
//
// Conflicts that do not stop the merge are reported as [Warning] values in
// [Result.Warnings]: dropped paths, schema renames, first-wins schema
// conflicts, repeated operation ids and differing security schemes.
package merger
