// Package oasmerge merges several independently produced OpenAPI 3.x documents
// into one consistent document, for example to publish a single contract for an
// API gateway or documentation portal that fronts many services.
//
// # Overview
//
// The repository is organized as:
//
//   - parser: the in-memory OpenAPI document model, loading (YAML or JSON, with
//     optional conformance validation) and writing
//   - merger: the merge engine (schema deduplication, path and operation merging
//     with prefixes, reference rewriting, tag, tag group and security scheme
//     consolidation)
//   - oaserrors: typed errors usable with errors.Is and errors.As
//   - cmd/oasmerge: the command-line front end
//
// # Quick Start
//
//	users, _ := parser.ParseWithOptions(parser.WithFilePath("users.yaml"))
//	orders, _ := parser.ParseWithOptions(parser.WithFilePath("orders.yaml"))
//
//	result, err := merger.Merge(merger.Config{
//		Info:           merger.Info{Title: "Gateway", Version: "1.0.0"},
//		Servers:        []merger.Server{{URL: "https://api.example.com"}},
//		SchemaConflict: merger.StrategyRename,
//	}, []merger.Source{
//		{Config: merger.SourceConfig{Name: "users", PathPrefix: "/users"}, Document: users.Document},
//		{Config: merger.SourceConfig{Name: "orders", PathPrefix: "/orders"}, Document: orders.Document},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, w := range result.Warnings {
//		log.Println(w)
//	}
//	_ = parser.WriteFile(result.Document, "gateway.yaml")
package oasmerge
