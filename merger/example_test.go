package merger_test

import (
	"fmt"
	"log"
	"maps"
	"slices"

	"github.com/erraggy/oasmerge/merger"
	"github.com/erraggy/oasmerge/parser"
)

// Example merges two services that both define a different User schema.
func Example() {
	var sources []merger.Source
	for _, in := range []struct{ path, prefix string }{
		{"../testdata/svc1.yaml", "/svc1"},
		{"../testdata/svc2.yaml", "/svc2"},
	} {
		parsed, err := parser.ParseWithOptions(parser.WithFilePath(in.path))
		if err != nil {
			log.Fatalf("failed to parse: %v", err)
		}
		sources = append(sources, merger.NewSource(parsed, merger.SourceConfig{PathPrefix: in.prefix}))
	}

	result, err := merger.Merge(merger.Config{
		Info:    merger.Info{Title: "Platform API", Version: "3.0.0"},
		Servers: []merger.Server{{URL: "https://api.example.com"}},
	}, sources)
	if err != nil {
		log.Fatalf("failed to merge: %v", err)
	}

	fmt.Println("openapi:", result.Document.OpenAPI)
	for _, path := range slices.Sorted(maps.Keys(result.Document.Paths)) {
		fmt.Println("path:", path)
	}
	fmt.Println("schemas:", slices.Sorted(maps.Keys(result.Document.Components.Schemas)))
	for _, w := range result.Warnings {
		fmt.Println(w)
	}
	// Output:
	// openapi: 3.0.3
	// path: /svc1/health
	// path: /svc1/users
	// path: /svc1/users/{id}
	// path: /svc2/accounts
	// path: /svc2/health
	// schemas: [Account Error User svc2_User]
	// SchemaRenamed: schema 'User' from svc2 renamed to 'svc2_User'
	// OperationIdConflict: operationId 'health' on GET /svc2/health from svc2 is already used by another operation
}

// ExampleMergeWithOptions prefixes operation ids and keeps the first
// definition of a conflicting schema.
func ExampleMergeWithOptions() {
	users, err := parser.ParseWithOptions(parser.WithFilePath("../testdata/svc1.yaml"))
	if err != nil {
		log.Fatal(err)
	}
	accounts, err := parser.ParseWithOptions(parser.WithFilePath("../testdata/svc2.yaml"))
	if err != nil {
		log.Fatal(err)
	}

	result, err := merger.MergeWithOptions(
		merger.WithConfig(merger.Config{
			Info:           merger.Info{Title: "Platform API", Version: "3.0.0"},
			SchemaConflict: merger.StrategyFirstWins,
		}),
		merger.WithSource(users.Document, merger.SourceConfig{Name: "users", PathPrefix: "/users-api"}),
		merger.WithSource(accounts.Document, merger.SourceConfig{Name: "accounts", PathPrefix: "/accounts-api", OperationIDPrefix: "acct_"}),
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(result.Document.Paths["/accounts-api/health"].Get.OperationID)
	fmt.Println(result.Warnings.Summary())
	// Output:
	// acct_health
	// 1 warning(s):
	//   - SchemaConflict: schema 'User' from accounts differs from an earlier definition; kept the first
}
