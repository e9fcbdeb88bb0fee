// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasmerge/parser"
)

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// NewDocument creates a minimal OAS 3.0 document with the given title and
// no paths or components.
func NewDocument(title string) *parser.Document {
	return &parser.Document{
		OpenAPI: "3.0.3",
		Info: &parser.Info{
			Title:   title,
			Version: "1.0.0",
		},
		Paths: make(parser.Paths),
	}
}

// NewUserDocument creates a document with a single GET /users operation
// returning an array of the User schema, where User has the given
// properties, each typed string.
func NewUserDocument(title string, props ...string) *parser.Document {
	doc := NewDocument(title)
	user := &parser.Schema{Type: "object", Properties: make(map[string]*parser.Schema, len(props))}
	for _, p := range props {
		user.Properties[p] = &parser.Schema{Type: "string"}
	}
	doc.Components = &parser.Components{Schemas: map[string]*parser.Schema{"User": user}}
	doc.Paths["/users"] = &parser.PathItem{
		Get: &parser.Operation{
			OperationID: "listUsers",
			Responses: parser.Responses{
				"200": {
					Description: "ok",
					Content: map[string]*parser.MediaType{
						"application/json": {
							Schema: &parser.Schema{
								Type:  "array",
								Items: &parser.Schema{Ref: "#/components/schemas/User"},
							},
						},
					},
				},
			},
		},
	}
	return doc
}

// ParseYAML parses an inline YAML document and fails the test on error.
func ParseYAML(t *testing.T, src string) *parser.Document {
	t.Helper()

	result, err := parser.ParseWithOptions(parser.WithBytes([]byte(src)))
	if err != nil {
		t.Fatalf("Failed to parse document: %v", err)
	}
	return result.Document
}

// WriteTempYAML marshals a value to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, v any) string {
	t.Helper()

	data, err := yaml.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal to YAML: %v", err)
	}
	return WriteTempFile(t, "test.yaml", data)
}

// WriteTempFile writes data to name inside a fresh temporary directory.
func WriteTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}
	return tmpFile
}
