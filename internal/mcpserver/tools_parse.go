package mcpserver

import (
	"context"
	"maps"
	"slices"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasmerge/parser"
)

type parseInput struct {
	Spec     specInput `json:"spec"               jsonschema:"The OAS document to parse"`
	Validate bool      `json:"validate,omitempty" jsonschema:"Validate the document against the OpenAPI 3.0 specification"`
	Full     bool      `json:"full,omitempty"     jsonschema:"Return the full parsed document instead of a summary"`
}

type parseOutput struct {
	Version         string   `json:"version"`
	Title           string   `json:"title"`
	SourceName      string   `json:"source_name,omitempty"`
	Format          string   `json:"format"`
	PathCount       int      `json:"path_count"`
	OperationCount  int      `json:"operation_count"`
	Paths           []string `json:"paths,omitempty"`
	OperationIDs    []string `json:"operation_ids,omitempty"`
	Schemas         []string `json:"schemas,omitempty"`
	SecuritySchemes []string `json:"security_schemes,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	TagGroups       []string `json:"tag_groups,omitempty"`
	FullDocument    string   `json:"full_document,omitempty"`
}

func handleParse(ctx context.Context, _ *mcp.CallToolRequest, input parseInput) (*mcp.CallToolResult, parseOutput, error) {
	result, err := input.Spec.resolve(ctx, input.Validate)
	if err != nil {
		return errResult(err), parseOutput{}, nil
	}
	doc := result.Document

	output := parseOutput{
		Version:    result.Version,
		SourceName: result.SourceName,
		Format:     string(result.SourceFormat),
		PathCount:  len(doc.Paths),
		Paths:      slices.Sorted(maps.Keys(doc.Paths)),
	}
	if doc.Info != nil {
		output.Title = doc.Info.Title
	}
	for _, path := range output.Paths {
		for _, op := range doc.Paths[path].Operations() {
			output.OperationCount++
			if op.OperationID != "" {
				output.OperationIDs = append(output.OperationIDs, op.OperationID)
			}
		}
	}
	slices.Sort(output.OperationIDs)
	if c := doc.Components; c != nil {
		output.Schemas = slices.Sorted(maps.Keys(c.Schemas))
		output.SecuritySchemes = slices.Sorted(maps.Keys(c.SecuritySchemes))
	}
	for _, tag := range doc.Tags {
		if tag != nil {
			output.Tags = append(output.Tags, tag.Name)
		}
	}
	for _, g := range doc.TagGroups() {
		output.TagGroups = append(output.TagGroups, g.Name)
	}

	if input.Full {
		data, err := parser.Marshal(doc, result.SourceFormat)
		if err != nil {
			return errResult(err), parseOutput{}, nil
		}
		output.FullDocument = string(data)
	}
	return nil, output, nil
}
