package mcpserver

import (
	"context"
	"fmt"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasmerge/internal/fileutil"
	"github.com/erraggy/oasmerge/internal/pathutil"
	"github.com/erraggy/oasmerge/merger"
	"github.com/erraggy/oasmerge/parser"
)

type sourceInput struct {
	File              string `json:"file,omitempty"                jsonschema:"Path to an OAS file on disk"`
	Content           string `json:"content,omitempty"             jsonschema:"Inline OAS document content (JSON or YAML)"`
	Name              string `json:"name,omitempty"                jsonschema:"Source name used in warnings and renamed schema names. Defaults to the file stem or sourceN."`
	PathPrefix        string `json:"path_prefix,omitempty"         jsonschema:"Prefix prepended to every path of this source, e.g. /users"`
	OperationIDPrefix string `json:"operation_id_prefix,omitempty" jsonschema:"Prefix prepended to every operationId of this source"`
}

func (s sourceInput) spec() specInput {
	return specInput{File: s.File, Content: s.Content}
}

type mergeServer struct {
	URL         string `json:"url"                   jsonschema:"Server URL"`
	Description string `json:"description,omitempty" jsonschema:"Server description"`
}

type mergeInput struct {
	Sources        []sourceInput `json:"sources"                   jsonschema:"OAS 3.x documents to merge, in priority order"`
	Title          string        `json:"title,omitempty"           jsonschema:"info.title of the merged document. Defaults to OASMERGE_TITLE."`
	Version        string        `json:"version,omitempty"         jsonschema:"info.version of the merged document. Defaults to OASMERGE_VERSION."`
	Description    string        `json:"description,omitempty"     jsonschema:"info.description of the merged document"`
	Servers        []mergeServer `json:"servers,omitempty"         jsonschema:"Servers of the merged document. Defaults to OASMERGE_SERVERS."`
	SchemaConflict string        `json:"schema_conflict,omitempty" jsonschema:"How differing schemas with the same name are resolved: rename or first-wins or fail"`
	OpenAPI        string        `json:"openapi,omitempty"         jsonschema:"openapi version string of the merged document (default 3.0.3)"`
	Validate       *bool         `json:"validate,omitempty"        jsonschema:"Validate each source against the OpenAPI 3.0 specification before merging"`
	Format         string        `json:"format,omitempty"          jsonschema:"Inline output format: yaml or json (default yaml). Ignored when output is set."`
	Output         string        `json:"output,omitempty"          jsonschema:"File path to write the merged document. If omitted the result is returned inline."`
}

type mergeWarning struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Source   string `json:"source,omitempty"`
	Message  string `json:"message"`
}

type mergeOutput struct {
	SourceCount  int            `json:"source_count"`
	PathCount    int            `json:"path_count"`
	SchemaCount  int            `json:"schema_count"`
	WarningCount int            `json:"warning_count"`
	Warnings     []mergeWarning `json:"warnings,omitempty"`
	WrittenTo    string         `json:"written_to,omitempty"`
	Document     string         `json:"document,omitempty"`
	Summary      string         `json:"summary"`
}

// mergeConfig builds the merge configuration, falling back to the server
// defaults for every field the caller left empty.
func (input mergeInput) mergeConfig() merger.Config {
	mc := merger.Config{
		Info: merger.Info{
			Title:       firstNonEmpty(input.Title, cfg.Title),
			Version:     firstNonEmpty(input.Version, cfg.Version),
			Description: input.Description,
		},
		SchemaConflict: merger.Strategy(firstNonEmpty(input.SchemaConflict, cfg.SchemaConflict)),
		OpenAPI:        input.OpenAPI,
	}
	if len(input.Servers) > 0 {
		for _, s := range input.Servers {
			mc.Servers = append(mc.Servers, merger.Server{URL: s.URL, Description: s.Description})
		}
	} else {
		for _, url := range cfg.Servers {
			mc.Servers = append(mc.Servers, merger.Server{URL: url})
		}
	}
	return mc
}

func handleMerge(ctx context.Context, _ *mcp.CallToolRequest, input mergeInput) (*mcp.CallToolResult, mergeOutput, error) {
	if len(input.Sources) == 0 {
		return errResult(fmt.Errorf("at least 1 source is required")), mergeOutput{}, nil
	}
	if len(input.Sources) > cfg.MaxSources {
		return errResult(fmt.Errorf("too many sources: got %d, maximum is %d; set OASMERGE_MAX_SOURCES to increase",
			len(input.Sources), cfg.MaxSources)), mergeOutput{}, nil
	}
	format := parser.SourceFormatYAML
	switch input.Format {
	case "", "yaml":
	case "json":
		format = parser.SourceFormatJSON
	default:
		return errResult(fmt.Errorf("invalid format: %q; valid values: yaml, json", input.Format)), mergeOutput{}, nil
	}
	validate := cfg.Validate
	if input.Validate != nil {
		validate = *input.Validate
	}

	sources := make([]merger.Source, 0, len(input.Sources))
	var files []string
	for i, src := range input.Sources {
		result, err := src.spec().resolve(ctx, validate)
		if err != nil {
			return errResult(fmt.Errorf("sources[%d]: %w", i, err)), mergeOutput{}, nil
		}
		if src.File != "" {
			files = append(files, src.File)
		}
		sources = append(sources, merger.NewSource(result, merger.SourceConfig{
			Name:              src.Name,
			PathPrefix:        src.PathPrefix,
			OperationIDPrefix: src.OperationIDPrefix,
		}))
	}

	m := merger.New(input.mergeConfig())
	m.Logger = logger
	result, err := m.Merge(sources)
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}

	output := mergeOutput{
		SourceCount:  result.SourceCount,
		PathCount:    len(result.Document.Paths),
		WarningCount: len(result.Warnings),
	}
	if result.Document.Components != nil {
		output.SchemaCount = len(result.Document.Components.Schemas)
	}
	output.Warnings = makeSlice[mergeWarning](len(result.Warnings))
	for _, w := range result.Warnings {
		output.Warnings = append(output.Warnings, mergeWarning{
			Type:     string(w.Type),
			Severity: w.Severity.String(),
			Source:   w.Source,
			Message:  w.Message,
		})
	}
	output.Summary = buildMergeSummary(output)

	if input.Output != "" {
		cleanPath, pathErr := pathutil.SanitizeOutputPath(input.Output, files...)
		if pathErr != nil {
			return errResult(fmt.Errorf("invalid output path: %w", pathErr)), mergeOutput{}, nil
		}
		data, err := parser.Marshal(result.Document, parser.FormatFromPath(cleanPath))
		if err != nil {
			return errResult(err), mergeOutput{}, nil
		}
		if err := fileutil.WriteFile(cleanPath, data); err != nil {
			return errResult(fmt.Errorf("failed to write output file: %w", err)), mergeOutput{}, nil
		}
		output.WrittenTo = cleanPath
		return nil, output, nil
	}

	data, err := parser.Marshal(result.Document, format)
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}
	output.Document = string(data)
	return nil, output, nil
}

func buildMergeSummary(output mergeOutput) string {
	summary := "Merged " + formatCount(output.SourceCount, "source") + " into a document"
	summary += " with " + formatCount(output.PathCount, "path")
	summary += " and " + formatCount(output.SchemaCount, "schema") + "."
	if output.WarningCount > 0 {
		summary += " " + formatCount(output.WarningCount, "warning") + "."
	}
	return summary
}

func formatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
