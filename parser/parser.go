package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasmerge/oaserrors"
)

// SourceFormat represents the format of the source OpenAPI specification file
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// ParseResult contains the parsed OpenAPI document and metadata about where
// it came from.
type ParseResult struct {
	// SourcePath is the path the document was read from. For byte and reader
	// input it is "ParseBytes.<format>" or "ParseReader.<format>".
	SourcePath string
	// SourceName identifies the document in merge warnings. It defaults to
	// the file stem of SourcePath for file input.
	SourceName string
	// SourceFormat is the format of the source (JSON or YAML)
	SourceFormat SourceFormat
	// Version is the document's "openapi" field
	Version string
	// Document is the parsed document
	Document *Document
	// LoadTime is the time taken to read the source
	LoadTime time.Duration
	// SourceSize is the size of the source in bytes
	SourceSize int64
}

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

type parseConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	sourceName *string
	validate   bool
	ctx        context.Context
	logger     Logger
}

// ParseWithOptions parses an OpenAPI 3.x document using functional options.
//
// Example:
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("openapi.yaml"),
//	    parser.WithValidation(true),
//	)
func ParseWithOptions(opts ...Option) (*ParseResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}
	log := OrNop(cfg.logger)

	var (
		data       []byte
		sourcePath string
		format     SourceFormat
	)
	start := time.Now()
	switch {
	case cfg.filePath != nil:
		sourcePath = *cfg.filePath
		data, err = os.ReadFile(sourcePath)
		if err != nil {
			return nil, &oaserrors.ParseError{Path: sourcePath, Message: "failed to read file", Cause: err}
		}
		format = detectFormatFromPath(sourcePath)
		if format == SourceFormatUnknown {
			format = detectFormatFromContent(data)
		}
	case cfg.reader != nil:
		data, err = io.ReadAll(cfg.reader)
		if err != nil {
			return nil, &oaserrors.ParseError{Path: "ParseReader", Message: "failed to read input", Cause: err}
		}
		format = detectFormatFromContent(data)
		sourcePath = "ParseReader." + string(format)
	default:
		data = cfg.bytes
		format = detectFormatFromContent(data)
		sourcePath = "ParseBytes." + string(format)
	}

	result := &ParseResult{
		SourcePath:   sourcePath,
		SourceFormat: format,
		LoadTime:     time.Since(start),
		SourceSize:   int64(len(data)),
	}
	switch {
	case cfg.sourceName != nil:
		result.SourceName = *cfg.sourceName
	case cfg.filePath != nil:
		result.SourceName = FileStem(sourcePath)
	}
	log.Debug("loaded source", "path", sourcePath, "format", format, "bytes", result.SourceSize)

	doc, version, err := decodeDocument(data, sourcePath)
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.Version = version

	if cfg.validate {
		if err := validateConformance(cfg.ctx, data, sourcePath, version, log); err != nil {
			return nil, err
		}
	}

	log.Debug("parsed document", "path", sourcePath, "version", version,
		"paths", len(doc.Paths), "schemas", schemaCount(doc))
	return result, nil
}

// decodeDocument decodes YAML or JSON into a Document after checking that the
// input declares a supported OpenAPI 3.x version.
func decodeDocument(data []byte, sourcePath string) (*Document, string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, "", &oaserrors.ParseError{Path: sourcePath, Message: "document is empty"}
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, "", &oaserrors.ParseError{Path: sourcePath, Message: "failed to parse YAML/JSON", Cause: err}
	}
	version, err := detectVersion(raw)
	if err != nil {
		return nil, "", &oaserrors.ParseError{Path: sourcePath, Message: err.Error()}
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, "", &oaserrors.ParseError{
			Path:    sourcePath,
			Message: fmt.Sprintf("failed to parse OAS %s document structure", version),
			Cause:   err,
		}
	}
	return &doc, version, nil
}

// detectVersion reads the "openapi" field and rejects anything that is not 3.x.
func detectVersion(raw map[string]any) (string, error) {
	if swagger, ok := raw["swagger"]; ok {
		return "", fmt.Errorf("unsupported Swagger %v document: only OpenAPI 3.x is supported", swagger)
	}
	v, ok := raw["openapi"]
	if !ok {
		return "", fmt.Errorf("missing required 'openapi' field")
	}
	version, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("'openapi' field must be a string, got %T", v)
	}
	if !IsSupportedVersion(version) {
		return "", fmt.Errorf("unsupported OpenAPI version %q: only 3.x is supported", version)
	}
	return version, nil
}

// IsSupportedVersion reports whether version is an OpenAPI 3.x version string.
func IsSupportedVersion(version string) bool {
	major, rest, ok := strings.Cut(version, ".")
	if !ok || major != "3" {
		return false
	}
	minor, _, _ := strings.Cut(rest, ".")
	return minor != "" && strings.Trim(minor, "0123456789") == ""
}

// FileStem returns the base name of path without its extension,
// e.g. "specs/users.yaml" -> "users".
func FileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func schemaCount(doc *Document) int {
	if doc.Components == nil {
		return 0
	}
	return len(doc.Components.Schemas)
}

// detectFormatFromPath detects the source format from a file path
func detectFormatFromPath(path string) SourceFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent attempts to detect the format from the content bytes.
// JSON starts with '{' or '[', anything else is treated as YAML.
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{ctx: context.Background()}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	sources := 0
	for _, set := range []bool{cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil} {
		if set {
			sources++
		}
	}
	switch {
	case sources == 0:
		return nil, fmt.Errorf("parser: must specify an input source (use WithFilePath, WithReader, or WithBytes)")
	case sources > 1:
		return nil, fmt.Errorf("parser: must specify exactly one input source")
	}
	return cfg, nil
}

// WithFilePath specifies a file path as the input source
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		if path == "" {
			return fmt.Errorf("parser: file path cannot be empty")
		}
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return fmt.Errorf("parser: reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			return fmt.Errorf("parser: bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithSourceName overrides the name the document is known by in merge warnings.
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		cfg.sourceName = &name
		return nil
	}
}

// WithValidation enables specification conformance validation.
// Default: false
func WithValidation(enabled bool) Option {
	return func(cfg *parseConfig) error {
		cfg.validate = enabled
		return nil
	}
}

// WithContext sets the context used during conformance validation.
func WithContext(ctx context.Context) Option {
	return func(cfg *parseConfig) error {
		if ctx == nil {
			return fmt.Errorf("parser: context cannot be nil")
		}
		cfg.ctx = ctx
		return nil
	}
}

// WithLogger sets a structured logger for debug output.
// By default, logging is disabled.
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = l
		return nil
	}
}
