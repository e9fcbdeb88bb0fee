// Package config loads merge configuration files.
//
// A configuration file is YAML or JSON:
//
//	info:
//	  title: Platform API
//	  version: 3.0.0
//	servers:
//	  - url: https://api.example.com
//	schemaConflict: rename
//	output: merged.yaml
//	inputs:
//	  - path: users.yaml
//	    pathPrefix: /users
//	  - path: services/**/openapi.yaml
//	    operationIdPrefix: svc_
//
// Relative input and output paths resolve against the directory holding the
// configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasmerge/merger"
	"github.com/erraggy/oasmerge/oaserrors"
	"github.com/erraggy/oasmerge/parser"
)

// Input is one entry of the inputs list.
type Input struct {
	// Path is a file path or a glob pattern. "**" matches any number of
	// directories.
	Path              string `yaml:"path" json:"path"`
	Name              string `yaml:"name,omitempty" json:"name,omitempty"`
	PathPrefix        string `yaml:"pathPrefix,omitempty" json:"pathPrefix,omitempty"`
	OperationIDPrefix string `yaml:"operationIdPrefix,omitempty" json:"operationIdPrefix,omitempty"`
}

// File is a decoded configuration file.
type File struct {
	Info           merger.Info     `yaml:"info" json:"info"`
	Servers        []merger.Server `yaml:"servers,omitempty" json:"servers,omitempty"`
	SchemaConflict merger.Strategy `yaml:"schemaConflict,omitempty" json:"schemaConflict,omitempty"`
	OpenAPI        string          `yaml:"openapi,omitempty" json:"openapi,omitempty"`
	Output         string          `yaml:"output,omitempty" json:"output,omitempty"`
	Inputs         []Input         `yaml:"inputs" json:"inputs"`

	// baseDir resolves relative paths. Empty means the working directory.
	baseDir string
}

// Load reads and decodes the configuration file at path. It does not
// validate the result; call [File.Validate].
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304 - configuration path comes from the user
	if err != nil {
		return nil, &oaserrors.ConfigError{Option: "config", Value: path, Message: "failed to read file", Cause: err}
	}
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	f.baseDir = filepath.Dir(path)
	return f, nil
}

// Parse decodes a YAML or JSON configuration. Relative paths in the
// result resolve against the working directory.
func Parse(data []byte) (*File, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, &oaserrors.ConfigError{Option: "config", Message: "configuration is empty"}
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &oaserrors.ConfigError{Option: "config", Message: "failed to decode configuration", Cause: err}
	}
	return &f, nil
}

// Validate reports an invalid schemaConflict value, or every missing
// required field in one *oaserrors.ConfigError.
func (f *File) Validate() error {
	var missing []string
	if err := f.MergerConfig().Validate(); err != nil {
		var cfgErr *oaserrors.ConfigError
		if !errors.As(err, &cfgErr) || len(cfgErr.Missing) == 0 {
			return err
		}
		missing = append(missing, cfgErr.Missing...)
	}
	if len(f.Inputs) == 0 {
		missing = append(missing, "inputs")
	}
	for i, in := range f.Inputs {
		if strings.TrimSpace(in.Path) == "" {
			missing = append(missing, fmt.Sprintf("inputs[%d].path", i))
		}
	}
	if len(missing) > 0 {
		return &oaserrors.ConfigError{Missing: missing}
	}
	return nil
}

// MergerConfig returns the merge configuration described by f.
func (f *File) MergerConfig() merger.Config {
	return merger.Config{
		Info:           f.Info,
		Servers:        slices.Clone(f.Servers),
		SchemaConflict: f.SchemaConflict,
		OpenAPI:        f.OpenAPI,
	}
}

// OutputPath returns Output resolved against the configuration directory,
// or "" when no output is configured.
func (f *File) OutputPath() string {
	if f.Output == "" {
		return ""
	}
	return f.resolve(f.Output)
}

func (f *File) resolve(path string) string {
	if f.baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(f.baseDir, path)
}

// ExpandInputs resolves every input path and expands glob patterns in
// sorted order. Matches of a glob share the entry's prefixes and are named
// after their file stem. A pattern that matches nothing is an error.
func (f *File) ExpandInputs() ([]Input, error) {
	var out []Input
	for i, in := range f.Inputs {
		path := f.resolve(in.Path)
		if !isGlob(in.Path) {
			in.Path = path
			if in.Name == "" {
				in.Name = parser.FileStem(path)
			}
			out = append(out, in)
			continue
		}

		matches, err := doublestar.FilepathGlob(path, doublestar.WithFilesOnly())
		if err != nil {
			return nil, &oaserrors.ConfigError{Option: fmt.Sprintf("inputs[%d].path", i), Value: in.Path, Message: "invalid glob pattern", Cause: err}
		}
		if len(matches) == 0 {
			return nil, &oaserrors.ConfigError{Option: fmt.Sprintf("inputs[%d].path", i), Value: in.Path, Message: "pattern matched no files"}
		}
		if in.Name != "" && len(matches) > 1 {
			return nil, &oaserrors.ConfigError{
				Option:  fmt.Sprintf("inputs[%d].name", i),
				Value:   in.Name,
				Message: fmt.Sprintf("name cannot be shared by the %d files matching %s", len(matches), in.Path),
			}
		}
		slices.Sort(matches)
		for _, m := range matches {
			match := in
			match.Path = m
			if match.Name == "" {
				match.Name = parser.FileStem(m)
			}
			out = append(out, match)
		}
	}
	return out, nil
}

func isGlob(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}

// LoadSources expands the inputs and parses each file in order. Parse
// options such as parser.WithValidation are applied to every file.
func (f *File) LoadSources(opts ...parser.Option) ([]merger.Source, error) {
	inputs, err := f.ExpandInputs()
	if err != nil {
		return nil, err
	}
	sources := make([]merger.Source, 0, len(inputs))
	for _, in := range inputs {
		result, err := parser.ParseWithOptions(append([]parser.Option{parser.WithFilePath(in.Path)}, opts...)...)
		if err != nil {
			return nil, fmt.Errorf("config: loading %s: %w", in.Path, err)
		}
		sources = append(sources, merger.NewSource(result, merger.SourceConfig{
			Name:              in.Name,
			PathPrefix:        in.PathPrefix,
			OperationIDPrefix: in.OperationIDPrefix,
		}))
	}
	return sources, nil
}
