package merger

import (
	"errors"
	"maps"
	"slices"

	"github.com/erraggy/oasmerge/parser"
)

// Option is a function that configures a merge operation
type Option func(*mergeConfig) error

type mergeConfig struct {
	config  *Config
	sources []Source
	logger  parser.Logger
}

// MergeWithOptions merges documents using functional options.
//
// Example:
//
//	result, err := merger.MergeWithOptions(
//	    merger.WithConfig(merger.Config{Info: merger.Info{Title: "API", Version: "1.0.0"}}),
//	    merger.WithSource(users, merger.SourceConfig{Name: "users", PathPrefix: "/users"}),
//	    merger.WithSource(billing, merger.SourceConfig{Name: "billing", PathPrefix: "/billing"}),
//	)
func MergeWithOptions(opts ...Option) (*Result, error) {
	cfg := &mergeConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.config == nil {
		return nil, errors.New("merger: WithConfig is required")
	}
	m := New(*cfg.config)
	m.Logger = cfg.logger
	return m.Merge(cfg.sources)
}

// WithConfig sets the merge configuration.
func WithConfig(c Config) Option {
	return func(cfg *mergeConfig) error {
		cfg.config = &c
		return nil
	}
}

// WithSources appends sources in order.
func WithSources(sources ...Source) Option {
	return func(cfg *mergeConfig) error {
		cfg.sources = append(cfg.sources, sources...)
		return nil
	}
}

// WithSource appends one parsed document with its source configuration.
func WithSource(doc *parser.Document, sc SourceConfig) Option {
	return func(cfg *mergeConfig) error {
		if doc == nil {
			return errors.New("merger: source document cannot be nil")
		}
		cfg.sources = append(cfg.sources, Source{Document: doc, Config: sc})
		return nil
	}
}

// WithLogger sets a structured logger for debug output.
// By default, logging is disabled.
func WithLogger(l parser.Logger) Option {
	return func(cfg *mergeConfig) error {
		cfg.logger = l
		return nil
	}
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
