package merger

import (
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/oasmerge/oaserrors"
)

// Strategy selects how differing schemas registered under the same name
// are resolved.
type Strategy string

const (
	// StrategyRename registers the later schema as "<source>_<name>",
	// adding a numeric suffix when that name is taken too.
	StrategyRename Strategy = "rename"
	// StrategyFirstWins keeps the first schema and points the later
	// source's references at it.
	StrategyFirstWins Strategy = "first-wins"
	// StrategyFail aborts the merge.
	StrategyFail Strategy = "fail"
)

// DefaultStrategy is used when Config.SchemaConflict is empty.
const DefaultStrategy = StrategyRename

// DefaultOpenAPIVersion is the "openapi" value of merged documents.
const DefaultOpenAPIVersion = "3.0.3"

// ValidStrategies returns all valid strategy values.
func ValidStrategies() []string {
	return []string{string(StrategyRename), string(StrategyFirstWins), string(StrategyFail)}
}

// IsValid reports whether s is a known strategy.
func (s Strategy) IsValid() bool {
	return slices.Contains(ValidStrategies(), string(s))
}

// ParseStrategy converts a string into a Strategy. The empty string yields
// DefaultStrategy.
func ParseStrategy(s string) (Strategy, error) {
	if s == "" {
		return DefaultStrategy, nil
	}
	st := Strategy(s)
	if !st.IsValid() {
		return "", &oaserrors.ConfigError{
			Option:  "schemaConflict",
			Value:   s,
			Message: "must be one of " + strings.Join(ValidStrategies(), ", "),
		}
	}
	return st, nil
}

// Info is the output document's info block.
type Info struct {
	Title       string `yaml:"title" json:"title"`
	Version     string `yaml:"version" json:"version"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Server is one entry of the output server list.
type Server struct {
	URL         string `yaml:"url" json:"url"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Config describes the merged document. Source servers are never used;
// the output carries exactly Servers.
type Config struct {
	Info           Info     `yaml:"info" json:"info"`
	Servers        []Server `yaml:"servers,omitempty" json:"servers,omitempty"`
	SchemaConflict Strategy `yaml:"schemaConflict,omitempty" json:"schemaConflict,omitempty"`
	// OpenAPI overrides DefaultOpenAPIVersion when set.
	OpenAPI string `yaml:"openapi,omitempty" json:"openapi,omitempty"`
}

// strategy returns the effective conflict strategy.
func (c Config) strategy() Strategy {
	if c.SchemaConflict == "" {
		return DefaultStrategy
	}
	return c.SchemaConflict
}

// Validate reports every missing required field in a single
// *oaserrors.ConfigError. Invalid values are reported before missing ones.
func (c Config) Validate() error {
	return validate(c, nil, false)
}

// validate checks cfg and, when checkSources is set, the source list.
func validate(cfg Config, sources []Source, checkSources bool) error {
	if cfg.SchemaConflict != "" && !cfg.SchemaConflict.IsValid() {
		return &oaserrors.ConfigError{
			Option:  "schemaConflict",
			Value:   string(cfg.SchemaConflict),
			Message: "must be one of " + strings.Join(ValidStrategies(), ", "),
		}
	}

	var missing []string
	if strings.TrimSpace(cfg.Info.Title) == "" {
		missing = append(missing, "info.title")
	}
	if strings.TrimSpace(cfg.Info.Version) == "" {
		missing = append(missing, "info.version")
	}
	for i, s := range cfg.Servers {
		if strings.TrimSpace(s.URL) == "" {
			missing = append(missing, fmt.Sprintf("servers[%d].url", i))
		}
	}
	if checkSources {
		if len(sources) == 0 {
			missing = append(missing, "sources")
		}
		for i, src := range sources {
			if src.Document == nil {
				missing = append(missing, fmt.Sprintf("sources[%d].document", i))
			}
		}
	}
	if len(missing) > 0 {
		return &oaserrors.ConfigError{Missing: missing}
	}
	return nil
}
