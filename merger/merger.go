package merger

import (
	"fmt"
	"log/slog"

	"github.com/erraggy/oasmerge/parser"
)

// Phase is a stage of a merge run.
type Phase int

const (
	// PhaseInit is the state before any source has been processed.
	PhaseInit Phase = iota
	// PhaseSchema registers and deduplicates component schemas.
	PhaseSchema
	// PhasePath merges paths and the components they reference.
	PhasePath
	// PhaseTag merges tags.
	PhaseTag
	// PhaseSecurity merges security schemes.
	PhaseSecurity
	// PhaseTagGroup merges x-tagGroups.
	PhaseTagGroup
	// PhaseDone marks a completed merge.
	PhaseDone
	// PhaseFailed marks a merge aborted by a schema conflict.
	PhaseFailed
)

var phaseNames = [...]string{
	PhaseInit:     "init",
	PhaseSchema:   "schemas",
	PhasePath:     "paths",
	PhaseTag:      "tags",
	PhaseSecurity: "security",
	PhaseTagGroup: "tag-groups",
	PhaseDone:     "done",
	PhaseFailed:   "failed",
}

// String returns the phase name.
func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// SourceConfig describes how one source is merged.
type SourceConfig struct {
	// Name identifies the source in warnings and renamed schema names.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
	// PathPrefix is prepended to every path of the source.
	PathPrefix string `yaml:"pathPrefix,omitempty" json:"pathPrefix,omitempty"`
	// OperationIDPrefix is prepended to every operation id of the source.
	OperationIDPrefix string `yaml:"operationIdPrefix,omitempty" json:"operationIdPrefix,omitempty"`
}

// Source pairs a parsed document with its merge configuration.
type Source struct {
	Document *parser.Document
	Config   SourceConfig
}

// NewSource builds a Source from a parse result. An empty cfg.Name
// defaults to the result's SourceName.
func NewSource(result *parser.ParseResult, cfg SourceConfig) Source {
	if cfg.Name == "" {
		cfg.Name = result.SourceName
	}
	return Source{Document: result.Document, Config: cfg}
}

// Result is the outcome of a successful merge.
type Result struct {
	// Document is the merged document.
	Document *parser.Document
	// Warnings lists non-fatal issues in phase order.
	Warnings Warnings
	// Success is true for every returned result; warnings do not imply failure.
	Success bool
	// SourceCount is the number of merged sources.
	SourceCount int
	// DroppedComponents lists non-schema components ("parameters/Limit from
	// orders") whose later, differing definition was discarded in favor of
	// the first one.
	DroppedComponents []string
}

// Merger merges OpenAPI 3.x documents according to a Config.
//
// A Merger holds no per-merge state, so one value may run any number of
// merges, including concurrently.
type Merger struct {
	config Config
	// Logger receives debug output for phase transitions and conflict
	// decisions. If nil, logging is disabled.
	Logger parser.Logger
}

// New creates a Merger for cfg.
func New(cfg Config) *Merger {
	return &Merger{config: cfg}
}

// Merge merges sources with cfg. See [Merger.Merge].
func Merge(cfg Config, sources []Source) (*Result, error) {
	return New(cfg).Merge(sources)
}

// Merge validates the configuration and runs every phase over sources in
// order. A schema conflict under the fail strategy returns a nil result and
// a *oaserrors.SchemaConflictError. Configuration problems return a
// *oaserrors.ConfigError before any merge work starts.
func (m *Merger) Merge(sources []Source) (*Result, error) {
	if err := validate(m.config, sources, true); err != nil {
		return nil, fmt.Errorf("merger: %w", err)
	}
	r := newRun(m.config, m.log())
	return r.execute(uniqueSourceConfigs(sources, r.logger))
}

func (m *Merger) log() parser.Logger {
	return parser.OrNop(m.Logger)
}

// uniqueSourceConfigs fills in missing source names and suffixes repeated
// ones so that per-source rename maps never collide.
func uniqueSourceConfigs(sources []Source, logger parser.Logger) []Source {
	out := make([]Source, len(sources))
	used := make(map[string]struct{}, len(sources))
	for i, src := range sources {
		name := src.Config.Name
		if name == "" {
			name = fmt.Sprintf("source%d", i+1)
			logger.Warn("source has no name", "index", i, "using", name)
		}
		if _, dup := used[name]; dup {
			base := name
			for n := 2; ; n++ {
				name = fmt.Sprintf("%s_%d", base, n)
				if _, taken := used[name]; !taken {
					break
				}
			}
			logger.Warn("duplicate source name", "name", base, "using", name)
		}
		used[name] = struct{}{}
		src.Config.Name = name
		out[i] = src
	}
	return out
}

// run holds the state of a single merge.
type run struct {
	config Config
	logger parser.Logger
	phase  Phase

	schemas    *SchemaDeduplicator
	paths      *PathMerger
	components *componentMerger
	tags       *TagMerger
	security   *SecuritySchemeMerger
	tagGroups  *TagGroupMerger

	warnings Warnings
}

func newRun(cfg Config, logger parser.Logger) *run {
	return &run{
		config:     cfg,
		logger:     logger,
		phase:      PhaseInit,
		schemas:    NewSchemaDeduplicator(cfg.strategy(), logger),
		paths:      NewPathMerger(logger),
		components: newComponentMerger(logger),
		tags:       NewTagMerger(),
		security:   NewSecuritySchemeMerger(logger),
		tagGroups:  NewTagGroupMerger(),
	}
}

func (r *run) enter(p Phase) {
	r.logger.Debug("merge phase", "from", r.phase.String(), "to", p.String())
	r.phase = p
}

func (r *run) execute(sources []Source) (*Result, error) {
	r.enter(PhaseSchema)
	for _, src := range sources {
		var schemas map[string]*parser.Schema
		if src.Document.Components != nil {
			schemas = src.Document.Components.Schemas
		}
		warnings, err := r.schemas.AddSource(src.Config.Name, schemas)
		r.warnings = append(r.warnings, warnings...)
		if err != nil {
			r.enter(PhaseFailed)
			return nil, fmt.Errorf("merger: %w", err)
		}
	}

	r.enter(PhasePath)
	for _, src := range sources {
		renames := r.schemas.Renames(src.Config.Name)
		r.paths.AddPaths(src.Document.Paths, src.Config, renames)
		r.components.add(src.Document.Components, src.Config.Name, renames)
	}
	r.warnings = append(r.warnings, r.paths.Warnings()...)

	r.enter(PhaseTag)
	for _, src := range sources {
		r.tags.Add(src.Document.Tags)
	}

	r.enter(PhaseSecurity)
	for _, src := range sources {
		if src.Document.Components == nil {
			continue
		}
		for _, name := range sortedKeys(src.Document.Components.SecuritySchemes) {
			r.security.Add(name, src.Document.Components.SecuritySchemes[name], src.Config.Name)
		}
	}
	r.warnings = append(r.warnings, r.security.Warnings()...)

	r.enter(PhaseTagGroup)
	for _, src := range sources {
		r.tagGroups.Add(src.Document.TagGroups())
	}

	doc := r.assemble()
	r.enter(PhaseDone)
	r.logger.Info("merge complete",
		"sources", len(sources),
		"paths", len(doc.Paths),
		"schemas", len(r.schemas.Schemas()),
		"warnings", len(r.warnings))

	return &Result{
		Document:          doc,
		Warnings:          r.warnings,
		Success:           true,
		SourceCount:       len(sources),
		DroppedComponents: r.components.dropped,
	}, nil
}

// assemble builds the output document. Info and servers come from the
// configuration only.
func (r *run) assemble() *parser.Document {
	version := r.config.OpenAPI
	if version == "" {
		version = DefaultOpenAPIVersion
	}
	doc := &parser.Document{
		OpenAPI: version,
		Info: &parser.Info{
			Title:       r.config.Info.Title,
			Version:     r.config.Info.Version,
			Description: r.config.Info.Description,
		},
		Paths:     r.paths.Paths(),
		PathOrder: r.paths.Order(),
		Tags:      r.tags.Tags(),
	}
	for _, s := range r.config.Servers {
		doc.Servers = append(doc.Servers, &parser.Server{URL: s.URL, Description: s.Description})
	}

	components := &parser.Components{}
	if schemas := r.schemas.Schemas(); len(schemas) > 0 {
		components.Schemas = schemas
	}
	if schemes := r.security.Schemes(); len(schemes) > 0 {
		components.SecuritySchemes = schemes
	}
	r.components.apply(components)
	if !components.IsEmpty() {
		doc.Components = components
	}

	doc.SetTagGroups(r.tagGroups.Groups())
	return doc
}

// LogAttrs returns slog attributes summarizing the result.
func (r *Result) LogAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.Int("sources", r.SourceCount),
		slog.Int("warnings", len(r.Warnings)),
	}
	if r.Document != nil {
		attrs = append(attrs, slog.Int("paths", len(r.Document.Paths)))
		if r.Document.Components != nil {
			attrs = append(attrs, slog.Int("schemas", len(r.Document.Components.Schemas)))
		}
	}
	if len(r.DroppedComponents) > 0 {
		attrs = append(attrs, slog.Int("dropped_components", len(r.DroppedComponents)))
	}
	return attrs
}
