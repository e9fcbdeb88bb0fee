package merger

import (
	"fmt"
	"maps"
	"slices"

	"github.com/erraggy/oasmerge/oaserrors"
	"github.com/erraggy/oasmerge/parser"
)

// SchemaDeduplicator builds the merged schema table. It tracks every name
// registered so far, compares incoming schemas structurally, applies the
// conflict strategy and records, per source, where each original schema
// name ended up.
//
// A SchemaDeduplicator belongs to a single merge and is not safe for
// concurrent use.
type SchemaDeduplicator struct {
	strategy Strategy
	logger   parser.Logger

	schemas map[string]*parser.Schema
	// owners maps a registered name to the source that registered it.
	owners map[string]string
	// renames maps source -> original name -> final name.
	renames map[string]map[string]string
}

// NewSchemaDeduplicator creates an empty deduplicator for one merge.
// An empty strategy means DefaultStrategy.
func NewSchemaDeduplicator(strategy Strategy, logger parser.Logger) *SchemaDeduplicator {
	if strategy == "" {
		strategy = DefaultStrategy
	}
	return &SchemaDeduplicator{
		strategy: strategy,
		logger:   parser.OrNop(logger),
		schemas:  make(map[string]*parser.Schema),
		owners:   make(map[string]string),
		renames:  make(map[string]map[string]string),
	}
}

// AddSchema registers schema under name on behalf of sourceName and returns
// the name it is known by in the merged document.
//
// A free name is registered verbatim. A taken name whose schema is
// structurally equal is reused. Otherwise the strategy decides: rename
// registers the schema as "<source>_<name>" (then "_2", "_3", ... while
// taken) and returns a SchemaRenamed warning; first-wins keeps the existing
// schema and returns a SchemaConflict warning; fail returns a
// *oaserrors.SchemaConflictError.
func (d *SchemaDeduplicator) AddSchema(name string, schema *parser.Schema, sourceName string) (string, *Warning, error) {
	existing, taken := d.schemas[name]
	if !taken {
		d.register(name, schema, sourceName)
		d.record(sourceName, name, name)
		return name, nil, nil
	}
	if SchemasEqual(existing, schema) {
		d.logger.Debug("deduplicated schema", "schema", name, "source", sourceName, "owner", d.owners[name])
		d.record(sourceName, name, name)
		return name, nil, nil
	}

	switch d.strategy {
	case StrategyFail:
		return "", nil, &oaserrors.SchemaConflictError{Schema: name, Source: sourceName}

	case StrategyFirstWins:
		d.logger.Debug("kept first schema", "schema", name, "source", sourceName, "owner", d.owners[name])
		d.record(sourceName, name, name)
		return name, newSchemaConflictWarning(name, sourceName), nil

	default:
		finalName := d.renameTarget(name, schema, sourceName)
		if _, exists := d.schemas[finalName]; !exists {
			d.register(finalName, schema, sourceName)
		}
		d.record(sourceName, name, finalName)
		d.logger.Debug("renamed schema", "schema", name, "source", sourceName, "renamed_to", finalName)
		return finalName, newSchemaRenamedWarning(name, finalName, sourceName), nil
	}
}

// renameTarget returns the first candidate name that is free or already
// holds a structurally equal schema.
func (d *SchemaDeduplicator) renameTarget(name string, schema *parser.Schema, sourceName string) string {
	base := sourceName + "_" + name
	candidate := base
	for n := 2; ; n++ {
		existing, taken := d.schemas[candidate]
		if !taken || SchemasEqual(existing, schema) {
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d", base, n)
	}
}

func (d *SchemaDeduplicator) register(name string, schema *parser.Schema, sourceName string) {
	d.schemas[name] = schema
	d.owners[name] = sourceName
}

func (d *SchemaDeduplicator) record(sourceName, original, final string) {
	m, ok := d.renames[sourceName]
	if !ok {
		m = make(map[string]string)
		d.renames[sourceName] = m
	}
	m[original] = final
}

// AddSource registers all of a source's schemas in sorted name order, then
// rewrites the references inside the schemas that source contributed so
// they follow its renames. Warnings are returned in registration order.
func (d *SchemaDeduplicator) AddSource(sourceName string, schemas map[string]*parser.Schema) (Warnings, error) {
	var warnings Warnings
	for _, name := range slices.Sorted(maps.Keys(schemas)) {
		_, w, err := d.AddSchema(name, schemas[name], sourceName)
		if err != nil {
			return warnings, err
		}
		if w != nil {
			warnings = append(warnings, w)
		}
	}

	renames := d.renames[sourceName]
	c := newCloner(renames)
	rewritten := make(map[string]struct{}, len(renames))
	for _, final := range renames {
		if _, done := rewritten[final]; done || d.owners[final] != sourceName {
			continue
		}
		rewritten[final] = struct{}{}
		d.schemas[final] = c.schema(d.schemas[final])
	}
	return warnings, nil
}

// Schemas returns the merged schema table.
func (d *SchemaDeduplicator) Schemas() map[string]*parser.Schema {
	return d.schemas
}

// Renames returns a copy of sourceName's map from original schema name to
// final schema name. Every schema the source defined has an entry.
func (d *SchemaDeduplicator) Renames(sourceName string) map[string]string {
	return maps.Clone(d.renames[sourceName])
}
