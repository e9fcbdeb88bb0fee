package merger

import (
	"maps"
	"net/http"
	"slices"

	"github.com/erraggy/oasmerge/internal/pathutil"
	"github.com/erraggy/oasmerge/parser"
)

// methodOrder fixes the order operations are visited in, so operation id
// collisions are reported deterministically.
var methodOrder = []string{
	http.MethodGet,
	http.MethodPut,
	http.MethodPost,
	http.MethodDelete,
	http.MethodOptions,
	http.MethodHead,
	http.MethodPatch,
	http.MethodTrace,
}

// PathMerger accumulates the merged path table across sources.
//
// Paths are prefixed per source, the first source to produce a final path
// keeps it, and every kept path item is deep-cloned with its schema
// references rewritten through that source's rename map. Operation ids are
// prefixed and checked for collisions, which are reported but not resolved.
//
// A PathMerger belongs to a single merge and is not safe for concurrent use.
type PathMerger struct {
	logger parser.Logger

	paths parser.Paths
	order []string
	// owners maps a final path to the source that contributed it.
	owners map[string]string
	// operationIDs maps a final operation id to the source that first used it.
	operationIDs map[string]string
	warnings     Warnings
}

// NewPathMerger creates an empty path merger for one merge.
func NewPathMerger(logger parser.Logger) *PathMerger {
	return &PathMerger{
		logger:       parser.OrNop(logger),
		paths:        make(parser.Paths),
		owners:       make(map[string]string),
		operationIDs: make(map[string]string),
	}
}

// AddPaths merges one source's paths in sorted path order. renames maps the
// source's original schema names to their final names; names missing from
// it are left as they are.
func (m *PathMerger) AddPaths(paths parser.Paths, src SourceConfig, renames map[string]string) {
	prefix := pathutil.NormalizePrefix(src.PathPrefix)
	c := newCloner(renames)

	for _, original := range slices.Sorted(maps.Keys(paths)) {
		item := paths[original]
		final := pathutil.JoinPrefix(prefix, original)

		if owner, exists := m.owners[final]; exists {
			m.logger.Debug("dropped conflicting path", "path", final, "source", src.Name, "owner", owner)
			m.warnings = append(m.warnings, newPathConflictWarning(final, src.Name))
			continue
		}

		clone := c.pathItem(item)
		if clone == nil {
			clone = &parser.PathItem{}
		}
		m.applyOperationIDs(clone, final, src)

		m.paths[final] = clone
		m.owners[final] = src.Name
		m.order = append(m.order, final)
	}
}

// applyOperationIDs prefixes the item's operation ids and records them in
// the global seen set. Collisions produce OperationIdConflict warnings;
// both operations keep their id.
func (m *PathMerger) applyOperationIDs(item *parser.PathItem, path string, src SourceConfig) {
	ops := item.Operations()
	for _, method := range methodOrder {
		op, ok := ops[method]
		if !ok || op.OperationID == "" {
			continue
		}
		op.OperationID = src.OperationIDPrefix + op.OperationID

		if owner, seen := m.operationIDs[op.OperationID]; seen {
			m.logger.Debug("duplicate operationId", "operation_id", op.OperationID,
				"path", path, "method", method, "source", src.Name, "owner", owner)
			m.warnings = append(m.warnings, newOperationIDConflictWarning(op.OperationID, method, path, src.Name))
			continue
		}
		m.operationIDs[op.OperationID] = src.Name
	}
}

// Paths returns the merged path table.
func (m *PathMerger) Paths() parser.Paths {
	return m.paths
}

// Order returns the final paths in the order they were added.
func (m *PathMerger) Order() []string {
	return slices.Clone(m.order)
}

// Warnings returns the warnings recorded so far, in order.
func (m *PathMerger) Warnings() Warnings {
	return m.warnings
}
