package merger

import (
	"maps"
	"reflect"
	"slices"

	"github.com/erraggy/oasmerge/internal/pathutil"
	"github.com/erraggy/oasmerge/parser"
)

// componentMerger carries the reusable components that paths reference
// besides schemas (parameters, responses, request bodies, headers, examples,
// links, callbacks). Each kind is first-wins by name; entries are cloned
// with the contributing source's schema renames applied.
type componentMerger struct {
	logger parser.Logger

	parameters    map[string]*parser.Parameter
	responses     map[string]*parser.Response
	requestBodies map[string]*parser.RequestBody
	headers       map[string]*parser.Header
	examples      map[string]*parser.Example
	links         map[string]*parser.Link
	callbacks     map[string]*parser.Callback

	// dropped lists "kind/name from source" for differing duplicates.
	dropped []string
}

func newComponentMerger(logger parser.Logger) *componentMerger {
	return &componentMerger{logger: parser.OrNop(logger)}
}

// add merges the non-schema components of one source.
func (m *componentMerger) add(c *parser.Components, sourceName string, renames map[string]string) {
	if c == nil {
		return
	}
	cl := newCloner(renames)
	m.parameters = addComponents(m, m.parameters, c.Parameters, pathutil.KindParameters, sourceName, cl.parameter)
	m.responses = addComponents(m, m.responses, c.Responses, pathutil.KindResponses, sourceName, cl.response)
	m.requestBodies = addComponents(m, m.requestBodies, c.RequestBodies, pathutil.KindRequestBodies, sourceName, cl.requestBody)
	m.headers = addComponents(m, m.headers, c.Headers, pathutil.KindHeaders, sourceName, cl.header)
	m.examples = addComponents(m, m.examples, c.Examples, pathutil.KindExamples, sourceName, cloneExample)
	m.links = addComponents(m, m.links, c.Links, pathutil.KindLinks, sourceName, cloneLink)
	m.callbacks = addComponents(m, m.callbacks, c.Callbacks, pathutil.KindCallbacks, sourceName, cl.callback)
}

// addComponents clones each incoming entry into dst unless the name is taken.
// A differing duplicate is logged, recorded in m.dropped and dropped; the
// source's operations then resolve to the first definition.
func addComponents[T any](m *componentMerger, dst, src map[string]T, kind, sourceName string, clone func(T) T) map[string]T {
	for _, name := range slices.Sorted(maps.Keys(src)) {
		cloned := clone(src[name])
		if existing, taken := dst[name]; taken {
			if !reflect.DeepEqual(existing, cloned) {
				m.logger.Warn("kept first component definition", "kind", kind, "name", name, "source", sourceName)
				m.dropped = append(m.dropped, kind+"/"+name+" from "+sourceName)
			}
			continue
		}
		if dst == nil {
			dst = make(map[string]T)
		}
		dst[name] = cloned
	}
	return dst
}

// apply copies the merged components into out.
func (m *componentMerger) apply(out *parser.Components) {
	out.Parameters = m.parameters
	out.Responses = m.responses
	out.RequestBodies = m.requestBodies
	out.Headers = m.headers
	out.Examples = m.examples
	out.Links = m.links
	out.Callbacks = m.callbacks
}
