package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasmerge/internal/fileutil"
)

// Marshal serializes doc in the given format. SourceFormatUnknown is
// treated as YAML.
//
// Paths are written in doc.PathOrder, followed by any remaining paths in
// sorted order. Every other mapping keeps the encoder's order. JSON output
// is produced from the same node tree so both formats agree on key order.
func Marshal(doc *Document, format SourceFormat) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("parser: cannot marshal nil document")
	}
	root, err := buildOrderedNode(doc)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to marshal YAML: %w", err)
	}
	if format != SourceFormatJSON {
		data, err := yaml.Marshal(root)
		if err != nil {
			return nil, fmt.Errorf("parser: failed to marshal YAML: %w", err)
		}
		return data, nil
	}

	var buf bytes.Buffer
	if err := marshalNodeAsJSON(&buf, root); err != nil {
		return nil, fmt.Errorf("parser: failed to marshal JSON: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("parser: failed to marshal JSON: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// buildOrderedNode encodes doc into a mapping node and reorders its paths.
func buildOrderedNode(doc *Document) (*yaml.Node, error) {
	var root yaml.Node
	if err := root.Encode(doc); err != nil {
		return nil, err
	}
	if paths := mappingValue(&root, "paths"); paths != nil {
		reorderMapping(paths, mergeKeyOrder(doc.PathOrder, extractKeyOrder(paths)))
	}
	return &root, nil
}

// mappingValue returns the value node stored under key, or nil.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// extractKeyOrder returns the keys of a mapping node in document order.
func extractKeyOrder(node *yaml.Node) []string {
	keys := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys = append(keys, node.Content[i].Value)
	}
	return keys
}

// mergeKeyOrder returns the keys of preferred that appear in present, then
// the remaining present keys sorted.
func mergeKeyOrder(preferred, present []string) []string {
	remaining := make(map[string]bool, len(present))
	for _, k := range present {
		remaining[k] = true
	}

	order := make([]string, 0, len(present))
	for _, k := range preferred {
		if remaining[k] {
			order = append(order, k)
			delete(remaining, k)
		}
	}
	var extra []string
	for _, k := range present {
		if remaining[k] {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	return append(order, extra...)
}

// reorderMapping rewrites the key/value pairs of node in the given key order.
func reorderMapping(node *yaml.Node, order []string) {
	pairs := make(map[string][2]*yaml.Node, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		pairs[node.Content[i].Value] = [2]*yaml.Node{node.Content[i], node.Content[i+1]}
	}
	content := make([]*yaml.Node, 0, len(node.Content))
	for _, k := range order {
		pair := pairs[k]
		content = append(content, pair[0], pair[1])
	}
	node.Content = content
}

// marshalNodeAsJSON writes node as compact JSON, keeping mapping key order.
func marshalNodeAsJSON(buf *bytes.Buffer, node *yaml.Node) error {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return marshalNodeAsJSON(buf, node.Content[0])

	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(node.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, node.Content[i].Value); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := marshalNodeAsJSON(buf, node.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range node.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := marshalNodeAsJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	case yaml.AliasNode:
		return marshalNodeAsJSON(buf, node.Alias)

	default:
		var v any
		if err := node.Decode(&v); err != nil {
			return err
		}
		return writeJSON(buf, v)
	}
}

// writeJSON marshals a value to JSON and writes it to the buffer.
func writeJSON(buf *bytes.Buffer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}

// WriteFile writes doc to path, choosing JSON for a ".json" extension and
// YAML otherwise. The file is created with owner-only permissions.
func WriteFile(doc *Document, path string) error {
	format := detectFormatFromPath(path)
	data, err := Marshal(doc, format)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFile(path, data); err != nil {
		return fmt.Errorf("parser: %w", err)
	}
	return nil
}

// FormatFromPath returns the output format implied by a file extension.
func FormatFromPath(path string) SourceFormat {
	return detectFormatFromPath(path)
}
