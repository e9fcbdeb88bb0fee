package merger

import (
	"slices"

	"github.com/erraggy/oasmerge/parser"
)

// TagMerger deduplicates tags by name. The first occurrence wins and later
// duplicates are dropped silently.
type TagMerger struct {
	tags []*parser.Tag
	seen map[string]struct{}
}

// NewTagMerger creates an empty tag merger.
func NewTagMerger() *TagMerger {
	return &TagMerger{seen: make(map[string]struct{})}
}

// Add appends the tags whose names have not been seen yet.
func (m *TagMerger) Add(tags []*parser.Tag) {
	for _, t := range tags {
		if t == nil {
			continue
		}
		if _, dup := m.seen[t.Name]; dup {
			continue
		}
		m.seen[t.Name] = struct{}{}
		m.tags = append(m.tags, cloneTag(t))
	}
}

// Tags returns the merged tags in first-seen order.
func (m *TagMerger) Tags() []*parser.Tag {
	return m.tags
}

// TagGroupMerger merges x-tagGroups entries by name. The first appearance
// of a group fixes its position; tags of same-named groups are unioned in
// first-seen order.
type TagGroupMerger struct {
	groups []parser.TagGroup
	index  map[string]int
	tags   []map[string]struct{}
}

// NewTagGroupMerger creates an empty tag group merger.
func NewTagGroupMerger() *TagGroupMerger {
	return &TagGroupMerger{index: make(map[string]int)}
}

// Add merges one source's groups.
func (m *TagGroupMerger) Add(groups []parser.TagGroup) {
	for _, g := range groups {
		i, ok := m.index[g.Name]
		if !ok {
			i = len(m.groups)
			m.index[g.Name] = i
			m.groups = append(m.groups, parser.TagGroup{Name: g.Name, Tags: []string{}})
			m.tags = append(m.tags, make(map[string]struct{}))
		}
		for _, tag := range g.Tags {
			if _, dup := m.tags[i][tag]; dup {
				continue
			}
			m.tags[i][tag] = struct{}{}
			m.groups[i].Tags = append(m.groups[i].Tags, tag)
		}
	}
}

// Groups returns a copy of the merged groups, or nil when no source
// contributed any.
func (m *TagGroupMerger) Groups() []parser.TagGroup {
	if len(m.groups) == 0 {
		return nil
	}
	out := make([]parser.TagGroup, len(m.groups))
	for i, g := range m.groups {
		out[i] = parser.TagGroup{Name: g.Name, Tags: slices.Clone(g.Tags)}
	}
	return out
}
