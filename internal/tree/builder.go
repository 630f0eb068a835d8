package tree

import (
	"strings"

	"github.com/temirov/dirtree/internal/types"
)

const (
	pathSegmentSeparator = "/"
	extensionMarker      = "."

	// FallbackRootName labels the root when no entry provides one.
	FallbackRootName = "Root"
)

// Builder builds trees from selected path entries using the configured exclusions.
type Builder struct {
	Exclusions ExclusionSet
}

// NewBuilder returns a Builder excluding the default names plus additionalExclusions.
func NewBuilder(additionalExclusions ...string) *Builder {
	return &Builder{Exclusions: NewExclusionSet(additionalExclusions...)}
}

// Build builds a tree with the default exclusions.
func Build(entries []types.PathEntry, rootName string) *Node {
	return NewBuilder().Build(entries, rootName)
}

// Build converts entries into a tree rooted at a folder named rootName.
//
// The first segment of every path is absorbed by the root. An entry with an
// excluded segment is skipped entirely. Existing nodes are reused without
// reclassification, so the first entry that creates a node decides its kind; a
// path continuing below a node already classified as a file adds nothing. New
// final segments containing a dot become files holding the entry's content.
// Malformed paths are ignored.
func (builder *Builder) Build(entries []types.PathEntry, rootName string) *Node {
	root := newFolder(rootName)
	for _, entry := range entries {
		segments := SplitPath(entry.Path)
		if len(segments) == 0 {
			continue
		}
		if builder.Exclusions.MatchesAny(segments) {
			continue
		}
		insertEntry(root, segments, entry.Content)
	}
	return root
}

func insertEntry(root *Node, segments []string, content types.ContentHandle) {
	current := root
	lastIndex := len(segments) - 1
	for segmentIndex := 1; segmentIndex <= lastIndex; segmentIndex++ {
		if !current.IsFolder() {
			return
		}
		segment := segments[segmentIndex]
		existing := current.Child(segment)
		if existing == nil {
			if segmentIndex == lastIndex && strings.Contains(segment, extensionMarker) {
				existing = newFile(segment, content)
			} else {
				existing = newFolder(segment)
			}
			current.appendChild(existing)
		}
		current = existing
	}
}

// SplitPath splits a slash-delimited path and drops empty segments.
func SplitPath(path string) []string {
	rawSegments := strings.Split(path, pathSegmentSeparator)
	segments := make([]string, 0, len(rawSegments))
	for _, segment := range rawSegments {
		if segment == "" {
			continue
		}
		segments = append(segments, segment)
	}
	return segments
}

// RootName returns the first segment of the first entry, or FallbackRootName.
func RootName(entries []types.PathEntry) string {
	if len(entries) == 0 {
		return FallbackRootName
	}
	segments := SplitPath(entries[0].Path)
	if len(segments) == 0 {
		return FallbackRootName
	}
	return segments[0]
}
