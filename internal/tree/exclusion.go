package tree

import (
	"sort"
	"strings"

	"github.com/temirov/dirtree/internal/utils"
)

// DefaultExcludedNames lists the segment names whose paths never enter a tree:
// version-control metadata, build output, dependency caches and OS metadata files.
var DefaultExcludedNames = []string{
	utils.NodeModulesDirectoryName,
	utils.GitDirectoryName,
	utils.DSStoreFileName,
	"dist",
	"build",
	"coverage",
	utils.GitIgnoreFileName,
	".next",
}

// ExclusionSet matches path segments by exact name.
type ExclusionSet struct {
	names map[string]struct{}
}

// NewExclusionSet returns the default exclusions extended with additional names.
// Blank names and trailing slashes in additional names are ignored.
func NewExclusionSet(additionalNames ...string) ExclusionSet {
	names := make(map[string]struct{}, len(DefaultExcludedNames)+len(additionalNames))
	for _, name := range DefaultExcludedNames {
		names[name] = struct{}{}
	}
	for _, name := range additionalNames {
		trimmed := strings.TrimSuffix(strings.TrimSpace(name), "/")
		if trimmed == "" {
			continue
		}
		names[trimmed] = struct{}{}
	}
	return ExclusionSet{names: names}
}

// Matches reports whether segment is an excluded name.
func (set ExclusionSet) Matches(segment string) bool {
	if set.names == nil {
		return false
	}
	_, excluded := set.names[segment]
	return excluded
}

// MatchesAny reports whether any of the segments is excluded.
func (set ExclusionSet) MatchesAny(segments []string) bool {
	for _, segment := range segments {
		if set.Matches(segment) {
			return true
		}
	}
	return false
}

// Names returns the excluded names in default-first order.
func (set ExclusionSet) Names() []string {
	ordered := make([]string, 0, len(set.names))
	seen := make(map[string]struct{}, len(set.names))
	for _, name := range DefaultExcludedNames {
		if _, ok := set.names[name]; ok {
			ordered = append(ordered, name)
			seen[name] = struct{}{}
		}
	}
	var extra []string
	for name := range set.names {
		if _, ok := seen[name]; !ok {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(ordered, extra...)
}
