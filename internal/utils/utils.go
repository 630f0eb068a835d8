// Package utils contains general helper functions used across the dirtree tool.
package utils

import "strings"

// Well-known names shared by the exclusion set and the directory selector.
const (
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// GitIgnoreFileName is the name of the Git ignore file.
	GitIgnoreFileName = ".gitignore"
	// NodeModulesDirectoryName is the npm dependency cache directory.
	NodeModulesDirectoryName = "node_modules"
	// DSStoreFileName is the macOS Finder metadata file.
	DSStoreFileName = ".DS_Store"
)

// DeduplicatePatterns removes duplicate and blank patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern == "" {
			continue
		}
		if _, exists := encounteredPatterns[trimmedPattern]; !exists {
			encounteredPatterns[trimmedPattern] = struct{}{}
			result = append(result, trimmedPattern)
		}
	}
	return result
}

// FileExtension returns the lower-cased text after the last dot of name.
// A name without a dot yields the whole name lower-cased.
func FileExtension(name string) string {
	lastDot := strings.LastIndex(name, ".")
	return strings.ToLower(name[lastDot+1:])
}
