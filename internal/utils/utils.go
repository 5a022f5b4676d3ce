// Package utils contains general helper functions used across the projdoc tool.
package utils

import (
	"path"
	"path/filepath"
	"strings"
)

const (
	// ConfigFileName is the application configuration file looked up in the working and global directories.
	ConfigFileName = ".projdoc.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding the global configuration.
	GlobalConfigDirectoryName = ".projdoc"

	pathSegmentSeparator = "/"
	currentDirectory     = "."
)

// RelativeSlashPath calculates the path of fullPath relative to root using forward slashes.
// Both paths are cleaned first and are expected to share the same form, absolute or relative.
// Returns the forward-slash form of fullPath if it does not live under root.
func RelativeSlashPath(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	cleanRoot := filepath.Clean(root)

	relativePath, relErr := filepath.Rel(cleanRoot, cleanPath)
	if relErr != nil || relativePath == ".." || strings.HasPrefix(relativePath, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(cleanPath)
	}
	return filepath.ToSlash(relativePath)
}

// SplitPathSegments splits a forward-slash path into its component names.
// Backslashes are normalized, and empty and "." segments are dropped.
func SplitPathSegments(slashPath string) []string {
	normalizedPath := strings.ReplaceAll(slashPath, "\\", pathSegmentSeparator)
	rawSegments := strings.Split(path.Clean(normalizedPath), pathSegmentSeparator)
	segments := make([]string, 0, len(rawSegments))
	for _, segment := range rawSegments {
		if segment == "" || segment == currentDirectory {
			continue
		}
		segments = append(segments, segment)
	}
	return segments
}

// DeduplicatePaths removes repeated project configuration paths while preserving order.
// The first occurrence of each unique path is kept.
func DeduplicatePaths(paths []string) []string {
	encounteredPaths := make(map[string]struct{})
	result := make([]string, 0, len(paths))
	for _, pathValue := range paths {
		if _, exists := encounteredPaths[pathValue]; !exists {
			encounteredPaths[pathValue] = struct{}{}
			result = append(result, pathValue)
		}
	}
	return result
}
