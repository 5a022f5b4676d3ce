// Package treeview renders a flat list of relative file paths as a nested box-drawing tree.
//
// Paths are grouped by their containing directory into an index keyed by the directory's
// segment sequence. Keys are visited in lexicographic segment order, so a directory's own
// files (stored under the directory's key) always precede its subdirectories, and
// subdirectories appear in name order. Files keep the order in which they were listed.
package treeview

import (
	"slices"
	"strings"

	"github.com/temirov/projdoc/internal/utils"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	rootLineSuffix = ":"
	keySeparator   = "/"
)

// index maps a containing-directory segment sequence to the file names directly inside it.
type index struct {
	keys  [][]string
	files map[string][]string
}

// treeItem is one line of a rendered level: a file, or a directory to descend into.
type treeItem struct {
	name        string
	isDirectory bool
}

// Render returns "<rootLabel>:" followed by one line per directory and file in paths.
// Paths use forward slashes and are relative to the tree root. Rendering is deterministic.
func Render(rootLabel string, paths []string) string {
	var builder strings.Builder
	builder.WriteString(rootLabel + rootLineSuffix + "\n")
	pathIndex := buildIndex(paths)
	pathIndex.renderLevel(&builder, nil, "")
	return builder.String()
}

// buildIndex groups file names by the segment sequence of their containing directory.
func buildIndex(paths []string) index {
	pathIndex := index{files: map[string][]string{}}
	for _, slashPath := range paths {
		segments := utils.SplitPathSegments(slashPath)
		if len(segments) == 0 {
			continue
		}
		directorySegments := segments[:len(segments)-1]
		key := strings.Join(directorySegments, keySeparator)
		if _, known := pathIndex.files[key]; !known {
			pathIndex.keys = append(pathIndex.keys, slices.Clone(directorySegments))
		}
		pathIndex.files[key] = append(pathIndex.files[key], segments[len(segments)-1])
	}
	slices.SortFunc(pathIndex.keys, func(left, right []string) int {
		return slices.Compare(left, right)
	})
	return pathIndex
}

// itemsAt lists the entries directly below currentPath in rendering order.
func (pathIndex index) itemsAt(currentPath []string) []treeItem {
	var items []treeItem
	lastDirectoryName := ""
	hasDirectory := false
	for _, key := range pathIndex.keys {
		if len(key) < len(currentPath) || !slices.Equal(key[:len(currentPath)], currentPath) {
			continue
		}
		if len(key) == len(currentPath) {
			for _, fileName := range pathIndex.files[strings.Join(key, keySeparator)] {
				items = append(items, treeItem{name: fileName})
			}
			continue
		}
		childName := key[len(currentPath)]
		if hasDirectory && childName == lastDirectoryName {
			continue
		}
		items = append(items, treeItem{name: childName, isDirectory: true})
		lastDirectoryName = childName
		hasDirectory = true
	}
	return items
}

// renderLevel writes the entries below currentPath, descending into each directory as it is emitted.
func (pathIndex index) renderLevel(builder *strings.Builder, currentPath []string, prefix string) {
	items := pathIndex.itemsAt(currentPath)
	for itemIndex, item := range items {
		isLast := itemIndex == len(items)-1
		connector, childPrefix := treeBranchConnector, prefix+treeBranchPadding
		if isLast {
			connector, childPrefix = treeLastConnector, prefix+treeLastPadding
		}
		builder.WriteString(prefix + connector + item.name + "\n")
		if item.isDirectory {
			childPath := append(slices.Clone(currentPath), item.name)
			pathIndex.renderLevel(builder, childPath, childPrefix)
		}
	}
}
