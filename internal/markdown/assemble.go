// Package markdown assembles project documentation documents and parses them back.
package markdown

import (
	"path/filepath"
	"strings"

	"github.com/temirov/projdoc/internal/language"
	"github.com/temirov/projdoc/internal/treeview"
	"github.com/temirov/projdoc/internal/types"
	"github.com/temirov/projdoc/internal/utils"
)

const (
	titlePrefix        = "Project Documentation for "
	filesSectionTitle  = "Project Files"
	fileHeadingPrefix  = "File: "
	treeSectionTitle   = "Project File Tree"
	codeFence          = "```"
	codeSpanDelimiter  = "`"
	titleHeadingMarker = "# "
	sectionHeading     = "## "
	fileHeadingMarker  = "### "
)

// Assemble renders the documentation of one project: a section per collected file, in collection
// order, followed by the file tree. Relative paths are computed against root and use forward slashes.
// File content is embedded verbatim; content containing a closing fence is not escaped.
func Assemble(projectName string, files []types.CollectedFile, table language.Table, root string) string {
	var builder strings.Builder
	builder.WriteString(titleHeadingMarker + titlePrefix + projectName + "\n\n")
	builder.WriteString(sectionHeading + filesSectionTitle + "\n\n")

	relativePaths := RelativePaths(files, root)
	for fileIndex, collectedFile := range files {
		relativePath := relativePaths[fileIndex]
		languageName := language.Resolve(language.Extension(collectedFile.Path), table)

		builder.WriteString(fileHeadingMarker + fileHeadingPrefix + codeSpanDelimiter + relativePath + codeSpanDelimiter + "\n\n")
		builder.WriteString(codeFence + languageName + "\n")
		builder.WriteString(collectedFile.Content + "\n")
		builder.WriteString(codeFence + "\n\n")
	}

	builder.WriteString("\n" + sectionHeading + treeSectionTitle + "\n\n")
	builder.WriteString(codeFence + "\n")
	builder.WriteString(treeview.Render(TreeRootLabel(root), relativePaths))
	builder.WriteString(codeFence + "\n")
	return builder.String()
}

// RelativePaths returns the forward-slash path of every collected file relative to root, in collection order.
func RelativePaths(files []types.CollectedFile, root string) []string {
	relativePaths := make([]string, 0, len(files))
	for _, collectedFile := range files {
		relativePaths = append(relativePaths, utils.RelativeSlashPath(collectedFile.Path, root))
	}
	return relativePaths
}

// TreeRootLabel returns the label of the tree's root line: the base name of the project root.
func TreeRootLabel(root string) string {
	absoluteRoot, absoluteError := filepath.Abs(root)
	if absoluteError != nil {
		return filepath.Base(root)
	}
	return filepath.Base(absoluteRoot)
}
