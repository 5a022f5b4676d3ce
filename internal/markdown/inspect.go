package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/temirov/projdoc/internal/types"
)

var (
	// ErrNotProjectDocument is returned when the document has no "Project Documentation for" title.
	ErrNotProjectDocument = errors.New("not a project documentation document")
	// ErrMalformedDocument is returned when a file heading is not followed by its fenced block.
	ErrMalformedDocument = errors.New("malformed project documentation document")
)

const (
	titleHeadingLevel   = 1
	sectionHeadingLevel = 2
	fileHeadingLevel    = 3

	errorMissingFenceFormat = "%w: file section %q has no code block"
)

// Inspect parses a document produced by Assemble and recovers its project name,
// file sections and tree text. Content is returned without the newline Assemble
// appends before each closing fence.
func Inspect(document []byte) (types.DocumentOutline, error) {
	markdownParser := goldmark.New().Parser()
	documentNode := markdownParser.Parse(text.NewReader(document))

	var outline types.DocumentOutline
	titleFound := false
	inTreeSection := false
	var pendingSection *types.FileSection

	for node := documentNode.FirstChild(); node != nil; node = node.NextSibling() {
		switch typedNode := node.(type) {
		case *ast.Heading:
			if pendingSection != nil {
				return types.DocumentOutline{}, fmt.Errorf(errorMissingFenceFormat, ErrMalformedDocument, pendingSection.Path)
			}
			headingText := inlineText(typedNode, document)
			switch {
			case typedNode.Level == titleHeadingLevel && strings.HasPrefix(headingText, titlePrefix):
				outline.ProjectName = strings.TrimPrefix(headingText, titlePrefix)
				titleFound = true
			case typedNode.Level == sectionHeadingLevel:
				inTreeSection = headingText == treeSectionTitle
			case typedNode.Level == fileHeadingLevel && strings.HasPrefix(headingText, fileHeadingPrefix):
				pendingSection = &types.FileSection{Path: strings.TrimPrefix(headingText, fileHeadingPrefix)}
			}
		case *ast.FencedCodeBlock:
			blockContent := blockText(typedNode, document)
			if pendingSection != nil {
				pendingSection.Language = string(typedNode.Language(document))
				pendingSection.Content = strings.TrimSuffix(blockContent, "\n")
				outline.Files = append(outline.Files, *pendingSection)
				pendingSection = nil
				continue
			}
			if inTreeSection && outline.Tree == "" {
				outline.Tree = blockContent
			}
		}
	}

	if pendingSection != nil {
		return types.DocumentOutline{}, fmt.Errorf(errorMissingFenceFormat, ErrMalformedDocument, pendingSection.Path)
	}
	if !titleFound {
		return types.DocumentOutline{}, ErrNotProjectDocument
	}
	return outline, nil
}

// inlineText concatenates the literal text of an inline subtree, including code spans.
func inlineText(node ast.Node, source []byte) string {
	var buffer bytes.Buffer
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch typedChild := child.(type) {
		case *ast.Text:
			buffer.Write(typedChild.Segment.Value(source))
		case *ast.String:
			buffer.Write(typedChild.Value)
		default:
			buffer.WriteString(inlineText(child, source))
		}
	}
	return buffer.String()
}

// blockText returns the raw lines of a block node.
func blockText(node ast.Node, source []byte) string {
	var buffer bytes.Buffer
	lines := node.Lines()
	for lineIndex := 0; lineIndex < lines.Len(); lineIndex++ {
		line := lines.At(lineIndex)
		buffer.Write(line.Value(source))
	}
	return buffer.String()
}
