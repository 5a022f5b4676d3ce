// Package output renders the outline of a generated document in raw, JSON or XML form.
package output

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"

	"github.com/temirov/projdoc/internal/types"
	"github.com/temirov/projdoc/internal/utils"
)

// ErrUnsupportedFormat reports a format other than raw, json or xml.
var ErrUnsupportedFormat = errors.New("unsupported output format")

const (
	indentPrefix = ""
	indentSpacer = "  "

	separatorLine    = "----------------------------------------"
	xmlRootElement   = "document"
	projectLabel     = "Project: "
	fileCountLabel   = "Files: "
	fileLabel        = "File: "
	languageLabel    = "Language: "
	sizeLabel        = "Size: "
	treeLabel        = "Tree:"
	errorFormatValue = "%w: %q"
)

// IsSupportedFormat reports whether format is one of the recognized output formats.
func IsSupportedFormat(format string) bool {
	switch format {
	case types.FormatRaw, types.FormatJSON, types.FormatXML:
		return true
	default:
		return false
	}
}

// RenderOutline renders outline in the requested format.
func RenderOutline(outline types.DocumentOutline, format string) (string, error) {
	switch format {
	case types.FormatRaw:
		return RenderOutlineRaw(outline), nil
	case types.FormatJSON:
		return RenderOutlineJSON(outline)
	case types.FormatXML:
		return RenderOutlineXML(outline)
	default:
		return "", fmt.Errorf(errorFormatValue, ErrUnsupportedFormat, format)
	}
}

// RenderOutlineRaw lists every file section between separator lines, followed by the tree.
func RenderOutlineRaw(outline types.DocumentOutline) string {
	var buffer bytes.Buffer
	buffer.WriteString(projectLabel + outline.ProjectName + "\n")
	buffer.WriteString(fileCountLabel + strconv.Itoa(len(outline.Files)) + "\n\n")
	for _, section := range outline.Files {
		buffer.WriteString(fileLabel + section.Path + "\n")
		buffer.WriteString(languageLabel + section.Language + "\n")
		buffer.WriteString(sizeLabel + utils.FormatFileSize(int64(len(section.Content))) + "\n")
		buffer.WriteString(separatorLine + "\n")
		buffer.WriteString(section.Content + "\n")
		buffer.WriteString(separatorLine + "\n\n")
	}
	buffer.WriteString(treeLabel + "\n")
	buffer.WriteString(outline.Tree)
	return buffer.String()
}

// RenderOutlineJSON marshals the outline as indented JSON.
func RenderOutlineJSON(outline types.DocumentOutline) (string, error) {
	encoded, jsonEncodeError := json.MarshalIndent(outline, indentPrefix, indentSpacer)
	return string(encoded), jsonEncodeError
}

// RenderOutlineXML marshals the outline as an XML document rooted at <document>.
func RenderOutlineXML(outline types.DocumentOutline) (string, error) {
	wrapper := struct {
		XMLName xml.Name
		types.DocumentOutline
	}{
		XMLName:         xml.Name{Local: xmlRootElement},
		DocumentOutline: outline,
	}
	encoded, xmlMarshalError := xml.MarshalIndent(wrapper, indentPrefix, indentSpacer)
	if xmlMarshalError != nil {
		return "", xmlMarshalError
	}
	return xml.Header + string(encoded), nil
}
