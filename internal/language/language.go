// Package language maps file extensions to the display names used as fence tags.
package language

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	textlanguage "golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/temirov/projdoc/internal/types"
)

const (
	extensionSeparator = "."

	errorReadTableFormat  = "reading language table %s: %w"
	errorParseTableFormat = "parsing language table %s: %w"
)

// Table maps lowercase extensions without the leading dot to language display names.
type Table map[string]string

type tableDocument struct {
	Languages map[string]string `yaml:"languages"`
}

var extensionCaser = cases.Lower(textlanguage.Und)

// Load reads a YAML language table of the form "languages: {rs: Rust}".
// Keys are normalized the same way Resolve normalizes its input.
//
// #nosec G304
func Load(tablePath string) (Table, error) {
	tableBytes, readError := os.ReadFile(tablePath)
	if readError != nil {
		return nil, fmt.Errorf(errorReadTableFormat, tablePath, readError)
	}
	var document tableDocument
	if parseError := yaml.Unmarshal(tableBytes, &document); parseError != nil {
		return nil, fmt.Errorf(errorParseTableFormat, tablePath, parseError)
	}
	table := make(Table, len(document.Languages))
	for extension, displayName := range document.Languages {
		table[normalizeExtension(extension)] = displayName
	}
	return table, nil
}

// Resolve returns the display name registered for extension, or types.DefaultLanguageLabel.
// Lookup is case-insensitive.
func Resolve(extension string, table Table) string {
	if displayName, found := table[normalizeExtension(extension)]; found {
		return displayName
	}
	return types.DefaultLanguageLabel
}

// Extension returns the lookup extension of filePath: the text after the last dot of the
// base name. A base name whose only dot is the leading one, such as ".gitignore", has none.
func Extension(filePath string) string {
	baseName := filepath.Base(filePath)
	separatorIndex := strings.LastIndex(baseName, extensionSeparator)
	if separatorIndex <= 0 {
		return ""
	}
	return baseName[separatorIndex+1:]
}

func normalizeExtension(extension string) string {
	return extensionCaser.String(strings.TrimPrefix(strings.TrimSpace(extension), extensionSeparator))
}
