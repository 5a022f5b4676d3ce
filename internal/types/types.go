// Package types defines every cross‑package data structure used by the projdoc CLI.
package types

const (
	CommandGenerate = "generate"
	CommandTree     = "tree"
	CommandInspect  = "inspect"
	CommandInit     = "init"

	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatXML  = "xml"

	// DefaultLanguageLabel is the fence tag used for extensions missing from the language table.
	DefaultLanguageLabel = "Text"
)

// ProjectSpec describes one documentation project as declared in its configuration file.
type ProjectSpec struct {
	Name        string   `yaml:"project_name"`
	Root        string   `yaml:"project_path"`
	OutputFile  string   `yaml:"output_file"`
	Files       []string `yaml:"files"`
	Directories []string `yaml:"directories"`
}

// CollectedFile is a file path joined onto the project root together with its full text content.
type CollectedFile struct {
	Path    string
	Content string
}

// FileSection is one "### File:" section recovered from a generated document.
type FileSection struct {
	Path     string `json:"path" xml:"path,attr"`
	Language string `json:"language" xml:"language,attr"`
	Content  string `json:"content" xml:"content"`
}

// DocumentOutline is the parsed structure of a generated document.
type DocumentOutline struct {
	ProjectName string        `json:"projectName" xml:"projectName"`
	Files       []FileSection `json:"files" xml:"files>file"`
	Tree        string        `json:"tree" xml:"tree"`
}

// ProjectSummary captures aggregate information about a generated document.
type ProjectSummary struct {
	ProjectName string
	OutputPath  string
	TotalFiles  int
	TotalBytes  int64
	Tokens      int
	Model       string
}
