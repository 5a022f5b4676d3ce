package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/temirov/projdoc/internal/utils"
)

// InitTarget identifies where configuration should be initialized.
type InitTarget string

const (
	// InitTargetLocal writes configuration into the working directory.
	InitTargetLocal InitTarget = "local"
	// InitTargetGlobal writes configuration into the global configuration directory.
	InitTargetGlobal InitTarget = "global"

	exampleProjectFileName = "example.yml"

	defaultConfigurationTemplate = `projects_directory: projects
languages_file: languages.yml
output_directory: output
log_file: logs/project_documentation.log
log_level: info
tokens:
  enabled: false
  model: gpt-4o
clipboard: false
`

	defaultLanguagesTemplate = `languages:
  c: C
  cpp: C++
  cs: C#
  css: CSS
  go: Go
  h: C
  html: HTML
  java: Java
  js: JavaScript
  json: JSON
  kt: Kotlin
  md: Markdown
  py: Python
  rb: Ruby
  rs: Rust
  sh: Shell
  sql: SQL
  toml: TOML
  ts: TypeScript
  yaml: YAML
  yml: YAML
`

	exampleProjectTemplate = `project_name: Example
project_path: .
output_file: example.md
files:
  - README.md
directories:
  - internal
`
)

// scaffoldFile is one file written by InitializeConfiguration.
type scaffoldFile struct {
	path    string
	content string
}

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	Target           InitTarget
	Force            bool
	Scaffold         bool
	WorkingDirectory string
}

// InitializeConfiguration writes the default configuration to the requested target and returns the written paths.
// With Scaffold set, a default language table and an example project configuration are also written
// into the working directory.
func InitializeConfiguration(options InitOptions) ([]string, error) {
	target := options.Target
	if target == "" {
		target = InitTargetLocal
	}
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		current, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("determine working directory for configuration: %w", err)
		}
		workingDirectory = current
	}

	var destinationPath string
	switch target {
	case InitTargetLocal:
		destinationPath = filepath.Join(workingDirectory, utils.ConfigFileName)
	case InitTargetGlobal:
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory for configuration: %w", err)
		}
		destinationPath = filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
	default:
		return nil, fmt.Errorf("unsupported init target %q", target)
	}

	templates := []scaffoldFile{{path: destinationPath, content: defaultConfigurationTemplate}}
	if options.Scaffold {
		templates = append(templates,
			scaffoldFile{path: filepath.Join(workingDirectory, DefaultLanguagesFile), content: defaultLanguagesTemplate},
			scaffoldFile{path: filepath.Join(workingDirectory, DefaultProjectsDirectory, exampleProjectFileName), content: exampleProjectTemplate},
		)
	}

	for _, template := range templates {
		if _, err := os.Stat(template.path); err == nil {
			if !options.Force {
				return nil, fmt.Errorf("file already exists at %s", template.path)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("inspect path %s: %w", template.path, err)
		}
	}

	writtenPaths := make([]string, 0, len(templates))
	for _, template := range templates {
		if err := os.MkdirAll(filepath.Dir(template.path), 0o755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", filepath.Dir(template.path), err)
		}
		if err := os.WriteFile(template.path, []byte(template.content), 0o600); err != nil {
			return nil, fmt.Errorf("write %s: %w", template.path, err)
		}
		writtenPaths = append(writtenPaths, template.path)
	}
	return writtenPaths, nil
}
