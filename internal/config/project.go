package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/temirov/projdoc/internal/types"
)

// ErrInvalidProject is wrapped by LoadProjectSpec when a required key is missing.
var ErrInvalidProject = errors.New("invalid project configuration")

const (
	errorReadProjectFormat    = "reading project configuration %s: %w"
	errorParseProjectFormat   = "parsing project configuration %s: %w"
	errorMissingKeyFormat     = "%w: %s: missing %s"
	errorReadProjectDirFormat = "reading projects directory %s: %w"
)

var projectConfigurationExtensions = map[string]struct{}{
	".yml":  {},
	".yaml": {},
}

// LoadProjectSpec reads one project configuration file.
// project_name, project_path and output_file are required; files and directories may be omitted.
//
// #nosec G304
func LoadProjectSpec(configurationPath string) (types.ProjectSpec, error) {
	configurationBytes, readError := os.ReadFile(configurationPath)
	if readError != nil {
		return types.ProjectSpec{}, fmt.Errorf(errorReadProjectFormat, configurationPath, readError)
	}
	var project types.ProjectSpec
	if parseError := yaml.Unmarshal(configurationBytes, &project); parseError != nil {
		return types.ProjectSpec{}, fmt.Errorf(errorParseProjectFormat, configurationPath, parseError)
	}
	requiredValues := []struct {
		key   string
		value string
	}{
		{key: "project_name", value: project.Name},
		{key: "project_path", value: project.Root},
		{key: "output_file", value: project.OutputFile},
	}
	for _, required := range requiredValues {
		if strings.TrimSpace(required.value) == "" {
			return types.ProjectSpec{}, fmt.Errorf(errorMissingKeyFormat, ErrInvalidProject, configurationPath, required.key)
		}
	}
	return project, nil
}

// DiscoverProjectConfigurations lists the .yml and .yaml files directly inside projectsDirectory in name order.
func DiscoverProjectConfigurations(projectsDirectory string) ([]string, error) {
	directoryEntries, readDirectoryError := os.ReadDir(projectsDirectory)
	if readDirectoryError != nil {
		return nil, fmt.Errorf(errorReadProjectDirFormat, projectsDirectory, readDirectoryError)
	}
	var configurationPaths []string
	for _, directoryEntry := range directoryEntries {
		if directoryEntry.IsDir() {
			continue
		}
		if _, supported := projectConfigurationExtensions[strings.ToLower(filepath.Ext(directoryEntry.Name()))]; !supported {
			continue
		}
		configurationPaths = append(configurationPaths, filepath.Join(projectsDirectory, directoryEntry.Name()))
	}
	return configurationPaths, nil
}
