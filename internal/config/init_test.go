package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/projdoc/internal/language"
	"github.com/temirov/projdoc/internal/utils"
)

func TestInitializeConfigurationCreatesLocalFile(t *testing.T) {
	workingDirectory := t.TempDir()
	options := InitOptions{WorkingDirectory: workingDirectory, Target: InitTargetLocal}
	paths, err := InitializeConfiguration(options)
	if err != nil {
		t.Fatalf("InitializeConfiguration error: %v", err)
	}
	expectedPath := filepath.Join(workingDirectory, utils.ConfigFileName)
	if len(paths) != 1 || paths[0] != expectedPath {
		t.Fatalf("expected path %s, got %v", expectedPath, paths)
	}
	content, readErr := os.ReadFile(expectedPath)
	if readErr != nil {
		t.Fatalf("read config: %v", readErr)
	}
	if !strings.Contains(string(content), "projects_directory:") {
		t.Fatalf("unexpected configuration content: %s", string(content))
	}
}

func TestInitializeConfigurationHonorsGlobalTarget(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	t.Setenv("USERPROFILE", homeDir)
	paths, err := InitializeConfiguration(InitOptions{Target: InitTargetGlobal, WorkingDirectory: t.TempDir(), Force: true})
	if err != nil {
		t.Fatalf("InitializeConfiguration error: %v", err)
	}
	if len(paths) != 1 || !strings.HasPrefix(paths[0], homeDir) {
		t.Fatalf("expected configuration under home dir, got %v", paths)
	}
	if _, statErr := os.Stat(paths[0]); statErr != nil {
		t.Fatalf("expected file to exist at %s: %v", paths[0], statErr)
	}
}

func TestInitializeConfigurationPreventsOverwriteWithoutForce(t *testing.T) {
	workingDirectory := t.TempDir()
	path := filepath.Join(workingDirectory, utils.ConfigFileName)
	if err := os.WriteFile(path, []byte("existing"), 0o600); err != nil {
		t.Fatalf("write seed config: %v", err)
	}
	_, err := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory, Target: InitTargetLocal, Force: false})
	if err == nil {
		t.Fatalf("expected error when configuration already exists")
	}
	content, readErr := os.ReadFile(path)
	if readErr != nil || string(content) != "existing" {
		t.Fatalf("existing configuration was modified: %q %v", content, readErr)
	}
}

func TestInitializeConfigurationScaffoldsLoadableFiles(t *testing.T) {
	workingDirectory := t.TempDir()
	paths, err := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory, Scaffold: true})
	if err != nil {
		t.Fatalf("InitializeConfiguration error: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("expected 3 written files, got %v", paths)
	}

	table, loadErr := language.Load(filepath.Join(workingDirectory, DefaultLanguagesFile))
	if loadErr != nil {
		t.Fatalf("load scaffolded languages: %v", loadErr)
	}
	if table["rs"] != "Rust" {
		t.Fatalf("expected rs to map to Rust, got %q", table["rs"])
	}

	configurations, discoverErr := DiscoverProjectConfigurations(filepath.Join(workingDirectory, DefaultProjectsDirectory))
	if discoverErr != nil || len(configurations) != 1 {
		t.Fatalf("expected one example project, got %v (%v)", configurations, discoverErr)
	}
	project, projectErr := LoadProjectSpec(configurations[0])
	if projectErr != nil {
		t.Fatalf("load example project: %v", projectErr)
	}
	if project.Name != "Example" || project.OutputFile != "example.md" {
		t.Fatalf("unexpected example project: %+v", project)
	}
}
