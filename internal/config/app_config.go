package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/projdoc/internal/utils"
)

const (
	// DefaultProjectsDirectory holds one YAML configuration per project.
	DefaultProjectsDirectory = "projects"
	// DefaultLanguagesFile maps extensions to fence languages.
	DefaultLanguagesFile = "languages.yml"
	// DefaultOutputDirectory receives the generated documents.
	DefaultOutputDirectory = "output"
	// DefaultLogFile mirrors console log output.
	DefaultLogFile = "logs/project_documentation.log"
	// DefaultLogLevel is the minimum level written by the logger.
	DefaultLogLevel = "info"
	// DefaultTokenizerModel is the model used for token estimation.
	DefaultTokenizerModel = "gpt-4o"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds run defaults read from configuration files.
// Unset values are left empty so that later sources and flags can override them.
type ApplicationConfiguration struct {
	ProjectsDirectory string             `mapstructure:"projects_directory"`
	LanguagesFile     string             `mapstructure:"languages_file"`
	OutputDirectory   string             `mapstructure:"output_directory"`
	LogFile           *string            `mapstructure:"log_file"`
	LogLevel          string             `mapstructure:"log_level"`
	Tokens            TokenConfiguration `mapstructure:"tokens"`
	Clipboard         *bool              `mapstructure:"clipboard"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// Settings is the fully resolved configuration of a generate run.
type Settings struct {
	ProjectsDirectory string
	LanguagesFile     string
	OutputDirectory   string
	LogFile           string
	LogLevel          string
	TokensEnabled     bool
	TokenModel        string
	Clipboard         bool
}

// LoadApplicationConfiguration loads configuration from global and local files.
// The global file lives in the user's home directory; the local file in the working
// directory, or at ExplicitFilePath when set, overrides it key by key.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath, false)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, explicit := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	localConfig, loadErr := loadConfigurationFromPath(localPath, explicit)
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	return merged.Merge(localConfig), nil
}

// resolveLocalConfigPath returns the local configuration path and whether it was requested explicitly.
func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, bool) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, true
		}
		return filepath.Join(workingDirectory, explicitPath), true
	}
	return filepath.Join(workingDirectory, utils.ConfigFileName), false
}

// loadConfigurationFromPath reads one configuration file. A missing file is an empty
// configuration unless it was requested explicitly.
func loadConfigurationFromPath(path string, required bool) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) && !required {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType("yaml")
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	if override.ProjectsDirectory != "" {
		result.ProjectsDirectory = override.ProjectsDirectory
	}
	if override.LanguagesFile != "" {
		result.LanguagesFile = override.LanguagesFile
	}
	if override.OutputDirectory != "" {
		result.OutputDirectory = override.OutputDirectory
	}
	if override.LogFile != nil {
		result.LogFile = cloneString(override.LogFile)
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	result.Tokens = result.Tokens.merge(override.Tokens)
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	return result
}

func (config TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := config
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

// Resolve fills every unset value with its default. An explicitly empty log_file disables file logging.
func (config ApplicationConfiguration) Resolve() Settings {
	settings := Settings{
		ProjectsDirectory: valueOrDefault(config.ProjectsDirectory, DefaultProjectsDirectory),
		LanguagesFile:     valueOrDefault(config.LanguagesFile, DefaultLanguagesFile),
		OutputDirectory:   valueOrDefault(config.OutputDirectory, DefaultOutputDirectory),
		LogFile:           DefaultLogFile,
		LogLevel:          valueOrDefault(config.LogLevel, DefaultLogLevel),
		TokenModel:        valueOrDefault(config.Tokens.Model, DefaultTokenizerModel),
	}
	if config.LogFile != nil {
		settings.LogFile = *config.LogFile
	}
	if config.Tokens.Enabled != nil {
		settings.TokensEnabled = *config.Tokens.Enabled
	}
	if config.Clipboard != nil {
		settings.Clipboard = *config.Clipboard
	}
	return settings
}

func valueOrDefault(value string, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
