// Package cli provides the command line interface.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/projdoc/internal/clipboard"
	"github.com/temirov/projdoc/internal/collector"
	"github.com/temirov/projdoc/internal/config"
	"github.com/temirov/projdoc/internal/generator"
	"github.com/temirov/projdoc/internal/language"
	"github.com/temirov/projdoc/internal/markdown"
	"github.com/temirov/projdoc/internal/output"
	"github.com/temirov/projdoc/internal/tokenizer"
	"github.com/temirov/projdoc/internal/treeview"
	"github.com/temirov/projdoc/internal/types"
	"github.com/temirov/projdoc/internal/utils"
)

const (
	configFlagName    = "config"
	projectsFlagName  = "projects"
	languagesFlagName = "languages"
	outputFlagName    = "output"
	logFileFlagName   = "log-file"
	logLevelFlagName  = "log-level"
	tokensFlagName    = "tokens"
	modelFlagName     = "model"
	clipboardFlagName = "clipboard"
	formatFlagName    = "format"
	globalFlagName    = "global"
	forceFlagName     = "force"
	scaffoldFlagName  = "scaffold"

	configFlagDescription    = "application configuration file (default ./" + utils.ConfigFileName + ")"
	projectsFlagDescription  = "directory of project configuration files"
	languagesFlagDescription = "language table mapping extensions to fence languages"
	outputFlagDescription    = "directory receiving generated documents"
	logFileFlagDescription   = "log file mirroring console output; empty disables it"
	logLevelFlagDescription  = "minimum log level (debug, info, warn, error)"
	tokensFlagDescription    = "estimate the token count of each document"
	modelFlagDescription     = "tokenizer model to use for token counting"
	clipboardFlagDescription = "copy generated documents to the clipboard"
	formatFlagDescription    = "output format (raw, json, xml)"
	globalFlagDescription    = "write the configuration to ~/" + utils.GlobalConfigDirectoryName
	forceFlagDescription     = "overwrite existing files"
	scaffoldFlagDescription  = "also write a language table and an example project"

	rootUse              = "projdoc [project-config...]"
	rootShortDescription = "generate Markdown documentation from project file sets"
	rootLongDescription  = `projdoc embeds the declared files of each project into a Markdown document
with language-tagged code fences and appends a tree of the included paths.
Without a subcommand it behaves like "generate".`
	versionTemplate = "projdoc version: {{.Version}}\n"

	generateUse              = types.CommandGenerate + " [project-config...]"
	generateAlias            = "g"
	generateShortDescription = "generate documentation for projects (" + generateAlias + ")"
	generateLongDescription  = `Generate one Markdown document per project configuration.
Configurations are discovered in the projects directory unless given as arguments.
A failing project is logged and skipped; the command fails if any project failed.`
	generateUsageExample = `  # Generate every project in ./projects
  projdoc generate

  # Generate one project with token estimates
  projdoc generate projects/api.yml --tokens`

	treeUse              = types.CommandTree + " <project-config>"
	treeAlias            = "t"
	treeShortDescription = "print the file tree of a project (" + treeAlias + ")"
	treeLongDescription  = `Collect the files of one project and print the tree section of its document.`

	inspectUse              = types.CommandInspect + " <document.md>"
	inspectAlias            = "i"
	inspectShortDescription = "show the outline of a generated document (" + inspectAlias + ")"
	inspectLongDescription  = `Parse a generated document and list its file sections and tree.
Use --format to select raw, json, or xml output.`

	initUse              = types.CommandInit
	initShortDescription = "write a default configuration"

	logNoProjects          = "no project configurations found"
	logRunCompleted        = "documentation run completed"
	logCopiedToClipboard   = "copied documents to clipboard"
	logTokenCounterSkipped = "token counting disabled"

	errorWorkingDirectoryFormat = "unable to determine working directory: %w"
	errorSettingsFormat         = "load settings: %w"
	errorLanguageTableFormat    = "load language table: %w"
	errorDiscoverFormat         = "discover project configurations: %w"
	errorClipboardFormat        = "copy documents to clipboard: %w"
	errorCollectFormat          = "collect project %s: %w"
	errorReadDocumentFormat     = "read document %s: %w"
	errorInspectDocumentFormat  = "inspect document %s: %w"
	errorWriteOutputFormat      = "write output: %w"
	errorProjectConfigFormat    = "%w: %w"
	errorFormatValueFormat      = "%w: %q"
	writtenFileFormat           = "wrote %s\n"
)

// dependencies holds the collaborators the commands reach outside the process with.
type dependencies struct {
	workingDirectory string
	clipboardCopier  clipboard.Copier
}

func (deps dependencies) resolveWorkingDirectory() (string, error) {
	if deps.workingDirectory != "" {
		return deps.workingDirectory, nil
	}
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return "", fmt.Errorf(errorWorkingDirectoryFormat, workingDirectoryError)
	}
	return workingDirectory, nil
}

// Execute runs the projdoc application.
func Execute() error {
	rootCommand := createRootCommand(dependencies{clipboardCopier: clipboard.NewService()})
	rootCommand.SetArgs(joinToggleArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command. The root runs generate when no subcommand is given.
func createRootCommand(deps dependencies) *cobra.Command {
	var rootSettings settingsFlags

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Version:      utils.GetApplicationVersion(),
		SilenceUsage: true,
		Args:         cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return runGenerate(command, arguments, rootSettings, deps)
		},
	}
	rootCommand.SetVersionTemplate(versionTemplate)
	registerSettingsFlags(rootCommand.Flags(), &rootSettings)
	rootCommand.AddCommand(
		createGenerateCommand(deps),
		createTreeCommand(),
		createInspectCommand(),
		createInitCommand(deps),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// settingsFlags stores the flags that override application configuration.
type settingsFlags struct {
	configFile        string
	projectsDirectory string
	languagesFile     string
	outputDirectory   string
	logFile           string
	logLevel          string
	tokensEnabled     bool
	tokenModel        string
	clipboardEnabled  bool
}

// registerSettingsFlags registers the configuration override flags on flagSet.
func registerSettingsFlags(flagSet *pflag.FlagSet, flags *settingsFlags) {
	flagSet.StringVar(&flags.configFile, configFlagName, "", configFlagDescription)
	flagSet.StringVar(&flags.projectsDirectory, projectsFlagName, config.DefaultProjectsDirectory, projectsFlagDescription)
	flagSet.StringVar(&flags.languagesFile, languagesFlagName, config.DefaultLanguagesFile, languagesFlagDescription)
	flagSet.StringVar(&flags.outputDirectory, outputFlagName, config.DefaultOutputDirectory, outputFlagDescription)
	flagSet.StringVar(&flags.logFile, logFileFlagName, config.DefaultLogFile, logFileFlagDescription)
	flagSet.StringVar(&flags.logLevel, logLevelFlagName, config.DefaultLogLevel, logLevelFlagDescription)
	registerToggleFlag(flagSet, &flags.tokensEnabled, tokensFlagName, tokensFlagDescription)
	flagSet.StringVar(&flags.tokenModel, modelFlagName, config.DefaultTokenizerModel, modelFlagDescription)
	registerToggleFlag(flagSet, &flags.clipboardEnabled, clipboardFlagName, clipboardFlagDescription)
}

// resolveSettings merges configuration files, explicitly set flags and defaults.
// Relative paths are resolved against workingDirectory.
func resolveSettings(command *cobra.Command, flags settingsFlags, workingDirectory string) (config.Settings, error) {
	applicationConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: flags.configFile,
	})
	if loadError != nil {
		return config.Settings{}, loadError
	}
	settings := applicationConfiguration.Resolve()

	changed := command.Flags().Changed
	if changed(projectsFlagName) {
		settings.ProjectsDirectory = flags.projectsDirectory
	}
	if changed(languagesFlagName) {
		settings.LanguagesFile = flags.languagesFile
	}
	if changed(outputFlagName) {
		settings.OutputDirectory = flags.outputDirectory
	}
	if changed(logFileFlagName) {
		settings.LogFile = flags.logFile
	}
	if changed(logLevelFlagName) {
		settings.LogLevel = flags.logLevel
	}
	if changed(tokensFlagName) {
		settings.TokensEnabled = flags.tokensEnabled
	}
	if changed(modelFlagName) {
		settings.TokenModel = flags.tokenModel
	}
	if changed(clipboardFlagName) {
		settings.Clipboard = flags.clipboardEnabled
	}

	settings.ProjectsDirectory = resolvePath(workingDirectory, settings.ProjectsDirectory)
	settings.LanguagesFile = resolvePath(workingDirectory, settings.LanguagesFile)
	settings.OutputDirectory = resolvePath(workingDirectory, settings.OutputDirectory)
	if settings.LogFile != "" {
		settings.LogFile = resolvePath(workingDirectory, settings.LogFile)
	}
	return settings, nil
}

func resolvePath(workingDirectory string, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workingDirectory, path)
}

// createGenerateCommand returns the generate subcommand.
func createGenerateCommand(deps dependencies) *cobra.Command {
	var generateSettings settingsFlags

	generateCommand := &cobra.Command{
		Use:     generateUse,
		Aliases: []string{generateAlias},
		Short:   generateShortDescription,
		Long:    generateLongDescription,
		Example: generateUsageExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return runGenerate(command, arguments, generateSettings, deps)
		},
	}
	registerSettingsFlags(generateCommand.Flags(), &generateSettings)
	return generateCommand
}

// runGenerate generates every requested or discovered project and optionally copies the documents.
func runGenerate(command *cobra.Command, arguments []string, flags settingsFlags, deps dependencies) error {
	workingDirectory, workingDirectoryError := deps.resolveWorkingDirectory()
	if workingDirectoryError != nil {
		return workingDirectoryError
	}
	settings, settingsError := resolveSettings(command, flags, workingDirectory)
	if settingsError != nil {
		return fmt.Errorf(errorSettingsFormat, settingsError)
	}

	logger, loggerError := utils.NewApplicationLogger(utils.LoggerOptions{Level: settings.LogLevel, FilePath: settings.LogFile})
	if loggerError != nil {
		return fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerError)
	}
	defer func() { _ = logger.Sync() }()

	languageTable, languageError := language.Load(settings.LanguagesFile)
	if languageError != nil {
		return fmt.Errorf(errorLanguageTableFormat, languageError)
	}

	configurationPaths := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		configurationPaths = append(configurationPaths, resolvePath(workingDirectory, argument))
	}
	configurationPaths = utils.DeduplicatePaths(configurationPaths)
	if len(configurationPaths) == 0 {
		discoveredPaths, discoverError := config.DiscoverProjectConfigurations(settings.ProjectsDirectory)
		if discoverError != nil {
			return fmt.Errorf(errorDiscoverFormat, discoverError)
		}
		configurationPaths = discoveredPaths
	}
	if len(configurationPaths) == 0 {
		logger.Warn(logNoProjects, zap.String("directory", settings.ProjectsDirectory))
		return nil
	}

	generatorOptions := generator.Options{
		OutputDirectory: settings.OutputDirectory,
		Languages:       languageTable,
	}
	if settings.TokensEnabled {
		counter, resolvedModel, counterError := tokenizer.NewCounter(tokenizer.Config{Model: settings.TokenModel})
		if counterError != nil {
			logger.Warn(logTokenCounterSkipped, zap.Error(counterError))
		} else {
			generatorOptions.TokenCounter = counter
			generatorOptions.TokenModel = resolvedModel
		}
	}

	results, runError := generator.New(logger, generatorOptions).Run(configurationPaths)
	logger.Info(logRunCompleted, zap.Int("projects", len(configurationPaths)), zap.Int("generated", len(results)))

	if settings.Clipboard && len(results) > 0 {
		documents := make([]string, 0, len(results))
		for _, result := range results {
			documents = append(documents, result.Document)
		}
		if copyError := clipboard.CopyDocuments(deps.clipboardCopier, documents); copyError != nil {
			runError = errors.Join(runError, fmt.Errorf(errorClipboardFormat, copyError))
		} else {
			logger.Info(logCopiedToClipboard, zap.Int("documents", len(documents)))
		}
	}
	return runError
}

// createTreeCommand returns the tree subcommand.
func createTreeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     treeUse,
		Aliases: []string{treeAlias},
		Short:   treeShortDescription,
		Long:    treeLongDescription,
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			project, loadError := config.LoadProjectSpec(arguments[0])
			if loadError != nil {
				return fmt.Errorf(errorProjectConfigFormat, generator.ErrConfigLoad, loadError)
			}
			collectedFiles, collectError := collector.Collect(project.Root, project.Files, project.Directories)
			if collectError != nil {
				return fmt.Errorf(errorCollectFormat, project.Name, collectError)
			}
			rendered := treeview.Render(markdown.TreeRootLabel(project.Root), markdown.RelativePaths(collectedFiles, project.Root))
			if _, writeError := fmt.Fprint(command.OutOrStdout(), rendered); writeError != nil {
				return fmt.Errorf(errorWriteOutputFormat, writeError)
			}
			return nil
		},
	}
}

// createInspectCommand returns the inspect subcommand.
func createInspectCommand() *cobra.Command {
	outputFormat := types.FormatRaw

	inspectCommand := &cobra.Command{
		Use:     inspectUse,
		Aliases: []string{inspectAlias},
		Short:   inspectShortDescription,
		Long:    inspectLongDescription,
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			if !output.IsSupportedFormat(outputFormat) {
				return fmt.Errorf(errorFormatValueFormat, output.ErrUnsupportedFormat, outputFormat)
			}
			documentPath := arguments[0]
			documentBytes, readError := os.ReadFile(documentPath)
			if readError != nil {
				return fmt.Errorf(errorReadDocumentFormat, documentPath, readError)
			}
			outline, inspectError := markdown.Inspect(documentBytes)
			if inspectError != nil {
				return fmt.Errorf(errorInspectDocumentFormat, documentPath, inspectError)
			}
			rendered, renderError := output.RenderOutline(outline, outputFormat)
			if renderError != nil {
				return renderError
			}
			if _, writeError := fmt.Fprintln(command.OutOrStdout(), rendered); writeError != nil {
				return fmt.Errorf(errorWriteOutputFormat, writeError)
			}
			return nil
		},
	}
	inspectCommand.Flags().StringVar(&outputFormat, formatFlagName, types.FormatRaw, formatFlagDescription)
	return inspectCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand(deps dependencies) *cobra.Command {
	var initOptions config.InitOptions
	var useGlobal bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			workingDirectory, workingDirectoryError := deps.resolveWorkingDirectory()
			if workingDirectoryError != nil {
				return workingDirectoryError
			}
			initOptions.WorkingDirectory = workingDirectory
			initOptions.Target = config.InitTargetLocal
			if useGlobal {
				initOptions.Target = config.InitTargetGlobal
			}
			writtenPaths, initError := config.InitializeConfiguration(initOptions)
			if initError != nil {
				return initError
			}
			for _, writtenPath := range writtenPaths {
				if _, writeError := fmt.Fprintf(command.OutOrStdout(), writtenFileFormat, writtenPath); writeError != nil {
					return fmt.Errorf(errorWriteOutputFormat, writeError)
				}
			}
			return nil
		},
	}
	initCommand.Flags().BoolVar(&useGlobal, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&initOptions.Force, forceFlagName, false, forceFlagDescription)
	initCommand.Flags().BoolVar(&initOptions.Scaffold, scaffoldFlagName, false, scaffoldFlagDescription)
	return initCommand
}
