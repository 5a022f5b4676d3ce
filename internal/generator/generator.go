// Package generator turns project configurations into documentation files.
package generator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/projdoc/internal/collector"
	"github.com/temirov/projdoc/internal/config"
	"github.com/temirov/projdoc/internal/language"
	"github.com/temirov/projdoc/internal/markdown"
	"github.com/temirov/projdoc/internal/tokenizer"
	"github.com/temirov/projdoc/internal/types"
	"github.com/temirov/projdoc/internal/utils"
)

var (
	// ErrConfigLoad classifies a project configuration that is missing or malformed.
	ErrConfigLoad = errors.New("project configuration load failed")
	// ErrOutputWrite classifies a generated document that could not be persisted.
	ErrOutputWrite = errors.New("documentation output write failed")
)

const (
	outputDirectoryPermissions = 0o755
	outputFilePermissions      = 0o644
	temporaryOutputPattern     = ".projdoc-*.tmp"

	errorConfigLoadFormat    = "%w: %w"
	errorCollectFormat       = "collecting files for project %s: %w"
	errorOutputWriteFormat   = "%w: %s: %w"
	errorProjectFailedFormat = "project configuration %s: %w"

	logProcessingConfiguration = "processing project configuration"
	logLoadedConfiguration     = "loaded project configuration"
	logCollectedFiles          = "collected project files"
	logGeneratedDocumentation  = "generated documentation"
	logProjectFailed           = "project documentation failed"
	logTokenCountFailed        = "token count failed"
)

// Options configures a Generator.
type Options struct {
	OutputDirectory string
	Languages       language.Table
	TokenCounter    tokenizer.Counter
	TokenModel      string
}

// Result is a successfully generated project document.
type Result struct {
	Summary  types.ProjectSummary
	Document string
}

// Generator builds and persists project documentation one project at a time.
type Generator struct {
	logger  *zap.Logger
	options Options
}

// New returns a Generator. A nil logger discards log output.
func New(logger *zap.Logger, options Options) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{logger: logger, options: options}
}

// Run generates every configuration in order. A failing project is logged and skipped;
// the returned error joins all project failures and is nil when every project succeeded.
func (generator *Generator) Run(configurationPaths []string) ([]Result, error) {
	var results []Result
	var failures []error
	for _, configurationPath := range configurationPaths {
		result, projectError := generator.GenerateProject(configurationPath)
		if projectError != nil {
			generator.logger.Error(logProjectFailed, zap.String("configuration", configurationPath), zap.Error(projectError))
			failures = append(failures, fmt.Errorf(errorProjectFailedFormat, configurationPath, projectError))
			continue
		}
		results = append(results, result)
	}
	return results, errors.Join(failures...)
}

// GenerateProject loads one configuration, builds its document and writes it to the output directory.
// Nothing is written when any step fails.
func (generator *Generator) GenerateProject(configurationPath string) (Result, error) {
	generator.logger.Info(logProcessingConfiguration, zap.String("configuration", configurationPath))
	project, loadError := config.LoadProjectSpec(configurationPath)
	if loadError != nil {
		return Result{}, fmt.Errorf(errorConfigLoadFormat, ErrConfigLoad, loadError)
	}
	generator.logger.Info(logLoadedConfiguration, zap.String("project", project.Name), zap.String("root", project.Root))

	document, summary, documentError := generator.Document(project)
	if documentError != nil {
		return Result{}, documentError
	}

	outputPath := filepath.Join(generator.options.OutputDirectory, project.OutputFile)
	if writeError := writeFileAtomically(outputPath, document); writeError != nil {
		return Result{}, fmt.Errorf(errorOutputWriteFormat, ErrOutputWrite, outputPath, writeError)
	}
	summary.OutputPath = outputPath
	generator.logger.Info(logGeneratedDocumentation, summaryFields(summary)...)
	return Result{Summary: summary, Document: document}, nil
}

// Document collects the project's files and assembles its Markdown document without writing it.
func (generator *Generator) Document(project types.ProjectSpec) (string, types.ProjectSummary, error) {
	collectedFiles, collectError := collector.Collect(project.Root, project.Files, project.Directories)
	if collectError != nil {
		return "", types.ProjectSummary{}, fmt.Errorf(errorCollectFormat, project.Name, collectError)
	}

	summary := types.ProjectSummary{ProjectName: project.Name, TotalFiles: len(collectedFiles)}
	for _, collectedFile := range collectedFiles {
		summary.TotalBytes += int64(len(collectedFile.Content))
	}
	generator.logger.Info(logCollectedFiles,
		zap.String("project", project.Name),
		zap.Int("files", summary.TotalFiles),
		zap.String("size", utils.FormatFileSize(summary.TotalBytes)),
	)

	document := markdown.Assemble(project.Name, collectedFiles, generator.options.Languages, project.Root)

	countResult, countError := tokenizer.CountDocument(generator.options.TokenCounter, document)
	if countError != nil {
		generator.logger.Warn(logTokenCountFailed, zap.String("project", project.Name), zap.Error(countError))
	} else if countResult.Counted {
		summary.Tokens = countResult.Tokens
		summary.Model = generator.options.TokenModel
	}
	return document, summary, nil
}

// summaryFields converts a project summary into structured log fields.
func summaryFields(summary types.ProjectSummary) []zap.Field {
	fields := []zap.Field{
		zap.String("project", summary.ProjectName),
		zap.String("output", summary.OutputPath),
		zap.Int("files", summary.TotalFiles),
		zap.String("size", utils.FormatFileSize(summary.TotalBytes)),
	}
	if summary.Model != "" {
		fields = append(fields, zap.Int("tokens", summary.Tokens), zap.String("model", summary.Model))
	}
	return fields
}

// writeFileAtomically writes content to a temporary file next to outputPath and renames it into place.
func writeFileAtomically(outputPath string, content string) (err error) {
	outputDirectory := filepath.Dir(outputPath)
	if makeDirError := os.MkdirAll(outputDirectory, outputDirectoryPermissions); makeDirError != nil {
		return makeDirError
	}
	temporaryFile, createError := os.CreateTemp(outputDirectory, temporaryOutputPattern)
	if createError != nil {
		return createError
	}
	temporaryPath := temporaryFile.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(temporaryPath)
		}
	}()

	if _, writeError := temporaryFile.WriteString(content); writeError != nil {
		_ = temporaryFile.Close()
		return writeError
	}
	if closeError := temporaryFile.Close(); closeError != nil {
		return closeError
	}
	if chmodError := os.Chmod(temporaryPath, outputFilePermissions); chmodError != nil {
		return chmodError
	}
	return os.Rename(temporaryPath, outputPath)
}
