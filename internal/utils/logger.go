package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	standardOutputPath      = "stdout"
	logDirectoryPermissions = 0o755
)

// LoggerOptions selects the level and the optional log file of the application logger.
type LoggerOptions struct {
	Level    string
	FilePath string
}

// NewApplicationLogger constructs a zap logger configured for human-readable console output.
// When options.FilePath is set, entries are also appended to that file; its directory is created if missing.
func NewApplicationLogger(options LoggerOptions) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.DisableCaller = true
	config.DisableStacktrace = true
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	config.EncoderConfig.NameKey = ""
	config.EncoderConfig.CallerKey = ""
	config.EncoderConfig.MessageKey = "message"
	config.EncoderConfig.StacktraceKey = ""
	config.OutputPaths = []string{standardOutputPath}

	if level := strings.TrimSpace(options.Level); level != "" {
		parsedLevel, levelError := zapcore.ParseLevel(level)
		if levelError != nil {
			return nil, fmt.Errorf("parse log level %q: %w", level, levelError)
		}
		config.Level = zap.NewAtomicLevelAt(parsedLevel)
	}

	if options.FilePath != "" {
		if makeDirError := os.MkdirAll(filepath.Dir(options.FilePath), logDirectoryPermissions); makeDirError != nil {
			return nil, fmt.Errorf("create log directory for %s: %w", options.FilePath, makeDirError)
		}
		config.OutputPaths = append(config.OutputPaths, options.FilePath)
	}
	return config.Build()
}
