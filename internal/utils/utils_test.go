package utils_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/temirov/projdoc/internal/utils"
)

// projectRootName defines the directory used as a project root in path tests.
const projectRootName = "project"

// nestedSourcePath defines a file two levels below the project root.
const nestedSourcePath = "src/lib/main.rs"

// TestRelativeSlashPath verifies relativization against a project root.
func TestRelativeSlashPath(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		fullPath string
		root     string
		expected string
	}{
		{
			testName: "nested file",
			fullPath: filepath.Join(projectRootName, "src", "lib", "main.rs"),
			root:     projectRootName,
			expected: nestedSourcePath,
		},
		{
			testName: "file at root",
			fullPath: filepath.Join(projectRootName, "x.txt"),
			root:     projectRootName,
			expected: "x.txt",
		},
		{
			testName: "unclean root",
			fullPath: filepath.Join(projectRootName, "sub", "y.rs"),
			root:     projectRootName + string(filepath.Separator) + ".",
			expected: "sub/y.rs",
		},
		{
			testName: "outside root",
			fullPath: filepath.Join("elsewhere", "z.go"),
			root:     projectRootName,
			expected: "elsewhere/z.go",
		},
	}
	for _, testCase := range testCases {
		actual := utils.RelativeSlashPath(testCase.fullPath, testCase.root)
		if actual != testCase.expected {
			testingInstance.Errorf("%s: expected %q, got %q", testCase.testName, testCase.expected, actual)
		}
	}
}

// TestSplitPathSegments verifies segment decomposition of slash paths.
func TestSplitPathSegments(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		input    string
		expected []string
	}{
		{testName: "nested", input: nestedSourcePath, expected: []string{"src", "lib", "main.rs"}},
		{testName: "single", input: "README.md", expected: []string{"README.md"}},
		{testName: "dot prefix", input: "./a/b.txt", expected: []string{"a", "b.txt"}},
		{testName: "backslashes", input: `a\b\c.txt`, expected: []string{"a", "b", "c.txt"}},
		{testName: "duplicate separators", input: "a//b.txt", expected: []string{"a", "b.txt"}},
		{testName: "empty", input: "", expected: []string{}},
	}
	for _, testCase := range testCases {
		actual := utils.SplitPathSegments(testCase.input)
		if !reflect.DeepEqual(actual, testCase.expected) {
			testingInstance.Errorf("%s: expected %v, got %v", testCase.testName, testCase.expected, actual)
		}
	}
}

// TestDeduplicatePaths verifies that DeduplicatePaths keeps the first occurrence of each path.
func TestDeduplicatePaths(testingInstance *testing.T) {
	actual := utils.DeduplicatePaths([]string{"b.yml", "a.yml", "b.yml"})
	expected := []string{"b.yml", "a.yml"}
	if !reflect.DeepEqual(actual, expected) {
		testingInstance.Fatalf("expected %v, got %v", expected, actual)
	}
}

// TestNewApplicationLoggerWritesFile verifies that the logger mirrors entries into the configured log file.
func TestNewApplicationLoggerWritesFile(testingInstance *testing.T) {
	logFilePath := filepath.Join(testingInstance.TempDir(), "logs", "run.log")
	logger, loggerError := utils.NewApplicationLogger(utils.LoggerOptions{Level: "info", FilePath: logFilePath})
	if loggerError != nil {
		testingInstance.Fatalf("NewApplicationLogger error: %v", loggerError)
	}
	logger.Info("generated documentation")
	logger.Debug("suppressed below info")
	_ = logger.Sync()

	logBytes, readError := os.ReadFile(logFilePath)
	if readError != nil {
		testingInstance.Fatalf("reading log file: %v", readError)
	}
	logText := string(logBytes)
	if !strings.Contains(logText, "INFO") || !strings.Contains(logText, "generated documentation") {
		testingInstance.Fatalf("unexpected log content: %q", logText)
	}
	if strings.Contains(logText, "suppressed below info") {
		testingInstance.Fatalf("debug entry written at info level: %q", logText)
	}
}

// TestNewApplicationLoggerRejectsUnknownLevel verifies level validation.
func TestNewApplicationLoggerRejectsUnknownLevel(testingInstance *testing.T) {
	if _, loggerError := utils.NewApplicationLogger(utils.LoggerOptions{Level: "loud"}); loggerError == nil {
		testingInstance.Fatalf("expected error for unknown level")
	}
}
