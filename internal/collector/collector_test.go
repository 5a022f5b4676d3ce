package collector_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/projdoc/internal/collector"
	"github.com/temirov/projdoc/internal/types"
)

const (
	explicitFileName    = "x.txt"
	explicitFileContent = "explicit"
	directoryName       = "sub"
	nestedDirectoryName = "inner"
	rustFileName        = "y.rs"
	rustFileContent     = "fn main() {}\n"
	missingFileName     = "missing.txt"
)

// writeFixture creates a file below root, creating parent directories as needed.
func writeFixture(testingHandle *testing.T, root string, relativePath string, content string) string {
	testingHandle.Helper()
	fullPath := filepath.Join(root, filepath.FromSlash(relativePath))
	if makeDirError := os.MkdirAll(filepath.Dir(fullPath), 0o755); makeDirError != nil {
		testingHandle.Fatalf("mkdir %s: %v", filepath.Dir(fullPath), makeDirError)
	}
	if writeError := os.WriteFile(fullPath, []byte(content), 0o644); writeError != nil {
		testingHandle.Fatalf("write %s: %v", fullPath, writeError)
	}
	return fullPath
}

// collectedPaths returns the paths of the collected files relative to root.
func collectedPaths(testingHandle *testing.T, root string, collectedFiles []types.CollectedFile) []string {
	testingHandle.Helper()
	paths := make([]string, 0, len(collectedFiles))
	for _, collectedFile := range collectedFiles {
		relativePath, relError := filepath.Rel(root, collectedFile.Path)
		if relError != nil {
			testingHandle.Fatalf("rel %s: %v", collectedFile.Path, relError)
		}
		paths = append(paths, filepath.ToSlash(relativePath))
	}
	return paths
}

// TestCollectFilesAndDirectories verifies explicit files come first and directories are walked in name order.
func TestCollectFilesAndDirectories(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeFixture(testingHandle, rootDirectory, explicitFileName, explicitFileContent)
	writeFixture(testingHandle, rootDirectory, directoryName+"/"+rustFileName, rustFileContent)
	writeFixture(testingHandle, rootDirectory, directoryName+"/a.txt", "a")
	writeFixture(testingHandle, rootDirectory, directoryName+"/"+nestedDirectoryName+"/deep.go", "package deep\n")
	writeFixture(testingHandle, rootDirectory, directoryName+"/z.md", "z")

	collectedFiles, collectError := collector.Collect(rootDirectory, []string{explicitFileName}, []string{directoryName})
	if collectError != nil {
		testingHandle.Fatalf("Collect error: %v", collectError)
	}

	expectedPaths := []string{
		explicitFileName,
		directoryName + "/a.txt",
		directoryName + "/" + nestedDirectoryName + "/deep.go",
		directoryName + "/" + rustFileName,
		directoryName + "/z.md",
	}
	if actualPaths := collectedPaths(testingHandle, rootDirectory, collectedFiles); !reflect.DeepEqual(actualPaths, expectedPaths) {
		testingHandle.Fatalf("unexpected order: got %v want %v", actualPaths, expectedPaths)
	}
	if collectedFiles[0].Content != explicitFileContent {
		testingHandle.Fatalf("unexpected explicit content: %q", collectedFiles[0].Content)
	}
	if collectedFiles[3].Content != rustFileContent {
		testingHandle.Fatalf("unexpected rust content: %q", collectedFiles[3].Content)
	}
	if collectedFiles[0].Path != filepath.Join(rootDirectory, explicitFileName) {
		testingHandle.Fatalf("expected root-joined path, got %s", collectedFiles[0].Path)
	}
}

// TestCollectSkipsMissingDeclarations verifies that missing files and directories are not errors.
func TestCollectSkipsMissingDeclarations(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	collectedFiles, collectError := collector.Collect(rootDirectory, []string{missingFileName}, nil)
	if collectError != nil {
		testingHandle.Fatalf("Collect error: %v", collectError)
	}
	if len(collectedFiles) != 0 {
		testingHandle.Fatalf("expected empty collection, got %v", collectedFiles)
	}

	collectedFiles, collectError = collector.Collect(rootDirectory, nil, []string{"no-such-dir"})
	if collectError != nil {
		testingHandle.Fatalf("Collect error: %v", collectError)
	}
	if len(collectedFiles) != 0 {
		testingHandle.Fatalf("expected empty collection, got %v", collectedFiles)
	}
}

// TestCollectSkipsMismatchedKinds verifies that a directory declared as a file and a file declared as a directory are skipped.
func TestCollectSkipsMismatchedKinds(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeFixture(testingHandle, rootDirectory, directoryName+"/"+rustFileName, rustFileContent)
	writeFixture(testingHandle, rootDirectory, explicitFileName, explicitFileContent)

	collectedFiles, collectError := collector.Collect(rootDirectory, []string{directoryName}, []string{explicitFileName})
	if collectError != nil {
		testingHandle.Fatalf("Collect error: %v", collectError)
	}
	if len(collectedFiles) != 0 {
		testingHandle.Fatalf("expected empty collection, got %v", collectedFiles)
	}
}

// TestCollectKeepsDuplicates verifies that overlapping declarations yield one entry per occurrence.
func TestCollectKeepsDuplicates(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeFixture(testingHandle, rootDirectory, directoryName+"/"+rustFileName, rustFileContent)

	declaredFile := directoryName + "/" + rustFileName
	collectedFiles, collectError := collector.Collect(rootDirectory, []string{declaredFile, declaredFile}, []string{directoryName})
	if collectError != nil {
		testingHandle.Fatalf("Collect error: %v", collectError)
	}
	expectedPaths := []string{declaredFile, declaredFile, declaredFile}
	if actualPaths := collectedPaths(testingHandle, rootDirectory, collectedFiles); !reflect.DeepEqual(actualPaths, expectedPaths) {
		testingHandle.Fatalf("unexpected paths: got %v want %v", actualPaths, expectedPaths)
	}
}

// TestCollectRejectsInvalidText verifies that non UTF-8 content aborts the collection.
func TestCollectRejectsInvalidText(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeFixture(testingHandle, rootDirectory, explicitFileName, explicitFileContent)
	writeFixture(testingHandle, rootDirectory, directoryName+"/image.bin", "\xff\xfe\xfd")

	collectedFiles, collectError := collector.Collect(rootDirectory, []string{explicitFileName}, []string{directoryName})
	if collectError == nil {
		testingHandle.Fatalf("expected error, got %v", collectedFiles)
	}
	if !errors.Is(collectError, collector.ErrFileRead) || !errors.Is(collectError, collector.ErrInvalidText) {
		testingHandle.Fatalf("unexpected error kind: %v", collectError)
	}
	if collectedFiles != nil {
		testingHandle.Fatalf("expected no partial collection, got %v", collectedFiles)
	}
}

// TestCollectUnreadableFile verifies that a permission failure is a hard error.
func TestCollectUnreadableFile(testingHandle *testing.T) {
	if os.Geteuid() == 0 {
		testingHandle.Skip("permission checks do not apply to root")
	}
	rootDirectory := testingHandle.TempDir()
	lockedPath := writeFixture(testingHandle, rootDirectory, explicitFileName, explicitFileContent)
	if chmodError := os.Chmod(lockedPath, 0o000); chmodError != nil {
		testingHandle.Fatalf("chmod: %v", chmodError)
	}
	defer os.Chmod(lockedPath, 0o644)

	_, collectError := collector.Collect(rootDirectory, []string{explicitFileName}, nil)
	if !errors.Is(collectError, collector.ErrFileRead) {
		testingHandle.Fatalf("expected ErrFileRead, got %v", collectError)
	}
}

// TestCollectUnlistableDirectory verifies that a directory listing failure is a hard error.
func TestCollectUnlistableDirectory(testingHandle *testing.T) {
	if os.Geteuid() == 0 {
		testingHandle.Skip("permission checks do not apply to root")
	}
	rootDirectory := testingHandle.TempDir()
	writeFixture(testingHandle, rootDirectory, directoryName+"/"+nestedDirectoryName+"/"+rustFileName, rustFileContent)
	lockedDirectory := filepath.Join(rootDirectory, directoryName, nestedDirectoryName)
	if chmodError := os.Chmod(lockedDirectory, 0o000); chmodError != nil {
		testingHandle.Fatalf("chmod: %v", chmodError)
	}
	defer os.Chmod(lockedDirectory, 0o755)

	_, collectError := collector.Collect(rootDirectory, nil, []string{directoryName})
	if !errors.Is(collectError, collector.ErrDirectoryList) {
		testingHandle.Fatalf("expected ErrDirectoryList, got %v", collectError)
	}
}

// TestCollectFollowsSymlinks verifies that linked files are read and dangling links are skipped.
func TestCollectFollowsSymlinks(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	targetPath := writeFixture(testingHandle, rootDirectory, "target.txt", explicitFileContent)
	writeFixture(testingHandle, rootDirectory, directoryName+"/"+rustFileName, rustFileContent)
	if linkError := os.Symlink(targetPath, filepath.Join(rootDirectory, directoryName, "linked.txt")); linkError != nil {
		testingHandle.Skipf("symlinks unsupported: %v", linkError)
	}
	if linkError := os.Symlink(filepath.Join(rootDirectory, "gone.txt"), filepath.Join(rootDirectory, directoryName, "dangling.txt")); linkError != nil {
		testingHandle.Skipf("symlinks unsupported: %v", linkError)
	}

	collectedFiles, collectError := collector.Collect(rootDirectory, nil, []string{directoryName})
	if collectError != nil {
		testingHandle.Fatalf("Collect error: %v", collectError)
	}
	expectedPaths := []string{directoryName + "/linked.txt", directoryName + "/" + rustFileName}
	if actualPaths := collectedPaths(testingHandle, rootDirectory, collectedFiles); !reflect.DeepEqual(actualPaths, expectedPaths) {
		testingHandle.Fatalf("unexpected paths: got %v want %v", actualPaths, expectedPaths)
	}
	if collectedFiles[0].Content != explicitFileContent {
		testingHandle.Fatalf("unexpected linked content: %q", collectedFiles[0].Content)
	}
}
