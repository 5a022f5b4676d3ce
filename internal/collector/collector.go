// Package collector reads the declared files and directories of a project into memory.
package collector

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/temirov/projdoc/internal/types"
)

var (
	// ErrFileRead classifies failures to read a declared or discovered file that exists.
	ErrFileRead = errors.New("file read failed")
	// ErrDirectoryList classifies failures to enumerate a declared directory or one of its subdirectories.
	ErrDirectoryList = errors.New("directory listing failed")
	// ErrInvalidText is wrapped together with ErrFileRead when a file's content is not valid UTF-8.
	ErrInvalidText = errors.New("content is not valid UTF-8 text")
)

const (
	errorReadFileFormat      = "%w: %s: %w"
	errorStatFileFormat      = "%w: stat %s: %w"
	errorReadDirectoryFormat = "%w: %s: %w"
	errorStatDirectoryFormat = "%w: stat %s: %w"
)

// Collect joins every declared file and directory onto root and reads the regular files they name.
// Explicit files come first in declaration order, followed by the contents of each directory walked
// depth-first with siblings in name order. Declared paths that do not exist, and declared files that
// are not regular files, are skipped without error. Any read or listing failure aborts the collection.
// The same file may be returned more than once when declarations overlap.
func Collect(root string, files []string, directories []string) ([]types.CollectedFile, error) {
	var collectedFiles []types.CollectedFile

	for _, declaredFile := range files {
		filePath := filepath.Join(root, declaredFile)
		fileInfo, statError := os.Stat(filePath)
		if statError != nil {
			if errors.Is(statError, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf(errorStatFileFormat, ErrFileRead, filePath, statError)
		}
		if !fileInfo.Mode().IsRegular() {
			continue
		}
		collectedFile, readError := readCollectedFile(filePath)
		if readError != nil {
			return nil, readError
		}
		collectedFiles = append(collectedFiles, collectedFile)
	}

	for _, declaredDirectory := range directories {
		directoryPath := filepath.Join(root, declaredDirectory)
		directoryInfo, statError := os.Stat(directoryPath)
		if statError != nil {
			if errors.Is(statError, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf(errorStatDirectoryFormat, ErrDirectoryList, directoryPath, statError)
		}
		if !directoryInfo.IsDir() {
			continue
		}
		var walkError error
		collectedFiles, walkError = collectDirectory(directoryPath, collectedFiles)
		if walkError != nil {
			return nil, walkError
		}
	}

	return collectedFiles, nil
}

// collectDirectory appends the files below directoryPath in pre-order.
// Entries are stat'ed so that symbolic links are followed; dangling links are skipped.
func collectDirectory(directoryPath string, collectedFiles []types.CollectedFile) ([]types.CollectedFile, error) {
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		return nil, fmt.Errorf(errorReadDirectoryFormat, ErrDirectoryList, directoryPath, readDirectoryError)
	}

	for _, directoryEntry := range directoryEntries {
		childPath := filepath.Join(directoryPath, directoryEntry.Name())
		childInfo, statError := os.Stat(childPath)
		if statError != nil {
			if errors.Is(statError, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf(errorStatFileFormat, ErrFileRead, childPath, statError)
		}

		switch {
		case childInfo.Mode().IsRegular():
			collectedFile, readError := readCollectedFile(childPath)
			if readError != nil {
				return nil, readError
			}
			collectedFiles = append(collectedFiles, collectedFile)
		case childInfo.IsDir():
			var walkError error
			collectedFiles, walkError = collectDirectory(childPath, collectedFiles)
			if walkError != nil {
				return nil, walkError
			}
		}
	}

	return collectedFiles, nil
}

// readCollectedFile reads the full content of filePath and rejects content that is not UTF-8 text.
//
// #nosec G304
func readCollectedFile(filePath string) (types.CollectedFile, error) {
	fileBytes, fileReadError := os.ReadFile(filePath)
	if fileReadError != nil {
		return types.CollectedFile{}, fmt.Errorf(errorReadFileFormat, ErrFileRead, filePath, fileReadError)
	}
	if !utf8.Valid(fileBytes) {
		return types.CollectedFile{}, fmt.Errorf(errorReadFileFormat, ErrFileRead, filePath, ErrInvalidText)
	}
	return types.CollectedFile{Path: filePath, Content: string(fileBytes)}, nil
}
