package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/dirtree/internal/utils"
)

const commentPrefix = "#"

// LoadExclusionFile reads excluded names from the file at path, one per line.
// Blank lines and lines starting with '#' are skipped. A missing file yields no names.
//
// #nosec G304
func LoadExclusionFile(path string) ([]string, error) {
	fileHandle, openFileError := os.Open(path)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, openFileError
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", path, closeError)
		}
	}()

	var names []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		names = append(names, strings.TrimSuffix(trimmedLine, "/"))
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return utils.DeduplicatePatterns(names), nil
}

// LoadDirectoryExclusions loads the exclusion file of the selected directory and
// appends the configured names that are not already listed.
func LoadDirectoryExclusions(directoryPath string, configuredNames []string) ([]string, error) {
	exclusionFilePath := filepath.Join(directoryPath, utils.ExclusionFileName)
	fileNames, loadError := LoadExclusionFile(exclusionFilePath)
	if loadError != nil {
		return nil, fmt.Errorf("loading %s from %s: %w", utils.ExclusionFileName, directoryPath, loadError)
	}
	return utils.DeduplicatePatterns(append(fileNames, configuredNames...)), nil
}
