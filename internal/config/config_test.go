package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/dirtree/internal/utils"
)

// writeTestFile creates a file with the specified content, failing the test on error.
func writeTestFile(testingHandle *testing.T, filePath string, content string) {
	testingHandle.Helper()
	if writeError := os.WriteFile(filePath, []byte(content), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write %s: %v", filePath, writeError)
	}
}

func TestLoadExclusionFileSkipsCommentsAndBlanks(testingHandle *testing.T) {
	directory := testingHandle.TempDir()
	filePath := filepath.Join(directory, utils.ExclusionFileName)
	writeTestFile(testingHandle, filePath, "# generated output\nvendor/\n\n  tmp  \nvendor\n")

	names, err := LoadExclusionFile(filePath)
	if err != nil {
		testingHandle.Fatalf("LoadExclusionFile error: %v", err)
	}
	expected := []string{"vendor", "tmp"}
	if !reflect.DeepEqual(names, expected) {
		testingHandle.Fatalf("unexpected names: got %v want %v", names, expected)
	}
}

func TestLoadExclusionFileMissing(testingHandle *testing.T) {
	names, err := LoadExclusionFile(filepath.Join(testingHandle.TempDir(), utils.ExclusionFileName))
	if err != nil {
		testingHandle.Fatalf("expected no error for missing file, got %v", err)
	}
	if len(names) != 0 {
		testingHandle.Fatalf("expected no names, got %v", names)
	}
}

func TestLoadDirectoryExclusionsMergesConfiguredNames(testingHandle *testing.T) {
	directory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(directory, utils.ExclusionFileName), "vendor\n")

	names, err := LoadDirectoryExclusions(directory, []string{"tmp", "vendor", " "})
	if err != nil {
		testingHandle.Fatalf("LoadDirectoryExclusions error: %v", err)
	}
	expected := []string{"vendor", "tmp"}
	if !reflect.DeepEqual(names, expected) {
		testingHandle.Fatalf("unexpected names: got %v want %v", names, expected)
	}
}

func TestLoadDirectoryExclusionsRejectsDirectory(testingHandle *testing.T) {
	directory := testingHandle.TempDir()
	if err := os.Mkdir(filepath.Join(directory, utils.ExclusionFileName), 0o755); err != nil {
		testingHandle.Fatalf("mkdir: %v", err)
	}
	if _, err := LoadDirectoryExclusions(directory, nil); err == nil {
		testingHandle.Fatalf("expected error when exclusion file is a directory")
	}
}
