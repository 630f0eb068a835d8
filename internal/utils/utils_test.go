package utils_test

import (
	"bytes"
	"testing"

	"github.com/temirov/dirtree/internal/utils"
)

// TestDeduplicatePatterns verifies that DeduplicatePatterns removes duplicate and blank patterns.
func TestDeduplicatePatterns(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		patterns []string
		expected []string
	}{
		{
			testName: "removes duplicates",
			patterns: []string{"a", "b", "a"},
			expected: []string{"a", "b"},
		},
		{
			testName: "keeps unique",
			patterns: []string{"a", "b"},
			expected: []string{"a", "b"},
		},
		{
			testName: "drops blanks and trims",
			patterns: []string{" vendor ", "", "vendor", "  "},
			expected: []string{"vendor"},
		},
	}
	for index, testCase := range testCases {
		actual := utils.DeduplicatePatterns(testCase.patterns)
		if len(actual) != len(testCase.expected) {
			testingInstance.Errorf("case %d (%s): expected length %d, got %d", index, testCase.testName, len(testCase.expected), len(actual))
			continue
		}
		for position, value := range actual {
			if value != testCase.expected[position] {
				testingInstance.Errorf("case %d (%s): expected %s at position %d, got %s", index, testCase.testName, testCase.expected[position], position, value)
			}
		}
	}
}

func TestFileExtension(t *testing.T) {
	testCases := []struct {
		name     string
		expected string
	}{
		{name: "main.go", expected: "go"},
		{name: "Photo.JPEG", expected: "jpeg"},
		{name: "archive.tar.gz", expected: "gz"},
		{name: "Makefile", expected: "makefile"},
		{name: ".env", expected: "env"},
	}
	for _, testCase := range testCases {
		if actual := utils.FileExtension(testCase.name); actual != testCase.expected {
			t.Errorf("FileExtension(%q) = %q, want %q", testCase.name, actual, testCase.expected)
		}
	}
}

func TestIsBinary(t *testing.T) {
	testCases := []struct {
		name     string
		data     []byte
		expected bool
	}{
		{name: "empty", data: nil, expected: false},
		{name: "text", data: []byte("hello"), expected: false},
		{name: "nul byte", data: []byte{'a', 0x00, 'b'}, expected: true},
		{name: "invalid utf8", data: []byte{0xff, 0xfe, 0xfd}, expected: true},
		{name: "long multibyte text", data: bytes.Repeat([]byte("é"), 6000), expected: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if actual := utils.IsBinary(testCase.data); actual != testCase.expected {
				t.Fatalf("expected %t, got %t", testCase.expected, actual)
			}
		})
	}
}

func TestDetectMimeType(t *testing.T) {
	if mimeType := utils.BaseMimeType(utils.DetectMimeType("logo.png", nil)); mimeType != "image/png" {
		t.Fatalf("expected image/png from extension, got %q", mimeType)
	}
	if mimeType := utils.DetectMimeType("noext", []byte("plain text")); mimeType != "text/plain; charset=utf-8" {
		t.Fatalf("expected sniffed text/plain, got %q", mimeType)
	}
	if mimeType := utils.DetectMimeType("noext", nil); mimeType != utils.UnknownMimeType {
		t.Fatalf("expected unknown mime type for empty data, got %q", mimeType)
	}
}
