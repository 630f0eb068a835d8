package tree_test

import (
	"testing"

	"github.com/temirov/dirtree/internal/tree"
)

func TestFind(t *testing.T) {
	t.Parallel()

	root := tree.Build(entriesFromPaths("proj/src/a.js", "proj/README.md", "proj/proj/inner.txt"), projectRootName)

	testCases := []struct {
		path     string
		expected string
	}{
		{path: "", expected: projectRootName},
		{path: "src/a.js", expected: "a.js"},
		{path: "/src/a.js", expected: "a.js"},
		{path: "README.md", expected: "README.md"},
		{path: "proj/inner.txt", expected: "inner.txt"},
		{path: "src/missing.js", expected: ""},
		{path: "README.md/child", expected: ""},
	}
	for _, testCase := range testCases {
		node := tree.Find(root, testCase.path)
		if testCase.expected == "" {
			if node != nil {
				t.Errorf("Find(%q) = %q, want nil", testCase.path, node.Name)
			}
			continue
		}
		if node == nil || node.Name != testCase.expected {
			t.Errorf("Find(%q) = %v, want %q", testCase.path, node, testCase.expected)
		}
	}

	if tree.Find(nil, "src") != nil {
		t.Error("Find(nil, src) should return nil")
	}
}

func TestFindAcceptsRootLabel(t *testing.T) {
	t.Parallel()

	root := tree.Build(entriesFromPaths("proj/src/a.js"), projectRootName)
	if node := tree.Find(root, "proj/src/a.js"); node == nil || node.Name != "a.js" {
		t.Fatalf("expected root-prefixed path to resolve, got %v", node)
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	t.Parallel()

	root := tree.Build(entriesFromPaths("proj/src/a.js", "proj/docs/b.md"), projectRootName)
	var visited []string
	tree.Walk(root, func(node *tree.Node, relativePath string, depth int) bool {
		visited = append(visited, relativePath)
		return relativePath != "src"
	})
	expected := []string{"", "src", "docs", "docs/b.md"}
	if len(visited) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, visited)
	}
	for index := range expected {
		if visited[index] != expected[index] {
			t.Fatalf("expected %v, got %v", expected, visited)
		}
	}
}

func TestSummarizeCountsBytes(t *testing.T) {
	t.Parallel()

	root := tree.Build(entriesFromPaths("proj/a.txt", "proj/src/b.go"), projectRootName)
	summary := tree.Summarize(root)
	expectedBytes := int64(len("proj/a.txt") + len("proj/src/b.go"))
	if summary.Bytes != expectedBytes {
		t.Fatalf("expected %d bytes, got %d", expectedBytes, summary.Bytes)
	}
	if summary.Files != 2 || summary.Folders != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}
