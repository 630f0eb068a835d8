package tree

// Summary holds aggregate counts for a tree.
type Summary struct {
	Folders int
	Files   int
	Bytes   int64
}

// VisitFunc receives every node with its slash path relative to the root.
// The root itself is visited with an empty path. Returning false skips the
// node's children.
type VisitFunc func(node *Node, relativePath string, depth int) bool

// Walk visits root and its descendants depth-first in stored order.
func Walk(root *Node, visit VisitFunc) {
	if root == nil || visit == nil {
		return
	}
	walkNode(root, "", 0, visit)
}

func walkNode(node *Node, relativePath string, depth int, visit VisitFunc) {
	if !visit(node, relativePath, depth) {
		return
	}
	for _, child := range node.Children {
		childPath := child.Name
		if relativePath != "" {
			childPath = relativePath + pathSegmentSeparator + child.Name
		}
		walkNode(child, childPath, depth+1, visit)
	}
}

// Find resolves a slash path below root. A leading segment equal to the root
// name is accepted and skipped. An empty path resolves to the root.
func Find(root *Node, path string) *Node {
	if root == nil {
		return nil
	}
	segments := SplitPath(path)
	if len(segments) > 0 && segments[0] == root.Name && root.Child(segments[0]) == nil {
		segments = segments[1:]
	}
	current := root
	for _, segment := range segments {
		current = current.Child(segment)
		if current == nil {
			return nil
		}
	}
	return current
}

// Summarize counts folders below the root, files, and the bytes behind file handles.
func Summarize(root *Node) Summary {
	var summary Summary
	Walk(root, func(node *Node, relativePath string, depth int) bool {
		switch {
		case node.IsFile():
			summary.Files++
			if node.Content != nil {
				summary.Bytes += node.Content.Size()
			}
		case depth > 0:
			summary.Folders++
		}
		return true
	})
	return summary
}
