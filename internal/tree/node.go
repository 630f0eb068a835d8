// Package tree converts flat lists of selected paths into a rooted folder hierarchy.
package tree

import "github.com/temirov/dirtree/internal/types"

// Kind distinguishes containers from leaves.
type Kind string

const (
	KindFolder Kind = types.NodeTypeFolder
	KindFile   Kind = types.NodeTypeFile
)

// Node is one folder or file of a built tree.
// Children is populated only for folders and keeps first-discovery order.
// Content is set only for files.
type Node struct {
	Name     string
	Kind     Kind
	Children []*Node
	Content  types.ContentHandle

	childIndex map[string]*Node
}

// IsFolder reports whether the node is a container.
func (node *Node) IsFolder() bool {
	return node != nil && node.Kind == KindFolder
}

// IsFile reports whether the node is a leaf.
func (node *Node) IsFile() bool {
	return node != nil && node.Kind == KindFile
}

// Child returns the direct child with the given name, or nil.
func (node *Node) Child(name string) *Node {
	if node == nil {
		return nil
	}
	if node.childIndex != nil {
		return node.childIndex[name]
	}
	for _, child := range node.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

func newFolder(name string) *Node {
	return &Node{Name: name, Kind: KindFolder, Children: []*Node{}, childIndex: map[string]*Node{}}
}

func newFile(name string, content types.ContentHandle) *Node {
	return &Node{Name: name, Kind: KindFile, Content: content}
}

// appendChild adds child under the folder and registers it in the name index.
func (node *Node) appendChild(child *Node) {
	if node.childIndex == nil {
		node.childIndex = make(map[string]*Node, len(node.Children)+1)
		for _, existing := range node.Children {
			node.childIndex[existing.Name] = existing
		}
	}
	node.Children = append(node.Children, child)
	node.childIndex[child.Name] = child
}
