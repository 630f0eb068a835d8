// Package output renders built trees as text listings and machine formats.
package output

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/temirov/dirtree/internal/tree"
	"github.com/temirov/dirtree/internal/types"
	"github.com/temirov/dirtree/internal/utils"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	xmlHeader = xml.Header

	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	lineTerminator = "\n"
)

// SerializeTree renders root as the copyable text listing.
func SerializeTree(root *tree.Node) string {
	var builder strings.Builder
	writeTreeNode(&builder, root, nil)
	return builder.String()
}

// WriteTree renders root as the text listing to writer.
func WriteTree(writer io.Writer, root *tree.Node) error {
	_, writeError := io.WriteString(writer, SerializeTree(root))
	return writeError
}

// writeTreeNode appends node and its descendants. lastSiblingFlags holds, for
// every level from the root's children down to node, whether the node at that
// level is the last of its siblings. The root has no flags and no connector.
func writeTreeNode(builder *strings.Builder, node *tree.Node, lastSiblingFlags []bool) {
	if node == nil {
		return
	}
	builder.WriteString(treeLinePrefix(lastSiblingFlags))
	builder.WriteString(nodeLabel(node))
	builder.WriteString(lineTerminator)
	if !node.IsFolder() {
		return
	}
	childCount := len(node.Children)
	for index, child := range node.Children {
		childFlags := make([]bool, len(lastSiblingFlags), len(lastSiblingFlags)+1)
		copy(childFlags, lastSiblingFlags)
		childFlags = append(childFlags, index == childCount-1)
		writeTreeNode(builder, child, childFlags)
	}
}

func treeLinePrefix(lastSiblingFlags []bool) string {
	if len(lastSiblingFlags) == 0 {
		return ""
	}
	var prefix strings.Builder
	ancestorFlags := lastSiblingFlags[:len(lastSiblingFlags)-1]
	for _, ancestorIsLast := range ancestorFlags {
		if ancestorIsLast {
			prefix.WriteString(treeLastPadding)
		} else {
			prefix.WriteString(treeBranchPadding)
		}
	}
	if lastSiblingFlags[len(lastSiblingFlags)-1] {
		prefix.WriteString(treeLastConnector)
	} else {
		prefix.WriteString(treeBranchConnector)
	}
	return prefix.String()
}

func nodeLabel(node *tree.Node) string {
	if node.IsFolder() {
		return FolderIcon() + iconNameSeparate + node.Name
	}
	return FileIcon(node.Name) + iconNameSeparate + node.Name
}

// TreeOutputNode is the machine-readable form of a tree node.
type TreeOutputNode struct {
	XMLName   xml.Name          `json:"-" xml:"node"`
	Path      string            `json:"path" xml:"path"`
	Name      string            `json:"name" xml:"name"`
	Type      string            `json:"type" xml:"type"`
	Size      string            `json:"size,omitempty" xml:"size,omitempty"`
	SizeBytes int64             `json:"-" xml:"-"`
	Children  []*TreeOutputNode `json:"children,omitempty" xml:"children>node,omitempty"`
}

// NewTreeOutputNode converts a tree into its machine-readable form. Paths are
// slash-delimited and include the root label.
func NewTreeOutputNode(root *tree.Node) *TreeOutputNode {
	if root == nil {
		return nil
	}
	return convertNode(root, root.Name)
}

func convertNode(node *tree.Node, path string) *TreeOutputNode {
	converted := &TreeOutputNode{
		Path: path,
		Name: node.Name,
		Type: string(node.Kind),
	}
	if node.IsFile() {
		if node.Content != nil {
			converted.SizeBytes = node.Content.Size()
			converted.Size = utils.FormatFileSize(converted.SizeBytes)
		}
		return converted
	}
	for _, child := range node.Children {
		converted.Children = append(converted.Children, convertNode(child, path+"/"+child.Name))
	}
	return converted
}

// RenderTreeJSON marshals root as indented JSON.
func RenderTreeJSON(root *tree.Node) (string, error) {
	encoded, jsonEncodeError := json.MarshalIndent(NewTreeOutputNode(root), indentPrefix, indentSpacer)
	if jsonEncodeError != nil {
		return "", fmt.Errorf("render tree json: %w", jsonEncodeError)
	}
	return string(encoded), nil
}

// RenderTreeXML marshals root as an indented XML document.
func RenderTreeXML(root *tree.Node) (string, error) {
	var buffer bytes.Buffer
	buffer.WriteString(xmlHeader)
	encoded, xmlMarshalError := xml.MarshalIndent(NewTreeOutputNode(root), indentPrefix, indentSpacer)
	if xmlMarshalError != nil {
		return "", fmt.Errorf("render tree xml: %w", xmlMarshalError)
	}
	buffer.Write(encoded)
	return buffer.String(), nil
}

// RenderTree renders root in the requested format.
func RenderTree(root *tree.Node, format string) (string, error) {
	switch format {
	case types.FormatRaw:
		return SerializeTree(root), nil
	case types.FormatJSON:
		return RenderTreeJSON(root)
	case types.FormatXML:
		return RenderTreeXML(root)
	default:
		return "", fmt.Errorf(unsupportedFormatMessage, format)
	}
}

const unsupportedFormatMessage = "unsupported format '%s'"

// FormatSummaryLine formats an OutputSummary into the raw summary line.
func FormatSummaryLine(summary *types.OutputSummary) string {
	if summary == nil {
		summary = &types.OutputSummary{}
	}
	folderLabel := "folders"
	if summary.TotalFolders == 1 {
		folderLabel = "folder"
	}
	fileLabel := "files"
	if summary.TotalFiles == 1 {
		fileLabel = "file"
	}
	extra := ""
	if summary.TotalTokens > 0 {
		extra = fmt.Sprintf(", %d tokens", summary.TotalTokens)
	}
	if summary.ContentTokens > 0 {
		extra += fmt.Sprintf(", %d content tokens", summary.ContentTokens)
	}
	modelSuffix := ""
	if summary.Model != "" {
		modelSuffix = fmt.Sprintf(" (model: %s)", summary.Model)
	}
	return fmt.Sprintf("Summary: %d %s, %d %s, %s%s%s", summary.TotalFolders, folderLabel, summary.TotalFiles, fileLabel, summary.TotalSize, extra, modelSuffix)
}
