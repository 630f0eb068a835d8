// Package types defines every cross‑package data structure used by the dirtree CLI.
package types

import "context"

const (
	NodeTypeFile   = "file"
	NodeTypeFolder = "folder"

	CommandTree    = "tree"
	CommandPreview = "preview"
	CommandWatch   = "watch"

	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatXML  = "xml"
)

// ContentHandle is an opaque reference to the bytes behind a selected file.
// Handles are read lazily; the tree only stores them.
type ContentHandle interface {
	Name() string
	Size() int64
	Read(ctx context.Context) ([]byte, error)
}

// PathEntry is one selected file: a slash-delimited relative path whose first
// segment is the common root label, plus the handle to its content.
type PathEntry struct {
	Path    string
	Content ContentHandle
}

// MemoryHandle is a ContentHandle backed by bytes already held in memory.
type MemoryHandle struct {
	FileName string
	Data     []byte
}

// Name returns the file name.
func (handle MemoryHandle) Name() string {
	return handle.FileName
}

// Size returns the number of bytes held.
func (handle MemoryHandle) Size() int64 {
	return int64(len(handle.Data))
}

// Read returns a copy of the held bytes.
func (handle MemoryHandle) Read(ctx context.Context) ([]byte, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	return append([]byte(nil), handle.Data...), nil
}

var _ ContentHandle = MemoryHandle{}

// OutputSummary captures aggregate information about a built tree.
type OutputSummary struct {
	TotalFolders  int    `json:"totalFolders" xml:"totalFolders"`
	TotalFiles    int    `json:"totalFiles" xml:"totalFiles"`
	TotalSize     string `json:"totalSize" xml:"totalSize"`
	TotalTokens   int    `json:"totalTokens,omitempty" xml:"totalTokens,omitempty"`
	ContentTokens int    `json:"contentTokens,omitempty" xml:"contentTokens,omitempty"`
	Model         string `json:"model,omitempty" xml:"model,omitempty"`
}
