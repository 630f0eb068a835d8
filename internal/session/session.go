// Package session holds the current folder selection and its preview state.
//
// Every selection rebuilds the tree from scratch and replaces the previous
// selection at once; an in-flight preview of the previous selection is
// cancelled and its result discarded.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/temirov/dirtree/internal/output"
	"github.com/temirov/dirtree/internal/preview"
	"github.com/temirov/dirtree/internal/services/clipboard"
	"github.com/temirov/dirtree/internal/tree"
	"github.com/temirov/dirtree/internal/types"
)

var (
	// ErrNoSelection is returned when an operation needs a selection and none was made.
	ErrNoSelection = errors.New("session: no folder selected")
	// ErrPreviewSuperseded is returned when a newer preview or selection replaced the request.
	ErrPreviewSuperseded = errors.New("session: preview superseded")
	// ErrNodeNotFound is returned when a preview path does not resolve to a node.
	ErrNodeNotFound = errors.New("session: path not found in tree")
)

// Previewer renders file nodes.
type Previewer interface {
	Render(ctx context.Context, node *tree.Node) (preview.Result, error)
}

// Selection is one completed folder selection.
type Selection struct {
	ID         uuid.UUID
	RootName   string
	Root       *tree.Node
	Structure  string
	SelectedAt time.Time
}

// Preview is the result of the latest successful preview request.
type Preview struct {
	SelectionID uuid.UUID
	Path        string
	Result      preview.Result
}

// Session tracks the current selection. It is safe for concurrent use.
type Session struct {
	builder   *tree.Builder
	previewer Previewer
	now       func() time.Time

	mutex         sync.Mutex
	current       *Selection
	lastPreview   *Preview
	previewSeq    uint64
	previewCancel context.CancelFunc
}

// New returns a Session building trees with builder and rendering previews with previewer.
func New(builder *tree.Builder, previewer Previewer) *Session {
	if builder == nil {
		builder = tree.NewBuilder()
	}
	return &Session{builder: builder, previewer: previewer, now: time.Now}
}

// Select builds a new tree from entries and replaces the current selection.
// An empty rootName is derived from the entries.
func (session *Session) Select(entries []types.PathEntry, rootName string) *Selection {
	if rootName == "" {
		rootName = tree.RootName(entries)
	}
	root := session.builder.Build(entries, rootName)
	selection := &Selection{
		ID:         uuid.New(),
		RootName:   rootName,
		Root:       root,
		Structure:  output.SerializeTree(root),
		SelectedAt: session.now(),
	}

	session.mutex.Lock()
	defer session.mutex.Unlock()
	if session.previewCancel != nil {
		session.previewCancel()
		session.previewCancel = nil
	}
	session.previewSeq++
	session.lastPreview = nil
	session.current = selection
	return selection
}

// Current returns the current selection or nil.
func (session *Session) Current() *Selection {
	session.mutex.Lock()
	defer session.mutex.Unlock()
	return session.current
}

// LastPreview returns the latest preview of the current selection or nil.
func (session *Session) LastPreview() *Preview {
	session.mutex.Lock()
	defer session.mutex.Unlock()
	return session.lastPreview
}

// Preview renders the file at path within the current selection. Starting a
// preview cancels the one still outstanding; only the newest request for the
// newest selection is kept.
func (session *Session) Preview(ctx context.Context, path string) (preview.Result, error) {
	if session.previewer == nil {
		return preview.Result{}, errors.New("session: no previewer configured")
	}

	session.mutex.Lock()
	selection := session.current
	if selection == nil {
		session.mutex.Unlock()
		return preview.Result{}, ErrNoSelection
	}
	node := tree.Find(selection.Root, path)
	if node == nil {
		session.mutex.Unlock()
		return preview.Result{}, fmt.Errorf("%w: %s", ErrNodeNotFound, path)
	}
	if session.previewCancel != nil {
		session.previewCancel()
	}
	previewCtx, cancel := context.WithCancel(ctx)
	session.previewSeq++
	sequence := session.previewSeq
	session.previewCancel = cancel
	session.mutex.Unlock()

	result, renderError := session.previewer.Render(previewCtx, node)

	session.mutex.Lock()
	defer session.mutex.Unlock()
	if sequence != session.previewSeq {
		cancel()
		return preview.Result{}, ErrPreviewSuperseded
	}
	session.previewCancel = nil
	cancel()
	if renderError != nil {
		return preview.Result{}, renderError
	}
	session.lastPreview = &Preview{SelectionID: selection.ID, Path: path, Result: result}
	return result, nil
}

// CopyStructure writes the current structure listing to the clipboard.
func (session *Session) CopyStructure(copier clipboard.Copier) error {
	selection := session.Current()
	if selection == nil {
		return ErrNoSelection
	}
	if copier == nil {
		return errors.New("session: no clipboard configured")
	}
	if copyError := copier.Copy(selection.Structure); copyError != nil {
		return fmt.Errorf("copy structure: %w", copyError)
	}
	return nil
}
