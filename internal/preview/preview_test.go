package preview_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/temirov/dirtree/internal/preview"
	"github.com/temirov/dirtree/internal/tree"
	"github.com/temirov/dirtree/internal/types"
)

type failingHandle struct{}

func (failingHandle) Name() string { return "broken.txt" }

func (failingHandle) Size() int64 { return 0 }

func (failingHandle) Read(context.Context) ([]byte, error) { return nil, errors.New("disk on fire") }

func fileNode(name string, data []byte) *tree.Node {
	return &tree.Node{Name: name, Kind: tree.KindFile, Content: types.MemoryHandle{FileName: name, Data: data}}
}

func TestRenderText(t *testing.T) {
	t.Parallel()

	renderer := preview.NewRenderer(preview.Options{Formatter: preview.PlainFormatter})
	source := "package main\n\nfunc main() {}\n"
	result, err := renderer.Render(context.Background(), fileNode("main.go", []byte(source)))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if result.Kind != preview.KindText {
		t.Fatalf("expected text kind, got %s", result.Kind)
	}
	if result.Content != source {
		t.Fatalf("plain formatter must reproduce source, got %q", result.Content)
	}
	if result.Language != "Go" {
		t.Fatalf("expected Go lexer, got %q", result.Language)
	}
	if result.Size != int64(len(source)) {
		t.Fatalf("expected size %d, got %d", len(source), result.Size)
	}
}

func TestRenderHighlightsWithTerminalFormatter(t *testing.T) {
	t.Parallel()

	renderer := preview.NewRenderer(preview.Options{})
	result, err := renderer.Render(context.Background(), fileNode("main.go", []byte("package main\n")))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !strings.Contains(result.Content, "\x1b[") {
		t.Fatalf("expected terminal escapes in highlighted output, got %q", result.Content)
	}
	if !strings.Contains(result.Content, "package") {
		t.Fatalf("expected source text in highlighted output")
	}
}

func TestRenderImageAsDataURL(t *testing.T) {
	t.Parallel()

	renderer := preview.NewRenderer(preview.Options{})
	result, err := renderer.Render(context.Background(), fileNode("logo.png", []byte{0x89, 'P', 'N', 'G'}))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if result.Kind != preview.KindImage {
		t.Fatalf("expected image kind, got %s", result.Kind)
	}
	if result.Content != "data:image/png;base64,iVBORw==" {
		t.Fatalf("unexpected data url %q", result.Content)
	}
}

func TestRenderBinary(t *testing.T) {
	t.Parallel()

	renderer := preview.NewRenderer(preview.Options{})
	result, err := renderer.Render(context.Background(), fileNode("blob.bin", []byte{0x00, 0x01, 0x02}))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if result.Kind != preview.KindBinary || result.Content != "" {
		t.Fatalf("expected omitted binary content, got %+v", result)
	}
}

func TestRenderErrors(t *testing.T) {
	t.Parallel()

	renderer := preview.NewRenderer(preview.Options{})
	folder := tree.Build(nil, "proj")
	if _, err := renderer.Render(context.Background(), folder); !errors.Is(err, preview.ErrNotAFile) {
		t.Fatalf("expected ErrNotAFile, got %v", err)
	}
	if _, err := renderer.Render(context.Background(), nil); !errors.Is(err, preview.ErrNotAFile) {
		t.Fatalf("expected ErrNotAFile for nil node, got %v", err)
	}
	empty := &tree.Node{Name: "a.txt", Kind: tree.KindFile}
	if _, err := renderer.Render(context.Background(), empty); !errors.Is(err, preview.ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}
	broken := &tree.Node{Name: "broken.txt", Kind: tree.KindFile, Content: failingHandle{}}
	if _, err := renderer.Render(context.Background(), broken); err == nil || !strings.Contains(err.Error(), "disk on fire") {
		t.Fatalf("expected wrapped read error, got %v", err)
	}
}

func TestRenderHonorsCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	renderer := preview.NewRenderer(preview.Options{})
	if _, err := renderer.Render(ctx, fileNode("a.txt", []byte("x"))); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
