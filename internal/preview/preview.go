// Package preview renders the content of a selected file node for display.
package preview

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/temirov/dirtree/internal/tree"
	"github.com/temirov/dirtree/internal/utils"
)

// Kind classifies how a file is presented.
type Kind string

const (
	KindText   Kind = "text"
	KindImage  Kind = "image"
	KindBinary Kind = "binary"

	// DefaultStyle is the chroma style used for highlighted text.
	DefaultStyle = "dracula"
	// DefaultFormatter renders highlighted text with 256-color terminal escapes.
	DefaultFormatter = "terminal256"
	// PlainFormatter renders text without escapes.
	PlainFormatter = "noop"

	dataURLFormat = "data:%s;base64,%s"
)

var (
	// ErrNotAFile is returned when a folder is previewed.
	ErrNotAFile = errors.New("preview: node is not a file")
	// ErrNoContent is returned when a file node carries no content handle.
	ErrNoContent = errors.New("preview: file has no content")
)

var imageExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
	"svg":  {},
}

// Result is a rendered preview.
type Result struct {
	Name     string
	Kind     Kind
	MimeType string
	Language string
	Size     int64
	Content  string
}

// Options selects the highlighting style and output formatter.
type Options struct {
	Style     string
	Formatter string
}

// Renderer renders file previews.
type Renderer struct {
	style     *chroma.Style
	formatter chroma.Formatter
}

// NewRenderer returns a Renderer; unknown style or formatter names fall back to chroma defaults.
func NewRenderer(options Options) *Renderer {
	styleName := options.Style
	if styleName == "" {
		styleName = DefaultStyle
	}
	formatterName := options.Formatter
	if formatterName == "" {
		formatterName = DefaultFormatter
	}
	return &Renderer{
		style:     styles.Get(styleName),
		formatter: formatters.Get(formatterName),
	}
}

// IsImage reports whether a file name is displayed as an image.
func IsImage(fileName string) bool {
	_, image := imageExtensions[utils.FileExtension(fileName)]
	return image
}

// Render reads node's content and renders it according to its extension.
func (renderer *Renderer) Render(ctx context.Context, node *tree.Node) (Result, error) {
	if node == nil || !node.IsFile() {
		return Result{}, ErrNotAFile
	}
	if node.Content == nil {
		return Result{}, ErrNoContent
	}
	data, readError := node.Content.Read(ctx)
	if readError != nil {
		return Result{}, fmt.Errorf("read %s: %w", node.Name, readError)
	}
	result := Result{
		Name:     node.Name,
		Size:     int64(len(data)),
		MimeType: utils.DetectMimeType(node.Name, data),
	}
	switch {
	case IsImage(node.Name):
		result.Kind = KindImage
		result.Content = fmt.Sprintf(dataURLFormat, utils.BaseMimeType(result.MimeType), base64.StdEncoding.EncodeToString(data))
	case utils.IsBinary(data):
		result.Kind = KindBinary
	default:
		result.Kind = KindText
		highlighted, language, highlightError := renderer.highlight(node.Name, string(data))
		if highlightError != nil {
			return Result{}, fmt.Errorf("highlight %s: %w", node.Name, highlightError)
		}
		result.Content = highlighted
		result.Language = language
	}
	return result, nil
}

func (renderer *Renderer) highlight(fileName string, source string) (string, string, error) {
	lexer := lexers.Match(fileName)
	if lexer == nil {
		lexer = lexers.Analyse(source)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)
	iterator, tokeniseError := lexer.Tokenise(nil, source)
	if tokeniseError != nil {
		return "", "", tokeniseError
	}
	var buffer bytes.Buffer
	if formatError := renderer.formatter.Format(&buffer, renderer.style, iterator); formatError != nil {
		return "", "", formatError
	}
	return buffer.String(), lexer.Config().Name, nil
}
