package tokenizer

import (
	"context"
	"errors"
	"sync/atomic"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/temirov/dirtree/internal/tree"
	"github.com/temirov/dirtree/internal/types"
	"github.com/temirov/dirtree/internal/utils"
)

const maxConcurrentReads = 8

var errNilCounter = errors.New("nil tokenizer counter")

// CountResult captures the outcome of counting a file or byte slice.
type CountResult struct {
	Tokens  int
	Counted bool
}

// CountBytes estimates tokens for the provided data using counter.
func CountBytes(counter Counter, data []byte) (CountResult, error) {
	if counter == nil {
		return CountResult{}, errNilCounter
	}
	if len(data) == 0 {
		tokens, err := counter.CountString("")
		if err != nil {
			return CountResult{}, err
		}
		return CountResult{Tokens: tokens, Counted: true}, nil
	}
	if utils.IsBinary(data) {
		return CountResult{Counted: false}, nil
	}
	if !utf8.Valid(data) {
		return CountResult{Counted: false}, nil
	}
	tokens, err := counter.CountString(string(data))
	if err != nil {
		return CountResult{}, err
	}
	return CountResult{Tokens: tokens, Counted: true}, nil
}

// CountHandle reads handle and estimates its token count.
func CountHandle(ctx context.Context, counter Counter, handle types.ContentHandle) (CountResult, error) {
	if counter == nil {
		return CountResult{}, errNilCounter
	}
	if handle == nil {
		return CountResult{}, nil
	}
	data, readErr := handle.Read(ctx)
	if readErr != nil {
		return CountResult{}, readErr
	}
	return CountBytes(counter, data)
}

// CountTree sums the token counts of every file node under root that carries
// content. Binary files contribute nothing.
func CountTree(ctx context.Context, counter Counter, root *tree.Node) (int, error) {
	if counter == nil {
		return 0, errNilCounter
	}
	var handles []types.ContentHandle
	tree.Walk(root, func(node *tree.Node, _ string, _ int) bool {
		if node.IsFile() && node.Content != nil {
			handles = append(handles, node.Content)
		}
		return true
	})

	var total atomic.Int64
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentReads)
	for _, handle := range handles {
		handle := handle
		group.Go(func() error {
			result, err := CountHandle(groupCtx, counter, handle)
			if err != nil {
				return err
			}
			total.Add(int64(result.Tokens))
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return 0, err
	}
	return int(total.Load()), nil
}
