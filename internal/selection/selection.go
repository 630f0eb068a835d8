// Package selection enumerates a local directory into selected path entries,
// the way a browser directory picker reports a chosen folder.
package selection

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/temirov/dirtree/internal/tree"
	"github.com/temirov/dirtree/internal/types"
)

const (
	errorAbsolutePathFormat = "abs failed for '%s': %w"
	errorPathMissingFormat  = "path '%s' does not exist"
	errorStatFormat         = "stat failed for '%s': %w"
	errorNotDirectoryFormat = "path '%s' is not a directory"
	errorWalkFormat         = "walk %s: %w"
)

// Options configures a directory selection.
type Options struct {
	// Root is the selected directory.
	Root string
	// Exclusions prunes matching directories from the walk. Entries are still
	// filtered by the tree builder, pruning only avoids descending.
	Exclusions tree.ExclusionSet
	// Warn receives non-fatal problems such as unreadable subdirectories.
	Warn func(message string)
}

// Result is a completed selection.
type Result struct {
	Root     string
	RootName string
	Entries  []types.PathEntry
}

// ResolveRoot converts root into a clean absolute directory path.
func ResolveRoot(root string) (string, error) {
	absolutePath, absolutePathError := filepath.Abs(root)
	if absolutePathError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, root, absolutePathError)
	}
	cleanPath := filepath.Clean(absolutePath)
	info, statError := os.Stat(cleanPath)
	if statError != nil {
		if os.IsNotExist(statError) {
			return "", fmt.Errorf(errorPathMissingFormat, root)
		}
		return "", fmt.Errorf(errorStatFormat, root, statError)
	}
	if !info.IsDir() {
		return "", fmt.Errorf(errorNotDirectoryFormat, root)
	}
	return cleanPath, nil
}

// Collect walks the selected directory and returns one entry per regular file.
// Entry paths are slash-delimited and start with the directory's base name.
// Symbolic links are reported neither as files nor followed.
func Collect(ctx context.Context, options Options) (Result, error) {
	root, resolveError := ResolveRoot(options.Root)
	if resolveError != nil {
		return Result{}, resolveError
	}
	rootName := filepath.Base(root)

	group, walkCtx := errgroup.WithContext(ctx)
	entries := make(chan types.PathEntry)

	group.Go(func() error {
		defer close(entries)
		return walkDirectory(walkCtx, root, rootName, options, entries)
	})

	var collected []types.PathEntry
	group.Go(func() error {
		for {
			select {
			case <-walkCtx.Done():
				return walkCtx.Err()
			case entry, ok := <-entries:
				if !ok {
					return nil
				}
				collected = append(collected, entry)
			}
		}
	})

	if waitError := group.Wait(); waitError != nil {
		return Result{}, waitError
	}
	return Result{Root: root, RootName: rootName, Entries: collected}, nil
}

func walkDirectory(ctx context.Context, root string, rootName string, options Options, out chan<- types.PathEntry) error {
	walkError := filepath.WalkDir(root, func(path string, entry fs.DirEntry, entryError error) error {
		if entryError != nil {
			if path == root {
				return entryError
			}
			if options.Warn != nil {
				options.Warn(fmt.Sprintf("Warning: skipping %s: %v", path, entryError))
			}
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}
		if entry.IsDir() {
			if options.Exclusions.Matches(entry.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		relativePath, relativeError := filepath.Rel(root, path)
		if relativeError != nil {
			return relativeError
		}
		pathEntry := types.PathEntry{
			Path:    rootName + "/" + filepath.ToSlash(relativePath),
			Content: newFileHandle(path, entry),
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- pathEntry:
			return nil
		}
	})
	if walkError != nil && !errors.Is(walkError, context.Canceled) {
		return fmt.Errorf(errorWalkFormat, root, walkError)
	}
	return walkError
}
