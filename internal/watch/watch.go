// Package watch rebuilds a directory selection whenever its contents change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/temirov/dirtree/internal/selection"
	"github.com/temirov/dirtree/internal/tree"
)

// DefaultDebounce is the quiet period awaited after the last change before rebuilding.
const DefaultDebounce = 300 * time.Millisecond

const (
	errorCreateWatcherFormat = "create watcher: %w"
	errorWatchRootFormat     = "watch %s: %w"
	warnWatchDirectoryFormat = "Warning: cannot watch directory %s: %v"
)

// Handler receives every fresh selection, starting with the initial one.
// A returned error stops the watcher.
type Handler func(ctx context.Context, result selection.Result) error

// Options configures a Watcher.
type Options struct {
	Root       string
	Exclusions tree.ExclusionSet
	Debounce   time.Duration
	Logger     *zap.Logger
}

// Watcher re-runs a directory selection after filesystem changes.
type Watcher struct {
	options Options
	handler Handler
}

// New returns a Watcher calling handler with each rebuilt selection.
func New(options Options, handler Handler) *Watcher {
	if options.Debounce <= 0 {
		options.Debounce = DefaultDebounce
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	return &Watcher{options: options, handler: handler}
}

// Run performs the initial selection and then rebuilds on every debounced
// burst of changes until ctx is cancelled.
func (watcher *Watcher) Run(ctx context.Context) error {
	if watcher.handler == nil {
		return errors.New("watch: nil handler")
	}
	root, resolveError := selection.ResolveRoot(watcher.options.Root)
	if resolveError != nil {
		return resolveError
	}

	notifier, createError := fsnotify.NewWatcher()
	if createError != nil {
		return fmt.Errorf(errorCreateWatcherFormat, createError)
	}
	defer func() {
		if closeError := notifier.Close(); closeError != nil {
			watcher.options.Logger.Warn("close watcher", zap.Error(closeError))
		}
	}()

	if addError := notifier.Add(root); addError != nil {
		return fmt.Errorf(errorWatchRootFormat, root, addError)
	}
	for _, directory := range watcher.collectDirectories(root) {
		watcher.addDirectory(notifier, directory)
	}

	if rebuildError := watcher.rebuild(ctx, root); rebuildError != nil {
		return rebuildError
	}

	timer := time.NewTimer(watcher.options.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-notifier.Events:
			if !ok {
				return nil
			}
			if !watcher.isRelevant(root, event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, statError := os.Lstat(event.Name); statError == nil && info.IsDir() {
					watcher.addDirectory(notifier, event.Name)
				}
			}
			timer.Reset(watcher.options.Debounce)
		case watchError, ok := <-notifier.Errors:
			if !ok {
				return nil
			}
			watcher.options.Logger.Warn("watch error", zap.Error(watchError))
		case <-timer.C:
			if rebuildError := watcher.rebuild(ctx, root); rebuildError != nil {
				if errors.Is(rebuildError, context.Canceled) {
					return nil
				}
				return rebuildError
			}
		}
	}
}

func (watcher *Watcher) rebuild(ctx context.Context, root string) error {
	result, collectError := selection.Collect(ctx, selection.Options{
		Root:       root,
		Exclusions: watcher.options.Exclusions,
		Warn: func(message string) {
			watcher.options.Logger.Warn(message)
		},
	})
	if collectError != nil {
		return collectError
	}
	return watcher.handler(ctx, result)
}

// collectDirectories lists every directory below root that is not excluded.
func (watcher *Watcher) collectDirectories(root string) []string {
	var directories []string
	_ = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkError error) error {
		if walkError != nil {
			if entry != nil && entry.IsDir() && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if !entry.IsDir() || path == root {
			return nil
		}
		if watcher.options.Exclusions.Matches(entry.Name()) {
			return fs.SkipDir
		}
		directories = append(directories, path)
		return nil
	})
	return directories
}

func (watcher *Watcher) addDirectory(notifier *fsnotify.Watcher, directory string) {
	if watcher.options.Exclusions.Matches(filepath.Base(directory)) {
		return
	}
	if addError := notifier.Add(directory); addError != nil {
		watcher.options.Logger.Warn(fmt.Sprintf(warnWatchDirectoryFormat, directory, addError))
	}
}

// isRelevant reports whether a change at path can alter the built tree.
func (watcher *Watcher) isRelevant(root string, path string) bool {
	relativePath, relativeError := filepath.Rel(root, path)
	if relativeError != nil || strings.HasPrefix(relativePath, "..") {
		return false
	}
	segments := strings.Split(filepath.ToSlash(relativePath), "/")
	return !watcher.options.Exclusions.MatchesAny(segments)
}
