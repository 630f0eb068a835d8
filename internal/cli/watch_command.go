package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/temirov/dirtree/internal/config"
	"github.com/temirov/dirtree/internal/selection"
	"github.com/temirov/dirtree/internal/session"
	"github.com/temirov/dirtree/internal/types"
	"github.com/temirov/dirtree/internal/utils"
	"github.com/temirov/dirtree/internal/watch"
)

const (
	watchStartedFormat = "Watching %s"
	watchRebuiltFormat = "Structure rebuilt at %s"
)

type watchOptions struct {
	exclusionNames []string
	debounce       time.Duration
	copy           bool
}

func (options watchOptions) applyConfiguration(command *cobra.Command, configuration config.WatchConfiguration) watchOptions {
	flags := command.Flags()
	if !flags.Changed(debounceFlagName) && configuration.Debounce > 0 {
		options.debounce = configuration.Debounce
	}
	if !flags.Changed(copyFlagName) {
		options.copy = config.BoolValue(configuration.Clipboard, options.copy)
	}
	return options
}

// createWatchCommand returns the watch subcommand.
func createWatchCommand(app *application) *cobra.Command {
	options := watchOptions{debounce: watch.DefaultDebounce}

	watchCommand := &cobra.Command{
		Use:     watchUse,
		Aliases: []string{watchAlias},
		Short:   watchShortDescription,
		Long:    watchLongDescription,
		Example: watchUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			directory := defaultPath
			if len(arguments) > 0 {
				directory = arguments[0]
			}
			effective := options.applyConfiguration(command, app.configuration.Watch)
			ctx, stop := signal.NotifyContext(command.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.runWatch(ctx, command, directory, effective)
		},
	}

	watchCommand.Flags().StringArrayVarP(&options.exclusionNames, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	watchCommand.Flags().DurationVar(&options.debounce, debounceFlagName, watch.DefaultDebounce, debounceFlagDescription)
	registerCopyFlag(watchCommand.Flags(), &options.copy)
	return watchCommand
}

// runWatch prints the structure of directory and prints it again after every
// debounced change until ctx is cancelled.
func (app *application) runWatch(ctx context.Context, command *cobra.Command, directory string, options watchOptions) error {
	resolved, resolveError := app.resolveSelection(selectionRequest{directory: directory, exclusionNames: options.exclusionNames})
	if resolveError != nil {
		return resolveError
	}
	current := session.New(resolved.builder, nil)
	rootName := app.configuration.Tree.RootName
	presentation := treeOptions{format: types.FormatRaw, copy: options.copy}

	watcher := watch.New(watch.Options{
		Root:       resolved.root,
		Exclusions: resolved.exclusions,
		Debounce:   options.debounce,
		Logger:     app.logger,
	}, func(handlerCtx context.Context, result selection.Result) error {
		selected := current.Select(result.Entries, selectionRootName(rootName, result))
		app.logger.Info(fmt.Sprintf(watchRebuiltFormat, utils.FormatTimestamp(selected.SelectedAt)))
		return app.present(handlerCtx, command.OutOrStdout(), current, selected, presentation)
	})

	app.logger.Info(fmt.Sprintf(watchStartedFormat, resolved.root))
	return watcher.Run(ctx)
}
