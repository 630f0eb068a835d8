package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/dirtree/internal/config"
	"github.com/temirov/dirtree/internal/output"
	"github.com/temirov/dirtree/internal/selection"
	"github.com/temirov/dirtree/internal/session"
	"github.com/temirov/dirtree/internal/tokenizer"
	"github.com/temirov/dirtree/internal/tree"
	"github.com/temirov/dirtree/internal/types"
	"github.com/temirov/dirtree/internal/utils"
)

const warningTokenCountFormat = "Warning: failed to count tokens: %v"

// treeOptions holds the effective options of a tree rendering.
type treeOptions struct {
	exclusionNames []string
	rootName       string
	format         string
	summary        bool
	tokens         bool
	contentTokens  bool
	model          string
	copy           bool
}

// applyConfiguration fills options the user did not set on the command line
// from the loaded configuration.
func (options treeOptions) applyConfiguration(command *cobra.Command, configuration config.TreeConfiguration) treeOptions {
	flags := command.Flags()
	if !flags.Changed(formatFlagName) && configuration.Format != "" {
		options.format = configuration.Format
	}
	if !flags.Changed(rootNameFlagName) && configuration.RootName != "" {
		options.rootName = configuration.RootName
	}
	if !flags.Changed(summaryFlagName) {
		options.summary = config.BoolValue(configuration.Summary, options.summary)
	}
	if !flags.Changed(tokensFlagName) {
		options.tokens = config.BoolValue(configuration.Tokens.Enabled, options.tokens)
	}
	if !flags.Changed(contentTokensFlag) {
		options.contentTokens = config.BoolValue(configuration.ContentTokens, options.contentTokens)
	}
	if !flags.Changed(modelFlagName) && configuration.Tokens.Model != "" {
		options.model = configuration.Tokens.Model
	}
	if flags.Lookup(copyFlagName) != nil && !flags.Changed(copyFlagName) {
		options.copy = config.BoolValue(configuration.Clipboard, options.copy)
	}
	options.format = strings.ToLower(strings.TrimSpace(options.format))
	return options
}

// createTreeCommand returns the tree subcommand.
func createTreeCommand(app *application) *cobra.Command {
	options := treeOptions{format: types.FormatRaw, model: tokenizer.DefaultModel}

	treeCommand := &cobra.Command{
		Use:     treeUse,
		Aliases: []string{treeAlias},
		Short:   treeShortDescription,
		Long:    treeLongDescription,
		Example: treeUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			directory := defaultPath
			if len(arguments) > 0 {
				directory = arguments[0]
			}
			effective := options.applyConfiguration(command, app.configuration.Tree)
			if !isSupportedFormat(effective.format) {
				return fmt.Errorf(invalidFormatMessage, effective.format)
			}
			return app.runTree(command.Context(), command.OutOrStdout(), directory, effective)
		},
	}

	treeCommand.Flags().StringArrayVarP(&options.exclusionNames, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	treeCommand.Flags().StringVar(&options.rootName, rootNameFlagName, "", rootNameFlagDescription)
	treeCommand.Flags().StringVar(&options.format, formatFlagName, types.FormatRaw, formatFlagDescription)
	registerBooleanFlag(treeCommand.Flags(), &options.summary, summaryFlagName, false, summaryFlagDescription)
	registerBooleanFlag(treeCommand.Flags(), &options.tokens, tokensFlagName, false, tokensFlagDescription)
	registerBooleanFlag(treeCommand.Flags(), &options.contentTokens, contentTokensFlag, false, contentTokensFlagDescription)
	treeCommand.Flags().StringVar(&options.model, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	registerCopyFlag(treeCommand.Flags(), &options.copy)
	return treeCommand
}

// runTree selects directory, builds its tree and writes the rendering.
func (app *application) runTree(ctx context.Context, writer io.Writer, directory string, options treeOptions) error {
	resolved, resolveError := app.resolveSelection(selectionRequest{directory: directory, exclusionNames: options.exclusionNames})
	if resolveError != nil {
		return resolveError
	}
	result, collectError := selection.Collect(ctx, selection.Options{
		Root:       resolved.root,
		Exclusions: resolved.exclusions,
		Warn:       app.warn,
	})
	if collectError != nil {
		return collectError
	}
	current := session.New(resolved.builder, nil)
	selected := current.Select(result.Entries, selectionRootName(options.rootName, result))
	return app.present(ctx, writer, current, selected, options)
}

func selectionRootName(override string, result selection.Result) string {
	if strings.TrimSpace(override) != "" {
		return strings.TrimSpace(override)
	}
	return result.RootName
}

// present writes one selection in the requested format, followed by the
// optional summary and clipboard copy.
func (app *application) present(ctx context.Context, writer io.Writer, current *session.Session, selected *session.Selection, options treeOptions) error {
	rendered := selected.Structure
	if options.format != types.FormatRaw {
		machineOutput, renderError := output.RenderTree(selected.Root, options.format)
		if renderError != nil {
			return renderError
		}
		rendered = machineOutput + "\n"
	}
	if _, writeError := io.WriteString(writer, rendered); writeError != nil {
		return writeError
	}

	if options.summary || options.tokens || options.contentTokens {
		summaryLine := output.FormatSummaryLine(app.summarize(ctx, selected, options))
		if options.format == types.FormatRaw {
			if _, writeError := fmt.Fprintln(writer, summaryLine); writeError != nil {
				return writeError
			}
		} else {
			app.logger.Info(summaryLine)
		}
	}

	if options.copy {
		return app.copyStructure(current.CopyStructure)
	}
	return nil
}

func (app *application) summarize(ctx context.Context, selected *session.Selection, options treeOptions) *types.OutputSummary {
	counts := tree.Summarize(selected.Root)
	summary := &types.OutputSummary{
		TotalFolders: counts.Folders,
		TotalFiles:   counts.Files,
		TotalSize:    utils.FormatFileSize(counts.Bytes),
	}
	if !options.tokens && !options.contentTokens {
		return summary
	}
	counter, model, counterError := tokenizer.NewCounter(tokenizer.Config{Model: options.model})
	if counterError != nil {
		app.warn(fmt.Sprintf(warningTokenCountFormat, counterError))
		return summary
	}
	summary.Model = model
	if options.tokens {
		counted, countError := tokenizer.CountBytes(counter, []byte(selected.Structure))
		if countError != nil {
			app.warn(fmt.Sprintf(warningTokenCountFormat, countError))
		} else {
			summary.TotalTokens = counted.Tokens
		}
	}
	if options.contentTokens {
		contentTokens, countError := tokenizer.CountTree(ctx, counter, selected.Root)
		if countError != nil {
			app.warn(fmt.Sprintf(warningTokenCountFormat, countError))
		} else {
			summary.ContentTokens = contentTokens
		}
	}
	return summary
}
