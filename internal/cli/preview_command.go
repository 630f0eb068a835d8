package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/dirtree/internal/config"
	"github.com/temirov/dirtree/internal/preview"
	"github.com/temirov/dirtree/internal/selection"
	"github.com/temirov/dirtree/internal/session"
	"github.com/temirov/dirtree/internal/utils"
)

const binaryPreviewFormat = "%s: binary content omitted (%s)"

type previewOptions struct {
	style string
	plain bool
}

func (options previewOptions) applyConfiguration(command *cobra.Command, configuration config.PreviewConfiguration) previewOptions {
	flags := command.Flags()
	if !flags.Changed(styleFlagName) && configuration.Style != "" {
		options.style = configuration.Style
	}
	if !flags.Changed(plainFlagName) {
		options.plain = config.BoolValue(configuration.Plain, options.plain)
	}
	return options
}

func (options previewOptions) rendererOptions() preview.Options {
	rendererOptions := preview.Options{Style: options.style, Formatter: preview.DefaultFormatter}
	if options.plain {
		rendererOptions.Formatter = preview.PlainFormatter
	}
	return rendererOptions
}

// createPreviewCommand returns the preview subcommand.
func createPreviewCommand(app *application) *cobra.Command {
	options := previewOptions{style: preview.DefaultStyle}

	previewCommand := &cobra.Command{
		Use:     previewUse,
		Aliases: []string{previewAlias},
		Short:   previewShortDescription,
		Long:    previewLongDescription,
		Example: previewUsageExample,
		Args:    cobra.ExactArgs(2),
		RunE: func(command *cobra.Command, arguments []string) error {
			effective := options.applyConfiguration(command, app.configuration.Preview)
			return app.runPreview(command.Context(), command.OutOrStdout(), arguments[0], arguments[1], effective)
		},
	}

	previewCommand.Flags().StringVar(&options.style, styleFlagName, preview.DefaultStyle, styleFlagDescription)
	registerBooleanFlag(previewCommand.Flags(), &options.plain, plainFlagName, false, plainFlagDescription)
	return previewCommand
}

// runPreview selects directory and renders the file at path within it.
func (app *application) runPreview(ctx context.Context, writer io.Writer, directory string, path string, options previewOptions) error {
	resolved, resolveError := app.resolveSelection(selectionRequest{directory: directory})
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

	current := session.New(resolved.builder, preview.NewRenderer(options.rendererOptions()))
	current.Select(result.Entries, result.RootName)
	rendered, previewError := current.Preview(ctx, path)
	if previewError != nil {
		return previewError
	}

	if rendered.Kind == preview.KindBinary {
		app.logger.Info(fmt.Sprintf(binaryPreviewFormat, rendered.Name, utils.FormatFileSize(rendered.Size)))
		return nil
	}
	content := rendered.Content
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	_, writeError := io.WriteString(writer, content)
	return writeError
}
