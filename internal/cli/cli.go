// Package cli provides the command line interface.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/dirtree/internal/config"
	"github.com/temirov/dirtree/internal/selection"
	"github.com/temirov/dirtree/internal/services/clipboard"
	"github.com/temirov/dirtree/internal/tree"
	"github.com/temirov/dirtree/internal/types"
	"github.com/temirov/dirtree/internal/utils"
)

const (
	exclusionFlagName    = "e"
	rootNameFlagName     = "root-name"
	formatFlagName       = "format"
	summaryFlagName      = "summary"
	tokensFlagName       = "tokens"
	contentTokensFlag    = "content-tokens"
	modelFlagName        = "model"
	styleFlagName        = "style"
	plainFlagName        = "plain"
	debounceFlagName     = "debounce"
	globalFlagName       = "global"
	forceFlagName        = "force"
	configFlagName       = "config"
	versionFlagName      = "version"
	copyFlagName         = "copy"
	versionTemplate      = "dirtree version: %s\n"
	defaultPath          = "."
	rootUse              = "dirtree"
	rootShortDescription = "dirtree command line interface"
	rootLongDescription  = `dirtree turns a selected folder into a navigable tree.
It prints the folder structure as an icon listing, previews individual files, and
keeps the listing current while files change.
Use --copy to place the listing on the clipboard and --version to print the application version.`
	versionFlagDescription = "display application version"
	configFlagDescription  = "path to a configuration file"

	treeUse                 = "tree [directory]"
	previewUse              = "preview <directory> <path>"
	watchUse                = "watch [directory]"
	initUse                 = "init"
	treeAlias               = "t"
	previewAlias            = "p"
	watchAlias              = "w"
	treeShortDescription    = "display directory structure (" + treeAlias + ")"
	previewShortDescription = "preview a file of the selected directory (" + previewAlias + ")"
	watchShortDescription   = "rebuild the structure when files change (" + watchAlias + ")"
	initShortDescription    = "write a default configuration file"

	// treeLongDescription provides detailed help for the tree command.
	treeLongDescription = `Select a directory and list its folders and files.
Use --format to select raw, json, or xml output.`
	// treeUsageExample demonstrates tree command usage.
	treeUsageExample = `  # Print the structure of the current directory
  dirtree tree

  # Exclude vendor and copy the listing
  dirtree tree -e vendor --copy ./project`

	// previewLongDescription provides detailed help for the preview command.
	previewLongDescription = `Render one file of the selected directory.
Text is syntax highlighted, images are printed as data URLs, and binary files are omitted.`
	// previewUsageExample demonstrates preview command usage.
	previewUsageExample = `  # Highlight a source file
  dirtree preview . src/main.go

  # Print without terminal colors
  dirtree preview --plain ./project README.md`

	// watchLongDescription provides detailed help for the watch command.
	watchLongDescription = `Print the structure and print it again after every burst of file changes.`
	// watchUsageExample demonstrates watch command usage.
	watchUsageExample = `  # Keep the clipboard in sync with the structure
  dirtree watch --copy ./project`

	exclusionFlagDescription     = "exclude name (repeatable)"
	rootNameFlagDescription      = "label of the root folder"
	formatFlagDescription        = "output format"
	summaryFlagDescription       = "include summary of the tree"
	tokensFlagDescription        = "include token count of the listing"
	contentTokensFlagDescription = "include token count of file contents"
	modelFlagDescription         = "tokenizer model to use for token counting"
	styleFlagDescription         = "highlighting style"
	plainFlagDescription         = "print preview without terminal colors"
	debounceFlagDescription      = "quiet period before rebuilding"
	globalFlagDescription        = "write configuration to the global directory"
	forceFlagDescription         = "overwrite existing configuration"
	copyFlagDescription          = "copy the listing to the clipboard"

	invalidFormatMessage        = "Invalid format value '%s'"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	loadConfigurationFormat     = "load configuration: %w"
	configurationWrittenFormat  = "Configuration written to %s"
	clipboardUnavailableMessage = "clipboard unavailable"
)

// isSupportedFormat reports whether the provided format is recognized.
func isSupportedFormat(format string) bool {
	switch format {
	case types.FormatRaw, types.FormatJSON, types.FormatXML:
		return true
	default:
		return false
	}
}

// application carries the collaborators shared by every command.
type application struct {
	logger        *zap.Logger
	copier        clipboard.Copier
	configuration config.ApplicationConfiguration
}

// Execute runs the dirtree application.
func Execute(logger *zap.Logger) error {
	var copier clipboard.Copier
	if service := clipboard.NewService(); service.Available() {
		copier = service
	}
	rootCommand := createRootCommand(logger, copier)
	rootCommand.SetArgs(normalizeArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

func normalizeArguments(rootCommand *cobra.Command, arguments []string) []string {
	return normalizeBooleanFlagArguments(rootCommand, normalizeCopyFlagArguments(arguments))
}

// createRootCommand builds the root Cobra command.
func createRootCommand(logger *zap.Logger, copier clipboard.Copier) *cobra.Command {
	if logger == nil {
		logger = zap.NewNop()
	}
	app := &application{logger: logger, copier: copier}
	var showVersion bool
	var configurationPath string

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				_, err := fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return err
			}
			return command.Help()
		},
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			if command.Name() == initUse {
				return nil
			}
			workingDirectory, workingDirectoryError := os.Getwd()
			if workingDirectoryError != nil {
				return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
			}
			loaded, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
				WorkingDirectory: workingDirectory,
				ExplicitFilePath: configurationPath,
			})
			if loadError != nil {
				return fmt.Errorf(loadConfigurationFormat, loadError)
			}
			app.configuration = loaded
			return nil
		},
	}
	rootCommand.Flags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.PersistentFlags().StringVar(&configurationPath, configFlagName, "", configFlagDescription)
	rootCommand.AddCommand(
		createTreeCommand(app),
		createPreviewCommand(app),
		createWatchCommand(app),
		createInitCommand(app),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// selectionRequest describes one directory selection made by a command.
type selectionRequest struct {
	directory        string
	exclusionNames   []string
	rootNameOverride string
}

// resolvedSelection is a directory ready to be walked.
type resolvedSelection struct {
	root       string
	names      []string
	exclusions tree.ExclusionSet
	builder    *tree.Builder
}

// resolveSelection validates the directory and combines configured, flag and
// exclusion-file names.
func (app *application) resolveSelection(request selectionRequest) (resolvedSelection, error) {
	directory := request.directory
	if strings.TrimSpace(directory) == "" {
		directory = defaultPath
	}
	root, resolveError := selection.ResolveRoot(directory)
	if resolveError != nil {
		return resolvedSelection{}, resolveError
	}
	configured := append(append([]string{}, app.configuration.Tree.Exclude...), request.exclusionNames...)
	names, loadError := config.LoadDirectoryExclusions(root, configured)
	if loadError != nil {
		return resolvedSelection{}, loadError
	}
	return resolvedSelection{
		root:       root,
		names:      names,
		exclusions: tree.NewExclusionSet(names...),
		builder:    tree.NewBuilder(names...),
	}, nil
}

func (app *application) warn(message string) {
	app.logger.Warn(message)
}

func (app *application) copyStructure(copyStructure func(clipboard.Copier) error) error {
	if app.copier == nil {
		return errors.New(clipboardUnavailableMessage)
	}
	if err := copyStructure(app.copier); err != nil {
		return err
	}
	app.logger.Info(clipboard.CopiedMessage)
	return nil
}
