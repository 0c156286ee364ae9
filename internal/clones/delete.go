package clones

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/cln/internal/completion"
	"github.com/temirov/cln/internal/settings"
	"github.com/temirov/cln/internal/utils/flags"
)

const (
	deleteCommandUseConstant              = "delete <branch>"
	deleteCommandShortDescriptionConstant = "Delete every clone of a branch"
	deleteCommandLongDescriptionConstant  = "delete finds the clones of the branch across all repositories under the managed root, lists them, asks for confirmation and removes each one. A failure on one clone does not stop the others."
	deletionHeadingConstant               = "The following directories will be deleted:"
	deletionLineTemplateConstant          = "• %s/%s → %s"
	confirmationPromptTemplateConstant    = "Are you sure you want to delete %d %s? [y/N]: "
	deletedMessageTemplateConstant        = "Successfully deleted %d %s"
	cancelledMessageConstant              = "Cancelled"
	directorySingularConstant             = "directory"
	directoryPluralConstant               = "directories"
)

// DeleteCommandBuilder assembles the delete command.
type DeleteCommandBuilder struct {
	CommandEnvironment
}

// Build constructs the delete command.
func (builder *DeleteCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           deleteCommandUseConstant,
		Short:         deleteCommandShortDescriptionConstant,
		Long:          deleteCommandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.ExactArgs(1),
		RunE:          builder.run,
		ValidArgsFunction: completion.BranchNames(
			func() (settings.Settings, error) { return builder.loadRegistry() },
			builder.listBranchNames,
		),
	}

	flags.BindAssumeYesFlag(command)

	return command, nil
}

func (builder *DeleteCommandBuilder) run(command *cobra.Command, arguments []string) error {
	registry, loadError := builder.loadRegistry()
	if loadError != nil {
		return loadError
	}

	managedRoot, rootError := registry.ManagedRoot()
	if rootError != nil {
		return rootError
	}

	service, serviceError := builder.resolveService(builder.resolveLogger())
	if serviceError != nil {
		return serviceError
	}

	matches, findError := service.FindBranch(managedRoot, arguments[0])
	if findError != nil {
		return findError
	}

	printer := builder.newPrinter(command)
	if printError := printer.Warning(deletionHeadingConstant); printError != nil {
		return printError
	}
	for _, clone := range matches {
		if printError := printer.Plain(fmt.Sprintf(deletionLineTemplateConstant, clone.Repository, clone.Branch, clone.Path)); printError != nil {
			return printError
		}
	}

	if !flags.AssumeYes(command) {
		confirmed, confirmError := builder.resolvePrompter(command).Confirm(fmt.Sprintf(confirmationPromptTemplateConstant, len(matches), pluralizeDirectories(len(matches))))
		if confirmError != nil {
			return confirmError
		}
		if !confirmed {
			return printer.Plain(cancelledMessageConstant)
		}
	}

	removed, removeError := service.RemoveAll(managedRoot, matches)
	if removeError != nil {
		return removeError
	}
	return printer.Success(fmt.Sprintf(deletedMessageTemplateConstant, len(removed), pluralizeDirectories(len(removed))))
}

func pluralizeDirectories(count int) string {
	if count == 1 {
		return directorySingularConstant
	}
	return directoryPluralConstant
}
