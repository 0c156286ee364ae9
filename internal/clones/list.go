package clones

import (
	"github.com/spf13/cobra"

	"github.com/temirov/cln/internal/ui"
)

const (
	listCommandUseConstant              = "list"
	listCommandShortDescriptionConstant = "List cloned repositories grouped by repository"
	listHeadingConstant                 = "Cloned Repositories:"
	namesOnlyFlagNameConstant           = "names-only"
	namesOnlyFlagUsageConstant          = "Hide clone paths"
)

// ListCommandBuilder assembles the list command.
type ListCommandBuilder struct {
	CommandEnvironment
}

// Build constructs the list command.
func (builder *ListCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           listCommandUseConstant,
		Short:         listCommandShortDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          builder.run,
	}

	command.Flags().Bool(namesOnlyFlagNameConstant, false, namesOnlyFlagUsageConstant)

	return command, nil
}

func (builder *ListCommandBuilder) run(command *cobra.Command, arguments []string) error {
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

	discovered, listError := service.List(managedRoot)
	if listError != nil {
		return listError
	}

	namesOnly, flagError := command.Flags().GetBool(namesOnlyFlagNameConstant)
	if flagError != nil {
		return flagError
	}

	rows := make([]ui.CloneRow, 0, len(discovered))
	for _, clone := range discovered {
		rows = append(rows, ui.CloneRow{Repository: clone.Repository, Branch: clone.Branch, Path: clone.Path})
	}

	printer := builder.newPrinter(command)
	if len(rows) > 0 {
		if headingError := printer.Plain(listHeadingConstant); headingError != nil {
			return headingError
		}
	}
	return printer.CloneTable(rows, managedRoot, ui.RenderOptions{ShowPaths: !namesOnly})
}
