package clones

import (
	"github.com/spf13/cobra"

	"github.com/temirov/cln/internal/completion"
	"github.com/temirov/cln/internal/settings"
)

const (
	createCommandUseConstant              = "create <repository> <branch>"
	createCommandShortDescriptionConstant = "Clone a registered repository at a branch"
	createCommandLongDescriptionConstant  = "create clones the branch of a registered repository into <out_dir>/cln/<repository>/<branch> and hands the path to the shell integration. Repository names support tab completion."
	createCommandArgumentCountConstant    = 2
	timeoutFlagNameConstant               = "timeout"
	timeoutFlagUsageConstant              = "Abort the git clone after this duration (overrides clone.git_timeout)"
)

// CreateCommandBuilder assembles the create command.
type CreateCommandBuilder struct {
	CommandEnvironment
}

// Build constructs the create command.
func (builder *CreateCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           createCommandUseConstant,
		Short:         createCommandShortDescriptionConstant,
		Long:          createCommandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.ExactArgs(createCommandArgumentCountConstant),
		RunE:          builder.run,
		ValidArgsFunction: completion.RepositoryNames(func() (settings.Settings, error) {
			return builder.loadRegistry()
		}),
	}

	command.Flags().Duration(timeoutFlagNameConstant, 0, timeoutFlagUsageConstant)

	return command, nil
}

func (builder *CreateCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	timeout := configuration.GitTimeout
	if command.Flags().Changed(timeoutFlagNameConstant) {
		flagTimeout, flagError := command.Flags().GetDuration(timeoutFlagNameConstant)
		if flagError != nil {
			return flagError
		}
		if flagTimeout > 0 {
			timeout = flagTimeout
		}
	}

	registry, loadError := builder.loadRegistry()
	if loadError != nil {
		return loadError
	}

	_, cloneError := builder.cloneAndPublish(command, registry, CloneOptions{
		RepositoryName: arguments[0],
		BranchName:     arguments[1],
		Timeout:        timeout,
	})
	return cloneError
}
