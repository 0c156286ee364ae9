package registry

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/cln/internal/ui"
)

const (
	addCommandUseConstant              = "add <name> <url>"
	addCommandShortDescriptionConstant = "Register a repository URL under a name"
	addCommandLongDescriptionConstant  = "add validates the Git remote and stores it in the registry under a sanitized name. Re-adding a name replaces its URL."
	addCommandArgumentCountConstant    = 2
	addedMessageTemplateConstant       = "Added %s → %s"
	logMessageRepositoryAdded          = "repository registered"
	logFieldRepositoryConstant         = "repository"
	logFieldSettingsFileConstant       = "settings_file"
	saveSettingsErrorTemplateConstant  = "save registry: %w"
	loadSettingsErrorTemplateConstant  = "load registry: %w"
)

// AddCommandBuilder assembles the add command.
type AddCommandBuilder struct {
	LoggerProvider        LoggerProvider
	StoreProvider         StoreProvider
	RenderOptionsProvider RenderOptionsProvider
}

// Build constructs the add command.
func (builder *AddCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           addCommandUseConstant,
		Short:         addCommandShortDescriptionConstant,
		Long:          addCommandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.ExactArgs(addCommandArgumentCountConstant),
		RunE:          builder.run,
	}
	return command, nil
}

func (builder *AddCommandBuilder) run(command *cobra.Command, arguments []string) error {
	logger := resolveLogger(builder.LoggerProvider)

	store, storeError := openStore(builder.StoreProvider)
	if storeError != nil {
		return storeError
	}

	registry, loadError := store.Load()
	if loadError != nil {
		return fmt.Errorf(loadSettingsErrorTemplateConstant, loadError)
	}

	repositoryName, addError := registry.AddRepository(arguments[0], arguments[1])
	if addError != nil {
		return addError
	}

	if saveError := store.Save(registry); saveError != nil {
		return fmt.Errorf(saveSettingsErrorTemplateConstant, saveError)
	}

	logger.Info(logMessageRepositoryAdded,
		zap.String(logFieldRepositoryConstant, repositoryName),
		zap.String(logFieldSettingsFileConstant, store.Path()),
	)

	printer := ui.NewPrinter(command.OutOrStdout(), resolveRenderOptions(builder.RenderOptionsProvider))
	return printer.Success(fmt.Sprintf(addedMessageTemplateConstant, repositoryName, registry.Repositories[repositoryName]))
}
