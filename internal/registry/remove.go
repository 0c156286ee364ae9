package registry

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/cln/internal/completion"
	"github.com/temirov/cln/internal/settings"
	"github.com/temirov/cln/internal/ui"
)

const (
	removeCommandUseConstant              = "remove <name>"
	removeCommandShortDescriptionConstant = "Remove a repository from the registry"
	removeCommandLongDescriptionConstant  = "remove deletes a registry entry. Existing clones of the repository are left on disk."
	removedMessageTemplateConstant        = "Removed %s"
	logMessageRepositoryRemoved           = "repository unregistered"
)

// RemoveCommandBuilder assembles the remove command.
type RemoveCommandBuilder struct {
	LoggerProvider        LoggerProvider
	StoreProvider         StoreProvider
	RenderOptionsProvider RenderOptionsProvider
}

// Build constructs the remove command.
func (builder *RemoveCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:               removeCommandUseConstant,
		Short:             removeCommandShortDescriptionConstant,
		Long:              removeCommandLongDescriptionConstant,
		SilenceErrors:     true,
		SilenceUsage:      true,
		Args:              cobra.ExactArgs(1),
		RunE:              builder.run,
		ValidArgsFunction: completion.RepositoryNames(builder.loadSettings),
	}
	return command, nil
}

func (builder *RemoveCommandBuilder) loadSettings() (settings.Settings, error) {
	store, storeError := openStore(builder.StoreProvider)
	if storeError != nil {
		return settings.Settings{}, storeError
	}
	return store.Load()
}

func (builder *RemoveCommandBuilder) run(command *cobra.Command, arguments []string) error {
	logger := resolveLogger(builder.LoggerProvider)

	store, storeError := openStore(builder.StoreProvider)
	if storeError != nil {
		return storeError
	}

	registry, loadError := store.Load()
	if loadError != nil {
		return fmt.Errorf(loadSettingsErrorTemplateConstant, loadError)
	}

	repositoryName, removeError := registry.RemoveRepository(arguments[0])
	if removeError != nil {
		return removeError
	}

	if saveError := store.Save(registry); saveError != nil {
		return fmt.Errorf(saveSettingsErrorTemplateConstant, saveError)
	}

	logger.Info(logMessageRepositoryRemoved,
		zap.String(logFieldRepositoryConstant, repositoryName),
		zap.String(logFieldSettingsFileConstant, store.Path()),
	)

	printer := ui.NewPrinter(command.OutOrStdout(), resolveRenderOptions(builder.RenderOptionsProvider))
	return printer.Success(fmt.Sprintf(removedMessageTemplateConstant, repositoryName))
}
