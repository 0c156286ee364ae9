package registry

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/cln/internal/ui"
	"github.com/temirov/cln/internal/utils"
)

const (
	configCommandUseConstant              = "config"
	configCommandShortDescriptionConstant = "Show where cln keeps its settings and clones"
	settingsFileLineTemplateConstant      = "Settings file:      %s"
	configurationFileLineTemplateConstant = "Configuration file: %s"
	outputDirectoryLineTemplateConstant   = "Output directory:   %s"
	managedRootLineTemplateConstant       = "Managed root:       %s"
	repositoriesHeaderConstant            = "Repositories:"
	repositoryLineTemplateConstant        = "  %s → %s"
	noRepositoriesMessageConstant         = "No repositories configured. Use \"cln add <name> <url>\" to add one."
	noConfigurationFileConstant           = "(built-in defaults)"
)

// ConfigCommandBuilder assembles the config command.
type ConfigCommandBuilder struct {
	StoreProvider         StoreProvider
	RenderOptionsProvider RenderOptionsProvider
}

// Build constructs the config command.
func (builder *ConfigCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           configCommandUseConstant,
		Short:         configCommandShortDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          builder.run,
	}
	return command, nil
}

func (builder *ConfigCommandBuilder) run(command *cobra.Command, arguments []string) error {
	store, storeError := openStore(builder.StoreProvider)
	if storeError != nil {
		return storeError
	}

	registry, loadError := store.Load()
	if loadError != nil {
		return fmt.Errorf(loadSettingsErrorTemplateConstant, loadError)
	}

	managedRoot, rootError := registry.ManagedRoot()
	if rootError != nil {
		return rootError
	}

	configurationFile := noConfigurationFileConstant
	if configurationFilePath, available := utils.NewCommandContextAccessor().ConfigurationFilePath(command.Context()); available {
		configurationFile = configurationFilePath
	}

	printer := ui.NewPrinter(command.OutOrStdout(), resolveRenderOptions(builder.RenderOptionsProvider))
	lines := []string{
		fmt.Sprintf(settingsFileLineTemplateConstant, store.Path()),
		fmt.Sprintf(configurationFileLineTemplateConstant, configurationFile),
		fmt.Sprintf(outputDirectoryLineTemplateConstant, registry.OutputDirectory),
		fmt.Sprintf(managedRootLineTemplateConstant, managedRoot),
	}
	for _, line := range lines {
		if printError := printer.Plain(line); printError != nil {
			return printError
		}
	}

	repositoryNames := registry.RepositoryNames()
	if len(repositoryNames) == 0 {
		return printer.Warning(noRepositoriesMessageConstant)
	}

	if printError := printer.Plain(repositoriesHeaderConstant); printError != nil {
		return printError
	}
	for _, repositoryName := range repositoryNames {
		if printError := printer.Plain(fmt.Sprintf(repositoryLineTemplateConstant, repositoryName, registry.Repositories[repositoryName])); printError != nil {
			return printError
		}
	}
	return nil
}
