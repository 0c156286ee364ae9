package cli

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/cln/internal/clones"
	"github.com/temirov/cln/internal/registry"
	"github.com/temirov/cln/internal/settings"
	"github.com/temirov/cln/internal/ui"
	"github.com/temirov/cln/internal/utils"
	"github.com/temirov/cln/internal/utils/flags"
)

const (
	applicationNameConstant                 = "cln"
	applicationShortDescriptionConstant     = "Clone branches of registered repositories into a predictable layout"
	applicationLongDescriptionConstant      = "cln keeps a registry of named Git remotes and clones branches into <out_dir>/cln/<repository>/<branch>. Run without arguments to pick a repository interactively."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format."
	settingsFlagNameConstant                = "settings"
	settingsFlagUsageConstant               = "Path to the registry settings file (overrides registry.settings_file)."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	registryConfigurationKeyConstant        = "registry"
	cloneConfigurationKeyConstant           = "clone"
	environmentPrefixConstant               = "CLN"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	defaultConfigurationSearchPathConstant  = "."
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	settingsFileFieldConstant               = "settings_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	commandBuildErrorTemplateConstant       = "unable to build %s command: %w"
	settingsPathUnavailableMessageConstant  = "settings file path not resolved"
	developmentVersionConstant              = "dev"
)

var (
	logLevelChoices  = []string{string(utils.LogLevelDebug), string(utils.LogLevelInfo), string(utils.LogLevelWarn), string(utils.LogLevelError)}
	logFormatChoices = []string{string(utils.LogFormatStructured), string(utils.LogFormatConsole)}
)

//go:embed default_config.yaml
var defaultConfigurationContent []byte

// EmbeddedDefaultConfiguration returns the built-in configuration layer and its format.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return bytes.Clone(defaultConfigurationContent), configurationTypeConstant
}

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common   ApplicationCommonConfiguration `mapstructure:"common"`
	Registry registry.CommandConfiguration  `mapstructure:"registry"`
	Clone    clones.CommandConfiguration    `mapstructure:"clone"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	settingsFlagValue      string
	settingsFilePath       string
	commandContextAccessor utils.CommandContextAccessor
}

// NewApplication assembles a fully wired CLI application writing diagnostics to stderr.
func NewApplication() (*Application, error) {
	return newApplication(os.Stderr)
}

func newApplication(diagnosticOutput io.Writer) (*Application, error) {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		configurationSearchPaths(),
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(diagnosticOutput),
		logger:                 zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
	}

	cloneEnvironment := clones.CommandEnvironment{
		LoggerProvider:               application.loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider: func() clones.CommandConfiguration {
			return application.configuration.Clone
		},
		StoreProvider: application.openStore,
	}
	interactiveRunner := &clones.InteractiveRunner{CommandEnvironment: cloneEnvironment}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		Version:       resolveVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: interactiveRunner.Run,
	}

	cobraCommand.SetContext(context.Background())
	persistentFlags := cobraCommand.PersistentFlags()
	persistentFlags.StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	persistentFlags.Var(
		flags.NewChoiceValue(&application.logLevelFlagValue, string(utils.LogLevelWarn), logLevelChoices),
		logLevelFlagNameConstant,
		flags.FormatChoiceUsage(string(utils.LogLevelWarn), logLevelChoices, logLevelFlagUsageConstant),
	)
	persistentFlags.Var(
		flags.NewChoiceValue(&application.logFormatFlagValue, string(utils.LogFormatConsole), logFormatChoices),
		logFormatFlagNameConstant,
		flags.FormatChoiceUsage(string(utils.LogFormatConsole), logFormatChoices, logFormatFlagUsageConstant),
	)
	persistentFlags.StringVar(&application.settingsFlagValue, settingsFlagNameConstant, "", settingsFlagUsageConstant)

	_ = cobraCommand.RegisterFlagCompletionFunc(logLevelFlagNameConstant, cobra.FixedCompletions(logLevelChoices, cobra.ShellCompDirectiveNoFileComp))
	_ = cobraCommand.RegisterFlagCompletionFunc(logFormatFlagNameConstant, cobra.FixedCompletions(logFormatChoices, cobra.ShellCompDirectiveNoFileComp))

	registryRendering := func() ui.RenderOptions { return ui.RenderOptions{} }
	builders := []struct {
		name    string
		builder interface{ Build() (*cobra.Command, error) }
	}{
		{name: "add", builder: &registry.AddCommandBuilder{LoggerProvider: application.loggerProvider, StoreProvider: application.openStore, RenderOptionsProvider: registryRendering}},
		{name: "remove", builder: &registry.RemoveCommandBuilder{LoggerProvider: application.loggerProvider, StoreProvider: application.openStore, RenderOptionsProvider: registryRendering}},
		{name: "config", builder: &registry.ConfigCommandBuilder{StoreProvider: application.openStore, RenderOptionsProvider: registryRendering}},
		{name: "create", builder: &clones.CreateCommandBuilder{CommandEnvironment: cloneEnvironment}},
		{name: "list", builder: &clones.ListCommandBuilder{CommandEnvironment: cloneEnvironment}},
		{name: "delete", builder: &clones.DeleteCommandBuilder{CommandEnvironment: cloneEnvironment}},
	}
	for _, entry := range builders {
		subcommand, buildError := entry.builder.Build()
		if buildError != nil {
			return nil, fmt.Errorf(commandBuildErrorTemplateConstant, entry.name, buildError)
		}
		cobraCommand.AddCommand(subcommand)
	}

	application.rootCommand = cobraCommand

	return application, nil
}

// RootCommand exposes the assembled command tree.
func (application *Application) RootCommand() *cobra.Command {
	return application.rootCommand
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	return application.ExecuteContext(context.Background())
}

// ExecuteContext runs the command hierarchy with executionContext, which cancels running git commands.
func (application *Application) ExecuteContext(executionContext context.Context) error {
	executionError := application.rootCommand.ExecuteContext(executionContext)
	if syncError := application.flushLogger(); syncError != nil && executionError == nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute(executionContext context.Context) error {
	application, creationError := NewApplication()
	if creationError != nil {
		return creationError
	}
	return application.ExecuteContext(executionContext)
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelWarn),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatConsole),
	}
	for configurationKey, configurationValue := range registry.DefaultConfigurationValues(registryConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}
	for configurationKey, configurationValue := range clones.DefaultConfigurationValues(cloneConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	if application.persistentFlagChanged(command, settingsFlagNameConstant) {
		application.configuration.Registry.SettingsFile = application.settingsFlagValue
	}
	application.configuration.Registry = application.configuration.Registry.Sanitize()
	application.configuration.Clone = application.configuration.Clone.Sanitize()

	logLevel, levelError := utils.ParseLogLevel(application.configuration.Common.LogLevel)
	if levelError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, levelError)
	}
	logFormat, formatError := utils.ParseLogFormat(application.configuration.Common.LogFormat)
	if formatError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, formatError)
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(logLevel, logFormat)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}
	application.logger = logger

	store, storeError := application.configuration.Registry.OpenStore(nil)
	if storeError != nil {
		return storeError
	}
	application.settingsFilePath = store.Path()

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, string(logLevel)),
		zap.String(configurationLogFormatFieldConstant, string(logFormat)),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
		zap.String(settingsFileFieldConstant, application.settingsFilePath),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
		)
		updatedContext = application.commandContextAccessor.WithSettingsFilePath(updatedContext, application.settingsFilePath)
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

func (application *Application) loggerProvider() *zap.Logger {
	return application.logger
}

func (application *Application) openStore() (*settings.Store, error) {
	if len(application.settingsFilePath) == 0 {
		return nil, errors.New(settingsPathUnavailableMessageConstant)
	}
	return settings.NewStore(application.settingsFilePath)
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	case errors.Is(syncError, syscall.ENOTTY):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	if rootCommand := command.Root(); rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet != nil && flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}

func configurationSearchPaths() []string {
	searchPaths := []string{defaultConfigurationSearchPathConstant}
	if userConfigurationDirectory, directoryError := os.UserConfigDir(); directoryError == nil && len(userConfigurationDirectory) > 0 {
		searchPaths = append(searchPaths, filepath.Join(userConfigurationDirectory, applicationNameConstant))
	}
	return searchPaths
}

func resolveVersion() string {
	buildInformation, available := debug.ReadBuildInfo()
	if !available || len(buildInformation.Main.Version) == 0 || buildInformation.Main.Version == "(devel)" {
		return developmentVersionConstant
	}
	return buildInformation.Main.Version
}
