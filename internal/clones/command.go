package clones

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/cln/internal/execshell"
	"github.com/temirov/cln/internal/prompt"
	"github.com/temirov/cln/internal/settings"
	"github.com/temirov/cln/internal/sidechannel"
	"github.com/temirov/cln/internal/ui"
)

const (
	storeProviderMissingMessageConstant = "clone command store provider not configured"
	loadRegistryErrorTemplateConstant   = "load registry: %w"
	clonedMessageConstant               = "Successfully cloned!"
	clonePathMessageTemplateConstant    = "Path: %s"
	publishPathErrorTemplateConstant    = "publish clone path: %w"
)

// ErrStoreProviderNotConfigured indicates a builder without a way to open the settings store.
var ErrStoreProviderNotConfigured = errors.New(storeProviderMissingMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// StoreProvider opens the settings store selected by configuration and flags.
type StoreProvider func() (*settings.Store, error)

// PublisherProvider builds the side channel that hands a clone path back to the shell.
type PublisherProvider func(writer io.Writer) (sidechannel.Publisher, error)

// Prompter asks the interactive questions used by clone commands.
type Prompter interface {
	Confirm(prompt string) (bool, error)
	Select(prompt string, options []string) (int, error)
	Text(prompt string, defaultValue string) (string, error)
}

// PrompterProvider builds a prompter bound to a command's streams.
type PrompterProvider func(command *cobra.Command) Prompter

// CommandEnvironment holds the collaborators shared by every clone command. Nil fields fall back
// to the operating system implementations.
type CommandEnvironment struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
	RenderOptionsProvider        func() ui.RenderOptions
	StoreProvider                StoreProvider
	GitExecutor                  execshell.GitExecutor
	FileSystem                   FileSystem
	PrompterProvider             PrompterProvider
	PublisherProvider            PublisherProvider
}

func (environment CommandEnvironment) resolveLogger() *zap.Logger {
	var logger *zap.Logger
	if environment.LoggerProvider != nil {
		logger = environment.LoggerProvider()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

func (environment CommandEnvironment) resolveConfiguration() CommandConfiguration {
	if environment.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return environment.ConfigurationProvider().Sanitize()
}

func (environment CommandEnvironment) resolveExecutor(logger *zap.Logger) (execshell.GitExecutor, error) {
	if environment.GitExecutor != nil {
		return environment.GitExecutor, nil
	}

	var observers []execshell.CommandEventObserver
	if environment.HumanReadableLoggingProvider != nil && environment.HumanReadableLoggingProvider() {
		observers = append(observers, ui.NewGitProgressLogger(logger))
	}
	return execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), observers...)
}

func (environment CommandEnvironment) resolveService(logger *zap.Logger) (*Service, error) {
	executor, executorError := environment.resolveExecutor(logger)
	if executorError != nil {
		return nil, executorError
	}
	return NewService(ServiceDependencies{
		FileSystem:  environment.FileSystem,
		GitExecutor: executor,
		Logger:      logger,
	})
}

func (environment CommandEnvironment) loadRegistry() (settings.Settings, error) {
	if environment.StoreProvider == nil {
		return settings.Settings{}, ErrStoreProviderNotConfigured
	}
	store, storeError := environment.StoreProvider()
	if storeError != nil {
		return settings.Settings{}, storeError
	}
	registry, loadError := store.Load()
	if loadError != nil {
		return settings.Settings{}, fmt.Errorf(loadRegistryErrorTemplateConstant, loadError)
	}
	return registry, nil
}

func (environment CommandEnvironment) newPrinter(command *cobra.Command) *ui.Printer {
	options := ui.RenderOptions{ShowPaths: true}
	if environment.RenderOptionsProvider != nil {
		options = environment.RenderOptionsProvider()
	}
	return ui.NewPrinter(command.OutOrStdout(), options)
}

func (environment CommandEnvironment) resolvePrompter(command *cobra.Command) Prompter {
	if environment.PrompterProvider != nil {
		return environment.PrompterProvider(command)
	}
	return prompt.NewIOPrompter(command.InOrStdin(), command.ErrOrStderr())
}

func (environment CommandEnvironment) resolvePublisher(command *cobra.Command) (sidechannel.Publisher, error) {
	if environment.PublisherProvider != nil {
		return environment.PublisherProvider(command.OutOrStdout())
	}
	return sidechannel.NewTempFilePublisher(command.OutOrStdout())
}

// cloneAndPublish runs the clone, hands its path to the side channel and reports it.
func (environment CommandEnvironment) cloneAndPublish(command *cobra.Command, registry settings.Settings, options CloneOptions) (Clone, error) {
	logger := environment.resolveLogger()

	service, serviceError := environment.resolveService(logger)
	if serviceError != nil {
		return Clone{}, serviceError
	}

	clone, cloneError := service.Clone(command.Context(), registry, options)
	if cloneError != nil {
		return Clone{}, cloneError
	}

	publisher, publisherError := environment.resolvePublisher(command)
	if publisherError != nil {
		return Clone{}, fmt.Errorf(publishPathErrorTemplateConstant, publisherError)
	}
	if _, publishError := publisher.Publish(clone.Path); publishError != nil {
		return Clone{}, fmt.Errorf(publishPathErrorTemplateConstant, publishError)
	}

	printer := environment.newPrinter(command)
	if printError := printer.Success(clonedMessageConstant); printError != nil {
		return Clone{}, printError
	}
	return clone, printer.Plain(fmt.Sprintf(clonePathMessageTemplateConstant, clone.Path))
}

func (environment CommandEnvironment) listBranchNames(managedRoot string) ([]string, error) {
	service, serviceError := environment.resolveService(environment.resolveLogger())
	if serviceError != nil {
		return nil, serviceError
	}
	discovered, listError := service.List(managedRoot)
	if listError != nil {
		return nil, listError
	}
	branchNames := make([]string, 0, len(discovered))
	for _, clone := range discovered {
		branchNames = append(branchNames, clone.Branch)
	}
	return branchNames, nil
}
