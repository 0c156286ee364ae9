package registry_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/cln/internal/registry"
	"github.com/temirov/cln/internal/security"
	"github.com/temirov/cln/internal/settings"
	"github.com/temirov/cln/internal/ui"
	"github.com/temirov/cln/internal/utils"
	pathutils "github.com/temirov/cln/internal/utils/path"
)

const (
	testSettingsFileNameConstant   = "settings.yaml"
	testRepositoryNameConstant     = "api"
	testRepositoryURLConstant      = "git@github.com:example/api.git"
	testRepositoryAddedLogConstant = "repository registered"
)

type commandBuilder interface {
	Build() (*cobra.Command, error)
}

func newTestStore(testInstance *testing.T) *settings.Store {
	testInstance.Helper()
	store, storeError := settings.NewStore(filepath.Join(testInstance.TempDir(), testSettingsFileNameConstant))
	require.NoError(testInstance, storeError)
	return store
}

func storeProviderFor(store *settings.Store) registry.StoreProvider {
	return func() (*settings.Store, error) { return store, nil }
}

func plainRendering() ui.RenderOptions {
	return ui.RenderOptions{DisableColor: true}
}

func executeBuilder(testInstance *testing.T, builder commandBuilder, executionContext context.Context, arguments ...string) (string, error) {
	testInstance.Helper()
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(outputBuffer)
	command.SetArgs(append([]string{}, arguments...))
	if executionContext != nil {
		command.SetContext(executionContext)
	}
	executionError := command.Execute()
	return outputBuffer.String(), executionError
}

func TestAddCommandStoresSanitizedName(testInstance *testing.T) {
	store := newTestStore(testInstance)
	observedCore, observedLogs := observer.New(zapcore.InfoLevel)

	builder := &registry.AddCommandBuilder{
		LoggerProvider:        func() *zap.Logger { return zap.New(observedCore) },
		StoreProvider:         storeProviderFor(store),
		RenderOptionsProvider: plainRendering,
	}

	output, executionError := executeBuilder(testInstance, builder, nil, "../api!", "  "+testRepositoryURLConstant+"  ")
	require.NoError(testInstance, executionError)
	require.Contains(testInstance, output, "Added api → "+testRepositoryURLConstant)

	loaded, loadError := store.Load()
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, map[string]string{testRepositoryNameConstant: testRepositoryURLConstant}, loaded.Repositories)

	require.Equal(testInstance, 1, observedLogs.FilterMessage(testRepositoryAddedLogConstant).Len())
}

func TestAddCommandRejectsInvalidInput(testInstance *testing.T) {
	testCases := []struct {
		name          string
		arguments     []string
		expectedError error
	}{
		{
			name:          "injection_in_url",
			arguments:     []string{testRepositoryNameConstant, "https://example.com/repo.git;rm -rf /"},
			expectedError: security.ErrInvalidRemote,
		},
		{
			name:          "file_scheme",
			arguments:     []string{testRepositoryNameConstant, "file:///etc/passwd"},
			expectedError: security.ErrInvalidRemote,
		},
		{
			name:          "unsalvageable_name",
			arguments:     []string{"../..", testRepositoryURLConstant},
			expectedError: security.ErrInvalidIdentifier,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			store := newTestStore(testInstance)
			builder := &registry.AddCommandBuilder{StoreProvider: storeProviderFor(store), RenderOptionsProvider: plainRendering}

			_, executionError := executeBuilder(testInstance, builder, nil, testCase.arguments...)
			require.ErrorIs(testInstance, executionError, testCase.expectedError)

			loaded, loadError := store.Load()
			require.NoError(testInstance, loadError)
			require.Empty(testInstance, loaded.Repositories)
		})
	}
}

func TestAddCommandRequiresStoreProvider(testInstance *testing.T) {
	builder := &registry.AddCommandBuilder{}
	_, executionError := executeBuilder(testInstance, builder, nil, testRepositoryNameConstant, testRepositoryURLConstant)
	require.ErrorIs(testInstance, executionError, registry.ErrStoreProviderNotConfigured)
}

func TestRemoveCommand(testInstance *testing.T) {
	store := newTestStore(testInstance)
	initial := settings.Default()
	_, addError := initial.AddRepository(testRepositoryNameConstant, testRepositoryURLConstant)
	require.NoError(testInstance, addError)
	require.NoError(testInstance, store.Save(initial))

	builder := &registry.RemoveCommandBuilder{StoreProvider: storeProviderFor(store), RenderOptionsProvider: plainRendering}

	output, executionError := executeBuilder(testInstance, builder, nil, testRepositoryNameConstant)
	require.NoError(testInstance, executionError)
	require.Contains(testInstance, output, "Removed api")

	loaded, loadError := store.Load()
	require.NoError(testInstance, loadError)
	require.Empty(testInstance, loaded.Repositories)

	_, missingError := executeBuilder(testInstance, builder, nil, testRepositoryNameConstant)
	require.True(testInstance, errors.Is(missingError, settings.ErrRepositoryNotConfigured))
}

func TestConfigCommandPrintsLocations(testInstance *testing.T) {
	store := newTestStore(testInstance)
	outputDirectory := testInstance.TempDir()
	initial := settings.Settings{OutputDirectory: outputDirectory, Repositories: map[string]string{}}
	_, addError := initial.AddRepository(testRepositoryNameConstant, testRepositoryURLConstant)
	require.NoError(testInstance, addError)
	require.NoError(testInstance, store.Save(initial))

	executionContext := utils.NewCommandContextAccessor().WithConfigurationFilePath(context.Background(), "/etc/cln/config.yaml")
	builder := &registry.ConfigCommandBuilder{StoreProvider: storeProviderFor(store), RenderOptionsProvider: plainRendering}

	output, executionError := executeBuilder(testInstance, builder, executionContext)
	require.NoError(testInstance, executionError)
	require.Contains(testInstance, output, store.Path())
	require.Contains(testInstance, output, "/etc/cln/config.yaml")
	require.Contains(testInstance, output, filepath.Join(outputDirectory, settings.ManagedRootDirectoryName))
	require.Contains(testInstance, output, "api → "+testRepositoryURLConstant)
}

func TestConfigCommandWithEmptyRegistry(testInstance *testing.T) {
	store := newTestStore(testInstance)
	builder := &registry.ConfigCommandBuilder{StoreProvider: storeProviderFor(store), RenderOptionsProvider: plainRendering}

	output, executionError := executeBuilder(testInstance, builder, nil)
	require.NoError(testInstance, executionError)
	require.Contains(testInstance, output, "(built-in defaults)")
	require.True(testInstance, strings.Contains(output, "No repositories configured"))
}

func TestCommandConfigurationOpenStoreExpandsHome(testInstance *testing.T) {
	homeDirectory := testInstance.TempDir()
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) { return homeDirectory, nil })

	configuration := registry.CommandConfiguration{SettingsFile: "~/cln/settings.yaml"}
	store, storeError := configuration.OpenStore(expander)
	require.NoError(testInstance, storeError)
	require.Equal(testInstance, filepath.Join(homeDirectory, "cln", "settings.yaml"), store.Path())

	require.NotEmpty(testInstance, registry.CommandConfiguration{SettingsFile: "   "}.Sanitize().SettingsFile)
}
