package utils_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/cln/internal/utils"
)

func TestCommandContextAccessorRoundTrip(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	executionContext := accessor.WithConfigurationFilePath(context.Background(), "/etc/cln/config.yaml")
	executionContext = accessor.WithSettingsFilePath(executionContext, "/home/user/.config/cln/settings.yaml")

	configurationFilePath, configurationAvailable := accessor.ConfigurationFilePath(executionContext)
	require.True(testInstance, configurationAvailable)
	require.Equal(testInstance, "/etc/cln/config.yaml", configurationFilePath)

	settingsFilePath, settingsAvailable := accessor.SettingsFilePath(executionContext)
	require.True(testInstance, settingsAvailable)
	require.Equal(testInstance, "/home/user/.config/cln/settings.yaml", settingsFilePath)
}

func TestCommandContextAccessorMissingValues(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	_, available := accessor.SettingsFilePath(context.Background())
	require.False(testInstance, available)

	emptyContext := accessor.WithConfigurationFilePath(context.Background(), "")
	_, available = accessor.ConfigurationFilePath(emptyContext)
	require.False(testInstance, available)
}
