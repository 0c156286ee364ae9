package registry

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/cln/internal/settings"
	pathutils "github.com/temirov/cln/internal/utils/path"
)

const (
	settingsFileConfigurationKeyConstant = "settings_file"
	configurationKeySeparatorConstant    = "."
	applicationDirectoryNameConstant     = "cln"
	settingsFileNameConstant             = "settings.yaml"
)

// CommandConfiguration captures persisted configuration for registry commands.
type CommandConfiguration struct {
	SettingsFile string `mapstructure:"settings_file"`
}

// DefaultCommandConfiguration returns baseline configuration values for registry commands.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{SettingsFile: DefaultSettingsFilePath()}
}

// DefaultConfigurationValues returns Viper defaults keyed below prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	return map[string]any{
		prefix + configurationKeySeparatorConstant + settingsFileConfigurationKeyConstant: DefaultSettingsFilePath(),
	}
}

// DefaultSettingsFilePath returns <user config dir>/cln/settings.yaml, falling back to ~/.cln when
// the platform has no configuration directory.
func DefaultSettingsFilePath() string {
	configurationDirectory, directoryError := os.UserConfigDir()
	if directoryError != nil || len(configurationDirectory) == 0 {
		return filepath.Join("~", "."+applicationDirectoryNameConstant, settingsFileNameConstant)
	}
	return filepath.Join(configurationDirectory, applicationDirectoryNameConstant, settingsFileNameConstant)
}

// Sanitize trims the configured path and restores the default when it is empty.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.SettingsFile = strings.TrimSpace(configuration.SettingsFile)
	if len(sanitized.SettingsFile) == 0 {
		sanitized.SettingsFile = DefaultSettingsFilePath()
	}
	return sanitized
}

// OpenStore expands a leading tilde in the configured path and opens the settings store there.
func (configuration CommandConfiguration) OpenStore(expander *pathutils.HomeExpander) (*settings.Store, error) {
	if expander == nil {
		expander = pathutils.NewHomeExpander()
	}
	settingsFilePath, expandError := expander.ExpandAbsolute(configuration.Sanitize().SettingsFile)
	if expandError != nil {
		return nil, expandError
	}
	return settings.NewStore(settingsFilePath)
}
