package utils

import "context"

const (
	configurationFilePathContextKeyConstant = commandContextKey("configurationFilePath")
	settingsFilePathContextKeyConstant      = commandContextKey("settingsFilePath")
)

type commandContextKey string

// CommandContextAccessor stores the paths resolved during startup in command contexts.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath attaches the configuration file path to the provided context.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	return accessor.withString(parentContext, configurationFilePathContextKeyConstant, configurationFilePath)
}

// ConfigurationFilePath extracts the configuration file path from the provided context.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	return accessor.stringValue(executionContext, configurationFilePathContextKeyConstant)
}

// WithSettingsFilePath attaches the registry settings file path to the provided context.
func (accessor CommandContextAccessor) WithSettingsFilePath(parentContext context.Context, settingsFilePath string) context.Context {
	return accessor.withString(parentContext, settingsFilePathContextKeyConstant, settingsFilePath)
}

// SettingsFilePath extracts the registry settings file path from the provided context.
func (accessor CommandContextAccessor) SettingsFilePath(executionContext context.Context) (string, bool) {
	return accessor.stringValue(executionContext, settingsFilePathContextKeyConstant)
}

func (accessor CommandContextAccessor) withString(parentContext context.Context, key commandContextKey, value string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, key, value)
}

func (accessor CommandContextAccessor) stringValue(executionContext context.Context, key commandContextKey) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	value, available := executionContext.Value(key).(string)
	if !available || len(value) == 0 {
		return "", false
	}
	return value, true
}
