package utils

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	configurationKeySeparatorConstant           = "."
	environmentKeySeparatorConstant             = "_"
	sliceSeparatorConstant                      = ","
	configurationReadErrorTemplateConstant      = "failed to read configuration: %w"
	configurationUnmarshalErrorTemplateConstant = "failed to parse configuration: %w"
	embeddedConfigurationErrorTemplateConstant  = "failed to merge embedded configuration: %w"
	configurationFileMissingTemplateConstant    = "configuration file %s: %w"
)

// ConfigurationLoader resolves configuration in layers: defaults, embedded YAML, one config
// file (explicit or discovered on the search paths), then prefixed environment variables.
// Keys that do not map onto the target structure are rejected.
type ConfigurationLoader struct {
	configurationName string
	configurationType string
	environmentPrefix string
	searchPaths       []string
	embeddedLayer     configurationLayer
}

type configurationLayer struct {
	content           []byte
	configurationType string
}

// LoadedConfiguration reports which layers contributed to a load.
type LoadedConfiguration struct {
	ConfigFileUsed  string
	EmbeddedApplied bool
}

// NewConfigurationLoader creates a loader reading <configurationName>.<configurationType> from searchPaths.
func NewConfigurationLoader(configurationName string, configurationType string, environmentPrefix string, searchPaths []string) *ConfigurationLoader {
	return &ConfigurationLoader{
		configurationName: configurationName,
		configurationType: configurationType,
		environmentPrefix: environmentPrefix,
		searchPaths:       append([]string(nil), searchPaths...),
	}
}

// SetEmbeddedConfiguration installs the lowest file-backed layer. An empty payload clears it.
func (loader *ConfigurationLoader) SetEmbeddedConfiguration(configurationData []byte, configurationType string) {
	if loader == nil {
		return
	}
	loader.embeddedLayer = configurationLayer{
		content:           append([]byte(nil), configurationData...),
		configurationType: strings.TrimSpace(configurationType),
	}
}

// LoadConfiguration decodes every layer into targetConfiguration. An explicit configurationFilePath
// must exist; a file missing from the search paths is not an error.
func (loader *ConfigurationLoader) LoadConfiguration(configurationFilePath string, defaultValues map[string]any, targetConfiguration any) (LoadedConfiguration, error) {
	viperInstance := viper.New()
	for defaultKey, defaultValue := range defaultValues {
		viperInstance.SetDefault(defaultKey, defaultValue)
	}

	var loadedConfiguration LoadedConfiguration

	embeddedApplied, embeddedError := loader.applyEmbeddedLayer(viperInstance)
	if embeddedError != nil {
		return LoadedConfiguration{}, embeddedError
	}
	loadedConfiguration.EmbeddedApplied = embeddedApplied

	configFileUsed, fileError := loader.applyFileLayer(viperInstance, configurationFilePath)
	if fileError != nil {
		return LoadedConfiguration{}, fileError
	}
	loadedConfiguration.ConfigFileUsed = configFileUsed

	loader.bindEnvironment(viperInstance)

	decodeOptions := []viper.DecoderConfigOption{
		viper.DecodeHook(decodeHooks()),
		func(decoderConfiguration *mapstructure.DecoderConfig) {
			decoderConfiguration.ErrorUnused = true
		},
	}
	if unmarshalError := viperInstance.Unmarshal(targetConfiguration, decodeOptions...); unmarshalError != nil {
		return LoadedConfiguration{}, fmt.Errorf(configurationUnmarshalErrorTemplateConstant, unmarshalError)
	}

	return loadedConfiguration, nil
}

func (loader *ConfigurationLoader) applyEmbeddedLayer(viperInstance *viper.Viper) (bool, error) {
	if len(loader.embeddedLayer.content) == 0 {
		return false, nil
	}

	layerType := loader.embeddedLayer.configurationType
	if len(layerType) == 0 {
		layerType = loader.configurationType
	}
	viperInstance.SetConfigType(layerType)
	if mergeError := viperInstance.MergeConfig(bytes.NewReader(loader.embeddedLayer.content)); mergeError != nil {
		return false, fmt.Errorf(embeddedConfigurationErrorTemplateConstant, mergeError)
	}
	return true, nil
}

func (loader *ConfigurationLoader) applyFileLayer(viperInstance *viper.Viper, configurationFilePath string) (string, error) {
	viperInstance.SetConfigType(loader.configurationType)

	if len(configurationFilePath) > 0 {
		if _, statError := os.Stat(configurationFilePath); statError != nil {
			return "", fmt.Errorf(configurationReadErrorTemplateConstant, fmt.Errorf(configurationFileMissingTemplateConstant, configurationFilePath, statError))
		}
		viperInstance.SetConfigFile(configurationFilePath)
	} else {
		viperInstance.SetConfigName(loader.configurationName)
		for _, searchPath := range loader.searchPaths {
			viperInstance.AddConfigPath(searchPath)
		}
	}

	readError := viperInstance.MergeInConfig()
	var notFoundError viper.ConfigFileNotFoundError
	switch {
	case readError == nil:
		return viperInstance.ConfigFileUsed(), nil
	case errors.As(readError, &notFoundError):
		return "", nil
	default:
		return "", fmt.Errorf(configurationReadErrorTemplateConstant, readError)
	}
}

func (loader *ConfigurationLoader) bindEnvironment(viperInstance *viper.Viper) {
	viperInstance.SetEnvPrefix(loader.environmentPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(configurationKeySeparatorConstant, environmentKeySeparatorConstant))
	viperInstance.AutomaticEnv()
}

// decodeHooks turns duration strings such as "10m" into time.Duration and comma lists into slices.
func decodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(sliceSeparatorConstant),
	)
}
