package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	settingsDirectoryPermissionsConstant = 0o700
	settingsFilePermissionsConstant      = 0o600
	settingsTemporaryPatternConstant     = ".settings-*.yaml"
	yamlIndentationConstant              = 2
	settingsPathMissingMessageConstant   = "settings file path not configured"
	readSettingsErrorTemplateConstant    = "read settings: %w"
	parseSettingsErrorTemplateConstant   = "parse settings: %w"
	encodeSettingsErrorTemplateConstant  = "encode settings: %w"
	writeSettingsErrorTemplateConstant   = "write settings: %w"
)

// ErrSettingsPathNotConfigured indicates a store constructed without a file path.
var ErrSettingsPathNotConfigured = errors.New(settingsPathMissingMessageConstant)

// Store persists Settings as YAML at a fixed path.
type Store struct {
	path string
}

// NewStore constructs a store bound to path.
func NewStore(path string) (*Store, error) {
	trimmedPath := strings.TrimSpace(path)
	if len(trimmedPath) == 0 {
		return nil, ErrSettingsPathNotConfigured
	}
	return &Store{path: trimmedPath}, nil
}

// Path returns the settings file location.
func (store *Store) Path() string {
	return store.path
}

// Load reads the settings file. A missing or empty file yields Default.
func (store *Store) Load() (Settings, error) {
	contentBytes, readError := os.ReadFile(store.path)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return Default(), nil
		}
		return Settings{}, fmt.Errorf(readSettingsErrorTemplateConstant, readError)
	}

	loadedSettings := Default()
	if len(bytes.TrimSpace(contentBytes)) == 0 {
		return loadedSettings, nil
	}

	if unmarshalError := yaml.Unmarshal(contentBytes, &loadedSettings); unmarshalError != nil {
		return Settings{}, fmt.Errorf(parseSettingsErrorTemplateConstant, unmarshalError)
	}

	if len(strings.TrimSpace(loadedSettings.OutputDirectory)) == 0 {
		loadedSettings.OutputDirectory = DefaultOutputDirectory
	}
	if loadedSettings.Repositories == nil {
		loadedSettings.Repositories = map[string]string{}
	}
	return loadedSettings, nil
}

// Save writes settings to a temporary sibling and renames it over the settings file.
func (store *Store) Save(settings Settings) error {
	var encodedBuffer bytes.Buffer
	encoder := yaml.NewEncoder(&encodedBuffer)
	encoder.SetIndent(yamlIndentationConstant)
	if encodeError := encoder.Encode(settings); encodeError != nil {
		return fmt.Errorf(encodeSettingsErrorTemplateConstant, encodeError)
	}
	if closeError := encoder.Close(); closeError != nil {
		return fmt.Errorf(encodeSettingsErrorTemplateConstant, closeError)
	}

	settingsDirectory := filepath.Dir(store.path)
	if mkdirError := os.MkdirAll(settingsDirectory, settingsDirectoryPermissionsConstant); mkdirError != nil {
		return fmt.Errorf(writeSettingsErrorTemplateConstant, mkdirError)
	}

	temporaryFile, createError := os.CreateTemp(settingsDirectory, settingsTemporaryPatternConstant)
	if createError != nil {
		return fmt.Errorf(writeSettingsErrorTemplateConstant, createError)
	}
	temporaryPath := temporaryFile.Name()

	writeError := writeAndClose(temporaryFile, encodedBuffer.Bytes())
	if writeError == nil {
		writeError = os.Rename(temporaryPath, store.path)
	}
	if writeError != nil {
		_ = os.Remove(temporaryPath)
		return fmt.Errorf(writeSettingsErrorTemplateConstant, writeError)
	}
	return nil
}

func writeAndClose(file *os.File, content []byte) error {
	if chmodError := file.Chmod(settingsFilePermissionsConstant); chmodError != nil {
		_ = file.Close()
		return chmodError
	}
	if _, writeError := file.Write(content); writeError != nil {
		_ = file.Close()
		return writeError
	}
	if syncError := file.Sync(); syncError != nil {
		_ = file.Close()
		return syncError
	}
	return file.Close()
}
