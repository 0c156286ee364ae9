package settings

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/temirov/cln/internal/security"
	pathutils "github.com/temirov/cln/internal/utils/path"
)

const (
	// DefaultOutputDirectory is used when the settings file does not name one.
	DefaultOutputDirectory = "~/works"

	// ManagedRootDirectoryName is appended to the output directory to form the managed root.
	ManagedRootDirectoryName = "cln"
)

const (
	repositoryNotConfiguredMessageConstant = "repository is not configured"
	outputDirectoryMissingMessageConstant  = "output directory is not configured"
	managedRootResolutionErrorTemplate     = "resolve managed root: %w"
	repositoryNameErrorTemplateConstant    = "repository name: %w"
	repositoryURLErrorTemplateConstant     = "repository URL: %w"
)

var (
	// ErrRepositoryNotConfigured indicates the registry has no entry for the requested name.
	ErrRepositoryNotConfigured = errors.New(repositoryNotConfiguredMessageConstant)

	// ErrOutputDirectoryNotConfigured indicates an empty output directory.
	ErrOutputDirectoryNotConfigured = errors.New(outputDirectoryMissingMessageConstant)
)

// Settings is the persisted registry: where clones live and which remotes are known by name.
type Settings struct {
	OutputDirectory string            `yaml:"out_dir"`
	Repositories    map[string]string `yaml:"repositories"`
}

// Default returns settings with the default output directory and an empty registry.
func Default() Settings {
	return Settings{
		OutputDirectory: DefaultOutputDirectory,
		Repositories:    map[string]string{},
	}
}

// ManagedRoot returns the absolute directory every clone is confined to.
func (settings Settings) ManagedRoot() (string, error) {
	return settings.ManagedRootWithExpander(pathutils.NewHomeExpander())
}

// ManagedRootWithExpander resolves the managed root using the provided home expander.
func (settings Settings) ManagedRootWithExpander(expander *pathutils.HomeExpander) (string, error) {
	trimmedOutputDirectory := strings.TrimSpace(settings.OutputDirectory)
	if len(trimmedOutputDirectory) == 0 {
		return "", ErrOutputDirectoryNotConfigured
	}

	absoluteOutputDirectory, expansionError := expander.ExpandAbsolute(trimmedOutputDirectory)
	if expansionError != nil {
		return "", fmt.Errorf(managedRootResolutionErrorTemplate, expansionError)
	}

	return filepath.Join(absoluteOutputDirectory, ManagedRootDirectoryName), nil
}

// AddRepository sanitizes the name, validates the remote and records the entry, replacing any previous URL.
// It returns the sanitized name under which the remote was stored.
func (settings *Settings) AddRepository(rawName string, rawURL string) (string, error) {
	repositoryName, nameError := security.SanitizeRepositoryName(rawName)
	if nameError != nil {
		return "", fmt.Errorf(repositoryNameErrorTemplateConstant, nameError)
	}

	repositoryURL, urlError := security.ValidateGitURL(rawURL)
	if urlError != nil {
		return "", fmt.Errorf(repositoryURLErrorTemplateConstant, urlError)
	}

	if settings.Repositories == nil {
		settings.Repositories = map[string]string{}
	}
	settings.Repositories[repositoryName] = repositoryURL
	return repositoryName, nil
}

// RemoveRepository deletes a registry entry.
func (settings *Settings) RemoveRepository(rawName string) (string, error) {
	repositoryName, nameError := security.SanitizeRepositoryName(rawName)
	if nameError != nil {
		return "", fmt.Errorf(repositoryNameErrorTemplateConstant, nameError)
	}

	if _, exists := settings.Repositories[repositoryName]; !exists {
		return "", ErrRepositoryNotConfigured
	}
	delete(settings.Repositories, repositoryName)
	return repositoryName, nil
}

// RepositoryURL looks up a remote by name. The stored value is re-validated because the file may be edited by hand.
func (settings Settings) RepositoryURL(rawName string) (string, string, error) {
	repositoryName, nameError := security.SanitizeRepositoryName(rawName)
	if nameError != nil {
		return "", "", fmt.Errorf(repositoryNameErrorTemplateConstant, nameError)
	}

	storedURL, exists := settings.Repositories[repositoryName]
	if !exists {
		return "", "", ErrRepositoryNotConfigured
	}

	repositoryURL, urlError := security.ValidateGitURL(storedURL)
	if urlError != nil {
		return "", "", fmt.Errorf(repositoryURLErrorTemplateConstant, urlError)
	}
	return repositoryName, repositoryURL, nil
}

// RepositoryNames returns the registered names in lexical order.
func (settings Settings) RepositoryNames() []string {
	repositoryNames := make([]string, 0, len(settings.Repositories))
	for repositoryName := range settings.Repositories {
		repositoryNames = append(repositoryNames, repositoryName)
	}
	sort.Strings(repositoryNames)
	return repositoryNames
}
