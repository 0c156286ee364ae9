package pathutils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	tildeSymbolConstant                 = "~"
	homeDirectoryUnavailableTemplate    = "resolve home directory: %w"
	absolutePathResolutionErrorTemplate = "resolve absolute path: %w"
	emptyHomeDirectoryMessageConstant   = "home directory is empty"
)

// ErrEmptyHomeDirectory indicates the provider returned no directory.
var ErrEmptyHomeDirectory = errors.New(emptyHomeDirectoryMessageConstant)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// HomeExpander converts a leading "~" into the user's home directory.
type HomeExpander struct {
	homeDirectoryProvider HomeDirectoryProvider
}

// NewHomeExpander constructs a HomeExpander using os.UserHomeDir.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(os.UserHomeDir)
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom provider.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{homeDirectoryProvider: provider}
}

// Expand resolves "~", "~/..." and "~\..." prefixes. Other inputs, including "~user", are returned unchanged,
// as is the input when the home directory cannot be resolved.
func (expander *HomeExpander) Expand(candidatePath string) string {
	expandedPath, expansionError := expander.expand(candidatePath)
	if expansionError != nil {
		return candidatePath
	}
	return expandedPath
}

// ExpandAbsolute expands the home prefix and returns a cleaned absolute path.
func (expander *HomeExpander) ExpandAbsolute(candidatePath string) (string, error) {
	expandedPath, expansionError := expander.expand(candidatePath)
	if expansionError != nil {
		return "", expansionError
	}
	absolutePath, absoluteError := filepath.Abs(expandedPath)
	if absoluteError != nil {
		return "", fmt.Errorf(absolutePathResolutionErrorTemplate, absoluteError)
	}
	return filepath.Clean(absolutePath), nil
}

func (expander *HomeExpander) expand(candidatePath string) (string, error) {
	if !strings.HasPrefix(candidatePath, tildeSymbolConstant) {
		return candidatePath, nil
	}

	remainder := strings.TrimPrefix(candidatePath, tildeSymbolConstant)
	if len(remainder) > 0 && remainder[0] != '/' && remainder[0] != os.PathSeparator {
		return candidatePath, nil
	}

	provider := os.UserHomeDir
	if expander != nil && expander.homeDirectoryProvider != nil {
		provider = expander.homeDirectoryProvider
	}
	homeDirectory, homeError := provider()
	if homeError != nil {
		return "", fmt.Errorf(homeDirectoryUnavailableTemplate, homeError)
	}
	if len(strings.TrimSpace(homeDirectory)) == 0 {
		return "", ErrEmptyHomeDirectory
	}

	return filepath.Join(homeDirectory, remainder), nil
}
