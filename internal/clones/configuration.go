package clones

import (
	"strings"
	"time"
)

const (
	defaultBranchConstant                 = "main"
	defaultGitTimeoutConstant             = 10 * time.Minute
	defaultGitTimeoutStringConstant       = "10m"
	defaultBranchConfigurationKeyConstant = "default_branch"
	gitTimeoutConfigurationKeyConstant    = "git_timeout"
	configurationKeySeparatorConstant     = "."
)

// CommandConfiguration captures persisted configuration for clone commands.
type CommandConfiguration struct {
	DefaultBranch string        `mapstructure:"default_branch"`
	GitTimeout    time.Duration `mapstructure:"git_timeout"`
}

// DefaultCommandConfiguration returns baseline configuration values for clone commands.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		DefaultBranch: defaultBranchConstant,
		GitTimeout:    defaultGitTimeoutConstant,
	}
}

// DefaultConfigurationValues returns Viper defaults keyed below prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	return map[string]any{
		prefix + configurationKeySeparatorConstant + defaultBranchConfigurationKeyConstant: defaultBranchConstant,
		prefix + configurationKeySeparatorConstant + gitTimeoutConfigurationKeyConstant:    defaultGitTimeoutStringConstant,
	}
}

// Sanitize trims values and restores defaults for empty or non-positive settings.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.DefaultBranch = strings.TrimSpace(configuration.DefaultBranch)
	if len(sanitized.DefaultBranch) == 0 {
		sanitized.DefaultBranch = defaultBranchConstant
	}
	if sanitized.GitTimeout <= 0 {
		sanitized.GitTimeout = defaultGitTimeoutConstant
	}
	return sanitized
}
