package clones

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

const (
	noRepositoriesMessageConstant     = "no repositories configured; use \"cln add <name> <url>\" to add one"
	repositorySelectionPromptConstant = "Select a repository to clone:"
	branchPromptTemplateConstant      = "Enter branch name for %s"
)

// ErrNoRepositoriesConfigured indicates interactive mode found an empty registry.
var ErrNoRepositoriesConfigured = errors.New(noRepositoriesMessageConstant)

// InteractiveRunner drives the no-argument mode: pick a repository, name a branch, clone it.
type InteractiveRunner struct {
	CommandEnvironment
}

// Run implements cobra's RunE for the root command.
func (runner *InteractiveRunner) Run(command *cobra.Command, arguments []string) error {
	registry, loadError := runner.loadRegistry()
	if loadError != nil {
		return loadError
	}

	repositoryNames := registry.RepositoryNames()
	if len(repositoryNames) == 0 {
		return ErrNoRepositoriesConfigured
	}

	prompter := runner.resolvePrompter(command)
	selectedIndex, selectError := prompter.Select(repositorySelectionPromptConstant, repositoryNames)
	if selectError != nil {
		return selectError
	}
	repositoryName := repositoryNames[selectedIndex]

	configuration := runner.resolveConfiguration()
	branchName, branchError := prompter.Text(fmt.Sprintf(branchPromptTemplateConstant, repositoryName), configuration.DefaultBranch)
	if branchError != nil {
		return branchError
	}

	_, cloneError := runner.cloneAndPublish(command, registry, CloneOptions{
		RepositoryName: repositoryName,
		BranchName:     branchName,
		Timeout:        configuration.GitTimeout,
	})
	return cloneError
}
