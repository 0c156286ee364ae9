package completion

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/cln/internal/settings"
)

// SettingsLoader returns the current registry.
type SettingsLoader func() (settings.Settings, error)

// BranchLister returns the branch names cloned under managedRoot.
type BranchLister func(managedRoot string) ([]string, error)

// RepositoryNames completes the first positional argument from the registry. Later
// positions fall back to no completion.
func RepositoryNames(loader SettingsLoader) cobra.CompletionFunc {
	return func(command *cobra.Command, arguments []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(arguments) > 0 || loader == nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		registry, loadError := loader()
		if loadError != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		return filterByPrefix(registry.RepositoryNames(), toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// BranchNames completes the first positional argument from the branches cloned under the managed root.
// Each branch is offered once even when several repositories have it.
func BranchNames(loader SettingsLoader, lister BranchLister) cobra.CompletionFunc {
	return func(command *cobra.Command, arguments []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(arguments) > 0 || loader == nil || lister == nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		registry, loadError := loader()
		if loadError != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		managedRoot, rootError := registry.ManagedRoot()
		if rootError != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		branches, listError := lister(managedRoot)
		if listError != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		return filterByPrefix(uniqueSorted(branches), toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

func filterByPrefix(candidates []string, prefix string) []string {
	matches := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if strings.HasPrefix(candidate, prefix) {
			matches = append(matches, candidate)
		}
	}
	return matches
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	unique := make([]string, 0, len(values))
	for _, value := range values {
		if _, exists := seen[value]; exists {
			continue
		}
		seen[value] = struct{}{}
		unique = append(unique, value)
	}
	sort.Strings(unique)
	return unique
}
