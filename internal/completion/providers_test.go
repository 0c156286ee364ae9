package completion_test

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/temirov/cln/internal/completion"
	"github.com/temirov/cln/internal/settings"
)

const (
	testManagedRootParentConstant = "/srv/works"
	testManagedRootConstant       = "/srv/works/cln"
)

func registryFixture() settings.Settings {
	return settings.Settings{
		OutputDirectory: testManagedRootParentConstant,
		Repositories: map[string]string{
			"api":      "git@github.com:example/api.git",
			"app":      "https://github.com/example/app.git",
			"frontend": "https://github.com/example/frontend.git",
		},
	}
}

func TestRepositoryNames(testInstance *testing.T) {
	testCases := []struct {
		name              string
		arguments         []string
		toComplete        string
		loadError         error
		expectedNames     []string
		expectedDirective cobra.ShellCompDirective
	}{
		{
			name:              "filters_by_prefix",
			toComplete:        "a",
			expectedNames:     []string{"api", "app"},
			expectedDirective: cobra.ShellCompDirectiveNoFileComp,
		},
		{
			name:              "second_position_not_completed",
			arguments:         []string{"api"},
			expectedDirective: cobra.ShellCompDirectiveNoFileComp,
		},
		{
			name:              "load_failure",
			loadError:         errors.New("settings unreadable"),
			expectedDirective: cobra.ShellCompDirectiveError,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			completionFunction := completion.RepositoryNames(func() (settings.Settings, error) {
				return registryFixture(), testCase.loadError
			})

			names, directive := completionFunction(&cobra.Command{}, testCase.arguments, testCase.toComplete)
			require.Equal(testInstance, testCase.expectedDirective, directive)
			if testCase.expectedNames == nil {
				require.Empty(testInstance, names)
				return
			}
			require.Equal(testInstance, testCase.expectedNames, names)
		})
	}
}

func TestBranchNamesDeduplicatesAcrossRepositories(testInstance *testing.T) {
	var requestedRoot string
	completionFunction := completion.BranchNames(
		func() (settings.Settings, error) { return registryFixture(), nil },
		func(managedRoot string) ([]string, error) {
			requestedRoot = managedRoot
			return []string{"main", "feature/login", "main", "fix"}, nil
		},
	)

	names, directive := completionFunction(&cobra.Command{}, nil, "f")
	require.Equal(testInstance, cobra.ShellCompDirectiveNoFileComp, directive)
	require.Equal(testInstance, []string{"feature/login", "fix"}, names)
	require.Equal(testInstance, testManagedRootConstant, requestedRoot)
}

func TestBranchNamesListFailure(testInstance *testing.T) {
	completionFunction := completion.BranchNames(
		func() (settings.Settings, error) { return registryFixture(), nil },
		func(string) ([]string, error) { return nil, errors.New("unreadable") },
	)

	_, directive := completionFunction(&cobra.Command{}, nil, "")
	require.Equal(testInstance, cobra.ShellCompDirectiveError, directive)
}
