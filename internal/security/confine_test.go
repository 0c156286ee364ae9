package security_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/cln/internal/security"
)

const (
	testManagedRootConstant = "/home/user/cln"
)

func TestValidatePath(testInstance *testing.T) {
	testCases := []struct {
		name      string
		candidate string
		root      string
		expected  bool
	}{
		{name: "root_itself", candidate: testManagedRootConstant, root: testManagedRootConstant, expected: true},
		{name: "descendant", candidate: "/home/user/cln/repo/main", root: testManagedRootConstant, expected: true},
		{name: "trailing_separator_root", candidate: "/home/user/cln/repo", root: "/home/user/cln/", expected: true},
		{name: "sibling_with_shared_prefix", candidate: "/home/user/clnx/repo", root: testManagedRootConstant, expected: false},
		{name: "parent", candidate: "/home/user", root: testManagedRootConstant, expected: false},
		{name: "unrelated", candidate: "/etc/passwd", root: testManagedRootConstant, expected: false},
		{name: "literal_traversal", candidate: "/home/user/cln/../../etc", root: testManagedRootConstant, expected: false},
		{name: "traversal_inside_root", candidate: "/home/user/cln/repo/../main", root: testManagedRootConstant, expected: false},
		{name: "null_byte", candidate: "/home/user/cln/repo\x00", root: testManagedRootConstant, expected: false},
		{name: "empty_candidate", candidate: "", root: testManagedRootConstant, expected: false},
		{name: "empty_root", candidate: "/home/user/cln/repo", root: "", expected: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			require.Equal(subTest, testCase.expected, security.ValidatePath(testCase.candidate, testCase.root))
		})
	}
}

func TestValidatePathResolvesRelativeCandidates(testInstance *testing.T) {
	workingRoot, absoluteError := filepath.Abs(".")
	require.NoError(testInstance, absoluteError)

	require.True(testInstance, security.ValidatePath("child/grandchild", workingRoot))
	require.True(testInstance, security.ValidatePath(".", workingRoot))
}

func TestValidateRemovalPath(testInstance *testing.T) {
	testCases := []struct {
		name          string
		candidate     string
		expectedError bool
	}{
		{name: "branch_directory", candidate: "/home/user/cln/repo/feature/x", expectedError: false},
		{name: "repository_directory", candidate: "/home/user/cln/repo", expectedError: false},
		{name: "root_itself", candidate: testManagedRootConstant, expectedError: true},
		{name: "root_with_trailing_separator", candidate: "/home/user/cln/", expectedError: true},
		{name: "outside_root", candidate: "/home/user/projects", expectedError: true},
		{name: "traversal", candidate: "/home/user/cln/repo/../..", expectedError: true},
		{name: "null_byte", candidate: "/home/user/cln/repo\x00", expectedError: true},
		{name: "empty_candidate", candidate: "", expectedError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			removalError := security.ValidateRemovalPath(testCase.candidate, testManagedRootConstant)
			if testCase.expectedError {
				require.ErrorIs(subTest, removalError, security.ErrPathEscape)
				return
			}
			require.NoError(subTest, removalError)
		})
	}
}

func TestValidateRemovalPathRejectsUnusableRoots(testInstance *testing.T) {
	for _, root := range []string{"", "/home/user/cln\x00"} {
		require.ErrorIs(testInstance, security.ValidateRemovalPath("/home/user/cln/repo", root), security.ErrPathEscape)
	}
}

func TestSanitizedComponentsStayInsideRoot(testInstance *testing.T) {
	repositoryName, repositoryError := security.SanitizeRepositoryName("../../etc")
	require.NoError(testInstance, repositoryError)
	require.Equal(testInstance, "etc", repositoryName)

	branchName, branchError := security.SanitizeBranchName("../../passwd")
	require.NoError(testInstance, branchError)
	require.Equal(testInstance, "passwd", branchName)

	clonePath := filepath.Join(testManagedRootConstant, repositoryName, branchName)
	require.Equal(testInstance, filepath.Join(testManagedRootConstant, "etc", "passwd"), clonePath)
	require.True(testInstance, security.ValidatePath(clonePath, testManagedRootConstant))

	unsanitizedPath := testManagedRootConstant + "/../../etc/../../passwd"
	require.False(testInstance, security.ValidatePath(unsanitizedPath, testManagedRootConstant))
}
