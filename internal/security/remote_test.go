package security_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/cln/internal/security"
)

func TestValidateGitURLAcceptsSupportedShapes(testInstance *testing.T) {
	testCases := []struct {
		name           string
		input          string
		expectedRemote string
	}{
		{name: "https", input: "https://github.com/user/repo.git", expectedRemote: "https://github.com/user/repo.git"},
		{name: "http_with_port", input: "http://git.internal:8080/team/repo", expectedRemote: "http://git.internal:8080/team/repo"},
		{name: "scp_like", input: "git@github.com:user/repo.git", expectedRemote: "git@github.com:user/repo.git"},
		{name: "ssh_scheme", input: "ssh://git@example.com:2222/group/repo.git", expectedRemote: "ssh://git@example.com:2222/group/repo.git"},
		{name: "bare_host", input: "example.com:group/repo.git", expectedRemote: "example.com:group/repo.git"},
		{name: "git_scheme_fallback", input: "git://example.com/group/repo.git", expectedRemote: "git://example.com/group/repo.git"},
		{name: "trimmed", input: "  https://github.com/user/repo.git\t", expectedRemote: "https://github.com/user/repo.git"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			validatedRemote, validationError := security.ValidateGitURL(testCase.input)
			require.NoError(subTest, validationError)
			require.Equal(subTest, testCase.expectedRemote, validatedRemote)
		})
	}
}

func TestValidateGitURLRejectsUnsafeInput(testInstance *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "empty", input: "   "},
		{name: "command_substitution", input: "https://github.com/$(whoami)/repo.git"},
		{name: "backtick", input: "https://github.com/`id`/repo.git"},
		{name: "semicolon", input: "https://github.com/user/repo.git;rm -rf ~"},
		{name: "pipe", input: "https://github.com/user/repo.git|sh"},
		{name: "ampersand", input: "https://github.com/user/repo.git&&reboot"},
		{name: "newline", input: "https://github.com/user/repo.git\nreboot"},
		{name: "carriage_return", input: "https://github.com/user/repo.git\rreboot"},
		{name: "null_byte", input: "https://github.com/user/repo.git\x00"},
		{name: "traversal", input: "https://github.com/user/../../repo.git"},
		{name: "file_scheme", input: "file:///etc/passwd"},
		{name: "file_scheme_uppercase", input: "FILE:///etc/passwd"},
		{name: "ftp_scheme", input: "ftp://example.com/repo.git"},
		{name: "option_injection", input: "--upload-pack=touch /tmp/pwned"},
		{name: "local_path", input: "/srv/git/repo.git"},
		{name: "scp_without_git_suffix", input: "git@github.com:user/repo"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			validatedRemote, validationError := security.ValidateGitURL(testCase.input)
			require.Error(subTest, validationError)
			require.ErrorIs(subTest, validationError, security.ErrInvalidRemote)
			require.Empty(subTest, validatedRemote)
			require.NotContains(subTest, validationError.Error(), testCase.input)
		})
	}
}
