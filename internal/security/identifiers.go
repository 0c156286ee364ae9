package security

import (
	"regexp"
	"strings"
)

const (
	traversalSequenceConstant             = ".."
	pathSeparatorForwardSlashConstant     = "/"
	repositoryNameMaximumLengthConstant   = 100
	branchNameMaximumLengthConstant       = 200
	repositoryNameInvalidReasonConstant   = "repository name must contain 1-100 characters from [A-Za-z0-9_-]"
	branchNameInvalidReasonConstant       = "branch name must contain 1-200 characters from [A-Za-z0-9_/-]"
	repositoryNameDisallowedPatternString = `[^A-Za-z0-9_-]`
	branchNameDisallowedPatternString     = `[^A-Za-z0-9_/-]`
	repeatedSeparatorPatternString        = `/+`
)

var (
	repositoryNameDisallowedPattern = regexp.MustCompile(repositoryNameDisallowedPatternString)
	branchNameDisallowedPattern     = regexp.MustCompile(branchNameDisallowedPatternString)
	repeatedSeparatorPattern        = regexp.MustCompile(repeatedSeparatorPatternString)
)

// SanitizeRepositoryName strips traversal sequences and every character outside [A-Za-z0-9_-].
// The result is a single path segment.
func SanitizeRepositoryName(rawName string) (string, error) {
	sanitizedName := removeTraversalSequences(rawName)
	sanitizedName = repositoryNameDisallowedPattern.ReplaceAllString(sanitizedName, "")
	sanitizedName = strings.TrimSpace(sanitizedName)

	if len(sanitizedName) == 0 || len(sanitizedName) > repositoryNameMaximumLengthConstant {
		return "", newValidationError(ErrorKindInvalidIdentifier, repositoryNameInvalidReasonConstant)
	}

	return sanitizedName, nil
}

// SanitizeBranchName strips traversal sequences and every character outside [A-Za-z0-9_/-],
// then collapses separator runs and trims separators from both ends.
func SanitizeBranchName(rawBranch string) (string, error) {
	sanitizedBranch := removeTraversalSequences(rawBranch)
	sanitizedBranch = branchNameDisallowedPattern.ReplaceAllString(sanitizedBranch, "")
	sanitizedBranch = repeatedSeparatorPattern.ReplaceAllString(sanitizedBranch, pathSeparatorForwardSlashConstant)
	sanitizedBranch = strings.Trim(sanitizedBranch, pathSeparatorForwardSlashConstant)
	sanitizedBranch = strings.TrimSpace(sanitizedBranch)

	if len(sanitizedBranch) == 0 || len(sanitizedBranch) > branchNameMaximumLengthConstant {
		return "", newValidationError(ErrorKindInvalidIdentifier, branchNameInvalidReasonConstant)
	}

	return sanitizedBranch, nil
}

// removeTraversalSequences deletes ".." until none is left, so "...." style inputs cannot
// reassemble a traversal sequence out of the remaining dots.
func removeTraversalSequences(value string) string {
	for strings.Contains(value, traversalSequenceConstant) {
		value = strings.ReplaceAll(value, traversalSequenceConstant, "")
	}
	return value
}
