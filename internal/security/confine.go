package security

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	windowsOperatingSystemConstant   = "windows"
	removalOutsideRootReasonConstant = "removal target is outside the managed root"
	removalOfRootReasonConstant      = "removal target is the managed root itself"
)

// ValidatePath reports whether candidate resolves to root or one of its descendants.
// Inputs containing a literal ".." or a NUL byte are rejected before normalization.
func ValidatePath(candidate string, root string) bool {
	normalizedCandidate, normalizedRoot, normalized := normalizeConfinementPair(candidate, root)
	if !normalized {
		return false
	}
	return isNestedPath(normalizedRoot, normalizedCandidate)
}

// ValidateRemovalPath fails with a path escape unless candidate is a strict descendant of root.
func ValidateRemovalPath(candidate string, root string) error {
	normalizedCandidate, normalizedRoot, normalized := normalizeConfinementPair(candidate, root)
	if !normalized || !isNestedPath(normalizedRoot, normalizedCandidate) {
		return newValidationError(ErrorKindPathEscape, removalOutsideRootReasonConstant)
	}
	if comparisonPath(normalizedCandidate) == comparisonPath(normalizedRoot) {
		return newValidationError(ErrorKindPathEscape, removalOfRootReasonConstant)
	}
	return nil
}

// normalizeConfinementPair screens and absolutizes both paths. It reports false when either one is unusable.
func normalizeConfinementPair(candidate string, root string) (string, string, bool) {
	if len(candidate) == 0 || len(root) == 0 {
		return "", "", false
	}
	if strings.Contains(candidate, traversalSequenceConstant) || strings.Contains(candidate, nullCharacterConstant) {
		return "", "", false
	}
	if strings.Contains(root, nullCharacterConstant) {
		return "", "", false
	}

	normalizedCandidate, candidateError := normalizePath(candidate)
	if candidateError != nil {
		return "", "", false
	}
	normalizedRoot, rootError := normalizePath(root)
	if rootError != nil {
		return "", "", false
	}
	return normalizedCandidate, normalizedRoot, true
}

func normalizePath(path string) (string, error) {
	absolutePath, absoluteError := filepath.Abs(path)
	if absoluteError != nil {
		return "", absoluteError
	}
	return filepath.Clean(absolutePath), nil
}

func comparisonPath(path string) string {
	comparison := filepath.Clean(path)
	if runtime.GOOS == windowsOperatingSystemConstant {
		comparison = strings.ToLower(comparison)
	}
	return comparison
}

// isNestedPath compares whole segments, so /a/b contains /a/b/c but not /a/bc.
func isNestedPath(parent string, candidate string) bool {
	parentClean := comparisonPath(parent)
	candidateClean := comparisonPath(candidate)

	if candidateClean == parentClean {
		return true
	}

	if len(candidateClean) <= len(parentClean) {
		return false
	}

	if !strings.HasPrefix(candidateClean, parentClean) {
		return false
	}

	if parentClean[len(parentClean)-1] == os.PathSeparator {
		return true
	}

	return candidateClean[len(parentClean)] == os.PathSeparator
}
