package security

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	optionPrefixConstant             = "-"
	httpSchemeConstant               = "http"
	httpsSchemeConstant              = "https"
	gitSchemeConstant                = "git"
	fileSchemePrefixConstant         = "file://"
	ftpSchemePrefixConstant          = "ftp://"
	emptyRemoteReasonConstant        = "remote URL must not be empty"
	optionRemoteReasonConstant       = "remote URL must not start with a dash"
	forbiddenCharacterReasonConstant = "remote URL contains a forbidden character sequence"
	unsupportedShapeReasonConstant   = "remote URL is not a recognized git remote"
	forbiddenSchemeReasonConstant    = "remote URL scheme is not allowed"
	httpRemotePatternString          = `^https?://[A-Za-z0-9\-._~:/?#\[\]@!'+,=%]+$`
	scpRemotePatternString           = `^[A-Za-z0-9._-]+@[A-Za-z0-9.-]+:[A-Za-z0-9._/~-]+\.git$`
	sshRemotePatternString           = `^ssh://[A-Za-z0-9\-._~:/?#\[\]@!'+,=%]+$`
	bareHostRemotePatternString      = `^[A-Za-z0-9.-]+:[A-Za-z0-9._/~-]+\.git$`
	nullCharacterConstant            = "\x00"
	carriageReturnCharacterConstant  = "\r"
	lineFeedCharacterConstant        = "\n"
	dollarCharacterConstant          = "$"
	backtickCharacterConstant        = "`"
	semicolonCharacterConstant       = ";"
	pipeCharacterConstant            = "|"
	ampersandCharacterConstant       = "&"
)

// forbiddenRemoteSequences lists substrings that disqualify a remote regardless of its shape.
var forbiddenRemoteSequences = []string{
	traversalSequenceConstant,
	dollarCharacterConstant,
	backtickCharacterConstant,
	semicolonCharacterConstant,
	pipeCharacterConstant,
	ampersandCharacterConstant,
	lineFeedCharacterConstant,
	carriageReturnCharacterConstant,
	nullCharacterConstant,
}

// remoteShapePatterns is the single whitelist of accepted remote shapes.
var remoteShapePatterns = []*regexp.Regexp{
	regexp.MustCompile(httpRemotePatternString),
	regexp.MustCompile(scpRemotePatternString),
	regexp.MustCompile(sshRemotePatternString),
	regexp.MustCompile(bareHostRemotePatternString),
}

var fallbackRemoteSchemes = map[string]struct{}{
	httpSchemeConstant:  {},
	httpsSchemeConstant: {},
	gitSchemeConstant:   {},
}

var forbiddenRemoteSchemePrefixes = []string{fileSchemePrefixConstant, ftpSchemePrefixConstant}

// ValidateGitURL accepts http(s), ssh, SCP-like and host:path.git remotes and returns the trimmed input.
func ValidateGitURL(rawRemote string) (string, error) {
	trimmedRemote := strings.TrimSpace(rawRemote)
	if len(trimmedRemote) == 0 {
		return "", newValidationError(ErrorKindInvalidRemote, emptyRemoteReasonConstant)
	}

	if strings.HasPrefix(trimmedRemote, optionPrefixConstant) {
		return "", newValidationError(ErrorKindInvalidRemote, optionRemoteReasonConstant)
	}

	for _, forbiddenSequence := range forbiddenRemoteSequences {
		if strings.Contains(trimmedRemote, forbiddenSequence) {
			return "", newValidationError(ErrorKindInvalidRemote, forbiddenCharacterReasonConstant)
		}
	}

	if !matchesRemoteShape(trimmedRemote) && !isSupportedSchemeURL(trimmedRemote) {
		return "", newValidationError(ErrorKindInvalidRemote, unsupportedShapeReasonConstant)
	}

	lowercaseRemote := strings.ToLower(trimmedRemote)
	for _, forbiddenPrefix := range forbiddenRemoteSchemePrefixes {
		if strings.HasPrefix(lowercaseRemote, forbiddenPrefix) {
			return "", newValidationError(ErrorKindInvalidRemote, forbiddenSchemeReasonConstant)
		}
	}

	return trimmedRemote, nil
}

func matchesRemoteShape(remote string) bool {
	for _, shapePattern := range remoteShapePatterns {
		if shapePattern.MatchString(remote) {
			return true
		}
	}
	return false
}

func isSupportedSchemeURL(remote string) bool {
	parsedURL, parseError := url.Parse(remote)
	if parseError != nil {
		return false
	}
	if _, supported := fallbackRemoteSchemes[strings.ToLower(parsedURL.Scheme)]; !supported {
		return false
	}
	return len(parsedURL.Host) > 0
}
