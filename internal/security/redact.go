package security

import (
	"errors"
	"regexp"
	"strings"
)

const (
	genericErrorMessageConstant       = "An error occurred"
	urlPlaceholderConstant            = "[url]"
	repositoryPlaceholderConstant     = "[repository]"
	pathPlaceholderConstant           = "[path]"
	trailingPunctuationConstant       = ":,.;)]"
	urlTokenPatternString             = `()([A-Za-z][A-Za-z0-9+.-]*://[^\s'"<>]+)`
	scpTokenPatternString             = `()([A-Za-z0-9._-]+@[A-Za-z0-9.-]+:[^\s'"<>]*)`
	pathBoundaryPatternString         = `(^|[^A-Za-z0-9._~/-])`
	posixPathTokenPatternString       = pathBoundaryPatternString + `(/[^\s'"<>]*)`
	windowsPathTokenPatternString     = pathBoundaryPatternString + `([A-Za-z]:[\\/][^\s'"<>]*)`
	redactionTokenSubmatchIndex       = 2
	redactionSubmatchBoundariesPerRun = 2
)

type redactionRule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// redactionRules run in order; earlier placeholders are never matched by later rules. Windows paths
// go before POSIX paths so "D:/x" is not split at the colon. A path starts after any character that
// cannot continue a relative segment, which leaves "feature/x" intact.
var redactionRules = []redactionRule{
	{pattern: regexp.MustCompile(urlTokenPatternString), placeholder: urlPlaceholderConstant},
	{pattern: regexp.MustCompile(scpTokenPatternString), placeholder: repositoryPlaceholderConstant},
	{pattern: regexp.MustCompile(windowsPathTokenPatternString), placeholder: pathPlaceholderConstant},
	{pattern: regexp.MustCompile(posixPathTokenPatternString), placeholder: pathPlaceholderConstant},
}

// SanitizeErrorMessage returns err's message with URLs, SCP-style remotes and absolute paths replaced
// by placeholders. Values that are not errors yield a generic message.
func SanitizeErrorMessage(value any) string {
	err, isError := value.(error)
	if !isError || err == nil {
		return genericErrorMessageConstant
	}
	return RedactText(err.Error())
}

// RedactText applies the redaction rules to an arbitrary message.
func RedactText(message string) string {
	redacted := message
	for _, rule := range redactionRules {
		redacted = applyRedactionRule(rule, redacted)
	}
	return redacted
}

// IsValidationError reports whether err carries a ValidationError.
func IsValidationError(err error) bool {
	var validationError ValidationError
	return errors.As(err, &validationError)
}

func applyRedactionRule(rule redactionRule, message string) string {
	matches := rule.pattern.FindAllStringSubmatchIndex(message, -1)
	if len(matches) == 0 {
		return message
	}

	var builder strings.Builder
	builder.Grow(len(message))
	previousEnd := 0
	for _, match := range matches {
		tokenStart := match[redactionTokenSubmatchIndex*redactionSubmatchBoundariesPerRun]
		tokenEnd := match[redactionTokenSubmatchIndex*redactionSubmatchBoundariesPerRun+1]

		builder.WriteString(message[previousEnd:tokenStart])

		token := message[tokenStart:tokenEnd]
		trimmedToken := strings.TrimRight(token, trailingPunctuationConstant)
		builder.WriteString(rule.placeholder)
		builder.WriteString(token[len(trimmedToken):])
		previousEnd = tokenEnd
	}
	builder.WriteString(message[previousEnd:])
	return builder.String()
}
