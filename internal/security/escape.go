package security

import (
	"regexp"
	"strings"
)

const (
	singleQuoteConstant            = "'"
	escapedSingleQuoteConstant     = `'\''`
	shellSafeArgumentPatternString = `^[A-Za-z0-9_./-]+$`
)

var shellSafeArgumentPattern = regexp.MustCompile(shellSafeArgumentPatternString)

// EscapeShellArg renders an argument so a POSIX shell reads it back as one literal word.
// Commands are never executed through a shell; this only formats command lines for display and logs.
func EscapeShellArg(argument string) string {
	if shellSafeArgumentPattern.MatchString(argument) {
		return argument
	}
	return singleQuoteConstant + strings.ReplaceAll(argument, singleQuoteConstant, escapedSingleQuoteConstant) + singleQuoteConstant
}

// FormatCommandLine joins escaped arguments with single spaces.
func FormatCommandLine(arguments ...string) string {
	escapedArguments := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		escapedArguments = append(escapedArguments, EscapeShellArg(argument))
	}
	return strings.Join(escapedArguments, " ")
}
