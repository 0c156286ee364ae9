package execshell

import (
	"fmt"
	"strings"

	"github.com/temirov/cln/internal/security"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	gitCloneSubcommandNameConstant          = "clone"
	gitBranchFlagPrefixConstant             = "--branch="
	gitEndOfOptionsConstant                 = "--"
	cloneStartTemplateConstant              = "Cloning branch %s into %s"
	cloneSuccessTemplateConstant            = "Cloned branch %s into %s"
	cloneFailureTemplateConstant            = "Failed to clone branch %s into %s (exit code %d%s)"
	cloneExecutionFailureTemplateConstant   = "Unable to clone branch %s into %s: %s"
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	fallbackUnknownValueLabelConstant       = "unknown"
	emptyStringConstant                     = ""
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
// Command lines are shell-escaped and process output is redacted before it is embedded.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

// CommandLine renders the full invocation the way a user would type it into a POSIX shell.
func (formatter CommandMessageFormatter) CommandLine(command ShellCommand) string {
	return security.FormatCommandLine(append([]string{string(command.Name)}, command.Details.Arguments...)...)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name == CommandGit && len(command.Details.Arguments) > 0 && strings.TrimSpace(command.Details.Arguments[0]) == gitCloneSubcommandNameConstant {
		return formatter.describeGitCloneMessage(command, result, failure, stage)
	}
	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitCloneMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	branchName, destinationPath := formatter.extractCloneTarget(command.Details.Arguments)
	escapedBranch := security.EscapeShellArg(branchName)
	escapedDestination := security.EscapeShellArg(destinationPath)

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(cloneStartTemplateConstant, escapedBranch, escapedDestination)
	case messageStageSuccess:
		return fmt.Sprintf(cloneSuccessTemplateConstant, escapedBranch, escapedDestination)
	case messageStageFailure:
		return fmt.Sprintf(cloneFailureTemplateConstant, escapedBranch, escapedDestination, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(cloneExecutionFailureTemplateConstant, escapedBranch, escapedDestination, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	label := formatter.CommandLine(command) + formatter.formatWorkingDirectorySuffix(command)

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, label)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, label)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, label, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, label, formatter.describeFailure(failure))
	}
}

// extractCloneTarget reads the branch flag and the destination that follows the end-of-options marker and the remote.
func (formatter CommandMessageFormatter) extractCloneTarget(arguments []string) (string, string) {
	branchName := fallbackUnknownValueLabelConstant
	destinationPath := fallbackUnknownValueLabelConstant
	for argumentIndex, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if strings.HasPrefix(trimmedArgument, gitBranchFlagPrefixConstant) {
			branchName = strings.TrimPrefix(trimmedArgument, gitBranchFlagPrefixConstant)
		}
		if trimmedArgument == gitEndOfOptionsConstant && argumentIndex+2 < len(arguments) {
			destinationPath = arguments[argumentIndex+2]
		}
	}
	return branchName, destinationPath
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, security.EscapeShellArg(trimmedWorkingDirectory))
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	firstLine := firstNonEmptyLine(standardError)
	if len(firstLine) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, security.RedactText(firstLine))
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return security.SanitizeErrorMessage(failure)
}
