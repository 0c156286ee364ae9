package execshell

import (
	"context"

	"go.uber.org/zap"

	"github.com/temirov/cln/internal/security"
)

const (
	commandStartedLogMessageConstant  = "command started"
	commandFinishedLogMessageConstant = "command finished"
	commandFailedLogMessageConstant   = "command failed"
	commandNameFieldConstant          = "command"
	commandLineFieldConstant          = "command_line"
	workingDirectoryFieldConstant     = "working_directory"
	exitCodeFieldConstant             = "exit_code"
	standardErrorFieldConstant        = "stderr"
	failureFieldConstant              = "error"
)

// ShellExecutor runs external commands through a CommandRunner, logging each invocation.
type ShellExecutor struct {
	logger    *zap.Logger
	runner    CommandRunner
	observers observerGroup
	formatter CommandMessageFormatter
}

// NewShellExecutor validates its collaborators and constructs an executor.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner, observers ...CommandEventObserver) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}
	return &ShellExecutor{
		logger:    logger,
		runner:    runner,
		observers: newObserverGroup(observers),
		formatter: CommandMessageFormatter{},
	}, nil
}

// Execute runs the command and converts non-zero exits into CommandFailedError.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	if command.Details.Timeout > 0 {
		var cancel context.CancelFunc
		executionContext, cancel = context.WithTimeout(executionContext, command.Details.Timeout)
		defer cancel()
	}

	commandFields := []zap.Field{
		zap.String(commandNameFieldConstant, string(command.Name)),
		zap.String(commandLineFieldConstant, security.RedactText(executor.formatter.CommandLine(command))),
		zap.String(workingDirectoryFieldConstant, command.Details.WorkingDirectory),
	}

	executor.logger.Debug(commandStartedLogMessageConstant, commandFields...)
	executor.observers.CommandStarted(command)

	executionResult, runError := executor.runner.Run(executionContext, command)
	if runError != nil {
		executor.logger.Warn(commandFailedLogMessageConstant, append(commandFields, zap.String(failureFieldConstant, security.SanitizeErrorMessage(runError)))...)
		executor.observers.CommandExecutionFailed(command, runError)
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runError}
	}

	if executionResult.ExitCode != 0 {
		executor.logger.Warn(commandFailedLogMessageConstant, append(commandFields,
			zap.Int(exitCodeFieldConstant, executionResult.ExitCode),
			zap.String(standardErrorFieldConstant, security.RedactText(executionResult.StandardError)),
		)...)
		executor.observers.CommandCompleted(command, executionResult)
		return ExecutionResult{}, CommandFailedError{Command: command, Result: executionResult}
	}

	executor.logger.Debug(commandFinishedLogMessageConstant, append(commandFields, zap.Int(exitCodeFieldConstant, executionResult.ExitCode))...)
	executor.observers.CommandCompleted(command, executionResult)
	return executionResult, nil
}

// ExecuteGit runs git with the provided details.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandGit, Details: details})
}
