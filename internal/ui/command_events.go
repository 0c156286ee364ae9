package ui

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/temirov/cln/internal/execshell"
)

const (
	elapsedFieldConstant = "elapsed"
)

// GitProgressLogger reports git lifecycle events as sentences on a console-encoded logger.
// Completion and failure entries carry the time elapsed since the matching start.
type GitProgressLogger struct {
	logger    *zap.Logger
	formatter execshell.CommandMessageFormatter
	now       func() time.Time

	mutex      sync.Mutex
	startTimes map[string]time.Time
}

// NewGitProgressLogger binds a progress logger to logger.
func NewGitProgressLogger(logger *zap.Logger) *GitProgressLogger {
	return newGitProgressLogger(logger, time.Now)
}

func newGitProgressLogger(logger *zap.Logger, now func() time.Time) *GitProgressLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GitProgressLogger{
		logger:     logger,
		formatter:  execshell.CommandMessageFormatter{},
		now:        now,
		startTimes: map[string]time.Time{},
	}
}

// CommandStarted records the start time and announces the command.
func (progressLogger *GitProgressLogger) CommandStarted(command execshell.ShellCommand) {
	if progressLogger == nil {
		return
	}
	progressLogger.mutex.Lock()
	progressLogger.startTimes[progressLogger.formatter.CommandLine(command)] = progressLogger.now()
	progressLogger.mutex.Unlock()

	progressLogger.logger.Info(progressLogger.formatter.BuildStartedMessage(command))
}

// CommandCompleted reports success at info level and a non-zero exit at warn level.
func (progressLogger *GitProgressLogger) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if progressLogger == nil {
		return
	}
	elapsedField := progressLogger.elapsed(command)
	if result.ExitCode == 0 {
		progressLogger.logger.Info(progressLogger.formatter.BuildSuccessMessage(command), elapsedField)
		return
	}
	progressLogger.logger.Warn(progressLogger.formatter.BuildFailureMessage(command, result), elapsedField)
}

// CommandExecutionFailed reports a command that produced no result.
func (progressLogger *GitProgressLogger) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	if progressLogger == nil {
		return
	}
	progressLogger.logger.Error(progressLogger.formatter.BuildExecutionFailureMessage(command, failure), progressLogger.elapsed(command))
}

func (progressLogger *GitProgressLogger) elapsed(command execshell.ShellCommand) zap.Field {
	commandLine := progressLogger.formatter.CommandLine(command)

	progressLogger.mutex.Lock()
	startTime, started := progressLogger.startTimes[commandLine]
	delete(progressLogger.startTimes, commandLine)
	progressLogger.mutex.Unlock()

	if !started {
		return zap.Skip()
	}
	return zap.Duration(elapsedFieldConstant, progressLogger.now().Sub(startTime))
}
