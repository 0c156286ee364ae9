package ui

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/cln/internal/execshell"
)

const (
	testCloneDestinationConstant           = "/home/user/cln/repo/main"
	testCloneRemoteConstant                = "https://github.com/user/repo.git"
	testExecutionFailureReasonConstant     = "signal: killed"
	testStandardErrorMessageConstant       = "fatal: Remote branch main not found in upstream origin"
	testStartMessageExpectationConstant    = "Cloning branch main into " + testCloneDestinationConstant
	testSuccessMessageExpectationConstant  = "Cloned branch main into " + testCloneDestinationConstant
	testFailureMessageExpectationConstant  = "Failed to clone branch main into " + testCloneDestinationConstant + " (exit code 128: " + testStandardErrorMessageConstant + ")"
	testExecutionFailureMessageExpectation = "Unable to clone branch main into " + testCloneDestinationConstant + ": " + testExecutionFailureReasonConstant
	testCloneDuration                      = 42 * time.Second
)

type steppingClock struct {
	current time.Time
	step    time.Duration
}

func (clock *steppingClock) now() time.Time {
	reading := clock.current
	clock.current = clock.current.Add(clock.step)
	return reading
}

func newCloneCommand() execshell.ShellCommand {
	return execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments: []string{"clone", "--branch=main", "--", testCloneRemoteConstant, testCloneDestinationConstant},
		},
	}
}

func TestGitProgressLoggerEmitsMessages(testInstance *testing.T) {
	command := newCloneCommand()

	testCases := []struct {
		name            string
		invoke          func(logger *GitProgressLogger)
		expectedLevel   zapcore.Level
		expectedMessage string
	}{
		{
			name: "command_completed_success",
			invoke: func(logger *GitProgressLogger) {
				logger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 0})
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: testSuccessMessageExpectationConstant,
		},
		{
			name: "command_completed_failure",
			invoke: func(logger *GitProgressLogger) {
				logger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 128, StandardError: testStandardErrorMessageConstant})
			},
			expectedLevel:   zapcore.WarnLevel,
			expectedMessage: testFailureMessageExpectationConstant,
		},
		{
			name: "command_execution_failure",
			invoke: func(logger *GitProgressLogger) {
				logger.CommandExecutionFailed(command, errors.New(testExecutionFailureReasonConstant))
			},
			expectedLevel:   zapcore.ErrorLevel,
			expectedMessage: testExecutionFailureMessageExpectation,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observedLogs := observer.New(zapcore.DebugLevel)
			clock := &steppingClock{current: time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC), step: testCloneDuration}
			progressLogger := newGitProgressLogger(zap.New(observerCore), clock.now)

			progressLogger.CommandStarted(command)
			testCase.invoke(progressLogger)

			entries := observedLogs.All()
			require.Len(testInstance, entries, 2)
			require.Equal(testInstance, zapcore.InfoLevel, entries[0].Level)
			require.Equal(testInstance, testStartMessageExpectationConstant, entries[0].Message)
			require.Equal(testInstance, testCase.expectedLevel, entries[1].Level)
			require.Equal(testInstance, testCase.expectedMessage, entries[1].Message)
			require.Equal(testInstance, testCloneDuration, entries[1].ContextMap()[elapsedFieldConstant])
		})
	}
}

func TestGitProgressLoggerOmitsElapsedWithoutStart(testInstance *testing.T) {
	observerCore, observedLogs := observer.New(zapcore.DebugLevel)
	progressLogger := NewGitProgressLogger(zap.New(observerCore))

	progressLogger.CommandCompleted(newCloneCommand(), execshell.ExecutionResult{ExitCode: 0})

	entries := observedLogs.All()
	require.Len(testInstance, entries, 1)
	require.NotContains(testInstance, entries[0].ContextMap(), elapsedFieldConstant)
}

func TestNilGitProgressLoggerIsSilent(testInstance *testing.T) {
	var progressLogger *GitProgressLogger
	require.NotPanics(testInstance, func() {
		progressLogger.CommandStarted(execshell.ShellCommand{Name: execshell.CommandGit})
		progressLogger.CommandCompleted(execshell.ShellCommand{Name: execshell.CommandGit}, execshell.ExecutionResult{})
		progressLogger.CommandExecutionFailed(execshell.ShellCommand{Name: execshell.CommandGit}, nil)
	})
}
