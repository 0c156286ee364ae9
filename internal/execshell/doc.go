// Package execshell runs external tools with an argument vector and structured logging.
//
// ShellExecutor wraps a CommandRunner, logs every invocation with its shell-escaped command
// line, notifies CommandEventObserver implementations, and converts non-zero exits into
// CommandFailedError values. OSCommandRunner is the os/exec backed default.
package execshell
