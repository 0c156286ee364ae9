package cli

import (
	"context"
	"errors"

	"github.com/temirov/cln/internal/clones"
	"github.com/temirov/cln/internal/prompt"
	"github.com/temirov/cln/internal/security"
	"github.com/temirov/cln/internal/settings"
)

// Process exit codes.
const (
	ExitCodeSuccess         = 0
	ExitCodeFailure         = 1
	ExitCodeNotFound        = 2
	ExitCodeValidationError = 3
	ExitCodeCancelled       = 4
)

// ExitCodeForError maps an execution error to the process exit code. Validation failures win over
// not-found and cancellation when several are joined.
func ExitCodeForError(executionError error) int {
	switch {
	case executionError == nil:
		return ExitCodeSuccess
	case security.IsValidationError(executionError):
		return ExitCodeValidationError
	case errors.Is(executionError, settings.ErrRepositoryNotConfigured),
		errors.Is(executionError, clones.ErrNoMatchingClones),
		errors.Is(executionError, clones.ErrNoRepositoriesConfigured):
		return ExitCodeNotFound
	case errors.Is(executionError, prompt.ErrCancelled),
		errors.Is(executionError, context.Canceled):
		return ExitCodeCancelled
	default:
		return ExitCodeFailure
	}
}
