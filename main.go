package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/temirov/cln/cmd/cli"
	"github.com/temirov/cln/internal/security"
)

const (
	exitErrorTemplateConstant = "Error: %s\n"
)

// main executes the cln command-line application.
func main() {
	executionContext, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	executionError := cli.Execute(executionContext)
	stopSignals()
	if executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, security.SanitizeErrorMessage(executionError))
		os.Exit(cli.ExitCodeForError(executionError))
	}
}
