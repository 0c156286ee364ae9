package ui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/cln/internal/ui"
)

func TestCloneTableGroupsRepositories(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	options := ui.RenderOptions{DisableColor: true, ShowPaths: true}
	printer := ui.NewPrinter(outputBuffer, options)

	rows := []ui.CloneRow{
		{Repository: "backend", Branch: "main", Path: "/home/user/works/cln/backend/main"},
		{Repository: "backend", Branch: "feature/login", Path: "/home/user/works/cln/backend/feature/login"},
		{Repository: "frontend", Branch: "develop", Path: "/home/user/works/cln/frontend/develop"},
	}

	require.NoError(testInstance, printer.CloneTable(rows, "/home/user/works/cln", options))

	rendered := outputBuffer.String()
	require.Equal(testInstance, 1, strings.Count(rendered, "backend "))
	require.Contains(testInstance, rendered, "REPOSITORY")
	require.Contains(testInstance, rendered, "feature/login")
	require.Contains(testInstance, rendered, "/home/user/works/cln/frontend/develop")
	require.NotContains(testInstance, rendered, "\x1b[")
}

func TestCloneTableWithoutPaths(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	options := ui.RenderOptions{DisableColor: true}
	printer := ui.NewPrinter(outputBuffer, options)

	rows := []ui.CloneRow{{Repository: "backend", Branch: "main", Path: "/home/user/works/cln/backend/main"}}
	require.NoError(testInstance, printer.CloneTable(rows, "/home/user/works/cln", options))

	require.NotContains(testInstance, outputBuffer.String(), "PATH")
	require.NotContains(testInstance, outputBuffer.String(), "/home/user/works/cln/backend/main")
}

func TestCloneTableReportsEmptyRoot(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	options := ui.RenderOptions{DisableColor: true}
	printer := ui.NewPrinter(outputBuffer, options)

	require.NoError(testInstance, printer.CloneTable(nil, "/home/user/works/cln", options))
	require.Equal(testInstance, "No clones found under /home/user/works/cln\n", outputBuffer.String())
}

func TestPrinterMessages(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	printer := ui.NewPrinter(outputBuffer, ui.RenderOptions{DisableColor: true})

	require.NoError(testInstance, printer.Success("Cloned"))
	require.NoError(testInstance, printer.Warning("Careful"))
	require.NoError(testInstance, printer.Plain("plain"))
	require.Equal(testInstance, "Cloned\nCareful\nplain\n", outputBuffer.String())
}
