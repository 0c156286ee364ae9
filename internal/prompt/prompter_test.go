package prompt_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/cln/internal/prompt"
)

func TestConfirm(testInstance *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "yes", input: "yes\n", expected: true},
		{name: "short_uppercase", input: " Y \n", expected: true},
		{name: "no", input: "n\n", expected: false},
		{name: "blank", input: "\n", expected: false},
		{name: "end_of_input", input: "", expected: false},
		{name: "no_trailing_newline", input: "y", expected: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			outputBuffer := &bytes.Buffer{}
			prompter := prompt.NewIOPrompter(strings.NewReader(testCase.input), outputBuffer)

			confirmed, confirmError := prompter.Confirm("Delete? [y/N] ")
			require.NoError(subTest, confirmError)
			require.Equal(subTest, testCase.expected, confirmed)
			require.Equal(subTest, "Delete? [y/N] ", outputBuffer.String())
		})
	}
}

func TestSelect(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	prompter := prompt.NewIOPrompter(strings.NewReader("7\nabc\n2\n"), outputBuffer)

	selection, selectError := prompter.Select("Repository", []string{"backend", "frontend"})
	require.NoError(testInstance, selectError)
	require.Equal(testInstance, 1, selection)
	require.Contains(testInstance, outputBuffer.String(), "  1) backend\n  2) frontend\n")
	require.Equal(testInstance, 2, strings.Count(outputBuffer.String(), "Enter a number between 1 and 2."))
}

func TestSelectFailures(testInstance *testing.T) {
	emptyPrompter := prompt.NewIOPrompter(strings.NewReader("1\n"), nil)
	_, emptyError := emptyPrompter.Select("Repository", nil)
	require.ErrorIs(testInstance, emptyError, prompt.ErrNoOptions)

	cancelledPrompter := prompt.NewIOPrompter(strings.NewReader(""), nil)
	_, cancelledError := cancelledPrompter.Select("Repository", []string{"backend"})
	require.ErrorIs(testInstance, cancelledError, prompt.ErrCancelled)

	invalidPrompter := prompt.NewIOPrompter(strings.NewReader("0\n9\nx\n"), nil)
	_, invalidError := invalidPrompter.Select("Repository", []string{"backend"})
	require.ErrorIs(testInstance, invalidError, prompt.ErrInvalidSelection)
}

func TestText(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	prompter := prompt.NewIOPrompter(strings.NewReader("\nfeature/x\n"), outputBuffer)

	defaulted, firstError := prompter.Text("Branch", "main")
	require.NoError(testInstance, firstError)
	require.Equal(testInstance, "main", defaulted)

	typed, secondError := prompter.Text("Branch", "main")
	require.NoError(testInstance, secondError)
	require.Equal(testInstance, "feature/x", typed)
	require.Equal(testInstance, "Branch [main]: Branch [main]: ", outputBuffer.String())

	_, cancelledError := prompter.Text("Branch", "")
	require.ErrorIs(testInstance, cancelledError, prompt.ErrCancelled)
}
