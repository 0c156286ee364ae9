package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	affirmativeShortResponseConstant = "y"
	affirmativeLongResponseConstant  = "yes"
	selectionOptionTemplateConstant  = "  %d) %s\n"
	selectionPromptTemplateConstant  = "%s [1-%d]: "
	textPromptTemplateConstant       = "%s: "
	textPromptDefaultTemplate        = "%s [%s]: "
	invalidSelectionTemplate         = "Enter a number between 1 and %d.\n"
	maximumSelectionAttemptsConstant = 3
	cancelledMessageConstant         = "cancelled"
	noOptionsMessageConstant         = "no options to choose from"
	tooManyAttemptsMessageConstant   = "no valid selection made"
)

var (
	// ErrCancelled indicates the user ended input before answering.
	ErrCancelled = errors.New(cancelledMessageConstant)

	// ErrNoOptions indicates Select was called with an empty option list.
	ErrNoOptions = errors.New(noOptionsMessageConstant)

	// ErrInvalidSelection indicates repeated answers outside the option range.
	ErrInvalidSelection = errors.New(tooManyAttemptsMessageConstant)
)

// IOPrompter asks questions on a writer and reads line answers from a reader.
type IOPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewIOPrompter constructs a prompter from the provided reader and writer.
func NewIOPrompter(input io.Reader, output io.Writer) *IOPrompter {
	return &IOPrompter{reader: bufio.NewReader(input), writer: output}
}

// Confirm writes the prompt and interprets affirmative responses (y/yes). End of input counts as a refusal.
func (prompter *IOPrompter) Confirm(prompt string) (bool, error) {
	if writeError := prompter.write(prompt); writeError != nil {
		return false, writeError
	}

	response, readError := prompter.readLine()
	if readError != nil && !errors.Is(readError, ErrCancelled) {
		return false, readError
	}

	switch strings.ToLower(response) {
	case affirmativeShortResponseConstant, affirmativeLongResponseConstant:
		return true, nil
	default:
		return false, nil
	}
}

// Select lists options as a numbered menu and returns the zero-based index of the chosen one.
func (prompter *IOPrompter) Select(prompt string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, ErrNoOptions
	}

	for optionIndex, option := range options {
		if writeError := prompter.write(fmt.Sprintf(selectionOptionTemplateConstant, optionIndex+1, option)); writeError != nil {
			return 0, writeError
		}
	}

	for attempt := 0; attempt < maximumSelectionAttemptsConstant; attempt++ {
		if writeError := prompter.write(fmt.Sprintf(selectionPromptTemplateConstant, prompt, len(options))); writeError != nil {
			return 0, writeError
		}

		response, readError := prompter.readLine()
		if readError != nil {
			return 0, readError
		}

		selection, parseError := strconv.Atoi(response)
		if parseError == nil && selection >= 1 && selection <= len(options) {
			return selection - 1, nil
		}

		if writeError := prompter.write(fmt.Sprintf(invalidSelectionTemplate, len(options))); writeError != nil {
			return 0, writeError
		}
	}
	return 0, ErrInvalidSelection
}

// Text reads a free-form answer, returning defaultValue for an empty line.
func (prompter *IOPrompter) Text(prompt string, defaultValue string) (string, error) {
	formattedPrompt := fmt.Sprintf(textPromptTemplateConstant, prompt)
	if len(defaultValue) > 0 {
		formattedPrompt = fmt.Sprintf(textPromptDefaultTemplate, prompt, defaultValue)
	}
	if writeError := prompter.write(formattedPrompt); writeError != nil {
		return "", writeError
	}

	response, readError := prompter.readLine()
	if readError != nil {
		return "", readError
	}
	if len(response) == 0 {
		return defaultValue, nil
	}
	return response, nil
}

// readLine returns the trimmed line. ErrCancelled is returned only when input ended with nothing typed.
func (prompter *IOPrompter) readLine() (string, error) {
	response, readError := prompter.reader.ReadString('\n')
	if readError != nil && !errors.Is(readError, io.EOF) {
		return "", readError
	}
	trimmedResponse := strings.TrimSpace(response)
	if errors.Is(readError, io.EOF) && len(response) == 0 {
		return "", ErrCancelled
	}
	return trimmedResponse, nil
}

func (prompter *IOPrompter) write(text string) error {
	if prompter.writer == nil {
		return nil
	}
	_, writeError := io.WriteString(prompter.writer, text)
	return writeError
}
