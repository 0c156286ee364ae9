package flags

import (
	"fmt"
	"strings"
)

const (
	choicePlaceholderPrefix    = "<"
	choicePlaceholderSuffix    = ">"
	choiceSeparatorLiteral     = "|"
	choiceUsageTemplate        = "%s %s"
	choiceValueTypeName        = "choice"
	invalidChoiceErrorTemplate = "must be one of %s"
	choiceListSeparatorLiteral = ", "
)

// ChoiceValue is a pflag.Value that only accepts one of a fixed set of lowercase choices.
type ChoiceValue struct {
	target  *string
	choices []string
}

// NewChoiceValue stores defaultChoice into target and returns a value restricted to choices.
func NewChoiceValue(target *string, defaultChoice string, choices []string) *ChoiceValue {
	normalizedChoices := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))
	for _, choice := range choices {
		normalizedChoice := strings.ToLower(strings.TrimSpace(choice))
		if len(normalizedChoice) == 0 {
			continue
		}
		if _, exists := seen[normalizedChoice]; exists {
			continue
		}
		seen[normalizedChoice] = struct{}{}
		normalizedChoices = append(normalizedChoices, normalizedChoice)
	}

	*target = strings.ToLower(strings.TrimSpace(defaultChoice))
	return &ChoiceValue{target: target, choices: normalizedChoices}
}

// String returns the current choice.
func (value *ChoiceValue) String() string {
	if value == nil || value.target == nil {
		return ""
	}
	return *value.target
}

// Set accepts a choice case-insensitively.
func (value *ChoiceValue) Set(rawChoice string) error {
	normalizedChoice := strings.ToLower(strings.TrimSpace(rawChoice))
	for _, choice := range value.choices {
		if choice == normalizedChoice {
			*value.target = normalizedChoice
			return nil
		}
	}
	return fmt.Errorf(invalidChoiceErrorTemplate, strings.Join(value.choices, choiceListSeparatorLiteral))
}

// Type names the value in help output.
func (value *ChoiceValue) Type() string {
	return choiceValueTypeName
}

// Choices returns the accepted choices, useful for shell completion.
func (value *ChoiceValue) Choices() []string {
	duplicated := make([]string, len(value.choices))
	copy(duplicated, value.choices)
	return duplicated
}

// FormatChoiceUsage builds a usage string where the default option is capitalized inside a placeholder.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	highlighted := make([]string, 0, len(choices))
	for _, choice := range choices {
		trimmedChoice := strings.TrimSpace(choice)
		if strings.EqualFold(trimmedChoice, normalizedDefault) {
			trimmedChoice = strings.ToUpper(trimmedChoice)
		}
		highlighted = append(highlighted, trimmedChoice)
	}

	placeholder := choicePlaceholderPrefix + strings.Join(highlighted, choiceSeparatorLiteral) + choicePlaceholderSuffix
	if len(strings.TrimSpace(description)) == 0 {
		return placeholder
	}
	return fmt.Sprintf(choiceUsageTemplate, placeholder, description)
}
