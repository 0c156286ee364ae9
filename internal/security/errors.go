package security

import "fmt"

const (
	validationErrorTemplateConstant          = "%s: %s"
	validationErrorWithoutReasonConstant     = "%s"
	invalidIdentifierKindStringConstant      = "invalid identifier"
	invalidRemoteKindStringConstant          = "invalid remote"
	pathEscapeKindStringConstant             = "path escape"
	unknownValidationErrorKindStringConstant = "validation failure"
)

// ErrorKind classifies validation failures raised before any subprocess or filesystem mutation.
type ErrorKind int

// Supported validation failure kinds.
const (
	ErrorKindInvalidIdentifier ErrorKind = iota + 1
	ErrorKindInvalidRemote
	ErrorKindPathEscape
)

// String returns a human-readable label for the kind.
func (kind ErrorKind) String() string {
	switch kind {
	case ErrorKindInvalidIdentifier:
		return invalidIdentifierKindStringConstant
	case ErrorKindInvalidRemote:
		return invalidRemoteKindStringConstant
	case ErrorKindPathEscape:
		return pathEscapeKindStringConstant
	default:
		return unknownValidationErrorKindStringConstant
	}
}

// ValidationError reports rejected user input. It never embeds the rejected value.
type ValidationError struct {
	Kind   ErrorKind
	Reason string
}

// Error describes the validation failure.
func (validationError ValidationError) Error() string {
	if len(validationError.Reason) == 0 {
		return fmt.Sprintf(validationErrorWithoutReasonConstant, validationError.Kind)
	}
	return fmt.Sprintf(validationErrorTemplateConstant, validationError.Kind, validationError.Reason)
}

// Is matches any ValidationError of the same kind, which lets callers compare against the sentinels.
func (validationError ValidationError) Is(target error) bool {
	targetValidationError, isValidationError := target.(ValidationError)
	if !isValidationError {
		return false
	}
	return targetValidationError.Kind == validationError.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrInvalidIdentifier = ValidationError{Kind: ErrorKindInvalidIdentifier}
	ErrInvalidRemote     = ValidationError{Kind: ErrorKindInvalidRemote}
	ErrPathEscape        = ValidationError{Kind: ErrorKindPathEscape}
)

func newValidationError(kind ErrorKind, reason string) ValidationError {
	return ValidationError{Kind: kind, Reason: reason}
}
